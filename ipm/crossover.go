// SPDX-License-Identifier: MIT

package ipm

import (
	priorityqueue "gopkg.in/dnaeon/go-priorityqueue.v1"

	"github.com/katalvlaran/lvlopt/lp"
	"github.com/katalvlaran/lvlopt/simplex"
)

// recoverSolution maps a standard-form iterate back to the source space
// through the export's column origins. Fixed columns (absent from the
// map) sit on their bound; free splits recombine.
func (e *Engine) recoverSolution(model *lp.Lp, std *lp.StandardLp, sfMap *lp.StandardMap, p point, sol *lp.Solution) {
	n, m := model.NumCol, model.NumRow
	sol.ColValue = make([]float64, n)
	sol.RowValue = make([]float64, m)
	sol.ColDual = make([]float64, n)
	sol.RowDual = make([]float64, m)

	for j := 0; j < n; j++ {
		// Default: fixed columns were folded out of the export.
		if model.ColLower[j] == model.ColUpper[j] {
			sol.ColValue[j] = model.ColLower[j]
		}
	}
	for col, origin := range sfMap.Cols {
		var value float64
		if col < len(p.x) {
			value = p.x[col]
		}
		switch origin.Kind {
		case lp.OriginShift:
			sol.ColValue[origin.Col] = model.ColLower[origin.Col] + value
		case lp.OriginReflect:
			sol.ColValue[origin.Col] = model.ColUpper[origin.Col] - value
		case lp.OriginFreePos:
			sol.ColValue[origin.Col] += value
		case lp.OriginFreeNeg:
			sol.ColValue[origin.Col] -= value
		default:
			// Slack columns carry no source value.
		}
	}

	// Row activities and duals from the source model; the dual vector of
	// a kept standard row is the source row's multiplier (sense folded
	// back out).
	model.RowActivity(sol.ColValue, sol.RowValue)
	sense := float64(model.Sense)
	for i := 0; i < m; i++ {
		if id := sfMap.RowID[i]; id >= 0 && id < len(p.y) {
			sol.RowDual[i] = sense * p.y[id]
		}
	}
	for j := 0; j < n; j++ {
		dual := model.ColCost[j]
		for k := model.Start[j]; k < model.Start[j+1]; k++ {
			dual -= model.Value[k] * sol.RowDual[model.Index[k]]
		}
		sol.ColDual[j] = dual
	}
	sol.Objective = model.Objective(sol.ColValue)
	sol.SetValid(true)
}

// crossover seeds an advanced basis from the interior point and runs a
// simplex cleanup to a vertex.
//
// Steps:
//  1. Score every augmented variable by interiorness (distance to its
//     nearest finite bound; free variables rank highest) and queue them
//     most-interior-first.
//  2. Pop NumRow basis candidates; everything else rests on its nearest
//     bound. Dependent candidates are repaired into logicals by the
//     factorization kernel when the cleanup engine loads the basis.
//  3. Run dual simplex from that basis; its pivots are the crossover
//     iteration count and its telemetry becomes the run's SimplexStats.
func (e *Engine) crossover(model *lp.Lp, basis *lp.Basis, sol *lp.Solution) (lp.ModelStatus, int, lp.SimplexStats) {
	n, m := model.NumCol, model.NumRow
	tot := n + m

	value := func(v int) float64 {
		if v < n {
			return sol.ColValue[v]
		}

		return sol.RowValue[v-n]
	}

	// freeRank caps the interiorness of unbounded directions so the
	// index tie-break below stays representable.
	const freeRank = 1e8

	pq := priorityqueue.New[int, float64](priorityqueue.MinHeap)
	for v := 0; v < tot; v++ {
		lower, upper := model.VarLower(v), model.VarUpper(v)
		if lower == upper {
			continue
		}
		interior := freeRank
		if lower > -lp.Inf {
			interior = value(v) - lower
		}
		if upper < lp.Inf {
			if d := upper - value(v); d < interior {
				interior = d
			}
		}
		if interior > freeRank {
			interior = freeRank
		}
		// MinHeap: negate so the most interior variable pops first; the
		// secondary term resolves equal scores to the lowest index.
		pq.Put(v, -interior+float64(v)*1e-9)
	}

	status := make([]lp.BasisStatus, tot)
	for v := 0; v < tot; v++ {
		status[v] = restingStatus(model, v, value(v))
	}
	basic := 0
	for basic < m && pq.Len() > 0 {
		item := pq.Get()
		status[item.Value] = lp.Basic
		basic++
	}
	// Not enough candidates (heavily fixed model): fill from logicals.
	for i := 0; basic < m && i < m; i++ {
		if v := n + i; status[v] != lp.Basic {
			status[v] = lp.Basic
			basic++
		}
	}

	basis.Status = status
	basis.SetValid(true)
	basis.MarkChanged()

	// No objective bound here: Normalize defaults an unset bound to +Inf.
	cleanup := simplex.NewEngine()
	res, err := cleanup.Solve(model, basis, sol, simplex.Config{
		Strategy:       simplex.StrategyDualPlain,
		ScaleStrategy:  e.cfg.CrossoverScaleStrategy,
		IterationLimit: -1,
		PrimalFeasTol:  e.cfg.PrimalFeasTol,
		DualFeasTol:    e.cfg.DualFeasTol,
	})
	if err != nil {
		return lp.StatusSolveError, 0, lp.SimplexStats{}
	}

	return res.Status, res.IterationCount, cleanup.Stats()
}

// restingStatus picks the nonbasic status nearest to the interior value.
func restingStatus(model *lp.Lp, v int, value float64) lp.BasisStatus {
	lower, upper := model.VarLower(v), model.VarUpper(v)
	switch {
	case lower == upper:
		return lp.NonbasicFixed
	case lower > -lp.Inf && upper < lp.Inf:
		if value-lower <= upper-value {
			return lp.NonbasicLower
		}

		return lp.NonbasicUpper
	case lower > -lp.Inf:
		return lp.NonbasicLower
	case upper < lp.Inf:
		return lp.NonbasicUpper
	default:
		return lp.NonbasicFree
	}
}
