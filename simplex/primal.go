// SPDX-License-Identifier: MIT

package simplex

import (
	"math"

	"github.com/katalvlaran/lvlopt/lp"
)

// runPrimal drives the primal strategy: PhaseI reduces the sum of
// primal infeasibilities with a composite objective, PhaseII optimizes
// the true costs.
func (e *Engine) runPrimal() {
	e.state = phaseOne
	if !e.primalPhase1() {
		return
	}
	e.state = phaseTwo
	e.primalPhase2()
}

// primalPhase1 pivots until every basic variable is inside its bounds.
// Reports false when it terminated the run (infeasible or budget trip).
//
// The composite objective assigns gradient -1 to basic variables below
// their lower bound and +1 above their upper bound; nonbasic phase-1
// costs are zero, so the phase-1 reduced cost of a nonbasic column is
// minus its dot with the Btran image of that gradient.
func (e *Engine) primalPhase1() bool {
	m := e.work.NumRow
	grad := make([]float64, m)
	for {
		if e.budgetTripped() {
			return false
		}

		infeasible := false
		for p := 0; p < m; p++ {
			v := e.basicIndex[p]
			grad[p] = 0
			if e.workValue[v] < e.work.VarLower(v)-e.cfg.PrimalFeasTol {
				grad[p] = -1
				infeasible = true
			} else if e.workValue[v] > e.work.VarUpper(v)+e.cfg.PrimalFeasTol {
				grad[p] = 1
				infeasible = true
			}
		}
		if !infeasible {
			return true
		}

		y := append([]float64(nil), grad...)
		_ = e.f.Btran(y)

		// Entering choice: the most negative phase-1 directional
		// derivative over admissible moves; ties to the lowest index.
		best, bestMerit, bestDir := -1, -e.cfg.DualFeasTol, 0.0
		for v := 0; v < e.tot; v++ {
			st := e.vstat[v]
			if st == lp.Basic || st == lp.NonbasicFixed {
				continue
			}
			d1 := -e.dotColumn(v, y)
			if (st == lp.NonbasicLower || st == lp.NonbasicFree) && d1 < bestMerit {
				best, bestMerit, bestDir = v, d1, 1
			}
			if (st == lp.NonbasicUpper || st == lp.NonbasicFree) && -d1 < bestMerit {
				best, bestMerit, bestDir = v, -d1, -1
			}
		}
		if best < 0 {
			e.status = lp.StatusInfeasible

			return false
		}

		if !e.primalStep(best, bestDir, true) {
			return false
		}
	}
}

// primalPhase2 optimizes the true costs from a primal-feasible basis.
// Terminal states: Optimal, Unbounded, or a budget trip.
func (e *Engine) primalPhase2() {
	tol := e.cfg.DualFeasTol
	for {
		if e.budgetTripped() {
			return
		}

		best, bestMerit, bestDir := -1, tol, 0.0
		for v := 0; v < e.tot; v++ {
			st := e.vstat[v]
			if st == lp.Basic || st == lp.NonbasicFixed {
				continue
			}
			d := e.workDual[v]
			if (st == lp.NonbasicLower || st == lp.NonbasicFree) && -d > bestMerit {
				best, bestMerit, bestDir = v, -d, 1
			}
			if (st == lp.NonbasicUpper || st == lp.NonbasicFree) && d > bestMerit {
				best, bestMerit, bestDir = v, d, -1
			}
		}
		if best < 0 {
			e.status = lp.StatusOptimal

			return
		}

		if !e.primalStep(best, bestDir, false) {
			return
		}
	}
}

// primalStep performs the bounded-variable primal ratio test for
// entering variable q moving in direction dir (+1 up from lower, -1 down
// from upper) and applies the resulting bound flip or pivot.
//
// phase1 widens the test: a basic variable beyond a bound first blocks
// at the bound it violates, which is what shrinks the infeasibility sum.
// Reports false when the run terminated (Unbounded, or a SolveError in
// phase 1); budget trips are left to the caller's next poll.
func (e *Engine) primalStep(q int, dir float64, phase1 bool) bool {
	e.unpackFtranColumn(q)
	m := e.work.NumRow

	limit := math.MaxFloat64
	blocking := -1
	blockStatus := lp.NonbasicLower
	for p := 0; p < m; p++ {
		rate := -dir * e.colAq[p]
		if math.Abs(rate) <= pivotZeroTol {
			continue
		}
		v := e.basicIndex[p]
		value := e.workValue[v]
		lower, upper := e.work.VarLower(v), e.work.VarUpper(v)

		var t float64
		var toStatus lp.BasisStatus
		switch {
		case phase1 && value < lower-e.cfg.PrimalFeasTol && rate > 0:
			t = (lower - value) / rate
			toStatus = lp.NonbasicLower
		case phase1 && value > upper+e.cfg.PrimalFeasTol && rate < 0:
			t = (upper - value) / rate
			toStatus = lp.NonbasicUpper
		case rate < 0 && lower > -lp.Inf && value >= lower-e.cfg.PrimalFeasTol:
			t = (lower - value) / rate
			toStatus = lp.NonbasicLower
		case rate > 0 && upper < lp.Inf && value <= upper+e.cfg.PrimalFeasTol:
			t = (upper - value) / rate
			toStatus = lp.NonbasicUpper
		default:
			continue
		}
		if t < 0 {
			t = 0
		}
		if lower == upper {
			toStatus = lp.NonbasicFixed
		}
		if t < limit-1e-12 {
			limit, blocking, blockStatus = t, p, toStatus
		}
	}

	// The entering variable's own opposite bound also blocks.
	enterRange := math.MaxFloat64
	if lower, upper := e.work.VarLower(q), e.work.VarUpper(q); lower > -lp.Inf && upper < lp.Inf {
		enterRange = upper - lower
	}

	if blocking < 0 && enterRange == math.MaxFloat64 {
		if phase1 {
			// Unlimited infeasibility-reducing ray cannot happen with a
			// bounded composite objective; defensively classify.
			e.status = lp.StatusSolveError
		} else {
			e.status = lp.StatusUnbounded
		}

		return false
	}

	if enterRange < limit {
		e.boundFlip(q)
		e.iter++

		return true
	}

	e.pivot(blocking, q, blockStatus)
	e.iter++

	return true
}
