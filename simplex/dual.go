// SPDX-License-Identifier: MIT

package simplex

import (
	"math"

	"github.com/katalvlaran/lvlopt/lp"
)

// runDual drives the dual simplex strategies. PhaseI establishes dual
// feasibility by bound flips where a finite opposite bound exists and by
// cost shifts otherwise; PhaseII is the dual iteration proper. When
// shifts were needed, they are removed at the end and a primal cleanup
// restores true optimality.
func (e *Engine) runDual() {
	e.state = phaseOne
	e.makeDualFeasible()

	e.state = phaseTwo
	if e.objectiveBoundTripped() {
		return
	}

	e.multiReset()
	for {
		if e.budgetTripped() {
			return
		}

		p := e.chooseLeavingRow()
		if p < 0 {
			e.finishDual()

			return
		}

		// Pivot row: rowEp = Bᵀ⁻¹ e_p, then price the nonbasic columns.
		for i := range e.rowEp {
			e.rowEp[i] = 0
		}
		e.rowEp[p] = 1
		_ = e.f.Btran(e.rowEp)
		e.f.RecordRowEp(nonzeroCount(e.rowEp))
		e.f.RecordRowDSE(nonzeroCount(e.rowEp))
		e.price()

		q := e.dualRatioTest(p)
		if q < 0 {
			// Dual unbounded: no entering column restores dual
			// feasibility, so the primal problem is infeasible.
			e.status = lp.StatusInfeasible

			return
		}

		e.unpackFtranColumn(q)
		leaving := e.basicIndex[p]
		toStatus := lp.NonbasicLower
		switch {
		case e.work.VarLower(leaving) == e.work.VarUpper(leaving):
			toStatus = lp.NonbasicFixed
		case e.workValue[leaving] > e.work.VarUpper(leaving):
			toStatus = lp.NonbasicUpper
		}
		e.pivot(p, q, toStatus)
		e.iter++

		if e.objectiveBoundTripped() {
			return
		}
	}
}

// makeDualFeasible removes initial dual infeasibilities. Boxed variables
// flip to the bound their reduced cost supports; variables without a
// usable opposite bound get a cost shift that zeroes the reduced cost.
func (e *Engine) makeDualFeasible() {
	tol := e.cfg.DualFeasTol
	flipped := false
	for v := 0; v < e.tot; v++ {
		switch e.vstat[v] {
		case lp.NonbasicLower:
			if e.workDual[v] < -tol {
				if e.work.VarUpper(v) < lp.Inf {
					e.vstat[v] = lp.NonbasicUpper
					e.workValue[v] = e.work.VarUpper(v)
					flipped = true
				} else {
					e.workShift[v] -= e.workDual[v]
					e.workDual[v] = 0
					e.shifted = true
				}
			}
		case lp.NonbasicUpper:
			if e.workDual[v] > tol {
				if e.work.VarLower(v) > -lp.Inf {
					e.vstat[v] = lp.NonbasicLower
					e.workValue[v] = e.work.VarLower(v)
					flipped = true
				} else {
					e.workShift[v] -= e.workDual[v]
					e.workDual[v] = 0
					e.shifted = true
				}
			}
		case lp.NonbasicFree:
			if math.Abs(e.workDual[v]) > tol {
				e.workShift[v] -= e.workDual[v]
				e.workDual[v] = 0
				e.shifted = true
			}
		default:
			// Basic and fixed variables impose no dual sign condition.
		}
	}
	if flipped {
		e.computeBasicValues()
	}
}

// chooseLeavingRow selects the basis position to leave. DualPlain and
// DualTasks take the largest primal infeasibility over all positions;
// DualMulti minor-iterates over a candidate set. Ties break to the
// lowest position. Returns -1 when primal feasible.
func (e *Engine) chooseLeavingRow() int {
	if e.cfg.Strategy == StrategyDualMulti {
		return e.multiChooseRow()
	}

	best, bestViol := -1, 0.0
	for p := 0; p < e.work.NumRow; p++ {
		if viol := e.primalInfeasibility(e.basicIndex[p]); viol > bestViol {
			best, bestViol = p, viol
		}
	}

	return best
}

// dualRatioTest picks the entering variable for pivot row p, minimizing
// the dual step d_v / ᾱ_v over the sign-eligible nonbasic columns, where
// ᾱ is the pivot row signed by the direction of the leaving variable's
// violation. Ties break to the lowest variable index. Returns -1 when no
// column is eligible (dual unbounded).
func (e *Engine) dualRatioTest(p int) int {
	leaving := e.basicIndex[p]
	sign := -1.0
	if e.workValue[leaving] > e.work.VarUpper(leaving) {
		sign = 1.0
	}

	best, bestRatio := -1, math.MaxFloat64
	for v := 0; v < e.tot; v++ {
		if e.vstat[v] == lp.Basic || e.vstat[v] == lp.NonbasicFixed {
			continue
		}
		alpha := sign * e.rowAp[v]
		eligible := false
		switch e.vstat[v] {
		case lp.NonbasicLower:
			eligible = alpha > pivotZeroTol
		case lp.NonbasicUpper:
			eligible = alpha < -pivotZeroTol
		case lp.NonbasicFree:
			eligible = math.Abs(alpha) > pivotZeroTol
		}
		if !eligible {
			continue
		}
		ratio := e.workDual[v] / alpha
		if ratio < -e.cfg.DualFeasTol {
			// Tiny dual infeasibility from roundoff; treat as zero step.
			ratio = 0
		}
		if ratio < bestRatio-1e-12 {
			best, bestRatio = v, ratio
		}
	}

	return best
}

// unpackFtranColumn computes colAq = B⁻¹ a_q for the entering variable.
func (e *Engine) unpackFtranColumn(q int) {
	for i := range e.colAq {
		e.colAq[i] = 0
	}
	if q < e.work.NumCol {
		for k := e.work.Start[q]; k < e.work.Start[q+1]; k++ {
			e.colAq[e.work.Index[k]] = e.work.Value[k]
		}
	} else {
		e.colAq[q-e.work.NumCol] = -1
	}
	_ = e.f.Ftran(e.colAq)
	e.f.RecordColAq(nonzeroCount(e.colAq))
}

// finishDual handles the feasible-and-dual-feasible endpoint: with no
// shifts it is optimal; with shifts the true costs are restored and a
// primal cleanup removes any remaining dual infeasibility.
func (e *Engine) finishDual() {
	if !e.shifted {
		e.status = lp.StatusOptimal

		return
	}
	for v := 0; v < e.tot; v++ {
		e.workShift[v] = 0
	}
	e.shifted = false
	e.computeDuals()
	e.primalPhase2()
}

// objectiveBoundTripped applies the dual-objective upper bound of §4.2:
// minimization only, never while cost shifts distort the dual objective.
func (e *Engine) objectiveBoundTripped() bool {
	if e.orig.Sense != lp.Minimize || e.cfg.ObjectiveBound >= lp.Inf || e.shifted {
		return false
	}
	if e.dualObjective() > e.cfg.ObjectiveBound {
		e.status = lp.StatusObjectiveBound

		return true
	}

	return false
}

// multiCandidatesBuild collects the worst MultiCandidates infeasible
// basis positions, worst first, ties to the lowest position.
func (e *Engine) multiCandidatesBuild() []int {
	type cand struct {
		pos  int
		viol float64
	}
	var list []cand
	for p := 0; p < e.work.NumRow; p++ {
		if viol := e.primalInfeasibility(e.basicIndex[p]); viol > 0 {
			list = append(list, cand{p, viol})
		}
	}
	// Selection sort of the top candidates keeps the order deterministic
	// without pulling in a comparator over equal violations.
	limit := e.cfg.MultiCandidates
	if limit > len(list) {
		limit = len(list)
	}
	out := make([]int, 0, limit)
	used := make([]bool, len(list))
	for len(out) < limit {
		best, bestViol := -1, 0.0
		for i, c := range list {
			if !used[i] && c.viol > bestViol {
				best, bestViol = i, c.viol
			}
		}
		if best < 0 {
			break
		}
		used[best] = true
		out = append(out, list[best].pos)
	}

	return out
}

// multiState is the DualMulti candidate-set state.
type multiState struct {
	candidates []int
}

// multiReset clears the candidate set at the start of PhaseII.
func (e *Engine) multiReset() {
	e.multi.candidates = nil
}

// multiChooseRow serves DualMulti: pick the worst violation within the
// current candidate set, rebuilding the set when it runs dry. Falls back
// to -1 only when a rebuild finds no infeasibility at all.
func (e *Engine) multiChooseRow() int {
	for attempt := 0; attempt < 2; attempt++ {
		best, bestViol := -1, 0.0
		for _, p := range e.multi.candidates {
			if viol := e.primalInfeasibility(e.basicIndex[p]); viol > bestViol {
				best, bestViol = p, viol
			}
		}
		if best >= 0 {
			return best
		}
		e.multi.candidates = e.multiCandidatesBuild()
	}

	return -1
}

// nonzeroCount samples a dense vector's support for density telemetry.
func nonzeroCount(vec []float64) int {
	count := 0
	for _, v := range vec {
		if v != 0 {
			count++
		}
	}

	return count
}
