// SPDX-License-Identifier: MIT

package simplex

import (
	"github.com/katalvlaran/lvlopt/factor"
	"github.com/katalvlaran/lvlopt/lp"
)

// Engine is the revised simplex engine. One engine serves one solver
// instance; its working buffers persist across runs and are resized on
// demand. The engine borrows the model, basis and solution for the
// duration of one Solve and retains no references afterwards.
type Engine struct {
	cfg   Config
	orig  *lp.Lp
	work  *lp.Lp
	scale *scaling
	f     *factor.Factor
	basis *lp.Basis

	tot        int
	vstat      []lp.BasisStatus
	basicIndex []int
	basicPos   []int // var -> basis position, -1 when nonbasic

	workCost  []float64 // sense-adjusted scaled costs
	workShift []float64 // dual phase-1 cost shifts
	workValue []float64 // nonbasic: resting bound; basic: solved value
	workDual  []float64 // reduced costs; zero on basic variables

	shifted bool
	iter    int
	state   phase
	dl      deadline
	status  lp.ModelStatus
	multi   multiState

	// scratch reused across iterations
	rhs   []float64
	rowEp []float64
	rowAp []float64
	colAq []float64
}

// NewEngine returns an idle engine.
func NewEngine() *Engine { return &Engine{state: phaseIdle} }

// Stats snapshots the iteration and factorization telemetry of the last
// run.
func (e *Engine) Stats() lp.SimplexStats {
	st := lp.SimplexStats{IterationCount: e.iter}
	if e.f != nil {
		st.Valid = true
		st.NumInvert = e.f.NumInvert
		st.LastInvertNumEl = e.f.LastInvertNumEl
		st.LastFactoredBasisNumEl = e.f.LastFactoredBasisNumEl
		st.ColAqDensity = e.f.ColAqDensity
		st.RowEpDensity = e.f.RowEpDensity
		st.RowApDensity = e.f.RowApDensity
		st.RowDSEDensity = e.f.RowDSEDensity
	}

	return st
}

// Solve runs the configured strategy on the model from the given basis.
// The basis and solution are updated in place; Result classifies the
// outcome. Errors indicate caller misuse only — every numeric outcome,
// including limit trips, travels as a ModelStatus.
//
// Steps:
//  1. Loading: scale, install the basis, factorize (repairing dependent
//     columns through the kernel), compute values and duals.
//  2. PhaseI/PhaseII per strategy, polling budgets at every pivot and
//     refactorization.
//  3. Extraction: unscale, assign nonbasic variables their exact bounds,
//     rebuild the caller's basis and solution.
func (e *Engine) Solve(model *lp.Lp, basis *lp.Basis, sol *lp.Solution, cfg Config) (Result, error) {
	if model == nil {
		return Result{Status: lp.StatusSolveError}, ErrNilModel
	}
	if basis == nil {
		return Result{Status: lp.StatusSolveError}, ErrNilBasis
	}
	if len(basis.Status) != model.NumTot() {
		return Result{Status: lp.StatusSolveError}, ErrBasisMismatch
	}
	cfg.Normalize()
	e.cfg = cfg
	e.orig = model
	e.basis = basis
	e.iter = 0
	e.state = phaseLoading
	e.status = lp.StatusNotSet
	e.dl = newDeadline(cfg.TimeLimit)

	if err := e.load(basis); err != nil {
		e.state = phaseFinished

		return Result{Status: lp.StatusSolveError}, err
	}

	switch cfg.Strategy {
	case StrategyPrimal:
		e.runPrimal()
	default:
		e.runDual()
	}
	e.state = phaseFinished

	e.extract(basis, sol)
	e.logf("simplex: %s strategy, %d iterations, status %s",
		cfg.Strategy, e.iter, e.status)

	return Result{Status: e.status, IterationCount: e.iter}, nil
}

func (e *Engine) logf(format string, args ...any) {
	if e.cfg.Logf != nil {
		e.cfg.Logf(format, args...)
	}
}

// load builds the scaled working model and the initial factorization.
func (e *Engine) load(basis *lp.Basis) error {
	e.scale = buildScaling(e.orig, e.cfg.ScaleStrategy)
	e.work = e.scale.apply(e.orig)
	e.tot = e.work.NumTot()
	m := e.work.NumRow

	e.vstat = append(e.vstat[:0], basis.Status...)
	e.basicIndex = resizeInt(e.basicIndex, m)
	e.basicPos = resizeInt(e.basicPos, e.tot)
	e.workCost = resizeFloat(e.workCost, e.tot)
	e.workShift = resizeFloat(e.workShift, e.tot)
	e.workValue = resizeFloat(e.workValue, e.tot)
	e.workDual = resizeFloat(e.workDual, e.tot)
	e.rhs = resizeFloat(e.rhs, m)
	e.rowEp = resizeFloat(e.rowEp, m)
	e.rowAp = resizeFloat(e.rowAp, e.tot)
	e.colAq = resizeFloat(e.colAq, m)
	e.shifted = false

	sense := float64(e.orig.Sense)
	for v := 0; v < e.tot; v++ {
		e.workCost[v] = sense * e.work.VarCost(v)
		e.workShift[v] = 0
	}

	// Install the basis: basic variables in scan order take successive
	// basis positions.
	pos := 0
	for v := 0; v < e.tot; v++ {
		e.basicPos[v] = -1
		if e.vstat[v] == lp.Basic {
			if pos >= m {
				return ErrBasisMismatch
			}
			e.basicIndex[pos] = v
			e.basicPos[v] = pos
			pos++
		}
	}
	if pos != m {
		return ErrBasisMismatch
	}

	e.f = factor.New(e.work)
	repairs, err := e.f.Load(e.basicIndex)
	if err != nil {
		return err
	}
	e.applyRepairs(repairs)

	for v := 0; v < e.tot; v++ {
		if e.vstat[v] != lp.Basic {
			e.workValue[v] = lp.NonbasicValue(e.vstat[v], e.work.VarLower(v), e.work.VarUpper(v))
		}
	}
	e.computeBasicValues()
	e.computeDuals()

	return nil
}

// applyRepairs reconciles engine state with kernel-side basis repairs:
// for every repaired position the displaced variable moves to a bound
// and the substituted logical becomes basic.
func (e *Engine) applyRepairs(repairs []int) {
	for _, p := range repairs {
		repaired := e.f.BasicIndex()[p]
		old := e.basicIndex[p]
		if old == repaired {
			continue
		}
		e.vstat[old] = nonbasicStatusForVar(e.work, old)
		e.basicPos[old] = -1
		e.workValue[old] = lp.NonbasicValue(e.vstat[old], e.work.VarLower(old), e.work.VarUpper(old))
		e.vstat[repaired] = lp.Basic
		e.basicIndex[p] = repaired
		e.basicPos[repaired] = p
		e.basis.MarkChanged()
	}
}

// nonbasicStatusForVar mirrors lp.LogicalBasis bound choice for one
// augmented variable of the working model.
func nonbasicStatusForVar(model *lp.Lp, v int) lp.BasisStatus {
	lower, upper := model.VarLower(v), model.VarUpper(v)
	switch {
	case lower == upper:
		return lp.NonbasicFixed
	case lower > -lp.Inf:
		return lp.NonbasicLower
	case upper < lp.Inf:
		return lp.NonbasicUpper
	default:
		return lp.NonbasicFree
	}
}

// computeBasicValues solves B x_B = -N x_N and stores the basic values
// into workValue by variable.
func (e *Engine) computeBasicValues() {
	m := e.work.NumRow
	for i := 0; i < m; i++ {
		e.rhs[i] = 0
	}
	for v := 0; v < e.tot; v++ {
		if e.vstat[v] == lp.Basic {
			continue
		}
		xv := e.workValue[v]
		if xv == 0 {
			continue
		}
		if v < e.work.NumCol {
			for k := e.work.Start[v]; k < e.work.Start[v+1]; k++ {
				e.rhs[e.work.Index[k]] -= e.work.Value[k] * xv
			}
		} else {
			e.rhs[v-e.work.NumCol] += xv
		}
	}
	_ = e.f.Ftran(e.rhs)
	for p := 0; p < m; p++ {
		e.workValue[e.basicIndex[p]] = e.rhs[p]
	}
}

// computeDuals solves Bᵀy = c_B and prices every nonbasic column.
// The reduced cost of a logical equals its row's dual multiplier.
func (e *Engine) computeDuals() {
	m := e.work.NumRow
	y := make([]float64, m)
	for p := 0; p < m; p++ {
		y[p] = e.workCost[e.basicIndex[p]] + e.workShift[e.basicIndex[p]]
	}
	_ = e.f.Btran(y)
	for v := 0; v < e.tot; v++ {
		if e.vstat[v] == lp.Basic {
			e.workDual[v] = 0

			continue
		}
		e.workDual[v] = e.workCost[v] + e.workShift[v] - e.dotColumn(v, y)
	}
}

// dotColumn computes the augmented column of v dotted with a row-space
// vector.
func (e *Engine) dotColumn(v int, y []float64) float64 {
	if v < e.work.NumCol {
		sum := 0.0
		for k := e.work.Start[v]; k < e.work.Start[v+1]; k++ {
			sum += e.work.Value[k] * y[e.work.Index[k]]
		}

		return sum
	}

	return -y[v-e.work.NumCol]
}

// primalInfeasibility returns the (positive) amount by which the value
// of variable v violates its working bounds, zero when feasible.
func (e *Engine) primalInfeasibility(v int) float64 {
	value := e.workValue[v]
	if lower := e.work.VarLower(v); value < lower-e.cfg.PrimalFeasTol {
		return lower - value
	}
	if upper := e.work.VarUpper(v); value > upper+e.cfg.PrimalFeasTol {
		return value - upper
	}

	return 0
}

// dualObjective evaluates the dual objective of the current iterate in
// the sense-adjusted space: offset plus the reduced costs times the
// resting bounds they support. Valid as a dual bound only while the
// iterate is dual feasible and unshifted.
func (e *Engine) dualObjective() float64 {
	obj := float64(e.orig.Sense) * e.orig.Offset
	for v := 0; v < e.tot; v++ {
		if e.vstat[v] == lp.Basic || e.workDual[v] == 0 {
			continue
		}
		obj += e.workDual[v] * e.workValue[v]
	}

	return obj
}

// pivot applies one basis change: entering variable q replaces the
// variable at basis position p, with the leaving variable resting on
// toStatus. colAq must already hold B⁻¹a_q. A singular product-form
// update falls back to a full refactorization of the new basis instead
// of failing the run.
func (e *Engine) pivot(p, q int, toStatus lp.BasisStatus) {
	leaving := e.basicIndex[p]
	updateErr := e.f.Update(p, q, e.colAq)

	e.vstat[leaving] = toStatus
	e.workValue[leaving] = lp.NonbasicValue(toStatus, e.work.VarLower(leaving), e.work.VarUpper(leaving))
	e.basicPos[leaving] = -1
	e.vstat[q] = lp.Basic
	e.basicPos[q] = p
	e.basicIndex[p] = q
	e.basis.MarkChanged()

	if updateErr != nil {
		repairs, _ := e.f.Load(e.basicIndex)
		e.applyRepairs(repairs)
	} else if e.f.RefactorDue() {
		_, _ = e.f.Invert()
	}
	e.computeBasicValues()
	e.computeDuals()
}

// boundFlip moves a boxed nonbasic variable to its opposite bound. The
// basic set is unchanged, so the basis revision does not move.
func (e *Engine) boundFlip(v int) {
	if e.vstat[v] == lp.NonbasicLower {
		e.vstat[v] = lp.NonbasicUpper
	} else {
		e.vstat[v] = lp.NonbasicLower
	}
	e.workValue[v] = lp.NonbasicValue(e.vstat[v], e.work.VarLower(v), e.work.VarUpper(v))
	e.computeBasicValues()
}

// budgetTripped polls the iteration and time budgets; on a trip it sets
// the terminal status and reports true. Called before every pivot.
func (e *Engine) budgetTripped() bool {
	if e.iter >= e.cfg.IterationLimit {
		e.status = lp.StatusIterationLimit

		return true
	}
	if e.dl.exceeded() {
		e.status = lp.StatusTimeLimit

		return true
	}

	return false
}

func resizeFloat(s []float64, n int) []float64 {
	if cap(s) < n {
		return make([]float64, n)
	}

	return s[:n]
}

func resizeInt(s []int, n int) []int {
	if cap(s) < n {
		return make([]int, n)
	}

	return s[:n]
}
