// SPDX-License-Identifier: MIT

package presolve

import (
	"math"

	"github.com/katalvlaran/lvlopt/lp"
)

// Restore lifts a reduced-space solution and basis back into the
// original space, replaying the action log in reverse.
//
// Invariants maintained:
//   - exactly NumRow variables basic: every removed row re-enters with
//     either its logical basic (empty/redundant rows, slack singleton
//     duals) or — when a singleton row's induced bound is the active
//     one — the unlocked column basic and the logical on that bound;
//   - nonbasic variables sit exactly on original-space bounds;
//   - duals of removed entities are reconstructed, not defaulted, so
//     the primal-dual gap survives postsolve.
func (p *Presolve) Restore(redSol *lp.Solution, redBasis *lp.Basis) (*lp.Solution, *lp.Basis, error) {
	if p.reduced == nil {
		return nil, nil, ErrNotReduced
	}
	red := p.reduced
	if len(redSol.ColValue) != red.NumCol || len(redBasis.Status) != red.NumTot() {
		return nil, nil, ErrShape
	}

	orig := p.orig
	n, m := orig.NumCol, orig.NumRow
	sol := &lp.Solution{
		ColValue: make([]float64, n),
		RowValue: make([]float64, m),
		ColDual:  make([]float64, n),
		RowDual:  make([]float64, m),
	}
	basis := &lp.Basis{Status: make([]lp.BasisStatus, n+m), Revision: redBasis.Revision}

	// Effective bounds as the reduced solve saw them; singleton replay
	// peels the tightenings back off.
	colLower := append([]float64(nil), orig.ColLower...)
	colUpper := append([]float64(nil), orig.ColUpper...)

	// Seed kept entities from the reduced state.
	for j := 0; j < n; j++ {
		if rj := p.colMap[j]; rj >= 0 {
			sol.ColValue[j] = redSol.ColValue[rj]
			sol.ColDual[j] = redSol.ColDual[rj]
			basis.Status[j] = redBasis.Status[rj]
			colLower[j] = red.ColLower[rj]
			colUpper[j] = red.ColUpper[rj]
		}
	}
	for i := 0; i < m; i++ {
		if ri := p.rowMap[i]; ri >= 0 {
			sol.RowValue[i] = redSol.RowValue[ri]
			sol.RowDual[i] = redSol.RowDual[ri]
			basis.Status[n+i] = redBasis.Status[red.NumCol+ri]
		}
	}

	// Replay removals newest-first.
	for a := len(p.actions) - 1; a >= 0; a-- {
		act := p.actions[a]
		switch act.kind {
		case actFixedCol:
			sol.ColValue[act.col] = act.value
			basis.Status[act.col] = lp.NonbasicFixed
		case actEmptyCol:
			sol.ColValue[act.col] = act.value
			sol.ColDual[act.col] = orig.ColCost[act.col]
			basis.Status[act.col] = nonbasicStatus(orig.ColLower[act.col], orig.ColUpper[act.col])
		case actEmptyRow, actRedundantRow:
			basis.Status[n+act.row] = lp.Basic
			sol.RowDual[act.row] = 0
		case actSingletonRow:
			p.restoreSingleton(act, sol, basis, colLower, colUpper)
		}
	}

	// Fixed column duals need the final row duals.
	for a := range p.actions {
		if act := p.actions[a]; act.kind == actFixedCol {
			dual := orig.ColCost[act.col]
			for k := orig.Start[act.col]; k < orig.Start[act.col+1]; k++ {
				dual -= orig.Value[k] * sol.RowDual[orig.Index[k]]
			}
			sol.ColDual[act.col] = dual
		}
	}

	// Row activities of restored basic logicals come from the full
	// primal point; nonbasic logicals keep their exact bound value.
	activity := make([]float64, m)
	orig.RowActivity(sol.ColValue, activity)
	for i := 0; i < m; i++ {
		if p.rowMap[i] >= 0 {
			continue
		}
		if basis.Status[n+i] == lp.Basic {
			sol.RowValue[i] = activity[i]
		}
	}

	sol.Objective = orig.Objective(sol.ColValue)
	sol.SetValid(true)
	basis.SetValid(true)

	return sol, basis, nil
}

// restoreSingleton re-enters one singleton row. When the column rests on
// a bound this row induced, the binding constraint is the row: the
// column turns basic, the logical takes the bound, and the row dual
// absorbs the column's reduced cost. Otherwise the row was slack: its
// logical is basic with zero dual.
func (p *Presolve) restoreSingleton(act action, sol *lp.Solution, basis *lp.Basis, colLower, colUpper []float64) {
	n := p.orig.NumCol
	j, i := act.col, act.row
	st := basis.Status[j]
	value := sol.ColValue[j]

	inducedLower := colLower[j] > act.savedLower+1e-14 || (colLower[j] != act.savedLower && colLower[j] > -lp.Inf && act.savedLower <= -lp.Inf)
	inducedUpper := colUpper[j] < act.savedUpper-1e-14 || (colUpper[j] != act.savedUpper && colUpper[j] < lp.Inf && act.savedUpper >= lp.Inf)

	onInducedLower := st == lp.NonbasicLower && inducedLower && nearly(value, colLower[j])
	onInducedUpper := st == lp.NonbasicUpper && inducedUpper && nearly(value, colUpper[j])

	if onInducedLower || onInducedUpper {
		basis.Status[j] = lp.Basic
		basis.Status[n+i] = lp.NonbasicLower
		// The induced column bound came from the row bound: a>0 maps the
		// row's lower bound to the column's lower bound, and so on.
		if (act.coef > 0) == onInducedUpper {
			basis.Status[n+i] = lp.NonbasicUpper
		}
		sol.RowValue[i] = lp.NonbasicValue(basis.Status[n+i], p.orig.RowLower[i], p.orig.RowUpper[i])
		sol.RowDual[i] = sol.ColDual[j] / act.coef
		sol.ColDual[j] = 0
	} else {
		basis.Status[n+i] = lp.Basic
		sol.RowDual[i] = 0
		sol.RowValue[i] = act.coef * value
	}

	// Undo the tightening for any earlier (further-out) actions.
	colLower[j] = act.savedLower
	colUpper[j] = act.savedUpper
}

func nearly(a, b float64) bool { return math.Abs(a-b) <= 1e-9*(1+math.Abs(b)) }
