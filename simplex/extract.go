// SPDX-License-Identifier: MIT

package simplex

import "github.com/katalvlaran/lvlopt/lp"

// extract writes the run's endpoint back into the caller's basis and
// solution, in the original space and sense.
//
// Nonbasic variables are assigned their original-space bound values
// exactly (not unscaled arithmetic results); basic variables and duals
// are unscaled from the working space. Basic variables carry zero duals
// by construction, which together with the exact bound placement makes
// the complementarity products identically zero.
func (e *Engine) extract(basis *lp.Basis, sol *lp.Solution) {
	basis.Status = append(basis.Status[:0], e.vstat...)
	basis.SetValid(true)

	n, m := e.orig.NumCol, e.orig.NumRow
	sol.ColValue = resizeFloat(sol.ColValue, n)
	sol.RowValue = resizeFloat(sol.RowValue, m)
	sol.ColDual = resizeFloat(sol.ColDual, n)
	sol.RowDual = resizeFloat(sol.RowDual, m)

	sense := float64(e.orig.Sense)
	for j := 0; j < n; j++ {
		if e.vstat[j] == lp.Basic {
			sol.ColValue[j] = e.scale.unscaleValue(j, e.work.NumCol, e.workValue[j])
			sol.ColDual[j] = 0

			continue
		}
		sol.ColValue[j] = lp.NonbasicValue(e.vstat[j], e.orig.ColLower[j], e.orig.ColUpper[j])
		sol.ColDual[j] = sense * e.scale.unscaleDual(j, e.work.NumCol, e.workDual[j])
	}
	for i := 0; i < m; i++ {
		v := n + i
		if e.vstat[v] == lp.Basic {
			sol.RowValue[i] = e.scale.unscaleValue(v, e.work.NumCol, e.workValue[v])
			sol.RowDual[i] = 0

			continue
		}
		st := e.vstat[v]
		sol.RowValue[i] = lp.NonbasicValue(st, e.orig.RowLower[i], e.orig.RowUpper[i])
		sol.RowDual[i] = sense * e.scale.unscaleDual(v, e.work.NumCol, e.workDual[v])
	}

	sol.Objective = e.orig.Objective(sol.ColValue)
	sol.SetValid(true)
}
