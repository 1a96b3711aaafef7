// SPDX-License-Identifier: MIT

package factor

// Ftran solves B x = b in place: rhs enters as b and leaves as x, indexed
// by basis position. The LU solve runs first, then the eta file in pivot
// order.
//
// Complexity: Time O(m^2 + sum nnz(eta)), Space O(m) scratch.
func (f *Factor) Ftran(rhs []float64) error {
	if !f.loaded {
		return ErrNotLoaded
	}
	if len(rhs) != f.m {
		return ErrVectorSize
	}

	f.luSolve(rhs)
	for e := range f.etas {
		f.applyEta(&f.etas[e], rhs)
	}

	return nil
}

// Btran solves Bᵀ y = b in place. The eta file applies transposed in
// reverse order, then the transposed LU solve.
func (f *Factor) Btran(rhs []float64) error {
	if !f.loaded {
		return ErrNotLoaded
	}
	if len(rhs) != f.m {
		return ErrVectorSize
	}

	for e := len(f.etas) - 1; e >= 0; e-- {
		f.applyEtaTranspose(&f.etas[e], rhs)
	}
	f.luSolveTranspose(rhs)

	return nil
}

// luSolve computes x = U⁻¹ L⁻¹ P b for the permuted dense factors.
func (f *Factor) luSolve(rhs []float64) {
	m := f.m
	x := make([]float64, m)
	// Forward substitution on unit-lower L (rows in pivot order).
	for k := 0; k < m; k++ {
		sum := rhs[f.perm[k]]
		row := f.perm[k] * m
		for j := 0; j < k; j++ {
			sum -= f.lu[row+j] * x[j]
		}
		x[k] = sum
	}
	// Back substitution on U.
	for k := m - 1; k >= 0; k-- {
		row := f.perm[k] * m
		sum := x[k]
		for j := k + 1; j < m; j++ {
			sum -= f.lu[row+j] * x[j]
		}
		x[k] = sum / f.lu[row+k]
	}
	copy(rhs, x)
}

// luSolveTranspose computes y with Bᵀy = b, i.e. y = Pᵀ L⁻ᵀ U⁻ᵀ b.
func (f *Factor) luSolveTranspose(rhs []float64) {
	m := f.m
	z := make([]float64, m)
	// Forward substitution on Uᵀ (lower triangular).
	for k := 0; k < m; k++ {
		sum := rhs[k]
		for j := 0; j < k; j++ {
			sum -= f.lu[f.perm[j]*m+k] * z[j]
		}
		z[k] = sum / f.lu[f.perm[k]*m+k]
	}
	// Back substitution on Lᵀ (unit upper triangular).
	for k := m - 1; k >= 0; k-- {
		sum := z[k]
		for j := k + 1; j < m; j++ {
			sum -= f.lu[f.perm[j]*m+k] * z[j]
		}
		z[k] = sum
	}
	// Undo the row permutation: y[perm[k]] = w[k].
	for k := 0; k < m; k++ {
		rhs[f.perm[k]] = z[k]
	}
}

// applyEta applies E⁻¹ to x for one product-form eta:
// x_p' = x_p / w_p, then x_i' = x_i - w_i x_p' off the pivot.
func (f *Factor) applyEta(e *eta, x []float64) {
	xp := x[e.Pos] / e.PivotVal
	x[e.Pos] = xp
	if xp == 0 {
		return
	}
	for k, i := range e.Index {
		x[i] -= e.Value[k] * xp
	}
}

// applyEtaTranspose applies E⁻ᵀ to y:
// y_p' = (y_p - Σ_{i≠p} w_i y_i) / w_p, other entries unchanged.
func (f *Factor) applyEtaTranspose(e *eta, y []float64) {
	sum := y[e.Pos]
	for k, i := range e.Index {
		sum -= e.Value[k] * y[i]
	}
	y[e.Pos] = sum / e.PivotVal
}
