// SPDX-License-Identifier: MIT

package factor

import "math"

// Invert rebuilds the LU factors of the current basis from scratch and
// clears the eta file.
//
// Steps:
//  1. Unpack the m basic augmented columns into the dense working matrix.
//  2. Gaussian elimination with partial pivoting; ties on pivot magnitude
//     break to the lowest row for determinism.
//  3. On a dependent column (no pivot above the tolerance), substitute
//     the logical variable of the first unpivoted row for the offending
//     basis position and restart. At most m substitutions can occur, and
//     a basis of logicals is always invertible, so the loop terminates.
//
// The rebuilt factor sizes (structural nonzeros of B, nonzeros of L+U)
// land in LastFactoredBasisNumEl and LastInvertNumEl; NumInvert counts
// completed rebuilds.
//
// Complexity: Time O(m^3) per attempt, Space O(m^2).
func (f *Factor) Invert() (repairs []int, err error) {
	if !f.loaded {
		return nil, ErrNotLoaded
	}
	m := f.m
	if cap(f.lu) < m*m {
		f.lu = make([]float64, m*m)
	}
	f.lu = f.lu[:m*m]
	if cap(f.perm) < m {
		f.perm = make([]int, m)
	}
	f.perm = f.perm[:m]

	col := make([]float64, m)

restart:
	// 1) Assemble B column-by-column into row-major storage.
	basisNumEl := 0
	for p := 0; p < m; p++ {
		f.unpackColumn(f.basicIndex[p], col)
		for i := 0; i < m; i++ {
			f.lu[i*m+p] = col[i]
			if col[i] != 0 {
				basisNumEl++
			}
		}
	}
	for k := 0; k < m; k++ {
		f.perm[k] = k
	}

	// 2) Eliminate.
	for k := 0; k < m; k++ {
		pivotRow, pivotAbs := -1, f.pivotTol
		for i := k; i < m; i++ {
			if a := math.Abs(f.lu[f.perm[i]*m+k]); a > pivotAbs {
				pivotRow, pivotAbs = i, a
			}
		}
		if pivotRow < 0 {
			// 3) Dependent column: swap in the logical of the first
			// unpivoted row and refactorize.
			row := f.perm[k]
			f.basicIndex[k] = f.model.NumCol + row
			repairs = append(repairs, k)
			goto restart
		}
		f.perm[k], f.perm[pivotRow] = f.perm[pivotRow], f.perm[k]
		pk := f.perm[k]
		pivot := f.lu[pk*m+k]
		for i := k + 1; i < m; i++ {
			pi := f.perm[i]
			mult := f.lu[pi*m+k] / pivot
			f.lu[pi*m+k] = mult
			if mult == 0 {
				continue
			}
			for j := k + 1; j < m; j++ {
				f.lu[pi*m+j] -= mult * f.lu[pk*m+j]
			}
		}
	}

	f.etas = f.etas[:0]
	f.NumInvert++
	f.LastFactoredBasisNumEl = basisNumEl
	f.LastInvertNumEl = countNonzeros(f.lu, 0)

	return repairs, nil
}
