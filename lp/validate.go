// SPDX-License-Identifier: MIT

package lp

import "math"

// finite reports whether v is a usable number inside the sentinel range.
func finite(v float64) bool {
	return !math.IsNaN(v) && v > -Inf && v < Inf
}

// boundPairOK checks one (lower, upper) pair: both inside [-Inf, +Inf],
// neither NaN, and ordered.
func boundPairOK(lower, upper float64) bool {
	if math.IsNaN(lower) || math.IsNaN(upper) {
		return false
	}
	if lower < -Inf || upper > Inf {
		return false
	}

	return lower <= upper
}

// Validate checks the model against every well-formedness invariant in
// the type's contract. It mutates nothing and returns the first violated
// sentinel.
//
// Steps:
//  1. Array lengths against NumCol/NumRow (O(1)).
//  2. Objective entries finite (O(n)).
//  3. Bound pairs ordered and inside the sentinel range (O(n+m)).
//  4. CSC structure: start monotone and terminated, indices in range and
//     duplicate-free per column, values finite and nonzero (O(nnz)).
//
// Complexity: Time O(n+m+nnz), Space O(m) for the duplicate mark array.
func (l *Lp) Validate() error {
	if l == nil {
		return ErrNilLp
	}
	if l.NumCol < 0 || l.NumRow < 0 {
		return ErrDimension
	}
	if len(l.ColCost) != l.NumCol ||
		len(l.ColLower) != l.NumCol || len(l.ColUpper) != l.NumCol ||
		len(l.RowLower) != l.NumRow || len(l.RowUpper) != l.NumRow {
		return ErrDimension
	}
	if len(l.Start) != l.NumCol+1 {
		return ErrMatrixStart
	}
	if len(l.Index) != len(l.Value) {
		return ErrDimension
	}

	if math.IsNaN(l.Offset) || math.IsInf(l.Offset, 0) {
		return ErrObjective
	}
	for j := 0; j < l.NumCol; j++ {
		if !finite(l.ColCost[j]) && l.ColCost[j] != 0 {
			return ErrObjective
		}
		if !boundPairOK(l.ColLower[j], l.ColUpper[j]) {
			return ErrBounds
		}
	}
	for i := 0; i < l.NumRow; i++ {
		if !boundPairOK(l.RowLower[i], l.RowUpper[i]) {
			return ErrBounds
		}
	}

	if l.Start[0] != 0 || l.Start[l.NumCol] != len(l.Index) {
		return ErrMatrixStart
	}
	// mark[i] holds 1+j for the last column that touched row i; detects
	// duplicate (column,row) pairs in one pass without clearing.
	mark := make([]int, l.NumRow)
	for j := 0; j < l.NumCol; j++ {
		if l.Start[j] > l.Start[j+1] {
			return ErrMatrixStart
		}
		for k := l.Start[j]; k < l.Start[j+1]; k++ {
			i := l.Index[k]
			if i < 0 || i >= l.NumRow {
				return ErrMatrixIndex
			}
			if mark[i] == j+1 {
				return ErrMatrixIndex
			}
			mark[i] = j + 1
			v := l.Value[k]
			if math.IsNaN(v) || math.IsInf(v, 0) || v == 0 || v <= -Inf || v >= Inf {
				return ErrMatrixValue
			}
		}
	}

	return nil
}

// Clone returns a deep copy of the model. Engines that need a mutable
// working image (scaling, presolve) clone rather than touching the
// orchestrator-owned instance.
func (l *Lp) Clone() *Lp {
	if l == nil {
		return nil
	}
	cp := &Lp{
		NumCol: l.NumCol,
		NumRow: l.NumRow,
		Sense:  l.Sense,
		Offset: l.Offset,
		Name:   l.Name,
	}
	cp.ColCost = append([]float64(nil), l.ColCost...)
	cp.ColLower = append([]float64(nil), l.ColLower...)
	cp.ColUpper = append([]float64(nil), l.ColUpper...)
	cp.RowLower = append([]float64(nil), l.RowLower...)
	cp.RowUpper = append([]float64(nil), l.RowUpper...)
	cp.Start = append([]int(nil), l.Start...)
	cp.Index = append([]int(nil), l.Index...)
	cp.Value = append([]float64(nil), l.Value...)

	return cp
}
