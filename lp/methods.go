// SPDX-License-Identifier: MIT

package lp

// VarLower returns the lower bound of augmented variable v (structural
// for v < NumCol, logical of row v-NumCol otherwise).
func (l *Lp) VarLower(v int) float64 {
	if v < l.NumCol {
		return l.ColLower[v]
	}

	return l.RowLower[v-l.NumCol]
}

// VarUpper returns the upper bound of augmented variable v.
func (l *Lp) VarUpper(v int) float64 {
	if v < l.NumCol {
		return l.ColUpper[v]
	}

	return l.RowUpper[v-l.NumCol]
}

// VarCost returns the objective cost of augmented variable v; logicals
// carry zero cost.
func (l *Lp) VarCost(v int) float64 {
	if v < l.NumCol {
		return l.ColCost[v]
	}

	return 0
}

// RowActivity computes A·x for the given structural values into out,
// which must have length NumRow. Fixed column-major accumulation order.
func (l *Lp) RowActivity(colValue, out []float64) {
	for i := range out {
		out[i] = 0
	}
	for j := 0; j < l.NumCol; j++ {
		xj := colValue[j]
		if xj == 0 {
			continue
		}
		for k := l.Start[j]; k < l.Start[j+1]; k++ {
			out[l.Index[k]] += l.Value[k] * xj
		}
	}
}

// Objective evaluates ColCost·x + Offset for the given structural values.
func (l *Lp) Objective(colValue []float64) float64 {
	obj := l.Offset
	for j := 0; j < l.NumCol; j++ {
		obj += l.ColCost[j] * colValue[j]
	}

	return obj
}

// AddCol appends one structural column with the given cost, bounds and
// sparse row entries. The caller (orchestrator) is responsible for
// invalidating any solution and extending any basis.
func (l *Lp) AddCol(cost, lower, upper float64, index []int, value []float64) error {
	if !boundPairOK(lower, upper) {
		return ErrBounds
	}
	if !finite(cost) && cost != 0 {
		return ErrObjective
	}
	if len(index) != len(value) {
		return ErrDimension
	}
	seen := make(map[int]bool, len(index))
	for k, i := range index {
		if i < 0 || i >= l.NumRow || seen[i] {
			return ErrMatrixIndex
		}
		seen[i] = true
		if !finite(value[k]) || value[k] == 0 {
			return ErrMatrixValue
		}
	}

	l.ColCost = append(l.ColCost, cost)
	l.ColLower = append(l.ColLower, lower)
	l.ColUpper = append(l.ColUpper, upper)
	l.Index = append(l.Index, index...)
	l.Value = append(l.Value, value...)
	l.Start = append(l.Start, len(l.Index))
	l.NumCol++

	return nil
}

// AddRow appends one row with the given bounds and sparse column entries.
// The CSC matrix is rebuilt by splicing the new row's entries into each
// touched column; entries arrive column-sorted or not, order within a
// column is preserved as appended.
func (l *Lp) AddRow(lower, upper float64, index []int, value []float64) error {
	if !boundPairOK(lower, upper) {
		return ErrBounds
	}
	if len(index) != len(value) {
		return ErrDimension
	}
	entry := make(map[int]float64, len(index))
	for k, j := range index {
		if j < 0 || j >= l.NumCol {
			return ErrMatrixIndex
		}
		if _, dup := entry[j]; dup {
			return ErrMatrixIndex
		}
		if !finite(value[k]) || value[k] == 0 {
			return ErrMatrixValue
		}
		entry[j] = value[k]
	}

	newRow := l.NumRow
	newStart := make([]int, l.NumCol+1)
	newIndex := make([]int, 0, len(l.Index)+len(index))
	newValue := make([]float64, 0, len(l.Value)+len(value))
	for j := 0; j < l.NumCol; j++ {
		newStart[j] = len(newIndex)
		newIndex = append(newIndex, l.Index[l.Start[j]:l.Start[j+1]]...)
		newValue = append(newValue, l.Value[l.Start[j]:l.Start[j+1]]...)
		if v, ok := entry[j]; ok {
			newIndex = append(newIndex, newRow)
			newValue = append(newValue, v)
		}
	}
	newStart[l.NumCol] = len(newIndex)

	l.Start, l.Index, l.Value = newStart, newIndex, newValue
	l.RowLower = append(l.RowLower, lower)
	l.RowUpper = append(l.RowUpper, upper)
	l.NumRow++

	return nil
}
