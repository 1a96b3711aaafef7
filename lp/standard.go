// SPDX-License-Identifier: MIT

package lp

// StandardLp is the standard-form image of a model:
//
//	min Cost·y + Offset   subject to   A y = Rhs,  y >= 0
//
// with A in CSC form. For a maximization source the image minimizes the
// negated objective, so the source optimum is recovered as
// sense * (standard optimum).
type StandardLp struct {
	NumCol int
	NumRow int
	Offset float64

	Cost  []float64
	Rhs   []float64
	Start []int
	Index []int
	Value []float64
}

// NumNz reports the number of nonzeros of the standard-form matrix.
func (s *StandardLp) NumNz() int { return len(s.Index) }

// ToLp expands the standard-form image back into a general model shape
// (all columns y >= 0, all rows equalities). Used by callers that want to
// re-solve the image through the ordinary pipeline.
func (s *StandardLp) ToLp() *Lp {
	out := &Lp{
		NumCol:   s.NumCol,
		NumRow:   s.NumRow,
		Sense:    Minimize,
		Offset:   s.Offset,
		ColCost:  append([]float64(nil), s.Cost...),
		ColLower: make([]float64, s.NumCol),
		ColUpper: make([]float64, s.NumCol),
		RowLower: append([]float64(nil), s.Rhs...),
		RowUpper: append([]float64(nil), s.Rhs...),
		Start:    append([]int(nil), s.Start...),
		Index:    append([]int(nil), s.Index...),
		Value:    append([]float64(nil), s.Value...),
	}
	for j := range out.ColUpper {
		out.ColUpper[j] = Inf
	}

	return out
}

// Standard-form column origins: how one exported column maps back to the
// source model.
const (
	OriginShift    = iota // structural, x = lower + y
	OriginReflect         // structural, x = upper - y
	OriginFreePos         // positive part of a split free structural
	OriginFreeNeg         // negative part of a split free structural
	OriginBoxSlack        // slack of a structural bounding row
	OriginRowSlack        // slack/surplus of a source row
	OriginRangeSlack      // slack of a ranged-row range row
)

// ColOrigin tags one standard-form column with its source entity.
type ColOrigin struct {
	Kind int
	// Col is the source structural column for the Origin{Shift,Reflect,
	// FreePos,FreeNeg,BoxSlack} kinds, Row the source row otherwise.
	Col int
	Row int
}

// StandardMap carries the back-mapping of a standard-form export:
// per-column origins and, for every kept source row, its standard row id
// (-1 for dropped rows).
type StandardMap struct {
	Cols  []ColOrigin
	RowID []int
}

// variable transformation tags used while emitting standard-form columns.
const (
	sfShiftLower   = iota // x = lower + y
	sfReflectUpper        // x = upper - y
	sfSplitFree           // x = y+ - y-
	sfFixed               // x = lower (constant, no column)
)

// StandardForm builds the standard-form image of the model.
//
// Steps:
//  1. Classify every structural variable: shift at a finite lower bound,
//     reflect at a finite upper bound, split when free, constant when
//     fixed. Boxed variables get an extra bounding row y <= upper-lower.
//  2. Classify every row after the variable shifts: equality, >=, <= or
//     ranged; rows with no finite bound are dropped. Ranged rows get a
//     bounded surplus, realised with one extra row and one extra slack.
//  3. Emit columns in deterministic order: transformed structurals (free
//     splits adjacent), column-box slacks, row slacks, range slacks.
//
// Complexity: Time O(n+m+nnz), Space O(output).
func (l *Lp) StandardForm() (*StandardLp, error) {
	out, _, err := l.StandardFormWithMap()

	return out, err
}

// StandardFormWithMap builds the standard-form image together with the
// back-mapping the interior-point pipeline uses to recover source-space
// values from a standard-form iterate.
func (l *Lp) StandardFormWithMap() (*StandardLp, *StandardMap, error) {
	if err := l.Validate(); err != nil {
		return nil, nil, err
	}

	n, m := l.NumCol, l.NumRow
	sense := float64(l.Sense)

	// 1) Classify variables; accumulate the rhs shift per row and the
	// objective offset contribution.
	kind := make([]int, n)
	shift := make([]float64, m)
	offset := sense * l.Offset
	for j := 0; j < n; j++ {
		lo, up := l.ColLower[j], l.ColUpper[j]
		var at float64
		switch {
		case lo == up:
			kind[j] = sfFixed
			at = lo
		case lo > -Inf:
			kind[j] = sfShiftLower
			at = lo
		case up < Inf:
			kind[j] = sfReflectUpper
			at = up
		default:
			kind[j] = sfSplitFree
			at = 0
		}
		if at != 0 {
			offset += sense * l.ColCost[j] * at
			for k := l.Start[j]; k < l.Start[j+1]; k++ {
				shift[l.Index[k]] += l.Value[k] * at
			}
		}
	}

	// 2) Row classification and row-id assignment. Original kept rows
	// first, then column box rows, then range rows.
	const (
		rowDropped = iota
		rowEquality
		rowGE
		rowLE
		rowRanged
	)
	rowKind := make([]int, m)
	rowID := make([]int, m)
	rhs := make([]float64, 0, m)
	nextRow := 0
	for i := 0; i < m; i++ {
		lo, up := l.RowLower[i], l.RowUpper[i]
		loAbsent, upAbsent := lo <= -Inf, up >= Inf
		switch {
		case loAbsent && upAbsent:
			rowKind[i] = rowDropped
			rowID[i] = -1
			continue
		case lo == up:
			rowKind[i] = rowEquality
			rhs = append(rhs, lo-shift[i])
		case upAbsent:
			rowKind[i] = rowGE
			rhs = append(rhs, lo-shift[i])
		case loAbsent:
			rowKind[i] = rowLE
			rhs = append(rhs, up-shift[i])
		default:
			rowKind[i] = rowRanged
			rhs = append(rhs, lo-shift[i])
		}
		rowID[i] = nextRow
		nextRow++
	}
	boxRow := make([]int, n)
	for j := 0; j < n; j++ {
		boxRow[j] = -1
		if kind[j] == sfShiftLower && l.ColUpper[j] < Inf {
			boxRow[j] = nextRow
			rhs = append(rhs, l.ColUpper[j]-l.ColLower[j])
			nextRow++
		}
	}
	rangeRow := make([]int, m)
	for i := 0; i < m; i++ {
		rangeRow[i] = -1
		if rowKind[i] == rowRanged {
			rangeRow[i] = nextRow
			rhs = append(rhs, l.RowUpper[i]-l.RowLower[i])
			nextRow++
		}
	}

	// 3) Emit columns.
	out := &StandardLp{NumRow: nextRow, Offset: offset, Rhs: rhs, Start: []int{0}}
	sfMap := &StandardMap{RowID: rowID}
	pushCol := func(cost float64, origin ColOrigin) {
		out.Cost = append(out.Cost, cost)
		out.Start = append(out.Start, len(out.Index))
		out.NumCol++
		sfMap.Cols = append(sfMap.Cols, origin)
	}
	emitStructural := func(j int, sign float64) {
		for k := l.Start[j]; k < l.Start[j+1]; k++ {
			if id := rowID[l.Index[k]]; id >= 0 {
				out.Index = append(out.Index, id)
				out.Value = append(out.Value, sign*l.Value[k])
			}
		}
	}
	for j := 0; j < n; j++ {
		mc := sense * l.ColCost[j]
		switch kind[j] {
		case sfShiftLower:
			emitStructural(j, +1)
			if boxRow[j] >= 0 {
				out.Index = append(out.Index, boxRow[j])
				out.Value = append(out.Value, 1)
			}
			pushCol(mc, ColOrigin{Kind: OriginShift, Col: j})
		case sfReflectUpper:
			emitStructural(j, -1)
			pushCol(-mc, ColOrigin{Kind: OriginReflect, Col: j})
		case sfSplitFree:
			emitStructural(j, +1)
			pushCol(mc, ColOrigin{Kind: OriginFreePos, Col: j})
			emitStructural(j, -1)
			pushCol(-mc, ColOrigin{Kind: OriginFreeNeg, Col: j})
		case sfFixed:
			// constant; folded into offset and rhs above
		}
	}
	for j := 0; j < n; j++ {
		if boxRow[j] >= 0 {
			out.Index = append(out.Index, boxRow[j])
			out.Value = append(out.Value, 1)
			pushCol(0, ColOrigin{Kind: OriginBoxSlack, Col: j})
		}
	}
	for i := 0; i < m; i++ {
		switch rowKind[i] {
		case rowGE:
			out.Index = append(out.Index, rowID[i])
			out.Value = append(out.Value, -1)
			pushCol(0, ColOrigin{Kind: OriginRowSlack, Row: i})
		case rowLE:
			out.Index = append(out.Index, rowID[i])
			out.Value = append(out.Value, 1)
			pushCol(0, ColOrigin{Kind: OriginRowSlack, Row: i})
		case rowRanged:
			// surplus s with 0 <= s <= range: a·y - s = lower, s + t = range
			out.Index = append(out.Index, rowID[i], rangeRow[i])
			out.Value = append(out.Value, -1, 1)
			pushCol(0, ColOrigin{Kind: OriginRowSlack, Row: i})
		}
	}
	for i := 0; i < m; i++ {
		if rangeRow[i] >= 0 {
			out.Index = append(out.Index, rangeRow[i])
			out.Value = append(out.Value, 1)
			pushCol(0, ColOrigin{Kind: OriginRangeSlack, Row: i})
		}
	}

	return out, sfMap, nil
}
