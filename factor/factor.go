// SPDX-License-Identifier: MIT

package factor

import (
	"math"

	"github.com/katalvlaran/lvlopt/lp"
)

// Numeric policy defaults (single source of truth).
const (
	// DefaultPivotTolerance is the smallest absolute pivot accepted by
	// Invert before the column is declared dependent.
	DefaultPivotTolerance = 1e-10

	// DefaultUpdatePivotTolerance is the smallest eta pivot accepted by
	// Update; below it the engine must refactorize.
	DefaultUpdatePivotTolerance = 1e-8

	// DefaultUpdateLimit caps the eta file length between refactorizations.
	DefaultUpdateLimit = 99

	// densityDecay is the EWMA retention factor for solve densities.
	densityDecay = 0.95
)

// eta is one product-form update: basis position Pos receives the
// ftran-image of the entering column, stored sparse.
type eta struct {
	Pos      int
	PivotVal float64
	Index    []int
	Value    []float64
}

// Factor owns the LU factors of the current basis plus the eta file.
// It borrows the model read-only to extract augmented columns.
type Factor struct {
	model *lp.Lp
	m     int

	basicIndex []int

	// Dense LU of P·B, row-major m×m; L unit-lower below the diagonal,
	// U on and above. perm[k] is the source row of elimination step k.
	lu   []float64
	perm []int

	etas   []eta
	loaded bool

	pivotTol       float64
	updatePivotTol float64
	updateLimit    int

	// Telemetry surfaced through SimplexStats.
	NumInvert              int
	LastInvertNumEl        int
	LastFactoredBasisNumEl int

	ColAqDensity  float64
	RowEpDensity  float64
	RowApDensity  float64
	RowDSEDensity float64
}

// New creates a kernel bound to the given model. Working buffers are
// sized on first Load and reused across runs.
func New(model *lp.Lp) *Factor {
	return &Factor{
		model:          model,
		pivotTol:       DefaultPivotTolerance,
		updatePivotTol: DefaultUpdatePivotTolerance,
		updateLimit:    DefaultUpdateLimit,
	}
}

// Rebind points the kernel at a (possibly resized) model, dropping any
// factorization but keeping telemetry.
func (f *Factor) Rebind(model *lp.Lp) {
	f.model = model
	f.loaded = false
	f.basicIndex = nil
	f.etas = f.etas[:0]
}

// Load installs a basic index (one augmented variable per basis
// position) and factorizes it. Returned repairs list the basis positions
// whose variable was replaced by the row's logical to restore
// invertibility; the corresponding new variable is NumCol+row.
func (f *Factor) Load(basicIndex []int) (repairs []int, err error) {
	m := f.model.NumRow
	if len(basicIndex) != m {
		return nil, ErrBasisSize
	}
	tot := f.model.NumTot()
	for _, v := range basicIndex {
		if v < 0 || v >= tot {
			return nil, ErrBasisSize
		}
	}
	f.m = m
	f.basicIndex = append(f.basicIndex[:0], basicIndex...)
	f.loaded = true

	return f.Invert()
}

// BasicIndex exposes the current basic index (read-only by convention).
func (f *Factor) BasicIndex() []int { return f.basicIndex }

// NumUpdates reports the current eta file length.
func (f *Factor) NumUpdates() int { return len(f.etas) }

// RefactorDue reports whether the eta file has reached the update limit.
func (f *Factor) RefactorDue() bool { return len(f.etas) >= f.updateLimit }

// RecordColAq folds one ftran result density into the EWMA.
func (f *Factor) RecordColAq(nnz int) { f.ColAqDensity = f.fold(f.ColAqDensity, nnz) }

// RecordRowEp folds one btran unit-row result density into the EWMA.
func (f *Factor) RecordRowEp(nnz int) { f.RowEpDensity = f.fold(f.RowEpDensity, nnz) }

// RecordRowAp folds one priced-row density into the EWMA.
func (f *Factor) RecordRowAp(nnz int) { f.RowApDensity = f.fold(f.RowApDensity, nnz) }

// RecordRowDSE folds one steepest-edge-direction density into the EWMA.
func (f *Factor) RecordRowDSE(nnz int) { f.RowDSEDensity = f.fold(f.RowDSEDensity, nnz) }

func (f *Factor) fold(current float64, nnz int) float64 {
	if f.m == 0 {
		return current
	}
	sample := float64(nnz) / float64(f.m)
	if current == 0 {
		return sample
	}

	return densityDecay*current + (1-densityDecay)*sample
}

// ResetStats clears telemetry (a new run starts counting afresh).
func (f *Factor) ResetStats() {
	f.NumInvert = 0
	f.LastInvertNumEl = 0
	f.LastFactoredBasisNumEl = 0
	f.ColAqDensity = 0
	f.RowEpDensity = 0
	f.RowApDensity = 0
	f.RowDSEDensity = 0
}

// unpackColumn writes the augmented column of variable v into dense out
// (length m), zeroing it first.
func (f *Factor) unpackColumn(v int, out []float64) {
	for i := range out {
		out[i] = 0
	}
	l := f.model
	if v < l.NumCol {
		for k := l.Start[v]; k < l.Start[v+1]; k++ {
			out[l.Index[k]] = l.Value[k]
		}

		return
	}
	out[v-l.NumCol] = -1
}

// countNonzeros is the shared density sample helper.
func countNonzeros(vec []float64, tol float64) int {
	count := 0
	for _, v := range vec {
		if math.Abs(v) > tol {
			count++
		}
	}

	return count
}
