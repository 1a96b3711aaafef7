// SPDX-License-Identifier: MIT
// Package lp: sentinel error set. All validation paths return these
// sentinels and tests match them via errors.Is; context is added with
// fmt.Errorf("...: %w", ErrX) only at facade boundaries.

package lp

import "errors"

var (
	// ErrNilLp is returned when a nil *Lp reaches a validating entry point.
	ErrNilLp = errors.New("lp: nil model")

	// ErrDimension signals inconsistent array lengths against NumCol/NumRow.
	ErrDimension = errors.New("lp: inconsistent dimensions")

	// ErrMatrixStart signals a malformed CSC start array (not monotone,
	// wrong length, or wrong terminal value).
	ErrMatrixStart = errors.New("lp: malformed matrix start")

	// ErrMatrixIndex signals a row index out of [0, NumRow) or a duplicate
	// (column,row) pair.
	ErrMatrixIndex = errors.New("lp: bad matrix index")

	// ErrMatrixValue signals a non-finite or exactly-zero matrix entry.
	ErrMatrixValue = errors.New("lp: bad matrix value")

	// ErrBounds signals lower > upper or a bound outside [-Inf, +Inf].
	ErrBounds = errors.New("lp: inconsistent bounds")

	// ErrObjective signals a non-finite objective cost or offset.
	ErrObjective = errors.New("lp: bad objective")

	// ErrBasisShape is returned when an installed basis does not cover the
	// augmented variable space or carries the wrong basic count.
	ErrBasisShape = errors.New("lp: basis does not match model")

	// ErrSizeQuery describes caller-provided standard-form buffers that do
	// not match a size query. No function of this package returns it; the
	// solver's fill call reports that case as solver.ErrStandardFormSize.
	ErrSizeQuery = errors.New("lp: standard form buffers do not match size query")
)
