// SPDX-License-Identifier: MIT
// Package factor: sentinel error set.

package factor

import "errors"

var (
	// ErrNotLoaded is returned when a solve or update is requested before
	// Load/Invert established a factorization.
	ErrNotLoaded = errors.New("factor: basis not loaded")

	// ErrBasisSize is returned when the basic index does not have exactly
	// NumRow entries or references an out-of-range variable.
	ErrBasisSize = errors.New("factor: basic index does not match model")

	// ErrSingularUpdate signals that a product-form update pivot is too
	// small to apply; the caller must refactorize.
	ErrSingularUpdate = errors.New("factor: singular update pivot")

	// ErrVectorSize is returned when a solve vector has the wrong length.
	ErrVectorSize = errors.New("factor: vector length does not match basis")
)
