// SPDX-License-Identifier: MIT
// Package simplex: sentinel error set. Engine outcomes travel as model
// statuses, never as errors; errors are reserved for caller misuse.

package simplex

import "errors"

var (
	// ErrNilModel is returned when Solve is invoked without a model.
	ErrNilModel = errors.New("simplex: nil model")

	// ErrNilBasis is returned when Solve is invoked without a starting
	// basis; the orchestrator always installs one.
	ErrNilBasis = errors.New("simplex: nil starting basis")

	// ErrBasisMismatch is returned when the starting basis does not match
	// the model's augmented dimension.
	ErrBasisMismatch = errors.New("simplex: basis does not match model")
)
