// SPDX-License-Identifier: MIT
// Package presolve: sentinel error set.

package presolve

import "errors"

var (
	// ErrNilModel is returned when Run is invoked without a model.
	ErrNilModel = errors.New("presolve: nil model")

	// ErrNotReduced is returned when Restore is called before Run
	// produced a reduced model.
	ErrNotReduced = errors.New("presolve: no reduction to restore")

	// ErrShape is returned when the reduced solution or basis handed to
	// Restore does not match the reduced model.
	ErrShape = errors.New("presolve: reduced state does not match reduced model")
)
