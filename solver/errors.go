// SPDX-License-Identifier: MIT
// Package solver: sentinel error set.

package solver

import "errors"

var (
	// ErrUnknownOption is returned for a key absent from the schema.
	ErrUnknownOption = errors.New("solver: unknown option")

	// ErrOptionType is returned when the supplied value's type does not
	// match the declared option type.
	ErrOptionType = errors.New("solver: option type mismatch")

	// ErrOptionValue is returned for an out-of-range or unlisted value.
	ErrOptionValue = errors.New("solver: option value out of range")

	// ErrNoModel is returned when a query or run needs a model and none
	// has been loaded.
	ErrNoModel = errors.New("solver: no model loaded")

	// ErrNoReader is returned by ReadModel when no model reader has been
	// registered; file parsing is an external collaborator.
	ErrNoReader = errors.New("solver: no model reader registered")

	// ErrNoSolution is returned by queries that need a valid solution.
	ErrNoSolution = errors.New("solver: no valid solution")

	// ErrStandardFormSize is returned by the two-call standard-form
	// protocol when the fill call's buffers do not match the size query.
	ErrStandardFormSize = errors.New("solver: standard form buffers do not match size query")
)
