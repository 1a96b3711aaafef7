// SPDX-License-Identifier: MIT

// Package solver is the public facade of lvlopt: it owns one model, one
// basis, one solution, one info snapshot and one statistics block, and
// routes Run calls to the simplex or interior-point engine under the
// keyed option table.
//
// Concurrency contract: a Solver instance is not safe for concurrent
// use; all mutating operations serialize on the instance. Independent
// instances share nothing. Inside one Run, the DualTasks strategy may
// fan pricing out onto a fork-join pool that never outlives the call.
//
// Every public operation returns a Status in {Ok, Warning, Error} and
// never panics across the boundary; numeric outcomes (optimal,
// infeasible, limit trips) travel as lp.ModelStatus. After any Run
// exactly one model status is set and the info snapshot is regenerated.
//
// Options are declared in an explicit schema (see options.go): unknown
// keys, type mismatches and out-of-range values are rejected atomically
// with no state change.
package solver
