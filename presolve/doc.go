// SPDX-License-Identifier: MIT

// Package presolve reduces a model before solving and undoes the
// reduction afterwards. The reduction set follows the classic
// Andersen-and-Andersen playbook, restricted to the transformations
// whose postsolve is exact for both primal and dual values:
//
//   - empty rows (feasibility check, then removal),
//   - non-binding rows (implied activity bounds inside the row bounds),
//   - fixed columns (substitution into rows and offset),
//   - empty columns (fix at the bound the cost supports),
//   - singleton rows (bound tightening, then removal, with the row dual
//     recovered from the column's reduced cost when the induced bound is
//     the active one).
//
// Passes repeat until a sweep removes nothing or MaxPasses is reached.
// The Presolve value retains the action log; Restore replays it in
// reverse to rebuild a full-space solution and basis from the reduced
// ones, preserving the exactly-m-basic invariant (every removed row
// contributes either its logical or the unlocked column as basic).
//
// Infeasibility or unboundedness proven during reduction is reported
// through the Status field so the caller can skip the solve entirely.
package presolve
