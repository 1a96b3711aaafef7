// SPDX-License-Identifier: MIT

// Package lp defines the shared problem and state shapes consumed and
// produced by the lvlopt solver engines: the column-wise LP model, the
// basis and solution state, the post-run information snapshot, and the
// standard-form export.
//
// Conventions:
//   - The variable space is augmented: indices [0, NumCol) address the
//     structural (column) variables, indices [NumCol, NumCol+NumRow)
//     address the logical (row slack) variables. The logical variable of
//     row r carries the augmented matrix column -e_r, so a basis is any
//     set of NumRow augmented columns of [A | -I] that is invertible.
//   - Infinity is the finite sentinel Inf (1e30), not IEEE infinity.
//     Bounds at or beyond ±Inf are treated as absent. Engines compare
//     against Inf, never against math.Inf.
//   - All iteration over model data uses fixed index order; nothing in
//     this package ranges over maps. Determinism of the engines starts
//     with determinism of the shapes they read.
//
// Ownership: a single solver instance owns one Lp, one Basis, one
// Solution and one Info. Engines borrow them mutably for the duration of
// one run and retain nothing afterwards.
package lp
