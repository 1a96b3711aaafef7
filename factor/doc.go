// SPDX-License-Identifier: MIT

// Package factor maintains an invertible factored representation of the
// simplex basis matrix B, the NumRow augmented columns of [A | -I]
// selected by the current basis.
//
// The representation is a dense LU with partial pivoting (the "INVERT"),
// extended by a product-form eta file: every pivot appends one eta, and
// Ftran/Btran apply the LU solve plus the eta chain. A full rebuild is
// triggered by the engine when the eta file grows past UpdateLimit or a
// pivot is numerically unusable.
//
// Failure policy: a singular pivot during Update reports
// ErrSingularUpdate so the engine can re-Invert; a singular pivot during
// Invert is repaired in place by substituting the logical column of the
// unpivoted row, so the kernel never hands back a broken basis. Repairs
// are reported to the caller, which must patch the basis statuses.
//
// The kernel also tracks the sparsity densities of the frequently solved
// directions (col_aq, row_ep, row_ap, row_DSE) as exponentially weighted
// moving averages; pricing heuristics and SimplexStats read them.
//
// Determinism: partial pivoting picks the largest magnitude with the
// lowest row index on ties; eta application order is the pivot order.
package factor
