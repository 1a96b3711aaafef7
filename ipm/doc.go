// SPDX-License-Identifier: MIT

// Package ipm implements the interior-point engine: a primal-dual
// Mehrotra predictor-corrector running on the standard-form image of the
// model, followed by a crossover that turns the interior optimum into a
// vertex (basic) solution with the same shape as simplex output.
//
// Pipeline:
//  1. Export min c·y + offset, A y = b, y >= 0 through
//     lp.StandardFormWithMap, keeping the column back-mapping.
//  2. Predictor-corrector iterations; the normal equations A·D·Aᵀ are
//     factored by a gonum Cholesky with escalating diagonal
//     regularization when the matrix loses definiteness.
//  3. Map the interior iterate back to the source space, seed an
//     advanced basis from the most-interior variables (ordering queue;
//     dependent candidates are repaired into logicals by the
//     factorization kernel inside the simplex engine), and run a
//     simplex cleanup whose pivot count is the crossover iteration
//     count.
//
// The duality-gap tolerance is derived from the primal and dual
// feasibility tolerances; iteration counts for a fixed model and fixed
// configuration are deterministic, which the suite pins.
package ipm
