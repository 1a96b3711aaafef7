// SPDX-License-Identifier: MIT

// Package simplex implements the revised simplex engine: bounded-variable
// dual and primal simplex over the augmented space [A | -I], with
// optional equilibration scaling, a product-form factorization of the
// basis (package factor), and four pivot strategies.
//
// Strategy map:
//   - DualPlain (and Choose): dual simplex, single most-infeasible row
//     selection, serial pricing.
//   - DualTasks: identical pivot sequence to DualPlain; the pricing loop
//     is dispatched onto a bounded fork-join worker pool that never
//     outlives Solve. With fewer than two workers available the strategy
//     silently degrades to DualPlain rather than diverge.
//   - DualMulti: minor-iterates over a candidate set of infeasible rows
//     (suboptimization), which legitimately produces a different, still
//     deterministic, pivot sequence.
//   - Primal: primal simplex with a composite phase-1 objective.
//
// Phase machine: Idle → Loading → PhaseI → PhaseII → Finished. Budget
// trips (iteration, time) jump to Finished from any state; the
// dual-objective bound trips only at the entry of or during PhaseII.
//
// Determinism: for a fixed strategy, scaling setting, starting basis and
// matrix ordering, every selection loop scans in fixed index order and
// breaks ties to the lowest index, so iteration counts reproduce exactly
// on a platform.
//
// All values reported back (objective, solution, infeasibilities) are in
// the original, unscaled space; nonbasic variables are assigned their
// bound values exactly, which is what makes the post-run complementarity
// equalities bit-exact rather than tolerance-tested.
package simplex
