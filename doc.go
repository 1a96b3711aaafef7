// Package lvlopt is a linear-programming core: one model, two
// interchangeable engines, one façade.
//
// 🚀 What is lvlopt?
//
//	A deterministic, pure-Go LP solver that brings together:
//		• Model & state: column-wise sparse LP, basis, solution, info snapshot
//		• Revised simplex: dual (plain / tasks / multi) and primal strategies
//		• Interior point: Mehrotra predictor-corrector + crossover to a vertex
//		• Factorization: LU with product-form updates and INVERT rebuilds
//		• Presolve: Andersen-style reductions with exact postsolve
//		• Control: keyed typed options, budgets, warm starts, dual bounds
//
// ✨ Why choose lvlopt?
//
//   - Reproducible – fixed scan orders and lowest-index tie-breaks make
//     iteration counts stable for a fixed configuration
//   - Honest reporting – every run sets exactly one model status and a
//     fresh info snapshot; limit trips still leave a consistent iterate
//   - Exact endpoints – nonbasic variables land bit-exactly on bounds,
//     so the complementarity equalities hold without tolerances
//
// Everything is organized under six subpackages:
//
//	lp/       — problem and state shapes, validation, standard form
//	factor/   — basis factorization kernel (ftran/btran/update/invert)
//	simplex/  — revised simplex engine and pivot strategies
//	ipm/      — interior-point engine and crossover
//	presolve/ — reductions and postsolve
//	solver/   — the public façade: options, routing, queries
//
// Quick example:
//
//	h := solver.New()
//	h.PassModel(model)            // a validated lp.Lp
//	h.SetOptionValue("solver", "simplex")
//	if h.Run() == solver.Ok {
//		info := h.Info()
//		fmt.Println(info.ObjectiveFunctionValue)
//	}
//
// See each subpackage's doc.go for the contracts and determinism notes.
package lvlopt
