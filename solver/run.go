// SPDX-License-Identifier: MIT

package solver

import (
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/katalvlaran/lvlopt/ipm"
	"github.com/katalvlaran/lvlopt/lp"
	"github.com/katalvlaran/lvlopt/presolve"
	"github.com/katalvlaran/lvlopt/simplex"
)

// Run executes the configured engine on the current model.
//
// Routing:
//  1. An empty model (no structural columns) is optimal at the offset.
//  2. Presolve per the presolve option: "on" always, "choose" when no
//     warm basis will be used, "off" never.
//  3. Engine: "simplex" or "ipm" as asked; "choose" takes simplex, so a
//     re-solve with a valid warm basis under "choose" is a simplex run.
//     Under "ipm" the stored basis is not used and IPM runs.
//  4. Starting basis: the stored basis when use_warm_start is on and it
//     is valid; the logical basis otherwise (always for a presolved
//     image, whose space differs from the stored basis).
//  5. Engine run under the active iteration/time budgets, then
//     postsolve when presolve ran.
//  6. Record info, stats and exactly one model status.
func (s *Solver) Run() Status {
	started := time.Now()
	defer func() { s.runTime += time.Since(started).Seconds() }()

	s.info = lp.Info{}
	s.stats = lp.SimplexStats{}
	if s.model == nil {
		return s.fail(lp.StatusModelError, ErrNoModel)
	}

	if s.model.IsEmpty() {
		return s.runEmpty()
	}

	useIpm := s.opts.strings[OptSolver] == SolverIpm
	warm := !useIpm && s.opts.bools[OptUseWarmStart] &&
		s.basis != nil && s.basis.Valid() &&
		len(s.basis.Status) == s.model.NumTot()

	usePresolve := false
	switch s.opts.strings[OptPresolve] {
	case PresolveOn:
		usePresolve = true
	case PresolveChoose:
		usePresolve = !warm
	}

	target := s.model
	var pre *presolve.Presolve
	if usePresolve {
		var err error
		pre, err = presolve.Run(s.model)
		if err != nil {
			return s.fail(lp.StatusPresolveError, pkgerrors.Wrap(err, "run presolve"))
		}
		s.pre = pre
		s.presolvedLp = pre.Reduced()
		if pre.Status != lp.StatusNotSet {
			// Reduction proved the outcome; no solve needed.
			s.modelStatus = pre.Status
			s.info.Valid = true
			s.logf("run: presolve resolved model as %s", pre.Status)

			return Ok
		}
		target = pre.Reduced()
		warm = false
	}

	var runBasis *lp.Basis
	var runSol *lp.Solution
	if usePresolve {
		runBasis = lp.LogicalBasis(target)
		runSol = &lp.Solution{}
	} else {
		if warm {
			runBasis = s.basis
		} else {
			runBasis = lp.LogicalBasis(s.model)
			s.basis = runBasis
		}
		if s.sol == nil {
			s.sol = &lp.Solution{}
		}
		runSol = s.sol
	}

	var status lp.ModelStatus
	var simplexIters, ipmIters, crossIters int
	if useIpm {
		cfg := ipm.Config{
			IterationLimit:         s.opts.ints[OptIpmIterLimit],
			TimeLimit:              s.opts.doubles[OptTimeLimit],
			PrimalFeasTol:          s.opts.doubles[OptPrimalFeasTol],
			DualFeasTol:            s.opts.doubles[OptDualFeasTol],
			CrossoverScaleStrategy: s.opts.ints[OptScaleStrategy],
		}
		if s.opts.bools[OptOutputFlag] {
			cfg.Logf = s.logf
		}
		res, err := s.ipmEngine.Solve(target, runBasis, runSol, cfg)
		if err != nil {
			return s.fail(lp.StatusSolveError, pkgerrors.Wrap(err, "ipm run"))
		}
		status = res.Status
		ipmIters, crossIters = res.IpmIterations, res.CrossoverIterations
		s.stats = s.ipmEngine.Stats()
	} else {
		cfg := simplex.Config{
			Strategy:       simplex.Strategy(s.opts.ints[OptSimplexStrategy]),
			ScaleStrategy:  s.opts.ints[OptScaleStrategy],
			IterationLimit: s.opts.ints[OptSimplexIterLimit],
			TimeLimit:      s.opts.doubles[OptTimeLimit],
			// The option always carries a concrete value (default +Inf),
			// so the bound counts as set even when it is 0.0.
			ObjectiveBound:    s.opts.doubles[OptObjectiveBound],
			ObjectiveBoundSet: true,
			PrimalFeasTol:     s.opts.doubles[OptPrimalFeasTol],
			DualFeasTol:       s.opts.doubles[OptDualFeasTol],
			MaxConcurrency:    s.opts.ints[OptMaxConcurrency],
			MultiCandidates:   s.opts.ints[OptMultiCandidates],
		}
		if s.opts.bools[OptOutputFlag] {
			cfg.Logf = s.logf
		}
		res, err := s.simplexEngine.Solve(target, runBasis, runSol, cfg)
		if err != nil {
			return s.fail(lp.StatusSolveError, pkgerrors.Wrap(err, "simplex run"))
		}
		status = res.Status
		simplexIters = res.IterationCount
		s.stats = s.simplexEngine.Stats()
	}

	if usePresolve {
		fullSol, fullBasis, err := pre.Restore(runSol, runBasis)
		if err != nil {
			return s.fail(lp.StatusPostsolveError, pkgerrors.Wrap(err, "postsolve"))
		}
		s.sol = fullSol
		s.basis = fullBasis
	}

	s.modelStatus = status
	s.computeInfo(simplexIters, ipmIters, crossIters)
	s.logf("run: status %s, objective %.12g", status, s.info.ObjectiveFunctionValue)

	return callStatus(status)
}

// runEmpty short-circuits a model with no structural columns.
func (s *Solver) runEmpty() Status {
	m := s.model.NumRow
	s.sol = &lp.Solution{
		RowValue: make([]float64, m),
		RowDual:  make([]float64, m),
	}
	s.sol.Objective = s.model.Offset
	s.sol.SetValid(true)
	s.basis = lp.LogicalBasis(s.model)
	s.modelStatus = lp.StatusOptimal
	s.computeInfo(0, 0, 0)

	return Ok
}

// callStatus maps a model status to the call-level status: limit trips
// warn, failures error, everything decided is Ok.
func callStatus(status lp.ModelStatus) Status {
	switch status {
	case lp.StatusTimeLimit, lp.StatusIterationLimit, lp.StatusObjectiveBound:
		return Warning
	case lp.StatusSolveError, lp.StatusPresolveError, lp.StatusPostsolveError,
		lp.StatusModelError, lp.StatusLoadError:
		return Error
	default:
		return Ok
	}
}
