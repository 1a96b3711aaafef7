// SPDX-License-Identifier: MIT

package solver

import (
	"fmt"
	"io"
	"os"

	pkgerrors "github.com/pkg/errors"

	"github.com/katalvlaran/lvlopt/ipm"
	"github.com/katalvlaran/lvlopt/lp"
	"github.com/katalvlaran/lvlopt/presolve"
	"github.com/katalvlaran/lvlopt/simplex"
)

// Status is the call-level outcome of every public operation.
type Status int

const (
	// Ok: the operation completed as requested.
	Ok Status = iota
	// Warning: the operation completed with a caveat (typically a limit
	// trip); state is consistent.
	Warning
	// Error: the operation failed; state is unchanged unless documented.
	Error
)

// String returns the stable display name.
func (s Status) String() string {
	switch s {
	case Ok:
		return "Ok"
	case Warning:
		return "Warning"
	default:
		return "Error"
	}
}

// ModelReader parses a model file. File parsing is an external
// collaborator of the core; register an implementation before using
// ReadModel.
type ModelReader interface {
	Read(path string) (*lp.Lp, error)
}

// Solver is one solver instance: the exclusive owner of its model,
// basis, solution, info and stats. Not safe for concurrent use; multiple
// instances are independent.
type Solver struct {
	model *lp.Lp
	opts  *options

	basis *lp.Basis
	sol   *lp.Solution
	info  lp.Info
	stats lp.SimplexStats

	modelStatus lp.ModelStatus
	lastErr     error

	simplexEngine *simplex.Engine
	ipmEngine     *ipm.Engine

	pre         *presolve.Presolve
	presolvedLp *lp.Lp

	reader  ModelReader
	out     io.Writer
	runTime float64
}

// New constructs an instance with default options and no model.
func New() *Solver {
	return &Solver{
		opts:          newOptions(),
		modelStatus:   lp.StatusNotSet,
		simplexEngine: simplex.NewEngine(),
		ipmEngine:     ipm.NewEngine(),
		out:           os.Stdout,
	}
}

// SetReader registers the external model parser used by ReadModel.
func (s *Solver) SetReader(r ModelReader) { s.reader = r }

// SetOutput redirects run logging (default os.Stdout).
func (s *Solver) SetOutput(w io.Writer) { s.out = w }

// logf writes one log line when output_flag is on.
func (s *Solver) logf(format string, args ...any) {
	if s.opts.bools[OptOutputFlag] && s.out != nil {
		fmt.Fprintf(s.out, format+"\n", args...)
	}
}

// LastError reports the cause of the most recent Error status, wrapped
// with its operation context.
func (s *Solver) LastError() error { return s.lastErr }

// fail records an error outcome.
func (s *Solver) fail(status lp.ModelStatus, err error) Status {
	s.modelStatus = status
	s.lastErr = err

	return Error
}

// ReadModel loads a model file through the registered reader. On
// success the model replaces the current one and all solver state is
// cleared; on failure the model is left empty with a load/model error
// status.
func (s *Solver) ReadModel(path string) Status {
	if s.reader == nil {
		s.model = nil

		return s.fail(lp.StatusLoadError, pkgerrors.Wrap(ErrNoReader, path))
	}
	model, err := s.reader.Read(path)
	if err != nil {
		s.model = nil

		return s.fail(lp.StatusLoadError, pkgerrors.Wrapf(err, "read model %q", path))
	}
	if err := model.Validate(); err != nil {
		s.model = nil

		return s.fail(lp.StatusModelError, pkgerrors.Wrapf(err, "read model %q", path))
	}
	s.installModel(model)

	return Ok
}

// PassModel validates and installs a model built in memory. The model
// is cloned; the caller keeps ownership of its copy.
func (s *Solver) PassModel(model *lp.Lp) Status {
	if model == nil {
		return s.fail(lp.StatusModelError, ErrNoModel)
	}
	if err := model.Validate(); err != nil {
		return s.fail(lp.StatusModelError, pkgerrors.Wrap(err, "pass model"))
	}
	s.installModel(model.Clone())

	return Ok
}

// installModel replaces the model and clears per-model state.
func (s *Solver) installModel(model *lp.Lp) {
	s.model = model
	s.basis = nil
	s.sol = nil
	s.info = lp.Info{}
	s.stats = lp.SimplexStats{}
	s.pre = nil
	s.presolvedLp = nil
	s.modelStatus = lp.StatusNotSet
	s.lastErr = nil
}

// Lp returns the current model (read-only by convention).
func (s *Solver) Lp() *lp.Lp { return s.model }

// SetOptionValue type-checks and stores one option atomically. Changing
// the scaling strategy invalidates the stored basis: a warm start under
// different scaling is not the same iterate (documented Open Question
// resolution).
func (s *Solver) SetOptionValue(key string, value any) Status {
	prevScale := s.opts.ints[OptScaleStrategy]
	if err := s.opts.set(key, value); err != nil {
		s.lastErr = pkgerrors.Wrapf(err, "set option %q", key)

		return Error
	}
	if key == OptScaleStrategy && s.opts.ints[OptScaleStrategy] != prevScale && s.basis != nil {
		s.basis.Invalidate()
	}

	return Ok
}

// GetOptionValue copies the option value into out without mutating
// anything.
func (s *Solver) GetOptionValue(key string, out any) Status {
	if err := s.opts.get(key, out); err != nil {
		s.lastErr = pkgerrors.Wrapf(err, "get option %q", key)

		return Error
	}

	return Ok
}

// ResetOptions reverts every option to its documented default.
func (s *Solver) ResetOptions() Status {
	s.opts = newOptions()

	return Ok
}

// SetBasis installs a starting basis; nil installs the logical basis
// (all logicals basic, all structurals on a bound).
func (s *Solver) SetBasis(b *lp.Basis) Status {
	if s.model == nil {
		return s.fail(lp.StatusModelError, ErrNoModel)
	}
	if b == nil {
		s.basis = lp.LogicalBasis(s.model)

		return Ok
	}
	if err := b.CheckAgainst(s.model); err != nil {
		s.lastErr = pkgerrors.Wrap(err, "set basis")

		return Error
	}
	s.basis = b.Clone()
	s.basis.SetValid(true)

	return Ok
}

// Basis returns the current basis (nil before any install or run).
func (s *Solver) Basis() *lp.Basis { return s.basis }

// Solution returns the current solution (check Valid).
func (s *Solver) Solution() *lp.Solution { return s.sol }

// ClearSolver discards basis, solution, info and stats; the model and
// the options are preserved, as are the engines' working buffers.
func (s *Solver) ClearSolver() Status {
	s.basis = nil
	s.sol = nil
	s.info = lp.Info{}
	s.stats = lp.SimplexStats{}
	s.modelStatus = lp.StatusNotSet

	return Ok
}

// ChangeObjectiveSense flips the optimization direction. The current
// solution and basis stay; bound semantics of objective_bound are
// re-evaluated on the next run.
func (s *Solver) ChangeObjectiveSense(sense lp.Sense) Status {
	if s.model == nil {
		return s.fail(lp.StatusModelError, ErrNoModel)
	}
	s.model.Sense = sense

	return Ok
}

// AddCol appends a structural column. The solution is invalidated; a
// valid basis is preserved by extending it with the new variable
// nonbasic on a finite bound (or free).
func (s *Solver) AddCol(cost, lower, upper float64, index []int, value []float64) Status {
	if s.model == nil {
		return s.fail(lp.StatusModelError, ErrNoModel)
	}
	if err := s.model.AddCol(cost, lower, upper, index, value); err != nil {
		s.lastErr = pkgerrors.Wrap(err, "add col")

		return Error
	}
	if s.basis != nil && s.basis.Valid() {
		st := lp.LogicalBasis(s.model).Status[s.model.NumCol-1]
		// Insert the new structural status before the logical block.
		statuses := make([]lp.BasisStatus, 0, s.model.NumTot())
		statuses = append(statuses, s.basis.Status[:s.model.NumCol-1]...)
		statuses = append(statuses, st)
		statuses = append(statuses, s.basis.Status[s.model.NumCol-1:]...)
		s.basis.Status = statuses
	}
	if s.sol != nil {
		s.sol.SetValid(false)
	}

	return Ok
}

// AddRow appends a row. The solution is invalidated; a valid basis is
// preserved by making the new row's logical basic, which keeps the
// exactly-m-basic invariant.
func (s *Solver) AddRow(lower, upper float64, index []int, value []float64) Status {
	if s.model == nil {
		return s.fail(lp.StatusModelError, ErrNoModel)
	}
	if err := s.model.AddRow(lower, upper, index, value); err != nil {
		s.lastErr = pkgerrors.Wrap(err, "add row")

		return Error
	}
	if s.basis != nil && s.basis.Valid() {
		s.basis.Status = append(s.basis.Status, lp.Basic)
		s.basis.MarkChanged()
	}
	if s.sol != nil {
		s.sol.SetValid(false)
	}

	return Ok
}

// Presolve runs the reductions and retains the presolved model.
func (s *Solver) Presolve() Status {
	if s.model == nil {
		return s.fail(lp.StatusModelError, ErrNoModel)
	}
	pre, err := presolve.Run(s.model)
	if err != nil {
		return s.fail(lp.StatusPresolveError, pkgerrors.Wrap(err, "presolve"))
	}
	s.pre = pre
	s.presolvedLp = pre.Reduced()
	s.logf("presolve: %d rows and %d cols removed", pre.RowsDeleted, pre.ColsDeleted)

	return Ok
}

// PresolvedLp returns the most recent presolved model, nil if Presolve
// has not produced one.
func (s *Solver) PresolvedLp() *lp.Lp { return s.presolvedLp }

// Info returns the post-run snapshot; valid immediately after a run.
func (s *Solver) Info() lp.Info { return s.info }

// SimplexStats returns the factorization/iteration telemetry of the
// most recent simplex (or crossover) invocation.
func (s *Solver) SimplexStats() lp.SimplexStats { return s.stats }

// ModelStatus reports the outcome classification of the most recent
// run.
func (s *Solver) ModelStatus() lp.ModelStatus { return s.modelStatus }

// ModelStatusString is the stable, total display mapping.
func (s *Solver) ModelStatusString(status lp.ModelStatus) string { return status.String() }

// RunTime reports the accumulated wall-clock seconds spent inside Run.
func (s *Solver) RunTime() float64 { return s.runTime }
