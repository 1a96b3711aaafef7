// SPDX-License-Identifier: MIT

package solver_test

import (
	"io"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/lvlopt/lp"
	"github.com/katalvlaran/lvlopt/solver"
)

// blending: min -8x1 - 10x2, x >= 0, x1+2x2 <= 80, x1+4x2 <= 120.
// Optimum -640 at (80, 0).
func blending() *lp.Lp {
	return &lp.Lp{
		NumCol:   2,
		NumRow:   2,
		Sense:    lp.Minimize,
		ColCost:  []float64{-8, -10},
		ColLower: []float64{0, 0},
		ColUpper: []float64{lp.Inf, lp.Inf},
		RowLower: []float64{-lp.Inf, -lp.Inf},
		RowUpper: []float64{80, 120},
		Start:    []int{0, 2, 4},
		Index:    []int{0, 1, 0, 1},
		Value:    []float64{1, 1, 2, 4},
	}
}

// supply: min x1 + x2 - 50, x in [0,100]^2, x1 + x2 >= 20. Optimum -30;
// the logical basis enters phase 2 with dual objective -50, so bounds
// between -50 and -30 trip during phase 2 and bounds below -50 trip at
// the entry point.
func supply() *lp.Lp {
	return &lp.Lp{
		NumCol:   2,
		NumRow:   1,
		Sense:    lp.Minimize,
		Offset:   -50,
		ColCost:  []float64{1, 1},
		ColLower: []float64{0, 0},
		ColUpper: []float64{100, 100},
		RowLower: []float64{20},
		RowUpper: []float64{lp.Inf},
		Start:    []int{0, 1, 2},
		Index:    []int{0, 0},
		Value:    []float64{1, 1},
	}
}

// mixed is the four-column, three-row model with lower-only, free,
// upper-only and boxed columns, and a ranged, a >= and a <= row.
func mixed() *lp.Lp {
	return &lp.Lp{
		NumCol:   4,
		NumRow:   3,
		Sense:    lp.Minimize,
		Offset:   -0.5,
		ColCost:  []float64{1, 1, 1, -1},
		ColLower: []float64{1, -lp.Inf, -lp.Inf, -1},
		ColUpper: []float64{lp.Inf, lp.Inf, 2, 3},
		RowLower: []float64{0, 1, -lp.Inf},
		RowUpper: []float64{4, lp.Inf, 4},
		Start:    []int{0, 2, 4, 6, 8},
		Index:    []int{0, 2, 0, 1, 1, 2, 0, 2},
		Value:    []float64{1, 1, 1, 1, 1, 1, 1, 1},
	}
}

// newQuiet returns a solver with logging routed to a discard writer.
func newQuiet() *solver.Solver {
	s := solver.New()
	s.SetOutput(io.Discard)

	return s
}

// SolverSuite is the end-to-end suite over the public facade.
type SolverSuite struct {
	suite.Suite
}

// requireCleanComplementarity asserts the bit-exact post-run equalities.
func (s *SolverSuite) requireCleanComplementarity(h *solver.Solver) {
	info := h.Info()
	require.True(s.T(), info.Valid)
	require.Zero(s.T(), info.MaxComplementarityViolation)
	require.Zero(s.T(), info.SumComplementarityViolations)
}

// requireTightGap asserts the primal-dual gap invariant.
func (s *SolverSuite) requireTightGap(h *solver.Solver) {
	var dual float64
	require.Equal(s.T(), solver.Ok, h.DualObjectiveValue(&dual))
	primal := h.Info().ObjectiveFunctionValue
	gap := math.Abs(primal-dual) / math.Max(1, math.Abs(primal))
	require.Less(s.T(), gap, 1e-12)
}

// TestBlendingIpm is the blending scenario: IPM with presolve off.
func (s *SolverSuite) TestBlendingIpm() {
	h := newQuiet()
	require.Equal(s.T(), solver.Ok, h.PassModel(blending()))
	require.Equal(s.T(), solver.Ok, h.SetOptionValue(solver.OptSolver, solver.SolverIpm))
	require.Equal(s.T(), solver.Ok, h.SetOptionValue(solver.OptPresolve, solver.PresolveOff))
	require.Equal(s.T(), solver.Ok, h.Run())
	require.Equal(s.T(), lp.StatusOptimal, h.ModelStatus())
	require.Positive(s.T(), h.Info().IpmIterationCount)
	require.InDelta(s.T(), -640.0, h.Info().ObjectiveFunctionValue, 1e-6)
	s.requireCleanComplementarity(h)
}

// TestIpmCountsReproducible pins the (ipm, crossover) pair across two
// identical cold solves.
func (s *SolverSuite) TestIpmCountsReproducible() {
	counts := func() (int, int) {
		h := newQuiet()
		require.Equal(s.T(), solver.Ok, h.PassModel(blending()))
		require.Equal(s.T(), solver.Ok, h.SetOptionValue(solver.OptSolver, solver.SolverIpm))
		require.Equal(s.T(), solver.Ok, h.SetOptionValue(solver.OptPresolve, solver.PresolveOff))
		require.Equal(s.T(), solver.Ok, h.Run())
		require.Equal(s.T(), lp.StatusOptimal, h.ModelStatus())

		return h.Info().IpmIterationCount, h.Info().CrossoverIterationCount
	}
	ipm1, cross1 := counts()
	ipm2, cross2 := counts()
	require.Equal(s.T(), ipm1, ipm2)
	require.Equal(s.T(), cross1, cross2)
}

// TestDualObjectiveMax is the maximization gap scenario: sense max,
// offset 10, default routing.
func (s *SolverSuite) TestDualObjectiveMax() {
	model := blending()
	model.Sense = lp.Maximize
	model.Offset = 10
	model.ColCost = []float64{8, 10}

	h := newQuiet()
	require.Equal(s.T(), solver.Ok, h.PassModel(model))
	require.Equal(s.T(), solver.Ok, h.Run())
	require.Equal(s.T(), lp.StatusOptimal, h.ModelStatus())
	require.InDelta(s.T(), 650.0, h.Info().ObjectiveFunctionValue, 1e-9)
	s.requireTightGap(h)
	s.requireCleanComplementarity(h)
}

// TestObjectiveBound covers both trip points and the maximization
// exemption, with presolve both on and off.
func (s *SolverSuite) TestObjectiveBound() {
	for _, pres := range []string{solver.PresolveOff, solver.PresolveOn} {
		h := newQuiet()
		require.Equal(s.T(), solver.Ok, h.PassModel(supply()))
		require.Equal(s.T(), solver.Ok, h.SetOptionValue(solver.OptPresolve, pres))

		// Vanilla solve first.
		require.Equal(s.T(), solver.Ok, h.Run())
		require.Equal(s.T(), lp.StatusOptimal, h.ModelStatus())
		require.InDelta(s.T(), -30.0, h.Info().ObjectiveFunctionValue, 1e-9)

		// Bound between entry (-50) and optimum (-30): trips in phase 2.
		require.Equal(s.T(), solver.Ok, h.SetOptionValue(solver.OptObjectiveBound, -45.0))
		require.Equal(s.T(), solver.Ok, h.SetBasis(nil))
		require.Equal(s.T(), solver.Warning, h.Run())
		require.Equal(s.T(), lp.StatusObjectiveBound, h.ModelStatus())

		// Bound below the entry value: trips before the first pivot.
		require.Equal(s.T(), solver.Ok, h.SetOptionValue(solver.OptObjectiveBound, -60.0))
		require.Equal(s.T(), solver.Ok, h.SetBasis(nil))
		require.Equal(s.T(), solver.Warning, h.Run())
		require.Equal(s.T(), lp.StatusObjectiveBound, h.ModelStatus())
		require.Zero(s.T(), h.Info().SimplexIterationCount)

		// Maximization ignores the bound entirely.
		require.Equal(s.T(), solver.Ok, h.ChangeObjectiveSense(lp.Maximize))
		require.Equal(s.T(), solver.Ok, h.SetOptionValue(solver.OptObjectiveBound, 150.0))
		require.Equal(s.T(), solver.Ok, h.SetBasis(nil))
		require.Equal(s.T(), solver.Ok, h.Run())
		require.Equal(s.T(), lp.StatusOptimal, h.ModelStatus())
		require.InEpsilon(s.T(), 150.0, h.Info().ObjectiveFunctionValue, 1e-10)
		s.requireTightGap(h)
	}
}

// TestObjectiveBoundZero verifies a bound of exactly 0.0 stays active
// through the option table: with a zero offset the dual objective climbs
// from 0 toward +20 and must trip, not run to Optimal.
func (s *SolverSuite) TestObjectiveBoundZero() {
	model := supply()
	model.Offset = 0

	h := newQuiet()
	require.Equal(s.T(), solver.Ok, h.PassModel(model))
	require.Equal(s.T(), solver.Ok, h.SetOptionValue(solver.OptPresolve, solver.PresolveOff))
	require.Equal(s.T(), solver.Ok, h.SetOptionValue(solver.OptObjectiveBound, 0.0))
	require.Equal(s.T(), solver.Warning, h.Run())
	require.Equal(s.T(), lp.StatusObjectiveBound, h.ModelStatus())
}

// TestWarmStart verifies the zero-iteration warm start and the cold
// count reproduction with use_warm_start off.
func (s *SolverSuite) TestWarmStart() {
	h := newQuiet()
	require.Equal(s.T(), solver.Ok, h.PassModel(mixed()))
	require.Equal(s.T(), solver.Ok, h.Run())
	require.Equal(s.T(), lp.StatusOptimal, h.ModelStatus())
	cold := h.Info().SimplexIterationCount

	// Warm re-solve: zero pivots.
	require.Equal(s.T(), solver.Ok, h.Run())
	require.Equal(s.T(), lp.StatusOptimal, h.ModelStatus())
	require.Zero(s.T(), h.Info().SimplexIterationCount)

	// Cold count reproduces exactly without warm starts.
	require.Equal(s.T(), solver.Ok, h.SetOptionValue(solver.OptUseWarmStart, false))
	require.Equal(s.T(), solver.Ok, h.Run())
	require.Equal(s.T(), lp.StatusOptimal, h.ModelStatus())
	require.Equal(s.T(), cold, h.Info().SimplexIterationCount)
}

// TestIterationLimits verifies the zero and partial simplex budgets and
// the zero IPM budget.
func (s *SolverSuite) TestIterationLimits() {
	h := newQuiet()
	require.Equal(s.T(), solver.Ok, h.PassModel(supply()))
	require.Equal(s.T(), solver.Ok, h.SetOptionValue(solver.OptPresolve, solver.PresolveOff))

	require.Equal(s.T(), solver.Ok, h.SetOptionValue(solver.OptSimplexIterLimit, 0))
	require.Equal(s.T(), solver.Ok, h.SetBasis(nil))
	require.Equal(s.T(), solver.Warning, h.Run())
	require.Equal(s.T(), lp.StatusIterationLimit, h.ModelStatus())
	require.Zero(s.T(), h.Info().SimplexIterationCount)

	// Restore and measure the cold count, then replay under that exact
	// budget: the run must stop at the limit count.
	require.Equal(s.T(), solver.Ok, h.SetOptionValue(solver.OptSimplexIterLimit, 10000000))
	require.Equal(s.T(), solver.Ok, h.SetBasis(nil))
	require.Equal(s.T(), solver.Ok, h.Run())
	cold := h.Info().SimplexIterationCount
	require.Positive(s.T(), cold)

	require.Equal(s.T(), solver.Ok, h.SetOptionValue(solver.OptSimplexIterLimit, cold-1))
	require.Equal(s.T(), solver.Ok, h.SetBasis(nil))
	require.Equal(s.T(), solver.Warning, h.Run())
	require.Equal(s.T(), lp.StatusIterationLimit, h.ModelStatus())
	require.Equal(s.T(), cold-1, h.Info().SimplexIterationCount)

	// IPM budget of zero performs zero interior iterations.
	g := newQuiet()
	require.Equal(s.T(), solver.Ok, g.PassModel(blending()))
	require.Equal(s.T(), solver.Ok, g.SetOptionValue(solver.OptSolver, solver.SolverIpm))
	require.Equal(s.T(), solver.Ok, g.SetOptionValue(solver.OptIpmIterLimit, 0))
	require.Equal(s.T(), solver.Warning, g.Run())
	require.Equal(s.T(), lp.StatusIterationLimit, g.ModelStatus())
	require.Zero(s.T(), g.Info().IpmIterationCount)
}

// TestTimeLimit verifies an already-expired clock budget trips cleanly
// before the first pivot.
func (s *SolverSuite) TestTimeLimit() {
	h := newQuiet()
	require.Equal(s.T(), solver.Ok, h.PassModel(supply()))
	require.Equal(s.T(), solver.Ok, h.SetOptionValue(solver.OptPresolve, solver.PresolveOff))
	require.Equal(s.T(), solver.Ok, h.SetOptionValue(solver.OptTimeLimit, 1e-12))
	require.Equal(s.T(), solver.Warning, h.Run())
	require.Equal(s.T(), lp.StatusTimeLimit, h.ModelStatus())

	// Restoring a real budget lets the same instance solve.
	require.Equal(s.T(), solver.Ok, h.SetOptionValue(solver.OptTimeLimit, lp.Inf))
	require.Equal(s.T(), solver.Ok, h.SetBasis(nil))
	require.Equal(s.T(), solver.Ok, h.Run())
	require.Equal(s.T(), lp.StatusOptimal, h.ModelStatus())
}

// TestStrategies verifies every pivot strategy solves the fixture to
// the same optimum and reproduces its own iteration count.
func (s *SolverSuite) TestStrategies() {
	for strategy := 0; strategy <= 4; strategy++ {
		counts := make([]int, 0, 2)
		for rep := 0; rep < 2; rep++ {
			h := newQuiet()
			require.Equal(s.T(), solver.Ok, h.PassModel(mixed()))
			require.Equal(s.T(), solver.Ok, h.SetOptionValue(solver.OptSolver, solver.SolverSimplex))
			require.Equal(s.T(), solver.Ok, h.SetOptionValue(solver.OptSimplexStrategy, strategy))
			require.Equal(s.T(), solver.Ok, h.Run())
			require.Equal(s.T(), lp.StatusOptimal, h.ModelStatus(), "strategy %d", strategy)
			counts = append(counts, h.Info().SimplexIterationCount)
			s.requireCleanComplementarity(h)
			s.requireTightGap(h)
		}
		require.Equal(s.T(), counts[0], counts[1], "strategy %d", strategy)
	}
}

// TestStandardFormRoundTrip solves the mixed fixture, exports the
// standard form through the two-call protocol, re-solves the image and
// compares objectives; then repeats after adding a fixed column, a
// fixed row and flipping to maximization.
func (s *SolverSuite) TestStandardFormRoundTrip() {
	s.roundTrip(mixed())

	h := newQuiet()
	require.Equal(s.T(), solver.Ok, h.PassModel(mixed()))
	require.Equal(s.T(), solver.Ok,
		h.AddCol(-2.0, 1.0, 1.0, []int{0, 1, 2}, []float64{-1, 1, -1}))
	require.Equal(s.T(), solver.Ok,
		h.AddRow(1.0, 1.0, []int{0, 1, 2, 3}, []float64{-2, -1, 1, 3}))
	require.Equal(s.T(), solver.Ok, h.ChangeObjectiveSense(lp.Maximize))
	s.roundTrip(h.Lp().Clone())
}

// roundTrip is the §4.6 invariant on one model.
func (s *SolverSuite) roundTrip(model *lp.Lp) {
	h := newQuiet()
	require.Equal(s.T(), solver.Ok, h.PassModel(model))
	require.Equal(s.T(), solver.Ok, h.Run())
	require.Equal(s.T(), lp.StatusOptimal, h.ModelStatus())
	want := h.Info().ObjectiveFunctionValue

	var numCol, numRow, numNz int
	var offset float64
	require.Equal(s.T(), solver.Ok,
		h.StandardFormLp(&numCol, &numRow, &numNz, &offset, nil, nil, nil, nil, nil))

	cost := make([]float64, numCol)
	rhs := make([]float64, numRow)
	start := make([]int, numCol+1)
	index := make([]int, numNz)
	value := make([]float64, numNz)
	require.Equal(s.T(), solver.Ok,
		h.StandardFormLp(&numCol, &numRow, &numNz, &offset, cost, rhs, start, index, value))

	std := &lp.Lp{
		NumCol:   numCol,
		NumRow:   numRow,
		Sense:    lp.Minimize,
		Offset:   offset,
		ColCost:  cost,
		ColLower: make([]float64, numCol),
		ColUpper: make([]float64, numCol),
		RowLower: rhs,
		RowUpper: append([]float64(nil), rhs...),
		Start:    start,
		Index:    index,
		Value:    value,
	}
	for j := range std.ColUpper {
		std.ColUpper[j] = lp.Inf
	}

	g := newQuiet()
	require.Equal(s.T(), solver.Ok, g.PassModel(std))
	require.Equal(s.T(), solver.Ok, g.Run())
	require.Equal(s.T(), lp.StatusOptimal, g.ModelStatus())
	got := float64(model.Sense) * g.Info().ObjectiveFunctionValue

	diff := math.Abs(got-want) / math.Max(1, math.Abs(want))
	require.Less(s.T(), diff, 1e-10)
}

// TestOptionsErrors verifies the atomic option contract.
func (s *SolverSuite) TestOptionsErrors() {
	h := newQuiet()
	require.Equal(s.T(), solver.Error, h.SetOptionValue("no_such_option", 1))

	// Type mismatch leaves the value untouched.
	require.Equal(s.T(), solver.Error, h.SetOptionValue(solver.OptTimeLimit, "fast"))
	var limit float64
	require.Equal(s.T(), solver.Ok, h.GetOptionValue(solver.OptTimeLimit, &limit))
	require.Equal(s.T(), lp.Inf, limit)

	// Out-of-range values are rejected without mutation.
	require.Equal(s.T(), solver.Error, h.SetOptionValue(solver.OptSimplexStrategy, 9))
	var strategy int
	require.Equal(s.T(), solver.Ok, h.GetOptionValue(solver.OptSimplexStrategy, &strategy))
	require.Zero(s.T(), strategy)
	require.Equal(s.T(), solver.Error, h.SetOptionValue(solver.OptSolver, "quantum"))

	// Wrong out pointer type on reads.
	require.Equal(s.T(), solver.Error, h.GetOptionValue(solver.OptTimeLimit, &strategy))

	// Reset restores the documented defaults.
	require.Equal(s.T(), solver.Ok, h.SetOptionValue(solver.OptSolver, solver.SolverIpm))
	require.Equal(s.T(), solver.Ok, h.ResetOptions())
	var which string
	require.Equal(s.T(), solver.Ok, h.GetOptionValue(solver.OptSolver, &which))
	require.Equal(s.T(), solver.SolverChoose, which)
}

// TestEmptyModel verifies the empty-model short circuit.
func (s *SolverSuite) TestEmptyModel() {
	model := &lp.Lp{Sense: lp.Minimize, Offset: 3.25, Start: []int{0}}
	h := newQuiet()
	require.Equal(s.T(), solver.Ok, h.PassModel(model))
	require.Equal(s.T(), solver.Ok, h.Run())
	require.Equal(s.T(), lp.StatusOptimal, h.ModelStatus())
	require.Equal(s.T(), 3.25, h.Info().ObjectiveFunctionValue)
	require.Zero(s.T(), h.Info().SimplexIterationCount)
}

// TestInfeasible verifies classification with and without presolve.
func (s *SolverSuite) TestInfeasible() {
	model := &lp.Lp{
		NumCol:   1,
		NumRow:   1,
		Sense:    lp.Minimize,
		ColCost:  []float64{1},
		ColLower: []float64{2},
		ColUpper: []float64{lp.Inf},
		RowLower: []float64{-lp.Inf},
		RowUpper: []float64{1},
		Start:    []int{0, 1},
		Index:    []int{0},
		Value:    []float64{1},
	}
	for _, pres := range []string{solver.PresolveOn, solver.PresolveOff} {
		h := newQuiet()
		require.Equal(s.T(), solver.Ok, h.PassModel(model))
		require.Equal(s.T(), solver.Ok, h.SetOptionValue(solver.OptPresolve, pres))
		require.Equal(s.T(), solver.Ok, h.Run())
		require.Equal(s.T(), lp.StatusInfeasible, h.ModelStatus(), "presolve %s", pres)
	}
}

// TestUnbounded verifies the ray classification; presolve proves only
// the weaker unbounded-or-infeasible claim.
func (s *SolverSuite) TestUnbounded() {
	model := &lp.Lp{
		NumCol:   1,
		NumRow:   1,
		Sense:    lp.Minimize,
		ColCost:  []float64{-1},
		ColLower: []float64{0},
		ColUpper: []float64{lp.Inf},
		RowLower: []float64{0},
		RowUpper: []float64{lp.Inf},
		Start:    []int{0, 1},
		Index:    []int{0},
		Value:    []float64{1},
	}
	h := newQuiet()
	require.Equal(s.T(), solver.Ok, h.PassModel(model))
	require.Equal(s.T(), solver.Ok, h.SetOptionValue(solver.OptPresolve, solver.PresolveOff))
	require.Equal(s.T(), solver.Ok, h.Run())
	require.Equal(s.T(), lp.StatusUnbounded, h.ModelStatus())

	g := newQuiet()
	require.Equal(s.T(), solver.Ok, g.PassModel(model))
	require.Equal(s.T(), solver.Ok, g.SetOptionValue(solver.OptPresolve, solver.PresolveOn))
	require.Equal(s.T(), solver.Ok, g.Run())
	require.Equal(s.T(), lp.StatusUnboundedOrInfeasible, g.ModelStatus())
}

// TestPresolveOnOffAgree verifies both paths land on the same optimum.
func (s *SolverSuite) TestPresolveOnOffAgree() {
	objective := func(pres string) float64 {
		h := newQuiet()
		require.Equal(s.T(), solver.Ok, h.PassModel(mixed()))
		require.Equal(s.T(), solver.Ok, h.SetOptionValue(solver.OptPresolve, pres))
		require.Equal(s.T(), solver.Ok, h.Run())
		require.Equal(s.T(), lp.StatusOptimal, h.ModelStatus())
		s.requireCleanComplementarity(h)

		return h.Info().ObjectiveFunctionValue
	}
	require.InDelta(s.T(), objective(solver.PresolveOff), objective(solver.PresolveOn), 1e-9)
}

// TestPresolveQuery verifies the standalone presolve entry points.
func (s *SolverSuite) TestPresolveQuery() {
	h := newQuiet()
	require.Equal(s.T(), solver.Ok, h.PassModel(supply()))
	require.Nil(s.T(), h.PresolvedLp())
	require.Equal(s.T(), solver.Ok, h.Presolve())
	require.NotNil(s.T(), h.PresolvedLp())
	require.NoError(s.T(), h.PresolvedLp().Validate())
}

// TestScaleChangeInvalidatesBasis verifies the documented warm-start
// interaction: changing the scaling strategy forces a cold re-solve.
func (s *SolverSuite) TestScaleChangeInvalidatesBasis() {
	h := newQuiet()
	require.Equal(s.T(), solver.Ok, h.PassModel(mixed()))
	require.Equal(s.T(), solver.Ok, h.Run())
	cold := h.Info().SimplexIterationCount
	require.Positive(s.T(), cold)

	require.Equal(s.T(), solver.Ok, h.SetOptionValue(solver.OptScaleStrategy, 0))
	require.Equal(s.T(), solver.Ok, h.Run())
	require.Equal(s.T(), lp.StatusOptimal, h.ModelStatus())
	require.Positive(s.T(), h.Info().SimplexIterationCount)
}

// TestSimplexStats verifies the telemetry block after a pivoting run.
func (s *SolverSuite) TestSimplexStats() {
	h := newQuiet()
	require.Equal(s.T(), solver.Ok, h.PassModel(supply()))
	require.Equal(s.T(), solver.Ok, h.SetOptionValue(solver.OptPresolve, solver.PresolveOff))
	require.Equal(s.T(), solver.Ok, h.Run())
	require.Equal(s.T(), lp.StatusOptimal, h.ModelStatus())

	stats := h.SimplexStats()
	require.True(s.T(), stats.Valid)
	require.Positive(s.T(), stats.IterationCount)
	require.Positive(s.T(), stats.NumInvert)
	require.Positive(s.T(), stats.LastInvertNumEl)
	require.Positive(s.T(), stats.LastFactoredBasisNumEl)
	require.Positive(s.T(), stats.ColAqDensity)
	require.Positive(s.T(), stats.RowEpDensity)
	require.Positive(s.T(), stats.RowApDensity)
	require.Positive(s.T(), stats.RowDSEDensity)
}

// TestRunTimeAccumulates verifies the run-time counter moves.
func (s *SolverSuite) TestRunTimeAccumulates() {
	h := newQuiet()
	require.Equal(s.T(), solver.Ok, h.PassModel(blending()))
	require.Equal(s.T(), solver.Ok, h.Run())
	require.Greater(s.T(), h.RunTime(), 0.0)
}

// TestReadModelWithoutReader verifies the external-parser contract.
func (s *SolverSuite) TestReadModelWithoutReader() {
	h := newQuiet()
	require.Equal(s.T(), solver.Error, h.ReadModel("instances/adlittle.mps"))
	require.Equal(s.T(), lp.StatusLoadError, h.ModelStatus())
	require.ErrorIs(s.T(), h.LastError(), solver.ErrNoReader)
}

// TestPassModelRejectsMalformed verifies validation at the boundary.
func (s *SolverSuite) TestPassModelRejectsMalformed() {
	bad := blending()
	bad.ColLower[0], bad.ColUpper[0] = 3, 1
	h := newQuiet()
	require.Equal(s.T(), solver.Error, h.PassModel(bad))
	require.Equal(s.T(), lp.StatusModelError, h.ModelStatus())
	require.ErrorIs(s.T(), h.LastError(), lp.ErrBounds)
}

// TestClearSolver verifies state partitioning: solver state drops, the
// model and options stay.
func (s *SolverSuite) TestClearSolver() {
	h := newQuiet()
	require.Equal(s.T(), solver.Ok, h.PassModel(blending()))
	require.Equal(s.T(), solver.Ok, h.SetOptionValue(solver.OptPresolve, solver.PresolveOff))
	require.Equal(s.T(), solver.Ok, h.Run())
	require.Equal(s.T(), solver.Ok, h.ClearSolver())
	require.Equal(s.T(), lp.StatusNotSet, h.ModelStatus())
	require.Nil(s.T(), h.Basis())
	require.NotNil(s.T(), h.Lp())

	var pres string
	require.Equal(s.T(), solver.Ok, h.GetOptionValue(solver.OptPresolve, &pres))
	require.Equal(s.T(), solver.PresolveOff, pres)

	// A fresh run behaves like a cold solve.
	require.Equal(s.T(), solver.Ok, h.Run())
	require.Equal(s.T(), lp.StatusOptimal, h.ModelStatus())
}

// TestGapAcrossFixtures verifies the primal-dual gap invariant on every
// bounded fixture through the default routing.
func (s *SolverSuite) TestGapAcrossFixtures() {
	for name, model := range map[string]*lp.Lp{
		"blending": blending(),
		"supply":   supply(),
		"mixed":    mixed(),
	} {
		h := newQuiet()
		require.Equal(s.T(), solver.Ok, h.PassModel(model), name)
		require.Equal(s.T(), solver.Ok, h.Run(), name)
		require.Equal(s.T(), lp.StatusOptimal, h.ModelStatus(), name)
		s.requireTightGap(h)
		s.requireCleanComplementarity(h)
	}
}

func TestSolverSuite(t *testing.T) { suite.Run(t, new(SolverSuite)) }
