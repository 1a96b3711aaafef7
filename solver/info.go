// SPDX-License-Identifier: MIT

package solver

import (
	"math"

	"github.com/katalvlaran/lvlopt/lp"
)

// computeInfo regenerates the info snapshot from the current solution
// and basis. Infeasibilities are measured against the feasibility
// tolerances; complementarity products use the assigned variable values,
// which sit exactly on bounds for nonbasic variables, so a clean run
// reports bit-zero complementarity.
func (s *Solver) computeInfo(simplexIters, ipmIters, crossIters int) {
	s.info = lp.Info{
		SimplexIterationCount:   simplexIters,
		IpmIterationCount:       ipmIters,
		CrossoverIterationCount: crossIters,
		Valid:                   true,
	}
	if s.sol == nil || !s.sol.Valid() {
		return
	}
	s.info.ObjectiveFunctionValue = s.sol.Objective

	primalTol := s.opts.doubles[OptPrimalFeasTol]
	dualTol := s.opts.doubles[OptDualFeasTol]
	sense := float64(s.model.Sense)

	primal := func(value, lower, upper float64) {
		viol := 0.0
		if value < lower-primalTol {
			viol = lower - value
		} else if value > upper+primalTol {
			viol = value - upper
		}
		if viol > 0 {
			s.info.NumPrimalInfeasibilities++
			s.info.SumPrimalInfeasibilities += viol
			if viol > s.info.MaxPrimalInfeasibility {
				s.info.MaxPrimalInfeasibility = viol
			}
		}
	}
	dual := func(st lp.BasisStatus, dualValue float64) {
		d := sense * dualValue
		viol := 0.0
		switch st {
		case lp.NonbasicLower:
			if d < -dualTol {
				viol = -d
			}
		case lp.NonbasicUpper:
			if d > dualTol {
				viol = d
			}
		case lp.NonbasicFree:
			viol = math.Abs(d)
			if viol <= dualTol {
				viol = 0
			}
		default:
			// Basic and fixed variables are dual feasible by definition.
		}
		if viol > 0 {
			s.info.NumDualInfeasibilities++
			s.info.SumDualInfeasibilities += viol
			if viol > s.info.MaxDualInfeasibility {
				s.info.MaxDualInfeasibility = viol
			}
		}
	}
	comp := func(value, lower, upper, dualValue float64) {
		dist := math.MaxFloat64
		if lower > -lp.Inf {
			dist = math.Abs(value - lower)
		}
		if upper < lp.Inf {
			if d := math.Abs(upper - value); d < dist {
				dist = d
			}
		}
		if dist == math.MaxFloat64 {
			dist = 0
		}
		viol := math.Abs(dualValue) * dist
		s.info.SumComplementarityViolations += viol
		if viol > s.info.MaxComplementarityViolation {
			s.info.MaxComplementarityViolation = viol
		}
	}

	n := s.model.NumCol
	haveBasis := s.basis != nil && len(s.basis.Status) == s.model.NumTot()
	for j := 0; j < n; j++ {
		primal(s.sol.ColValue[j], s.model.ColLower[j], s.model.ColUpper[j])
		comp(s.sol.ColValue[j], s.model.ColLower[j], s.model.ColUpper[j], s.sol.ColDual[j])
		if haveBasis {
			dual(s.basis.Status[j], s.sol.ColDual[j])
		}
	}
	for i := 0; i < s.model.NumRow; i++ {
		primal(s.sol.RowValue[i], s.model.RowLower[i], s.model.RowUpper[i])
		comp(s.sol.RowValue[i], s.model.RowLower[i], s.model.RowUpper[i], s.sol.RowDual[i])
		if haveBasis {
			dual(s.basis.Status[n+i], s.sol.RowDual[i])
		}
	}
}

// DualObjectiveValue computes the dual objective of the current
// solution: the offset plus every dual multiplier times the bound it
// supports (in the sense-adjusted space, positive multipliers support
// lower bounds). After a clean run it matches the primal objective to
// rounding, which is the tested primal-dual gap invariant.
func (s *Solver) DualObjectiveValue(out *float64) Status {
	if s.model == nil {
		return s.fail(lp.StatusModelError, ErrNoModel)
	}
	if s.sol == nil || !s.sol.Valid() {
		s.lastErr = ErrNoSolution

		return Error
	}

	sense := float64(s.model.Sense)
	value := sense * s.model.Offset
	add := func(dualValue, lower, upper float64) {
		d := sense * dualValue
		switch {
		case d > 0 && lower > -lp.Inf:
			value += d * lower
		case d < 0 && upper < lp.Inf:
			value += d * upper
		}
	}
	for j := 0; j < s.model.NumCol; j++ {
		add(s.sol.ColDual[j], s.model.ColLower[j], s.model.ColUpper[j])
	}
	for i := 0; i < s.model.NumRow; i++ {
		add(s.sol.RowDual[i], s.model.RowLower[i], s.model.RowUpper[i])
	}
	*out = sense * value

	return Ok
}

// StandardFormLp is the two-call export protocol of the standard-form
// image. The first call (nil slices) fills the sizes; the second call
// fills caller buffers, which must match the size query.
func (s *Solver) StandardFormLp(numCol, numRow, numNz *int, offset *float64,
	cost, rhs []float64, start, index []int, value []float64) Status {
	if s.model == nil {
		return s.fail(lp.StatusModelError, ErrNoModel)
	}
	std, err := s.model.StandardForm()
	if err != nil {
		s.lastErr = err

		return Error
	}
	*numCol = std.NumCol
	*numRow = std.NumRow
	*numNz = std.NumNz()
	*offset = std.Offset
	if cost == nil && rhs == nil && start == nil && index == nil && value == nil {
		return Ok
	}
	if len(cost) < std.NumCol || len(rhs) < std.NumRow ||
		len(start) < std.NumCol+1 || len(index) < std.NumNz() || len(value) < std.NumNz() {
		s.lastErr = ErrStandardFormSize

		return Error
	}
	copy(cost, std.Cost)
	copy(rhs, std.Rhs)
	copy(start, std.Start)
	copy(index, std.Index)
	copy(value, std.Value)

	return Ok
}
