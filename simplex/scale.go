// SPDX-License-Identifier: MIT

package simplex

import (
	"math"

	"github.com/katalvlaran/lvlopt/lp"
)

// scaleEquilibrationPasses is the number of alternating row/column
// geometric-mean sweeps.
const scaleEquilibrationPasses = 4

// scaling holds the row and column equilibration factors of one run.
// Factors are snapped to powers of two so that scaling and unscaling are
// exact in floating point and cannot perturb reported values.
type scaling struct {
	active   bool
	colScale []float64
	rowScale []float64
}

// pow2Near snaps a positive factor to the nearest power of two.
func pow2Near(v float64) float64 {
	if v <= 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return 1
	}
	_, exp := math.Frexp(v)
	// Frexp gives v = frac * 2^exp with frac in [0.5,1); round the
	// exponent by comparing against sqrt(2)/2 scaled midpoint.
	lower := math.Ldexp(1, exp-1)
	upper := math.Ldexp(1, exp)
	if v/lower < upper/v {
		return lower
	}

	return upper
}

// buildScaling computes iterated geometric-mean equilibration factors
// for the model, or an inactive scaling when strategy is 0 or the matrix
// is empty.
//
// Steps per pass: for every row, factor 1/sqrt(min|a|*max|a|) over the
// currently scaled entries; then the same per column. Factors snap to
// powers of two at the end.
func buildScaling(model *lp.Lp, strategy int) *scaling {
	s := &scaling{
		colScale: make([]float64, model.NumCol),
		rowScale: make([]float64, model.NumRow),
	}
	for j := range s.colScale {
		s.colScale[j] = 1
	}
	for i := range s.rowScale {
		s.rowScale[i] = 1
	}
	if strategy == 0 || model.NumNz() == 0 {
		return s
	}

	rowMin := make([]float64, model.NumRow)
	rowMax := make([]float64, model.NumRow)
	for pass := 0; pass < scaleEquilibrationPasses; pass++ {
		for i := range rowMin {
			rowMin[i], rowMax[i] = math.MaxFloat64, 0
		}
		for j := 0; j < model.NumCol; j++ {
			for k := model.Start[j]; k < model.Start[j+1]; k++ {
				a := math.Abs(model.Value[k]) * s.rowScale[model.Index[k]] * s.colScale[j]
				i := model.Index[k]
				if a < rowMin[i] {
					rowMin[i] = a
				}
				if a > rowMax[i] {
					rowMax[i] = a
				}
			}
		}
		for i := range s.rowScale {
			if rowMax[i] > 0 {
				s.rowScale[i] /= math.Sqrt(rowMin[i] * rowMax[i])
			}
		}
		for j := 0; j < model.NumCol; j++ {
			colMin, colMax := math.MaxFloat64, 0.0
			for k := model.Start[j]; k < model.Start[j+1]; k++ {
				a := math.Abs(model.Value[k]) * s.rowScale[model.Index[k]] * s.colScale[j]
				if a < colMin {
					colMin = a
				}
				if a > colMax {
					colMax = a
				}
			}
			if colMax > 0 {
				s.colScale[j] /= math.Sqrt(colMin * colMax)
			}
		}
	}
	for j := range s.colScale {
		s.colScale[j] = pow2Near(s.colScale[j])
	}
	for i := range s.rowScale {
		s.rowScale[i] = pow2Near(s.rowScale[i])
	}
	s.active = true

	return s
}

// scaledBound multiplies a bound by a factor, keeping the infinity
// sentinel saturated.
func scaledBound(b, factor float64) float64 {
	if b <= -lp.Inf {
		return -lp.Inf
	}
	if b >= lp.Inf {
		return lp.Inf
	}

	return b * factor
}

// apply produces the scaled working model: A' = R·A·C, column bounds
// divided by colScale, row bounds multiplied by rowScale, and costs
// multiplied by colScale so the scaled objective value equals the
// original one.
func (s *scaling) apply(model *lp.Lp) *lp.Lp {
	out := model.Clone()
	if !s.active {
		return out
	}
	for j := 0; j < out.NumCol; j++ {
		c := s.colScale[j]
		out.ColCost[j] *= c
		out.ColLower[j] = scaledBound(out.ColLower[j], 1/c)
		out.ColUpper[j] = scaledBound(out.ColUpper[j], 1/c)
		for k := out.Start[j]; k < out.Start[j+1]; k++ {
			out.Value[k] *= s.rowScale[out.Index[k]] * c
		}
	}
	for i := 0; i < out.NumRow; i++ {
		r := s.rowScale[i]
		out.RowLower[i] = scaledBound(out.RowLower[i], r)
		out.RowUpper[i] = scaledBound(out.RowUpper[i], r)
	}

	return out
}

// unscaleValue maps a scaled variable value back to the original space.
func (s *scaling) unscaleValue(v int, numCol int, value float64) float64 {
	if !s.active {
		return value
	}
	if v < numCol {
		return value * s.colScale[v]
	}

	return value / s.rowScale[v-numCol]
}

// unscaleDual maps a scaled reduced cost (structural) or row dual
// (logical) back to the original space.
func (s *scaling) unscaleDual(v int, numCol int, dual float64) float64 {
	if !s.active {
		return dual
	}
	if v < numCol {
		return dual / s.colScale[v]
	}

	return dual * s.rowScale[v-numCol]
}
