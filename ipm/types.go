// SPDX-License-Identifier: MIT

package ipm

import "github.com/katalvlaran/lvlopt/lp"

// Configuration defaults (single source of truth).
const (
	// DefaultIterationLimit caps predictor-corrector iterations.
	DefaultIterationLimit = 200
	// DefaultPrimalFeasTol bounds the scaled primal residual.
	DefaultPrimalFeasTol = 1e-7
	// DefaultDualFeasTol bounds the scaled dual residual.
	DefaultDualFeasTol = 1e-7
	// gapTolFactor derives the duality-gap tolerance from the product of
	// the feasibility tolerances (1e-7 each => 1e-9 gap).
	gapTolFactor = 1e5
	// stepScale is the fraction-to-the-boundary step multiplier.
	stepScale = 0.9995
	// divergenceLimit classifies a blown-up iterate as infeasible or
	// unbounded rather than iterating to the limit.
	divergenceLimit = 1e16
)

// Config carries one run's interior-point settings.
type Config struct {
	IterationLimit int
	TimeLimit      float64 // seconds; <=0 or >=lp.Inf means none

	PrimalFeasTol float64
	DualFeasTol   float64

	// CrossoverScaleStrategy is forwarded to the cleanup simplex.
	CrossoverScaleStrategy int

	Logf func(format string, args ...any)
}

// Normalize fills unset fields with the documented defaults. A negative
// IterationLimit selects the default; zero is honored as "no
// iterations", which the budget contract requires.
func (c *Config) Normalize() {
	if c.IterationLimit < 0 {
		c.IterationLimit = DefaultIterationLimit
	}
	if c.PrimalFeasTol <= 0 {
		c.PrimalFeasTol = DefaultPrimalFeasTol
	}
	if c.DualFeasTol <= 0 {
		c.DualFeasTol = DefaultDualFeasTol
	}
}

// gapTol is the derived duality-gap tolerance.
func (c *Config) gapTol() float64 { return c.PrimalFeasTol * c.DualFeasTol * gapTolFactor }

// Result reports one engine run.
type Result struct {
	Status              lp.ModelStatus
	IpmIterations       int
	CrossoverIterations int
}
