// SPDX-License-Identifier: MIT

package simplex

import (
	"time"

	"github.com/katalvlaran/lvlopt/lp"
)

// Strategy selects the pivot strategy.
type Strategy int

const (
	// StrategyChoose lets the engine pick; in practice dual plain.
	StrategyChoose Strategy = iota
	// StrategyDualPlain is serial dual simplex.
	StrategyDualPlain
	// StrategyDualTasks is dual simplex with fork-join parallel pricing.
	StrategyDualTasks
	// StrategyDualMulti is dual simplex with candidate-set minor iterations.
	StrategyDualMulti
	// StrategyPrimal is primal simplex.
	StrategyPrimal
)

// String returns the stable strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyChoose:
		return "choose"
	case StrategyDualPlain:
		return "dual plain"
	case StrategyDualTasks:
		return "dual tasks"
	case StrategyDualMulti:
		return "dual multi"
	case StrategyPrimal:
		return "primal"
	default:
		return "unknown"
	}
}

// Configuration defaults (single source of truth).
const (
	// DefaultPrimalFeasTol bounds accepted primal infeasibility.
	DefaultPrimalFeasTol = 1e-7
	// DefaultDualFeasTol bounds accepted dual infeasibility.
	DefaultDualFeasTol = 1e-7
	// DefaultIterationLimit is effectively unlimited.
	DefaultIterationLimit = 10000000
	// DefaultScaleStrategy enables equilibration scaling.
	DefaultScaleStrategy = 1
	// DefaultMultiCandidates is the candidate-set size for DualMulti.
	DefaultMultiCandidates = 8
	// pivotZeroTol guards ratio-test divisions.
	pivotZeroTol = 1e-9
)

// Config carries one run's engine settings. The zero value is not
// usable; call Normalize (the orchestrator does) before Solve.
type Config struct {
	Strategy      Strategy
	ScaleStrategy int

	IterationLimit int
	TimeLimit      float64 // seconds; <=0 or >=lp.Inf means none

	// ObjectiveBound is the dual-objective upper bound in the original
	// sense; active for minimization only, inactive at >= +lp.Inf.
	// Consulted only when ObjectiveBoundSet is true: 0.0 is a legitimate
	// bound, so "unset" needs its own flag, not a magic value. Normalize
	// defaults an unset bound to +lp.Inf.
	ObjectiveBound    float64
	ObjectiveBoundSet bool

	PrimalFeasTol float64
	DualFeasTol   float64

	// MaxConcurrency bounds the fork-join pool for DualTasks; values
	// below 2 disable the pool.
	MaxConcurrency int

	// MultiCandidates is the DualMulti candidate-set size.
	MultiCandidates int

	// Logf receives progress lines when non-nil.
	Logf func(format string, args ...any)
}

// Normalize fills unset fields with the documented defaults.
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
	if !c.ObjectiveBoundSet {
		c.ObjectiveBound = lp.Inf
		c.ObjectiveBoundSet = true
	}
	if c.MultiCandidates <= 0 {
		c.MultiCandidates = DefaultMultiCandidates
	}
	if c.Strategy == StrategyChoose {
		c.Strategy = StrategyDualPlain
	}
	if c.Strategy == StrategyDualTasks && c.MaxConcurrency < 2 {
		c.Strategy = StrategyDualPlain
	}
}

// phase is the engine-internal state machine.
type phase int

const (
	phaseIdle phase = iota
	phaseLoading
	phaseOne
	phaseTwo
	phaseFinished
)

// Result reports one engine run. Basis and Solution are written in place
// on the borrowed state; Result carries only the classification and
// counts.
type Result struct {
	Status         lp.ModelStatus
	IterationCount int
}

// deadline captures the wall-clock budget; zero means unlimited.
type deadline struct {
	at time.Time
}

func newDeadline(limitSeconds float64) deadline {
	if limitSeconds <= 0 || limitSeconds >= lp.Inf {
		return deadline{}
	}

	return deadline{at: time.Now().Add(time.Duration(limitSeconds * float64(time.Second)))}
}

// exceeded polls the budget; called at every pivot and refactorization.
func (d deadline) exceeded() bool {
	return !d.at.IsZero() && time.Now().After(d.at)
}
