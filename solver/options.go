// SPDX-License-Identifier: MIT

package solver

import (
	"math"

	"github.com/katalvlaran/lvlopt/lp"
)

// Option keys. The schema below is the single source of truth for
// types, defaults and ranges; no reflection, no dynamic attributes.
const (
	OptSolver            = "solver"
	OptPresolve          = "presolve"
	OptSimplexStrategy   = "simplex_strategy"
	OptScaleStrategy     = "simplex_scale_strategy"
	OptSimplexIterLimit  = "simplex_iteration_limit"
	OptIpmIterLimit      = "ipm_iteration_limit"
	OptTimeLimit         = "time_limit"
	OptObjectiveBound    = "objective_bound"
	OptUseWarmStart      = "use_warm_start"
	OptOutputFlag        = "output_flag"
	OptPrimalFeasTol     = "primal_feasibility_tolerance"
	OptDualFeasTol       = "dual_feasibility_tolerance"
	OptMaxConcurrency    = "simplex_max_concurrency"
	OptMultiCandidates   = "simplex_multi_candidates"
)

// Solver / presolve string values.
const (
	SolverSimplex = "simplex"
	SolverIpm     = "ipm"
	SolverChoose  = "choose"

	PresolveOn     = "on"
	PresolveOff    = "off"
	PresolveChoose = "choose"
)

// optionType tags the value kind of one schema entry.
type optionType int

const (
	typeBool optionType = iota
	typeInt
	typeDouble
	typeString
)

// optionDef declares one option: its type, default and admissible range.
type optionDef struct {
	key string
	typ optionType

	defBool   bool
	defInt    int
	defDouble float64
	defString string

	minInt    int
	maxInt    int
	minDouble float64
	maxDouble float64
	allowed   []string // for string options
}

// optionSchema is ordered for stable iteration (reset, reporting).
var optionSchema = []optionDef{
	{key: OptSolver, typ: typeString, defString: SolverChoose,
		allowed: []string{SolverSimplex, SolverIpm, SolverChoose}},
	{key: OptPresolve, typ: typeString, defString: PresolveChoose,
		allowed: []string{PresolveOn, PresolveOff, PresolveChoose}},
	{key: OptSimplexStrategy, typ: typeInt, defInt: 0, minInt: 0, maxInt: 4},
	{key: OptScaleStrategy, typ: typeInt, defInt: 1, minInt: 0, maxInt: 4},
	{key: OptSimplexIterLimit, typ: typeInt, defInt: 10000000, minInt: 0, maxInt: math.MaxInt32},
	{key: OptIpmIterLimit, typ: typeInt, defInt: 200, minInt: 0, maxInt: math.MaxInt32},
	{key: OptTimeLimit, typ: typeDouble, defDouble: lp.Inf, minDouble: 0, maxDouble: lp.Inf},
	{key: OptObjectiveBound, typ: typeDouble, defDouble: lp.Inf, minDouble: -lp.Inf, maxDouble: lp.Inf},
	{key: OptUseWarmStart, typ: typeBool, defBool: true},
	{key: OptOutputFlag, typ: typeBool, defBool: true},
	{key: OptPrimalFeasTol, typ: typeDouble, defDouble: 1e-7, minDouble: 1e-12, maxDouble: 1},
	{key: OptDualFeasTol, typ: typeDouble, defDouble: 1e-7, minDouble: 1e-12, maxDouble: 1},
	{key: OptMaxConcurrency, typ: typeInt, defInt: 8, minInt: 1, maxInt: 1024},
	{key: OptMultiCandidates, typ: typeInt, defInt: 8, minInt: 1, maxInt: 1024},
}

// options is the resolved option table of one solver instance.
type options struct {
	bools   map[string]bool
	ints    map[string]int
	doubles map[string]float64
	strings map[string]string
}

// newOptions builds the defaults.
func newOptions() *options {
	o := &options{
		bools:   make(map[string]bool),
		ints:    make(map[string]int),
		doubles: make(map[string]float64),
		strings: make(map[string]string),
	}
	for _, def := range optionSchema {
		switch def.typ {
		case typeBool:
			o.bools[def.key] = def.defBool
		case typeInt:
			o.ints[def.key] = def.defInt
		case typeDouble:
			o.doubles[def.key] = def.defDouble
		case typeString:
			o.strings[def.key] = def.defString
		}
	}

	return o
}

// lookup finds a schema entry.
func lookup(key string) (optionDef, bool) {
	for _, def := range optionSchema {
		if def.key == key {
			return def, true
		}
	}

	return optionDef{}, false
}

// set validates and stores one value atomically: on any error the table
// is untouched.
func (o *options) set(key string, value any) error {
	def, ok := lookup(key)
	if !ok {
		return ErrUnknownOption
	}
	switch def.typ {
	case typeBool:
		b, ok := value.(bool)
		if !ok {
			return ErrOptionType
		}
		o.bools[key] = b
	case typeInt:
		i, ok := toInt(value)
		if !ok {
			return ErrOptionType
		}
		if i < def.minInt || i > def.maxInt {
			return ErrOptionValue
		}
		o.ints[key] = i
	case typeDouble:
		f, ok := toDouble(value)
		if !ok {
			return ErrOptionType
		}
		if math.IsNaN(f) || f < def.minDouble || f > def.maxDouble {
			return ErrOptionValue
		}
		o.doubles[key] = f
	case typeString:
		s, ok := value.(string)
		if !ok {
			return ErrOptionType
		}
		found := false
		for _, a := range def.allowed {
			if a == s {
				found = true

				break
			}
		}
		if !found {
			return ErrOptionValue
		}
		o.strings[key] = s
	}

	return nil
}

// get copies the current value of key into out, which must be a pointer
// of the option's type. Ints additionally fill *int64 for convenience.
func (o *options) get(key string, out any) error {
	def, ok := lookup(key)
	if !ok {
		return ErrUnknownOption
	}
	switch def.typ {
	case typeBool:
		p, ok := out.(*bool)
		if !ok {
			return ErrOptionType
		}
		*p = o.bools[key]
	case typeInt:
		switch p := out.(type) {
		case *int:
			*p = o.ints[key]
		case *int64:
			*p = int64(o.ints[key])
		default:
			return ErrOptionType
		}
	case typeDouble:
		p, ok := out.(*float64)
		if !ok {
			return ErrOptionType
		}
		*p = o.doubles[key]
	case typeString:
		p, ok := out.(*string)
		if !ok {
			return ErrOptionType
		}
		*p = o.strings[key]
	}

	return nil
}

// toInt accepts the integer shapes callers reasonably pass.
func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	default:
		return 0, false
	}
}

// toDouble accepts doubles and integers (a time limit of 10 is fine).
func toDouble(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	default:
		return 0, false
	}
}
