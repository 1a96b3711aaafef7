// SPDX-License-Identifier: MIT

package simplex_test

import (
	"testing"

	"github.com/katalvlaran/lvlopt/lp"
	"github.com/katalvlaran/lvlopt/simplex"
)

// benchModel builds a dense-ish transportation-style model with the
// given size; deterministic data, no randomness.
func benchModel(n int) *lp.Lp {
	model := &lp.Lp{
		NumCol: n,
		NumRow: n,
		Sense:  lp.Minimize,
		Start:  []int{0},
	}
	for j := 0; j < n; j++ {
		model.ColCost = append(model.ColCost, float64(1+j%7))
		model.ColLower = append(model.ColLower, 0)
		model.ColUpper = append(model.ColUpper, lp.Inf)
		model.Index = append(model.Index, j)
		model.Value = append(model.Value, 1)
		if j+1 < n {
			model.Index = append(model.Index, j+1)
			model.Value = append(model.Value, 0.5)
		}
		model.Start = append(model.Start, len(model.Index))
	}
	for i := 0; i < n; i++ {
		model.RowLower = append(model.RowLower, float64(1+i%5))
		model.RowUpper = append(model.RowUpper, lp.Inf)
	}

	return model
}

// BenchmarkDualPlain measures a cold dual solve.
func BenchmarkDualPlain(b *testing.B) {
	model := benchModel(50)
	engine := simplex.NewEngine()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		basis := lp.LogicalBasis(model)
		sol := &lp.Solution{}
		if _, err := engine.Solve(model, basis, sol, simplex.Config{
			Strategy:       simplex.StrategyDualPlain,
			IterationLimit: -1,
		}); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkPrimal measures a cold primal solve.
func BenchmarkPrimal(b *testing.B) {
	model := benchModel(50)
	engine := simplex.NewEngine()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		basis := lp.LogicalBasis(model)
		sol := &lp.Solution{}
		if _, err := engine.Solve(model, basis, sol, simplex.Config{
			Strategy:       simplex.StrategyPrimal,
			IterationLimit: -1,
		}); err != nil {
			b.Fatal(err)
		}
	}
}
