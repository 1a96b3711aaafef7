// SPDX-License-Identifier: MIT

package solver_test

import (
	"fmt"
	"io"

	"github.com/katalvlaran/lvlopt/lp"
	"github.com/katalvlaran/lvlopt/solver"
)

// ExampleSolver_Run solves a two-product blending model and reads the
// optimum back through the info snapshot.
func ExampleSolver_Run() {
	model := &lp.Lp{
		NumCol:   2,
		NumRow:   2,
		Sense:    lp.Maximize,
		ColCost:  []float64{8, 10},
		ColLower: []float64{0, 0},
		ColUpper: []float64{lp.Inf, lp.Inf},
		RowLower: []float64{-lp.Inf, -lp.Inf},
		RowUpper: []float64{80, 120},
		Start:    []int{0, 2, 4},
		Index:    []int{0, 1, 0, 1},
		Value:    []float64{1, 1, 2, 4},
	}

	h := solver.New()
	h.SetOutput(io.Discard)
	if h.PassModel(model) != solver.Ok {
		fmt.Println("model rejected")

		return
	}
	if h.Run() != solver.Ok {
		fmt.Println("solve failed")

		return
	}
	fmt.Printf("%s at %.0f\n", h.ModelStatusString(h.ModelStatus()), h.Info().ObjectiveFunctionValue)
	// Output: Optimal at 640
}
