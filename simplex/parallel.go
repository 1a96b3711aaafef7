// SPDX-License-Identifier: MIT

package simplex

import (
	"sync"

	"github.com/katalvlaran/lvlopt/lp"
)

// priceChunkMin is the smallest variable range worth a task of its own;
// below it the fork-join overhead dominates and pricing stays serial.
const priceChunkMin = 64

// price computes the pivot row rowAp[v] = a_v · rowEp over the nonbasic
// variables. DualTasks fans the loop out over disjoint chunks; every
// other strategy runs it serially. Chunk results land in disjoint slice
// ranges, so the parallel result is bit-identical to the serial one and
// the pivot sequence cannot diverge between the two.
func (e *Engine) price() {
	if e.cfg.Strategy == StrategyDualTasks && e.tot >= 2*priceChunkMin {
		e.priceParallel()
	} else {
		e.priceRange(0, e.tot)
	}
	nnz := 0
	for v := 0; v < e.tot; v++ {
		if e.rowAp[v] != 0 {
			nnz++
		}
	}
	e.f.RecordRowAp(nnz)
}

// priceRange prices variables [from, to).
func (e *Engine) priceRange(from, to int) {
	for v := from; v < to; v++ {
		if e.vstat[v] == lp.Basic {
			e.rowAp[v] = 0

			continue
		}
		e.rowAp[v] = e.dotColumn(v, e.rowEp)
	}
}

// priceParallel is the fork-join path. Workers are spawned per call and
// joined before return; the pool never outlives the solve.
func (e *Engine) priceParallel() {
	workers := e.cfg.MaxConcurrency
	if max := e.tot / priceChunkMin; workers > max {
		workers = max
	}
	if workers < 2 {
		e.priceRange(0, e.tot)

		return
	}

	chunk := (e.tot + workers - 1) / workers
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		from := w * chunk
		to := from + chunk
		if to > e.tot {
			to = e.tot
		}
		if from >= to {
			break
		}
		wg.Add(1)
		go func(from, to int) {
			defer wg.Done()
			e.priceRange(from, to)
		}(from, to)
	}
	wg.Wait()
}
