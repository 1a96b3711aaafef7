// SPDX-License-Identifier: MIT

package presolve

import "github.com/katalvlaran/lvlopt/lp"

// MaxPasses bounds the reduction sweeps; each sweep only runs again if
// the previous one removed something.
const MaxPasses = 5

// feasTol is the feasibility slack granted when checking emptied rows.
const feasTol = 1e-9

// action kinds, replayed in reverse by Restore.
const (
	actFixedCol = iota
	actEmptyCol
	actEmptyRow
	actRedundantRow
	actSingletonRow
)

// action is one recorded reduction.
type action struct {
	kind int
	col  int
	row  int

	value float64 // fixed/assigned column value
	coef  float64 // singleton coefficient a_ij

	// saved column bounds before a singleton row tightened them
	savedLower float64
	savedUpper float64
}

// Presolve carries the reduction of one model.
type Presolve struct {
	orig    *lp.Lp
	reduced *lp.Lp
	actions []action

	// colMap/rowMap translate original indices to reduced ones, -1 when
	// removed.
	colMap []int
	rowMap []int

	// Status is StatusNotSet unless the reduction proved the outcome.
	Status lp.ModelStatus

	// Removal tallies, reported by the orchestrator's log line.
	RowsDeleted int
	ColsDeleted int
}

// Reduced returns the reduced model (valid after Run).
func (p *Presolve) Reduced() *lp.Lp { return p.reduced }

// Run reduces the model. The input is cloned, never mutated. On a proven
// outcome (infeasible, unbounded-or-infeasible) Status carries it and
// the reduced model is whatever remained when the proof appeared.
func Run(model *lp.Lp) (*Presolve, error) {
	if model == nil {
		return nil, ErrNilModel
	}
	if err := model.Validate(); err != nil {
		return nil, err
	}

	p := &Presolve{orig: model, Status: lp.StatusNotSet}
	work := model.Clone()

	colGone := make([]bool, work.NumCol)
	rowGone := make([]bool, work.NumRow)
	sense := float64(work.Sense)

	// liveCount(j) counts the live entries of column j.
	liveCount := func(j int) int {
		count := 0
		for k := work.Start[j]; k < work.Start[j+1]; k++ {
			if !rowGone[work.Index[k]] {
				count++
			}
		}

		return count
	}

	removeFixedCol := func(j int, at float64) {
		for k := work.Start[j]; k < work.Start[j+1]; k++ {
			i := work.Index[k]
			if rowGone[i] {
				continue
			}
			shift := work.Value[k] * at
			if work.RowLower[i] > -lp.Inf {
				work.RowLower[i] -= shift
			}
			if work.RowUpper[i] < lp.Inf {
				work.RowUpper[i] -= shift
			}
		}
		work.Offset += work.ColCost[j] * at
		colGone[j] = true
		p.ColsDeleted++
	}

	for pass := 0; pass < MaxPasses; pass++ {
		changed := false

		// Fixed columns: substitute into their rows.
		for j := 0; j < work.NumCol; j++ {
			if colGone[j] || work.ColLower[j] != work.ColUpper[j] {
				continue
			}
			at := work.ColLower[j]
			removeFixedCol(j, at)
			p.actions = append(p.actions, action{kind: actFixedCol, col: j, value: at})
			changed = true
		}

		// Empty columns: fix at the bound the cost supports.
		for j := 0; j < work.NumCol; j++ {
			if colGone[j] || liveCount(j) != 0 {
				continue
			}
			mc := sense * work.ColCost[j]
			var at float64
			switch {
			case mc > 0:
				if work.ColLower[j] <= -lp.Inf {
					p.Status = lp.StatusUnboundedOrInfeasible
					at = 0
				} else {
					at = work.ColLower[j]
				}
			case mc < 0:
				if work.ColUpper[j] >= lp.Inf {
					p.Status = lp.StatusUnboundedOrInfeasible
					at = 0
				} else {
					at = work.ColUpper[j]
				}
			default:
				at = lp.NonbasicValue(nonbasicStatus(work.ColLower[j], work.ColUpper[j]),
					work.ColLower[j], work.ColUpper[j])
			}
			work.Offset += work.ColCost[j] * at
			colGone[j] = true
			p.ColsDeleted++
			p.actions = append(p.actions, action{kind: actEmptyCol, col: j, value: at})
			changed = true
			if p.Status != lp.StatusNotSet {
				p.finish(work, colGone, rowGone)

				return p, nil
			}
		}

		// Row sweeps need per-row live counts and implied bounds.
		rowCount := make([]int, work.NumRow)
		rowMin := make([]float64, work.NumRow)
		rowMax := make([]float64, work.NumRow)
		singletonCol := make([]int, work.NumRow)
		for i := range singletonCol {
			singletonCol[i] = -1
		}
		for j := 0; j < work.NumCol; j++ {
			if colGone[j] {
				continue
			}
			for k := work.Start[j]; k < work.Start[j+1]; k++ {
				i := work.Index[k]
				if rowGone[i] {
					continue
				}
				rowCount[i]++
				singletonCol[i] = j
				v := work.Value[k]
				lo, up := work.ColLower[j], work.ColUpper[j]
				if v > 0 {
					rowMin[i] += impliedTerm(v, lo)
					rowMax[i] += impliedTerm(v, up)
				} else {
					rowMin[i] += impliedTerm(v, up)
					rowMax[i] += impliedTerm(v, lo)
				}
			}
		}

		for i := 0; i < work.NumRow; i++ {
			if rowGone[i] {
				continue
			}
			switch {
			case rowCount[i] == 0:
				// Empty row: 0 must satisfy the bounds.
				if work.RowLower[i] > feasTol || work.RowUpper[i] < -feasTol {
					p.Status = lp.StatusInfeasible
					p.finish(work, colGone, rowGone)

					return p, nil
				}
				rowGone[i] = true
				p.RowsDeleted++
				p.actions = append(p.actions, action{kind: actEmptyRow, row: i})
				changed = true
			case rowCount[i] == 1:
				j := singletonCol[i]
				if !p.tightenSingleton(work, i, j) {
					p.Status = lp.StatusInfeasible
					p.finish(work, colGone, rowGone)

					return p, nil
				}
				rowGone[i] = true
				p.RowsDeleted++
				changed = true
			case rowMin[i] >= work.RowLower[i]-feasTol && rowMax[i] <= work.RowUpper[i]+feasTol:
				// Non-binding: the column bounds already enforce it.
				rowGone[i] = true
				p.RowsDeleted++
				p.actions = append(p.actions, action{kind: actRedundantRow, row: i})
				changed = true
			}
		}

		if !changed {
			break
		}
	}

	p.finish(work, colGone, rowGone)

	return p, nil
}

// impliedTerm is one column's contribution to an implied row activity
// bound, saturating at the infinity sentinel.
func impliedTerm(coef, bound float64) float64 {
	if bound <= -lp.Inf {
		if coef > 0 {
			return -lp.Inf
		}

		return lp.Inf
	}
	if bound >= lp.Inf {
		if coef > 0 {
			return lp.Inf
		}

		return -lp.Inf
	}

	return coef * bound
}

// tightenSingleton folds singleton row i (single live column j with
// coefficient a) into j's bounds. Reports false on proven infeasibility.
func (p *Presolve) tightenSingleton(work *lp.Lp, i, j int) bool {
	var coef float64
	for k := work.Start[j]; k < work.Start[j+1]; k++ {
		if work.Index[k] == i {
			coef = work.Value[k]

			break
		}
	}
	act := action{
		kind:       actSingletonRow,
		row:        i,
		col:        j,
		coef:       coef,
		savedLower: work.ColLower[j],
		savedUpper: work.ColUpper[j],
	}

	// L <= a x <= U  =>  bounds on x depending on the sign of a.
	newLower, newUpper := -lp.Inf, lp.Inf
	if work.RowLower[i] > -lp.Inf {
		if coef > 0 {
			newLower = work.RowLower[i] / coef
		} else {
			newUpper = work.RowLower[i] / coef
		}
	}
	if work.RowUpper[i] < lp.Inf {
		if coef > 0 {
			newUpper = work.RowUpper[i] / coef
		} else {
			newLower = work.RowUpper[i] / coef
		}
	}
	if newLower > work.ColLower[j] {
		work.ColLower[j] = newLower
	}
	if newUpper < work.ColUpper[j] {
		work.ColUpper[j] = newUpper
	}
	p.actions = append(p.actions, act)

	return work.ColLower[j] <= work.ColUpper[j]+feasTol
}

// finish compacts the working model into the reduced one and builds the
// index maps.
func (p *Presolve) finish(work *lp.Lp, colGone, rowGone []bool) {
	p.colMap = make([]int, work.NumCol)
	p.rowMap = make([]int, work.NumRow)

	red := &lp.Lp{Sense: work.Sense, Offset: work.Offset, Name: work.Name, Start: []int{0}}
	for i := 0; i < work.NumRow; i++ {
		if rowGone[i] {
			p.rowMap[i] = -1

			continue
		}
		p.rowMap[i] = red.NumRow
		red.RowLower = append(red.RowLower, work.RowLower[i])
		red.RowUpper = append(red.RowUpper, work.RowUpper[i])
		red.NumRow++
	}
	for j := 0; j < work.NumCol; j++ {
		if colGone[j] {
			p.colMap[j] = -1

			continue
		}
		p.colMap[j] = red.NumCol
		red.ColCost = append(red.ColCost, work.ColCost[j])
		red.ColLower = append(red.ColLower, work.ColLower[j])
		red.ColUpper = append(red.ColUpper, work.ColUpper[j])
		for k := work.Start[j]; k < work.Start[j+1]; k++ {
			if i := work.Index[k]; !rowGone[i] {
				red.Index = append(red.Index, p.rowMap[i])
				red.Value = append(red.Value, work.Value[k])
			}
		}
		red.Start = append(red.Start, len(red.Index))
		red.NumCol++
	}

	p.reduced = red
}

// nonbasicStatus mirrors the engine's resting-bound choice.
func nonbasicStatus(lower, upper float64) lp.BasisStatus {
	switch {
	case lower == upper:
		return lp.NonbasicFixed
	case lower > -lp.Inf:
		return lp.NonbasicLower
	case upper < lp.Inf:
		return lp.NonbasicUpper
	default:
		return lp.NonbasicFree
	}
}
