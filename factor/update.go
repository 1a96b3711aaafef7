// SPDX-License-Identifier: MIT

package factor

import "math"

// Update replaces the variable at basis position pos with enteringVar
// after a pivot. colAq must be the Ftran image of the entering augmented
// column (B⁻¹ a_q) under the factorization as it stood when it was
// computed; its pos-th entry is the pivot element.
//
// A pivot below the update tolerance is rejected with ErrSingularUpdate;
// the engine then refactorizes the updated basis from scratch. On success
// one eta is appended and the basic index updated.
func (f *Factor) Update(pos, enteringVar int, colAq []float64) error {
	if !f.loaded {
		return ErrNotLoaded
	}
	if len(colAq) != f.m {
		return ErrVectorSize
	}
	if pos < 0 || pos >= f.m || enteringVar < 0 || enteringVar >= f.model.NumTot() {
		return ErrBasisSize
	}

	pivot := colAq[pos]
	if math.Abs(pivot) < f.updatePivotTol {
		return ErrSingularUpdate
	}

	e := eta{Pos: pos, PivotVal: pivot}
	for i, v := range colAq {
		if i == pos || v == 0 {
			continue
		}
		e.Index = append(e.Index, i)
		e.Value = append(e.Value, v)
	}
	f.etas = append(f.etas, e)
	f.basicIndex[pos] = enteringVar

	return nil
}
