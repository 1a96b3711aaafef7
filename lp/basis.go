// SPDX-License-Identifier: MIT

package lp

// LogicalBasis builds the canonical starting basis: every logical (row)
// variable basic, every structural (column) variable nonbasic on a bound.
// The basis matrix is then -I, trivially invertible.
//
// Bound choice for the nonbasic structurals is deterministic:
// fixed -> NonbasicFixed, finite lower -> NonbasicLower, finite upper
// only -> NonbasicUpper, no finite bound -> NonbasicFree.
func LogicalBasis(l *Lp) *Basis {
	b := &Basis{Status: make([]BasisStatus, l.NumTot()), Revision: 1, valid: true}
	for j := 0; j < l.NumCol; j++ {
		b.Status[j] = nonbasicStatusFor(l.ColLower[j], l.ColUpper[j])
	}
	for i := 0; i < l.NumRow; i++ {
		b.Status[l.NumCol+i] = Basic
	}

	return b
}

// nonbasicStatusFor picks the resting status of a newly nonbasic variable
// with the given bounds.
func nonbasicStatusFor(lower, upper float64) BasisStatus {
	switch {
	case lower == upper:
		return NonbasicFixed
	case lower > -Inf:
		return NonbasicLower
	case upper < Inf:
		return NonbasicUpper
	default:
		return NonbasicFree
	}
}

// CheckAgainst verifies shape and the exactly-m-basic invariant against a
// model. It does not test linear independence; that is the factorization
// kernel's job at load time.
func (b *Basis) CheckAgainst(l *Lp) error {
	if b == nil || len(b.Status) != l.NumTot() {
		return ErrBasisShape
	}
	if b.NumBasic() != l.NumRow {
		return ErrBasisShape
	}

	return nil
}

// Clone deep-copies the basis, preserving Revision and validity.
func (b *Basis) Clone() *Basis {
	if b == nil {
		return nil
	}

	return &Basis{
		Status:   append([]BasisStatus(nil), b.Status...),
		Revision: b.Revision,
		valid:    b.valid,
	}
}

// MarkChanged bumps the revision counter; engines call it once per pivot
// that alters the basic set (bound flips do not).
func (b *Basis) MarkChanged() { b.Revision++ }

// SetValid marks a basis as installed/produced.
func (b *Basis) SetValid(v bool) { b.valid = v }

// NonbasicValue returns the resting value of an augmented variable with
// the given status and bounds. Free variables rest at zero.
func NonbasicValue(st BasisStatus, lower, upper float64) float64 {
	switch st {
	case NonbasicLower, NonbasicFixed:
		return lower
	case NonbasicUpper:
		return upper
	default:
		return 0
	}
}
