// SPDX-License-Identifier: MIT

package factor_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/lvlopt/factor"
	"github.com/katalvlaran/lvlopt/lp"
)

// smallModel is a 2x2 system with a well-conditioned structural basis:
// col0 = (1,1), col1 = (2,4).
func smallModel() *lp.Lp {
	return &lp.Lp{
		NumCol:   2,
		NumRow:   2,
		Sense:    lp.Minimize,
		ColCost:  []float64{1, 1},
		ColLower: []float64{0, 0},
		ColUpper: []float64{lp.Inf, lp.Inf},
		RowLower: []float64{-lp.Inf, -lp.Inf},
		RowUpper: []float64{80, 120},
		Start:    []int{0, 2, 4},
		Index:    []int{0, 1, 0, 1},
		Value:    []float64{1, 1, 2, 4},
	}
}

// FactorSuite exercises Invert, the solves, updates and repairs.
type FactorSuite struct {
	suite.Suite
}

// TestLogicalBasisSolves verifies B = -I behaves as the negated
// identity in both solve directions.
func (s *FactorSuite) TestLogicalBasisSolves() {
	model := smallModel()
	f := factor.New(model)
	repairs, err := f.Load([]int{2, 3})
	require.NoError(s.T(), err)
	require.Empty(s.T(), repairs)
	require.Equal(s.T(), 1, f.NumInvert)
	require.Positive(s.T(), f.LastInvertNumEl)
	require.Positive(s.T(), f.LastFactoredBasisNumEl)

	rhs := []float64{3, -5}
	require.NoError(s.T(), f.Ftran(rhs))
	require.InDelta(s.T(), -3, rhs[0], 1e-12)
	require.InDelta(s.T(), 5, rhs[1], 1e-12)

	rhs = []float64{2, 7}
	require.NoError(s.T(), f.Btran(rhs))
	require.InDelta(s.T(), -2, rhs[0], 1e-12)
	require.InDelta(s.T(), -7, rhs[1], 1e-12)
}

// TestStructuralBasisSolve verifies Ftran against a hand inverse of
// B = [[1,2],[1,4]].
func (s *FactorSuite) TestStructuralBasisSolve() {
	model := smallModel()
	f := factor.New(model)
	_, err := f.Load([]int{0, 1})
	require.NoError(s.T(), err)

	// B x = (8, 14) => x = (2, 3).
	rhs := []float64{8, 14}
	require.NoError(s.T(), f.Ftran(rhs))
	require.InDelta(s.T(), 2, rhs[0], 1e-10)
	require.InDelta(s.T(), 3, rhs[1], 1e-10)

	// Bᵀ y = (3, 10) => y = (1, 2): check via residual.
	y := []float64{3, 10}
	require.NoError(s.T(), f.Btran(y))
	require.InDelta(s.T(), 1*y[0]+1*y[1], 3, 1e-10)
	require.InDelta(s.T(), 2*y[0]+4*y[1], 10, 1e-10)
}

// TestUpdateMatchesInvert verifies that a product-form update gives the
// same solves as a from-scratch factorization of the updated basis.
func (s *FactorSuite) TestUpdateMatchesInvert() {
	model := smallModel()
	f := factor.New(model)
	_, err := f.Load([]int{2, 3})
	require.NoError(s.T(), err)

	// Bring column 0 in at position 0: colAq = B⁻¹ a_0 = (-1, -1).
	colAq := []float64{1, 1}
	require.NoError(s.T(), f.Ftran(colAq))
	require.NoError(s.T(), f.Update(0, 0, colAq))
	require.Equal(s.T(), 1, f.NumUpdates())

	viaUpdate := []float64{5, 9}
	require.NoError(s.T(), f.Ftran(viaUpdate))

	fresh := factor.New(model)
	_, err = fresh.Load([]int{0, 3})
	require.NoError(s.T(), err)
	viaInvert := []float64{5, 9}
	require.NoError(s.T(), fresh.Ftran(viaInvert))

	require.InDelta(s.T(), viaInvert[0], viaUpdate[0], 1e-10)
	require.InDelta(s.T(), viaInvert[1], viaUpdate[1], 1e-10)
}

// TestSingularLoadRepairs verifies a dependent basis is repaired with
// logicals instead of reported as success on a broken factorization.
func (s *FactorSuite) TestSingularLoadRepairs() {
	model := smallModel()
	// Two copies of column 0 cannot form a basis.
	model.ColCost = append(model.ColCost, 1)
	model.ColLower = append(model.ColLower, 0)
	model.ColUpper = append(model.ColUpper, lp.Inf)
	model.Start = append(model.Start, 6)
	model.Index = append(model.Index, 0, 1)
	model.Value = append(model.Value, 1, 1)
	model.NumCol = 3

	f := factor.New(model)
	repairs, err := f.Load([]int{0, 2})
	require.NoError(s.T(), err)
	require.NotEmpty(s.T(), repairs)

	// The repaired basis must solve consistently.
	rhs := []float64{1, 1}
	require.NoError(s.T(), f.Ftran(rhs))
	for _, v := range f.BasicIndex() {
		require.GreaterOrEqual(s.T(), v, 0)
		require.Less(s.T(), v, model.NumTot())
	}
}

// TestSingularUpdateRejected verifies a zero pivot in the eta is
// refused with the sentinel.
func (s *FactorSuite) TestSingularUpdateRejected() {
	model := smallModel()
	f := factor.New(model)
	_, err := f.Load([]int{2, 3})
	require.NoError(s.T(), err)

	colAq := []float64{0, 1}
	require.ErrorIs(s.T(), f.Update(0, 0, colAq), factor.ErrSingularUpdate)
}

// TestVectorSize verifies the shape sentinel on solves.
func (s *FactorSuite) TestVectorSize() {
	model := smallModel()
	f := factor.New(model)
	_, err := f.Load([]int{2, 3})
	require.NoError(s.T(), err)
	require.ErrorIs(s.T(), f.Ftran(make([]float64, 3)), factor.ErrVectorSize)
	require.ErrorIs(s.T(), f.Btran(make([]float64, 1)), factor.ErrVectorSize)
}

// TestNotLoaded verifies use-before-load is rejected.
func (s *FactorSuite) TestNotLoaded() {
	f := factor.New(smallModel())
	require.ErrorIs(s.T(), f.Ftran(make([]float64, 2)), factor.ErrNotLoaded)
	require.ErrorIs(s.T(), f.Update(0, 0, make([]float64, 2)), factor.ErrNotLoaded)
}

func TestFactorSuite(t *testing.T) { suite.Run(t, new(FactorSuite)) }
