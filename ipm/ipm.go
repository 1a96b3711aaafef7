// SPDX-License-Identifier: MIT

package ipm

import (
	"errors"
	"math"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/katalvlaran/lvlopt/lp"
)

// ErrNilModel is returned when Solve is invoked without a model.
var ErrNilModel = errors.New("ipm: nil model")

// Engine is the interior-point engine. Buffers live with the engine and
// are reused across runs; the model, basis and solution are borrowed for
// one Solve only.
type Engine struct {
	cfg Config

	stats lp.SimplexStats
}

// NewEngine returns an idle engine.
func NewEngine() *Engine { return &Engine{} }

// Stats reports the simplex telemetry of the most recent crossover.
func (e *Engine) Stats() lp.SimplexStats { return e.stats }

// point is one primal-dual iterate on the standard form: x, s > 0.
type point struct {
	x []float64
	y []float64
	s []float64
}

// Solve runs predictor-corrector plus crossover. Basis and solution are
// written in place; Result carries the classification and both counts.
func (e *Engine) Solve(model *lp.Lp, basis *lp.Basis, sol *lp.Solution, cfg Config) (Result, error) {
	if model == nil {
		return Result{Status: lp.StatusSolveError}, ErrNilModel
	}
	cfg.Normalize()
	e.cfg = cfg
	e.stats = lp.SimplexStats{}

	std, sfMap, err := model.StandardFormWithMap()
	if err != nil {
		return Result{Status: lp.StatusModelError}, err
	}

	deadline := time.Time{}
	if cfg.TimeLimit > 0 && cfg.TimeLimit < lp.Inf {
		deadline = time.Now().Add(time.Duration(cfg.TimeLimit * float64(time.Second)))
	}

	iterate, iters, status := e.predictorCorrector(std, deadline)
	if status == lp.StatusIterationLimit || status == lp.StatusTimeLimit {
		// Hand the last iterate over anyway so the caller still sees a
		// consistent (if interior) solution.
		e.recoverSolution(model, std, sfMap, iterate, sol)

		return Result{Status: status, IpmIterations: iters}, nil
	}
	if status != lp.StatusOptimal {
		return Result{Status: status, IpmIterations: iters}, nil
	}

	e.recoverSolution(model, std, sfMap, iterate, sol)
	crossStatus, crossIters, stats := e.crossover(model, basis, sol)
	e.stats = stats
	e.logf("ipm: %d interior iterations, %d crossover iterations, status %s",
		iters, crossIters, crossStatus)

	return Result{Status: crossStatus, IpmIterations: iters, CrossoverIterations: crossIters}, nil
}

func (e *Engine) logf(format string, args ...any) {
	if e.cfg.Logf != nil {
		e.cfg.Logf(format, args...)
	}
}

// predictorCorrector runs Mehrotra iterations on the standard form until
// the duality gap and scaled residuals fall under tolerance.
func (e *Engine) predictorCorrector(std *lp.StandardLp, deadline time.Time) (point, int, lp.ModelStatus) {
	n, m := std.NumCol, std.NumRow
	if n == 0 {
		// Every variable was fixed; nothing to iterate on.
		return point{}, 0, lp.StatusOptimal
	}
	if m == 0 {
		// No equality rows survived: the image separates per column and
		// the nonnegative minimizer sits at zero unless a cost points
		// down an unbounded ray.
		p := point{x: make([]float64, n), s: make([]float64, n)}
		for j := 0; j < n; j++ {
			if std.Cost[j] < 0 {
				return p, 0, lp.StatusUnbounded
			}
			p.s[j] = std.Cost[j]
		}

		return p, 0, lp.StatusOptimal
	}

	a := denseFrom(std)
	bNorm := 1 + vecNorm(std.Rhs)
	cNorm := 1 + vecNorm(std.Cost)

	p := startingPoint(std)
	rp := make([]float64, m)
	rd := make([]float64, n)
	d := make([]float64, n)
	rhs := make([]float64, m)
	dxAff := make([]float64, n)
	dsAff := make([]float64, n)
	dx := make([]float64, n)
	dy := make([]float64, m)
	ds := make([]float64, n)
	rc := make([]float64, n)

	for iter := 0; ; iter++ {
		residuals(std, a, p, rp, rd)
		mu := dot(p.x, p.s) / float64(n)

		if vecNorm(rp)/bNorm <= e.cfg.PrimalFeasTol &&
			vecNorm(rd)/cNorm <= e.cfg.DualFeasTol &&
			mu <= e.cfg.gapTol() {
			return p, iter, lp.StatusOptimal
		}
		if vecNorm(p.x) > divergenceLimit || vecNorm(p.s) > divergenceLimit {
			return p, iter, lp.StatusUnboundedOrInfeasible
		}
		if iter >= e.cfg.IterationLimit {
			return p, iter, lp.StatusIterationLimit
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			return p, iter, lp.StatusTimeLimit
		}

		for j := 0; j < n; j++ {
			d[j] = p.x[j] / p.s[j]
		}
		chol, ok := factorNormalEquations(a, d, m)
		if !ok {
			return p, iter, lp.StatusSolveError
		}

		// Predictor: rc = -x∘s.
		for j := 0; j < n; j++ {
			rc[j] = -p.x[j] * p.s[j]
		}
		solveStep(a, chol, d, rp, rd, rc, p, dxAff, dy, dsAff, rhs)
		alphaPAff := math.Min(1, stepLength(p.x, dxAff))
		alphaDAff := math.Min(1, stepLength(p.s, dsAff))
		muAff := 0.0
		for j := 0; j < n; j++ {
			muAff += (p.x[j] + alphaPAff*dxAff[j]) * (p.s[j] + alphaDAff*dsAff[j])
		}
		muAff /= float64(n)
		sigma := math.Pow(muAff/mu, 3)

		// Corrector: rc = σμe - x∘s - dxAff∘dsAff.
		for j := 0; j < n; j++ {
			rc[j] = sigma*mu - p.x[j]*p.s[j] - dxAff[j]*dsAff[j]
		}
		solveStep(a, chol, d, rp, rd, rc, p, dx, dy, ds, rhs)

		alphaP := stepScale * stepLength(p.x, dx)
		alphaD := stepScale * stepLength(p.s, ds)
		if alphaP > 1 {
			alphaP = 1
		}
		if alphaD > 1 {
			alphaD = 1
		}
		for j := 0; j < n; j++ {
			p.x[j] += alphaP * dx[j]
			p.s[j] += alphaD * ds[j]
		}
		for i := 0; i < m; i++ {
			p.y[i] += alphaD * dy[i]
		}
	}
}

// denseFrom expands the CSC standard form into a gonum dense matrix.
func denseFrom(std *lp.StandardLp) *mat.Dense {
	a := mat.NewDense(std.NumRow, std.NumCol, nil)
	for j := 0; j < std.NumCol; j++ {
		for k := std.Start[j]; k < std.Start[j+1]; k++ {
			a.Set(std.Index[k], j, std.Value[k])
		}
	}

	return a
}

// startingPoint is the classic "shifted ones" start: components sized by
// the data magnitudes, strictly interior.
func startingPoint(std *lp.StandardLp) point {
	n, m := std.NumCol, std.NumRow
	scale := 1.0
	for _, b := range std.Rhs {
		if a := math.Abs(b); a > scale {
			scale = a
		}
	}
	p := point{
		x: make([]float64, n),
		y: make([]float64, m),
		s: make([]float64, n),
	}
	for j := 0; j < n; j++ {
		p.x[j] = scale
		p.s[j] = 1 + math.Abs(std.Cost[j])
	}

	return p
}

// residuals fills rp = b - Ax and rd = c - Aᵀy - s.
func residuals(std *lp.StandardLp, a *mat.Dense, p point, rp, rd []float64) {
	m, n := std.NumRow, std.NumCol
	for i := 0; i < m; i++ {
		sum := 0.0
		for j := 0; j < n; j++ {
			sum += a.At(i, j) * p.x[j]
		}
		rp[i] = std.Rhs[i] - sum
	}
	for j := 0; j < n; j++ {
		sum := 0.0
		for i := 0; i < m; i++ {
			sum += a.At(i, j) * p.y[i]
		}
		rd[j] = std.Cost[j] - sum - p.s[j]
	}
}

// factorNormalEquations builds M = A·diag(d)·Aᵀ and factors it, adding
// escalating diagonal regularization until the Cholesky succeeds.
func factorNormalEquations(a *mat.Dense, d []float64, m int) (*mat.Cholesky, bool) {
	sym := mat.NewSymDense(m, nil)
	rows, cols := a.Dims()
	for i := 0; i < rows; i++ {
		for k := i; k < rows; k++ {
			sum := 0.0
			for j := 0; j < cols; j++ {
				sum += a.At(i, j) * d[j] * a.At(k, j)
			}
			sym.SetSym(i, k, sum)
		}
	}
	var chol mat.Cholesky
	for reg := 0.0; reg <= 1e-4; {
		if reg > 0 {
			for i := 0; i < m; i++ {
				sym.SetSym(i, i, sym.At(i, i)+reg)
			}
		}
		if chol.Factorize(sym) {
			return &chol, true
		}
		if reg == 0 {
			reg = 1e-12
		} else {
			reg *= 100
		}
	}

	return nil, false
}

// solveStep solves one Newton system for the given complementarity
// right-hand side rc, writing dx, dy, ds.
func solveStep(a *mat.Dense, chol *mat.Cholesky, d, rp, rd, rc []float64, p point, dx, dy, ds, rhs []float64) {
	m, n := a.Dims()
	// rhs = rp + A·(d∘(rd - rc/x))
	for i := 0; i < m; i++ {
		sum := rp[i]
		for j := 0; j < n; j++ {
			sum += a.At(i, j) * d[j] * (rd[j] - rc[j]/p.x[j])
		}
		rhs[i] = sum
	}
	dyVec := mat.NewVecDense(m, dy)
	_ = chol.SolveVecTo(dyVec, mat.NewVecDense(m, rhs))
	for j := 0; j < n; j++ {
		aty := 0.0
		for i := 0; i < m; i++ {
			aty += a.At(i, j) * dy[i]
		}
		dx[j] = d[j] * (aty - rd[j] + rc[j]/p.x[j])
		ds[j] = (rc[j] - p.s[j]*dx[j]) / p.x[j]
	}
}

// stepLength returns the largest alpha keeping v + alpha·dv nonnegative
// (the ratio to the nearest blocking component), or 1/0.9995 when no
// component of dv is negative.
func stepLength(v, dv []float64) float64 {
	alpha := math.MaxFloat64
	for j := range v {
		if dv[j] < 0 {
			if a := -v[j] / dv[j]; a < alpha {
				alpha = a
			}
		}
	}
	if alpha == math.MaxFloat64 {
		return 1 / stepScale
	}

	return alpha
}

func dot(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		sum += a[i] * b[i]
	}

	return sum
}

func vecNorm(v []float64) float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}

	return math.Sqrt(sum)
}
