// Package hessian approximates the Hessian of a scalar function from
// first-order reverse-mode gradients and a 4th-order central-difference
// stencil. It consumes the gradient primitive as a black box, four times
// per input dimension.
package hessian

import (
	"gonum.org/v1/gonum/mat"

	"github.com/revgrad-ml/revgrad/internal/ad"
	"github.com/revgrad-ml/revgrad/internal/parallel"
)

// DefaultEpsilon is the default coordinate perturbation size.
const DefaultEpsilon = 1e-3

// Settings configures the approximation. The zero value means
// DefaultEpsilon and sequential evaluation.
type Settings struct {
	Epsilon  float64         // Perturbation size; 0 means DefaultEpsilon.
	Parallel parallel.Config // Fan-out across Hessian columns.
}

// FiniteDiff returns f(x) and the approximate Hessian of f at x.
//
// Column i is the stencil
//
//	[−g(x+2εeᵢ) + 8g(x+εeᵢ) − 8g(x−εeᵢ) + g(x−2εeᵢ)] / (12ε)
//
// over the reverse-mode gradient g. Every gradient evaluation runs on its
// own tape, fully reset between calls, so the 4·d evaluations cannot
// interfere; columns fan out across workers per settings, each worker
// owning its tapes.
func FiniteDiff(f ad.Scalar, x []float64, s *Settings) (fx float64, hess *mat.Dense) {
	eps := DefaultEpsilon
	cfg := parallel.Config{}
	if s != nil {
		if s.Epsilon != 0 {
			eps = s.Epsilon
		}
		cfg = s.Parallel
	}

	d := len(x)
	hess = mat.NewDense(d, d, nil)
	parallel.For(d, func(i int) {
		tape := ad.New()
		xt := make([]float64, d)
		copy(xt, x)
		col := make([]float64, d)

		accumulate := func(weight, step float64) {
			xt[i] = x[i] + step
			_, g := ad.Gradient(tape, f, xt)
			for k, gk := range g {
				col[k] += weight * gk
			}
			tape.Reset()
		}
		accumulate(-1, 2*eps)
		accumulate(8, eps)
		accumulate(-8, -eps)
		accumulate(1, -2*eps)

		// Workers touch disjoint columns.
		for k := range col {
			hess.Set(k, i, col[k]/(12*eps))
		}
	}, cfg)

	fx = ad.Value(ad.New(), f, x)
	return fx, hess
}
