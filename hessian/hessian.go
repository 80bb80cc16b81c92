// Copyright 2025 Revgrad Project. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package hessian approximates Hessians from first-order reverse-mode
// gradients with a 4th-order central-difference stencil.
package hessian

import (
	"gonum.org/v1/gonum/mat"

	"github.com/revgrad-ml/revgrad/ad"
	"github.com/revgrad-ml/revgrad/internal/hessian"
)

// DefaultEpsilon is the default coordinate perturbation size.
const DefaultEpsilon = hessian.DefaultEpsilon

// Settings configures the approximation; the zero value means
// DefaultEpsilon and sequential evaluation.
type Settings = hessian.Settings

// FiniteDiff returns f(x) and the approximate Hessian of f at x,
// consuming the gradient primitive four times per input dimension. Pass
// nil settings for the defaults.
func FiniteDiff(f ad.Scalar, x []float64, s *Settings) (fx float64, hess *mat.Dense) {
	return hessian.FiniteDiff(f, x, s)
}
