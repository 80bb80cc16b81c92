// Copyright 2025 Revgrad Project. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package ad provides reverse-mode automatic differentiation for scalar
// functions.
//
// Arithmetic on Var values computes the forward result and records the
// operation on a Tape as a side effect; Gradient replays the tape once in
// reverse to obtain exact derivatives. A Tape is one evaluation episode,
// owned by the caller — parallel evaluators give each goroutine its own.
//
// Example:
//
//	tape := ad.New()
//	fx, grad := ad.Gradient(tape, func(x []ad.Var) ad.Var {
//	    return x[0].Mul(x[1]).Add(ad.Log(x[0]))
//	}, []float64{2.0, 3.0})
//	// fx = 6.693..., grad = [3.5, 2.0]
package ad

import "github.com/revgrad-ml/revgrad/internal/ad"

// Tape is an append-only record of the operations performed during one
// differentiable evaluation episode.
type Tape = ad.Tape

// Var is a tagged numeric value: a plain float64 paired with the tape
// node recording its provenance.
type Var = ad.Var

// Ref identifies a node by its append position on the tape.
type Ref = ad.Ref

// Op is the chain-rule propagation step recorded with a node. Implement
// it to build custom batched operations via Tape.Push.
type Op = ad.Op

// Scalar is a differentiable scalar-valued function of several variables.
type Scalar = ad.Scalar

// Func pairs a scalar function with its declared input dimension for
// precondition-checked differentiation.
type Func = ad.Func

// ErrDimension reports an input vector whose length does not match a
// Func's declared dimension.
var ErrDimension = ad.ErrDimension

// New creates an empty tape with no node ceiling.
func New() *Tape { return ad.New() }

// NewWithLimit creates an empty tape that treats exceeding maxNodes live
// nodes as fatal resource exhaustion.
func NewWithLimit(maxNodes int) *Tape { return ad.NewWithLimit(maxNodes) }

// Gradient evaluates f at x and returns f(x) together with ∂f/∂x.
// It runs as a scoped episode on t and rewinds the tape before returning,
// so calls nest.
func Gradient(t *Tape, f Scalar, x []float64) (fx float64, grad []float64) {
	return ad.Gradient(t, f, x)
}

// Value evaluates f at x without a reverse sweep.
func Value(t *Tape, f Scalar, x []float64) float64 { return ad.Value(t, f, x) }

// Elementary math functions with derivative support. Each computes the
// forward value, records a node, and returns a Var for it.

// Abs returns |v|.
func Abs(v Var) Var { return ad.Abs(v) }

// Inv returns 1 / v.
func Inv(v Var) Var { return ad.Inv(v) }

// Log returns the natural logarithm of v.
func Log(v Var) Var { return ad.Log(v) }

// Log1p returns log(1 + v), accurate near zero.
func Log1p(v Var) Var { return ad.Log1p(v) }

// Exp returns e raised to v.
func Exp(v Var) Var { return ad.Exp(v) }

// Expm1 returns eᵛ - 1, accurate near zero.
func Expm1(v Var) Var { return ad.Expm1(v) }

// Sqrt returns the square root of v.
func Sqrt(v Var) Var { return ad.Sqrt(v) }

// Pow returns v raised to the power w.
func Pow(v, w Var) Var { return ad.Pow(v, w) }

// PowScalar returns v raised to the constant power c.
func PowScalar(v Var, c float64) Var { return ad.PowScalar(v, c) }

// ScalarPow returns the constant c raised to the power v.
func ScalarPow(c float64, v Var) Var { return ad.ScalarPow(c, v) }

// ScalarSub returns c - v.
func ScalarSub(c float64, v Var) Var { return ad.ScalarSub(c, v) }

// ScalarDiv returns c / v.
func ScalarDiv(c float64, v Var) Var { return ad.ScalarDiv(c, v) }

// Hypot returns sqrt(v² + w²).
func Hypot(v, w Var) Var { return ad.Hypot(v, w) }

// Sin returns the sine of v.
func Sin(v Var) Var { return ad.Sin(v) }

// Cos returns the cosine of v.
func Cos(v Var) Var { return ad.Cos(v) }

// Tan returns the tangent of v.
func Tan(v Var) Var { return ad.Tan(v) }

// Asin returns the arcsine of v.
func Asin(v Var) Var { return ad.Asin(v) }

// Acos returns the arccosine of v.
func Acos(v Var) Var { return ad.Acos(v) }

// Atan returns the arctangent of v.
func Atan(v Var) Var { return ad.Atan(v) }

// Sinh returns the hyperbolic sine of v.
func Sinh(v Var) Var { return ad.Sinh(v) }

// Cosh returns the hyperbolic cosine of v.
func Cosh(v Var) Var { return ad.Cosh(v) }

// Tanh returns the hyperbolic tangent of v.
func Tanh(v Var) Var { return ad.Tanh(v) }
