// Copyright 2025 Revgrad Project. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package admat provides dense matrices of tape variables with
// derivative support for add, subtract, matrix and elementwise multiply,
// transpose, elementwise log, sum, trace, inverse, and row/column
// extraction.
//
// Example:
//
//	tape := ad.New()
//	fx, grad := admat.Gradient(tape, func(m admat.Matrix) ad.Var {
//	    return admat.Trace(admat.Mul(m, m.T()))
//	}, mat.NewDense(2, 3, data))
//	// grad equals 2M
package admat

import (
	"gonum.org/v1/gonum/mat"

	"github.com/revgrad-ml/revgrad/ad"
	"github.com/revgrad-ml/revgrad/internal/admat"
)

// Matrix is a dense, row-major matrix of tape variables.
type Matrix = admat.Matrix

// New records r*c independent leaf entries from data (row-major).
func New(t *ad.Tape, r, c int, data []float64) Matrix { return admat.New(t, r, c, data) }

// FromDense records leaf entries for every element of d.
func FromDense(t *ad.Tape, d *mat.Dense) Matrix { return admat.FromDense(t, d) }

// FromVars wraps existing tape variables (row-major) as a matrix.
func FromVars(r, c int, vars []ad.Var) Matrix { return admat.FromVars(r, c, vars) }

// Add returns a + b.
func Add(a, b Matrix) Matrix { return admat.Add(a, b) }

// Sub returns a - b.
func Sub(a, b Matrix) Matrix { return admat.Sub(a, b) }

// MulElem returns the elementwise (Hadamard) product a ∘ b.
func MulElem(a, b Matrix) Matrix { return admat.MulElem(a, b) }

// Mul returns the matrix product a·b.
func Mul(a, b Matrix) Matrix { return admat.Mul(a, b) }

// LogElem returns the elementwise natural logarithm of m.
func LogElem(m Matrix) Matrix { return admat.LogElem(m) }

// Scale returns c * m.
func Scale(c float64, m Matrix) Matrix { return admat.Scale(c, m) }

// Sum returns the sum of all entries.
func Sum(m Matrix) ad.Var { return admat.Sum(m) }

// Trace returns the sum of the diagonal of a square matrix.
func Trace(m Matrix) ad.Var { return admat.Trace(m) }

// Inverse returns the inverse of a square matrix.
func Inverse(a Matrix) Matrix { return admat.Inverse(a) }

// Gradient evaluates a matrix-input scalar function f at m and returns
// f(m) with ∂f/∂m, shaped like m.
func Gradient(t *ad.Tape, f func(Matrix) ad.Var, m *mat.Dense) (fx float64, grad *mat.Dense) {
	return admat.Gradient(t, f, m)
}
