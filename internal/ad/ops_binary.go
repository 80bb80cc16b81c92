package ad

import "math"

// Binary operations. Each arithmetic method computes the forward result
// from the operand values, records a node capturing the operation and its
// operand refs, and returns a Var wrapping the new node. The *Scalar
// forms fold a plain-number operand into the op instead of recording a
// leaf for it.

type addOp struct{ x, y Ref }

func (o addOp) Chain(t *Tape, adj float64) {
	t.AddAdjoint(o.x, adj)
	t.AddAdjoint(o.y, adj)
}

// Add returns v + w.
func (v Var) Add(w Var) Var {
	t := v.join(w)
	return t.Push(v.Value()+w.Value(), addOp{v.ref, w.ref})
}

// AddScalar returns v + c.
func (v Var) AddScalar(c float64) Var {
	return v.tape.Push(v.Value()+c, identOp{v.ref})
}

type subOp struct{ x, y Ref }

func (o subOp) Chain(t *Tape, adj float64) {
	t.AddAdjoint(o.x, adj)
	t.AddAdjoint(o.y, -adj)
}

// Sub returns v - w.
func (v Var) Sub(w Var) Var {
	t := v.join(w)
	return t.Push(v.Value()-w.Value(), subOp{v.ref, w.ref})
}

// SubScalar returns v - c.
func (v Var) SubScalar(c float64) Var {
	return v.tape.Push(v.Value()-c, identOp{v.ref})
}

// ScalarSub returns c - v.
func ScalarSub(c float64, v Var) Var {
	return v.tape.Push(c-v.Value(), negOp{v.ref})
}

type mulOp struct{ x, y Ref }

func (o mulOp) Chain(t *Tape, adj float64) {
	t.AddAdjoint(o.x, adj*t.ValueOf(o.y))
	t.AddAdjoint(o.y, adj*t.ValueOf(o.x))
}

// Mul returns v * w.
func (v Var) Mul(w Var) Var {
	t := v.join(w)
	return t.Push(v.Value()*w.Value(), mulOp{v.ref, w.ref})
}

type scaleOp struct {
	x Ref
	c float64
}

func (o scaleOp) Chain(t *Tape, adj float64) {
	t.AddAdjoint(o.x, adj*o.c)
}

// MulScalar returns v * c.
func (v Var) MulScalar(c float64) Var {
	return v.tape.Push(v.Value()*c, scaleOp{v.ref, c})
}

type divOp struct{ x, y Ref }

func (o divOp) Chain(t *Tape, adj float64) {
	y := t.ValueOf(o.y)
	t.AddAdjoint(o.x, adj/y)
	t.AddAdjoint(o.y, -adj*t.ValueOf(o.x)/(y*y))
}

// Div returns v / w.
func (v Var) Div(w Var) Var {
	t := v.join(w)
	return t.Push(v.Value()/w.Value(), divOp{v.ref, w.ref})
}

// DivScalar returns v / c.
func (v Var) DivScalar(c float64) Var {
	return v.tape.Push(v.Value()/c, scaleOp{v.ref, 1 / c})
}

type scalarDivOp struct {
	y Ref
	c float64
}

func (o scalarDivOp) Chain(t *Tape, adj float64) {
	y := t.ValueOf(o.y)
	t.AddAdjoint(o.y, -adj*o.c/(y*y))
}

// ScalarDiv returns c / v.
func ScalarDiv(c float64, v Var) Var {
	return v.tape.Push(c/v.Value(), scalarDivOp{v.ref, c})
}

// powOp caches the forward result: d(x^y)/dy = x^y * log(x).
type powOp struct {
	x, y Ref
	v    float64
}

func (o powOp) Chain(t *Tape, adj float64) {
	x, y := t.ValueOf(o.x), t.ValueOf(o.y)
	t.AddAdjoint(o.x, adj*y*math.Pow(x, y-1))
	t.AddAdjoint(o.y, adj*o.v*math.Log(x))
}

// Pow returns v raised to the power w.
// Per ordinary floating-point semantics the exponent partial is NaN for a
// non-positive base.
func Pow(v, w Var) Var {
	t := v.join(w)
	fv := math.Pow(v.Value(), w.Value())
	return t.Push(fv, powOp{v.ref, w.ref, fv})
}

type powScalarOp struct {
	x Ref
	c float64
}

func (o powScalarOp) Chain(t *Tape, adj float64) {
	t.AddAdjoint(o.x, adj*o.c*math.Pow(t.ValueOf(o.x), o.c-1))
}

// PowScalar returns v raised to the constant power c.
func PowScalar(v Var, c float64) Var {
	return v.tape.Push(math.Pow(v.Value(), c), powScalarOp{v.ref, c})
}

type scalarPowOp struct {
	y    Ref
	logc float64
	v    float64
}

func (o scalarPowOp) Chain(t *Tape, adj float64) {
	t.AddAdjoint(o.y, adj*o.v*o.logc)
}

// ScalarPow returns the constant c raised to the power v.
func ScalarPow(c float64, v Var) Var {
	fv := math.Pow(c, v.Value())
	return v.tape.Push(fv, scalarPowOp{v.ref, math.Log(c), fv})
}

type hypotOp struct{ x, y Ref }

func (o hypotOp) Chain(t *Tape, adj float64) {
	h := math.Hypot(t.ValueOf(o.x), t.ValueOf(o.y))
	t.AddAdjoint(o.x, adj*t.ValueOf(o.x)/h)
	t.AddAdjoint(o.y, adj*t.ValueOf(o.y)/h)
}

// Hypot returns sqrt(v² + w²).
func Hypot(v, w Var) Var {
	t := v.join(w)
	return t.Push(math.Hypot(v.Value(), w.Value()), hypotOp{v.ref, w.ref})
}
