package ad

import "math"

// Unary operations. Domain-invalid inputs (log of a non-positive value,
// sqrt of a negative, ...) propagate NaN/±Inf through value and adjoint
// exactly as ordinary floating-point arithmetic would; nothing here
// panics on numeric degeneracy.

// identOp passes the adjoint through unchanged (shift by a constant).
type identOp struct{ x Ref }

func (o identOp) Chain(t *Tape, adj float64) {
	t.AddAdjoint(o.x, adj)
}

type negOp struct{ x Ref }

func (o negOp) Chain(t *Tape, adj float64) {
	t.AddAdjoint(o.x, -adj)
}

// Neg returns -v.
func (v Var) Neg() Var {
	return v.tape.Push(-v.Value(), negOp{v.ref})
}

type absOp struct{ x Ref }

func (o absOp) Chain(t *Tape, adj float64) {
	if t.ValueOf(o.x) < 0 {
		adj = -adj
	}
	t.AddAdjoint(o.x, adj)
}

// Abs returns |v|. The derivative at zero is taken as the right branch,
// the accepted one-sided AD convention for non-differentiable points.
func Abs(v Var) Var {
	return v.tape.Push(math.Abs(v.Value()), absOp{v.ref})
}

// invOp caches 1/x: d(1/x)/dx = -1/x².
type invOp struct {
	x Ref
	v float64
}

func (o invOp) Chain(t *Tape, adj float64) {
	t.AddAdjoint(o.x, -adj*o.v*o.v)
}

// Inv returns 1 / v.
func Inv(v Var) Var {
	fv := 1 / v.Value()
	return v.tape.Push(fv, invOp{v.ref, fv})
}

type logOp struct{ x Ref }

func (o logOp) Chain(t *Tape, adj float64) {
	t.AddAdjoint(o.x, adj/t.ValueOf(o.x))
}

// Log returns the natural logarithm of v.
func Log(v Var) Var {
	return v.tape.Push(math.Log(v.Value()), logOp{v.ref})
}

type log1pOp struct{ x Ref }

func (o log1pOp) Chain(t *Tape, adj float64) {
	t.AddAdjoint(o.x, adj/(1+t.ValueOf(o.x)))
}

// Log1p returns log(1 + v), accurate near zero.
func Log1p(v Var) Var {
	return v.tape.Push(math.Log1p(v.Value()), log1pOp{v.ref})
}

// expOp caches the forward result: d(eˣ)/dx = eˣ.
type expOp struct {
	x Ref
	v float64
}

func (o expOp) Chain(t *Tape, adj float64) {
	t.AddAdjoint(o.x, adj*o.v)
}

// Exp returns e raised to v.
func Exp(v Var) Var {
	fv := math.Exp(v.Value())
	return v.tape.Push(fv, expOp{v.ref, fv})
}

type expm1Op struct {
	x Ref
	v float64
}

func (o expm1Op) Chain(t *Tape, adj float64) {
	t.AddAdjoint(o.x, adj*(o.v+1))
}

// Expm1 returns eᵛ - 1, accurate near zero.
func Expm1(v Var) Var {
	fv := math.Expm1(v.Value())
	return v.tape.Push(fv, expm1Op{v.ref, fv})
}

// sqrtOp caches the forward result: d(√x)/dx = 1/(2√x).
type sqrtOp struct {
	x Ref
	v float64
}

func (o sqrtOp) Chain(t *Tape, adj float64) {
	t.AddAdjoint(o.x, adj/(2*o.v))
}

// Sqrt returns the square root of v.
func Sqrt(v Var) Var {
	fv := math.Sqrt(v.Value())
	return v.tape.Push(fv, sqrtOp{v.ref, fv})
}

type sinOp struct{ x Ref }

func (o sinOp) Chain(t *Tape, adj float64) {
	t.AddAdjoint(o.x, adj*math.Cos(t.ValueOf(o.x)))
}

// Sin returns the sine of v.
func Sin(v Var) Var {
	return v.tape.Push(math.Sin(v.Value()), sinOp{v.ref})
}

type cosOp struct{ x Ref }

func (o cosOp) Chain(t *Tape, adj float64) {
	t.AddAdjoint(o.x, -adj*math.Sin(t.ValueOf(o.x)))
}

// Cos returns the cosine of v.
func Cos(v Var) Var {
	return v.tape.Push(math.Cos(v.Value()), cosOp{v.ref})
}

// tanOp caches the forward result: d(tan x)/dx = 1 + tan²x.
type tanOp struct {
	x Ref
	v float64
}

func (o tanOp) Chain(t *Tape, adj float64) {
	t.AddAdjoint(o.x, adj*(1+o.v*o.v))
}

// Tan returns the tangent of v.
func Tan(v Var) Var {
	fv := math.Tan(v.Value())
	return v.tape.Push(fv, tanOp{v.ref, fv})
}

type asinOp struct{ x Ref }

func (o asinOp) Chain(t *Tape, adj float64) {
	x := t.ValueOf(o.x)
	t.AddAdjoint(o.x, adj/math.Sqrt(1-x*x))
}

// Asin returns the arcsine of v.
func Asin(v Var) Var {
	return v.tape.Push(math.Asin(v.Value()), asinOp{v.ref})
}

type acosOp struct{ x Ref }

func (o acosOp) Chain(t *Tape, adj float64) {
	x := t.ValueOf(o.x)
	t.AddAdjoint(o.x, -adj/math.Sqrt(1-x*x))
}

// Acos returns the arccosine of v.
func Acos(v Var) Var {
	return v.tape.Push(math.Acos(v.Value()), acosOp{v.ref})
}

type atanOp struct{ x Ref }

func (o atanOp) Chain(t *Tape, adj float64) {
	x := t.ValueOf(o.x)
	t.AddAdjoint(o.x, adj/(1+x*x))
}

// Atan returns the arctangent of v.
func Atan(v Var) Var {
	return v.tape.Push(math.Atan(v.Value()), atanOp{v.ref})
}

type sinhOp struct{ x Ref }

func (o sinhOp) Chain(t *Tape, adj float64) {
	t.AddAdjoint(o.x, adj*math.Cosh(t.ValueOf(o.x)))
}

// Sinh returns the hyperbolic sine of v.
func Sinh(v Var) Var {
	return v.tape.Push(math.Sinh(v.Value()), sinhOp{v.ref})
}

type coshOp struct{ x Ref }

func (o coshOp) Chain(t *Tape, adj float64) {
	t.AddAdjoint(o.x, adj*math.Sinh(t.ValueOf(o.x)))
}

// Cosh returns the hyperbolic cosine of v.
func Cosh(v Var) Var {
	return v.tape.Push(math.Cosh(v.Value()), coshOp{v.ref})
}

// tanhOp caches the forward result: d(tanh x)/dx = 1 - tanh²x.
type tanhOp struct {
	x Ref
	v float64
}

func (o tanhOp) Chain(t *Tape, adj float64) {
	t.AddAdjoint(o.x, adj*(1-o.v*o.v))
}

// Tanh returns the hyperbolic tangent of v.
func Tanh(v Var) Var {
	fv := math.Tanh(v.Value())
	return v.tape.Push(fv, tanhOp{v.ref, fv})
}
