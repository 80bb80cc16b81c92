package ad

import "fmt"

// ErrDimension reports an input vector whose length does not match the
// dimension a Func declares. It is detected before any tape mutation, so
// the caller may retry with corrected input.
var ErrDimension = fmt.Errorf("ad: input dimension mismatch")

// Scalar is a differentiable scalar-valued function of several variables.
// It must compute its result from the supplied vars; Vars captured from an
// enclosing episode must not appear in the expression, or the enclosing
// episode's adjoints would be disturbed.
type Scalar func(x []Var) Var

// Gradient evaluates f at x and returns f(x) together with ∂f/∂x, in the
// same order as x.
//
// The call runs as a scoped episode on t: each component of x is wrapped
// as a fresh independent leaf, f grows the tape as a side effect of its
// arithmetic, the output adjoint is seeded to 1 and the episode is swept
// once in reverse append order, the leaf adjoints are read off as the
// gradient, and the tape is rewound to its pre-call length. Because the
// episode is scoped, Gradient calls nest: a function under
// differentiation may itself call Gradient on the same tape.
//
// Where f is non-differentiable along the executed path the result is the
// one-sided derivative of the branch actually taken.
func Gradient(t *Tape, f Scalar, x []float64) (fx float64, grad []float64) {
	mark := t.Mark()
	xs := make([]Var, len(x))
	for i, xi := range x {
		xs[i] = t.Var(xi)
	}
	out := f(xs)
	if out.tape != t {
		panic("ad: function result recorded on a different tape")
	}
	fx = out.Value()
	t.sweep(out.ref, mark)
	grad = make([]float64, len(x))
	for i, xi := range xs {
		grad[i] = t.AdjointOf(xi.ref)
	}
	t.Rewind(mark)
	return fx, grad
}

// Value evaluates f at x without a reverse sweep and rewinds the episode.
func Value(t *Tape, f Scalar, x []float64) float64 {
	mark := t.Mark()
	defer t.Rewind(mark)
	xs := make([]Var, len(x))
	for i, xi := range x {
		xs[i] = t.Var(xi)
	}
	return f(xs).Value()
}

// Func pairs a scalar function with its declared input dimension so the
// arity precondition can be checked before any tape work begins.
type Func struct {
	Dim  int
	Eval Scalar
}

// Gradient evaluates f at x as Gradient does, returning ErrDimension when
// len(x) does not match the declared dimension. The tape is untouched on
// error.
func (f Func) Gradient(t *Tape, x []float64) (fx float64, grad []float64, err error) {
	if len(x) != f.Dim {
		return 0, nil, fmt.Errorf("%w: want %d, got %d", ErrDimension, f.Dim, len(x))
	}
	fx, grad = Gradient(t, f.Eval, x)
	return fx, grad, nil
}
