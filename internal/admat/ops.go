package admat

import (
	"gonum.org/v1/gonum/mat"

	"github.com/revgrad-ml/revgrad/internal/ad"
)

// Elementwise operations decompose into scalar nodes, one per entry.

// Add returns a + b.
func Add(a, b Matrix) Matrix {
	a.sameShape(b)
	vars := make([]ad.Var, len(a.vars))
	for i := range a.vars {
		vars[i] = a.vars[i].Add(b.vars[i])
	}
	return Matrix{tape: a.tape, rows: a.rows, cols: a.cols, vars: vars}
}

// Sub returns a - b.
func Sub(a, b Matrix) Matrix {
	a.sameShape(b)
	vars := make([]ad.Var, len(a.vars))
	for i := range a.vars {
		vars[i] = a.vars[i].Sub(b.vars[i])
	}
	return Matrix{tape: a.tape, rows: a.rows, cols: a.cols, vars: vars}
}

// MulElem returns the elementwise (Hadamard) product a ∘ b.
func MulElem(a, b Matrix) Matrix {
	a.sameShape(b)
	vars := make([]ad.Var, len(a.vars))
	for i := range a.vars {
		vars[i] = a.vars[i].Mul(b.vars[i])
	}
	return Matrix{tape: a.tape, rows: a.rows, cols: a.cols, vars: vars}
}

// LogElem returns the elementwise natural logarithm of m. Non-positive
// entries propagate NaN/-Inf per ordinary floating-point semantics.
func LogElem(m Matrix) Matrix {
	vars := make([]ad.Var, len(m.vars))
	for i := range m.vars {
		vars[i] = ad.Log(m.vars[i])
	}
	return Matrix{tape: m.tape, rows: m.rows, cols: m.cols, vars: vars}
}

// Scale returns c * m.
func Scale(c float64, m Matrix) Matrix {
	vars := make([]ad.Var, len(m.vars))
	for i := range m.vars {
		vars[i] = m.vars[i].MulScalar(c)
	}
	return Matrix{tape: m.tape, rows: m.rows, cols: m.cols, vars: vars}
}

// dotOp is the batched node behind one matrix-product entry: a dot
// product over paired operand refs. Operand values are read back off the
// tape during the sweep.
type dotOp struct {
	xs, ys []ad.Ref
}

func (o dotOp) Chain(t *ad.Tape, adj float64) {
	for k := range o.xs {
		t.AddAdjoint(o.xs[k], adj*t.ValueOf(o.ys[k]))
		t.AddAdjoint(o.ys[k], adj*t.ValueOf(o.xs[k]))
	}
}

// Mul returns the matrix product a·b. The forward values are computed in
// one gonum multiply; one dot node is recorded per output entry, sharing
// the row and column ref slices across entries.
func Mul(a, b Matrix) Matrix {
	if a.cols != b.rows {
		panic(mat.ErrShape)
	}
	if a.tape != b.tape {
		panic("admat: operands recorded on different tapes")
	}
	var fv mat.Dense
	fv.Mul(a.Value(), b.Value())

	arefs, brefs := a.refs(), b.refs()
	arows := make([][]ad.Ref, a.rows)
	for i := range arows {
		arows[i] = arefs[i*a.cols : (i+1)*a.cols]
	}
	bcols := make([][]ad.Ref, b.cols)
	for j := range bcols {
		col := make([]ad.Ref, b.rows)
		for k := 0; k < b.rows; k++ {
			col[k] = brefs[k*b.cols+j]
		}
		bcols[j] = col
	}

	vars := make([]ad.Var, a.rows*b.cols)
	for i := 0; i < a.rows; i++ {
		for j := 0; j < b.cols; j++ {
			vars[i*b.cols+j] = a.tape.Push(fv.At(i, j), dotOp{arows[i], bcols[j]})
		}
	}
	return Matrix{tape: a.tape, rows: a.rows, cols: b.cols, vars: vars}
}

// sumOp fans a reduction's adjoint back to every summand.
type sumOp struct {
	xs []ad.Ref
}

func (o sumOp) Chain(t *ad.Tape, adj float64) {
	for _, x := range o.xs {
		t.AddAdjoint(x, adj)
	}
}

// Sum returns the sum of all entries as one batched node.
func Sum(m Matrix) ad.Var {
	var s float64
	for _, v := range m.vars {
		s += v.Value()
	}
	return m.tape.Push(s, sumOp{m.refs()})
}

// Trace returns the sum of the diagonal of a square matrix.
func Trace(m Matrix) ad.Var {
	if m.rows != m.cols {
		panic(mat.ErrShape)
	}
	refs := make([]ad.Ref, m.rows)
	var s float64
	for i := 0; i < m.rows; i++ {
		refs[i] = m.vars[i*m.cols+i].Ref()
		s += m.vars[i*m.cols+i].Value()
	}
	return m.tape.Push(s, sumOp{refs})
}

// invOp is the batched node behind one entry (i,j) of X = A⁻¹.
// Reverse rule: Ā = −Xᵀ·X̄·Xᵀ, so the (i,j) adjoint contributes
// Ā[p][q] += −X[i][p]·adj·X[q][j]. The shared forward inverse is the
// node's auxiliary buffer; it is immutable once recorded.
type invOp struct {
	a    []ad.Ref
	x    *mat.Dense
	i, j int
}

func (o invOp) Chain(t *ad.Tape, adj float64) {
	n, _ := o.x.Dims()
	for p := 0; p < n; p++ {
		for q := 0; q < n; q++ {
			t.AddAdjoint(o.a[p*n+q], -o.x.At(o.i, p)*adj*o.x.At(q, o.j))
		}
	}
}

// Inverse returns the inverse of a square matrix. A singular input
// propagates non-finite values rather than failing, consistent with the
// engine's floating-point error policy.
func Inverse(a Matrix) Matrix {
	if a.rows != a.cols {
		panic(mat.ErrShape)
	}
	// Ill-conditioning surfaces through the entries themselves; the
	// mat.Condition error adds no recovery path at this layer.
	var fv mat.Dense
	_ = fv.Inverse(a.Value())

	n := a.rows
	arefs := a.refs()
	vars := make([]ad.Var, n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			vars[i*n+j] = a.tape.Push(fv.At(i, j), invOp{arefs, &fv, i, j})
		}
	}
	return Matrix{tape: a.tape, rows: n, cols: n, vars: vars}
}

// Gradient evaluates a matrix-input scalar function f at m and returns
// f(m) with ∂f/∂m, shaped like m. It is the matrix form of ad.Gradient
// and runs as the same scoped episode.
func Gradient(t *ad.Tape, f func(Matrix) ad.Var, m *mat.Dense) (fx float64, grad *mat.Dense) {
	r, c := m.Dims()
	x := make([]float64, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			x[i*c+j] = m.At(i, j)
		}
	}
	fx, g := ad.Gradient(t, func(v []ad.Var) ad.Var {
		return f(Matrix{tape: t, rows: r, cols: c, vars: v})
	}, x)
	return fx, mat.NewDense(r, c, g)
}
