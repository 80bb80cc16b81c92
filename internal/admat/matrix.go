// Package admat provides dense matrices of tape variables with
// derivative support for the matrix operations density code relies on:
// add, subtract, matrix and elementwise multiply, transpose, elementwise
// log, sum, trace, inverse, and row/column extraction.
//
// Structural operations (T, Row, Col) are views: they reindex existing
// nodes and record nothing. Elementwise operations decompose into the
// scalar node taxonomy. Contractions (Mul, Sum, Trace, Inverse) record
// one batched node per output entry, with forward values computed through
// gonum; both representations produce identical derivatives.
package admat

import (
	"gonum.org/v1/gonum/mat"

	"github.com/revgrad-ml/revgrad/internal/ad"
)

// Matrix is a dense, row-major matrix of tape variables. Like Var it is a
// copyable handle: entries reference tape nodes owned by the tape's
// arena, and the matrix is valid only until the episode that recorded its
// entries is rewound or reset.
type Matrix struct {
	tape       *ad.Tape
	rows, cols int
	vars       []ad.Var
}

// New records r*c independent leaf entries from data (row-major) and
// returns the matrix. data must have length r*c.
func New(t *ad.Tape, r, c int, data []float64) Matrix {
	if len(data) != r*c {
		panic(mat.ErrShape)
	}
	vars := make([]ad.Var, len(data))
	for i, x := range data {
		vars[i] = t.Var(x)
	}
	return Matrix{tape: t, rows: r, cols: c, vars: vars}
}

// FromDense records leaf entries for every element of d.
func FromDense(t *ad.Tape, d *mat.Dense) Matrix {
	r, c := d.Dims()
	vars := make([]ad.Var, r*c)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			vars[i*c+j] = t.Var(d.At(i, j))
		}
	}
	return Matrix{tape: t, rows: r, cols: c, vars: vars}
}

// FromVars wraps existing tape variables (row-major) as a matrix.
func FromVars(r, c int, vars []ad.Var) Matrix {
	if len(vars) != r*c || len(vars) == 0 {
		panic(mat.ErrShape)
	}
	return Matrix{tape: vars[0].Tape(), rows: r, cols: c, vars: vars}
}

// Dims returns the row and column counts.
func (m Matrix) Dims() (r, c int) {
	return m.rows, m.cols
}

// At returns the entry at row i, column j.
func (m Matrix) At(i, j int) ad.Var {
	return m.vars[i*m.cols+j]
}

// Value extracts the plain numeric values, dropping provenance.
func (m Matrix) Value() *mat.Dense {
	data := make([]float64, len(m.vars))
	for i, v := range m.vars {
		data[i] = v.Value()
	}
	return mat.NewDense(m.rows, m.cols, data)
}

// T returns the transpose as a view. No nodes are recorded; gradients
// flow through the shared entries.
func (m Matrix) T() Matrix {
	vars := make([]ad.Var, len(m.vars))
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			vars[j*m.rows+i] = m.vars[i*m.cols+j]
		}
	}
	return Matrix{tape: m.tape, rows: m.cols, cols: m.rows, vars: vars}
}

// Row returns row i as a 1×c view.
func (m Matrix) Row(i int) Matrix {
	return Matrix{
		tape: m.tape,
		rows: 1,
		cols: m.cols,
		vars: m.vars[i*m.cols : (i+1)*m.cols],
	}
}

// Col returns column j as an r×1 view.
func (m Matrix) Col(j int) Matrix {
	vars := make([]ad.Var, m.rows)
	for i := 0; i < m.rows; i++ {
		vars[i] = m.vars[i*m.cols+j]
	}
	return Matrix{tape: m.tape, rows: m.rows, cols: 1, vars: vars}
}

// refs returns the tape refs of the entries, row-major.
func (m Matrix) refs() []ad.Ref {
	rs := make([]ad.Ref, len(m.vars))
	for i, v := range m.vars {
		rs[i] = v.Ref()
	}
	return rs
}

func (m Matrix) sameShape(n Matrix) {
	if m.rows != n.rows || m.cols != n.cols {
		panic(mat.ErrShape)
	}
}
