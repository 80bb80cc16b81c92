package admat_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/diff/fd"
	"gonum.org/v1/gonum/mat"

	"github.com/revgrad-ml/revgrad/internal/ad"
	"github.com/revgrad-ml/revgrad/internal/admat"
)

// TestTraceMulTranspose checks the matrix reference property:
// ∇ₘ trace(M·Mᵀ) = 2M.
func TestTraceMulTranspose(t *testing.T) {
	tape := ad.New()
	m := mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6})

	fx, grad := admat.Gradient(tape, func(x admat.Matrix) ad.Var {
		return admat.Trace(admat.Mul(x, x.T()))
	}, m)

	// trace(M·Mᵀ) is the sum of squared entries.
	require.Equal(t, 91.0, fx)

	var want mat.Dense
	want.Scale(2, m)
	require.True(t, mat.Equal(&want, grad), "grad = %v, want 2M", mat.Formatted(grad))
	require.Equal(t, 0, tape.Len(), "episode not rewound")
}

// TestSumElemSquare checks ∇ₘ sum(M∘M) = 2M through the elementwise path.
func TestSumElemSquare(t *testing.T) {
	tape := ad.New()
	m := mat.NewDense(2, 2, []float64{1, -2, 3, 0.5})

	fx, grad := admat.Gradient(tape, func(x admat.Matrix) ad.Var {
		return admat.Sum(admat.MulElem(x, x))
	}, m)

	require.Equal(t, 1+4+9+0.25, fx)
	var want mat.Dense
	want.Scale(2, m)
	require.True(t, mat.Equal(&want, grad))
}

// TestMulMatchesScalarDecomposition builds the same bilinear function two
// ways — batched dot nodes and a per-entry scalar decomposition — and
// requires identical derivatives. Integer-valued inputs keep every
// intermediate exact, so the comparison is bitwise.
func TestMulMatchesScalarDecomposition(t *testing.T) {
	a := mat.NewDense(2, 2, []float64{1, 2, 3, 4})
	b := []float64{5, -6, 7, 8}

	batched := func(tape *ad.Tape) (float64, *mat.Dense) {
		return admat.Gradient(tape, func(x admat.Matrix) ad.Var {
			y := admat.FromVars(2, 2, []ad.Var{
				tape.Var(b[0]), tape.Var(b[1]), tape.Var(b[2]), tape.Var(b[3]),
			})
			return admat.Sum(admat.Mul(x, y))
		}, a)
	}
	scalar := func(tape *ad.Tape) (float64, *mat.Dense) {
		return admat.Gradient(tape, func(x admat.Matrix) ad.Var {
			y := admat.FromVars(2, 2, []ad.Var{
				tape.Var(b[0]), tape.Var(b[1]), tape.Var(b[2]), tape.Var(b[3]),
			})
			// sum_ij Σ_k x[i,k]·y[k,j], all scalar nodes.
			var out ad.Var
			first := true
			for i := 0; i < 2; i++ {
				for j := 0; j < 2; j++ {
					e := x.At(i, 0).Mul(y.At(0, j)).Add(x.At(i, 1).Mul(y.At(1, j)))
					if first {
						out, first = e, false
					} else {
						out = out.Add(e)
					}
				}
			}
			return out
		}, a)
	}

	fx1, g1 := batched(ad.New())
	fx2, g2 := scalar(ad.New())
	require.Equal(t, fx2, fx1)
	require.Equal(t, g2.RawMatrix().Data, g1.RawMatrix().Data)
}

// TestInverseGradient cross-checks ∇ₐ sum(A⁻¹) against gonum's
// finite-difference gradient.
func TestInverseGradient(t *testing.T) {
	tape := ad.New()
	a := mat.NewDense(2, 2, []float64{4, 1, 2, 3})

	fx, grad := admat.Gradient(tape, func(x admat.Matrix) ad.Var {
		return admat.Sum(admat.Inverse(x))
	}, a)

	plain := func(x []float64) float64 {
		var inv mat.Dense
		_ = inv.Inverse(mat.NewDense(2, 2, x))
		return mat.Sum(&inv)
	}
	require.InDelta(t, plain([]float64{4, 1, 2, 3}), fx, 1e-12)

	want := fd.Gradient(nil, plain, []float64{4, 1, 2, 3}, nil)
	for i, w := range want {
		require.InDelta(t, w, grad.RawMatrix().Data[i], 1e-6, "entry %d", i)
	}
}

// TestViews checks that transpose and row/column extraction are views:
// no nodes recorded, gradients flow through the shared entries.
func TestViews(t *testing.T) {
	tape := ad.New()
	m := admat.New(tape, 2, 3, []float64{1, 2, 3, 4, 5, 6})
	recorded := tape.Len()

	mt := m.T()
	row := m.Row(1)
	col := m.Col(2)
	require.Equal(t, recorded, tape.Len(), "views must not record nodes")

	require.Equal(t, 4.0, mt.At(0, 1).Value())
	require.Equal(t, 6.0, row.At(0, 2).Value())
	require.Equal(t, 3.0, col.At(0, 0).Value())

	// Gradient through a transpose view reaches the original entries.
	fx, grad := admat.Gradient(tape, func(x admat.Matrix) ad.Var {
		return admat.Sum(admat.MulElem(x.T(), x.T()))
	}, mat.NewDense(2, 2, []float64{1, 2, 3, 4}))
	require.Equal(t, 30.0, fx)
	require.Equal(t, []float64{2, 4, 6, 8}, grad.RawMatrix().Data)
}

// TestLogElemGradient checks ∇ₘ sum(log M) = 1/M elementwise.
func TestLogElemGradient(t *testing.T) {
	tape := ad.New()
	m := mat.NewDense(1, 3, []float64{1, 2, 4})

	_, grad := admat.Gradient(tape, func(x admat.Matrix) ad.Var {
		return admat.Sum(admat.LogElem(x))
	}, m)
	require.Equal(t, []float64{1, 0.5, 0.25}, grad.RawMatrix().Data)
}

// TestAddSubScale checks the remaining elementwise ops in one pass.
func TestAddSubScale(t *testing.T) {
	tape := ad.New()
	m := mat.NewDense(2, 2, []float64{1, 2, 3, 4})

	// f = sum(3·(M + M) − M) = 5·sum(M); gradient is 5 everywhere.
	fx, grad := admat.Gradient(tape, func(x admat.Matrix) ad.Var {
		return admat.Sum(admat.Sub(admat.Scale(3, admat.Add(x, x)), x))
	}, m)
	require.Equal(t, 50.0, fx)
	require.Equal(t, []float64{5, 5, 5, 5}, grad.RawMatrix().Data)
}
