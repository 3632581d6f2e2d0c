package algebra_test

import (
	"math"
	"testing"

	"github.com/kegliz/qivm/algebra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hadamard() algebra.Matrix {
	c := complex(1/math.Sqrt2, 0)
	return algebra.FromRows([][]complex128{
		{c, c},
		{c, -c},
	})
}

func TestIdentityPredicates(t *testing.T) {
	id := algebra.Identity(2)
	assert.True(t, id.IsIdentity())
	assert.True(t, id.IsUnitary())
	assert.True(t, id.IsHermitian())
}

func TestHadamardIsUnitaryAndHermitian(t *testing.T) {
	h := hadamard()
	assert.True(t, h.IsUnitary())
	assert.True(t, h.IsHermitian())
}

func TestMulAdjointInverse(t *testing.T) {
	h := hadamard()
	prod := h.Mul(h.Adjoint())
	assert.True(t, prod.IsIdentity())
}

func TestSqrt2x2RoundTrips(t *testing.T) {
	h := hadamard()
	root := algebra.Sqrt(h)
	back := root.Mul(root)
	assert.True(t, back.ApproxEqual(h))
}

func TestSUNormalizesDeterminant(t *testing.T) {
	m := algebra.FromRows([][]complex128{
		{2, 0},
		{0, 2},
	})
	su := algebra.SU(m)
	d := su.Det()
	require.InDelta(t, 1, real(d), 1e-9)
	require.InDelta(t, 0, imag(d), 1e-9)
}

func TestPhaseAngleOfIdentityIsZero(t *testing.T) {
	assert.InDelta(t, 0, algebra.PhaseAngle(algebra.Identity(2)), 1e-9)
}

func TestDirectAddBlockDiagonal(t *testing.T) {
	a := algebra.Identity(1).Scale(2)
	b := algebra.Identity(1).Scale(3)
	sum := algebra.DirectAdd(a, b)
	assert.Equal(t, 2, sum.Dim)
	assert.Equal(t, complex(2, 0), sum.At(0, 0))
	assert.Equal(t, complex(3, 0), sum.At(1, 1))
	assert.Equal(t, complex(0, 0), sum.At(0, 1))
}
