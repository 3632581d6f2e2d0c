package gate_test

import (
	"math"
	"testing"

	"github.com/kegliz/qivm/gate"
	"github.com/stretchr/testify/assert"
)

// U(theta,phi,lambda).Adjoint() must equal the conjugate transpose of
// U's own matrix, not just a phi/lambda negation: theta also flips
// sign (U(-theta,-lambda,-phi)).
func TestUAdjointMatchesConjugateTranspose(t *testing.T) {
	g := gate.U(math.Pi/2, math.Pi/5, math.Pi/3)
	got := g.Adjoint().Matrix()
	want := g.Matrix().Adjoint()
	assert.True(t, got.ApproxEqual(want))
}

// Concrete counterexample from review: U(pi/2,0,0) is a real,
// non-symmetric rotation, so its adjoint must differ from itself.
func TestUAdjointOfRealRotationIsNotSelfAdjoint(t *testing.T) {
	g := gate.U(math.Pi/2, 0, 0)
	adj := g.Adjoint().Matrix()
	assert.False(t, adj.ApproxEqual(g.Matrix()))
	assert.True(t, adj.ApproxEqual(g.Matrix().Adjoint()))
}
