// Package gate defines the tagged-variant gate model: a closed family of
// Standard gates, carried-matrix Unitary gates, parameterized Canonical
// gates, and named Custom gates. Every variant knows its identifier,
// arity, dense matrix, and adjoint — a narrow interface over an
// exhaustively enumerated switch, not a class hierarchy, per the
// "tagged variants, not inheritance" design note.
package gate

import "github.com/kegliz/qivm/algebra"

// Gate is the minimal contract every gate variant fulfils. Kept tiny on
// purpose, in the shape of the teacher's own gate.Gate interface
// (Name/QubitSpan/DrawSymbol), extended with the matrix/adjoint
// operations the lowering pipeline needs.
type Gate interface {
	// Name is the stable string identifier used as the planner's item key
	// and the bytecode's opcode lookup (e.g. "H", "CX", "RZ").
	Name() string
	// Arity is how many qubits the gate acts on: 1, 2, 3, or N (custom).
	Arity() int
	// DrawSymbol is the single-char/fallback label used by the renderer.
	DrawSymbol() string
	// Matrix returns the dense unitary this gate implements.
	Matrix() algebra.Matrix
	// Adjoint returns the conjugate-transpose gate (its inverse).
	Adjoint() Gate
}

// Equal reports structural identity: same variant and equal parameters
// within algebra.Epsilon for floating ones.
func Equal(a, b Gate) bool {
	if a.Name() != b.Name() {
		return false
	}
	return a.Matrix().ApproxEqual(b.Matrix())
}
