package gate

import "github.com/kegliz/qivm/algebra"

// RotAxis names the rotation family a uniformly controlled rotation
// (a "mux") carries — one of Rx, Ry, Rz.
type RotAxis int

const (
	AxisRX RotAxis = iota
	AxisRY
	AxisRZ
)

// RotationGate returns the single-qubit rotation gate for this axis at
// the given angle — used to collapse a MUX whose branches all agree.
func (a RotAxis) RotationGate(angle float64) Gate {
	switch a {
	case AxisRX:
		return RX(angle)
	case AxisRY:
		return RY(angle)
	default:
		return RZ(angle)
	}
}

// Mux is a uniformly controlled rotation: one angle per control bit
// configuration, all sharing a rotation axis. Ported from the original's
// MuxRotationOperation (operation/controlled/mux/rotation.rs) —
// the general per-branch-gate and multi-target mux variants it also
// defines are not modeled here; this pipeline only demultiplexes the
// rotation family (see the demultiplex pass).
type Mux struct {
	Axis   RotAxis
	Angles []float64 // length 2^n, n = number of controls, controls[0] most significant
}

func (g Mux) Name() string       { return "MUX" }
func (g Mux) DrawSymbol() string { return "MUX" }

// Arity reports 1, the target only: Mux always appears as a Controlled
// circuit operation whose Controls carry the log2(len(Angles))
// branch-selecting qubits, and those are not counted here.
func (g Mux) Arity() int { return 1 }

func (g Mux) Adjoint() Gate {
	negated := make([]float64, len(g.Angles))
	for i, a := range g.Angles {
		negated[i] = -a
	}
	return Mux{Axis: g.Axis, Angles: negated}
}

// Matrix returns the block-diagonal matrix with each branch's rotation
// on the diagonal, in control-configuration order. Used only for
// diagnostics/testing — the pipeline always demultiplexes a Mux before
// it could reach an encoder or a matrix-level equivalence check.
func (g Mux) Matrix() algebra.Matrix {
	branch := make([]algebra.Matrix, len(g.Angles))
	for i, a := range g.Angles {
		branch[i] = g.Axis.RotationGate(a).Matrix()
	}
	out := branch[0]
	for _, m := range branch[1:] {
		out = algebra.DirectAdd(out, m)
	}
	return out
}

// AllEqual reports whether every branch carries the same angle — the
// collapse condition multiplex-optimize rewrites away.
func (g Mux) AllEqual() bool {
	for _, a := range g.Angles[1:] {
		if a != g.Angles[0] {
			return false
		}
	}
	return true
}

// AllZero reports whether every branch is a zero-angle (identity) rotation.
func (g Mux) AllZero() bool {
	for _, a := range g.Angles {
		if a != 0 {
			return false
		}
	}
	return true
}
