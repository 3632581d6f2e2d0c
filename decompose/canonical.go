package decompose

import (
	"github.com/kegliz/qivm/circuit"
	"github.com/kegliz/qivm/gate"
	"github.com/kegliz/qivm/qubit"
)

// Canonical decomposes CAN(tx,ty,tz) = exp(-iπ/2(tx·XX+ty·YY+tz·ZZ)) into
// a CNOT network, per spec 4.C. Since XX, YY, ZZ mutually commute, the
// gate factors into three independent two-qubit rotations; each
// exp(-iθ·ZZ) term realizes as CX·(Z^t on the target)·CX (global phase
// dropped, since CAN is never itself a controlled operand in this
// pipeline), and the XX/YY terms reduce to the same ZZ block conjugated
// into the right Pauli basis: H·Z·H = X, and (S·H)·Z·(S·H)† = Y.
func Canonical(tx, ty, tz float64, a, b qubit.Addr) []circuit.Operation {
	var out []circuit.Operation

	zzBlock := func(t float64) []circuit.Operation {
		return []circuit.Operation{
			circuit.Elem(gate.CX(), pairAccessor(a, b)),
			circuit.Elem(gate.ZPow(t), qubit.New(b)),
			circuit.Elem(gate.CX(), pairAccessor(a, b)),
		}
	}

	// XX term: conjugate by H on both qubits (H Z H = X).
	out = append(out, circuit.Elem(gate.H(), qubit.New(a)), circuit.Elem(gate.H(), qubit.New(b)))
	out = append(out, zzBlock(tx)...)
	out = append(out, circuit.Elem(gate.H(), qubit.New(a)), circuit.Elem(gate.H(), qubit.New(b)))

	// YY term: conjugate by S*H on both qubits ((S H) Z (S H)† = Y).
	out = append(out,
		circuit.Elem(gate.H(), qubit.New(a)), circuit.Elem(gate.S(), qubit.New(a)),
		circuit.Elem(gate.H(), qubit.New(b)), circuit.Elem(gate.S(), qubit.New(b)),
	)
	out = append(out, zzBlock(ty)...)
	out = append(out,
		circuit.Elem(gate.SD(), qubit.New(a)), circuit.Elem(gate.H(), qubit.New(a)),
		circuit.Elem(gate.SD(), qubit.New(b)), circuit.Elem(gate.H(), qubit.New(b)),
	)

	// ZZ term: native.
	out = append(out, zzBlock(tz)...)

	return out
}
