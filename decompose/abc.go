package decompose

import (
	"github.com/kegliz/qivm/circuit"
	"github.com/kegliz/qivm/gate"
	"github.com/kegliz/qivm/qubit"
)

// ABC decomposes a single-control, single-target controlled-U operation
// via the A*X*B*X*C identity (spec 4.C), short-circuiting the three
// cases with a direct native gate: controlled-X -> CX, controlled-Z ->
// CZ, controlled-P(alpha) -> CP(alpha).
//
// Reading the emitted sequence left-to-right (the order operations are
// applied in): C, CX, B, CX, A, then P(alpha) on the control — matching
// operation/controlled/single_ctrl.rs's abc_decompose.
func ABC(ctrl, target qubit.Addr, g gate.Gate) ([]circuit.Operation, error) {
	switch g.Name() {
	case "X":
		return []circuit.Operation{
			circuit.Elem(gate.CX(), pairAccessor(ctrl, target)),
		}, nil
	case "Z":
		return []circuit.Operation{
			circuit.Elem(gate.CZ(), pairAccessor(ctrl, target)),
		}, nil
	case "P":
		if pg, ok := g.(interface{ Angle() float64 }); ok {
			return []circuit.Operation{
				circuit.Elem(gate.CP(pg.Angle()), pairAccessor(ctrl, target)),
			}, nil
		}
	}

	e, err := ZYZ(g.Matrix())
	if err != nil {
		return nil, err
	}

	t := qubit.New(target)
	c := qubit.New(ctrl)
	return []circuit.Operation{
		circuit.Elem(gate.RZ((e.Lambda-e.Theta)/2), t),
		circuit.Elem(gate.CX(), pairAccessor(ctrl, target)),
		circuit.Elem(gate.RZ(-(e.Theta+e.Lambda)/2), t),
		circuit.Elem(gate.RY(-e.Phi/2), t),
		circuit.Elem(gate.CX(), pairAccessor(ctrl, target)),
		circuit.Elem(gate.RY(e.Phi/2), t),
		circuit.Elem(gate.RZ(e.Theta), t),
		circuit.Elem(gate.P(e.Alpha), c),
	}, nil
}

func pairAccessor(a, b qubit.Addr) qubit.Accessor {
	return qubit.New(a).Append(b)
}
