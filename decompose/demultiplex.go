package decompose

import (
	"github.com/kegliz/qivm/circuit"
	"github.com/kegliz/qivm/gate"
	"github.com/kegliz/qivm/qubit"
)

// MuxAxis names the rotation family a uniformly controlled MUX carries.
type MuxAxis int

const (
	MuxRX MuxAxis = iota
	MuxRY
	MuxRZ
)

func (axis MuxAxis) rotation(alpha float64) gate.Gate {
	switch axis {
	case MuxRX:
		return gate.RX(alpha)
	case MuxRY:
		return gate.RY(alpha)
	default:
		return gate.RZ(alpha)
	}
}

// Demultiplex expands a uniformly controlled rotation (MUX of Rx/Ry/Rz,
// one angle per control configuration) on controls[...] -> target,
// recursively per spec 4.C: pop the first control c, emit the (n-1)-MUX
// on the remainder with the first half of angles, then CX(c,t), then the
// (n-1)-MUX again with the paired second half, then CX(c,t).
//
// angles holds one entry per control configuration, 2^len(controls)
// long, ordered with controls[0] as the most significant bit.
func Demultiplex(axis MuxAxis, controls []qubit.Addr, target qubit.Addr, angles []float64) []circuit.Operation {
	if len(controls) == 0 {
		if len(angles) != 1 {
			panic("decompose: Demultiplex base case expects exactly one angle")
		}
		if angles[0] == 0 {
			return nil
		}
		return []circuit.Operation{circuit.Elem(axis.rotation(angles[0]), qubit.New(target))}
	}

	c := controls[0]
	rest := controls[1:]
	half := len(angles) / 2

	var out []circuit.Operation
	out = append(out, Demultiplex(axis, rest, target, angles[:half])...)
	out = append(out, circuit.Elem(gate.CX(), pairAccessor(c, target)))
	out = append(out, Demultiplex(axis, rest, target, angles[half:])...)
	out = append(out, circuit.Elem(gate.CX(), pairAccessor(c, target)))
	return out
}
