package pass

import (
	"fmt"

	"github.com/kegliz/qivm/circuit"
	"github.com/kegliz/qivm/decompose"
	"github.com/kegliz/qivm/gate"
)

// Demultiplex expands every Mux (uniformly controlled rotation)
// operation via the recursive CX/rotation identity. A multi-target mux
// is not modeled in this pipeline at all (see gate.Mux's doc comment);
// encountering one is a fatal configuration error, matching the
// original's DemultiplexPass raising on MultiTarget.
type Demultiplex struct{}

func (Demultiplex) Apply(c circuit.Circuit) (circuit.Circuit, error) {
	var firstErr error
	out := c.FlatMap(func(op circuit.Op) []circuit.Op {
		if firstErr != nil {
			return nil
		}
		mux, ok := op.Operation.Gate.(gate.Mux)
		if !ok {
			return nil
		}
		if op.Operation.Kind != circuit.Controlled {
			firstErr = fmt.Errorf("pass: Demultiplex accepts only controlled MUX operations")
			return nil
		}
		targets := op.Operation.Targets.Addrs()
		if len(targets) != 1 {
			firstErr = fmt.Errorf("pass: Demultiplex accepts only single-target MUX operations, got %d targets", len(targets))
			return nil
		}
		controls := sortedAddrs(op.Operation.Controls.Ones())
		if len(controls)+op.Operation.Controls.Zeros().Len() == 0 {
			firstErr = fmt.Errorf("pass: MUX operation on qubit %d carries no controls", targets[0])
			return nil
		}
		if op.Operation.Controls.Zeros().Len() != 0 {
			firstErr = fmt.Errorf("pass: Demultiplex must run after CondCtrlExpand (negative controls remain)")
			return nil
		}

		axis := muxAxis(mux.Axis)
		lowered := decompose.Demultiplex(axis, controls, targets[0], mux.Angles)
		result := make([]circuit.Op, len(lowered))
		for i, l := range lowered {
			result[i] = circuit.Op{Operation: l, StackTop: op.StackTop}
		}
		return result
	})
	if firstErr != nil {
		return c, firstErr
	}
	return out, nil
}

func muxAxis(a gate.RotAxis) decompose.MuxAxis {
	switch a {
	case gate.AxisRX:
		return decompose.MuxRX
	case gate.AxisRY:
		return decompose.MuxRY
	default:
		return decompose.MuxRZ
	}
}
