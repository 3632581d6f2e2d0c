package bytecode

import (
	"fmt"

	"github.com/kegliz/qivm/circuit"
	"github.com/kegliz/qivm/gate"
	"github.com/kegliz/qivm/qubit"
)

// encodableParams is implemented by every parameterized gate type so
// FromCircuit can recover its operand values without a type switch per
// gate family.
type encodableParams interface{ EncodeParams() []float64 }

// FromCircuit lowers a fully transpiled circuit — every operation
// already elementary and backend-material, per the pass pipeline's
// contract — into its bytecode instruction sequence: a leading Alloc
// reserving the whole register, one StandardGateOp/CustomGateOp per
// operation (in order), and a trailing Measure if a target was recorded.
func FromCircuit(c circuit.Circuit, qubits uint32, measureTarget qubit.Accessor) ([]Instruction, error) {
	out := make([]Instruction, 0, c.Len()+2)
	out = append(out, Alloc(qubits))

	for _, op := range c.Ops() {
		if op.Operation.Kind == circuit.Controlled {
			return nil, fmt.Errorf("bytecode: FromCircuit: operation %q still carries controls; it must be run through the pass pipeline first", op.Operation.Gate.Name())
		}
		ins, err := emitOne(op.Operation)
		if err != nil {
			return nil, err
		}
		out = append(out, ins)
	}

	if measureTarget.Len() > 0 {
		addrs := measureTarget.Addrs()
		targets := make([]uint32, len(addrs))
		for i, a := range addrs {
			targets[i] = uint32(a)
		}
		out = append(out, Measure(targets))
	}
	return out, nil
}

func emitOne(op circuit.Operation) (Instruction, error) {
	addrs := op.Targets.Addrs()
	targets := make([]uint32, len(addrs))
	for i, a := range addrs {
		targets[i] = uint32(a)
	}
	params := paramsOf(op.Gate)

	if opcode, ok := OpcodeForName(op.Gate.Name()); ok {
		return StandardGate(opcode, params, targets), nil
	}
	if custom, ok := op.Gate.(gate.Custom); ok {
		return CustomGate(custom.Name(), params, targets), nil
	}
	return Instruction{}, fmt.Errorf("bytecode: FromCircuit: no opcode or custom encoding for gate %q (run elementary decomposition first)", op.Gate.Name())
}

func paramsOf(g gate.Gate) []Param {
	e, ok := g.(encodableParams)
	if !ok {
		return nil
	}
	vals := e.EncodeParams()
	out := make([]Param, len(vals))
	for i, v := range vals {
		out[i] = FloatParam(v)
	}
	return out
}
