package pass

import (
	"fmt"
	"sort"

	"github.com/kegliz/qivm/circuit"
	"github.com/kegliz/qivm/decompose"
	"github.com/kegliz/qivm/gate"
	"github.com/kegliz/qivm/qubit"
)

// CondCtrlExpand rewrites every Controlled operation into elementary
// gates plus CX: each negative control is sandwiched in X (so the
// underlying lowering only ever sees positive controls), then a single
// control lowers via the ABC identity (CX/CZ/CP shortcuts included) and
// two or more controls lower via the gray-code network. Ported from
// original_source's ConditionalCtrlDecompositionPass
// (program/pass/cond_ctrl_decomposition.rs), which dispatches negative
// controls before decomposing.
type CondCtrlExpand struct{}

func (CondCtrlExpand) Apply(c circuit.Circuit) (circuit.Circuit, error) {
	var firstErr error
	out := c.FlatMap(func(op circuit.Op) []circuit.Op {
		if firstErr != nil {
			return nil
		}
		if op.Operation.Kind != circuit.Controlled {
			return nil
		}
		if _, isMux := op.Operation.Gate.(gate.Mux); isMux {
			// Left for Demultiplex: a Mux's matrix spans more than one
			// qubit, so ABC/Network (which assume a single-qubit
			// Gate.Matrix()) cannot lower it.
			return nil
		}
		targets := op.Operation.Targets.Addrs()
		if len(targets) != 1 {
			firstErr = fmt.Errorf("pass: CondCtrlExpand only supports single-target controlled operations, got %d targets on %q", len(targets), op.Operation.Gate.Name())
			return nil
		}
		target := targets[0]

		ones := sortedAddrs(op.Operation.Controls.Ones())
		zeros := sortedAddrs(op.Operation.Controls.Zeros())
		allControls := append(append([]qubit.Addr{}, ones...), zeros...)
		sort.Slice(allControls, func(i, j int) bool { return allControls[i] < allControls[j] })

		var lowered []circuit.Operation
		var err error
		switch len(allControls) {
		case 0:
			firstErr = fmt.Errorf("pass: controlled operation on %q carries no controls", op.Operation.Gate.Name())
			return nil
		case 1:
			lowered, err = decompose.ABC(allControls[0], target, op.Operation.Gate)
		default:
			lowered, err = decompose.Network(allControls, target, op.Operation.Gate)
		}
		if err != nil {
			firstErr = err
			return nil
		}

		result := make([]circuit.Op, 0, 2*len(zeros)+len(lowered))
		for _, z := range zeros {
			result = append(result, circuit.Op{Operation: circuit.Elem(gate.X(), qubit.New(z)), StackTop: op.StackTop})
		}
		for _, l := range lowered {
			result = append(result, circuit.Op{Operation: l, StackTop: op.StackTop})
		}
		for _, z := range zeros {
			result = append(result, circuit.Op{Operation: circuit.Elem(gate.X(), qubit.New(z)), StackTop: op.StackTop})
		}
		return result
	})
	if firstErr != nil {
		return c, firstErr
	}
	return out, nil
}

func sortedAddrs(s qubit.Set) []qubit.Addr {
	out := s.Slice()
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
