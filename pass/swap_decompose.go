package pass

import (
	"github.com/kegliz/qivm/circuit"
	"github.com/kegliz/qivm/decompose"
)

// SwapDecompose rewrites every SWP elementary operation into the
// three-CX identity. Not part of Default — composed explicitly when a
// backend lacks a native SWAP, matching spec.md §4.F's "other available
// passes" list. Ported from original_source's SwapDecompositionPass
// (program/pass/swap_decomposition.rs).
type SwapDecompose struct{}

func (SwapDecompose) Apply(c circuit.Circuit) (circuit.Circuit, error) {
	out := c.FlatMap(func(op circuit.Op) []circuit.Op {
		if op.Operation.Kind != circuit.Elementary || op.Operation.Gate.Name() != "SWP" {
			return nil
		}
		addrs := op.Operation.Targets.Addrs()
		lowered := decompose.Swap(addrs[0], addrs[1])
		out := make([]circuit.Op, len(lowered))
		for i, l := range lowered {
			out[i] = circuit.Op{Operation: l, StackTop: op.StackTop}
		}
		return out
	})
	return out, nil
}
