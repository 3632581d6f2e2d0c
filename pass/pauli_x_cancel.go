package pass

import "github.com/kegliz/qivm/circuit"

// PauliXCancel annihilates two adjacent, uncontrolled X operations on
// the same qubit (X·X = I). Not part of Default — composed explicitly,
// matching spec.md §4.F's "other available passes" list. Ported from
// original_source's PauliXCancellationPass, whose source file
// (pauli_x_cancellation.rs) was not retrieved; only its name and effect
// survive in pass/mod.rs and spec.md.
//
// Unlike the other passes this one looks at neighboring operations, so
// it walks the operation slice directly instead of using Circuit.FlatMap.
type PauliXCancel struct{}

func (PauliXCancel) Apply(c circuit.Circuit) (circuit.Circuit, error) {
	ops := c.Ops()
	out := circuit.New()
	i := 0
	for i < len(ops) {
		if i+1 < len(ops) && isBareX(ops[i]) && isBareX(ops[i+1]) &&
			ops[i].Operation.Targets.Equal(ops[i+1].Operation.Targets) {
			i += 2
			continue
		}
		out = out.Append(ops[i])
		i++
	}
	return out, nil
}

func isBareX(op circuit.Op) bool {
	return op.Operation.Kind == circuit.Elementary && op.Operation.Gate.Name() == "X"
}
