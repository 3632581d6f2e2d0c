package pass

import (
	"github.com/kegliz/qivm/circuit"
	"github.com/kegliz/qivm/gate"
)

// MultiplexOptimize simplifies a MUX whose branch set collapses: all
// branches the identity rotation drops the operation entirely, and all
// branches sharing the same angle collapses to a single uncontrolled
// rotation. Ported from the original's MultiplexOptimizationPass,
// referenced by program/builder.rs's default_passes but whose source
// was not retrieved; the collapse conditions are named verbatim in
// spec.md §4.F ("all equal, all identity").
type MultiplexOptimize struct{}

func (MultiplexOptimize) Apply(c circuit.Circuit) (circuit.Circuit, error) {
	out := c.FlatMap(func(op circuit.Op) []circuit.Op {
		mux, ok := op.Operation.Gate.(gate.Mux)
		if !ok {
			return nil
		}
		if mux.AllZero() {
			return []circuit.Op{}
		}
		if mux.AllEqual() {
			targets := op.Operation.Targets
			rotated := mux.Axis.RotationGate(mux.Angles[0])
			return []circuit.Op{{Operation: circuit.Elem(rotated, targets), StackTop: op.StackTop}}
		}
		return nil
	})
	return out, nil
}
