package pass

import (
	"github.com/kegliz/qivm/algebra"
	"github.com/kegliz/qivm/circuit"
)

// RemoveIdentity drops elementary operations whose gate is a no-op:
// explicit I, Rx/Ry/Rz/P within epsilon of a zero angle, or any other
// unitary whose matrix is within epsilon of identity. Run twice in the
// default pipeline — once before elementary decomposition (to shrink
// the circuit) and once after (decomposition can introduce trivial
// rotations of its own). Ported from the original's RemoveIdentityPass
// (program/pass/remove_identity.rs).
type RemoveIdentity struct{}

type angled interface{ Angle() float64 }

func (RemoveIdentity) Apply(c circuit.Circuit) (circuit.Circuit, error) {
	out := c.FlatMap(func(op circuit.Op) []circuit.Op {
		if op.Operation.Kind != circuit.Elementary {
			return nil
		}
		if a, ok := op.Operation.Gate.(angled); ok {
			if approxZero(a.Angle()) {
				return []circuit.Op{}
			}
			return nil
		}
		if op.Operation.Gate.Matrix().IsIdentity() {
			return []circuit.Op{}
		}
		return nil
	})
	return out, nil
}

func approxZero(x float64) bool {
	return x > -algebra.Epsilon && x < algebra.Epsilon
}
