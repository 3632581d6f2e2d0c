package decompose

import (
	"github.com/kegliz/qivm/circuit"
	"github.com/kegliz/qivm/gate"
	"github.com/kegliz/qivm/qubit"
)

// Swap decomposes SWP(a,b) into CX(a,b), CX(b,a), CX(a,b) (S4).
func Swap(a, b qubit.Addr) []circuit.Operation {
	return []circuit.Operation{
		circuit.Elem(gate.CX(), pairAccessor(a, b)),
		circuit.Elem(gate.CX(), pairAccessor(b, a)),
		circuit.Elem(gate.CX(), pairAccessor(a, b)),
	}
}
