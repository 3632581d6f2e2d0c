package decompose

import (
	"fmt"
	"math/bits"
	"strconv"

	"github.com/kegliz/qivm/algebra"
	"github.com/kegliz/qivm/circuit"
	"github.com/kegliz/qivm/gate"
	"github.com/kegliz/qivm/qubit"
)

// grayCodes returns the standard binary-reflected gray code sequence
// g(i) = i ^ (i>>1) for i in [0, 2^n), each entry an n-bit subset of the
// control indices {0, ..., n-1}.
func grayCodes(n int) []int {
	total := 1 << uint(n)
	out := make([]int, total)
	for i := 0; i < total; i++ {
		out[i] = i ^ (i >> 1)
	}
	return out
}

// Network decomposes a multi-controlled (n>=2 positive controls) single-
// target gate g via the gray-code "square-root network" (spec 4.C),
// each emitted controlled-V/V† step itself lowered through ABC.
func Network(controls []qubit.Addr, target qubit.Addr, g gate.Gate) ([]circuit.Operation, error) {
	n := len(controls)
	if n < 2 {
		return nil, fmt.Errorf("decompose: Network requires at least 2 controls, got %d", n)
	}

	v := g.Matrix()
	for i := 0; i < n-1; i++ {
		v = algebra.Sqrt(v)
	}
	vGate := gate.NewUnitary(g.Name()+"^(1/2^"+strconv.Itoa(n-1)+")", v)
	vAdjoint := vGate.Adjoint()

	var out []circuit.Operation
	emitCtrlV := func(ctrl qubit.Addr, adjoint bool) error {
		cv := vGate
		if adjoint {
			cv = vAdjoint.(gate.Unitary)
		}
		ops, err := ABC(ctrl, target, cv)
		if err != nil {
			return err
		}
		out = append(out, ops...)
		return nil
	}

	if err := emitCtrlV(controls[0], false); err != nil {
		return nil, err
	}

	codes := grayCodes(n)
	current := make([]int, n)
	current[0] = 1 // bit 0 set, recorded as the "current" state at hi=0 after the initial step

	for i := 2; i < len(codes); i++ {
		code := codes[i]
		hi := bits.Len(uint(code)) - 1
		diff := code ^ current[hi]
		lo := bits.TrailingZeros(uint(diff))

		out = append(out, circuit.Elem(gate.CX(), pairAccessor(controls[lo], controls[hi])))
		current[hi] = code

		if bits.OnesCount(uint(code))%2 == 1 {
			if err := emitCtrlV(controls[hi], false); err != nil {
				return nil, err
			}
		} else {
			if err := emitCtrlV(controls[hi], true); err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}
