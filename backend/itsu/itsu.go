// Package itsu wraps github.com/itsubaki/q as a backend.Device. It
// deliberately exposes a narrow native gate alphabet — exactly the
// identifiers the teacher's own ItsuOneShotRunner.runOnce switch
// dispatches to q.Q method calls (simulator/itsu/itsu.go), plus the
// RZ/RY rotation pair the lowering pipeline's planner treats as its
// universal terminal leaves. Everything else this backend declines
// reaches it only after ElementaryDecompose/CondCtrlExpand have already
// rewritten it down to that alphabet — so, unlike qsim, running a
// program against itsu genuinely exercises the decomposition pipeline.
package itsu

import (
	"fmt"

	"github.com/itsubaki/q"
	"github.com/kegliz/qivm/backend"
	"github.com/kegliz/qivm/bytecode"
	"github.com/kegliz/qivm/measurement"
)

// nativeGates is the complete set of Standard identifiers this backend
// runs directly, mirroring the teacher's supportedGates list renamed
// onto this module's gate identifiers (CNOT->CX, SWAP->SWP,
// TOFFOLI->CCX, FREDKIN->CSWP) plus RZ/RY.
var nativeGates = map[string]bool{
	"I": true, "H": true, "X": true, "Y": true, "Z": true, "S": true,
	"RZ": true, "RY": true,
	"CX": true, "CZ": true, "SWP": true, "CCX": true, "CSWP": true,
}

// Backend runs one fresh *q.Q simulation per shot.
type Backend struct {
	qubits uint32
}

// New returns an itsu backend. qubits is advisory (AvailableQubits);
// the actual register width for a run comes from the program's own
// Alloc instruction.
func New(qubits uint32) *Backend { return &Backend{qubits: qubits} }

func (b *Backend) AvailableQubits() uint32 {
	if b.qubits == 0 {
		return 24 // itsubaki/q is a dense statevector simulator; stay modest
	}
	return b.qubits
}

func (b *Backend) GateAvailable(name string) bool { return nativeGates[name] }

func (b *Backend) Exec(code bytecode.ByteCode, shots int) (measurement.Result, error) {
	if shots <= 0 {
		return measurement.Result{}, fmt.Errorf("itsu: shots must be positive, got %d", shots)
	}
	ins, err := bytecode.Decode(code)
	if err != nil {
		return measurement.Result{}, fmt.Errorf("itsu: %w", err)
	}

	counts := make(map[uint64]uint64)
	for shot := 0; shot < shots; shot++ {
		value, err := runOnce(ins)
		if err != nil {
			return measurement.Result{}, err
		}
		counts[value]++
	}
	return measurement.NewResult(uint64(shots), counts), nil
}

func runOnce(ins []bytecode.Instruction) (uint64, error) {
	sim := q.New()
	var qs []*q.Qubit
	var measured uint64
	var haveMeasurement bool

	for _, in := range ins {
		switch in.Tag {
		case bytecode.TagNop:
			continue
		case bytecode.TagPrimitive:
			switch in.PrimitiveOp {
			case bytecode.OpAlloc:
				n := int(in.Params[0].AsUInt())
				qs = sim.ZeroWith(n)
			case bytecode.OpReset:
				lo, hi := int(in.Params[0].AsUInt()), int(in.Params[1].AsUInt())
				for t := lo; t < hi; t++ {
					if sim.Measure(qs[t]).IsOne() {
						sim.X(qs[t])
					}
				}
			case bytecode.OpMeasure:
				haveMeasurement = true
				for i, t := range in.Targets {
					if sim.Measure(qs[t]).IsOne() {
						measured |= 1 << uint(i)
					}
				}
			}
		case bytecode.TagStandardGate:
			if err := applyStandard(sim, qs, in); err != nil {
				return 0, err
			}
		case bytecode.TagCustomGate:
			return 0, fmt.Errorf("itsu: custom gate %q is not supported by this backend", in.CustomName)
		}
	}
	if !haveMeasurement {
		return 0, nil
	}
	return measured, nil
}

func applyStandard(sim *q.Q, qs []*q.Qubit, in bytecode.Instruction) error {
	name, ok := bytecode.NameForOpcode(in.StandardOp)
	if !ok {
		return fmt.Errorf("itsu: unknown standard opcode %d", in.StandardOp)
	}
	t := func(i int) *q.Qubit { return qs[in.Targets[i]] }

	switch name {
	case "I":
		// no-op
	case "H":
		sim.H(t(0))
	case "X":
		sim.X(t(0))
	case "Y":
		sim.Y(t(0))
	case "Z":
		sim.Z(t(0))
	case "S":
		sim.S(t(0))
	case "RZ":
		sim.RZ(in.Params[0].AsFloat(), t(0))
	case "RY":
		sim.RY(in.Params[0].AsFloat(), t(0))
	case "CX":
		sim.CNOT(t(0), t(1))
	case "CZ":
		sim.CZ(t(0), t(1))
	case "SWP":
		sim.Swap(t(0), t(1))
	case "CCX":
		sim.Toffoli(t(0), t(1), t(2))
	case "CSWP":
		ctrl, a, b := t(0), t(1), t(2)
		sim.CNOT(b, a)
		sim.Toffoli(ctrl, a, b)
		sim.CNOT(b, a)
	default:
		return fmt.Errorf("itsu: unsupported gate %q (expected the lowering pipeline to have decomposed it)", name)
	}
	return nil
}

func init() {
	backend.MustRegister("itsu", func() backend.Device { return New(0) })
}
