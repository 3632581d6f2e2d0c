package pass_test

import (
	"math"
	"testing"

	"github.com/kegliz/qivm/circuit"
	"github.com/kegliz/qivm/gate"
	"github.com/kegliz/qivm/pass"
	"github.com/kegliz/qivm/qubit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeBackend reports a minimal native alphabet, forcing real
// decomposition work through ElementaryDecompose.
type fakeBackend struct {
	native map[string]bool
}

func newFakeBackend(names ...string) fakeBackend {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return fakeBackend{native: m}
}

func (b fakeBackend) GateAvailable(name string) bool { return b.native[name] }

func TestRemoveIdentityDropsZeroRotation(t *testing.T) {
	c := circuit.New().
		Append(circuit.Op{Operation: circuit.Elem(gate.RZ(0), qubit.New(0))}).
		Append(circuit.Op{Operation: circuit.Elem(gate.X(), qubit.New(0))})

	out, err := pass.RemoveIdentity{}.Apply(c)
	require.NoError(t, err)
	require.Equal(t, 1, out.Len())
	assert.Equal(t, "X", out.Ops()[0].Operation.Gate.Name())
}

func TestMultiplexOptimizeCollapsesEqualBranches(t *testing.T) {
	mux := gate.Mux{Axis: gate.AxisRZ, Angles: []float64{math.Pi / 3, math.Pi / 3}}
	controls := qubit.NewControlSet().With(0, true)
	c := circuit.New().Append(circuit.Op{Operation: circuit.Ctrl(mux, controls, qubit.New(1))})

	out, err := pass.MultiplexOptimize{}.Apply(c)
	require.NoError(t, err)
	require.Equal(t, 1, out.Len())
	assert.Equal(t, "RZ", out.Ops()[0].Operation.Gate.Name())
}

func TestMultiplexOptimizeDropsAllZero(t *testing.T) {
	mux := gate.Mux{Axis: gate.AxisRX, Angles: []float64{0, 0, 0, 0}}
	controls := qubit.NewControlSet().With(0, true).With(1, true)
	c := circuit.New().Append(circuit.Op{Operation: circuit.Ctrl(mux, controls, qubit.New(2))})

	out, err := pass.MultiplexOptimize{}.Apply(c)
	require.NoError(t, err)
	assert.Equal(t, 0, out.Len())
}

func TestCondCtrlExpandSandwichesNegativeControl(t *testing.T) {
	controls := qubit.NewControlSet().With(0, false)
	c := circuit.New().Append(circuit.Op{Operation: circuit.Ctrl(gate.X(), controls, qubit.New(1))})

	out, err := pass.CondCtrlExpand{}.Apply(c)
	require.NoError(t, err)

	require.Equal(t, 3, out.Len())
	assert.Equal(t, "X", out.Ops()[0].Operation.Gate.Name())
	assert.Equal(t, "CX", out.Ops()[1].Operation.Gate.Name())
	assert.Equal(t, "X", out.Ops()[2].Operation.Gate.Name())
}

func TestPauliXCancelAnnihilatesAdjacentX(t *testing.T) {
	c := circuit.New().
		Append(circuit.Op{Operation: circuit.Elem(gate.X(), qubit.New(0))}).
		Append(circuit.Op{Operation: circuit.Elem(gate.X(), qubit.New(0))}).
		Append(circuit.Op{Operation: circuit.Elem(gate.H(), qubit.New(1))})

	out, err := pass.PauliXCancel{}.Apply(c)
	require.NoError(t, err)
	require.Equal(t, 1, out.Len())
	assert.Equal(t, "H", out.Ops()[0].Operation.Gate.Name())
}

// S3-equivalent end-to-end check: a doubly-controlled P gate run through
// the default pipeline against a backend only natively supporting
// {RZ, RY, P, CX} expands into exactly that alphabet.
func TestDefaultPipelineMultiControlPReducesToPlannerAlphabet(t *testing.T) {
	backend := newFakeBackend("RZ", "RY", "P", "CX")
	controls := qubit.NewControlSet().With(0, true).With(1, true)
	c := circuit.New().Append(circuit.Op{Operation: circuit.Ctrl(gate.P(3*math.Pi/4), controls, qubit.New(2))})

	out, err := pass.Run(c, pass.Default(backend))
	require.NoError(t, err)
	require.NotZero(t, out.Len())

	for _, op := range out.Ops() {
		assert.True(t, backend.GateAvailable(op.Operation.Gate.Name()), "gate %q not in backend alphabet", op.Operation.Gate.Name())
	}
}

// CondCtrlExpand must leave a genuine (non-collapsing) Mux untouched so
// Demultiplex, not ABC/Network, is what lowers it — ABC/Network call
// ZYZ on Gate.Matrix(), which errors on a Mux's multi-qubit
// block-diagonal matrix.
func TestDefaultPipelineDemultiplexesGenuineMux(t *testing.T) {
	backend := newFakeBackend("RZ", "RY", "P", "CX")
	mux := gate.Mux{Axis: gate.AxisRZ, Angles: []float64{math.Pi / 6, math.Pi / 3, math.Pi / 2, math.Pi}}
	controls := qubit.NewControlSet().With(0, true).With(1, true)
	c := circuit.New().Append(circuit.Op{Operation: circuit.Ctrl(mux, controls, qubit.New(2))})

	out, err := pass.Run(c, pass.Default(backend))
	require.NoError(t, err)
	require.NotZero(t, out.Len())

	for _, op := range out.Ops() {
		assert.True(t, backend.GateAvailable(op.Operation.Gate.Name()), "gate %q not in backend alphabet", op.Operation.Gate.Name())
	}
}

// A raw elementary CAN gate (spec.md §4.C's canonical-to-CNOT-network
// recipe) must lower to the {CX, H, S, SD, ZPOW} alphabet on a backend
// that doesn't natively support "CAN" — the shape of an itsu-targeted
// compile of a client-requested CAN gate.
func TestDefaultPipelineLowersCanonicalGate(t *testing.T) {
	backend := newFakeBackend("CX", "H", "S", "SD", "ZPOW")
	targets := qubit.FromSlice([]qubit.Addr{0, 1})
	c := circuit.New().Append(circuit.Op{Operation: circuit.Elem(gate.Canonical(math.Pi/8, math.Pi/6, math.Pi/4), targets)})

	out, err := pass.Run(c, pass.Default(backend))
	require.NoError(t, err)
	require.NotZero(t, out.Len())

	for _, op := range out.Ops() {
		assert.True(t, backend.GateAvailable(op.Operation.Gate.Name()), "gate %q not in backend alphabet", op.Operation.Gate.Name())
	}
}

func TestDefaultPipelineDecomposesHadamardOnSmallBackend(t *testing.T) {
	backend := newFakeBackend("RZ", "RY", "P", "CX")
	c := circuit.New().Append(circuit.Op{Operation: circuit.Elem(gate.H(), qubit.New(0))})

	out, err := pass.Run(c, pass.Default(backend))
	require.NoError(t, err)
	for _, op := range out.Ops() {
		assert.True(t, backend.GateAvailable(op.Operation.Gate.Name()))
	}
}
