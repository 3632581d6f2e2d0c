package itsu_test

import (
	"testing"

	"github.com/kegliz/qivm/backend/itsu"
	"github.com/kegliz/qivm/bytecode"
	"github.com/kegliz/qivm/gate"
	"github.com/kegliz/qivm/pass"
	"github.com/kegliz/qivm/program"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateAvailableCoversOnlyTheNativeAlphabet(t *testing.T) {
	dev := itsu.New(0)
	for _, name := range []string{"I", "H", "X", "Y", "Z", "S", "RZ", "RY", "CX", "CZ", "SWP", "CCX", "CSWP"} {
		assert.True(t, dev.GateAvailable(name), "expected %s to be native", name)
	}
	for _, name := range []string{"T", "TD", "V", "P", "U", "CP", "CY", "CH", "CAN", "ISWP"} {
		assert.False(t, dev.GateAvailable(name), "expected %s to require lowering first", name)
	}
}

func TestBellStateHistogramIsCorrelated(t *testing.T) {
	b := program.NewBuilder()
	q, b := b.Alloc(2)
	b = b.Gate(gate.H(), q.Slice(0, 1, 1)).
		Control(q.Slice(0, 1, 1)).
		Gate(gate.X(), q.Slice(1, 2, 1)).
		Decontrol(q.Slice(0, 1, 1)).
		Measure(q)

	c, err := b.Build()
	require.NoError(t, err)

	dev := itsu.New(2)
	lowered, err := pass.Run(c, pass.Default(dev))
	require.NoError(t, err)

	target, _ := b.Context().MeasureTarget()
	ins, err := bytecode.FromCircuit(lowered, 2, target)
	require.NoError(t, err)

	result, err := dev.Exec(bytecode.Encode(ins), 128)
	require.NoError(t, err)
	for _, e := range result.Entries {
		assert.True(t, e.Value == 0 || e.Value == 3, "unexpected bitstring %d", e.Value)
	}
}

// T is not itsu-native, so a bare T gate must survive only via
// ElementaryDecompose rewriting it down to RZ/RY before it ever reaches
// Exec's applyStandard switch.
func TestNonNativeSingleQubitGateLowersToNativeAlphabet(t *testing.T) {
	b := program.NewBuilder()
	q, b := b.Alloc(1)
	b = b.Gate(gate.T(), q).Measure(q)

	c, err := b.Build()
	require.NoError(t, err)

	dev := itsu.New(1)
	lowered, err := pass.Run(c, pass.Default(dev))
	require.NoError(t, err)

	for _, op := range lowered.Ops() {
		assert.True(t, dev.GateAvailable(op.Operation.Gate.Name()), "gate %s should have been lowered", op.Operation.Gate.Name())
	}
}
