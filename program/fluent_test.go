package program_test

import (
	"testing"

	"github.com/kegliz/qivm/circuit"
	"github.com/kegliz/qivm/gate"
	"github.com/kegliz/qivm/program"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFluentBuilderChainsGatesAndMeasure(t *testing.T) {
	b := program.NewBuilder()
	q, b := b.Alloc(2)
	b = b.Gate(gate.H(), q.Slice(0, 1, 1)).
		Control(q.Slice(0, 1, 1)).
		Gate(gate.X(), q.Slice(1, 2, 1)).
		Decontrol(q.Slice(0, 1, 1)).
		Measure(q)

	c, err := b.Build()
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())
	assert.Equal(t, "H", c.Ops()[0].Operation.Gate.Name())
	assert.Equal(t, "X", c.Ops()[1].Operation.Gate.Name())
	assert.Equal(t, circuit.Controlled, c.Ops()[1].Operation.Kind)
}

func TestFluentBuilderBailsOutOnFirstError(t *testing.T) {
	b := program.NewBuilder()
	q, b := b.Alloc(1)
	b = b.Control(q).Gate(gate.X(), q) // target is its own control: fatal
	b = b.Gate(gate.H(), q)            // no-op: builder already bailed

	_, err := b.Build()
	assert.Error(t, err)
}
