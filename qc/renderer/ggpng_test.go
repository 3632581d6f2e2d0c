package renderer_test

import (
	"testing"

	"github.com/kegliz/qivm/circuit"
	"github.com/kegliz/qivm/gate"
	"github.com/kegliz/qivm/program"
	"github.com/kegliz/qivm/qc/renderer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderBellCircuitProducesNonEmptyImage(t *testing.T) {
	b := program.NewBuilder()
	q, b := b.Alloc(2)
	b = b.Gate(gate.H(), q.Slice(0, 1, 1)).
		Control(q.Slice(0, 1, 1)).
		Gate(gate.X(), q.Slice(1, 2, 1)).
		Decontrol(q.Slice(0, 1, 1))

	c, err := b.Build()
	require.NoError(t, err)

	r := renderer.NewRenderer(40)
	img, err := r.Render(c)
	require.NoError(t, err)

	bounds := img.Bounds()
	assert.Greater(t, bounds.Dx(), 0)
	assert.Greater(t, bounds.Dy(), 0)
}

func TestRenderEmptyCircuitStillProducesAnImage(t *testing.T) {
	r := renderer.NewRenderer(30)
	img, err := r.Render(circuit.New())
	require.NoError(t, err)
	assert.Greater(t, img.Bounds().Dx(), 0)
}
