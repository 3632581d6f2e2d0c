package backend_test

import (
	"testing"

	"github.com/kegliz/qivm/backend"
	"github.com/kegliz/qivm/bytecode"
	"github.com/kegliz/qivm/measurement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubDevice struct{}

func (stubDevice) AvailableQubits() uint32       { return 4 }
func (stubDevice) GateAvailable(name string) bool { return name == "X" }
func (stubDevice) Exec(bytecode.ByteCode, int) (measurement.Result, error) {
	return measurement.Result{}, nil
}

func TestRegistryRegisterCreateList(t *testing.T) {
	r := backend.NewRegistry()
	require.NoError(t, r.Register("stub", func() backend.Device { return stubDevice{} }))

	dev, err := r.Create("stub")
	require.NoError(t, err)
	assert.True(t, dev.GateAvailable("X"))
	assert.False(t, dev.GateAvailable("H"))

	assert.Equal(t, []string{"stub"}, r.List())
}

func TestRegistryRejectsDuplicateName(t *testing.T) {
	r := backend.NewRegistry()
	require.NoError(t, r.Register("stub", func() backend.Device { return stubDevice{} }))
	assert.Error(t, r.Register("stub", func() backend.Device { return stubDevice{} }))
}

func TestRegistryUnknownNameErrors(t *testing.T) {
	r := backend.NewRegistry()
	_, err := r.Create("nope")
	assert.Error(t, err)
}

func TestMustRegisterPanicsOnDuplicate(t *testing.T) {
	r := backend.NewRegistry()
	r.MustRegister("stub", func() backend.Device { return stubDevice{} })
	assert.Panics(t, func() {
		r.MustRegister("stub", func() backend.Device { return stubDevice{} })
	})
}
