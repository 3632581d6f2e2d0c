package config_test

import (
	"testing"

	"github.com/kegliz/qivm/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppliesDefaults(t *testing.T) {
	c, err := config.Load()
	require.NoError(t, err)
	assert.False(t, c.GetBool(config.KeyDebug))
	assert.Equal(t, 8080, c.GetInt(config.KeyPort))
	assert.Equal(t, "qsim", c.GetString(config.KeyDefaultBack))
}

func TestStateqHomeRequiresExistingDir(t *testing.T) {
	c, err := config.Load()
	require.NoError(t, err)

	_, err = c.StateqHome()
	assert.Error(t, err)

	dir := t.TempDir()
	t.Setenv("STATEQ_HOME", dir)
	c, err = config.Load()
	require.NoError(t, err)

	home, err := c.StateqHome()
	require.NoError(t, err)
	assert.Equal(t, dir, home)
}
