// Package config completes the configuration surface internal/app
// references but the teacher never defined: a thin wrapper over
// viper.Viper binding STATEQ_HOME and the HTTP server's own settings,
// in the style of LLMrecon's src/config/config.go (DefaultConfig +
// LoadConfig over a *viper.Viper instance, env vars for the
// security-sensitive values).
package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config wraps a viper instance so callers (internal/app.NewServer)
// can keep calling options.C.GetBool("debug") the way the teacher's
// code already does, while STATEQ_HOME and friends come from the
// environment rather than a config file.
type Config struct {
	v *viper.Viper
}

// Default keys this package binds out of the box.
const (
	KeyDebug       = "debug"
	KeyPort        = "port"
	KeyLocalOnly   = "local_only"
	KeyStateqHome  = "stateq_home"
	KeyDefaultBack = "default_backend"
)

// Load builds a Config from environment variables (STATEQ_ prefixed)
// plus hardcoded defaults. There is no on-disk config file: the whole
// surface this system needs is a handful of environment-driven knobs.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("STATEQ")
	v.AutomaticEnv()

	v.SetDefault(KeyDebug, false)
	v.SetDefault(KeyPort, 8080)
	v.SetDefault(KeyLocalOnly, false)
	v.SetDefault(KeyDefaultBack, "qsim")

	if err := v.BindEnv(KeyStateqHome, "STATEQ_HOME"); err != nil {
		return nil, fmt.Errorf("config: binding STATEQ_HOME: %w", err)
	}

	return &Config{v: v}, nil
}

// GetBool mirrors viper.Viper.GetBool so callers that only need one
// flag (internal/app.NewServer's options.C.GetBool("debug")) don't
// need to reach past this wrapper.
func (c *Config) GetBool(key string) bool { return c.v.GetBool(key) }

// GetInt mirrors viper.Viper.GetInt.
func (c *Config) GetInt(key string) int { return c.v.GetInt(key) }

// GetString mirrors viper.Viper.GetString.
func (c *Config) GetString(key string) string { return c.v.GetString(key) }

// StateqHome returns STATEQ_HOME, erroring if it was never set — the
// CLI's build subcommand treats an empty install prefix as fatal.
func (c *Config) StateqHome() (string, error) {
	home := c.v.GetString(KeyStateqHome)
	if home == "" {
		return "", fmt.Errorf("config: STATEQ_HOME environment variable is not set")
	}
	if _, err := os.Stat(home); err != nil {
		return "", fmt.Errorf("config: STATEQ_HOME %q: %w", home, err)
	}
	return home, nil
}
