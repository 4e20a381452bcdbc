package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// EnvOverrides holds the LAUNCHDASH_* environment variables.
type EnvOverrides struct {
	DataPath  string `env:"LAUNCHDASH_DATA"`
	Addr      string `env:"LAUNCHDASH_ADDR"`
	LogLevel  string `env:"LAUNCHDASH_LOG_LEVEL"`
	LogFormat string `env:"LAUNCHDASH_LOG_FORMAT"`
}

// ParseEnv reads EnvOverrides from the process environment.
func ParseEnv() (EnvOverrides, error) {
	var o EnvOverrides
	if err := env.Parse(&o); err != nil {
		return EnvOverrides{}, fmt.Errorf("parse env: %w", err)
	}
	return o, nil
}

// ApplyEnv applies LAUNCHDASH_* environment overrides. They take precedence
// over the file and are themselves overridden by CLI flags.
func (c *Config) ApplyEnv() error {
	o, err := ParseEnv()
	if err != nil {
		return err
	}
	c.ApplyOverrides(o.LogLevel, o.LogFormat, o.DataPath, o.Addr)
	return nil
}
