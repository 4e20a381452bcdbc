package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"

	"github.com/spf13/viper"
)

// Load reads configuration from the specified file path.
// It supports YAML files and performs environment variable substitution.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(configPath)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return LoadFromViper(v)
}

// LoadOptional behaves like Load but returns DefaultConfig when the file
// does not exist. Any other read or decode failure is still an error.
func LoadOptional(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); errors.Is(err, fs.ErrNotExist) {
		cfg := DefaultConfig()
		cfg.expandEnv()
		return cfg, nil
	}
	return Load(configPath)
}

// LoadFromViper decodes a Config from an existing Viper instance on top of
// DefaultConfig and expands environment references in string settings.
func LoadFromViper(v *viper.Viper) (*Config, error) {
	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.expandEnv()
	return cfg, nil
}

// envRef matches ${NAME} and $NAME references.
var envRef = regexp.MustCompile(`\$\{([^}]+)\}|\$([A-Za-z_][A-Za-z0-9_]*)`)

// expandEnv resolves environment references in the settings that commonly
// carry secrets or deployment-specific paths.
func (c *Config) expandEnv() {
	for _, field := range []*string{
		&c.Dataset.Path,
		&c.Dataset.Table,
		&c.Database.Host,
		&c.Database.User,
		&c.Database.Password,
		&c.Database.Database,
		&c.Server.Addr,
		&c.Logging.Output,
	} {
		*field = expandEnvVar(*field)
	}
}

// expandEnvVar replaces set variables and leaves unknown references as written.
func expandEnvVar(s string) string {
	return envRef.ReplaceAllStringFunc(s, func(ref string) string {
		m := envRef.FindStringSubmatch(ref)
		name := m[1]
		if name == "" {
			name = m[2]
		}
		if value, ok := os.LookupEnv(name); ok {
			return value
		}
		return ref
	})
}

// ApplyOverrides applies CLI flag overrides to the configuration.
// Only non-empty values are applied.
func (c *Config) ApplyOverrides(logLevel, logFormat, dataPath, addr string) {
	if logLevel != "" {
		c.Logging.Level = logLevel
	}
	if logFormat != "" {
		c.Logging.Format = logFormat
	}
	if dataPath != "" {
		c.Dataset.Source = SourceCSV
		c.Dataset.Path = dataPath
	}
	if addr != "" {
		c.Server.Addr = addr
	}
}
