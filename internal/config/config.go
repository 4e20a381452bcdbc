// Package config provides configuration structures and loading for launchdash.
package config

// Dataset sources.
const (
	SourceCSV   = "csv"
	SourceMySQL = "mysql"
)

// Config represents the complete application configuration.
type Config struct {
	Dataset  DatasetConfig  `yaml:"dataset" mapstructure:"dataset"`
	Database DatabaseConfig `yaml:"database" mapstructure:"database"`
	Server   ServerConfig   `yaml:"server" mapstructure:"server"`
	Slider   SliderConfig   `yaml:"slider" mapstructure:"slider"`
	Cache    CacheConfig    `yaml:"cache" mapstructure:"cache"`
	Logging  LoggingConfig  `yaml:"logging" mapstructure:"logging"`
}

// DatasetConfig selects where launch records are loaded from.
type DatasetConfig struct {
	Source string `yaml:"source" mapstructure:"source"` // csv or mysql
	Path   string `yaml:"path" mapstructure:"path"`     // CSV file path
	Table  string `yaml:"table" mapstructure:"table"`   // MySQL table name
}

// DatabaseConfig represents a MySQL database connection configuration.
type DatabaseConfig struct {
	Host               string `yaml:"host" mapstructure:"host"`
	Port               int    `yaml:"port" mapstructure:"port"`
	User               string `yaml:"user" mapstructure:"user"`
	Password           string `yaml:"password" mapstructure:"password"`
	Database           string `yaml:"database" mapstructure:"database"`
	TLS                string `yaml:"tls" mapstructure:"tls"` // disable, preferred, required
	MaxConnections     int    `yaml:"max_connections" mapstructure:"max_connections"`
	MaxIdleConnections int    `yaml:"max_idle_connections" mapstructure:"max_idle_connections"`
}

// ServerConfig represents the dashboard HTTP server settings.
type ServerConfig struct {
	Addr                   string  `yaml:"addr" mapstructure:"addr"`
	ShutdownTimeoutSeconds float64 `yaml:"shutdown_timeout_seconds" mapstructure:"shutdown_timeout_seconds"`
	ReadTimeoutSeconds     float64 `yaml:"read_timeout_seconds" mapstructure:"read_timeout_seconds"`
}

// SliderConfig describes the payload range control.
type SliderConfig struct {
	Min   float64   `yaml:"min" mapstructure:"min"`
	Max   float64   `yaml:"max" mapstructure:"max"`
	Step  float64   `yaml:"step" mapstructure:"step"`
	Marks []float64 `yaml:"marks" mapstructure:"marks"`
}

// EffectiveMarks returns the configured slider marks, or five evenly spaced
// marks from Min to Max when none are configured.
func (s SliderConfig) EffectiveMarks() []float64 {
	if len(s.Marks) > 0 {
		return s.Marks
	}
	marks := make([]float64, 5)
	for i := range marks {
		marks[i] = s.Min + (s.Max-s.Min)*float64(i)/4
	}
	return marks
}

// CacheConfig represents rendered chart cache settings.
type CacheConfig struct {
	Enabled     bool  `yaml:"enabled" mapstructure:"enabled"`
	NumCounters int64 `yaml:"num_counters" mapstructure:"num_counters"`
	MaxCostKB   int64 `yaml:"max_cost_kb" mapstructure:"max_cost_kb"`
}

// LoggingConfig represents logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`   // debug, info, warn, error
	Format string `yaml:"format" mapstructure:"format"` // json or text
	Output string `yaml:"output" mapstructure:"output"` // stdout, stderr, or file path
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Source: SourceCSV,
			Path:   "spacex_launch_dash.csv",
			Table:  "spacex_launches",
		},
		Database: DatabaseConfig{
			Port:               3306,
			TLS:                "preferred",
			MaxConnections:     4,
			MaxIdleConnections: 2,
		},
		Server: ServerConfig{
			Addr:                   "127.0.0.1:8050",
			ShutdownTimeoutSeconds: 5,
			ReadTimeoutSeconds:     10,
		},
		Slider: SliderConfig{
			Min:  0,
			Max:  10000,
			Step: 1000,
		},
		Cache: CacheConfig{
			Enabled:     true,
			NumCounters: 10000,
			MaxCostKB:   16 * 1024,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
			Output: "stderr",
		},
	}
}
