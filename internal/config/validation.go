package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return ""
	}
	msgs := make([]string, len(e))
	for i, err := range e {
		msgs[i] = err.Error()
	}
	return fmt.Sprintf("validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// check records a ValidationError for field when ok is false.
func (e *ValidationErrors) check(ok bool, field, message string) {
	if !ok {
		*e = append(*e, ValidationError{Field: field, Message: message})
	}
}

// oneOf reports whether v is empty or one of allowed.
func oneOf(v string, allowed ...string) bool {
	return v == "" || slices.Contains(allowed, v)
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	var errs ValidationErrors

	c.validateDataset(&errs)
	// Database settings only matter when records come from MySQL
	if c.Dataset.Source == SourceMySQL {
		c.Database.validate("database", &errs)
	}
	c.validateServer(&errs)
	c.validateSlider(&errs)
	c.validateCache(&errs)
	c.validateLogging(&errs)

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (c *Config) validateDataset(errs *ValidationErrors) {
	switch c.Dataset.Source {
	case SourceCSV, "":
		errs.check(c.Dataset.Path != "", "dataset.path", "path is required for csv source")
	case SourceMySQL:
		errs.check(c.Dataset.Table != "", "dataset.table", "table is required for mysql source")
	default:
		errs.check(false, "dataset.source", "source must be 'csv' or 'mysql'")
	}
}

func (db *DatabaseConfig) validate(prefix string, errs *ValidationErrors) {
	errs.check(db.Host != "", prefix+".host", "host is required")
	errs.check(db.Port > 0 && db.Port <= 65535, prefix+".port", "port must be between 1 and 65535")
	errs.check(db.User != "", prefix+".user", "user is required")
	errs.check(db.Database != "", prefix+".database", "database name is required")
	errs.check(oneOf(db.TLS, "disable", "preferred", "required"),
		prefix+".tls", "tls must be 'disable', 'preferred', or 'required'")
	errs.check(db.MaxConnections >= 0, prefix+".max_connections", "max_connections cannot be negative")
	errs.check(db.MaxIdleConnections >= 0, prefix+".max_idle_connections", "max_idle_connections cannot be negative")
}

func (c *Config) validateServer(errs *ValidationErrors) {
	s := c.Server
	errs.check(s.Addr != "", "server.addr", "addr is required")
	errs.check(s.ShutdownTimeoutSeconds >= 0, "server.shutdown_timeout_seconds", "shutdown_timeout_seconds cannot be negative")
	errs.check(s.ReadTimeoutSeconds >= 0, "server.read_timeout_seconds", "read_timeout_seconds cannot be negative")
}

func (c *Config) validateSlider(errs *ValidationErrors) {
	s := c.Slider
	errs.check(s.Min <= s.Max, "slider.min", "min cannot be greater than max")
	errs.check(s.Step > 0, "slider.step", "step must be positive")
	for i, mark := range s.Marks {
		errs.check(mark >= s.Min && mark <= s.Max, fmt.Sprintf("slider.marks[%d]", i), "mark must lie within [min, max]")
	}
}

func (c *Config) validateCache(errs *ValidationErrors) {
	if !c.Cache.Enabled {
		return
	}
	errs.check(c.Cache.NumCounters > 0, "cache.num_counters", "num_counters must be positive when cache is enabled")
	errs.check(c.Cache.MaxCostKB > 0, "cache.max_cost_kb", "max_cost_kb must be positive when cache is enabled")
}

func (c *Config) validateLogging(errs *ValidationErrors) {
	errs.check(oneOf(c.Logging.Level, "debug", "info", "warn", "error"),
		"logging.level", "level must be 'debug', 'info', 'warn', or 'error'")
	errs.check(oneOf(c.Logging.Format, "json", "text"),
		"logging.format", "format must be 'json' or 'text'")
}
