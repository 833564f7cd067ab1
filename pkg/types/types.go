package types

import (
	"fmt"
	"time"
)

// Config holds runtime configuration combining flags, environment variables, and defaults
type Config struct {
	// MySQL connection. DSN overrides the individual fields when set.
	DSN      string `envconfig:"DSN"`
	Host     string `envconfig:"HOST" default:"127.0.0.1"`
	Port     int    `envconfig:"PORT" default:"3306"`
	User     string `envconfig:"USER" default:"root"`
	Password string `envconfig:"PASSWORD"`
	Database string `envconfig:"DATABASE"`

	// Execution
	Timeout         time.Duration `envconfig:"TIMEOUT" default:"30s"` // Per-script timeout
	Parallelism     int           `envconfig:"PARALLEL" default:"1"`  // Max concurrent scripts (1 = sequential)
	ContinueOnError bool          `envconfig:"CONTINUE_ON_ERROR"`     // Keep executing a script after a statement fails

	// Output
	Format  string `envconfig:"FORMAT" default:"text"` // Report format (text or json)
	Output  string `envconfig:"OUTPUT" default:"-"`    // Report path (- for stdout)
	Verbose bool   `envconfig:"VERBOSE"`               // Enable debug logging
}

// ConfigError represents an invalid configuration value
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Message)
}

// Validate checks configuration invariants
func (c *Config) Validate() error {
	if c.DSN == "" {
		if c.Host == "" {
			return &ConfigError{Field: "host", Message: "must not be empty"}
		}
		if c.Port < 1 || c.Port > 65535 {
			return &ConfigError{Field: "port", Message: "must be between 1 and 65535"}
		}
		if c.User == "" {
			return &ConfigError{Field: "user", Message: "must not be empty"}
		}
	}
	if c.Timeout <= 0 {
		return &ConfigError{Field: "timeout", Message: "must be positive"}
	}
	if c.Parallelism < 1 {
		return &ConfigError{Field: "parallel", Message: "must be at least 1"}
	}
	switch c.Format {
	case "text", "json":
	default:
		return &ConfigError{Field: "format", Message: fmt.Sprintf("unsupported format %q (text or json)", c.Format)}
	}
	return nil
}
