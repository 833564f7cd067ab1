package cli

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"

	"github.com/mysqlscript/mysqlrun/pkg/types"
)

// Config is an alias for the shared Config type
type Config = types.Config

// ConfigError is an alias for the shared ConfigError type
type ConfigError = types.ConfigError

// envPrefix namespaces the environment variables read by LoadConfig
// (MYSQLRUN_HOST, MYSQLRUN_PASSWORD, ...).
const envPrefix = "MYSQLRUN"

// DefaultConfig provides default configuration values
var DefaultConfig = Config{
	Host:        "127.0.0.1",
	Port:        3306,
	User:        "root",
	Timeout:     30 * time.Second,
	Parallelism: 1,
	Format:      "text",
	Output:      "-",
}

// LoadConfig builds a Config from defaults and MYSQLRUN_* environment
// variables. Flag values are layered on top by ApplyFlagsToConfig.
func LoadConfig() (*Config, error) {
	config := DefaultConfig
	if err := envconfig.Process(envPrefix, &config); err != nil {
		return nil, fmt.Errorf("failed to read environment configuration: %w", err)
	}
	return &config, nil
}

// ApplyFlagsToConfig applies command-line flag values to configuration.
// Zero values leave the corresponding setting untouched, so environment
// variables survive unless a flag was given.
func ApplyFlagsToConfig(c *Config, dsn, host string, port int, user, password, database string,
	timeout time.Duration, parallel int, continueOnError bool, format, output string, verbose bool) {

	if dsn != "" {
		c.DSN = dsn
	}
	if host != "" {
		c.Host = host
	}
	if port != 0 {
		c.Port = port
	}
	if user != "" {
		c.User = user
	}
	if password != "" {
		c.Password = password
	}
	if database != "" {
		c.Database = database
	}
	if timeout != 0 {
		c.Timeout = timeout
	}
	if parallel != 0 {
		c.Parallelism = parallel
	}
	if continueOnError {
		c.ContinueOnError = true
	}
	if format != "" {
		c.Format = format
	}
	if output != "" {
		c.Output = output
	}
	if verbose {
		c.Verbose = true
	}
}
