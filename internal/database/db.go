package database

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/mysqlscript/mysqlrun/internal/errors"
	"github.com/mysqlscript/mysqlrun/pkg/types"
)

const programName = "mysqlrun"

// DB wraps *sql.DB with additional functionality
type DB struct {
	*sql.DB
	config  *types.Config
	version string
}

// Open creates a connection pool to MySQL and verifies the server is reachable
// and of a supported version.
func Open(ctx context.Context, config *types.Config) (*DB, error) {
	dsn := config.DSN
	if dsn == "" {
		dsn = BuildDSN(config)
	}

	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, errors.NewConnectionError(
			fmt.Sprintf("invalid connection configuration: %v", err),
			"use DSN format user:password@tcp(host:port)/database")
	}

	// Statements are sent to the server one at a time; that is the whole
	// point of splitting. Never let the driver batch them.
	cfg.MultiStatements = false
	cfg.ConnectionAttributes = "program_name:" + programName

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, errors.NewConnectionError(
			fmt.Sprintf("failed to prepare connector: %v", err), "")
	}

	db := sql.OpenDB(connector)

	// One pinned connection per concurrent script, plus one for checks.
	if config.Parallelism > 1 {
		db.SetMaxOpenConns(config.Parallelism + 1)
	} else {
		db.SetMaxOpenConns(4)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, errors.NewConnectionError(
			fmt.Sprintf("ping failed: %v", err),
			"verify MySQL is running and accessible with the provided connection settings")
	}

	// Check MySQL version
	var versionStr string
	if err := db.QueryRowContext(ctx, "SELECT VERSION()").Scan(&versionStr); err != nil {
		db.Close()
		return nil, errors.NewConnectionError(
			fmt.Sprintf("failed to query MySQL version: %v", err), "")
	}

	major, minor, ok := parseVersion(versionStr)
	if !ok {
		db.Close()
		return nil, errors.NewConnectionError(
			fmt.Sprintf("failed to parse MySQL version %q", versionStr), "")
	}

	// MySQL 5.7+ required
	if major < 5 || (major == 5 && minor < 7) {
		db.Close()
		return nil, errors.NewConnectionError(
			fmt.Sprintf("MySQL version %s is not supported (need 5.7+)", versionStr),
			"upgrade to MySQL 5.7 or later")
	}

	return &DB{
		DB:      db,
		config:  config,
		version: versionStr,
	}, nil
}

// Config returns the configuration used by this handle
func (db *DB) Config() *types.Config {
	return db.config
}

// ServerVersion returns the version string reported by the server
func (db *DB) ServerVersion() string {
	return db.version
}

// BuildDSN assembles a driver DSN from the individual connection fields
func BuildDSN(config *types.Config) string {
	cfg := mysql.NewConfig()
	cfg.User = config.User
	cfg.Passwd = config.Password
	cfg.Net = "tcp"
	cfg.Addr = fmt.Sprintf("%s:%d", config.Host, config.Port)
	cfg.DBName = config.Database
	return cfg.FormatDSN()
}

// parseVersion extracts major.minor from a server version string such as
// "8.4.0" or "5.7.44-log".
func parseVersion(version string) (major, minor int, ok bool) {
	parts := strings.SplitN(version, ".", 3)
	if len(parts) < 2 {
		return 0, 0, false
	}
	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, false
	}
	minorStr := parts[1]
	if i := strings.IndexFunc(minorStr, func(r rune) bool { return r < '0' || r > '9' }); i >= 0 {
		minorStr = minorStr[:i]
	}
	minor, err = strconv.Atoi(minorStr)
	if err != nil {
		return 0, 0, false
	}
	return major, minor, true
}
