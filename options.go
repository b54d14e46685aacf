package subway

import (
	"log/slog"
	"time"

	"github.com/helixml/subway/internal/config"
)

// databaseType identifies the database.
type databaseType int

const (
	databaseUnset databaseType = iota
	databaseSQLite
	databasePostgres
	databaseURL
)

// clientConfig holds configuration for Client construction.
type clientConfig struct {
	database     databaseType
	dbPath       string
	dbDSN        string
	dataDir      string
	maxOpenConns int
	maxIdleConns int
	connLifetime time.Duration
	logger       *slog.Logger
	apiKeys      []string
}

func newClientConfig() *clientConfig {
	return &clientConfig{
		dataDir:      config.DefaultDataDir(),
		maxOpenConns: config.DefaultDBMaxOpenConns,
		maxIdleConns: config.DefaultDBMaxIdleConns,
		connLifetime: config.DefaultDBConnLifetime,
	}
}

// Option configures the Client.
type Option func(*clientConfig)

// WithSQLite stores the network in a SQLite file.
func WithSQLite(path string) Option {
	return func(c *clientConfig) {
		c.database = databaseSQLite
		c.dbPath = path
	}
}

// WithPostgres stores the network in PostgreSQL.
func WithPostgres(dsn string) Option {
	return func(c *clientConfig) {
		c.database = databasePostgres
		c.dbDSN = dsn
	}
}

// WithDatabaseURL selects the database from a URL such as
// sqlite:///path/to/file.db or postgres://user@host/db.
func WithDatabaseURL(url string) Option {
	return func(c *clientConfig) {
		c.database = databaseURL
		c.dbDSN = url
	}
}

// WithDataDir sets the data directory.
func WithDataDir(dir string) Option {
	return func(c *clientConfig) {
		c.dataDir = dir
	}
}

// WithDBPool sets connection pool limits. Non-positive values keep the defaults.
func WithDBPool(maxOpen, maxIdle int) Option {
	return func(c *clientConfig) {
		if maxOpen > 0 {
			c.maxOpenConns = maxOpen
		}
		if maxIdle > 0 {
			c.maxIdleConns = maxIdle
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *clientConfig) {
		c.logger = l
	}
}

// WithAPIKeys sets the keys accepted for write access over HTTP.
func WithAPIKeys(keys ...string) Option {
	return func(c *clientConfig) {
		c.apiKeys = append(c.apiKeys, keys...)
	}
}
