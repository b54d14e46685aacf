// Package subway manages subway lines as ordered chains of sections.
//
// A line is a single unbranched path of stations. Sections can be added
// at either terminus or spliced into an existing section, and stations can
// be removed, merging the two sections around them.
//
// Basic usage:
//
//	client, err := subway.New(subway.WithSQLite(".subway/subway.db"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	a, _ := client.Stations.Create(ctx, "Gangnam")
//	b, _ := client.Stations.Create(ctx, "Yeoksam")
//	l, err := client.Lines.Create(ctx, &service.LineCreateParams{
//	    Name: "Line 2", Color: "green",
//	    UpStationID: a.ID(), DownStationID: b.ID(), Length: 10,
//	})
//
//	for _, st := range l.Stations() {
//	    fmt.Println(st.Name())
//	}
package subway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/helixml/subway/application/service"
	"github.com/helixml/subway/infrastructure/persistence"
	"github.com/helixml/subway/internal/database"
)

// Client is the main entry point for the subway library.
//
//	client.Stations.Find(ctx)
//	client.Lines.Get(ctx, repository.WithID(id))
//	client.Lines.AddSection(ctx, id, &service.SectionAddParams{...})
type Client struct {
	Stations *service.Station
	Lines    *service.Line

	db      database.Database
	logger  *slog.Logger
	dataDir string
	apiKeys []string
	closed  atomic.Bool
	mu      sync.Mutex
}

// New opens the database, migrates it, and wires the services.
func New(opts ...Option) (*Client, error) {
	cfg := newClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.database == databaseUnset {
		return nil, ErrNoDatabase
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}

	dbURL, err := buildDatabaseURL(cfg)
	if err != nil {
		return nil, fmt.Errorf("build database url: %w", err)
	}

	if path, ok := sqliteFile(dbURL); ok {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}

	ctx := context.Background()
	db, err := database.NewDatabase(ctx, dbURL, database.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := db.ConfigurePool(cfg.maxOpenConns, cfg.maxIdleConns, cfg.connLifetime); err != nil {
		errClose := db.Close()
		return nil, errors.Join(fmt.Errorf("configure pool: %w", err), errClose)
	}

	if err := persistence.AutoMigrate(db); err != nil {
		errClose := db.Close()
		return nil, errors.Join(fmt.Errorf("auto migrate: %w", err), errClose)
	}

	stationStore := persistence.NewStationStore(db)
	lineStore := persistence.NewLineStore(db)

	client := &Client{
		Stations: service.NewStation(stationStore, lineStore, logger),
		Lines:    service.NewLine(lineStore, stationStore, logger),
		db:       db,
		logger:   logger,
		dataDir:  cfg.dataDir,
		apiKeys:  cfg.apiKeys,
	}

	logger.Info("subway client ready",
		slog.String("data_dir", cfg.dataDir),
		slog.Bool("postgres", db.IsPostgres()),
	)
	return client, nil
}

// Close releases the database connection.
func (c *Client) Close() error {
	if !c.closed.CompareAndSwap(false, true) {
		return ErrClientClosed
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.db.Close(); err != nil {
		return fmt.Errorf("close database: %w", err)
	}

	c.logger.Info("subway client closed")
	return nil
}

// Closed reports whether Close has been called.
func (c *Client) Closed() bool {
	return c.closed.Load()
}

// Ping checks the database connection.
func (c *Client) Ping(ctx context.Context) error {
	if c.closed.Load() {
		return ErrClientClosed
	}
	return c.db.Ping(ctx)
}

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger {
	return c.logger
}

// APIKeys returns the keys accepted for write access.
func (c *Client) APIKeys() []string {
	return append([]string(nil), c.apiKeys...)
}

// DataDir returns the data directory.
func (c *Client) DataDir() string {
	return c.dataDir
}

// buildDatabaseURL constructs the database URL from configuration.
func buildDatabaseURL(cfg *clientConfig) (string, error) {
	switch cfg.database {
	case databaseSQLite:
		path := cfg.dbPath
		if path != ":memory:" && !filepath.IsAbs(path) && cfg.dataDir != "" && filepath.Dir(path) == "." {
			path = filepath.Join(cfg.dataDir, path)
		}
		return "sqlite:///" + path, nil
	case databasePostgres, databaseURL:
		return cfg.dbDSN, nil
	default:
		return "", ErrNoDatabase
	}
}

// sqliteFile returns the file behind a sqlite URL, if any.
func sqliteFile(url string) (string, bool) {
	path, ok := strings.CutPrefix(url, "sqlite:///")
	if !ok || path == "" || path == ":memory:" {
		return "", false
	}
	return path, true
}
