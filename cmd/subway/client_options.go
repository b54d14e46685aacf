package main

import (
	"fmt"
	"log/slog"

	"github.com/helixml/subway"
	"github.com/helixml/subway/internal/config"
	"github.com/helixml/subway/internal/log"
)

// clientOptions returns the subway.Option slice shared by every command.
// Callers append entrypoint-specific options before calling subway.New.
func clientOptions(cfg config.AppConfig, logger *slog.Logger) []subway.Option {
	return []subway.Option{
		subway.WithDataDir(cfg.DataDir()),
		subway.WithDatabaseURL(cfg.DBURL()),
		subway.WithDBPool(cfg.DBMaxOpenConns(), cfg.DBMaxIdleConns()),
		subway.WithLogger(logger),
	}
}

// openClient loads configuration and opens a client.
func openClient(envFile string) (*subway.Client, *slog.Logger, error) {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.EnsureDataDir(); err != nil {
		return nil, nil, fmt.Errorf("create data directory: %w", err)
	}

	logger := log.NewLogger(cfg).Slog()
	client, err := subway.New(clientOptions(cfg, logger)...)
	if err != nil {
		return nil, nil, fmt.Errorf("create subway client: %w", err)
	}
	return client, logger, nil
}

func closeClient(client *subway.Client, logger *slog.Logger) {
	if err := client.Close(); err != nil {
		logger.Error("failed to close subway client", slog.Any("error", err))
	}
}
