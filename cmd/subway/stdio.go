package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/helixml/subway/internal/mcp"
)

func stdioCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "stdio",
		Short: "Start MCP server on stdio",
		Long: `Start the MCP (Model Context Protocol) server on stdio.

This lets AI assistants inspect lines and edit their sections.
Configuration is loaded from environment variables and .env file.
Logs go to stderr.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStdio(envFile)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file")

	return cmd
}

func runStdio(envFile string) error {
	client, logger, err := openClient(envFile)
	if err != nil {
		return err
	}
	defer closeClient(client, logger)

	logger.Info("starting MCP server",
		slog.String("version", version),
		slog.String("data_dir", client.DataDir()),
	)

	return mcp.NewServer(client.Lines, client.Stations, version, logger).ServeStdio()
}
