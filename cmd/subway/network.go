package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/helixml/subway/infrastructure/network"
)

func importCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import stations and lines from a YAML file",
		Long: `Import stations and lines from a YAML network file.

Missing stations are created by name. Each line is created from its first
section and the remaining sections are added in order.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open %s: %w", args[0], err)
			}
			defer func() { _ = f.Close() }()
			return runImport(cmd, envFile, f)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file")

	return cmd
}

func runImport(cmd *cobra.Command, envFile string, r io.Reader) error {
	doc, err := network.Decode(r)
	if err != nil {
		return err
	}

	client, logger, err := openClient(envFile)
	if err != nil {
		return err
	}
	defer closeClient(client, logger)

	report, err := network.NewImporter(client.Stations, client.Lines, logger).Import(cmd.Context(), doc)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d line(s), %d section(s), %d new station(s)\n",
		report.LinesCreated, report.SectionsAdded, report.StationsCreated)
	return err
}

func exportCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "export [FILE]",
		Short: "Export stations and lines as YAML",
		Long:  `Export every station and line as YAML, with sections in travel order. Writes to stdout when FILE is omitted.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if len(args) == 1 {
				f, err := os.Create(args[0])
				if err != nil {
					return fmt.Errorf("create %s: %w", args[0], err)
				}
				defer func() { _ = f.Close() }()
				w = f
			}
			return runExport(cmd, envFile, w)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file")

	return cmd
}

func runExport(cmd *cobra.Command, envFile string, w io.Writer) error {
	client, logger, err := openClient(envFile)
	if err != nil {
		return err
	}
	defer closeClient(client, logger)

	doc, err := network.Export(cmd.Context(), client.Stations, client.Lines)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return network.Encode(w, doc)
}
