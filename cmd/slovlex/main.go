package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/coolbeans/slovlex/pkg/config"
	"github.com/coolbeans/slovlex/pkg/fetch"
	"github.com/coolbeans/slovlex/pkg/pipeline"
	"github.com/coolbeans/slovlex/pkg/server"
	"github.com/coolbeans/slovlex/pkg/store"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "slovlex",
		Short: "Slovak statute extraction pipeline",
		Long: `Slovlex ingests Slovak statutes from the official collection of
laws portal and produces structured, queryable records.

For each configured law it selects the revision in force on a
reference date, parses the consolidated text into provisions with
their hierarchy context, mines legal definitions, and exports the
result as JSON (optionally also into Postgres). The serve command
exposes the export over a read-only query API.`,
		Version: version,
	}

	rootCmd.AddCommand(ingestCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newLogger(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()
}

func ingestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest",
		Short: "Ingest the configured laws",
		Long: `Ingest every law named in the configuration file: fetch its
revision history, pick the revision in force on the reference date,
parse the consolidated text and export the structured result.

A failing law does not abort the run; the run fails only when no law
succeeds.

Example:
  slovlex ingest --config laws.yaml
  slovlex ingest --config laws.yaml --reference-date 2019-06-01 --output export/`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			referenceDate, _ := cmd.Flags().GetString("reference-date")
			outputDir, _ := cmd.Flags().GetString("output")
			verbose, _ := cmd.Flags().GetBool("verbose")

			log := newLogger(verbose)

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if referenceDate != "" {
				if _, err := time.Parse("2006-01-02", referenceDate); err != nil {
					return fmt.Errorf("invalid --reference-date %q: %w", referenceDate, err)
				}
				cfg.ReferenceDate = referenceDate
			}
			if outputDir != "" {
				cfg.OutputDir = outputDir
			}

			laws := cfg.TargetLaws()
			fmt.Printf("Ingesting %d laws as of %s\n", len(laws), cfg.ReferenceDate)
			startTime := time.Now()

			fetchCfg := fetch.DefaultConfig()
			if cfg.BaseURL != "" {
				fetchCfg.BaseURL = cfg.BaseURL
			}
			fetchCfg.CacheDir = cfg.CacheDir
			client, err := fetch.NewClient(fetchCfg)
			if err != nil {
				return fmt.Errorf("failed to build fetch client: %w", err)
			}

			run := pipeline.New(client, cfg.ReferenceDate, log)
			summary, err := run.Run(context.Background(), laws)
			if err != nil {
				return err
			}

			for _, result := range summary.Results {
				if result.Act == nil {
					fmt.Printf("  FAIL %-6s %s\n", result.LawID, result.Error)
					continue
				}
				fmt.Printf("  ok   %-6s %s (%d provisions, %d definitions)\n",
					result.LawID, result.Act.Status, len(result.Act.Provisions), len(result.Act.Definitions))
			}

			exporter, err := store.NewFileExporter(cfg.OutputDir)
			if err != nil {
				return fmt.Errorf("failed to prepare export directory: %w", err)
			}
			if err := exporter.SaveAll(summary.Acts()); err != nil {
				return fmt.Errorf("failed to export results: %w", err)
			}

			if cfg.PostgresDSN != "" {
				pg, err := store.OpenPostgres(cfg.PostgresDSN)
				if err != nil {
					return fmt.Errorf("failed to open postgres: %w", err)
				}
				defer pg.Close()
				if err := pg.EnsureSchema(context.Background()); err != nil {
					return fmt.Errorf("failed to prepare postgres schema: %w", err)
				}
				for _, act := range summary.Acts() {
					if err := pg.SaveAct(context.Background(), &act); err != nil {
						return fmt.Errorf("failed to persist %s: %w", act.LawID, err)
					}
				}
			}

			fmt.Printf("Done: %d succeeded, %d failed in %s\n",
				summary.Succeeded, summary.Failed, time.Since(startTime).Round(time.Millisecond))
			return nil
		},
	}

	cmd.Flags().String("config", "laws.yaml", "Path to the law set configuration file")
	cmd.Flags().String("reference-date", "", "Select revisions in force on this date (YYYY-MM-DD, default today)")
	cmd.Flags().String("output", "", "Export directory (overrides configuration)")
	cmd.Flags().Bool("verbose", false, "Enable debug logging")

	return cmd
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve previously ingested laws over HTTP",
		Long: `Serve the JSON export of a prior ingest run as a read-only query
API with act listing, provision lookup, definition listing and
diacritic-insensitive full-text search.

Example:
  slovlex serve --config laws.yaml
  slovlex serve --input export/ --addr :8080`,
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			inputFlag, _ := cmd.Flags().GetString("input")
			addrFlag, _ := cmd.Flags().GetString("addr")
			verbose, _ := cmd.Flags().GetBool("verbose")

			log := newLogger(verbose)

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			inputDir, addr := serveOptions(cfg, inputFlag, addrFlag)

			acts, err := store.LoadActs(inputDir)
			if err != nil {
				return fmt.Errorf("failed to load acts from %s: %w", inputDir, err)
			}
			if len(acts) == 0 {
				return fmt.Errorf("no acts found in %s; run ingest first", inputDir)
			}

			fmt.Printf("Serving %d laws on %s\n", len(acts), addr)
			return server.New(acts, log).ListenAndServe(addr)
		},
	}

	cmd.Flags().String("config", "laws.yaml", "Path to the law set configuration file")
	cmd.Flags().String("input", "", "Directory holding the JSON export (overrides configuration)")
	cmd.Flags().String("addr", "", "HTTP listen address (overrides configuration)")
	cmd.Flags().Bool("verbose", false, "Enable debug logging")

	return cmd
}

// serveOptions resolves the serve command's export directory and listen
// address. Flags override the configuration file.
func serveOptions(cfg *config.Config, inputFlag, addrFlag string) (inputDir, addr string) {
	inputDir = cfg.OutputDir
	if inputFlag != "" {
		inputDir = inputFlag
	}
	addr = cfg.HTTPAddr
	if addrFlag != "" {
		addr = addrFlag
	}
	return inputDir, addr
}
