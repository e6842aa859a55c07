// Package main provides the gaceta command, which scrapes the Bolivian
// official gazette and extracts structured legal metadata.
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"gacetabo/internal/config"
	"gacetabo/internal/export"
	"gacetabo/internal/logger"
	"gacetabo/internal/models"
	"gacetabo/internal/pdftext"
	"gacetabo/internal/pipeline"
	"gacetabo/internal/report"
	"gacetabo/internal/scraper"
	"gacetabo/internal/store"
)

var version = "0.1.0"

func main() {
	rootCmd := &cobra.Command{
		Use:   "gaceta",
		Short: "Scraper and parser for the Gaceta Oficial de Bolivia",
		Long: `gaceta crawls the official gazette of Bolivia, downloads norm PDFs,
and extracts structured metadata from the legal text:

  - Document sections (VISTOS, CONSIDERANDO, POR TANTO, articles, dispositions)
  - Norm type, number, date, issuing entity, and topics
  - JSON and CSV exports plus a local SQLite document store`,
		Version: version,
	}

	rootCmd.AddCommand(newScrapeCmd())
	rootCmd.AddCommand(newParseCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newScrapeCmd() *cobra.Command {
	var (
		configPath string
		pages      int
		limit      int
		useBrowser bool
		skipPDF    bool
	)

	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Crawl the gazette listing and process documents end to end",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("pages") {
				cfg.Gaceta.Pages = pages
			}

			if cmd.Flags().Changed("limit") {
				cfg.Gaceta.Limit = limit
			}

			if cmd.Flags().Changed("browser") {
				cfg.Browser.Enabled = useBrowser
			}

			if skipPDF {
				cfg.Gaceta.DownloadPDFs = false
			}

			return runScrape(cmd, cfg)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to YAML config file")
	cmd.Flags().IntVar(&pages, "pages", 1, "Listing pages to crawl")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum documents to process (0 = no limit)")
	cmd.Flags().BoolVar(&useBrowser, "browser", false, "Fetch listings through headless Chrome")
	cmd.Flags().BoolVar(&skipPDF, "skip-pdf", false, "Skip PDF downloads, use detail pages only")

	return cmd
}

func runScrape(cmd *cobra.Command, cfg *config.Config) error {
	log := logger.NewLogger(cfg.Logging.Level)

	log.Info("🚀 Starting Gaceta Pipeline")
	log.Info(fmt.Sprintf("📍 Source: %s", cfg.Gaceta.ListingURL()))
	log.Info(fmt.Sprintf("⚙️  %s", cfg))

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	startTime := time.Now()

	log.Info("Phase 1: Ingestion (Crawling & Downloading)...")

	source, err := scraper.NewSource(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to start document source: %w", err)
	}

	defer func() {
		if closeErr := source.Close(); closeErr != nil {
			log.Warn("source close failed", "error", closeErr)
		}
	}()

	sinks, err := buildSinks(cfg)
	if err != nil {
		return err
	}

	log.Info("Phase 2: Processing (Parsing & Metadata)...")

	pipe := pipeline.New(log)

	records, stats, runErr := pipe.Run(ctx, source, sinks, cfg.Gaceta.Workers)

	log.Info("Phase 3: Export...")

	for _, sink := range sinks {
		if err := sink.Close(); err != nil {
			log.Error("sink close failed", "error", err)
		}
	}

	if runErr != nil {
		log.Warn(fmt.Sprintf("⚠️  Run interrupted: %v", runErr))
	}

	log.Info(fmt.Sprintf("✅ Processed %d documents in %v", stats.Processed, time.Since(startTime)))
	log.Info("✨ Pipeline Complete!")

	fmt.Println()
	report.Write(os.Stdout, records, stats)

	return nil
}

func newParseCmd() *cobra.Command {
	var (
		title   string
		date    string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a single local document (.txt or .pdf) and print its record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.NewLogger("warn")

			text, err := readDocument(args[0], log)
			if err != nil {
				return err
			}

			if title == "" {
				title = strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
			}

			doc := models.RawDocument{
				ID:        scraper.DocumentID(title, date, args[0]),
				TituloRaw: title,
				FechaRaw:  date,
				RawText:   text,
			}

			rec, result := pipeline.New(log).Process(&doc)

			for _, warning := range result.Warnings {
				fmt.Fprintf(os.Stderr, "advertencia: %s\n", warning)
			}

			data, err := json.MarshalIndent(rec, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal record: %w", err)
			}

			if outPath != "" {
				return os.WriteFile(outPath, data, 0o644)
			}

			fmt.Println(string(data))

			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "Document title (defaults to the file name)")
	cmd.Flags().StringVar(&date, "date", "", "Document date as found on the site")
	cmd.Flags().StringVarP(&outPath, "out", "o", "", "Write the record JSON to this file")

	return cmd
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}

	return config.LoadConfig(path)
}

// buildSinks assembles the record sinks enabled by the config: the SQLite
// store plus JSON and/or CSV exports.
func buildSinks(cfg *config.Config) ([]pipeline.RecordSink, error) {
	var sinks []pipeline.RecordSink

	if cfg.Store.Enabled {
		if err := os.MkdirAll(filepath.Dir(cfg.Store.Path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}

		st, err := store.Open(cfg.Store.Path)
		if err != nil {
			return nil, err
		}

		sinks = append(sinks, st)
	}

	if cfg.Export.Format == "json" || cfg.Export.Format == "both" {
		sinks = append(sinks, export.NewJSONWriter(cfg.Dirs.Exports))
	}

	if cfg.Export.Format == "csv" || cfg.Export.Format == "both" {
		csvSink, err := export.NewCSVWriter(cfg.Dirs.Exports)
		if err != nil {
			return nil, err
		}

		sinks = append(sinks, csvSink)
	}

	return sinks, nil
}

func readDocument(path string, log *logger.Logger) (string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		result, err := pdftext.Extract(path)
		if err != nil {
			return "", fmt.Errorf("failed to extract PDF text: %w", err)
		}

		if result.LikelyScanned {
			log.Warn("PDF looks scanned, text quality is low", "quality", result.Quality)
		}

		return result.Text, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read document: %w", err)
	}

	return string(data), nil
}
