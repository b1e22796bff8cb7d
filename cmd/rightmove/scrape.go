package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/seanmcmahon101/TheRightmoveScraper/internal/config"
	"github.com/seanmcmahon101/TheRightmoveScraper/internal/database"
	"github.com/seanmcmahon101/TheRightmoveScraper/internal/fetch"
	"github.com/seanmcmahon101/TheRightmoveScraper/internal/model"
	"github.com/seanmcmahon101/TheRightmoveScraper/internal/report"
	"github.com/seanmcmahon101/TheRightmoveScraper/internal/scrape"
)

// NewScrapeCmd creates the scrape command.
func NewScrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape <search-url>",
		Short: "Scrape all listings from a Rightmove search results URL",
		Long: `Scrape collects every listing returned by a Rightmove property search.

It fetches the first results page, reads the advertised result count to plan
pagination, then fetches the remaining pages sequentially. With --floorplans
it also visits each listing's detail page concurrently to resolve the
floorplan image URL.

Examples:
  # Scrape a search to CSV on stdout
  rightmove scrape 'https://www.rightmove.co.uk/property-for-sale/find.html?searchLocation=York'

  # Include floorplan URLs and write a JSON file
  rightmove scrape --floorplans --format json -o results.json '<search-url>'

  # Slow down and persist the run to the local SQLite store
  rightmove scrape --delay 2s --save '<search-url>'

Configuration file (.rightmove.yml) example:
  selectors:
    card: "div.propertyCard"
    resultCount: "span.searchHeader-resultCount"
  pageSize: 24
  floorplanWorkers: 5`,
		Args: cobra.ExactArgs(1),
		RunE: runScrapeCmd,
	}

	// Scrape behavior flags
	cmd.Flags().BoolP("floorplans", "f", false,
		"Resolve each listing's floorplan image URL (roughly doubles request count)")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each HTTP request")
	cmd.Flags().Duration("delay", config.DefaultRequestDelay,
		"Minimum interval between HTTP requests")
	cmd.Flags().Int("max-retries", config.DefaultMaxRetries,
		"Retry budget for transient fetch failures")
	cmd.Flags().IntP("workers", "w", config.DefaultFloorplanWorkers,
		"Floorplan worker pool size")

	// Report flags
	cmd.Flags().String("format", config.FormatCSV,
		"Output format: csv, json, or markdown")
	cmd.Flags().StringP("output", "o", "",
		"Write the report to a file instead of stdout")
	cmd.Flags().Bool("summary", false,
		"Print a run summary to stderr after the report")

	// Persistence flags
	cmd.Flags().Bool("save", false,
		"Save the run's listings to the local SQLite store")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .rightmove.yml in current directory or XDG config dir)")

	return cmd
}

// runScrapeCmd executes the scrape command.
func runScrapeCmd(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := setupLogger(cfg.Verbose)
	slog.SetDefault(logger)

	// Graceful shutdown on interrupt: an aborted run still flushes the
	// terminal error path cleanly.
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runScrape(ctx, cmd, cfg, logger)
}

// buildConfig creates a Config from cobra command flags and the optional
// YAML config file. File values apply first, explicit flags win.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.SearchURL = args[0]

	var err error

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	// Load file overrides before flags so explicit flags take precedence.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		file.Apply(cfg)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("configuration file not found: %s", cfg.ConfigFilePath)
	}

	cfg.Floorplans, err = cmd.Flags().GetBool("floorplans")
	if err != nil {
		return nil, err
	}

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("delay") {
		cfg.RequestDelay, err = cmd.Flags().GetDuration("delay")
		if err != nil {
			return nil, err
		}
	}

	cfg.MaxRetries, err = cmd.Flags().GetInt("max-retries")
	if err != nil {
		return nil, err
	}

	if cmd.Flags().Changed("workers") {
		cfg.FloorplanWorkers, err = cmd.Flags().GetInt("workers")
		if err != nil {
			return nil, err
		}
	}

	cfg.Format, err = cmd.Flags().GetString("format")
	if err != nil {
		return nil, err
	}

	cfg.OutputFile, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.SaveToDB, err = cmd.Flags().GetBool("save")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// setupLogger creates a structured logger based on verbosity setting.
func setupLogger(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

// runScrape executes the scrape and writes the report.
func runScrape(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	query, err := model.NewSearchQuery(cfg.SearchURL)
	if err != nil {
		return err
	}

	client := fetch.NewClient(cfg.Timeout,
		fetch.WithUserAgent(cfg.UserAgent),
		fetch.WithMaxBodySize(cfg.MaxBodySize),
		fetch.WithRequestDelay(cfg.RequestDelay),
	)

	scraper := scrape.NewScraper(client, cfg, scrape.WithLogger(logger))

	fmt.Fprintf(cmd.ErrOrStderr(), "Scraping %s...\n", query.URL())
	startTime := time.Now()

	result, err := scraper.Run(ctx, query)
	if err != nil {
		return fmt.Errorf("scrape failed: %w", err)
	}

	elapsed := time.Since(startTime)
	fmt.Fprintf(cmd.ErrOrStderr(), "Scraped %d listings in %s\n",
		result.Len(), elapsed.Round(time.Millisecond))

	if err := outputReport(cmd, cfg, result); err != nil {
		return fmt.Errorf("write report: %w", err)
	}

	if showSummary, _ := cmd.Flags().GetBool("summary"); showSummary {
		if _, err := report.NewSummaryWriter(cmd.ErrOrStderr()).Write(result); err != nil {
			logger.Error("summary failed", "error", err)
		}
	}

	if cfg.SaveToDB {
		if err := saveResultSet(ctx, cfg, result, logger); err != nil {
			// Persistence is a sink, not the product: the report already
			// reached the user, so log and keep the exit code clean.
			logger.Error("failed to save result set", "error", err)
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: result set not saved: %v\n", err)
		}
	}

	return nil
}

// outputReport writes the result set in the requested format.
func outputReport(cmd *cobra.Command, cfg *config.Config, result *model.ResultSet) error {
	var output io.Writer = cmd.OutOrStdout()
	if cfg.OutputFile != "" {
		dir := filepath.Dir(cfg.OutputFile)
		if dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0750); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
		}

		f, err := os.OpenFile(cfg.OutputFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close() //nolint:errcheck // Best effort cleanup
		output = f
	}

	var writer report.Writer
	switch cfg.Format {
	case config.FormatJSON:
		writer = report.NewJSONWriter(output)
	case config.FormatMarkdown:
		writer = report.NewMarkdownWriter(output)
	default:
		writer = report.NewCSVWriter(output)
	}

	_, err := writer.Write(result)
	return err
}

// saveResultSet persists the run to the SQLite store.
func saveResultSet(ctx context.Context, cfg *config.Config, result *model.ResultSet, logger *slog.Logger) error {
	db, err := database.Open(cfg.DBDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close() //nolint:errcheck // Best effort cleanup

	scrapeID, err := db.SaveResultSet(ctx, result)
	if err != nil {
		return err
	}

	logger.Info("result set saved", "scrapeID", scrapeID, "dir", cfg.DBDir)
	return nil
}
