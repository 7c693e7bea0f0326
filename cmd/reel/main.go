package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/soundry/reel/internal/adapter"
	"github.com/soundry/reel/internal/adapter/source/soundry"
	"github.com/soundry/reel/internal/archive"
	"github.com/soundry/reel/internal/catalog"
	"github.com/soundry/reel/internal/console"
	"github.com/soundry/reel/internal/domain"
	"github.com/soundry/reel/internal/fetch"
	"github.com/soundry/reel/internal/state"
	"github.com/soundry/reel/internal/vault"
)

// Version is set at build time via -ldflags
var Version = "dev"

type flags struct {
	showVersion bool
	setup       bool
	list        bool
	filter      string
	search      string

	// One-run config overrides
	output   string
	state    string
	format   string
	pageSize int
}

func main() {
	var f flags
	flag.BoolVar(&f.showVersion, "v", false, "print version")
	flag.BoolVar(&f.showVersion, "version", false, "print version")
	flag.BoolVar(&f.setup, "setup", false, "run the interactive setup flow")
	flag.BoolVar(&f.list, "list", false, "list archived tracks from the catalog")
	flag.StringVar(&f.filter, "filter", "", "narrow -list output to matching titles")
	flag.StringVar(&f.search, "search", "", "fuzzy-search archived track titles")
	flag.StringVar(&f.output, "output", "", "override the output directory for this run")
	flag.StringVar(&f.state, "state", "", "override the progress state file for this run")
	flag.StringVar(&f.format, "format", "", "override the preferred download format for this run")
	flag.IntVar(&f.pageSize, "page-size", 0, "override the page size for this run")
	flag.Parse()

	if f.showVersion {
		fmt.Printf("reel %s\n", Version)
		return
	}

	if err := run(f); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(f flags) error {
	// A local .env can carry REEL_* overrides; absence is fine
	godotenv.Load()

	cfg, err := adapter.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyOverrides(cfg, f)

	// Fall back to null logger if file logging fails
	logger, err := adapter.SetupLogger(&cfg.Logging)
	if err != nil {
		logger = adapter.NullLogger()
	}
	logger = logger.With("run_id", uuid.NewString())
	slog.SetDefault(logger)

	logger.Info("starting reel", "version", Version)

	if f.setup || !cfg.IsConfigured() {
		return runSetupFlow(cfg, logger)
	}

	cons := console.New(os.Stdout)

	// Catalog-only commands never touch the network
	if f.list || f.search != "" {
		return runCatalogView(cfg, cons, f)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client := soundry.NewClient(cfg.Server.URL, cfg.Server.Token, cfg.Server.UserID, logger)
	if err := client.ValidateToken(ctx); err != nil {
		return fmt.Errorf("token validation failed (run reel -setup to re-authenticate): %w", err)
	}

	v, err := vault.New(cfg.Archive.OutputDir, logger)
	if err != nil {
		return err
	}

	// Sweep remnants of a killed prior run before any download starts
	removed, err := v.CleanStaging()
	if err != nil {
		return err
	}
	if removed > 0 {
		fmt.Printf("Removed %d stale staging file(s) from an interrupted run.\n", removed)
	}

	store := state.NewStore(cfg.Archive.StateFile, logger)

	// The catalog is a convenience index; archiving proceeds without it
	var index domain.ArchiveIndex
	if cat, err := catalog.Open(v.Dir()); err != nil {
		logger.Warn("catalog unavailable, -list and -search will be empty", "error", err)
	} else {
		defer cat.Close()
		index = cat
	}

	retryer := fetch.New(fetch.Options{
		MaxRetries: cfg.Archive.MaxRetries,
		PageDelay:  cfg.Archive.PageRetryDelay,
	}, logger)

	arch := archive.New(client, store, v, index, retryer, cons, logger, archive.Options{
		PageSize: cfg.Archive.PageSize,
		Format:   cfg.Archive.Format,
	})

	summary, runErr := arch.Run(ctx)
	cons.Summary(summary)

	if runErr != nil {
		if errors.Is(runErr, context.Canceled) || errors.Is(runErr, context.DeadlineExceeded) {
			fmt.Println("Interrupted; progress saved. Run reel again to resume.")
			return nil
		}
		return runErr
	}

	logger.Info("shutting down")
	return nil
}

// applyOverrides layers one-run flag values over the loaded config
func applyOverrides(cfg *adapter.Config, f flags) {
	if f.output != "" {
		cfg.Archive.OutputDir = f.output
	}
	if f.state != "" {
		cfg.Archive.StateFile = f.state
	}
	if f.format != "" {
		cfg.Archive.Format = f.format
	}
	if f.pageSize > 0 {
		cfg.Archive.PageSize = f.pageSize
	}
}

// runCatalogView serves -list and -search from the local catalog
func runCatalogView(cfg *adapter.Config, cons *console.Console, f flags) error {
	cat, err := catalog.Open(cfg.Archive.OutputDir)
	if err != nil {
		return fmt.Errorf("failed to open catalog: %w", err)
	}
	defer cat.Close()

	entries, err := cat.All()
	if err != nil {
		return err
	}

	if f.search != "" {
		cons.SearchEntries(entries, f.search)
		return nil
	}
	cons.ListEntries(entries, f.filter)
	return nil
}

// runSetupFlow handles the initial setup when not configured
func runSetupFlow(cfg *adapter.Config, logger *slog.Logger) error {
	fmt.Println()
	fmt.Println("Welcome to reel!")
	fmt.Println()

	serverURL := strings.TrimRight(cfg.Server.URL, "/")
	input, err := soundry.PromptForServerURL()
	if err != nil {
		return err
	}
	if input != "" {
		serverURL = strings.TrimRight(input, "/")
	}
	if serverURL == "" {
		return fmt.Errorf("server URL cannot be empty")
	}

	authFlow := soundry.NewAuthFlow(logger)
	result, err := authFlow.Run(context.Background(), serverURL)
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	cfg.Server.URL = serverURL
	cfg.Server.Token = result.Token
	cfg.Server.UserID = result.UserID
	cfg.Server.Username = result.Username

	if err := adapter.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	fmt.Println("Run reel again to start archiving your library.")

	return nil
}
