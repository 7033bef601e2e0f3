package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"

	"github.com/pfrederiksen/lastfm-events/internal/config"
	"github.com/pfrederiksen/lastfm-events/internal/event"
	"github.com/pfrederiksen/lastfm-events/internal/logger"
	"github.com/pfrederiksen/lastfm-events/internal/scraper"
	"github.com/pfrederiksen/lastfm-events/internal/sink"
	"github.com/pfrederiksen/lastfm-events/internal/storage"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
)

// options holds the flag values of a single command instance
type options struct {
	printOnly  bool
	configPath string
	outputDir  string
	baseURL    string
	timezone   string
	uniqueUIDs bool
	verbose    bool
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "lastfm-events <username> [year]",
		Short: "Export a Last.fm user's events to an iCalendar file",
		Long: `A CLI tool that scrapes the public events page of a Last.fm user and writes
the listed events to lastfm_events_<username>_<year>.ics next to the program.
Without a year the upcoming events are exported.`,
		Args:          cobra.RangeArgs(1, 2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd, opts, args)
		},
	}

	// Define flags
	cmd.Flags().BoolVar(&opts.printOnly, "print-only", false, "Print the extracted events instead of writing a calendar file")
	cmd.Flags().StringVar(&opts.configPath, "config", config.DefaultPath, "Path to the YAML config file")
	cmd.Flags().StringVar(&opts.outputDir, "output-dir", "", "Directory for the calendar file (default: program directory)")
	cmd.Flags().StringVar(&opts.baseURL, "base-url", "", "Last.fm site to scrape (default: https://www.last.fm)")
	cmd.Flags().StringVar(&opts.timezone, "timezone", "", "Timezone of the generation timestamp (default: Europe/Amsterdam)")
	cmd.Flags().BoolVar(&opts.uniqueUIDs, "unique-uids", false, "Append a per-event identifier to every UID")
	cmd.Flags().BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging")

	return cmd
}

// runGenerate is the main command logic
func runGenerate(cmd *cobra.Command, opts *options, args []string) error {
	username := strings.TrimSpace(args[0])
	if username == "" {
		return scraper.ErrUsernameRequired
	}
	year := ""
	if len(args) > 1 {
		year = strings.TrimSpace(args[1])
	}

	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	if opts.verbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, cmd.ErrOrStderr()))

	loc, err := cfg.Location()
	if err != nil {
		return fmt.Errorf("loading timezone: %w", err)
	}

	sc := scraper.New(
		&http.Client{Timeout: cfg.Timeout},
		scraper.WithBaseURL(cfg.BaseURL),
		scraper.WithUserAgent(cfg.UserAgent),
	)

	logger.Debug("Starting run", logger.Fields{
		"username":   username,
		"year":       year,
		"print_only": opts.printOnly,
		"base_url":   sc.BaseURL(),
	})

	// The stamp is taken once so every event of the run shares it
	mapper := event.Mapper{
		Stamp:      event.Now(loc),
		UniqueUIDs: cfg.UniqueUIDs,
	}

	var out sink.Sink
	if opts.printOnly {
		out = sink.NewPrinter(cmd.OutOrStdout())
	} else {
		store, err := storage.New(cfg.OutputDir)
		if err != nil {
			return fmt.Errorf("initializing storage: %w", err)
		}
		logger.Debug("Writing calendar file", logger.Fields{"dir": store.Dir()})
		out = sink.NewCalendarFile(store, username, year, mapper)
	}

	rows, err := sc.Events(cmd.Context(), username, year)
	if err != nil {
		return fmt.Errorf("fetching events: %w", err)
	}
	logger.AddCounter("rows.found", int64(rows.Len()))

	if err := out.Emit(cmd.Context(), rows); err != nil {
		return fmt.Errorf("exporting events: %w", err)
	}

	logger.Debug("Run complete", logger.MetricsFields())
	return nil
}

// loadConfig reads the config file and applies explicitly set flags on top
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("output-dir") {
		cfg.OutputDir = opts.outputDir
	}
	if flags.Changed("base-url") {
		cfg.BaseURL = opts.baseURL
	}
	if flags.Changed("timezone") {
		cfg.Timezone = opts.timezone
	}
	if flags.Changed("unique-uids") {
		cfg.UniqueUIDs = opts.uniqueUIDs
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Execute runs the CLI
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := NewRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
	os.Exit(ExitSuccess)
}
