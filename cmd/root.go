// =============================================================================
// Graduate Roster - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI. All other commands
// are attached to it.
//
// COBRA CLI STRUCTURE:
//   rootCmd (roster)
//   ├── fetchCmd   (roster fetch)
//   ├── exportCmd  (roster export)
//   ├── serveCmd   (roster serve)
//   ├── validateCmd (roster validate)
//   ├── localeCmd  (roster locale get|set|list)
//   └── versionCmd (roster version)
//
// The root command is responsible for:
//   1. Global flags (--config, --verbose)
//   2. Loading the configuration
//   3. Building the logger, and flushing it on exit
//
// =============================================================================

package cmd

import (
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/ginjaninja78/graduate-roster/internal/config"
	"github.com/ginjaninja78/graduate-roster/internal/feed"
	"github.com/ginjaninja78/graduate-roster/internal/i18n"
	"github.com/ginjaninja78/graduate-roster/internal/metrics"
	"github.com/ginjaninja78/graduate-roster/internal/pipeline"
)

// =============================================================================
// GLOBAL VARIABLES
// =============================================================================

// cfgFile holds the path to the configuration file.
var cfgFile string

// verbose enables debug logging.
var verbose bool

// appConfig is loaded before any subcommand runs.
var appConfig *config.Config

// logger is built before any subcommand runs.
var logger = zap.NewNop()

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

var rootCmd = &cobra.Command{
	Use:   "roster",
	Short: "Graduate Roster - Certified graduates from a published CSV feed",
	Long: `Graduate Roster downloads the published graduates CSV, normalizes it and
presents certified graduates grouped by month, in Georgian, English or Russian.

Example Usage:
  roster fetch                      # Print the grouped roster
  roster fetch --locale en --format json
  roster export --format xlsx,csv   # Write export files to the output directory
  roster serve                      # Serve the roster over HTTP
  roster locale set ru              # Remember Russian as your language`,

	SilenceUsage: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		appConfig = cfg

		logger, err = buildLogger(cfg.LogLevel, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// =============================================================================
// EXECUTE FUNCTION
// =============================================================================

// Execute runs the CLI. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		"config.yaml",
		"Path to the configuration file; a missing file means defaults",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)
}

// =============================================================================
// SHARED WIRING
// =============================================================================

// buildLogger builds a production zap logger at the configured level.
func buildLogger(level string, verbose bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()

	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}
	zcfg.Level = zap.NewAtomicLevelAt(lvl)

	return zcfg.Build()
}

// feedSource returns the configured feed, or a local copy when file is set.
func feedSource(cfg *config.Config, file string) pipeline.Source {
	if file != "" {
		return feed.FileSource{Path: file}
	}
	return feed.NewFetcher(feed.Options{
		URL:       cfg.Feed.URL,
		Timeout:   cfg.Feed.Timeout,
		UserAgent: cfg.Feed.UserAgent,
		Client:    &http.Client{},
	})
}

// newPipeline wires a feed source into a pipeline. m may be nil.
func newPipeline(cfg *config.Config, file string, m *metrics.Metrics) *pipeline.Pipeline {
	return pipeline.New(feedSource(cfg, file),
		pipeline.WithLogger(logger),
		pipeline.WithMetrics(m),
	)
}

// newMetrics registers pipeline metrics on a fresh registry.
func newMetrics() (*metrics.Metrics, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return metrics.New(reg), reg
}

// loadCatalog returns the built-in dictionaries, or those in locale.dir.
func loadCatalog(cfg *config.Config) (*i18n.Catalog, error) {
	if cfg.Locale.Dir == "" {
		return i18n.DefaultCatalog()
	}
	cat, err := i18n.LoadCatalog(os.DirFS(cfg.Locale.Dir), ".")
	if err != nil {
		return nil, fmt.Errorf("failed to load dictionaries from %s: %w", cfg.Locale.Dir, err)
	}
	return cat, nil
}

// detector builds the locale detector from configuration. Unknown codes
// fall back to the built-in defaults.
func detector(cfg *config.Config) i18n.Detector {
	d := i18n.DefaultDetector()
	if l, ok := i18n.ParseLocale(cfg.Locale.Unmatched); ok {
		d.Unmatched = l
	}
	if l, ok := i18n.ParseLocale(cfg.Locale.NoEnvironment); ok {
		d.NoEnvironment = l
	}
	return d
}

// openSession opens the CLI user's locale session backed by the preference
// file.
func openSession(cfg *config.Config, cat *i18n.Catalog) (*i18n.Session, error) {
	store := i18n.NewFileStore(cfg.Locale.StoreFile)
	return i18n.OpenSession(cat, store, detector(cfg), i18n.EnvironmentLanguage(os.Getenv))
}

// localizerFor resolves the locale for a command: the --locale flag when
// given, otherwise the session's detected locale.
func localizerFor(cfg *config.Config, flag string) (i18n.Localizer, error) {
	cat, err := loadCatalog(cfg)
	if err != nil {
		return i18n.Localizer{}, err
	}

	if flag != "" {
		l, ok := i18n.ParseLocale(flag)
		if !ok {
			return i18n.Localizer{}, fmt.Errorf("unsupported locale %q (want one of ka, en, ru)", flag)
		}
		return cat.Localizer(l), nil
	}

	session, err := openSession(cfg, cat)
	if err != nil {
		return i18n.Localizer{}, err
	}
	defer session.Close()
	return session.Localizer(), nil
}
