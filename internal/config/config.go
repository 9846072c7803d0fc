// =============================================================================
// Graduate Roster - Configuration Module
// =============================================================================
//
// This module loads the application configuration.
//
// SOURCES (later wins):
//   1. Built-in defaults
//   2. The YAML config file (optional; a missing file is not an error)
//   3. A .env file in the working directory (optional)
//   4. Process environment variables
//
// The feed URL is deliberately not validated here. A missing URL surfaces as
// a configuration error when the feed is fetched, so commands that never
// fetch (locale, version) work without one.
//
// =============================================================================

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// ENVIRONMENT VARIABLES
// =============================================================================

const (
	// EnvFeedURL overrides feed.url.
	EnvFeedURL = "PUBLIC_GRADUATES_CSV_URL"

	// EnvLocaleFile overrides locale.store_file.
	EnvLocaleFile = "ROSTER_LOCALE_FILE"

	// EnvServerAddr overrides server.addr.
	EnvServerAddr = "ROSTER_SERVER_ADDR"

	// EnvLogLevel overrides log_level.
	EnvLogLevel = "ROSTER_LOG_LEVEL"
)

// =============================================================================
// CONFIGURATION STRUCTURE
// =============================================================================

// Config holds the application configuration.
type Config struct {
	Feed   FeedConfig   `yaml:"feed"`
	Locale LocaleConfig `yaml:"locale"`
	Server ServerConfig `yaml:"server"`
	Export ExportConfig `yaml:"export"`

	// LogLevel controls the verbosity of logging.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`
}

// FeedConfig locates the graduates CSV feed.
type FeedConfig struct {
	// URL of the CSV document. Required for any command that fetches.
	URL string `yaml:"url"`

	// Timeout bounds a single download.
	// Default: 15s
	Timeout time.Duration `yaml:"timeout"`

	// UserAgent is sent with feed requests.
	// Default: "graduate-roster"
	UserAgent string `yaml:"user_agent"`
}

// LocaleConfig controls locale detection and persistence.
type LocaleConfig struct {
	// Unmatched is used when the environment language is not supported.
	// Default: "en"
	Unmatched string `yaml:"unmatched"`

	// NoEnvironment is used when no environment language is known.
	// Default: "ka"
	NoEnvironment string `yaml:"no_environment"`

	// StoreFile is where the selected locale is persisted.
	// Default: <user config dir>/graduate-roster/preferences.yaml
	StoreFile string `yaml:"store_file"`

	// Dir optionally replaces the built-in dictionaries with
	// <dir>/{ka,en,ru}.json (or .yaml).
	Dir string `yaml:"dir"`
}

// ServerConfig configures `roster serve`.
type ServerConfig struct {
	// Addr is the listen address.
	// Default: ":8080"
	Addr string `yaml:"addr"`

	// APILimit is how many records /api/graduates returns by default.
	// Default: 10
	APILimit int `yaml:"api_limit"`

	// ShutdownTimeout bounds graceful shutdown.
	// Default: 10s
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

// ExportConfig configures `roster export`.
type ExportConfig struct {
	// OutputDir receives exported files.
	// Default: "./output"
	OutputDir string `yaml:"output_dir"`

	// FileNameFormat defines the name of exported files.
	// Placeholders:
	//   {uuid}      - A random UUID
	//   {timestamp} - Current timestamp (YYYYMMDD_HHMMSS)
	//   {locale}    - The locale used for titles
	//   {ext}       - The export format's file extension
	// Default: "graduates_{locale}_{timestamp}.{ext}"
	FileNameFormat string `yaml:"file_name_format"`

	// TimestampSubdirs writes exports into YYYY/MM/DD subdirectories of
	// OutputDir.
	// Default: false
	TimestampSubdirs bool `yaml:"timestamp_subdirs"`
}

// =============================================================================
// CONFIGURATION LOADING FUNCTIONS
// =============================================================================

// Load reads the configuration.
//
// PARAMETERS:
//   - configPath: Path to the YAML config file. An empty path or a missing
//     file means defaults only.
//
// RETURNS:
//   - The configuration with defaults and environment overrides applied.
//   - An error if the file exists but cannot be read or parsed.
func Load(configPath string) (*Config, error) {
	var config Config

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	// A missing .env file is fine.
	_ = godotenv.Load()

	applyEnv(&config, os.Getenv)
	applyDefaults(&config)

	return &config, nil
}

// applyEnv copies non-empty environment overrides into config.
func applyEnv(config *Config, getenv func(string) string) {
	if v := getenv(EnvFeedURL); v != "" {
		config.Feed.URL = v
	}
	if v := getenv(EnvLocaleFile); v != "" {
		config.Locale.StoreFile = v
	}
	if v := getenv(EnvServerAddr); v != "" {
		config.Server.Addr = v
	}
	if v := getenv(EnvLogLevel); v != "" {
		config.LogLevel = v
	}
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(config *Config) {
	if config.Feed.Timeout == 0 {
		config.Feed.Timeout = 15 * time.Second
	}
	if config.Feed.UserAgent == "" {
		config.Feed.UserAgent = "graduate-roster"
	}
	if config.Locale.Unmatched == "" {
		config.Locale.Unmatched = "en"
	}
	if config.Locale.NoEnvironment == "" {
		config.Locale.NoEnvironment = "ka"
	}
	if config.Locale.StoreFile == "" {
		config.Locale.StoreFile = defaultStoreFile()
	}
	if config.Server.Addr == "" {
		config.Server.Addr = ":8080"
	}
	if config.Server.APILimit == 0 {
		config.Server.APILimit = 10
	}
	if config.Server.ShutdownTimeout == 0 {
		config.Server.ShutdownTimeout = 10 * time.Second
	}
	if config.Export.OutputDir == "" {
		config.Export.OutputDir = "./output"
	}
	if config.Export.FileNameFormat == "" {
		config.Export.FileNameFormat = "graduates_{locale}_{timestamp}.{ext}"
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
}

// defaultStoreFile places preferences in the user's config directory, or the
// working directory when that is unknown.
func defaultStoreFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".roster-preferences.yaml"
	}
	return filepath.Join(dir, "graduate-roster", "preferences.yaml")
}
