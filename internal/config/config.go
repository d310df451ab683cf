// Package config loads and validates the Aristotle gateway configuration.
package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/localrivet/configurator"
)

// Global configuration instance
var (
	// Global is the global configuration instance
	Global *Config
	// initOnce ensures initialization happens only once
	initOnce sync.Once
)

// InitGlobal initializes the global configuration
func InitGlobal(configPath string) (*Config, error) {
	var err error
	initOnce.Do(func() {
		Global, err = LoadConfigWithPath(configPath)
	})
	return Global, err
}

// Config represents the Aristotle gateway configuration
type Config struct {
	// Aristotle contains settings for the remote proving API.
	Aristotle struct {
		// BaseURL is the API endpoint. Empty means the production endpoint.
		BaseURL string `json:"base_url" env:"BASE_URL"`

		// APIKey authenticates against the API. It is environment-only and
		// never written back to a config file.
		APIKey string `json:"-" env:"API_KEY"`

		// TimeoutSeconds bounds a single API round trip.
		TimeoutSeconds int `json:"timeout_seconds" env:"TIMEOUT_SECONDS" validate:"min:1"`
	} `json:"aristotle"`

	// Ledger contains storage-related configuration.
	Ledger struct {
		// SQLitePath is the path to the submission ledger database file.
		SQLitePath string `json:"sqlite_path" env:"SQLITE_PATH" validate:"required"`
	} `json:"ledger"`

	// Listing contains project-listing configuration.
	Listing struct {
		// DefaultLimit is the listing size when a tool call gives none.
		DefaultLimit int `json:"default_limit" env:"LIST_DEFAULT_LIMIT" validate:"min:1"`

		// ResourceLimit is the listing size of the projects resource.
		ResourceLimit int `json:"resource_limit" env:"LIST_RESOURCE_LIMIT" validate:"min:1"`
	} `json:"listing"`

	// Logging contains logging-related configuration.
	Logging struct {
		// Level is the minimum log level to display ("debug", "info", "warn", "error").
		Level string `json:"level" env:"LOG_LEVEL" validate:"required"`

		// Format is the log format to use ("text", "json").
		Format string `json:"format" env:"LOG_FORMAT"`
	} `json:"logging"`

	// Internal state (not saved to config file)
	configPath     string       `json:"-"`
	mutex          sync.RWMutex `json:"-"`
	lastModifiedAt time.Time    `json:"-"`
}

// Default configuration values
const (
	DefaultConfigFilename = ".aristotlemcpconfig"
	DefaultSQLitePath     = ".aristotlemcp.db"
	DefaultTimeoutSecs    = 60
	DefaultListLimit      = 10
	DefaultResourceLimit  = 20
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"

	// EnvPrefix namespaces all environment overrides, e.g. ARISTOTLE_API_KEY.
	EnvPrefix = "ARISTOTLE"
)

// NewConfig creates a new Config instance with default values
func NewConfig() *Config {
	config := &Config{}
	config.Aristotle.TimeoutSeconds = DefaultTimeoutSecs
	config.Ledger.SQLitePath = DefaultSQLitePath
	config.Listing.DefaultLimit = DefaultListLimit
	config.Listing.ResourceLimit = DefaultResourceLimit
	config.Logging.Level = DefaultLogLevel
	config.Logging.Format = DefaultLogFormat
	return config
}

// LoadConfig loads the configuration from the default path
func LoadConfig() (*Config, error) {
	return LoadConfigWithPath(DefaultConfigFilename)
}

// LoadConfigWithPath loads the configuration from a specific path.
// The config file is optional; the environment is always applied so the
// API key can arrive without any file on disk.
func LoadConfigWithPath(configPath string) (*Config, error) {
	// Create a default logger for configuration loading
	stdLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Create default configuration
	cfg := NewConfig()

	// Try to find config file if path is default
	if configPath == DefaultConfigFilename {
		foundPath, err := configurator.FindConfigFile(configPath)
		if err == nil {
			configPath = foundPath
			stdLogger.Debug("Found config file at " + foundPath)
		}
	}

	// Create configurator instance
	config := configurator.New(stdLogger).
		WithProvider(configurator.NewDefaultProvider())

	if _, err := os.Stat(configPath); err == nil {
		stdLogger.Info("Loading configuration", "path", configPath)
		config = config.WithProvider(configurator.NewFileProvider(configPath))
	} else {
		stdLogger.Info("Config file not found, using defaults and environment", "path", configPath)
	}

	config = config.
		WithProvider(configurator.NewEnvProvider(EnvPrefix)).
		WithValidator(configurator.NewDefaultValidator())

	// Load configuration
	ctx := context.Background()
	if err := config.Load(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Store the config path for future operations
	cfg.configPath = configPath
	cfg.lastModifiedAt = time.Now()

	return cfg, nil
}

// Validate checks the startup-fatal invariants. A missing API key aborts
// before the server accepts any call; everything else has a default.
func (c *Config) Validate() error {
	if c.Aristotle.APIKey == "" {
		return errors.New("missing Aristotle API key: set " + EnvPrefix + "_API_KEY")
	}
	return nil
}

// Timeout returns the configured API timeout as a duration.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.Aristotle.TimeoutSeconds) * time.Second
}

// SaveToFile saves the configuration to the specified file
func (c *Config) SaveToFile(path string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	// Create directory if needed
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	// Save using configurator's SaveToFile function
	if err := configurator.SaveToFile(c, path, configurator.FormatJSON); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	// Update internal state
	c.configPath = path
	c.lastModifiedAt = time.Now()

	return nil
}

// Save saves the configuration to the last used file path
func (c *Config) Save() error {
	if c.configPath == "" {
		c.configPath = DefaultConfigFilename
	}
	return c.SaveToFile(c.configPath)
}

// GetConfigPath returns the path of the currently loaded configuration file
func (c *Config) GetConfigPath() string {
	return c.configPath
}

// NewSlogLogger creates a slog.Logger on stderr based on the configuration.
// Stdout is reserved for the MCP stdio transport.
func NewSlogLogger(cfg *Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}
