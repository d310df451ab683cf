package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/localrivet/aristotlemcp/internal/aristotle"
	"github.com/localrivet/aristotlemcp/internal/config"
	"github.com/localrivet/aristotlemcp/internal/errortypes"
	"github.com/localrivet/aristotlemcp/internal/ledger"
	"github.com/localrivet/aristotlemcp/internal/server"
	"github.com/localrivet/aristotlemcp/internal/telemetry"
)

func main() {
	configPath := flag.String("config", config.DefaultConfigFilename, "path to the gateway config file")
	flag.Parse()

	// Bootstrap logging before anything else; stdout belongs to the MCP
	// transport, so all logs go to stderr.
	appLogger := setupLogging()

	appLogger.Info("Aristotle MCP Server - Starting...")

	// Load configuration
	cfg, err := config.LoadConfigWithPath(*configPath)
	if err != nil {
		err = errortypes.ConfigError(err, "Failed to load configuration")
		errortypes.LogError(appLogger, err)
		os.Exit(1)
	}

	// Reconfigure logging from config
	appLogger = config.NewSlogLogger(cfg)
	slog.SetDefault(appLogger)
	appLogger.Info("Log level set", "level", cfg.Logging.Level, "format", cfg.Logging.Format)

	// Missing credentials abort before the server accepts a single call.
	if err := cfg.Validate(); err != nil {
		err = errortypes.ConfigError(err, "Invalid configuration")
		errortypes.LogError(appLogger, err)
		os.Exit(1)
	}

	// Initialize the Aristotle API client
	prover := aristotle.NewClient(aristotle.ClientConfig{
		BaseURL: cfg.Aristotle.BaseURL,
		APIKey:  cfg.Aristotle.APIKey,
		Timeout: cfg.Timeout(),
	})
	appLogger.Info("Aristotle API client initialized")

	// Initialize the submission ledger
	ldg := ledger.NewSQLiteLedger()
	if err := ldg.Initialize(cfg.Ledger.SQLitePath); err != nil {
		err = errortypes.DatabaseError(err, "Failed to initialize SQLite submission ledger")
		errortypes.LogError(appLogger, err)
		os.Exit(1)
	}
	defer ldg.Close()
	appLogger.Info("SQLite submission ledger initialized", "path", cfg.Ledger.SQLitePath)

	// Initialize the metrics collector
	metrics := telemetry.NewMetricsCollector()

	// Initialize the MCP server
	srv := server.NewProofToolServer(prover, ldg, metrics, server.Options{
		DefaultListLimit:  cfg.Listing.DefaultLimit,
		ResourceListLimit: cfg.Listing.ResourceLimit,
	})
	if err := srv.Initialize(); err != nil {
		err = errortypes.ConfigError(err, "Failed to initialize MCP server")
		errortypes.LogError(appLogger, err)
		os.Exit(1)
	}
	appLogger.Info("MCP server initialized")

	// Handle graceful shutdown
	setupSignalHandler(ldg, appLogger)

	// Start the MCP server (this will block until server is terminated)
	appLogger.Info("Starting MCP server...")
	if err := srv.Start(); err != nil {
		err = errortypes.InternalError(err, "MCP server failed")
		errortypes.LogError(appLogger, err)
		os.Exit(1)
	}
}

// setupLogging configures and returns the bootstrap logger
func setupLogging() *slog.Logger {
	level := slog.LevelInfo

	// Try to get log level from environment variable
	switch os.Getenv("LOG_LEVEL") {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	return logger
}

// setupSignalHandler sets up a signal handler for graceful shutdown.
func setupSignalHandler(ldg ledger.Ledger, log *slog.Logger) {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Info("Received shutdown signal, terminating gracefully...")

		// Close the ledger to ensure all records are flushed
		if err := ldg.Close(); err != nil {
			errortypes.LogError(log, errortypes.DatabaseError(err, "Error closing ledger during shutdown"))
		} else {
			log.Info("Ledger closed successfully")
		}

		log.Info("Shutdown complete")
		os.Exit(0)
	}()
}
