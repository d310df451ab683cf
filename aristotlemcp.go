// Package aristotlemcp exposes the Aristotle theorem-proving service over
// the Model Context Protocol, and an embeddable API for hosts that want to
// submit and track proving projects without running the stdio server.
package aristotlemcp

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/localrivet/aristotlemcp/internal/aristotle"
	"github.com/localrivet/aristotlemcp/internal/config"
	"github.com/localrivet/aristotlemcp/internal/errortypes"
	"github.com/localrivet/aristotlemcp/internal/ledger"
	"github.com/localrivet/aristotlemcp/internal/server"
	"github.com/localrivet/aristotlemcp/internal/telemetry"
	"github.com/localrivet/aristotlemcp/internal/util"
)

// Config represents the configuration for the Aristotle gateway service.
type Config = config.Config

// Server represents the Aristotle gateway service.
type Server struct {
	config     *config.Config
	prover     aristotle.Prover
	ledger     ledger.Ledger
	metrics    *telemetry.MetricsCollector
	toolServer server.ProofToolServer
	logger     *slog.Logger // Logger for this Server instance
}

// ServerOptions defines the options for creating a new Server.
type ServerOptions struct {
	Config     *Config      // Pre-filled config. If nil, ConfigPath is used.
	ConfigPath string       // Path to config file. Used if Config is nil. If both are empty, DefaultConfig() is used.
	Logger     *slog.Logger // External logger. If nil, slog.Default() is used.
}

// NewServer creates a new Aristotle gateway Server with the given options.
// If opts.Config is provided, it will be used directly.
// Otherwise, if opts.ConfigPath is provided, configuration will be loaded from that path.
// If neither is provided, configuration is loaded from the default path.
// If opts.Logger is nil, slog.Default() will be used.
func NewServer(opts ServerOptions) (*Server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var cfg *Config
	var err error

	if opts.Config != nil {
		cfg = opts.Config
		logger.Info("Using provided Config object for server initialization")
	} else if opts.ConfigPath != "" {
		logger.Info("Loading configuration for server initialization", "path", opts.ConfigPath)
		cfg, err = config.LoadConfigWithPath(opts.ConfigPath)
		if err != nil {
			logger.Error("Failed to load configuration from path", "path", opts.ConfigPath, "error", err)
			return nil, errortypes.ConfigError(err, "Failed to load configuration from path: "+opts.ConfigPath)
		}
	} else {
		logger.Info("No Config object or ConfigPath provided, loading default configuration")
		cfg, err = config.LoadConfig()
		if err != nil {
			logger.Error("Failed to load default configuration", "error", err)
			return nil, errortypes.ConfigError(err, "Failed to load default configuration")
		}
	}

	// The API key is the one startup-fatal setting; everything else has a
	// workable default.
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		return nil, errortypes.ConfigError(err, "invalid configuration")
	}

	prover, ldg, metrics, err := CreateComponents(cfg, logger)
	if err != nil {
		// CreateComponents already logs the specific error
		logger.Error("Failed to create components during server initialization", "error", err)
		return nil, err
	}

	logger.Info("Initializing proof tool server component")
	mcpServer := server.NewProofToolServer(prover, ldg, metrics, server.Options{
		DefaultListLimit:  cfg.Listing.DefaultLimit,
		ResourceListLimit: cfg.Listing.ResourceLimit,
	})
	err = mcpServer.Initialize()
	if err != nil {
		logger.Error("Failed to initialize MCP proof tool server component", "error", err)
		return nil, errortypes.ConfigError(err, "Failed to initialize MCP proof tool server component")
	}

	logger.Info("Aristotle gateway server successfully initialized")
	return &Server{
		config:     cfg,
		prover:     prover,
		ledger:     ldg,
		metrics:    metrics,
		toolServer: mcpServer,
		logger:     logger,
	}, nil
}

// DefaultConfig returns the default configuration for the Aristotle
// gateway service. The API key still has to arrive via the environment.
func DefaultConfig() *Config {
	return config.NewConfig()
}

// CreateComponents creates and initializes the components of the gateway
// service without creating a server instance. This is useful for hosts
// that need direct access to the API client, ledger, and metrics.
func CreateComponents(cfg *Config, logger *slog.Logger) (*aristotle.Client, ledger.Ledger, *telemetry.MetricsCollector, error) {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("Initializing Aristotle API client", "base_url", cfg.Aristotle.BaseURL)
	prover := aristotle.NewClient(aristotle.ClientConfig{
		BaseURL: cfg.Aristotle.BaseURL,
		APIKey:  cfg.Aristotle.APIKey,
		Timeout: cfg.Timeout(),
	})

	logger.Info("Initializing SQLite submission ledger", "path", cfg.Ledger.SQLitePath)
	ldg := ledger.NewSQLiteLedger()
	if err := ldg.Initialize(cfg.Ledger.SQLitePath); err != nil {
		logger.Error("Failed to initialize SQLite submission ledger", "path", cfg.Ledger.SQLitePath, "error", err)
		return nil, nil, nil, errortypes.DatabaseError(err, "Failed to initialize SQLite submission ledger")
	}

	metrics := telemetry.NewMetricsCollector()

	logger.Info("Components successfully initialized")
	return prover, ldg, metrics, nil
}

// Start starts the Aristotle gateway service.
func (s *Server) Start() error {
	s.logger.Info("Starting Aristotle gateway service")
	return s.toolServer.Start()
}

// Stop stops the Aristotle gateway service.
func (s *Server) Stop() error {
	s.logger.Info("Stopping Aristotle gateway service")
	err := s.toolServer.Stop()
	if err != nil {
		s.logger.Error("Error stopping tool server", "error", err)
		return err
	}

	// Close the ledger
	s.logger.Info("Closing submission ledger")
	err = s.ledger.Close()
	if err != nil {
		s.logger.Error("Failed to close submission ledger", "error", err)
		return err
	}

	s.logger.Info("Aristotle gateway service stopped")
	return nil
}

// SubmitLeanCode submits Lean source directly and returns the project id.
func (s *Server) SubmitLeanCode(ctx context.Context, code string) (string, error) {
	req, err := aristotle.NewLeanRequest(code)
	if err != nil {
		return "", err
	}
	return s.submit(ctx, req)
}

// SubmitLeanFile reads a local Lean file and submits its content.
func (s *Server) SubmitLeanFile(ctx context.Context, path string) (string, error) {
	content, err := readFile(path)
	if err != nil {
		return "", err
	}

	req, err := aristotle.NewLeanRequest(content)
	if err != nil {
		return "", err
	}
	return s.submit(ctx, req.WithSource(filepath.Base(path)))
}

// SubmitInformalText submits natural-language mathematics directly,
// optionally with a formal context file.
func (s *Server) SubmitInformalText(ctx context.Context, text, formalContextPath string) (string, error) {
	var formalContext string
	if formalContextPath != "" {
		var err error
		formalContext, err = readFile(formalContextPath)
		if err != nil {
			return "", err
		}
	}

	req, err := aristotle.NewInformalRequest(text, formalContext)
	if err != nil {
		return "", err
	}
	return s.submit(ctx, req)
}

// SubmitInformalFile reads a local file of natural-language mathematics and
// submits its content, optionally with a formal context file.
func (s *Server) SubmitInformalFile(ctx context.Context, path, formalContextPath string) (string, error) {
	content, err := readFile(path)
	if err != nil {
		return "", err
	}

	var formalContext string
	if formalContextPath != "" {
		formalContext, err = readFile(formalContextPath)
		if err != nil {
			return "", err
		}
	}

	req, err := aristotle.NewInformalRequest(content, formalContext)
	if err != nil {
		return "", err
	}
	return s.submit(ctx, req.WithSource(filepath.Base(path)))
}

// ProjectStatus fetches the current status snapshot of a project.
func (s *Server) ProjectStatus(ctx context.Context, projectID string) (*aristotle.Project, error) {
	return s.prover.GetProject(ctx, projectID)
}

// Solution fetches the solution content of a completed project.
func (s *Server) Solution(ctx context.Context, projectID string) (string, error) {
	return s.prover.GetSolution(ctx, projectID)
}

// RecentProjects lists the most recently created projects, newest first.
func (s *Server) RecentProjects(ctx context.Context, limit int) ([]aristotle.ProjectSummary, error) {
	if limit <= 0 {
		limit = s.config.Listing.DefaultLimit
	}
	return s.prover.ListProjects(ctx, limit)
}

// LocalSubmissions returns the most recent submissions made through this
// gateway, newest first. This reads only the local ledger and never
// touches the remote service.
func (s *Server) LocalSubmissions(limit int) ([]ledger.SubmissionRecord, error) {
	if limit <= 0 {
		limit = s.config.Listing.DefaultLimit
	}
	return s.ledger.Recent(limit)
}

// MetricsReport renders the collected gateway metrics.
func (s *Server) MetricsReport() string {
	return s.metrics.GetReport()
}

// GetLedger returns the submission ledger instance used by the server.
func (s *Server) GetLedger() ledger.Ledger {
	return s.ledger
}

// submit sends the request upstream and records the accepted submission.
func (s *Server) submit(ctx context.Context, req aristotle.ProofRequest) (string, error) {
	s.logger.Debug("Submitting proof request", "input_type", string(req.InputType()))
	projectID, err := s.prover.CreateProject(ctx, req)
	if err != nil {
		s.logger.Error("Failed to submit proof request", "error", err)
		return "", err
	}

	rec := ledger.SubmissionRecord{
		ProjectID:   projectID,
		InputType:   string(req.InputType()),
		SourceName:  req.SourceName(),
		Fingerprint: util.ContentFingerprint(req.Content()),
		SubmittedAt: time.Now(),
	}
	if err := s.ledger.Record(rec); err != nil {
		// The remote submission already succeeded; losing the local
		// annotation is not worth failing the call.
		s.logger.Error("Failed to record submission", "project_id", projectID, "error", err)
	}

	s.logger.Info("Successfully submitted proof request", "project_id", projectID)
	return projectID, nil
}

// readFile loads a local input file with path context on failure.
func readFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errortypes.FileError(err, "file not found", path)
		}
		return "", errortypes.FileError(err, "failed to read file", path)
	}
	return string(content), nil
}
