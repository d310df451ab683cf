package server

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/localrivet/gomcp/server"

	"github.com/localrivet/aristotlemcp/internal/aristotle"
	"github.com/localrivet/aristotlemcp/internal/errortypes"
	"github.com/localrivet/aristotlemcp/internal/ledger"
	"github.com/localrivet/aristotlemcp/internal/telemetry"
	"github.com/localrivet/aristotlemcp/internal/tools"
	"github.com/localrivet/aristotlemcp/internal/util"
)

// Common server error types
var (
	ErrServerNotInitialized = errors.New("server not initialized")
	ErrMissingDependencies  = errors.New("one or more required dependencies are nil")
)

// Options tunes listing behavior; zero values fall back to the
// tools package defaults.
type Options struct {
	DefaultListLimit  int
	ResourceListLimit int
}

// MCPProofToolServer implements the ProofToolServer interface for handling
// MCP tool calls that submit and track Aristotle proving projects.
type MCPProofToolServer struct {
	prover            aristotle.Prover
	ledger            ledger.Ledger
	metrics           *telemetry.MetricsCollector
	mcpServer         server.Server
	defaultListLimit  int
	resourceListLimit int
}

// NewProofToolServer creates a new MCPProofToolServer instance.
func NewProofToolServer(prover aristotle.Prover, ldg ledger.Ledger, metrics *telemetry.MetricsCollector, opts Options) *MCPProofToolServer {
	defaultLimit := opts.DefaultListLimit
	if defaultLimit <= 0 {
		defaultLimit = tools.DefaultListLimit
	}
	resourceLimit := opts.ResourceListLimit
	if resourceLimit <= 0 {
		resourceLimit = tools.ResourceListLimit
	}

	return &MCPProofToolServer{
		prover:            prover,
		ledger:            ldg,
		metrics:           metrics,
		defaultListLimit:  defaultLimit,
		resourceListLimit: resourceLimit,
	}
}

// Initialize initializes the server with dependencies and configurations.
func (s *MCPProofToolServer) Initialize() error {
	slog.Info("Initializing MCP Proof Tool Server")

	if s.prover == nil || s.ledger == nil || s.metrics == nil {
		return errortypes.ConfigError(ErrMissingDependencies, "server initialization failed")
	}

	// Create the MCP server
	srv := server.NewServer("aristotle-mcp")

	// Register prove_lean_file tool
	srv = srv.Tool(tools.ToolProveLeanFile, "Submit a local Lean file to Aristotle to fill in 'sorry' placeholders",
		s.handleProveLeanFile)

	// Register prove_informal tool
	srv = srv.Tool(tools.ToolProveInformal, "Submit a local file of natural-language mathematics to be formalized and proved",
		s.handleProveInformal)

	// Register prove_lean_code tool
	srv = srv.Tool(tools.ToolProveLeanCode, "Submit Lean code directly to Aristotle to fill in 'sorry' placeholders",
		s.handleProveLeanCode)

	// Register prove_informal_text tool
	srv = srv.Tool(tools.ToolProveInformalText, "Submit natural-language mathematics directly to be formalized and proved",
		s.handleProveInformalText)

	// Register get_project_status tool
	srv = srv.Tool(tools.ToolGetProjectStatus, "Check the status of an Aristotle project, optionally saving its solution to disk",
		s.handleGetProjectStatus)

	// Register list_recent_projects tool
	srv = srv.Tool(tools.ToolListRecentProjects, "List the most recent projects submitted to Aristotle",
		s.handleListRecentProjects)

	// Register read-only resources
	srv = srv.Resource(tools.ResourceProjects, "A live list of the user's recent projects",
		s.handleProjectsResource)
	srv = srv.Resource(tools.ResourceProjectDetail, "The status and result of a particular project",
		s.handleProjectDetailResource)

	s.mcpServer = srv
	slog.Info("MCP Proof Tool Server initialized successfully", "tool_count", 6, "resource_count", 2)
	return nil
}

// Start starts the MCP server on the specified transport.
func (s *MCPProofToolServer) Start() error {
	if s.mcpServer == nil {
		return errortypes.ConfigError(ErrServerNotInitialized, "cannot start server")
	}

	slog.Info("Starting MCP Proof Tool Server")

	// Start the server using stdio transport
	stdioServer := s.mcpServer.AsStdio()
	return stdioServer.Run()
}

// Stop gracefully shuts down the MCP server.
func (s *MCPProofToolServer) Stop() error {
	slog.Info("Stopping MCP Proof Tool Server")
	// The server will exit when stdin is closed
	return nil
}

// readProofFile loads the content of a local proof input file with the
// error taxonomy the tools promise: FileNotFound before ReadError, and
// neither ever reaches the network layer.
func readProofFile(path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errortypes.FileError(err, "file not found", path)
		}
		return "", errortypes.FileError(err, "failed to read file", path)
	}
	return string(content), nil
}

// submit sends a validated proof request upstream and records the accepted
// submission in the local ledger. Ledger failures are logged, never
// surfaced: the remote submission already succeeded.
func (s *MCPProofToolServer) submit(req aristotle.ProofRequest) (string, error) {
	start := time.Now()
	projectID, err := s.prover.CreateProject(context.Background(), req)
	s.metrics.RecordTimer(telemetry.MetricUpstreamTime, time.Since(start))

	if err != nil {
		s.metrics.IncrementCounter(telemetry.MetricUpstreamFailure, 1)
		return "", err
	}

	s.metrics.IncrementCounter(telemetry.MetricUpstreamSuccess, 1)
	s.metrics.RecordTimestamp(telemetry.MetricLastSubmission)
	switch req.InputType() {
	case aristotle.InputTypeFormalLean:
		s.metrics.IncrementCounter(telemetry.MetricSubmissionsLean, 1)
	case aristotle.InputTypeInformal:
		s.metrics.IncrementCounter(telemetry.MetricSubmissionsInformal, 1)
	}

	rec := ledger.SubmissionRecord{
		ProjectID:   projectID,
		InputType:   string(req.InputType()),
		SourceName:  req.SourceName(),
		Fingerprint: util.ContentFingerprint(req.Content()),
		SubmittedAt: time.Now(),
	}
	if err := s.ledger.Record(rec); err != nil {
		s.metrics.IncrementCounter(telemetry.MetricLedgerFailures, 1)
		errortypes.LogError(nil, errortypes.DatabaseError(err, "failed to record submission").
			WithField("project_id", projectID))
	}

	return projectID, nil
}

// handleProveLeanFile handles the prove_lean_file MCP tool call.
func (s *MCPProofToolServer) handleProveLeanFile(ctx *server.Context, req tools.ProveLeanFileRequest) (tools.SubmitResponse, error) {
	slog.Info("Processing prove_lean_file request", "file_path", req.FilePath)

	response := tools.SubmitResponse{
		Status: "success",
	}

	content, err := readProofFile(req.FilePath)
	if err != nil {
		errortypes.LogError(nil, err)
		response.Status = "error"
		response.Error = err.Error()
		return response, nil
	}

	proofReq, err := aristotle.NewLeanRequest(content)
	if err != nil {
		errortypes.LogError(nil, err)
		response.Status = "error"
		response.Error = err.Error()
		return response, nil
	}

	projectID, err := s.submit(proofReq.WithSource(filepath.Base(req.FilePath)))
	if err != nil {
		errortypes.LogError(nil, err)
		response.Status = "error"
		response.Error = err.Error()
		return response, nil
	}

	response.ProjectID = projectID
	slog.Info("Successfully submitted Lean file", "project_id", projectID)
	return response, nil
}

// handleProveInformal handles the prove_informal MCP tool call.
func (s *MCPProofToolServer) handleProveInformal(ctx *server.Context, req tools.ProveInformalRequest) (tools.SubmitResponse, error) {
	slog.Info("Processing prove_informal request", "file_path", req.FilePath, "formal_context_path", req.FormalContextPath)

	response := tools.SubmitResponse{
		Status: "success",
	}

	content, err := readProofFile(req.FilePath)
	if err != nil {
		errortypes.LogError(nil, err)
		response.Status = "error"
		response.Error = err.Error()
		return response, nil
	}

	// The context file is optional, but a path that does not resolve is
	// still an error, not an ignored argument.
	var formalContext string
	if req.FormalContextPath != "" {
		formalContext, err = readProofFile(req.FormalContextPath)
		if err != nil {
			errortypes.LogError(nil, err)
			response.Status = "error"
			response.Error = err.Error()
			return response, nil
		}
	}

	proofReq, err := aristotle.NewInformalRequest(content, formalContext)
	if err != nil {
		errortypes.LogError(nil, err)
		response.Status = "error"
		response.Error = err.Error()
		return response, nil
	}

	projectID, err := s.submit(proofReq.WithSource(filepath.Base(req.FilePath)))
	if err != nil {
		errortypes.LogError(nil, err)
		response.Status = "error"
		response.Error = err.Error()
		return response, nil
	}

	response.ProjectID = projectID
	slog.Info("Successfully submitted informal file", "project_id", projectID)
	return response, nil
}

// handleProveLeanCode handles the prove_lean_code MCP tool call.
func (s *MCPProofToolServer) handleProveLeanCode(ctx *server.Context, req tools.ProveLeanCodeRequest) (tools.SubmitResponse, error) {
	slog.Info("Processing prove_lean_code request", "code_length", len(req.LeanCode))

	response := tools.SubmitResponse{
		Status: "success",
	}

	proofReq, err := aristotle.NewLeanRequest(req.LeanCode)
	if err != nil {
		errortypes.LogError(nil, err)
		response.Status = "error"
		response.Error = err.Error()
		return response, nil
	}

	projectID, err := s.submit(proofReq)
	if err != nil {
		errortypes.LogError(nil, err)
		response.Status = "error"
		response.Error = err.Error()
		return response, nil
	}

	response.ProjectID = projectID
	slog.Info("Successfully submitted Lean code", "project_id", projectID)
	return response, nil
}

// handleProveInformalText handles the prove_informal_text MCP tool call.
func (s *MCPProofToolServer) handleProveInformalText(ctx *server.Context, req tools.ProveInformalTextRequest) (tools.SubmitResponse, error) {
	slog.Info("Processing prove_informal_text request", "text_length", len(req.Text))

	response := tools.SubmitResponse{
		Status: "success",
	}

	var formalContext string
	if req.FormalContextPath != "" {
		var err error
		formalContext, err = readProofFile(req.FormalContextPath)
		if err != nil {
			errortypes.LogError(nil, err)
			response.Status = "error"
			response.Error = err.Error()
			return response, nil
		}
	}

	proofReq, err := aristotle.NewInformalRequest(req.Text, formalContext)
	if err != nil {
		errortypes.LogError(nil, err)
		response.Status = "error"
		response.Error = err.Error()
		return response, nil
	}

	projectID, err := s.submit(proofReq)
	if err != nil {
		errortypes.LogError(nil, err)
		response.Status = "error"
		response.Error = err.Error()
		return response, nil
	}

	response.ProjectID = projectID
	slog.Info("Successfully submitted informal text", "project_id", projectID)
	return response, nil
}

// handleGetProjectStatus handles the get_project_status MCP tool call.
func (s *MCPProofToolServer) handleGetProjectStatus(ctx *server.Context, req tools.GetProjectStatusRequest) (tools.GetProjectStatusResponse, error) {
	slog.Info("Processing get_project_status request", "project_id", req.ProjectID, "save_solution_to", req.SaveSolutionTo)

	response := tools.GetProjectStatusResponse{
		Status: "success",
	}

	if req.ProjectID == "" {
		err := errortypes.ValidationError(errors.New("project_id cannot be empty"), "invalid get_project_status request")
		errortypes.LogError(nil, err)
		response.Status = "error"
		response.Error = err.Error()
		return response, nil
	}

	s.metrics.IncrementCounter(telemetry.MetricStatusQueries, 1)

	status, err := s.projectStatus(req.ProjectID)
	if err != nil {
		errortypes.LogError(nil, err)
		response.Status = "error"
		response.Error = err.Error()
		return response, nil
	}

	// A pending or running project never triggers a file write; presence of
	// solution content is the only condition that does.
	if req.SaveSolutionTo != "" && status.Solution != "" {
		savedTo, err := writeSolution(req.SaveSolutionTo, status.Solution)
		if err != nil {
			errortypes.LogError(nil, err)
			response.Status = "error"
			response.Error = err.Error()
			return response, nil
		}
		status.SavedTo = savedTo
		s.metrics.IncrementCounter(telemetry.MetricSolutionsPersisted, 1)
	}

	response.Project = status
	slog.Info("Successfully fetched project status", "project_id", status.ProjectID, "project_status", status.Status)
	return response, nil
}

// projectStatus fetches one project snapshot, attaches the ledger
// annotation, and pulls solution content for completed projects. A failed
// solution fetch degrades to a solution_error field rather than failing
// the whole status call.
func (s *MCPProofToolServer) projectStatus(projectID string) (*tools.ProjectStatus, error) {
	start := time.Now()
	project, err := s.prover.GetProject(context.Background(), projectID)
	s.metrics.RecordTimer(telemetry.MetricUpstreamTime, time.Since(start))
	if err != nil {
		s.metrics.IncrementCounter(telemetry.MetricUpstreamFailure, 1)
		return nil, err
	}
	s.metrics.IncrementCounter(telemetry.MetricUpstreamSuccess, 1)

	status := &tools.ProjectStatus{
		ProjectID:     project.ProjectID,
		Status:        project.Status,
		CreatedAt:     project.CreatedAt,
		LastUpdatedAt: project.LastUpdatedAt,
		FileName:      project.FileName,
		Description:   project.Description,
	}

	local, err := s.ledger.Contains(project.ProjectID)
	if err != nil {
		s.metrics.IncrementCounter(telemetry.MetricLedgerFailures, 1)
		errortypes.LogError(nil, errortypes.DatabaseError(err, "failed to query submission ledger").
			WithField("project_id", project.ProjectID))
	} else {
		status.LocallySubmitted = local
	}

	if project.Status == aristotle.StatusComplete {
		solution, err := s.prover.GetSolution(context.Background(), projectID)
		if err != nil {
			status.SolutionError = err.Error()
		} else {
			status.Solution = solution
			s.metrics.IncrementCounter(telemetry.MetricSolutionDownloads, 1)
		}
	}

	return status, nil
}

// writeSolution persists solution content and returns the absolute path.
func writeSolution(path, solution string) (string, error) {
	if err := os.WriteFile(path, []byte(solution), 0644); err != nil {
		return "", errortypes.FileError(err, "failed to write solution", path)
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		// The write succeeded; fall back to the path as given.
		return path, nil
	}
	return absPath, nil
}

// handleListRecentProjects handles the list_recent_projects MCP tool call.
func (s *MCPProofToolServer) handleListRecentProjects(ctx *server.Context, req tools.ListRecentProjectsRequest) (tools.ListRecentProjectsResponse, error) {
	slog.Info("Processing list_recent_projects request", "limit", req.Limit, "save_to", req.SaveTo)

	response := tools.ListRecentProjectsResponse{
		Status:   "success",
		Projects: []tools.ProjectSummary{},
	}

	// Set default limit if not specified
	limit := req.Limit
	if limit <= 0 {
		limit = s.defaultListLimit
		slog.Debug("Using default limit for list_recent_projects", "limit", limit)
	}

	s.metrics.IncrementCounter(telemetry.MetricListRequests, 1)

	summaries, err := s.listProjects(limit)
	if err != nil {
		errortypes.LogError(nil, err)
		response.Status = "error"
		response.Error = err.Error()
		return response, nil
	}
	response.Projects = summaries

	if req.SaveTo != "" {
		if err := writeListing(req.SaveTo, summaries); err != nil {
			errortypes.LogError(nil, err)
			response.Status = "error"
			response.Error = err.Error()
			return response, nil
		}
		response.SavedTo = req.SaveTo
	}

	slog.Info("Successfully listed recent projects", "count", len(summaries))
	return response, nil
}

// listProjects fetches the remote listing and annotates each entry with
// whether it was submitted through this gateway. Ordering is passed
// through exactly as the service returned it.
func (s *MCPProofToolServer) listProjects(limit int) ([]tools.ProjectSummary, error) {
	start := time.Now()
	remote, err := s.prover.ListProjects(context.Background(), limit)
	s.metrics.RecordTimer(telemetry.MetricUpstreamTime, time.Since(start))
	if err != nil {
		s.metrics.IncrementCounter(telemetry.MetricUpstreamFailure, 1)
		return nil, err
	}
	s.metrics.IncrementCounter(telemetry.MetricUpstreamSuccess, 1)

	summaries := make([]tools.ProjectSummary, 0, len(remote))
	for _, p := range remote {
		entry := tools.ProjectSummary{
			ProjectID:   p.ProjectID,
			Status:      p.Status,
			CreatedAt:   p.CreatedAt,
			FileName:    p.FileName,
			Description: p.Description,
		}

		local, err := s.ledger.Contains(p.ProjectID)
		if err != nil {
			s.metrics.IncrementCounter(telemetry.MetricLedgerFailures, 1)
			errortypes.LogError(nil, errortypes.DatabaseError(err, "failed to query submission ledger").
				WithField("project_id", p.ProjectID))
		} else {
			entry.LocallySubmitted = local
		}

		summaries = append(summaries, entry)
	}

	return summaries, nil
}
