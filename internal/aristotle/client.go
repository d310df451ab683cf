package aristotle

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/localrivet/aristotlemcp/internal/errortypes"
)

const (
	// DefaultBaseURL is the production Aristotle API endpoint.
	DefaultBaseURL = "https://api.aristotle.harmonic.fun"

	// DefaultTimeout bounds a single API round trip.
	DefaultTimeout = 60 * time.Second

	projectsPath = "/api/v1/projects"
)

// ClientConfig holds the settings needed to talk to the Aristotle API.
type ClientConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// Client is the HTTP client for the Aristotle API. It makes exactly one
// attempt per call; retry policy belongs to the caller.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new Aristotle API client.
func NewClient(config ClientConfig) *Client {
	baseURL := strings.TrimRight(config.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	timeout := config.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &Client{
		baseURL: baseURL,
		apiKey:  config.APIKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// createProjectRequest is the wire shape for project submission.
type createProjectRequest struct {
	InputType          InputType `json:"input_type"`
	InputContent       string    `json:"input_content"`
	FormalInputContext string    `json:"formal_input_context,omitempty"`
	FileName           string    `json:"file_name,omitempty"`
}

// createProjectResponse is the wire shape for a submission response.
type createProjectResponse struct {
	ID string `json:"id"`
}

// solutionResponse is the wire shape for a solution fetch.
type solutionResponse struct {
	Solution string `json:"solution"`
}

// listProjectsResponse is the wire shape for a project listing.
type listProjectsResponse struct {
	Projects []ProjectSummary `json:"projects"`
}

// apiError is the error envelope the API uses for non-2xx responses.
type apiError struct {
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// CreateProject submits a proof request and returns the project id issued
// by the service, unmodified.
func (c *Client) CreateProject(ctx context.Context, req ProofRequest) (string, error) {
	body := createProjectRequest{
		InputType:          req.InputType(),
		InputContent:       req.Content(),
		FormalInputContext: req.FormalContext(),
		FileName:           req.SourceName(),
	}

	var resp createProjectResponse
	if err := c.do(ctx, http.MethodPost, projectsPath, body, &resp); err != nil {
		return "", err
	}

	if resp.ID == "" {
		return "", errortypes.UpstreamError(
			fmt.Errorf("submission response missing project id"),
			"Aristotle API returned no project id")
	}

	return resp.ID, nil
}

// GetProject fetches the current status snapshot of a project.
func (c *Client) GetProject(ctx context.Context, projectID string) (*Project, error) {
	var project Project
	path := projectsPath + "/" + projectID
	if err := c.do(ctx, http.MethodGet, path, nil, &project); err != nil {
		return nil, err
	}
	return &project, nil
}

// GetSolution fetches the solution content of a completed project.
func (c *Client) GetSolution(ctx context.Context, projectID string) (string, error) {
	var resp solutionResponse
	path := projectsPath + "/" + projectID + "/solution"
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return "", err
	}
	return resp.Solution, nil
}

// ListProjects lists the most recently created projects, newest first.
// An account with no projects yields an empty slice, not an error.
func (c *Client) ListProjects(ctx context.Context, limit int) ([]ProjectSummary, error) {
	var resp listProjectsResponse
	path := projectsPath + "?limit=" + strconv.Itoa(limit)
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}

	if resp.Projects == nil {
		return []ProjectSummary{}, nil
	}
	return resp.Projects, nil
}

// do performs one JSON round trip against the API and decodes the response
// into out. Non-2xx responses become upstream errors carrying the HTTP
// status and the API's message when the body provides one.
func (c *Client) do(ctx context.Context, method, path string, in, out interface{}) error {
	var reqBody io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return errortypes.InternalError(err, "failed to marshal API request")
		}
		reqBody = strings.NewReader(string(payload))
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errortypes.InternalError(err, "failed to create API request")
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errortypes.NetworkError(err, "request to Aristotle API failed").
			WithField("method", method).
			WithField("path", path)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return errortypes.NetworkError(err, "failed to read Aristotle API response")
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		message := strings.TrimSpace(string(respBody))
		var envelope apiError
		if json.Unmarshal(respBody, &envelope) == nil && envelope.Error.Message != "" {
			message = envelope.Error.Message
		}
		return errortypes.UpstreamError(
			fmt.Errorf("aristotle API error: %s", message),
			"Aristotle API rejected the request").
			WithField("status_code", resp.StatusCode).
			WithField("path", path)
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			return errortypes.UpstreamError(err, "malformed response from Aristotle API").
				WithField("status_code", resp.StatusCode).
				WithField("path", path)
		}
	}

	return nil
}
