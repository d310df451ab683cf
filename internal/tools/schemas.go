// Package tools defines the tool names and data structures
// for the Aristotle MCP gateway.
package tools

const (
	// ToolProveLeanFile is the name of the prove_lean_file MCP tool
	ToolProveLeanFile = "prove_lean_file"

	// ToolProveInformal is the name of the prove_informal MCP tool
	ToolProveInformal = "prove_informal"

	// ToolProveLeanCode is the name of the prove_lean_code MCP tool
	ToolProveLeanCode = "prove_lean_code"

	// ToolProveInformalText is the name of the prove_informal_text MCP tool
	ToolProveInformalText = "prove_informal_text"

	// ToolGetProjectStatus is the name of the get_project_status MCP tool
	ToolGetProjectStatus = "get_project_status"

	// ToolListRecentProjects is the name of the list_recent_projects MCP tool
	ToolListRecentProjects = "list_recent_projects"

	// DefaultListLimit is the default number of projects to return
	// when no limit is specified in a list_recent_projects request
	DefaultListLimit = 10

	// ResourceListLimit is the number of projects included in the
	// aristotle://projects resource
	ResourceListLimit = 20
)

// Resource URIs served by the gateway.
const (
	// ResourceProjects is the read-only listing of recent projects
	ResourceProjects = "aristotle://projects"

	// ResourceProjectDetail is the read-only detail of a single project
	ResourceProjectDetail = "aristotle://projects/{project_id}"
)

// ProveLeanFileRequest defines the input schema for the prove_lean_file tool
type ProveLeanFileRequest struct {
	// FilePath is the path of a local Lean file with 'sorry' placeholders
	FilePath string `json:"file_path"`
}

// ProveInformalRequest defines the input schema for the prove_informal tool
type ProveInformalRequest struct {
	// FilePath is the path of a local file of natural-language mathematics
	FilePath string `json:"file_path"`

	// FormalContextPath optionally points at a Lean file of supporting
	// definitions and lemmas
	FormalContextPath string `json:"formal_context_path,omitempty"`
}

// ProveLeanCodeRequest defines the input schema for the prove_lean_code tool
type ProveLeanCodeRequest struct {
	// LeanCode is Lean source submitted directly, without file I/O
	LeanCode string `json:"lean_code"`
}

// ProveInformalTextRequest defines the input schema for the
// prove_informal_text tool
type ProveInformalTextRequest struct {
	// Text is natural-language mathematics submitted directly
	Text string `json:"text"`

	// FormalContextPath optionally points at a Lean file of supporting
	// definitions and lemmas
	FormalContextPath string `json:"formal_context_path,omitempty"`
}

// SubmitResponse defines the output schema shared by all four submission
// tools
type SubmitResponse struct {
	// Status indicates the result of the operation ("success" or "error")
	Status string `json:"status"`

	// ProjectID is the identifier issued by the Aristotle service
	ProjectID string `json:"project_id,omitempty"`

	// Error contains an error message if Status is "error"
	Error string `json:"error,omitempty"`
}

// GetProjectStatusRequest defines the input schema for the
// get_project_status tool
type GetProjectStatusRequest struct {
	// ProjectID is the identifier of the project to query
	ProjectID string `json:"project_id"`

	// SaveSolutionTo optionally names a local path to write the solution
	// to when the project is complete
	SaveSolutionTo string `json:"save_solution_to,omitempty"`
}

// ProjectStatus is the status snapshot returned for a single project.
type ProjectStatus struct {
	// ProjectID is the identifier of the project
	ProjectID string `json:"project_id"`

	// Status is the remote state of the project
	// ("pending", "running", "complete", "failed")
	Status string `json:"status"`

	// CreatedAt is when the project was created, as formatted by the API
	CreatedAt string `json:"created_at,omitempty"`

	// LastUpdatedAt is when the project last changed, as formatted by the API
	LastUpdatedAt string `json:"last_updated_at,omitempty"`

	// FileName is the source name recorded at submission, if any
	FileName string `json:"file_name,omitempty"`

	// Description is the project description, if any
	Description string `json:"description,omitempty"`

	// LocallySubmitted is true when this gateway submitted the project
	LocallySubmitted bool `json:"locally_submitted,omitempty"`

	// Solution is the solution content, present once the project is complete
	Solution string `json:"solution,omitempty"`

	// SolutionError describes a failed solution fetch for a complete project
	SolutionError string `json:"solution_error,omitempty"`

	// SavedTo echoes the path the solution was written to, when requested
	SavedTo string `json:"saved_to,omitempty"`
}

// GetProjectStatusResponse defines the output schema for the
// get_project_status tool
type GetProjectStatusResponse struct {
	// Status indicates the result of the operation ("success" or "error")
	Status string `json:"status"`

	// Project is the status snapshot when Status is "success"
	Project *ProjectStatus `json:"project,omitempty"`

	// Error contains an error message if Status is "error"
	Error string `json:"error,omitempty"`
}

// ListRecentProjectsRequest defines the input schema for the
// list_recent_projects tool
type ListRecentProjectsRequest struct {
	// Limit is the maximum number of projects to return
	// If not specified, DefaultListLimit will be used
	Limit int `json:"limit,omitempty"`

	// SaveTo optionally names a local path to write the listing to
	SaveTo string `json:"save_to,omitempty"`
}

// ProjectSummary is one entry of a project listing.
type ProjectSummary struct {
	// ProjectID is the identifier of the project
	ProjectID string `json:"project_id"`

	// Status is the remote state of the project
	Status string `json:"status"`

	// CreatedAt is when the project was created, as formatted by the API
	CreatedAt string `json:"created_at,omitempty"`

	// FileName is the source name recorded at submission, if any
	FileName string `json:"file_name,omitempty"`

	// Description is the project description, if any
	Description string `json:"description,omitempty"`

	// LocallySubmitted is true when this gateway submitted the project
	LocallySubmitted bool `json:"locally_submitted"`
}

// ListRecentProjectsResponse defines the output schema for the
// list_recent_projects tool
type ListRecentProjectsResponse struct {
	// Status indicates the result of the operation ("success" or "error")
	Status string `json:"status"`

	// Projects contains the listing entries, newest first
	Projects []ProjectSummary `json:"projects"`

	// SavedTo echoes the path the listing was written to, when requested
	SavedTo string `json:"saved_to,omitempty"`

	// Error contains an error message if Status is "error"
	Error string `json:"error,omitempty"`
}
