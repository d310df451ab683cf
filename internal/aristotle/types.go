// Package aristotle provides the HTTP client for the Aristotle
// theorem-proving API and the request/response types it exchanges.
package aristotle

// InputType identifies the kind of proof input being submitted.
type InputType string

const (
	// InputTypeFormalLean is Lean source with 'sorry' placeholders to fill.
	InputTypeFormalLean InputType = "formal_lean"

	// InputTypeInformal is natural-language mathematics to formalize and prove.
	InputTypeInformal InputType = "informal"
)

// Project status values as reported by the Aristotle API.
const (
	StatusPending  = "pending"
	StatusRunning  = "running"
	StatusComplete = "complete"
	StatusFailed   = "failed"
)

// Project is the status snapshot of a single proving project as returned
// by the API. Timestamps are passed through as the API formats them.
type Project struct {
	ProjectID     string `json:"project_id"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
	LastUpdatedAt string `json:"last_updated_at"`
	FileName      string `json:"file_name,omitempty"`
	Description   string `json:"description,omitempty"`
}

// ProjectSummary is a lightweight listing entry for one project.
type ProjectSummary struct {
	ProjectID   string `json:"project_id"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	FileName    string `json:"file_name,omitempty"`
	Description string `json:"description,omitempty"`
}
