package aristotle

import "context"

// Prover defines the operations the gateway needs from the Aristotle API.
type Prover interface {
	// CreateProject submits a proof request and returns the project id
	// issued by the service.
	CreateProject(ctx context.Context, req ProofRequest) (string, error)

	// GetProject fetches the current status snapshot of a project.
	GetProject(ctx context.Context, projectID string) (*Project, error)

	// GetSolution fetches the solution content of a completed project.
	GetSolution(ctx context.Context, projectID string) (string, error)

	// ListProjects lists the most recently created projects, newest first.
	ListProjects(ctx context.Context, limit int) ([]ProjectSummary, error)
}
