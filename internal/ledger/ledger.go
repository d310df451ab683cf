// Package ledger provides storage interfaces and implementations for the
// local record of proof submissions made through this gateway. The remote
// service owns project state; the ledger only remembers which projects were
// submitted from here.
package ledger

import (
	"time"
)

// SubmissionRecord is one locally submitted project.
type SubmissionRecord struct {
	ProjectID   string
	InputType   string
	SourceName  string
	Fingerprint string
	SubmittedAt time.Time
}

// Ledger defines the interface for recording and querying local submissions.
type Ledger interface {
	// Initialize initializes the ledger with configuration options.
	Initialize(dbPath string) error

	// Close closes the ledger and releases any resources.
	Close() error

	// Record appends a submission record.
	Record(rec SubmissionRecord) error

	// Contains reports whether a project id was submitted from this gateway.
	Contains(projectID string) (bool, error)

	// Recent returns the most recent local submissions, newest first.
	Recent(limit int) ([]SubmissionRecord, error)
}
