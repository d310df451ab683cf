package ledger

import (
	"fmt"
	"sync"
	"time"

	"crawshaw.io/sqlite"
)

// SQLiteLedger is an implementation of Ledger that uses SQLite.
type SQLiteLedger struct {
	conn   *sqlite.Conn
	dbPath string
	mu     sync.Mutex // a single sqlite conn must not be used concurrently
}

// NewSQLiteLedger creates a new SQLiteLedger instance.
func NewSQLiteLedger() *SQLiteLedger {
	return &SQLiteLedger{}
}

// Initialize initializes the ledger with the given database path.
func (l *SQLiteLedger) Initialize(dbPath string) error {
	l.dbPath = dbPath

	// Open the SQLite database
	conn, err := sqlite.OpenConn(dbPath, sqlite.SQLITE_OPEN_CREATE|sqlite.SQLITE_OPEN_READWRITE)
	if err != nil {
		return fmt.Errorf("failed to open SQLite database: %w", err)
	}
	l.conn = conn

	// Create the table if it doesn't exist
	err = l.createTable()
	if err != nil {
		// Close the connection on error
		l.conn.Close()
		return fmt.Errorf("failed to create table: %w", err)
	}

	return nil
}

// createTable creates the submissions table if it doesn't exist.
func (l *SQLiteLedger) createTable() error {
	createTableSQL := `
	CREATE TABLE IF NOT EXISTS submissions (
		project_id TEXT PRIMARY KEY,
		input_type TEXT NOT NULL,
		source_name TEXT,
		fingerprint TEXT NOT NULL,
		submitted_at INTEGER NOT NULL
	);`

	stmt, err := l.conn.Prepare(createTableSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare create table statement: %w", err)
	}
	defer stmt.Reset()

	_, err = stmt.Step()
	if err != nil {
		return fmt.Errorf("failed to execute create table statement: %w", err)
	}

	return nil
}

// Close closes the ledger and releases any resources.
func (l *SQLiteLedger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.conn != nil {
		return l.conn.Close()
	}
	return nil
}

// Record appends a submission record.
func (l *SQLiteLedger) Record(rec SubmissionRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	insertSQL := `
	INSERT OR REPLACE INTO submissions (project_id, input_type, source_name, fingerprint, submitted_at)
	VALUES (?, ?, ?, ?, ?);`

	stmt, err := l.conn.Prepare(insertSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare insert statement: %w", err)
	}
	defer stmt.Reset()

	// Bind parameters - indices in sqlite are 1-based
	stmt.BindText(1, rec.ProjectID)
	stmt.BindText(2, rec.InputType)
	stmt.BindText(3, rec.SourceName)
	stmt.BindText(4, rec.Fingerprint)
	stmt.BindInt64(5, rec.SubmittedAt.Unix())

	// Execute the statement
	_, err = stmt.Step()
	if err != nil {
		return fmt.Errorf("failed to insert submission record: %w", err)
	}

	return nil
}

// Contains reports whether a project id was submitted from this gateway.
func (l *SQLiteLedger) Contains(projectID string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	selectSQL := `SELECT 1 FROM submissions WHERE project_id = ?;`

	stmt, err := l.conn.Prepare(selectSQL)
	if err != nil {
		return false, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Reset()

	stmt.BindText(1, projectID)

	hasRow, err := stmt.Step()
	if err != nil {
		return false, fmt.Errorf("failed to execute select statement: %w", err)
	}

	return hasRow, nil
}

// Recent returns the most recent local submissions, newest first.
func (l *SQLiteLedger) Recent(limit int) ([]SubmissionRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	selectSQL := `
	SELECT project_id, input_type, source_name, fingerprint, submitted_at
	FROM submissions
	ORDER BY submitted_at DESC
	LIMIT ?;`

	stmt, err := l.conn.Prepare(selectSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare select statement: %w", err)
	}
	defer stmt.Reset()

	stmt.BindInt64(1, int64(limit))

	var records []SubmissionRecord
	for {
		hasRow, err := stmt.Step()
		if err != nil {
			return nil, fmt.Errorf("failed to execute select statement: %w", err)
		}
		if !hasRow {
			break // No more rows
		}

		records = append(records, SubmissionRecord{
			ProjectID:   stmt.ColumnText(0),
			InputType:   stmt.ColumnText(1),
			SourceName:  stmt.ColumnText(2),
			Fingerprint: stmt.ColumnText(3),
			SubmittedAt: time.Unix(stmt.ColumnInt64(4), 0),
		})
	}

	return records, nil
}
