package tools

import (
	"encoding/json"
	"strings"
	"testing"
)

// TestSubmitResponseEnvelope verifies the error envelope omits the project
// id and the success envelope omits the error.
func TestSubmitResponseEnvelope(t *testing.T) {
	success, err := json.Marshal(SubmitResponse{Status: "success", ProjectID: "P123"})
	if err != nil {
		t.Fatalf("Failed to marshal response: %v", err)
	}
	if strings.Contains(string(success), "error") {
		t.Errorf("Success envelope should omit the error field: %s", success)
	}

	failure, err := json.Marshal(SubmitResponse{Status: "error", Error: "file not found"})
	if err != nil {
		t.Fatalf("Failed to marshal response: %v", err)
	}
	if strings.Contains(string(failure), "project_id") {
		t.Errorf("Error envelope should omit the project id: %s", failure)
	}
}

// TestProjectStatusPendingShape verifies a pending snapshot carries no
// solution-related fields.
func TestProjectStatusPendingShape(t *testing.T) {
	data, err := json.Marshal(ProjectStatus{ProjectID: "P1", Status: "pending"})
	if err != nil {
		t.Fatalf("Failed to marshal status: %v", err)
	}

	var m map[string]interface{}
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("Failed to unmarshal status: %v", err)
	}

	for _, field := range []string{"solution", "solution_error", "saved_to"} {
		if _, present := m[field]; present {
			t.Errorf("Pending status should omit %q: %s", field, data)
		}
	}
}

// TestProjectSummaryAlwaysReportsLocal verifies the locally_submitted flag
// is explicit even when false, so clients need not treat absence as false.
func TestProjectSummaryAlwaysReportsLocal(t *testing.T) {
	data, err := json.Marshal(ProjectSummary{ProjectID: "P1", Status: "running"})
	if err != nil {
		t.Fatalf("Failed to marshal summary: %v", err)
	}
	if !strings.Contains(string(data), `"locally_submitted":false`) {
		t.Errorf("Expected explicit locally_submitted flag: %s", data)
	}
}
