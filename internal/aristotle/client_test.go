package aristotle

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/localrivet/aristotlemcp/internal/errortypes"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(ClientConfig{
		BaseURL: srv.URL,
		APIKey:  "test-key",
	})
}

// TestCreateProject verifies the submitted payload and that the issued id
// is returned unmodified.
func TestCreateProject(t *testing.T) {
	var gotAuth string
	var gotBody createProjectRequest

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/projects" {
			t.Errorf("Unexpected request: %s %s", r.Method, r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("Failed to decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id": "P123"}`))
	})

	req, err := NewLeanRequest("theorem t : True := sorry")
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}

	id, err := client.CreateProject(context.Background(), req.WithSource("t.lean"))
	if err != nil {
		t.Fatalf("CreateProject returned error: %v", err)
	}

	if id != "P123" {
		t.Errorf("Expected id 'P123', got '%s'", id)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Expected bearer auth header, got '%s'", gotAuth)
	}
	if gotBody.InputType != InputTypeFormalLean {
		t.Errorf("Expected input type %q, got %q", InputTypeFormalLean, gotBody.InputType)
	}
	if gotBody.InputContent != "theorem t : True := sorry" {
		t.Errorf("Content was modified in transit: %q", gotBody.InputContent)
	}
	if gotBody.FileName != "t.lean" {
		t.Errorf("Expected file name 't.lean', got '%s'", gotBody.FileName)
	}
}

// TestCreateProjectInformalContext verifies the optional formal context
// travels with informal submissions.
func TestCreateProjectInformalContext(t *testing.T) {
	var gotBody createProjectRequest

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"id": "P7"}`))
	})

	req, err := NewInformalRequest("Show that addition commutes.", "def myAdd := Nat.add")
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}

	if _, err := client.CreateProject(context.Background(), req); err != nil {
		t.Fatalf("CreateProject returned error: %v", err)
	}

	if gotBody.InputType != InputTypeInformal {
		t.Errorf("Expected input type %q, got %q", InputTypeInformal, gotBody.InputType)
	}
	if gotBody.FormalInputContext != "def myAdd := Nat.add" {
		t.Errorf("Formal context was not forwarded: %q", gotBody.FormalInputContext)
	}
}

// TestCreateProjectUpstreamRejection verifies non-2xx responses surface as
// upstream errors carrying the API message.
func TestCreateProjectUpstreamRejection(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"error": {"code": "invalid_input", "message": "input is not valid Lean"}}`))
	})

	req, err := NewLeanRequest("not lean at all")
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}

	_, err = client.CreateProject(context.Background(), req)
	if err == nil {
		t.Fatal("Expected an error for a rejected submission")
	}
	if !errortypes.IsUpstreamError(err) {
		t.Errorf("Expected an upstream error, got %T: %v", err, err)
	}
}

// TestCreateProjectMissingID verifies a 2xx response without an id is an
// upstream error, not an empty handle.
func TestCreateProjectMissingID(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	})

	req, err := NewLeanRequest("theorem t : True := sorry")
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}

	_, err = client.CreateProject(context.Background(), req)
	if err == nil {
		t.Fatal("Expected an error for a response without a project id")
	}
	if !errortypes.IsUpstreamError(err) {
		t.Errorf("Expected an upstream error, got: %v", err)
	}
}

// TestGetProject verifies the status snapshot decodes as sent.
func TestGetProject(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/projects/P123" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{
			"project_id": "P123",
			"status": "running",
			"created_at": "2026-08-20T10:00:00Z",
			"last_updated_at": "2026-08-20T10:05:00Z",
			"file_name": "t.lean"
		}`))
	})

	project, err := client.GetProject(context.Background(), "P123")
	if err != nil {
		t.Fatalf("GetProject returned error: %v", err)
	}

	if project.ProjectID != "P123" {
		t.Errorf("Expected project id 'P123', got '%s'", project.ProjectID)
	}
	if project.Status != StatusRunning {
		t.Errorf("Expected status 'running', got '%s'", project.Status)
	}
	if project.CreatedAt != "2026-08-20T10:00:00Z" {
		t.Errorf("Timestamp was modified: %s", project.CreatedAt)
	}
}

// TestGetSolution verifies solution content is returned verbatim.
func TestGetSolution(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/projects/P123/solution" {
			t.Errorf("Unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`{"solution": "theorem t : True := trivial"}`))
	})

	solution, err := client.GetSolution(context.Background(), "P123")
	if err != nil {
		t.Fatalf("GetSolution returned error: %v", err)
	}
	if solution != "theorem t : True := trivial" {
		t.Errorf("Solution was modified: %q", solution)
	}
}

// TestListProjects verifies limit propagation and decoding.
func TestListProjects(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("limit") != "5" {
			t.Errorf("Expected limit=5, got %s", r.URL.Query().Get("limit"))
		}
		w.Write([]byte(`{"projects": [
			{"project_id": "P2", "status": "running"},
			{"project_id": "P1", "status": "complete"}
		]}`))
	})

	projects, err := client.ListProjects(context.Background(), 5)
	if err != nil {
		t.Fatalf("ListProjects returned error: %v", err)
	}

	if len(projects) != 2 {
		t.Fatalf("Expected 2 projects, got %d", len(projects))
	}
	if projects[0].ProjectID != "P2" || projects[1].ProjectID != "P1" {
		t.Errorf("Ordering was not preserved: %v", projects)
	}
}

// TestListProjectsEmpty verifies an empty account yields an empty slice,
// not nil and not an error.
func TestListProjectsEmpty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"projects": []}`))
	})

	projects, err := client.ListProjects(context.Background(), 10)
	if err != nil {
		t.Fatalf("ListProjects returned error: %v", err)
	}
	if projects == nil {
		t.Fatal("Expected an empty slice, got nil")
	}
	if len(projects) != 0 {
		t.Errorf("Expected no projects, got %d", len(projects))
	}
}

// TestMalformedResponse verifies undecodable bodies surface as upstream
// errors.
func TestMalformedResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	})

	_, err := client.GetProject(context.Background(), "P123")
	if err == nil {
		t.Fatal("Expected an error for a malformed response")
	}
	if !errortypes.IsUpstreamError(err) {
		t.Errorf("Expected an upstream error, got: %v", err)
	}
}
