package aristotle

import (
	"testing"

	"github.com/localrivet/aristotlemcp/internal/errortypes"
)

// TestNewLeanRequest verifies the formal variant is built and tagged.
func TestNewLeanRequest(t *testing.T) {
	req, err := NewLeanRequest("theorem t : True := sorry")
	if err != nil {
		t.Fatalf("NewLeanRequest returned error: %v", err)
	}

	if req.InputType() != InputTypeFormalLean {
		t.Errorf("Expected input type %q, got %q", InputTypeFormalLean, req.InputType())
	}
	if req.FormalContext() != "" {
		t.Errorf("Lean requests carry no formal context, got %q", req.FormalContext())
	}
}

// TestNewLeanRequestEmpty verifies empty content is a validation error.
func TestNewLeanRequestEmpty(t *testing.T) {
	for _, content := range []string{"", "   ", "\n\t"} {
		if _, err := NewLeanRequest(content); err == nil {
			t.Errorf("Expected validation error for content %q", content)
		} else if !errortypes.IsValidationError(err) {
			t.Errorf("Expected a validation error for content %q, got: %v", content, err)
		}
	}
}

// TestNewInformalRequest verifies context is optional but carried when given.
func TestNewInformalRequest(t *testing.T) {
	req, err := NewInformalRequest("Show that addition commutes.", "")
	if err != nil {
		t.Fatalf("NewInformalRequest returned error: %v", err)
	}
	if req.InputType() != InputTypeInformal {
		t.Errorf("Expected input type %q, got %q", InputTypeInformal, req.InputType())
	}

	withCtx, err := NewInformalRequest("Show that addition commutes.", "def myAdd := Nat.add")
	if err != nil {
		t.Fatalf("NewInformalRequest returned error: %v", err)
	}
	if withCtx.FormalContext() != "def myAdd := Nat.add" {
		t.Errorf("Formal context was not retained: %q", withCtx.FormalContext())
	}
}

// TestNewInformalRequestEmpty verifies empty text is a validation error.
func TestNewInformalRequestEmpty(t *testing.T) {
	if _, err := NewInformalRequest("  ", "def x := 1"); err == nil {
		t.Error("Expected validation error for empty informal content")
	}
}

// TestWithSource verifies the source annotation does not mutate the receiver.
func TestWithSource(t *testing.T) {
	req, err := NewLeanRequest("theorem t : True := sorry")
	if err != nil {
		t.Fatalf("NewLeanRequest returned error: %v", err)
	}

	named := req.WithSource("t.lean")
	if named.SourceName() != "t.lean" {
		t.Errorf("Expected source name 't.lean', got '%s'", named.SourceName())
	}
	if req.SourceName() != "" {
		t.Errorf("WithSource mutated the original request: %q", req.SourceName())
	}
}
