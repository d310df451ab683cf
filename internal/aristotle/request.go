package aristotle

import (
	"errors"
	"strings"

	"github.com/localrivet/aristotlemcp/internal/errortypes"
)

// ProofRequest is a validated submission payload. There is one constructor
// per input variant; a ProofRequest can only exist in a valid state, so the
// client never has to re-check variant rules at send time.
type ProofRequest struct {
	inputType     InputType
	content       string
	formalContext string
	sourceName    string
}

// NewLeanRequest builds a formal-Lean submission from Lean source content.
func NewLeanRequest(content string) (ProofRequest, error) {
	if strings.TrimSpace(content) == "" {
		return ProofRequest{}, errortypes.ValidationError(
			errors.New("lean content is empty"), "invalid proof request")
	}
	return ProofRequest{inputType: InputTypeFormalLean, content: content}, nil
}

// NewInformalRequest builds an informal submission from natural-language
// content, optionally paired with formal Lean context.
func NewInformalRequest(content, formalContext string) (ProofRequest, error) {
	if strings.TrimSpace(content) == "" {
		return ProofRequest{}, errortypes.ValidationError(
			errors.New("informal content is empty"), "invalid proof request")
	}
	return ProofRequest{
		inputType:     InputTypeInformal,
		content:       content,
		formalContext: formalContext,
	}, nil
}

// WithSource returns a copy of the request annotated with the name of the
// file (or pseudo-name) the content came from. The name is informational;
// it travels to the API and the local ledger.
func (r ProofRequest) WithSource(name string) ProofRequest {
	r.sourceName = name
	return r
}

// InputType returns the variant of this request.
func (r ProofRequest) InputType() InputType {
	return r.inputType
}

// Content returns the proof content to submit.
func (r ProofRequest) Content() string {
	return r.content
}

// FormalContext returns the optional formal context, empty when absent.
func (r ProofRequest) FormalContext() string {
	return r.formalContext
}

// SourceName returns the informational source name, empty when absent.
func (r ProofRequest) SourceName() string {
	return r.sourceName
}
