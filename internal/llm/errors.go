package llm

import (
	"fmt"
)

// ErrUpstream indicates the completion service could not produce a
// completion: network failure, timeout, or a non-2xx response.
type ErrUpstream struct {
	// StatusCode is the HTTP status returned by the provider, or 0 when
	// the request never got a response.
	StatusCode int
	Err        error
}

func (e *ErrUpstream) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("LLM provider error (status %d): %v", e.StatusCode, e.Err)
	}
	if e.Err != nil {
		return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
	}
	return "LLM provider unavailable"
}

func (e *ErrUpstream) Unwrap() error { return e.Err }

// ErrSchemaValidation indicates the LLM returned content that does not
// conform to the requested schema. Content holds the raw text for
// diagnostics.
type ErrSchemaValidation struct {
	Schema  string
	Content string
	Err     error
}

func (e *ErrSchemaValidation) Error() string {
	return fmt.Sprintf("invalid LLM response for %q: %v", e.Schema, e.Err)
}

func (e *ErrSchemaValidation) Unwrap() error { return e.Err }

// ErrConfiguration indicates a required setting is missing or invalid.
type ErrConfiguration struct {
	Setting string
	Reason  string
}

func (e *ErrConfiguration) Error() string {
	return fmt.Sprintf("%s %s", e.Setting, e.Reason)
}
