package gmat

import (
	"fmt"
	"strings"
)

// Validator checks a generated question after it has been parsed.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier used in errors and logs.
	Name() string

	// Validate returns nil if the question passes.
	Validate(q *GeneratedQuestion) *ValidationError
}

// ValidationError describes why a question failed validation.
type ValidationError struct {
	Validator string
	Message   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validator %q: %s", e.Validator, e.Message)
}

// DefaultValidators returns the standard validator chain.
func DefaultValidators() []Validator {
	return []Validator{
		&StructuralValidator{},
		&AnswerOptionValidator{},
	}
}

const optionCount = 5

// StructuralValidator checks that every field carries content and that
// there are exactly five options.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *GeneratedQuestion) *ValidationError {
	if strings.TrimSpace(q.Question) == "" {
		return &ValidationError{Validator: v.Name(), Message: "question is empty"}
	}
	if len(q.Options) != optionCount {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("expected %d options, got %d", optionCount, len(q.Options)),
		}
	}
	for i, opt := range q.Options {
		if strings.TrimSpace(opt) == "" {
			return &ValidationError{Validator: v.Name(), Message: fmt.Sprintf("option %d is empty", i+1)}
		}
	}
	if strings.TrimSpace(q.Answer) == "" {
		return &ValidationError{Validator: v.Name(), Message: "answer is empty"}
	}
	if strings.TrimSpace(q.Explanation) == "" {
		return &ValidationError{Validator: v.Name(), Message: "explanation is empty"}
	}
	return nil
}

// AnswerOptionValidator checks that the answer names one of the options,
// by label (A-E) or by text.
type AnswerOptionValidator struct{}

func (v *AnswerOptionValidator) Name() string { return "answer-option" }

func (v *AnswerOptionValidator) Validate(q *GeneratedQuestion) *ValidationError {
	if !answerMatchesOption(q.Answer, q.Options) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("answer %q does not match any option", q.Answer),
		}
	}
	return nil
}
