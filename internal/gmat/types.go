// Package gmat generates GMAT quantitative questions and evaluates student
// answers by delegating to an LLM.
package gmat

import (
	"context"

	"github.com/abhisek/gmatprep/internal/llm"
)

// Defaults applied when a generation request leaves a field empty.
const (
	DefaultTopic      = "Algebra"
	DefaultDifficulty = "Medium"
)

// GeneratedQuestion is a multiple-choice question produced by the model.
type GeneratedQuestion struct {
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation"`
}

// FeedbackResult is the tutor's evaluation of a student answer.
type FeedbackResult struct {
	IsCorrect        bool   `json:"is_correct"`
	Feedback         string `json:"feedback"`
	RemediationTopic string `json:"remediation_topic"`
}

// EvaluationInput is a previously issued question plus the student's
// answer. All values are already rendered as text.
type EvaluationInput struct {
	Question      string
	Answer        string
	Explanation   string
	StudentAnswer string
}

// Completer is the part of llm.Client the pipelines depend on.
type Completer interface {
	CompleteJSON(ctx context.Context, system, human string, schema *llm.Schema) (string, error)
}
