// Package server exposes the question generator and answer evaluator over
// HTTP.
package server

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/abhisek/gmatprep/internal/gmat"
)

// QuestionGenerator produces a question for a topic and difficulty.
type QuestionGenerator interface {
	Generate(ctx context.Context, topic, difficulty string) (*gmat.GeneratedQuestion, error)
}

// AnswerEvaluator produces feedback for a student answer.
type AnswerEvaluator interface {
	Evaluate(ctx context.Context, in gmat.EvaluationInput) (*gmat.FeedbackResult, error)
}

// Completer sends a raw prompt to the model.
type Completer interface {
	Complete(ctx context.Context, system, human string) (string, error)
}

// Deps are the collaborators the handlers use. All must be non-nil.
type Deps struct {
	Generator QuestionGenerator
	Evaluator AnswerEvaluator
	Client    Completer
}

// NewRouter builds the HTTP routes.
func NewRouter(d Deps) http.Handler {
	h := &handler{deps: d}

	r := chi.NewRouter()
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(recoverer)

	r.Post("/generate_question", h.generateQuestion)
	r.Post("/evaluate_answer", h.evaluateAnswer)
	r.Post("/test_llm", h.testLLM)
	r.Get("/healthz", h.healthz)

	return r
}
