package gmat

import (
	"context"
	"fmt"

	"github.com/abhisek/gmatprep/internal/llm"
	"github.com/abhisek/gmatprep/internal/logging"
)

// Evaluator grades a student answer locally and asks the model for
// feedback.
type Evaluator struct {
	client Completer
}

// NewEvaluator creates an Evaluator.
func NewEvaluator(client Completer) *Evaluator {
	return &Evaluator{client: client}
}

// Evaluate returns feedback for in. The returned IsCorrect is always the
// local comparison, never the model's opinion.
func (e *Evaluator) Evaluate(ctx context.Context, in EvaluationInput) (*FeedbackResult, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeFeedback)
	log := logging.FromContext(ctx)

	isCorrect := CheckAnswer(in.StudentAnswer, in.Answer)
	log.WithField("is_correct", isCorrect).Debug("graded answer locally")

	prompt, err := BuildFeedbackPrompt(FeedbackInput{
		Question:      in.Question,
		StudentAnswer: in.StudentAnswer,
		CorrectAnswer: NormalizeAnswer(in.Answer),
		IsCorrect:     isCorrect,
		Explanation:   in.Explanation,
	})
	if err != nil {
		return nil, fmt.Errorf("build feedback prompt: %w", err)
	}

	raw, err := e.client.CompleteJSON(ctx, prompt.System, prompt.Human, FeedbackSchema)
	if err != nil {
		return nil, fmt.Errorf("feedback generation failed: %w", err)
	}

	res, err := llm.Decode[FeedbackResult](raw, FeedbackSchema)
	if err != nil {
		return nil, err
	}

	if res.IsCorrect != isCorrect {
		log.WithField("model_is_correct", res.IsCorrect).Warn("model disagreed with local grading; using local result")
		res.IsCorrect = isCorrect
	}

	return &res, nil
}
