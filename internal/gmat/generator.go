package gmat

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/gmatprep/internal/llm"
	"github.com/abhisek/gmatprep/internal/logging"
)

// Generator produces GMAT questions through the model.
type Generator struct {
	client     Completer
	guide      StyleGuide
	validators []Validator
}

// NewGenerator creates a Generator. A nil validators slice selects
// DefaultValidators.
func NewGenerator(client Completer, guide StyleGuide, validators []Validator) *Generator {
	if validators == nil {
		validators = DefaultValidators()
	}
	return &Generator{client: client, guide: guide, validators: validators}
}

// Generate produces one question. Empty topic or difficulty fall back to
// DefaultTopic and DefaultDifficulty.
func (g *Generator) Generate(ctx context.Context, topic, difficulty string) (*GeneratedQuestion, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeQuestionGen)

	if strings.TrimSpace(topic) == "" {
		topic = DefaultTopic
	}
	if strings.TrimSpace(difficulty) == "" {
		difficulty = DefaultDifficulty
	}

	log := logging.FromContext(ctx).WithFields(logrus.Fields{
		"topic":      topic,
		"difficulty": difficulty,
	})

	guide, err := g.guide.Load()
	if err != nil {
		log.WithError(err).Error("style guide unavailable")
		return nil, err
	}
	log.Debugf("loaded style guide (%d chars)", len(guide))

	prompt, err := BuildQuestionPrompt(guide, topic, difficulty)
	if err != nil {
		return nil, fmt.Errorf("build question prompt: %w", err)
	}

	raw, err := g.client.CompleteJSON(ctx, prompt.System, prompt.Human, QuestionSchema)
	if err != nil {
		return nil, fmt.Errorf("question generation failed: %w", err)
	}

	q, err := llm.Decode[GeneratedQuestion](raw, QuestionSchema)
	if err != nil {
		return nil, err
	}

	for _, v := range g.validators {
		if verr := v.Validate(&q); verr != nil {
			log.WithField("validator", verr.Validator).Warn(verr.Message)
			return nil, verr
		}
	}

	return &q, nil
}
