package llm

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/gmatprep/internal/logging"
	"github.com/abhisek/gmatprep/internal/store"
)

// LoggingProvider is a decorator that logs every LLM request and, when a
// repo is configured, appends a metadata row to the audit log.
type LoggingProvider struct {
	inner    Provider
	provider string
	callRepo store.CallRepo
}

// WithLogging wraps a Provider with request logging. repo may be nil.
func WithLogging(p Provider, providerName string, repo store.CallRepo) Provider {
	return &LoggingProvider{inner: p, provider: providerName, callRepo: repo}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	purpose := PurposeFrom(ctx)
	log := logging.FromContext(ctx).WithFields(logrus.Fields{
		"purpose":  purpose,
		"provider": l.provider,
		"model":    l.inner.ModelID(),
	})

	log.Debug("invoking LLM")
	resp, err := l.inner.Generate(ctx, req)
	latency := time.Since(start)

	rec := store.CallRecord{
		Timestamp: start.UTC(),
		Provider:  l.provider,
		Model:     l.inner.ModelID(),
		Purpose:   purpose,
		LatencyMs: latency.Milliseconds(),
		Success:   err == nil,
	}
	log = log.WithField("latency_ms", rec.LatencyMs)

	if err != nil {
		rec.ErrorMessage = err.Error()
		log.WithError(err).Error("LLM call failed")
	} else {
		if resp.Model != "" {
			rec.Model = resp.Model
		}
		log.WithFields(logrus.Fields{
			"stop_reason":   resp.StopReason,
			"output_chars":  len(resp.Text),
			"input_tokens":  resp.Usage.InputTokens,
			"output_tokens": resp.Usage.OutputTokens,
		}).Info("LLM call succeeded")
		log.Debugf("LLM response: %s", resp.Text)
	}

	if l.callRepo != nil {
		// Audit failures never fail the request.
		if logErr := l.callRepo.AppendCall(ctx, rec); logErr != nil {
			log.WithError(logErr).Warn("failed to record LLM call")
		}
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}
