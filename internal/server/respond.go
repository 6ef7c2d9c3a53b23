package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/abhisek/gmatprep/internal/gmat"
	"github.com/abhisek/gmatprep/internal/llm"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Warn("failed to write response")
	}
}

// classify maps an error to its HTTP status and a short kind for logs.
func classify(err error) (int, string) {
	var (
		reqErr   *requestError
		guideErr *gmat.ErrStyleGuideUnavailable
		upErr    *llm.ErrUpstream
		schemaEr *llm.ErrSchemaValidation
		valErr   *gmat.ValidationError
	)
	switch {
	case errors.As(err, &reqErr):
		return http.StatusBadRequest, "malformed_request"
	case errors.As(err, &guideErr):
		return http.StatusInternalServerError, "configuration"
	case errors.As(err, &upErr):
		return http.StatusInternalServerError, "upstream"
	case errors.As(err, &schemaEr), errors.As(err, &valErr):
		return http.StatusInternalServerError, "schema_validation"
	}
	return http.StatusInternalServerError, "internal"
}

// errorBody builds the {error} envelope used by the question routes.
func errorBody(err error) map[string]any {
	body := map[string]any{"error": err.Error()}
	var reqErr *requestError
	if errors.As(err, &reqErr) && reqErr.RawBody != nil {
		body["received_raw_data"] = *reqErr.RawBody
	}
	return body
}

// statusBody builds the {status, message} envelope used by /test_llm.
func statusBody(err error) map[string]any {
	body := map[string]any{"status": "error", "message": err.Error()}
	var reqErr *requestError
	if errors.As(err, &reqErr) && reqErr.RawBody != nil {
		body["received_raw_data"] = *reqErr.RawBody
	}
	return body
}
