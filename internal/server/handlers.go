package server

import (
	"encoding/json"
	"net/http"

	"github.com/abhisek/gmatprep/internal/gmat"
	"github.com/abhisek/gmatprep/internal/llm"
	"github.com/abhisek/gmatprep/internal/logging"
)

// DefaultTestPrompt is sent by /test_llm when no prompt is given.
const DefaultTestPrompt = "Say 'Hello, AI is working!'"

const (
	parseErrorMessage     = "Could not parse JSON body. Ensure Content-Type is 'application/json' and body is valid JSON."
	testParseErrorMessage = "Could not parse JSON body for /test_llm. Ensure Content-Type is 'application/json' and body is valid JSON."
	missingFieldsMessage  = "Missing 'question_data' or 'student_answer' in request body."
	invalidQuestionData   = "Invalid 'question_data' format. Required keys: 'answer', 'question', 'explanation'."
)

type handler struct {
	deps Deps
}

func (h *handler) fail(w http.ResponseWriter, r *http.Request, err error, body func(error) map[string]any) {
	status, kind := classify(err)
	log := logging.FromContext(r.Context()).WithError(err).WithField("error_kind", kind)
	if status >= http.StatusInternalServerError {
		log.Error("request failed")
	} else {
		log.Warn("rejected request")
	}
	writeJSON(w, status, body(err))
}

func (h *handler) generateQuestion(w http.ResponseWriter, r *http.Request) {
	fields, raw, err := readBody(w, r, parseErrorMessage)
	logging.FromContext(r.Context()).Debugf("received raw data for /generate_question: %s", raw)
	if err != nil {
		h.fail(w, r, err, errorBody)
		return
	}

	q, err := h.deps.Generator.Generate(r.Context(), text(fields["topic"]), text(fields["difficulty"]))
	if err != nil {
		h.fail(w, r, err, errorBody)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (h *handler) evaluateAnswer(w http.ResponseWriter, r *http.Request) {
	log := logging.FromContext(r.Context())
	fields, raw, err := readBody(w, r, parseErrorMessage)
	log.Debugf("received raw data for /evaluate_answer: %s", raw)
	log.Debugf("request Content-Type header: %s", r.Header.Get("Content-Type"))
	if err != nil {
		h.fail(w, r, err, errorBody)
		return
	}

	in, err := parseEvaluation(fields)
	if err != nil {
		h.fail(w, r, err, errorBody)
		return
	}

	res, err := h.deps.Evaluator.Evaluate(r.Context(), in)
	if err != nil {
		h.fail(w, r, err, errorBody)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// parseEvaluation checks the evaluation body before any model call.
func parseEvaluation(fields map[string]json.RawMessage) (gmat.EvaluationInput, error) {
	qd, sa := fields["question_data"], fields["student_answer"]
	if isFalsy(qd) || isFalsy(sa) {
		return gmat.EvaluationInput{}, &requestError{Message: missingFieldsMessage}
	}

	var question map[string]json.RawMessage
	if err := json.Unmarshal(qd, &question); err != nil {
		return gmat.EvaluationInput{}, &requestError{Message: invalidQuestionData}
	}
	for _, k := range []string{"answer", "question", "explanation"} {
		if _, ok := question[k]; !ok {
			return gmat.EvaluationInput{}, &requestError{Message: invalidQuestionData}
		}
	}

	return gmat.EvaluationInput{
		Question:      text(question["question"]),
		Answer:        text(question["answer"]),
		Explanation:   text(question["explanation"]),
		StudentAnswer: text(sa),
	}, nil
}

func (h *handler) testLLM(w http.ResponseWriter, r *http.Request) {
	log := logging.FromContext(r.Context())
	fields, raw, err := readBody(w, r, testParseErrorMessage)
	log.Debugf("received raw data for /test_llm: %s", raw)
	if err != nil {
		h.fail(w, r, err, statusBody)
		return
	}

	prompt := DefaultTestPrompt
	if p, ok := fields["prompt"]; ok && !isNull(p) {
		prompt = text(p)
	}
	log.Infof("test LLM route called with prompt: %q", prompt)

	ctx := llm.WithPurpose(r.Context(), llm.PurposeTestCompletion)
	out, err := h.deps.Client.Complete(ctx, "", prompt)
	if err != nil {
		h.fail(w, r, err, statusBody)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "success", "response": out})
}

func (h *handler) healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
