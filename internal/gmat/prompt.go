package gmat

import (
	"bytes"
	"strings"
	"text/template"
)

// Prompt is a system and human message pair.
type Prompt struct {
	System string
	Human  string
}

// FeedbackInput is the data interpolated into the feedback prompt.
type FeedbackInput struct {
	Question      string
	StudentAnswer string
	CorrectAnswer string
	IsCorrect     bool
	Explanation   string
}

var questionSystemTemplate = template.Must(template.New("question-system").Parse(`You are an expert GMAT quantitative question designer.

{{.StyleGuide}}

Generate a GMAT-style Multiple Choice question with 5 options (A, B, C, D, E).
Focus on concise, clear language typical of GMAT.
Ensure the question has one clear correct answer.
For 'Hard' difficulty, include a subtle trap or require multiple steps.
{{- if .Hard}}
This question is 'Hard': it MUST include a subtle trap or require multiple steps.
{{- end}}

Your output MUST be a single JSON object with exactly these fields:
- "question": the question text
- "options": an array of 5 strings, labeled "A) ...", "B) ...", "C) ...", "D) ...", "E) ..."
- "answer": the label of the correct option (A, B, C, D or E)
- "explanation": a detailed step-by-step explanation of the solution
Return only the JSON object.`))

var questionHumanTemplate = template.Must(template.New("question-human").Parse(
	`Generate a {{.Difficulty}} difficulty GMAT Quant question on the topic of {{.Topic}}. Provide 5 options (A, B, C, D, E).`))

const feedbackSystemPrompt = `You are a supportive and insightful GMAT tutor.
Provide personalized feedback to the student based on their answer.
State first whether the answer is correct.
If correct, offer positive reinforcement and explain why it's right.
If incorrect, first clearly state the correct answer. Then, explain why the student's answer is wrong and why the correct answer is right, referencing the detailed explanation provided. Suggest a specific remediation topic (e.g. 'Algebra: Word Problems', 'Geometry: Triangles') only if incorrect.
Keep feedback concise and encouraging.

Your output MUST be a single JSON object with exactly these fields:
- "is_correct": true if the student's answer is correct, false otherwise
- "feedback": the personalized feedback
- "remediation_topic": a topic to review if incorrect, or an empty string if correct
Return only the JSON object.`

var feedbackHumanTemplate = template.Must(template.New("feedback-human").Parse(`Student's question: {{.Question}}
Student's answer: {{.StudentAnswer}}
Correct answer: {{.CorrectAnswer}}
Is correct: {{.IsCorrect}}
Detailed explanation: {{.Explanation}}`))

// BuildQuestionPrompt assembles the question generation prompt. The
// difficulty is free-form; "hard" in any case gets an extra emphasis line.
func BuildQuestionPrompt(styleGuide, topic, difficulty string) (Prompt, error) {
	system, err := render(questionSystemTemplate, struct {
		StyleGuide string
		Hard       bool
	}{
		StyleGuide: strings.TrimSpace(styleGuide),
		Hard:       strings.EqualFold(strings.TrimSpace(difficulty), "hard"),
	})
	if err != nil {
		return Prompt{}, err
	}

	human, err := render(questionHumanTemplate, struct {
		Topic      string
		Difficulty string
	}{Topic: topic, Difficulty: difficulty})
	if err != nil {
		return Prompt{}, err
	}

	return Prompt{System: system, Human: human}, nil
}

// BuildFeedbackPrompt assembles the answer feedback prompt.
func BuildFeedbackPrompt(in FeedbackInput) (Prompt, error) {
	human, err := render(feedbackHumanTemplate, in)
	if err != nil {
		return Prompt{}, err
	}
	return Prompt{System: feedbackSystemPrompt, Human: human}, nil
}

func render(t *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
