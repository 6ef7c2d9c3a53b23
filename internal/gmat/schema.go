package gmat

import "github.com/abhisek/gmatprep/internal/llm"

// QuestionSchema defines the JSON schema for question generation responses.
var QuestionSchema = &llm.Schema{
	Name:        "gmat-question",
	Description: "A GMAT-style multiple choice quantitative question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "The GMAT-style math question text",
			},
			"options": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":      "string",
					"minLength": 1,
				},
				"minItems":    5,
				"maxItems":    5,
				"description": "List of multiple-choice options (A, B, C, D, E)",
			},
			"answer": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "The correct answer option (e.g. 'A', 'B', 'C', 'D', 'E' or the numeric value)",
			},
			"explanation": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "Detailed step-by-step explanation of the solution",
			},
		},
		"required": []any{"question", "options", "answer", "explanation"},
	},
}

// FeedbackSchema defines the JSON schema for answer feedback responses.
var FeedbackSchema = &llm.Schema{
	Name:        "gmat-feedback",
	Description: "Personalized tutor feedback on a student's answer",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"is_correct": map[string]any{
				"type":        "boolean",
				"description": "True if the student's answer is correct, false otherwise",
			},
			"feedback": map[string]any{
				"type":        "string",
				"description": "Personalized feedback for the student",
			},
			"remediation_topic": map[string]any{
				"type":        "string",
				"description": "A specific topic to review if incorrect (e.g. 'Algebra: Linear Equations')",
			},
		},
		"required": []any{"is_correct", "feedback", "remediation_topic"},
	},
}
