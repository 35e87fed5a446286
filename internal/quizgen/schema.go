package quizgen

import "github.com/abhisek/csatquiz/internal/llm"

// QuizSchema is the JSON schema a generated quiz must satisfy in strict
// mode.
var QuizSchema = &llm.Schema{
	Name:        "csat-quiz",
	Description: "A CSAT-style English reading passage with multiple-choice questions and vocabulary",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":      "string",
				"minLength": 1,
			},
			"passage": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "Reading passage. May contain **bold**, *italic* and the _______ blank marker.",
			},
			"questions": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"type":     map[string]any{"type": "string"},
						"question": map[string]any{"type": "string", "minLength": 1},
						"options": map[string]any{
							"type":     "array",
							"minItems": 5,
							"maxItems": 5,
							"items":    map[string]any{"type": "string", "minLength": 1},
						},
						"answer": map[string]any{
							"type":        []any{"string", "integer"},
							"description": "Correct option; its text before the first '.' is the option index",
						},
						"explanation": map[string]any{"type": "string"},
					},
					"required": []any{"type", "question", "options", "answer", "explanation"},
				},
			},
			"vocabulary": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"word":    map[string]any{"type": "string", "minLength": 1},
						"meaning": map[string]any{"type": "string"},
					},
					"required": []any{"word", "meaning"},
				},
			},
		},
		"required": []any{"title", "passage", "questions", "vocabulary"},
	},
}
