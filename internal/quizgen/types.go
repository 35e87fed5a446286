package quizgen

import (
	"context"
	"strings"

	"github.com/abhisek/csatquiz/internal/csat"
	"github.com/abhisek/csatquiz/internal/quiz"
)

// GenerationRequest holds the user's selections for one quiz.
type GenerationRequest struct {
	SchoolLevel csat.SchoolLevel
	Grade       csat.Grade
	Difficulty  csat.Difficulty

	// QuestionType is a catalogue label, e.g. "29번: 어법 (Grammar) (1문제)".
	// Unknown labels are accepted and treated as a single question.
	QuestionType string

	// Topic is free text or one of csat.SuggestedTopics.
	Topic string
}

// Validate checks the fields a prompt cannot be built without.
func (r GenerationRequest) Validate() error {
	if strings.TrimSpace(r.Topic) == "" {
		return &quiz.ValidationError{Field: "topic", Message: "enter or choose a topic"}
	}
	if strings.TrimSpace(r.QuestionType) == "" {
		return &quiz.ValidationError{Field: "question type", Message: "choose a question type"}
	}
	return nil
}

// Generator produces quizzes.
type Generator interface {
	// Generate builds a prompt from req, calls the model and returns the
	// normalized quiz. No partial quiz is returned on error.
	Generate(ctx context.Context, req GenerationRequest) (*quiz.Quiz, error)
}
