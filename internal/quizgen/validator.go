package quizgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/csatquiz/internal/csat"
	"github.com/abhisek/csatquiz/internal/quiz"
)

// Validator checks a decoded quiz for defects the schema cannot express.
// Implementations should be stateless and safe for concurrent use.
type Validator interface {
	// Name returns a short identifier, e.g. "structural".
	Name() string

	// Validate returns every problem found, or nil. instr describes the
	// question type the quiz was generated for.
	Validate(q *quiz.Quiz, instr csat.Instruction) []Problem
}

// StructuralValidator checks the question count against the question type
// and that every answer names one of its options.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(q *quiz.Quiz, instr csat.Instruction) []Problem {
	var problems []Problem

	if instr.Count > 0 && len(q.Questions) != instr.Count {
		problems = append(problems, Problem{
			Path:    "/questions",
			Message: fmt.Sprintf("expected %d questions, got %d", instr.Count, len(q.Questions)),
		})
	}

	for i, question := range q.Questions {
		path := fmt.Sprintf("/questions/%d", i)
		if strings.TrimSpace(question.Answer) == "" {
			problems = append(problems, Problem{Path: path + "/answer", Message: "answer is empty"})
			continue
		}
		if len(question.Options) == 0 {
			continue
		}
		if !answerMatchesOption(question) {
			problems = append(problems, Problem{
				Path:    path + "/answer",
				Message: fmt.Sprintf("answer %q does not name any option", question.Answer),
			})
		}
	}

	return problems
}

func answerMatchesOption(q quiz.Question) bool {
	want := q.CorrectIndex()
	for _, opt := range q.Options {
		if quiz.LeadingIndex(opt) == want {
			return true
		}
	}
	return false
}
