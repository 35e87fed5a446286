package quizgen

import (
	"fmt"
	"strings"
)

// GenerationError reports a failed model call. Message is shown to the user
// verbatim.
type GenerationError struct {
	Message string

	// AvailableModels is filled when the configured model was not found
	// and the provider could list the alternatives.
	AvailableModels []string

	Err error
}

func (e *GenerationError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if len(e.AvailableModels) > 0 {
		fmt.Fprintf(&b, "\navailable models: %s", strings.Join(e.AvailableModels, ", "))
	}
	if e.Err != nil {
		fmt.Fprintf(&b, "\ndetails: %v", e.Err)
	}
	return b.String()
}

func (e *GenerationError) Unwrap() error { return e.Err }

// NormalizationKind classifies why model output could not become a quiz.
type NormalizationKind string

const (
	KindMalformedOutput NormalizationKind = "malformed-output"
	KindSchemaViolation NormalizationKind = "schema-violation"
)

// Problem is one field-level defect in model output.
type Problem struct {
	// Path is a JSON pointer into the document, e.g. "/questions/0/answer".
	Path    string
	Message string
}

func (p Problem) String() string {
	if p.Path == "" {
		return p.Message
	}
	return p.Path + ": " + p.Message
}

// NormalizationError reports model output that could not be turned into a
// quiz. Raw is the text exactly as the model returned it.
type NormalizationError struct {
	Kind     NormalizationKind
	Raw      string
	Problems []Problem
	Err      error
}

func (e *NormalizationError) Error() string {
	switch e.Kind {
	case KindSchemaViolation:
		parts := make([]string, len(e.Problems))
		for i, p := range e.Problems {
			parts[i] = p.String()
		}
		return fmt.Sprintf("model output does not match the quiz format (%d problems): %s",
			len(e.Problems), strings.Join(parts, "; "))
	default:
		return fmt.Sprintf("model output is not valid JSON: %v", e.Err)
	}
}

func (e *NormalizationError) Unwrap() error { return e.Err }
