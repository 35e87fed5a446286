package quizgen

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/abhisek/csatquiz/internal/csat"
	"github.com/abhisek/csatquiz/internal/llm"
	"github.com/abhisek/csatquiz/internal/quiz"
)

// NormalizeOptions controls how model text becomes a quiz.
type NormalizeOptions struct {
	// Instruction is the question type's instruction; its Count is checked
	// against the number of questions. A zero Count skips the check.
	Instruction csat.Instruction

	// Validators run after the schema. Nil means the StructuralValidator.
	Validators []Validator

	// Lenient decodes best-effort: missing fields stay empty and problems
	// are reported through Warn instead of failing.
	Lenient bool

	// Warn receives lenient-mode problems. Nil writes to stderr.
	Warn func(msg string)
}

var problemPrinter = message.NewPrinter(language.English)

// Normalize turns raw model text into a quiz. It extracts a fenced block,
// repairs trailing commas, parses, passes through an error document and
// validates the result.
func Normalize(raw string, opts NormalizeOptions) (*quiz.Quiz, error) {
	text := RepairTrailingCommas(strings.TrimSpace(ExtractFenced(raw)))

	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(text))
	if err != nil {
		return nil, &NormalizationError{Kind: KindMalformedOutput, Raw: raw, Err: err}
	}

	if msg, ok := errorDocument(doc); ok {
		return nil, &GenerationError{Message: msg}
	}

	validators := opts.Validators
	if validators == nil {
		validators = []Validator{&StructuralValidator{}}
	}

	if opts.Lenient {
		return decodeLenient(text, raw, opts, validators)
	}

	problems, err := schemaProblems(doc)
	if err != nil {
		return nil, err
	}
	if len(problems) > 0 {
		return nil, &NormalizationError{Kind: KindSchemaViolation, Raw: raw, Problems: problems}
	}

	var q quiz.Quiz
	if err := json.Unmarshal([]byte(text), &q); err != nil {
		return nil, &NormalizationError{Kind: KindMalformedOutput, Raw: raw, Err: err}
	}

	for _, v := range validators {
		problems = append(problems, v.Validate(&q, opts.Instruction)...)
	}
	if len(problems) > 0 {
		return nil, &NormalizationError{Kind: KindSchemaViolation, Raw: raw, Problems: problems}
	}

	return &q, nil
}

func decodeLenient(text, raw string, opts NormalizeOptions, validators []Validator) (*quiz.Quiz, error) {
	var q quiz.Quiz
	if err := json.Unmarshal([]byte(text), &q); err != nil {
		return nil, &NormalizationError{Kind: KindMalformedOutput, Raw: raw, Err: err}
	}
	if q.Questions == nil {
		q.Questions = []quiz.Question{}
	}
	if q.Vocabulary == nil {
		q.Vocabulary = []quiz.VocabEntry{}
	}

	warn := opts.Warn
	if warn == nil {
		warn = func(msg string) { llm.Warn(context.Background(), msg) }
	}
	for _, v := range validators {
		for _, p := range v.Validate(&q, opts.Instruction) {
			warn(fmt.Sprintf("%s: %s", v.Name(), p))
		}
	}
	return &q, nil
}

// errorDocument reports whether doc is an object carrying a top-level
// "error" string and no questions.
func errorDocument(doc any) (string, bool) {
	obj, ok := doc.(map[string]any)
	if !ok {
		return "", false
	}
	msg, ok := obj["error"].(string)
	if !ok {
		return "", false
	}
	if _, hasQuestions := obj["questions"]; hasQuestions {
		return "", false
	}
	return msg, true
}

// schemaProblems validates doc, as decoded by jsonschema.UnmarshalJSON,
// against QuizSchema and flattens the validation tree into leaf problems.
func schemaProblems(doc any) ([]Problem, error) {
	compiled, err := llm.CompileSchema(QuizSchema)
	if err != nil {
		return nil, fmt.Errorf("compile quiz schema: %w", err)
	}

	verr := compiled.Validate(doc)
	if verr == nil {
		return nil, nil
	}
	ve, ok := verr.(*jsonschema.ValidationError)
	if !ok {
		return []Problem{{Message: verr.Error()}}, nil
	}

	var problems []Problem
	collectProblems(ve, &problems)
	return problems, nil
}

func collectProblems(ve *jsonschema.ValidationError, out *[]Problem) {
	if len(ve.Causes) == 0 {
		*out = append(*out, Problem{
			Path:    "/" + strings.Join(ve.InstanceLocation, "/"),
			Message: ve.ErrorKind.LocalizedString(problemPrinter),
		})
		return
	}
	for _, c := range ve.Causes {
		collectProblems(c, out)
	}
}

// ExtractFenced returns the inner content of the first fenced block labeled
// json, else of the first fenced block of any kind, else raw unchanged.
func ExtractFenced(raw string) string {
	if _, after, ok := strings.Cut(raw, "```json"); ok {
		inner, _, _ := strings.Cut(after, "```")
		return inner
	}
	if _, after, ok := strings.Cut(raw, "```"); ok {
		inner, _, _ := strings.Cut(after, "```")
		return dropLanguageTag(inner)
	}
	return raw
}

// dropLanguageTag removes an info string such as "JSON" from the first line
// of a fenced block.
func dropLanguageTag(s string) string {
	first, rest, ok := strings.Cut(s, "\n")
	if !ok {
		return s
	}
	tag := strings.TrimSpace(first)
	if tag == "" || strings.ContainsAny(tag, "{}[]\"") {
		return s
	}
	return rest
}

// RepairTrailingCommas deletes every comma that is followed only by
// whitespace before a closing ']' or '}'. Commas inside string literals are
// left alone, so valid JSON comes back byte identical.
func RepairTrailingCommas(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			b.WriteByte(c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
		case ',':
			j := i + 1
			for j < len(s) && isJSONSpace(s[j]) {
				j++
			}
			if j < len(s) && (s[j] == ']' || s[j] == '}') {
				continue
			}
		}
		b.WriteByte(c)
	}
	return b.String()
}

func isJSONSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}
