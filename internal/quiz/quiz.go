package quiz

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Quiz is one generated reading passage with its questions and vocabulary.
type Quiz struct {
	Title      string       `json:"title"`
	Passage    string       `json:"passage"`
	Questions  []Question   `json:"questions"`
	Vocabulary []VocabEntry `json:"vocabulary"`
}

// Question is a single multiple-choice item.
type Question struct {
	// Type is the question-type label the model assigned, e.g. "빈칸추론".
	Type     string   `json:"type"`
	Question string   `json:"question"`
	Options  []string `json:"options"`

	// Answer names the correct option. Its leading index token (the text
	// before the first ".") is what grading compares.
	Answer      string `json:"answer"`
	Explanation string `json:"explanation"`
}

// VocabEntry is a word or idiom from the passage with its Korean meaning.
type VocabEntry struct {
	Word    string `json:"word"`
	Meaning string `json:"meaning"`
}

// UnmarshalJSON accepts a numeric answer ("answer": 3) as well as a string.
func (q *Question) UnmarshalJSON(data []byte) error {
	type plain Question
	var aux struct {
		plain
		Answer json.RawMessage `json:"answer"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*q = Question(aux.plain)

	raw := bytes.TrimSpace(aux.Answer)
	switch {
	case len(raw) == 0 || bytes.Equal(raw, []byte("null")):
		q.Answer = ""
	case raw[0] == '"':
		if err := json.Unmarshal(raw, &q.Answer); err != nil {
			return fmt.Errorf("answer: %w", err)
		}
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return fmt.Errorf("answer must be a string or number: %w", err)
		}
		q.Answer = n.String()
	}
	return nil
}

// LeadingIndex returns the trimmed text before the first "." of s. It is the
// canonical option identifier: "3. Because..." yields "3".
func LeadingIndex(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}

// CorrectIndex returns the leading index of the question's answer.
func (q Question) CorrectIndex() string {
	return LeadingIndex(q.Answer)
}

// HasOption reports whether opt is one of the question's options.
func (q Question) HasOption(opt string) bool {
	for _, o := range q.Options {
		if o == opt {
			return true
		}
	}
	return false
}
