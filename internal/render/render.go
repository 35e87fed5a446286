// Package render splits passage markup into styled segments. Passages use
// **bold** and *italic* markers and plain newlines.
package render

import (
	"html"
	"strings"
)

// Segment is a run of text with uniform style. A Break segment has no text
// and stands for a line break.
type Segment struct {
	Text   string
	Bold   bool
	Italic bool
	Break  bool
}

// Tokenize splits s into segments. Bold markers are paired first, left to
// right and shortest match; italic markers are then paired inside every
// run. A marker without a partner is kept as literal text.
func Tokenize(s string) []Segment {
	var out []Segment
	for i, bold := range splitPairs(s, "**") {
		isBold := i%2 == 1
		for j, run := range splitPairs(bold, "*") {
			isItalic := j%2 == 1
			out = appendLines(out, run, isBold, isItalic)
		}
	}
	return out
}

// splitPairs cuts s at paired occurrences of marker. Even indexes are
// outside a pair, odd indexes inside one.
func splitPairs(s, marker string) []string {
	var parts []string
	for {
		open := strings.Index(s, marker)
		if open < 0 {
			break
		}
		rest := s[open+len(marker):]
		closing := strings.Index(rest, marker)
		if closing < 0 {
			break
		}
		parts = append(parts, s[:open], rest[:closing])
		s = rest[closing+len(marker):]
	}
	return append(parts, s)
}

func appendLines(out []Segment, text string, bold, italic bool) []Segment {
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			out = append(out, Segment{Break: true})
		}
		if line != "" {
			out = append(out, Segment{Text: line, Bold: bold, Italic: italic})
		}
	}
	return out
}

// HTML renders s as escaped HTML using <b>, <i> and <br> elements.
func HTML(s string) string {
	var b strings.Builder
	for _, seg := range Tokenize(s) {
		if seg.Break {
			b.WriteString("<br>")
			continue
		}
		text := html.EscapeString(seg.Text)
		if seg.Italic {
			text = "<i>" + text + "</i>"
		}
		if seg.Bold {
			text = "<b>" + text + "</b>"
		}
		b.WriteString(text)
	}
	return b.String()
}

// Plain returns s with every paired marker removed.
func Plain(s string) string {
	var b strings.Builder
	for _, seg := range Tokenize(s) {
		if seg.Break {
			b.WriteByte('\n')
			continue
		}
		b.WriteString(seg.Text)
	}
	return b.String()
}

// QuestionText trims a question stem and drops bold markers, which clash
// with the numbering shown in front of it.
func QuestionText(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "**", "")
}
