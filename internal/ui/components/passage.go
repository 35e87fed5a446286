package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/csatquiz/internal/render"
	"github.com/abhisek/csatquiz/internal/ui/theme"
)

// Passage renders passage markup with bold and italic runs styled, inside
// an exam-style box of the given outer width.
func Passage(text string, width int) string {
	return theme.PassageBox.Width(max(width, 20)).Render(StyledText(text, lipgloss.NewStyle()))
}

// StyledText applies bold and italic markup to text on top of base.
func StyledText(text string, base lipgloss.Style) string {
	var b strings.Builder
	for _, seg := range render.Tokenize(text) {
		if seg.Break {
			b.WriteString("\n")
			continue
		}
		style := base.Bold(seg.Bold).Italic(seg.Italic)
		if seg.Bold {
			// bold marks the underlined parts of exam passages
			style = style.Underline(true)
		}
		b.WriteString(style.Render(seg.Text))
	}
	return b.String()
}
