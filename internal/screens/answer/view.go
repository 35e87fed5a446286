package answer

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/csatquiz/internal/ui/components"
	"github.com/abhisek/csatquiz/internal/ui/theme"
)

// maxTextWidth keeps the passage at a readable measure on wide terminals.
const maxTextWidth = 90

func (s *AnswerScreen) View(width, height int) string {
	q := s.sess.Quiz()
	if q == nil {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("No quiz loaded."))
	}

	tw := min(width-4, maxTextWidth)

	var lines []string
	add := func(block string) {
		lines = append(lines, strings.Split(block, "\n")...)
	}

	add(theme.Title.Width(tw).Render("📖 " + s.Title()))
	add("")
	add(components.Passage(q.Passage, tw))
	add("")

	s.starts = s.starts[:0]
	for i, question := range q.Questions {
		s.starts = append(s.starts, len(lines))
		promptStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Width(tw)
		if i == s.current && !s.graded {
			promptStyle = promptStyle.Foreground(theme.Primary)
		}
		add(promptStyle.Render(questionPrompt(i, question)))
		if i < len(s.choices) {
			add(lipgloss.NewStyle().Width(tw).Render(strings.TrimRight(s.choices[i].View(), "\n")))
		}
		add("")
	}

	statusLines := 0
	var status string
	if s.status != "" {
		style := theme.Correct
		if s.warning {
			style = theme.Warning
		}
		status = style.Width(tw).Render(s.status)
		statusLines = lipgloss.Height(status) + 1
	}

	s.viewHeight = max(height-statusLines, 1)
	s.totalLines = len(lines)
	if s.follow && s.current < len(s.starts) {
		start := s.starts[s.current]
		end := len(lines)
		if s.current+1 < len(s.starts) {
			end = s.starts[s.current+1]
		}
		if start < s.scroll {
			s.scroll = start
		}
		if end > s.scroll+s.viewHeight {
			s.scroll = min(start, end-s.viewHeight)
		}
	}
	s.scroll = min(max(s.scroll, 0), max(len(lines)-s.viewHeight, 0))

	visible := lines[s.scroll:min(s.scroll+s.viewHeight, len(lines))]
	body := strings.Join(visible, "\n")
	if status != "" {
		body += "\n\n" + status
	}

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, body)
}
