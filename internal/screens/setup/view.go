package setup

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/csatquiz/internal/ui/components"
	"github.com/abhisek/csatquiz/internal/ui/theme"
)

const labelWidth = 12

func (s *SetupScreen) View(width, height int) string {
	if s.generating {
		return s.renderGenerating(width, height)
	}

	cw := components.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render("⚙️ 문제 설정"))
	b.WriteString("\n\n")

	rows := []string{
		s.level.View(s.focus == fieldLevel, labelWidth),
		s.grade.View(s.focus == fieldGrade, labelWidth),
		s.difficulty.View(s.focus == fieldDifficulty, labelWidth),
		s.qtype.View(s.focus == fieldType, labelWidth),
		s.topicMode.View(s.focus == fieldTopicMode, labelWidth),
		s.renderTopic(),
		"",
		components.ArcadeButton("🚀 문제 생성하기", s.focus == fieldGenerate, 24),
	}
	b.WriteString(strings.Join(rows, "\n"))

	if s.status != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Warning.Render(s.status))
	}
	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Incorrect.Width(cw).Render(clipLines(s.errMsg, max(height-20, 3))))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, b.String())
}

func (s *SetupScreen) renderTopic() string {
	if s.topicMode.Index == topicSuggested {
		return s.suggested.View(s.focus == fieldTopic, labelWidth)
	}
	label := theme.Label.Width(labelWidth).Render("주제")
	return label + s.topic.View()
}

func (s *SetupScreen) renderGenerating(width, height int) string {
	req := s.request()
	lines := []string{
		s.spinner.View() + " " + theme.Body.Render("AI가 수능 스타일 지문을 작성 중입니다..."),
		"",
		theme.Hint.Render(req.QuestionType + " · " + req.Topic),
		"",
		theme.Hint.Render("Esc 키를 누르면 생성을 중단합니다."),
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(lines, "\n"))
}

// clipLines keeps at most n lines of s, marking the cut.
func clipLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "\n") + "\n…"
}
