// Package results shows a graded quiz: the score, per-question outcomes,
// explanations and the vocabulary list.
package results

import (
	"fmt"
	"image/color"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/csatquiz/internal/quiz"
	"github.com/abhisek/csatquiz/internal/router"
	"github.com/abhisek/csatquiz/internal/screen"
	"github.com/abhisek/csatquiz/internal/ui/components"
	"github.com/abhisek/csatquiz/internal/ui/layout"
	"github.com/abhisek/csatquiz/internal/ui/theme"
)

// ResultsScreen displays the grading result.
type ResultsScreen struct {
	quiz   *quiz.Quiz
	result quiz.Result
	scroll int
}

var _ screen.Screen = (*ResultsScreen)(nil)
var _ screen.KeyHintProvider = (*ResultsScreen)(nil)

// New creates a new ResultsScreen.
func New(q *quiz.Quiz, res quiz.Result) *ResultsScreen {
	return &ResultsScreen{quiz: q, result: res}
}

func (s *ResultsScreen) Init() tea.Cmd {
	return nil
}

func (s *ResultsScreen) Title() string {
	return "Results"
}

func (s *ResultsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Enter", Description: "Back to quiz"},
	}
}

func (s *ResultsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			s.scroll = max(s.scroll-1, 0)
		case "down", "j":
			s.scroll++
		case "pgup":
			s.scroll = max(s.scroll-10, 0)
		case "pgdown":
			s.scroll += 10
		}
	}
	return s, nil
}

func (s *ResultsScreen) View(width, height int) string {
	if s.quiz == nil {
		return ""
	}
	tw := min(width-4, 90)
	res := s.result

	var b strings.Builder

	b.WriteString(theme.Title.Width(tw).Render("📝 채점 결과"))
	b.WriteString("\n\n")

	// Per-question outcomes.
	for _, qr := range res.Questions {
		b.WriteString(outcomeLine(qr))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	// Score.
	b.WriteString(lipgloss.NewStyle().Width(tw).Align(lipgloss.Center).Render(
		fmt.Sprintf("🏆 당신의 점수는 %s 입니다!",
			lipgloss.NewStyle().Bold(true).Foreground(scoreColor(res.Score)).
				Render(fmt.Sprintf("%d점", res.Score)))))
	b.WriteString("\n")
	bar := components.NewProgressBar(
		fmt.Sprintf("%d/%d", res.CorrectCount, res.Total),
		float64(res.Score)/100, true, tw)
	bar.Color = scoreColor(res.Score)
	b.WriteString(bar.View())
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("─", tw))

	// Explanations.
	b.WriteString(theme.Label.Render("💡 해설 및 정답"))
	b.WriteString("\n")
	b.WriteString(divider)
	b.WriteString("\n")
	for i, question := range s.quiz.Questions {
		body := fmt.Sprintf("Q%d. 정답: %s\n유형: %s\n해설: %s",
			i+1, question.Answer, question.Type, question.Explanation)
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Width(tw).Render(body))
		b.WriteString("\n\n")
	}

	// Vocabulary.
	if len(s.quiz.Vocabulary) > 0 {
		b.WriteString(theme.Label.Render("📚 단어장"))
		b.WriteString("\n")
		b.WriteString(divider)
		b.WriteString("\n")
		for _, v := range s.quiz.Vocabulary {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.ArcadeCyan).Bold(true).Render(v.Word))
			b.WriteString("  ")
			b.WriteString(lipgloss.NewStyle().Foreground(theme.TextDim).Render(v.Meaning))
			b.WriteString("\n")
		}
	}

	lines := strings.Split(strings.TrimRight(b.String(), "\n"), "\n")
	s.scroll = min(s.scroll, max(len(lines)-height, 0))
	visible := lines[s.scroll:min(s.scroll+height, len(lines))]

	return lipgloss.PlaceHorizontal(width, lipgloss.Center, strings.Join(visible, "\n"))
}

// outcomeLine renders one question's grading outcome.
func outcomeLine(qr quiz.QuestionResult) string {
	if qr.IsCorrect {
		return theme.Correct.Render(fmt.Sprintf("✔ %d번 정답!", qr.Number))
	}
	selected := qr.Selected
	if !qr.Answered() {
		selected = "-"
	}
	return theme.Incorrect.Render(fmt.Sprintf("✘ %d번 오답 (선택: %s / 정답: %s)",
		qr.Number, selected, qr.Correct))
}

// scoreColor returns the theme color for a score band.
func scoreColor(score int) color.Color {
	switch {
	case score >= 80:
		return theme.Success
	case score >= 50:
		return theme.Accent
	default:
		return theme.Error
	}
}
