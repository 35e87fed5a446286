// Package history lists saved quizzes and loads or deletes them.
package history

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/google/uuid"

	histstore "github.com/abhisek/csatquiz/internal/history"
	"github.com/abhisek/csatquiz/internal/quiz"
	"github.com/abhisek/csatquiz/internal/router"
	"github.com/abhisek/csatquiz/internal/screen"
	"github.com/abhisek/csatquiz/internal/screens"
	"github.com/abhisek/csatquiz/internal/screens/answer"
	"github.com/abhisek/csatquiz/internal/ui/layout"
	"github.com/abhisek/csatquiz/internal/ui/theme"
)

type historyLoadedMsg struct {
	Names []string
	Err   error
}

// HistoryScreen displays saved quiz files, newest first.
type HistoryScreen struct {
	env        *screens.Env
	names      []string
	selected   int
	loaded     bool
	confirming bool
	errMsg     string
	status     string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)
var _ screen.Resumer = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(env *screens.Env) *HistoryScreen {
	return &HistoryScreen{env: env}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return s.load()
}

// Resume refreshes the list, which may have changed on the quiz screen.
func (s *HistoryScreen) Resume() tea.Cmd {
	return s.load()
}

func (s *HistoryScreen) load() tea.Cmd {
	hist := s.env.History
	return func() tea.Msg {
		names, err := hist.List()
		return historyLoadedMsg{Names: names, Err: err}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	if s.confirming {
		return []layout.KeyHint{
			{Key: "Y", Description: "Delete"},
			{Key: "N", Description: "Keep"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Load"},
		{Key: "D", Description: "Delete"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		s.loaded = true
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.errMsg = ""
		s.names = msg.Names
		s.selected = min(s.selected, max(len(s.names)-1, 0))
		return s, nil

	case tea.KeyMsg:
		if s.confirming {
			s.confirming = false
			if msg.String() == "y" {
				return s, s.deleteSelected()
			}
			return s, nil
		}

		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.names)-1 {
				s.selected++
			}
		case "enter":
			return s, s.loadSelected()
		case "d":
			if len(s.names) > 0 {
				s.confirming = true
			}
		}
	}
	return s, nil
}

func (s *HistoryScreen) loadSelected() tea.Cmd {
	if len(s.names) == 0 {
		return nil
	}
	name := s.names[s.selected]
	q, err := s.env.History.Load(name)
	if err != nil {
		s.status = fmt.Sprintf("불러오기 실패: %v", err)
		return nil
	}
	s.status = ""

	sess := quiz.NewSession(uuid.NewString())
	sess.SetQuiz(q, histstore.TopicFromName(name))
	next := answer.New(s.env, sess, "")
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (s *HistoryScreen) deleteSelected() tea.Cmd {
	name := s.names[s.selected]
	if err := s.env.History.Delete(name); err != nil {
		s.status = fmt.Sprintf("삭제 실패: %v", err)
		return nil
	}
	s.status = fmt.Sprintf("삭제되었습니다. (%s)", name)
	return s.load()
}

func (s *HistoryScreen) View(width, height int) string {
	center := func(style lipgloss.Style, text string) string {
		return style.Width(width).Align(lipgloss.Center).Render(text)
	}

	if s.errMsg != "" {
		return center(lipgloss.NewStyle().Foreground(theme.Error),
			fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return center(lipgloss.NewStyle().Foreground(theme.TextDim),
			"\n\n  Loading history...")
	}

	var b strings.Builder
	b.WriteString(center(theme.Label, "📂 저장된 문제"))
	b.WriteString("\n")
	b.WriteString(center(theme.Hint, s.env.History.Dir()))
	b.WriteString("\n\n")

	if len(s.names) == 0 {
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.TextDim).Italic(true),
			"저장된 기록이 없습니다."))
	}

	// window the list around the selection
	rows := max(height-8, 1)
	first := min(max(s.selected-rows/2, 0), max(len(s.names)-rows, 0))
	for i := first; i < min(first+rows, len(s.names)); i++ {
		prefix := "  "
		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			prefix = "> "
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
			style.Render(prefix+s.names[i])))
		b.WriteString("\n")
	}

	switch {
	case s.confirming:
		b.WriteString("\n")
		b.WriteString(center(theme.Warning, fmt.Sprintf("%s 파일을 삭제할까요? (y/n)", s.names[s.selected])))
	case s.status != "":
		b.WriteString("\n")
		b.WriteString(center(theme.Hint, s.status))
	}

	return b.String()
}
