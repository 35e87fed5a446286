// Package apikey asks for the LLM API key when none is configured.
package apikey

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/csatquiz/internal/router"
	"github.com/abhisek/csatquiz/internal/screen"
	"github.com/abhisek/csatquiz/internal/screens"
	"github.com/abhisek/csatquiz/internal/ui/components"
	"github.com/abhisek/csatquiz/internal/ui/layout"
	"github.com/abhisek/csatquiz/internal/ui/theme"
)

const emptyKeyMsg = "API Key를 입력해주세요."

// APIKeyScreen collects a key for the configured provider. The key lives in
// memory for the rest of the run and is never written to disk.
type APIKeyScreen struct {
	env    *screens.Env
	next   screen.Screen
	input  components.TextInput
	button components.Button
	errMsg string
}

var _ screen.Screen = (*APIKeyScreen)(nil)
var _ screen.KeyHintProvider = (*APIKeyScreen)(nil)

// New creates an APIKeyScreen. After a key is saved the screen is replaced
// by next, or popped when next is nil.
func New(env *screens.Env, next screen.Screen) *APIKeyScreen {
	s := &APIKeyScreen{
		env:   env,
		next:  next,
		input: components.NewSecretInput("API Key", 48),
	}
	s.button = components.NewButton("저장", false, s.save)
	s.button.SetActive(false, emptyKeyMsg)
	return s
}

func (s *APIKeyScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *APIKeyScreen) Title() string {
	return "API Key"
}

func (s *APIKeyScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Save"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *APIKeyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "enter" {
		if !s.button.Active {
			s.errMsg = emptyKeyMsg
			return s, nil
		}
		var cmd tea.Cmd
		s.button, cmd = s.button.Update(msg)
		return s, cmd
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	s.button.SetActive(strings.TrimSpace(s.input.Value()) != "", emptyKeyMsg)
	return s, cmd
}

func (s *APIKeyScreen) save() tea.Cmd {
	key := strings.TrimSpace(s.input.Value())
	if key == "" {
		s.errMsg = emptyKeyMsg
		return nil
	}
	s.env.SetAPIKey(key)
	s.errMsg = ""

	if s.next != nil {
		next := s.next
		return func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	}
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (s *APIKeyScreen) View(width, height int) string {
	cw := components.ContentWidth(width)
	cfg := s.env.LLMConfig()

	var b strings.Builder
	b.WriteString(theme.Title.Width(cw).Render("API Key 설정"))
	b.WriteString("\n\n")
	b.WriteString(theme.Subtitle.Width(cw).Render("provider: " + cfg.Provider))
	b.WriteString("\n\n")
	b.WriteString(s.input.View())
	b.WriteString("\n\n")
	b.WriteString(s.button.View())

	if s.errMsg != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Incorrect.Render(s.errMsg))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		components.ArcadeCard(b.String(), cw))
}
