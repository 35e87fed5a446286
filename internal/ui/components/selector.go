package components

import (
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/csatquiz/internal/ui/theme"
)

// Selector cycles through a fixed list of options with ←/→.
type Selector struct {
	Label   string
	Options []string
	Index   int
}

// NewSelector creates a selector with the first option chosen.
func NewSelector(label string, options []string) Selector {
	return Selector{Label: label, Options: options}
}

// Update handles ←/→ and wraps around at both ends.
func (s Selector) Update(msg tea.Msg) (Selector, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(s.Options) == 0 {
		return s, nil
	}

	switch kmsg.String() {
	case "left", "h":
		s.Index = (s.Index - 1 + len(s.Options)) % len(s.Options)
	case "right", "l":
		s.Index = (s.Index + 1) % len(s.Options)
	}
	return s, nil
}

// Value returns the chosen option, or "" for an empty selector.
func (s Selector) Value() string {
	if s.Index < 0 || s.Index >= len(s.Options) {
		return ""
	}
	return s.Options[s.Index]
}

// View renders the label and the chosen option.
func (s Selector) View(focused bool, labelWidth int) string {
	label := theme.Label.Width(labelWidth).Render(s.Label)
	value := "  " + s.Value() + "  "
	if focused {
		value = "◂ " + s.Value() + " ▸"
		return label + lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(value)
	}
	return label + theme.Unselected.Render(value)
}
