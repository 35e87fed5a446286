package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/csatquiz/internal/ui/theme"
)

// circled numbers used for option labels on the printed exam.
var optionLabels = []string{"①", "②", "③", "④", "⑤", "⑥", "⑦", "⑧"}

// OptionLabel returns the exam-style label for the i-th option.
func OptionLabel(i int) string {
	if i >= 0 && i < len(optionLabels) {
		return optionLabels[i]
	}
	return fmt.Sprintf("(%d)", i+1)
}

// MultiChoice is a multiple-choice selector. The chosen option can be
// changed freely until the question is revealed after grading.
type MultiChoice struct {
	Question string
	Options  []string
	Cursor   int
	Chosen   int
	Revealed bool
	Correct  int
	Focused  bool
}

// NewMultiChoice creates a new multiple-choice component with nothing chosen.
func NewMultiChoice(question string, options []string) MultiChoice {
	return MultiChoice{
		Question: question,
		Options:  options,
		Chosen:   -1,
		Correct:  -1,
	}
}

// Init returns nil.
func (m MultiChoice) Init() tea.Cmd {
	return nil
}

// Update handles keyboard navigation and selection.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Revealed {
		return m, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(m.Options)-1 {
			m.Cursor++
		}
	case "enter", "space", " ":
		if len(m.Options) > 0 {
			m.Chosen = m.Cursor
		}
	case "1", "2", "3", "4", "5":
		i := int(key[0] - '1')
		if i < len(m.Options) {
			m.Cursor = i
			m.Chosen = i
		}
	}

	return m, nil
}

// Value returns the text of the chosen option, or "" if none.
func (m MultiChoice) Value() string {
	if m.Chosen < 0 || m.Chosen >= len(m.Options) {
		return ""
	}
	return m.Options[m.Chosen]
}

// Choose selects the option whose text equals value. It reports whether
// such an option exists.
func (m *MultiChoice) Choose(value string) bool {
	for i, opt := range m.Options {
		if opt == value {
			m.Chosen = i
			m.Cursor = i
			return true
		}
	}
	return false
}

// Reveal locks the component and marks the option matching answer as
// correct.
func (m *MultiChoice) Reveal(answer string) {
	m.Revealed = true
	m.Correct = -1
	for i, opt := range m.Options {
		if opt == answer {
			m.Correct = i
			break
		}
	}
}

// View renders the multiple-choice component.
func (m MultiChoice) View() string {
	var b strings.Builder
	if m.Question != "" {
		b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Question))
		b.WriteString("\n\n")
	}

	for i, opt := range m.Options {
		prefix := "  "
		if m.Focused && i == m.Cursor && !m.Revealed {
			prefix = "▸ "
		}
		mark := " "
		if i == m.Chosen {
			mark = "●"
		}
		line := fmt.Sprintf("%s%s %s %s", prefix, mark, OptionLabel(i), opt)

		var style lipgloss.Style
		switch {
		case m.Revealed && i == m.Correct:
			style = theme.Correct
		case m.Revealed && i == m.Chosen:
			style = theme.Incorrect
		case m.Revealed:
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		case i == m.Chosen:
			style = theme.Selected
		case m.Focused && i == m.Cursor:
			style = lipgloss.NewStyle().Foreground(theme.Primary)
		default:
			style = theme.Unselected
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	return b.String()
}
