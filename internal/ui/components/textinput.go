package components

import (
	"strings"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
)

// TextInput wraps bubbles/textinput with application styling.
type TextInput struct {
	Model textinput.Model
}

// NewTextInput creates a new focused text input. A zero maxLen means no
// limit.
func NewTextInput(placeholder string, maxLen, width int) TextInput {
	ti := textinput.New()
	ti.Placeholder = placeholder
	if maxLen > 0 {
		ti.CharLimit = maxLen
	}
	if width > 0 {
		ti.SetWidth(width)
	}
	ti.Focus()

	return TextInput{Model: ti}
}

// NewSecretInput creates a text input that masks what is typed, for
// credentials.
func NewSecretInput(placeholder string, width int) TextInput {
	t := NewTextInput(placeholder, 0, width)
	t.Model.EchoMode = textinput.EchoPassword
	t.Model.EchoCharacter = '•'
	return t
}

// Init returns the initial command.
func (t TextInput) Init() tea.Cmd {
	return t.Model.Focus()
}

// Update handles messages.
func (t TextInput) Update(msg tea.Msg) (TextInput, tea.Cmd) {
	var cmd tea.Cmd
	t.Model, cmd = t.Model.Update(msg)
	return t, cmd
}

// View renders the text input.
func (t TextInput) View() string {
	return t.Model.View()
}

// Value returns the current input value with surrounding space removed.
func (t TextInput) Value() string {
	return strings.TrimSpace(t.Model.Value())
}

// SetValue replaces the current input value.
func (t *TextInput) SetValue(s string) {
	t.Model.SetValue(s)
}

// Focus focuses the input.
func (t *TextInput) Focus() tea.Cmd {
	return t.Model.Focus()
}

// Blur removes focus from the input.
func (t *TextInput) Blur() {
	t.Model.Blur()
}
