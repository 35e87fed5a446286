package components

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/csatquiz/internal/ui/theme"
)

// Button fires OnPress on Enter while active. An inactive button swallows
// Enter and shows Reason beside its label.
type Button struct {
	Label   string
	Reason  string
	Active  bool
	OnPress func() tea.Cmd
}

func NewButton(label string, active bool, onPress func() tea.Cmd) Button {
	return Button{
		Label:   label,
		Active:  active,
		OnPress: onPress,
	}
}

// SetActive toggles the button. reason is kept for the inactive state.
func (b *Button) SetActive(active bool, reason string) {
	b.Active = active
	b.Reason = reason
}

func (b Button) Update(msg tea.Msg) (Button, tea.Cmd) {
	if !b.Active {
		return b, nil
	}

	if kmsg, ok := msg.(tea.KeyMsg); ok {
		if kmsg.String() == "enter" && b.OnPress != nil {
			return b, b.OnPress()
		}
	}

	return b, nil
}

func (b Button) View() string {
	label := " ▸ " + b.Label + " "
	if b.Active {
		return theme.ButtonActive.Render(label)
	}
	out := theme.ButtonInactive.Render(label)
	if b.Reason != "" {
		out += "  " + theme.Hint.Render(b.Reason)
	}
	return out
}
