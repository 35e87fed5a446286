package components

import (
	tea "charm.land/bubbletea/v2"
)

// MenuItem is one entry of a Menu. Key, when set, activates the item
// directly from anywhere in the menu.
type MenuItem struct {
	Label  string
	Key    string
	Action func() tea.Cmd
}

// Menu tracks the cursor over a vertical list of items. Rendering is left
// to the owning screen.
type Menu struct {
	Items    []MenuItem
	Selected int
}

func NewMenu(items []MenuItem) Menu {
	return Menu{Items: items}
}

// Labels returns the item labels in order.
func (m Menu) Labels() []string {
	labels := make([]string, len(m.Items))
	for i, item := range m.Items {
		labels[i] = item.Label
	}
	return labels
}

// Update moves the cursor with the arrow or vi keys, wrapping at both ends,
// and runs the selected item on Enter or the item whose Key was pressed.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		m.Selected = (m.Selected - 1 + len(m.Items)) % len(m.Items)
	case "down", "j", "tab":
		m.Selected = (m.Selected + 1) % len(m.Items)
	case "enter":
		return m, m.run(m.Selected)
	default:
		for i, item := range m.Items {
			if item.Key != "" && item.Key == key {
				m.Selected = i
				return m, m.run(i)
			}
		}
	}

	return m, nil
}

func (m Menu) run(i int) tea.Cmd {
	if i < 0 || i >= len(m.Items) || m.Items[i].Action == nil {
		return nil
	}
	return m.Items[i].Action()
}
