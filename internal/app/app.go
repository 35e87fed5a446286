// Package app wires the terminal UI: the root Bubble Tea model, the router
// and the shared screen environment.
package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/csatquiz/internal/router"
	"github.com/abhisek/csatquiz/internal/screen"
	"github.com/abhisek/csatquiz/internal/screens"
	"github.com/abhisek/csatquiz/internal/screens/home"
	"github.com/abhisek/csatquiz/internal/screens/welcome"
	"github.com/abhisek/csatquiz/internal/ui/layout"
)

// Options configures the terminal UI.
type Options struct {
	Env *screens.Env

	// SkipWelcome starts on the home screen without the splash.
	SkipWelcome bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	env    *screens.Env
	router *router.Router
	width  int
	height int
}

// newAppModel creates a new AppModel starting at the welcome or home screen.
func newAppModel(opts Options) AppModel {
	env := opts.Env
	homeFactory := func() screen.Screen { return home.New(env) }

	var first screen.Screen = welcome.New(homeFactory)
	if opts.SkipWelcome {
		first = homeFactory()
	}
	return AppModel{
		env:    env,
		router: router.New(first),
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.router.Active().Init()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if ei, ok := m.router.Active().(screen.EscapeInterceptor); ok && ei.InterceptsEscape() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	status := ""
	if m.env != nil {
		status = m.env.Status()
	}
	header := layout.RenderHeader(title, status, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = append(hp.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program and blocks until the user quits.
func Run(opts Options) error {
	if opts.Env == nil {
		return fmt.Errorf("app: screen environment is required")
	}
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
