package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/csatquiz/internal/router"
	"github.com/abhisek/csatquiz/internal/screen"
	"github.com/abhisek/csatquiz/internal/screens"
	"github.com/abhisek/csatquiz/internal/screens/apikey"
	"github.com/abhisek/csatquiz/internal/screens/history"
	"github.com/abhisek/csatquiz/internal/screens/setup"
	"github.com/abhisek/csatquiz/internal/store"
	"github.com/abhisek/csatquiz/internal/ui/components"
)

// stats summarizes graded attempts across all question types.
type stats struct {
	Attempts  int
	AvgScore  float64
	BestScore int
	Weakest   string
}

type statsLoadedMsg struct {
	Stats stats
	Err   error
}

// HomeScreen is the main menu.
type HomeScreen struct {
	env        *screens.Env
	menu       components.Menu
	menuLabels []string
	stats      stats
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(env *screens.Env) *HomeScreen {
	items := []components.MenuItem{
		{Label: "NEW QUIZ", Key: "n", Action: func() tea.Cmd {
			if env.NeedsAPIKey() {
				return push(apikey.New(env, setup.New(env)))
			}
			return push(setup.New(env))
		}},
		{Label: "HISTORY", Key: "h", Action: func() tea.Cmd {
			return push(history.New(env))
		}},
		{Label: "API KEY", Key: "a", Action: func() tea.Cmd {
			return push(apikey.New(env, nil))
		}},
		{Label: "EXIT", Key: "q", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}
	menu := components.NewMenu(items)

	return &HomeScreen{
		env:        env,
		menu:       menu,
		menuLabels: menu.Labels(),
	}
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg {
		return router.PushScreenMsg{Screen: s}
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	return h.loadStats()
}

// Resume reloads the stats after a quiz was graded.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.loadStats()
}

func (h *HomeScreen) loadStats() tea.Cmd {
	repo := h.env.Attempts
	if repo == nil {
		return nil
	}
	return func() tea.Msg {
		byType, err := repo.StatsByQuestionType(context.Background())
		if err != nil {
			return statsLoadedMsg{Err: err}
		}
		return statsLoadedMsg{Stats: summarize(byType)}
	}
}

// summarize folds per-type stats into one line. Weakest names the type
// with the lowest average once more than one type has been tried.
func summarize(byType []store.TypeStats) stats {
	var st stats
	var total float64
	lowest := -1.0
	for _, ts := range byType {
		st.Attempts += ts.Attempts
		total += ts.AvgScore * float64(ts.Attempts)
		st.BestScore = max(st.BestScore, ts.BestScore)
		if ts.QuestionType != "" && (lowest < 0 || ts.AvgScore < lowest) {
			lowest = ts.AvgScore
			st.Weakest = ts.QuestionType
		}
	}
	if st.Attempts > 0 {
		st.AvgScore = total / float64(st.Attempts)
	}
	if len(byType) < 2 {
		st.Weakest = ""
	}
	return st
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if msg, ok := msg.(statsLoadedMsg); ok {
		// A broken attempt log only costs the stats bar.
		if msg.Err == nil {
			h.stats = msg.Stats
		}
		return h, nil
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) mascot() MascotVariant {
	switch {
	case h.env.NeedsAPIKey():
		return MascotAlert
	case h.stats.BestScore == 100:
		return MascotCelebrating
	}
	return MascotIdle
}

func (h *HomeScreen) View(width, height int) string {
	// height is the content area; estimate full terminal height
	// by adding back header (3) + footer (3) + frame gaps
	termHeight := height + 8
	compact := termHeight < 30 || width < 100

	cw := components.ContentWidth(width)

	var sections []string
	sections = append(sections, renderTitle(cw, compact))

	if !compact {
		sections = append(sections, renderMascotBox(h.mascot(), cw))
	}

	sections = append(sections, renderStatsBar(h.stats, cw, compact))

	if h.env.NeedsAPIKey() {
		sections = append(sections, renderKeyBanner(cw))
	}

	if termHeight < 30 {
		sections = append(sections, renderArcadeMenuCompact(h.menuLabels, h.menu.Selected, cw))
	} else {
		sections = append(sections, renderArcadeMenu(h.menuLabels, h.menu.Selected, cw))
	}

	content := strings.Join(sections, "\n\n")

	return components.CabinetFrame(content, width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}
