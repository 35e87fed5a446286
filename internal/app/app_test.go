package app

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/csatquiz/internal/router"
	"github.com/abhisek/csatquiz/internal/screen"
	"github.com/abhisek/csatquiz/internal/screens/home"
	"github.com/abhisek/csatquiz/internal/screens/screentest"
	"github.com/abhisek/csatquiz/internal/screens/welcome"
)

type busyScreen struct {
	busy bool
	keys []string
}

func (s *busyScreen) Init() tea.Cmd { return nil }
func (s *busyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		s.keys = append(s.keys, k.String())
	}
	return s, nil
}
func (s *busyScreen) View(int, int) string   { return "busy" }
func (s *busyScreen) Title() string          { return "Busy" }
func (s *busyScreen) InterceptsEscape() bool { return s.busy }

func TestNewAppModel_FirstScreen(t *testing.T) {
	te := screentest.NewEnv(t, nil)

	m := newAppModel(Options{Env: te.Env})
	if _, ok := m.router.Active().(*welcome.WelcomeScreen); !ok {
		t.Errorf("expected the welcome screen, got %T", m.router.Active())
	}

	m = newAppModel(Options{Env: te.Env, SkipWelcome: true})
	if _, ok := m.router.Active().(*home.HomeScreen); !ok {
		t.Errorf("expected the home screen, got %T", m.router.Active())
	}
}

func TestAppModel_EscPops(t *testing.T) {
	te := screentest.NewEnv(t, nil)
	m := newAppModel(Options{Env: te.Env, SkipWelcome: true})

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		t.Error("esc on the root screen should do nothing")
	}

	m.router.Update(router.PushScreenMsg{Screen: &busyScreen{}})
	_, cmd = m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("expected a pop command")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("expected PopScreenMsg, got %T", cmd())
	}
}

func TestAppModel_EscIntercepted(t *testing.T) {
	te := screentest.NewEnv(t, nil)
	m := newAppModel(Options{Env: te.Env, SkipWelcome: true})

	busy := &busyScreen{busy: true}
	m.router.Update(router.PushScreenMsg{Screen: busy})
	if _, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape}); cmd != nil {
		if _, ok := cmd().(router.PopScreenMsg); ok {
			t.Error("esc must not pop a busy screen")
		}
	}
	if len(busy.keys) != 1 || busy.keys[0] != "esc" {
		t.Errorf("keys = %v, want [esc]", busy.keys)
	}
}

func TestAppModel_View(t *testing.T) {
	te := screentest.NewEnv(t, nil)
	m := newAppModel(Options{Env: te.Env, SkipWelcome: true})

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	v := updated.(AppModel).View()
	if v.Content == nil {
		t.Fatal("expected content after resize")
	}
	if !v.AltScreen {
		t.Error("expected the alt screen")
	}
	if !strings.Contains(te.Env.Status(), "mock") {
		t.Errorf("status = %q, want the mock provider", te.Env.Status())
	}
}

func TestRun_RequiresEnv(t *testing.T) {
	if err := Run(Options{}); err == nil {
		t.Error("expected an error without an environment")
	}
}
