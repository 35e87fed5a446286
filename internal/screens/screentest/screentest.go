// Package screentest provides fixtures for terminal screen tests.
package screentest

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/csatquiz/internal/history"
	"github.com/abhisek/csatquiz/internal/llm"
	"github.com/abhisek/csatquiz/internal/quiz"
	"github.com/abhisek/csatquiz/internal/quizgen"
	"github.com/abhisek/csatquiz/internal/screens"
	"github.com/abhisek/csatquiz/internal/store"
)

// Now is the fixed clock of test environments.
var Now = time.Date(2024, 3, 5, 14, 7, 9, 0, time.Local)

// Quiz returns a two-question quiz. The answers are "2" and "4".
func Quiz() *quiz.Quiz {
	return &quiz.Quiz{
		Title:   "Urban Bees",
		Passage: "Bees are **thriving** in cities.\nThey *adapt*.",
		Questions: []quiz.Question{
			{
				Type:        "대의파악",
				Question:    "What is the **main idea**?",
				Options:     []string{"1. a", "2. b", "3. c", "4. d", "5. e"},
				Answer:      "2",
				Explanation: "정답 2",
			},
			{
				Type:        "어휘",
				Question:    "Which word fits?",
				Options:     []string{"1. v", "2. w", "3. x", "4. y", "5. z"},
				Answer:      "4",
				Explanation: "정답 4",
			},
		},
		Vocabulary: []quiz.VocabEntry{{Word: "thrive", Meaning: "번성하다"}},
	}
}

// Attempts records appended attempts and serves canned stats.
type Attempts struct {
	mu    sync.Mutex
	Data  []store.AttemptData
	Stats []store.TypeStats
	Err   error

	// AppendErr fails AppendAttempt.
	AppendErr error
}

func (a *Attempts) AppendAttempt(_ context.Context, d store.AttemptData) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.AppendErr != nil {
		return a.AppendErr
	}
	a.Data = append(a.Data, d)
	return nil
}

func (a *Attempts) QueryAttempts(context.Context, store.QueryOpts) ([]store.Attempt, error) {
	return nil, a.Err
}

func (a *Attempts) StatsByQuestionType(context.Context) ([]store.TypeStats, error) {
	return a.Stats, a.Err
}

// Recorded returns a copy of the appended attempts.
func (a *Attempts) Recorded() []store.AttemptData {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]store.AttemptData(nil), a.Data...)
}

// Generator is a quizgen.Generator with a canned outcome. With Block set it
// waits for the context to end and returns its error.
type Generator struct {
	Quiz  *quiz.Quiz
	Err   error
	Block bool

	// Warnings are raised through llm.Warn on every call.
	Warnings []string

	mu   sync.Mutex
	reqs []quizgen.GenerationRequest
}

func (g *Generator) Generate(ctx context.Context, req quizgen.GenerationRequest) (*quiz.Quiz, error) {
	g.mu.Lock()
	g.reqs = append(g.reqs, req)
	g.mu.Unlock()

	for _, w := range g.Warnings {
		llm.Warn(ctx, w)
	}
	if g.Block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if g.Err != nil {
		return nil, g.Err
	}
	return g.Quiz, nil
}

// Requests returns the requests received so far.
func (g *Generator) Requests() []quizgen.GenerationRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]quizgen.GenerationRequest(nil), g.reqs...)
}

// Env is a screen environment backed by a temp history directory, the mock
// provider config and the given generator.
type Env struct {
	*screens.Env
	Attempts *Attempts
	Configs  []llm.Config
}

// NewEnv creates a test environment. A nil gen yields Quiz().
func NewEnv(t *testing.T, gen *Generator) *Env {
	t.Helper()
	if gen == nil {
		gen = &Generator{Quiz: Quiz()}
	}

	cfg := llm.DefaultConfig()
	cfg.Provider = "mock"

	te := &Env{Attempts: &Attempts{}}
	factory := func(_ context.Context, c llm.Config) (quizgen.Generator, error) {
		te.Configs = append(te.Configs, c)
		return gen, nil
	}
	te.Env = screens.NewEnv(cfg, factory,
		history.New(filepath.Join(t.TempDir(), "history")), te.Attempts)
	te.Env.Now = func() time.Time { return Now }
	return te
}

// KeyPress returns a printable key press.
func KeyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

// SpecialKey returns a non-printable key press such as tea.KeyEnter.
func SpecialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

// Collect runs cmd and returns the messages it produces, flattening
// batches.
func Collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, Collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}
