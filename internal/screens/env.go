// Package screens holds the terminal UI screens and the environment they
// share.
package screens

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/abhisek/csatquiz/internal/history"
	"github.com/abhisek/csatquiz/internal/llm"
	"github.com/abhisek/csatquiz/internal/quiz"
	"github.com/abhisek/csatquiz/internal/quizgen"
	"github.com/abhisek/csatquiz/internal/store"
)

// Env carries the services every screen needs. It is created once per
// program run and shared by pointer.
type Env struct {
	// NewGenerator builds a generator from the current LLM config.
	NewGenerator quizgen.Factory

	// History stores saved quizzes.
	History *history.Store

	// Attempts receives graded quizzes. Optional.
	Attempts store.AttemptRepo

	// Now defaults to time.Now.
	Now func() time.Time

	mu  sync.Mutex
	cfg llm.Config
}

// NewEnv creates an Env with the given base LLM configuration.
func NewEnv(cfg llm.Config, gen quizgen.Factory, hist *history.Store, attempts store.AttemptRepo) *Env {
	return &Env{
		NewGenerator: gen,
		History:      hist,
		Attempts:     attempts,
		Now:          time.Now,
		cfg:          cfg,
	}
}

// LLMConfig returns the current LLM configuration.
func (e *Env) LLMConfig() llm.Config {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cfg
}

// SetAPIKey stores a key entered at runtime for the configured provider.
func (e *Env) SetAPIKey(key string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cfg = e.cfg.WithAPIKey(key)
}

// NeedsAPIKey reports whether generation is blocked on a missing key.
func (e *Env) NeedsAPIKey() bool {
	return e.LLMConfig().Validate() != nil
}

// Status is the provider and model shown in the header.
func (e *Env) Status() string {
	cfg := e.LLMConfig()
	return fmt.Sprintf("%s · %s", cfg.Provider, cfg.Model())
}

// RecordAttempt logs a graded quiz. It is a no-op without an attempt repo
// or a quiz. Callers show the error; it never undoes the grading.
func (e *Env) RecordAttempt(ctx context.Context, sess *quiz.Session, questionType string, res quiz.Result) error {
	if e.Attempts == nil {
		return nil
	}
	q := sess.Quiz()
	if q == nil {
		return nil
	}
	err := e.Attempts.AppendAttempt(ctx, store.AttemptData{
		SessionID:    sess.ID,
		Title:        q.Title,
		Topic:        sess.Topic(),
		QuestionType: questionType,
		Correct:      res.CorrectCount,
		Total:        res.Total,
		Score:        res.Score,
	})
	if err != nil {
		return fmt.Errorf("record attempt: %w", err)
	}
	return nil
}
