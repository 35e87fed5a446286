package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestOpenIdempotentMigration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.db")
	for i := 0; i < 2; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("open %d: %v", i, err)
		}
		s.Close()
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		// WAL mode falls back to "memory" for in-memory databases.
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var last int64
	for i := 0; i < 3; i++ {
		n, err := s.seq.Next(ctx)
		if err != nil {
			t.Fatalf("next: %v", err)
		}
		if n <= last {
			t.Fatalf("sequence not increasing: %d after %d", n, last)
		}
		last = n
	}
}

func TestLLMEventsAppendAndQuery(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	events := []LLMRequestEventData{
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "quiz-gen", InputTokens: 100, OutputTokens: 900, LatencyMs: 1000, Success: true, RequestBody: "req", ResponseBody: "resp"},
		{Provider: "gemini", Model: "gemini-2.5-flash", Purpose: "quiz-gen", InputTokens: 120, OutputTokens: 0, LatencyMs: 3000, Success: false, ErrorMessage: "boom"},
		{Provider: "gemini", Model: "", Purpose: "model-list", LatencyMs: 50, Success: true},
	}
	for _, e := range events {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	all, err := repo.QueryLLMEvents(ctx, "", QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 events, got %d", len(all))
	}
	if all[0].Purpose != "model-list" {
		t.Errorf("expected newest first, got %q", all[0].Purpose)
	}

	gen, err := repo.QueryLLMEvents(ctx, "quiz-gen", QueryOpts{Limit: 1})
	if err != nil {
		t.Fatalf("query purpose: %v", err)
	}
	if len(gen) != 1 || gen[0].ErrorMessage != "boom" {
		t.Fatalf("unexpected filtered result: %+v", gen)
	}

	after, err := repo.QueryLLMEvents(ctx, "", QueryOpts{After: all[1].Sequence})
	if err != nil {
		t.Fatalf("query after: %v", err)
	}
	if len(after) != 1 {
		t.Errorf("expected 1 event after sequence %d, got %d", all[1].Sequence, len(after))
	}

	got, err := repo.GetLLMEvent(ctx, all[2].ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got == nil || got.RequestBody != "req" || got.ResponseBody != "resp" || !got.Success {
		t.Fatalf("unexpected event: %+v", got)
	}
	if time.Since(got.Timestamp) > time.Minute {
		t.Errorf("timestamp not recent: %v", got.Timestamp)
	}

	missing, err := repo.GetLLMEvent(ctx, 9999)
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if missing != nil {
		t.Error("expected nil for missing event")
	}
}

func TestLLMUsageAggregates(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, e := range []LLMRequestEventData{
		{Model: "gemini-2.5-flash", Purpose: "quiz-gen", InputTokens: 100, OutputTokens: 200, LatencyMs: 1000},
		{Model: "gemini-2.5-flash", Purpose: "quiz-gen", InputTokens: 50, OutputTokens: 100, LatencyMs: 3000},
		{Model: "gpt-4o-mini", Purpose: "model-list", LatencyMs: 10},
	} {
		if err := repo.AppendLLMRequest(ctx, e); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage by purpose: %v", err)
	}
	if len(byPurpose) != 2 {
		t.Fatalf("expected 2 purposes, got %d", len(byPurpose))
	}
	qg := byPurpose[1]
	if qg.Purpose != "quiz-gen" || qg.Calls != 2 || qg.InputTokens != 150 || qg.OutputTokens != 300 || qg.AvgLatencyMs != 2000 {
		t.Errorf("unexpected quiz-gen usage: %+v", qg)
	}

	byModel, err := repo.LLMUsageByModel(ctx)
	if err != nil {
		t.Fatalf("usage by model: %v", err)
	}
	if len(byModel) != 2 || byModel[0].Model != "gemini-2.5-flash" || byModel[0].Calls != 2 {
		t.Errorf("unexpected model usage: %+v", byModel)
	}
}

func TestAttempts(t *testing.T) {
	s := openTestStore(t)
	repo := s.AttemptRepo()
	ctx := context.Background()

	for _, a := range []AttemptData{
		{SessionID: "s1", Title: "Trees", Topic: "환경", QuestionType: "general", Correct: 3, Total: 5, Score: 60},
		{SessionID: "s1", Title: "Robots", Topic: "AI", QuestionType: "general", Correct: 5, Total: 5, Score: 100},
		{SessionID: "s2", Title: "Blank", Topic: "AI", QuestionType: "blank", Correct: 0, Total: 1, Score: 0},
	} {
		if err := repo.AppendAttempt(ctx, a); err != nil {
			t.Fatalf("append attempt: %v", err)
		}
	}

	attempts, err := repo.QueryAttempts(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query attempts: %v", err)
	}
	if len(attempts) != 2 || attempts[0].Title != "Blank" {
		t.Fatalf("unexpected attempts: %+v", attempts)
	}

	stats, err := repo.StatsByQuestionType(ctx)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if len(stats) != 2 {
		t.Fatalf("expected 2 question types, got %d", len(stats))
	}
	g := stats[1]
	if g.QuestionType != "general" || g.Attempts != 2 || g.AvgScore != 80 || g.BestScore != 100 {
		t.Errorf("unexpected general stats: %+v", g)
	}
}

func TestDefaultDBPath_Env(t *testing.T) {
	p := filepath.Join(t.TempDir(), "sub", "x.db")
	t.Setenv("CSATQUIZ_DB", p)
	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	if got != p {
		t.Errorf("got %q, want %q", got, p)
	}
}

func TestDefaultDBPath_XDG(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("CSATQUIZ_DB", "")
	t.Setenv("XDG_DATA_HOME", dir)
	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath: %v", err)
	}
	want := filepath.Join(dir, "csatquiz", "csatquiz.db")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
