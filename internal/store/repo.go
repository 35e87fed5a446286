package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
	RequestBody  string
	ResponseBody string
}

// LLMEvent is a stored LLM request event.
type LLMEvent struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	LLMRequestEventData
}

// PurposeUsage aggregates LLM usage for one purpose label.
type PurposeUsage struct {
	Purpose      string
	Calls        int
	InputTokens  int
	OutputTokens int
	AvgLatencyMs int64
}

// ModelUsage aggregates LLM usage for one model.
type ModelUsage struct {
	Model        string
	Calls        int
	InputTokens  int
	OutputTokens int
}

// EventRepo records and queries LLM request events.
type EventRepo interface {
	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// QueryLLMEvents returns events newest first. A non-empty purpose
	// restricts the result to that purpose.
	QueryLLMEvents(ctx context.Context, purpose string, opts QueryOpts) ([]LLMEvent, error)

	// GetLLMEvent returns the event with the given ID, or nil if absent.
	GetLLMEvent(ctx context.Context, id int) (*LLMEvent, error)

	LLMUsageByPurpose(ctx context.Context) ([]PurposeUsage, error)
	LLMUsageByModel(ctx context.Context) ([]ModelUsage, error)
}

// AttemptData captures one graded quiz.
type AttemptData struct {
	SessionID    string
	Title        string
	Topic        string
	QuestionType string
	Correct      int
	Total        int
	Score        int
}

// Attempt is a stored graded quiz.
type Attempt struct {
	ID        int
	Sequence  int64
	Timestamp time.Time
	AttemptData
}

// TypeStats aggregates graded attempts for one question type.
type TypeStats struct {
	QuestionType string
	Attempts     int
	AvgScore     float64
	BestScore    int
}

// AttemptRepo records and queries graded quizzes.
type AttemptRepo interface {
	AppendAttempt(ctx context.Context, data AttemptData) error

	// QueryAttempts returns attempts newest first.
	QueryAttempts(ctx context.Context, opts QueryOpts) ([]Attempt, error)

	// StatsByQuestionType aggregates attempts, ordered by question type.
	StatsByQuestionType(ctx context.Context) ([]TypeStats, error)
}
