package quizgen

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/csatquiz/internal/llm"
	"github.com/abhisek/csatquiz/internal/quiz"
)

func newTestGenerator(mock llm.Provider, cfg Config) (*LLMGenerator, *[]string) {
	var warnings []string
	g := New(mock, cfg)
	g.warn = func(msg string) { warnings = append(warnings, msg) }
	return g, &warnings
}

func TestGenerate_Success(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(quizJSON(1))})
	gen, warnings := newTestGenerator(mock, DefaultConfig())

	q, err := gen.Generate(context.Background(), testRequest(grammarLabel))
	require.NoError(t, err)

	assert.Equal(t, "Urban Bees", q.Title)
	assert.Len(t, q.Questions, 1)
	assert.Empty(t, *warnings)

	require.Equal(t, 1, mock.CallCount())
	req := mock.Calls[0]
	assert.True(t, req.JSON)
	assert.Nil(t, req.Schema)
	require.Len(t, req.Messages, 1)
	assert.Equal(t, llm.RoleUser, req.Messages[0].Role)
	assert.Contains(t, req.Messages[0].Content, grammarLabel)
}

func TestGenerate_WarningsFollowContext(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(quizJSON(1))})
	gen := New(mock, DefaultConfig())

	var warnings []string
	ctx := llm.WithWarnings(context.Background(), func(msg string) { warnings = append(warnings, msg) })
	_, err := gen.Generate(ctx, testRequest("Custom cloze drill"))
	require.NoError(t, err)

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "Custom cloze drill")
}

func TestGenerate_General(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(quizJSON(5))})
	gen, _ := newTestGenerator(mock, DefaultConfig())

	q, err := gen.Generate(context.Background(), testRequest("종합 (General Practice) - 5문제"))
	require.NoError(t, err)
	assert.Len(t, q.Questions, 5)
}

func TestGenerate_UnknownTypeWarns(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(quizJSON(1))})
	gen, warnings := newTestGenerator(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), testRequest("Custom cloze drill"))
	require.NoError(t, err)

	require.Len(t, *warnings, 1)
	assert.Contains(t, (*warnings)[0], "Custom cloze drill")
}

func TestGenerate_InvalidRequest(t *testing.T) {
	mock := llm.NewMockProvider()
	gen, _ := newTestGenerator(mock, DefaultConfig())

	req := testRequest(grammarLabel)
	req.Topic = ""
	_, err := gen.Generate(context.Background(), req)

	var verr *quiz.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "topic", verr.Field)
	assert.Equal(t, 0, mock.CallCount())
}

func TestGenerate_SetsPurpose(t *testing.T) {
	var purpose string
	p := purposeSpy{fn: func(ctx context.Context) { purpose = llm.PurposeFrom(ctx) }}
	gen, _ := newTestGenerator(p, DefaultConfig())

	_, _ = gen.Generate(context.Background(), testRequest(grammarLabel))
	assert.Equal(t, PurposeQuizGen, purpose)
}

func TestGenerate_ProviderError(t *testing.T) {
	cause := &llm.ErrRateLimit{Err: errors.New("quota")}
	mock := llm.NewMockProvider(llm.MockResponse{Err: cause})
	gen, _ := newTestGenerator(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), testRequest(grammarLabel))

	var gerr *GenerationError
	require.True(t, errors.As(err, &gerr))
	assert.Empty(t, gerr.AvailableModels)
	assert.Contains(t, gerr.Error(), "quota")

	var rl *llm.ErrRateLimit
	assert.True(t, errors.As(err, &rl))
	assert.Equal(t, 0, mock.ListCalls)
}

func TestGenerate_ModelNotFoundListsModels(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrModelNotFound{Model: "gemini-9", Err: errors.New("404 not found")},
	})
	mock.Models = []llm.ModelInfo{{ID: "gemini-2.5-flash"}, {ID: "gemini-2.5-pro"}}
	gen, _ := newTestGenerator(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), testRequest(grammarLabel))

	var gerr *GenerationError
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, []string{"gemini-2.5-flash", "gemini-2.5-pro"}, gerr.AvailableModels)
	assert.Contains(t, gerr.Error(), `"gemini-9"`)
	assert.Contains(t, gerr.Error(), "available models: gemini-2.5-flash, gemini-2.5-pro")
	assert.Contains(t, gerr.Error(), "404 not found")
	assert.Equal(t, 1, mock.ListCalls)
}

func TestGenerate_ModelNotFoundListingFails(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Err: &llm.ErrModelNotFound{Model: "gemini-9", Err: errors.New("404 not found")},
	})
	mock.ListErr = errors.New("permission denied")
	gen, _ := newTestGenerator(mock, DefaultConfig())

	_, err := gen.Generate(context.Background(), testRequest(grammarLabel))

	var gerr *GenerationError
	require.True(t, errors.As(err, &gerr))
	assert.Empty(t, gerr.AvailableModels)
	assert.Contains(t, gerr.Message, "listing available models also failed: permission denied")
	assert.Contains(t, gerr.Error(), "404 not found")
}

func TestGenerate_NormalizationFailure(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(quizJSON(2))})
	gen, _ := newTestGenerator(mock, DefaultConfig())

	q, err := gen.Generate(context.Background(), testRequest(grammarLabel))
	assert.Nil(t, q)

	var nerr *NormalizationError
	require.True(t, errors.As(err, &nerr))
	assert.Equal(t, KindSchemaViolation, nerr.Kind)
}

func TestGenerate_LenientConfig(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(quizJSON(2))})
	cfg := DefaultConfig()
	cfg.Lenient = true
	gen, warnings := newTestGenerator(mock, cfg)

	q, err := gen.Generate(context.Background(), testRequest(grammarLabel))
	require.NoError(t, err)
	assert.Len(t, q.Questions, 2)
	assert.Len(t, *warnings, 1)
}

// purposeSpy captures the context of a Generate call.
type purposeSpy struct {
	fn func(ctx context.Context)
}

func (p purposeSpy) Generate(ctx context.Context, _ llm.Request) (*llm.Response, error) {
	p.fn(ctx)
	return nil, &llm.ErrProviderUnavailable{}
}

func (p purposeSpy) ModelID() string { return "spy" }
