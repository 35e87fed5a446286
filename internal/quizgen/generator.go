package quizgen

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/csatquiz/internal/csat"
	"github.com/abhisek/csatquiz/internal/llm"
	"github.com/abhisek/csatquiz/internal/quiz"
)

// PurposeQuizGen labels quiz generation calls in the LLM event log.
const PurposeQuizGen = "quiz-gen"

// LLMGenerator implements Generator using an LLM provider.
type LLMGenerator struct {
	provider llm.Provider
	config   Config

	// warn overrides where non-fatal notices go. When nil they follow
	// llm.Warn for the request context.
	warn func(msg string)
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	return &LLMGenerator{
		provider: provider,
		config:   cfg,
	}
}

// Generate produces one quiz for req.
func (g *LLMGenerator) Generate(ctx context.Context, req GenerationRequest) (*quiz.Quiz, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx = llm.WithPurpose(ctx, PurposeQuizGen)
	warn := g.warn
	if warn == nil {
		warn = func(msg string) { llm.Warn(ctx, msg) }
	}

	if _, ok := csat.LookupQuestionType(req.QuestionType); !ok {
		warn(fmt.Sprintf("question type %q is not in the catalogue; assuming a single question", req.QuestionType))
	}

	instr := csat.TypeInstruction(req.QuestionType)
	guide := csat.DifficultyGuide(req.SchoolLevel, req.Grade)

	resp, err := g.provider.Generate(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: BuildPrompt(req, guide, instr)},
		},
		JSON:        true,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, g.generationError(ctx, err)
	}

	return Normalize(string(resp.Content), NormalizeOptions{
		Instruction: instr,
		Validators:  g.config.Validators,
		Lenient:     g.config.Lenient,
		Warn:        warn,
	})
}

// generationError wraps a provider failure. A missing model triggers one
// listing call so the user can pick a model that exists.
func (g *LLMGenerator) generationError(ctx context.Context, err error) error {
	var notFound *llm.ErrModelNotFound
	if !errors.As(err, &notFound) {
		return &GenerationError{Message: "quiz generation failed", Err: err}
	}

	lister, ok := g.provider.(llm.ModelLister)
	if !ok {
		return &GenerationError{
			Message: fmt.Sprintf("model %q was not found and this provider cannot list models", notFound.Model),
			Err:     err,
		}
	}

	models, listErr := lister.ListModels(ctx)
	if errors.Is(listErr, llm.ErrListingUnsupported) {
		return &GenerationError{
			Message: fmt.Sprintf("model %q was not found and this provider cannot list models", notFound.Model),
			Err:     err,
		}
	}
	if listErr != nil {
		return &GenerationError{
			Message: fmt.Sprintf("model %q was not found; listing available models also failed: %v", notFound.Model, listErr),
			Err:     err,
		}
	}

	ids := make([]string, len(models))
	for i, m := range models {
		ids[i] = m.ID
	}
	return &GenerationError{
		Message:         fmt.Sprintf("model %q was not found", notFound.Model),
		AvailableModels: ids,
		Err:             err,
	}
}
