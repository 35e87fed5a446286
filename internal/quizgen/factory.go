package quizgen

import (
	"context"

	"github.com/abhisek/csatquiz/internal/llm"
	"github.com/abhisek/csatquiz/internal/store"
)

// Factory builds a Generator for one provider configuration. Front ends
// call it per generation so a key entered at runtime takes effect.
type Factory func(ctx context.Context, cfg llm.Config) (Generator, error)

// ProviderFactory returns a Factory that wraps llm.NewProvider with an
// LLMGenerator using gen. LLM calls are recorded to repo when non-nil.
func ProviderFactory(repo store.EventRepo, gen Config) Factory {
	return func(ctx context.Context, cfg llm.Config) (Generator, error) {
		provider, err := llm.NewProvider(ctx, cfg, repo)
		if err != nil {
			return nil, err
		}
		return New(provider, gen), nil
	}
}
