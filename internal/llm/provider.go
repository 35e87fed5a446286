package llm

import (
	"context"
	"encoding/json"
)

// Provider is the core abstraction for LLM interaction.
type Provider interface {
	// Generate sends a prompt to the LLM and returns its output.
	// When the request carries a Schema the response Content is JSON
	// validated against it; otherwise Content is the raw model text.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// ModelLister is implemented by providers that can enumerate the models
// available to the configured credentials.
type ModelLister interface {
	// ListModels returns the models that support content generation.
	ListModels(ctx context.Context) ([]ModelInfo, error)
}

// ModelInfo describes one model reported by a provider.
type ModelInfo struct {
	ID          string
	DisplayName string
}

// Request describes what to send to the LLM.
type Request struct {
	// System is the system prompt. Sets the LLM's role and constraints.
	System string

	// Messages is the conversation history. Quiz generation sends a
	// single user message.
	Messages []Message

	// Schema is the JSON Schema the response must conform to.
	// When set, the provider uses its native structured output mechanism.
	Schema *Schema

	// JSON asks the provider for a JSON document without enforcing a
	// schema. The content is returned unvalidated so callers can repair
	// and decode it themselves.
	JSON bool

	// MaxTokens is the maximum number of tokens in the response.
	// Zero leaves the provider default.
	MaxTokens int

	// Temperature controls randomness. Range: 0.0 - 1.0.
	// Default: 0.0 (deterministic) when not set.
	Temperature float64
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema defines the JSON structure expected from the LLM.
type Schema struct {
	// Name identifies this schema (used as schema name for OpenAI and as
	// the compiled-schema cache key). Kebab-case, e.g. "csat-quiz".
	Name string

	// Description is a human-readable description of what this schema
	// represents. Sent to the LLM to guide generation.
	Description string

	// Definition is the JSON Schema definition as a map.
	Definition map[string]any
}

// Response holds the LLM's output.
type Response struct {
	// Content is the generated output. With a Schema it is the validated
	// JSON object; otherwise it is the model text as returned.
	Content json.RawMessage

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string

	// StopReason indicates why generation stopped.
	// Normalized to: "end", "max_tokens", "error"
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
