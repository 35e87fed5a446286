package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/csatquiz/internal/store"
)

// PurposeModelList labels model-listing calls in the event log.
const PurposeModelList = "model-list"

// ErrListingUnsupported is returned by ListModels on providers that cannot
// enumerate models.
var ErrListingUnsupported = errors.New("provider does not support model listing")

// listModels calls ListModels on p if it implements ModelLister.
func listModels(ctx context.Context, p Provider) ([]ModelInfo, error) {
	lister, ok := p.(ModelLister)
	if !ok {
		return nil, ErrListingUnsupported
	}
	return lister.ListModels(ctx)
}

// LoggingProvider is a decorator that records every LLM request as an event.
type LoggingProvider struct {
	inner     Provider
	provider  string
	eventRepo store.EventRepo
}

// WithLogging wraps a Provider with event logging. providerName is the
// configured provider ("gemini", "openai", ...).
func WithLogging(p Provider, providerName string, repo store.EventRepo) Provider {
	return &LoggingProvider{inner: p, provider: providerName, eventRepo: repo}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}

	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
		data.ResponseBody = string(resp.Content)
	}

	if err != nil {
		data.ErrorMessage = err.Error()
		var inv *ErrInvalidResponse
		if errors.As(err, &inv) && data.ResponseBody == "" {
			data.ResponseBody = string(inv.Content)
		}
	}

	l.record(ctx, data)
	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// ListModels forwards to the wrapped provider and records the call.
func (l *LoggingProvider) ListModels(ctx context.Context) ([]ModelInfo, error) {
	start := time.Now()
	models, err := listModels(ctx, l.inner)
	if errors.Is(err, ErrListingUnsupported) {
		return nil, err
	}

	data := store.LLMRequestEventData{
		Provider:  l.provider,
		Purpose:   PurposeModelList,
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   err == nil,
	}
	if err != nil {
		data.ErrorMessage = err.Error()
	} else {
		ids := make([]string, len(models))
		for i, m := range models {
			ids[i] = m.ID
		}
		data.ResponseBody = strings.Join(ids, "\n")
	}

	l.record(ctx, data)
	return models, err
}

// record stores the event. A logging failure never fails the request.
func (l *LoggingProvider) record(ctx context.Context, data store.LLMRequestEventData) {
	if logErr := l.eventRepo.AppendLLMRequest(context.WithoutCancel(ctx), data); logErr != nil {
		Warn(ctx, fmt.Sprintf("failed to log LLM request event: %v", logErr))
	}
}

// serializeRequest builds a readable representation of the LLM request.
func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n", m.Role)
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	if req.Schema != nil {
		schemaDef, err := json.Marshal(req.Schema.Definition)
		if err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n", req.Schema.Name)
			b.Write(schemaDef)
			b.WriteString("\n")
		}
	} else if req.JSON {
		b.WriteString("[format: json]\n")
	}

	return b.String()
}
