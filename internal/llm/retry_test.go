package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func retryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 1 * time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	}
}

var okResponse = MockResponse{Content: json.RawMessage(`{"ok":true}`)}

func TestRetry(t *testing.T) {
	down := MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}}
	invalid := MockResponse{Err: &ErrInvalidResponse{Content: json.RawMessage(`bad`), Err: errors.New("bad")}}

	tests := []struct {
		name      string
		responses []MockResponse
		wantErr   bool
		wantCalls int
	}{
		{"first attempt", []MockResponse{okResponse}, false, 1},
		{"transient then success", []MockResponse{down, okResponse}, false, 2},
		{"all attempts fail", []MockResponse{down, down, down, okResponse}, true, 3},
		{"max tokens not retried", []MockResponse{{Err: &ErrMaxTokensExceeded{}}, okResponse}, true, 1},
		{"invalid response retried once", []MockResponse{invalid, invalid, okResponse}, true, 2},
		{"auth not retried", []MockResponse{{Err: &ErrAuth{Err: errors.New("401")}}, okResponse}, true, 1},
		{"model not found not retried", []MockResponse{{Err: &ErrModelNotFound{Model: "x", Err: errors.New("404")}}, okResponse}, true, 1},
		{"rate limit respects retry after", []MockResponse{{Err: &ErrRateLimit{RetryAfter: time.Millisecond, Err: errors.New("429")}}, okResponse}, false, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMockProvider(tt.responses...)
			p := WithRetry(mock, retryConfig())

			resp, err := p.Generate(context.Background(), Request{})
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && string(resp.Content) != `{"ok":true}` {
				t.Fatalf("unexpected content: %s", resp.Content)
			}
			if mock.CallCount() != tt.wantCalls {
				t.Fatalf("expected %d calls, got %d", tt.wantCalls, mock.CallCount())
			}
		})
	}
}

func TestRetry_SingleAttemptDefault(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		okResponse,
	)
	p := WithRetry(mock, DefaultConfig().Retry)

	if _, err := p.Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error")
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestRetry_ZeroAttemptsStillCalls(t *testing.T) {
	mock := NewMockProvider(okResponse)
	p := WithRetry(mock, RetryConfig{})
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRetry_ContextCancellation(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
		okResponse,
	)
	cfg := retryConfig()
	cfg.InitialWait = time.Second
	p := WithRetry(mock, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRetry_DelegatesModelIDAndListing(t *testing.T) {
	mock := NewMockProvider()
	mock.Models = []ModelInfo{{ID: "m1"}, {ID: "m2"}}
	p := WithRetry(mock, retryConfig())

	if p.ModelID() != "mock" {
		t.Fatalf("expected 'mock', got %q", p.ModelID())
	}
	models, err := p.(ModelLister).ListModels(context.Background())
	if err != nil || len(models) != 2 {
		t.Fatalf("unexpected listing: %v %v", models, err)
	}
}

type plainProvider struct{}

func (plainProvider) Generate(context.Context, Request) (*Response, error) { return nil, nil }
func (plainProvider) ModelID() string                                      { return "plain" }

func TestRetry_ListingUnsupported(t *testing.T) {
	p := WithRetry(plainProvider{}, retryConfig())
	_, err := p.(ModelLister).ListModels(context.Background())
	if !errors.Is(err, ErrListingUnsupported) {
		t.Fatalf("expected ErrListingUnsupported, got %v", err)
	}
}
