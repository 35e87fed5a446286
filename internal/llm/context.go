package llm

import (
	"context"
	"fmt"
	"os"
)

type contextKey string

const (
	purposeKey contextKey = "llm_purpose"
	warnKey    contextKey = "llm_warn"
)

// WithPurpose attaches a purpose label to the context for event logging.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return context.WithValue(ctx, purposeKey, purpose)
}

// PurposeFrom extracts the purpose label from the context.
func PurposeFrom(ctx context.Context) string {
	if v, ok := ctx.Value(purposeKey).(string); ok {
		return v
	}
	return "unknown"
}

// WithWarnings routes non-fatal notices raised under ctx to fn instead of
// stderr. The terminal UI uses it while it owns the screen.
func WithWarnings(ctx context.Context, fn func(msg string)) context.Context {
	return context.WithValue(ctx, warnKey, fn)
}

// Warn reports a non-fatal notice to the context's sink, or to stderr when
// none is set.
func Warn(ctx context.Context, msg string) {
	if fn, ok := ctx.Value(warnKey).(func(string)); ok && fn != nil {
		fn(msg)
		return
	}
	fmt.Fprintf(os.Stderr, "warning: %s\n", msg)
}
