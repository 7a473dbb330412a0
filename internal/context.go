package internal

import (
	"context"
	"time"
)

type ctxKey string

const ContextRunKey ctxKey = "runID"

// DefaultBatchTimeout bounds a batch commit when no timeout is configured.
const DefaultBatchTimeout = 60 * time.Second

func RunIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if runID, ok := ctx.Value(ContextRunKey).(string); ok {
		return runID
	}
	return ""
}

func ContextWithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, ContextRunKey, runID)
}

// WithTimeout returns a context with timeout, defaulting to DefaultBatchTimeout if duration is zero or negative.
func WithTimeout(ctx context.Context, duration time.Duration) (context.Context, context.CancelFunc) {
	if duration <= 0 {
		duration = DefaultBatchTimeout
	}
	return context.WithTimeout(ctx, duration)
}
