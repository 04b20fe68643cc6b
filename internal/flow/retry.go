package flow

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

const MaxRetries = 3

// IsRetryable checks if an error is worth retrying.
func IsRetryable(err error) bool {
	var retryErr *RetryableError
	return errors.As(err, &retryErr)
}

// Backoff returns a duration for attempt n (0-indexed) with jitter.
func Backoff(attempt int) time.Duration {
	base := time.Duration(1<<uint(attempt)) * time.Second
	if base > 30*time.Second {
		base = 30 * time.Second
	}
	jitter := time.Duration(rand.Int64N(int64(base) / 2))
	return base + jitter
}

// retryingAgent wraps an Agent with bounded retries on transient failures.
type retryingAgent struct {
	inner      Agent
	maxRetries int
}

// WithRetry decorates agent so transient render failures are retried with
// exponential backoff. Non-retryable errors pass through immediately.
func WithRetry(agent Agent, maxRetries int) Agent {
	if maxRetries <= 0 {
		maxRetries = MaxRetries
	}
	return &retryingAgent{inner: agent, maxRetries: maxRetries}
}

func (r *retryingAgent) Render(ctx context.Context, flowLine string) ([]byte, error) {
	var img []byte
	var lastErr error
	for attempt := range r.maxRetries {
		img, lastErr = r.inner.Render(ctx, flowLine)
		if lastErr == nil || !IsRetryable(lastErr) {
			break
		}
		if attempt == r.maxRetries-1 {
			break
		}
		select {
		case <-time.After(Backoff(attempt)):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return img, lastErr
}
