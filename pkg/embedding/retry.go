package embedding

import (
	"context"
	"time"
)

// RetryingProvider wraps another provider with a bounded retry and
// exponential backoff. Query-time callers must never retry forever.
type RetryingProvider struct {
	inner       EmbeddingProvider
	maxAttempts int
	baseDelay   time.Duration
}

func NewRetryingProvider(inner EmbeddingProvider, maxAttempts int, baseDelay time.Duration) EmbeddingProvider {
	if maxAttempts < 1 {
		maxAttempts = 3
	}
	if baseDelay <= 0 {
		baseDelay = 500 * time.Millisecond
	}
	return &RetryingProvider{
		inner:       inner,
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
	}
}

func (p *RetryingProvider) Generate(ctx context.Context, text string) (*EmbeddingResponse, error) {
	var lastErr error
	delay := p.baseDelay

	for attempt := 0; attempt < p.maxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		resp, err := p.inner.Generate(ctx, text)
		if err == nil {
			return resp, nil
		}
		lastErr = err
	}

	return nil, lastErr
}
