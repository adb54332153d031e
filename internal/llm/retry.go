package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// retrier wraps a Provider and re-issues failed requests with
// exponential backoff. One invalid-response retry is allowed per call;
// rate limits honor the server's Retry-After when present.
type retrier struct {
	inner Provider
	cfg   RetryConfig
}

// WithRetry wraps a Provider with retry logic.
func WithRetry(p Provider, cfg RetryConfig) Provider {
	return &retrier{inner: p, cfg: cfg}
}

func (r *retrier) ModelID() string { return r.inner.ModelID() }

func (r *retrier) Generate(ctx context.Context, req Request) (*Response, error) {
	var lastErr error
	invalidSeen := false

	for attempt := 0; attempt < r.cfg.MaxAttempts; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		if !retryable(err, &invalidSeen) || attempt == r.cfg.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(r.wait(attempt, err)):
		}
	}
	return nil, lastErr
}

func retryable(err error, invalidSeen *bool) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	// Hitting the token limit is a request-shape problem; retrying the
	// same request cannot help.
	var maxTok *ErrMaxTokensExceeded
	if errors.As(err, &maxTok) {
		return false
	}

	// A malformed reply gets exactly one more chance.
	var inv *ErrInvalidResponse
	if errors.As(err, &inv) {
		if *invalidSeen {
			return false
		}
		*invalidSeen = true
		return true
	}

	// Rate limits, outages, and anything else (network) count as
	// transient.
	return true
}

func (r *retrier) wait(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	w := float64(r.cfg.InitialWait) * math.Pow(r.cfg.Multiplier, float64(attempt))
	w = math.Min(w, float64(r.cfg.MaxWait))

	// ±20% jitter.
	w *= 1 + 0.2*(2*rand.Float64()-1)
	if w < 0 {
		w = 0
	}
	return time.Duration(w)
}
