package client

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"
)

// Retrier handles retry logic with exponential backoff.
// It is safe for concurrent use by multiple goroutines.
type Retrier struct {
	maxRetries       int
	retryWaitMin     time.Duration
	retryWaitMax     time.Duration
	retryOnRateLimit bool
}

func newRetrier(opts *Options) *Retrier {
	return &Retrier{
		maxRetries:       opts.maxRetries,
		retryWaitMin:     opts.retryWaitMin,
		retryWaitMax:     opts.retryWaitMax,
		retryOnRateLimit: opts.retryOnRateLimit,
	}
}

// Do executes fn with retry logic.
func (r *Retrier) Do(ctx context.Context, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt <= r.maxRetries; attempt++ {
		if attempt > 0 {
			if err := sleep(ctx, r.backoff(attempt)); err != nil {
				return err
			}
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}

		if !r.shouldRetry(lastErr) || attempt == r.maxRetries {
			return lastErr
		}

		// Honour the server's Retry-After on top of the backoff.
		var rateLimitErr *RateLimitError
		if errors.As(lastErr, &rateLimitErr) && rateLimitErr.RetryAfter > 0 {
			if err := sleep(ctx, rateLimitErr.RetryAfter); err != nil {
				return err
			}
		}
	}

	return lastErr
}

func (r *Retrier) shouldRetry(err error) bool {
	var rateLimitErr *RateLimitError
	if errors.As(err, &rateLimitErr) {
		return r.retryOnRateLimit
	}

	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) && serviceErr.StatusCode >= 500 {
		return true
	}

	// Transport failures, auth, validation and not-found are final.
	return false
}

func (r *Retrier) backoff(attempt int) time.Duration {
	// Cap attempt to prevent overflow
	if attempt > 10 {
		attempt = 10
	}

	mult := math.Pow(2, float64(attempt))
	wait := time.Duration(mult) * r.retryWaitMin

	// Jitter of 0-100% of retryWaitMin; math/rand top-level funcs are goroutine-safe.
	jitter := time.Duration(rand.Int63n(int64(r.retryWaitMin)))
	wait += jitter

	if wait > r.retryWaitMax {
		wait = r.retryWaitMax
	}

	return wait
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
