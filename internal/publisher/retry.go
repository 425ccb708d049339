package publisher

import (
	"context"
	"fmt"
	"time"
)

// RetryConfig holds retry configuration for the push step.
type RetryConfig struct {
	MaxAttempts       int           // Total attempts including the first (default: 4)
	InitialBackoff    time.Duration // Delay after the first failure (default: 2s)
	BackoffMultiplier float64       // Growth factor between attempts (default: 2.0)

	// Sleep is the suspension primitive, injectable so tests run without
	// real delays. Nil means a context-aware time.After wait.
	Sleep func(ctx context.Context, d time.Duration) error
}

// DefaultRetryConfig returns the default push retry policy: 4 attempts
// with 2s, 4s, 8s between them.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:       4,
		InitialBackoff:    2 * time.Second,
		BackoffMultiplier: 2.0,
	}
}

func (rc RetryConfig) sleep(ctx context.Context, d time.Duration) error {
	if rc.Sleep != nil {
		return rc.Sleep(ctx, d)
	}
	select {
	case <-time.After(d):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// retryWithBackoff runs fn until it succeeds or attempts are exhausted,
// sleeping with exponential backoff between attempts. The first success
// short-circuits. Returns how many attempts were made.
func retryWithBackoff(ctx context.Context, rc RetryConfig, operation string, fn func(context.Context) error) (int, error) {
	if rc.MaxAttempts <= 0 {
		rc.MaxAttempts = 1
	}

	var lastErr error
	backoff := rc.InitialBackoff

	for attempt := 1; attempt <= rc.MaxAttempts; attempt++ {
		err := fn(ctx)
		if err == nil {
			return attempt, nil
		}
		lastErr = err

		if attempt == rc.MaxAttempts {
			return attempt, fmt.Errorf("%s failed after %d attempts: %w", operation, attempt, lastErr)
		}
		if err := rc.sleep(ctx, backoff); err != nil {
			return attempt, fmt.Errorf("%s canceled during backoff: %w", operation, err)
		}
		backoff = time.Duration(float64(backoff) * rc.BackoffMultiplier)
	}

	// Unreachable; the loop always returns.
	return rc.MaxAttempts, lastErr
}
