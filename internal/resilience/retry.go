package resilience

import (
	"context"
	"math"
	"math/rand"
	"time"
)

// RetryConfig holds configuration for retry behavior.
type RetryConfig struct {
	MaxAttempts   int
	InitialDelay  time.Duration
	MaxDelay      time.Duration
	BackoffFactor float64
	JitterEnabled bool
	// Retryable decides whether an error is worth another attempt.
	Retryable func(error) bool
}

// DefaultRetryConfig returns sensible defaults for external
// collaborator calls.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts:   3,
		InitialDelay:  100 * time.Millisecond,
		MaxDelay:      10 * time.Second,
		BackoffFactor: 2.0,
		JitterEnabled: true,
		Retryable:     func(error) bool { return true },
	}
}

// Retry executes fn with exponential backoff until it succeeds, the
// attempts are exhausted, or the context is cancelled.
func Retry(ctx context.Context, config RetryConfig, fn func() error) error {
	var lastErr error

	for attempt := 0; attempt < config.MaxAttempts; attempt++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if lastErr = fn(); lastErr == nil {
			return nil
		}

		if config.Retryable != nil && !config.Retryable(lastErr) {
			break
		}
		if attempt == config.MaxAttempts-1 {
			break
		}

		delay := backoffDelay(config, attempt)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return lastErr
}

func backoffDelay(config RetryConfig, attempt int) time.Duration {
	delay := float64(config.InitialDelay) * math.Pow(config.BackoffFactor, float64(attempt))
	if delay > float64(config.MaxDelay) {
		delay = float64(config.MaxDelay)
	}
	if config.JitterEnabled {
		// Up to 25% jitter to avoid synchronized retries.
		delay += delay * 0.25 * rand.Float64()
	}
	return time.Duration(delay)
}
