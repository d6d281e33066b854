package lib

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/AbhijeetP21/multi-agent-data-wrangler/internal/models"
)

// CalculateBackoff computes the delay before the given retry attempt.
// Formula: min(initialBackoff * factor^attempt, maxBackoff)
func CalculateBackoff(attempt int, config models.RetryConfig) time.Duration {
	if attempt < 0 {
		attempt = 0
	}

	factor := config.BackoffFactor
	if factor < 1 {
		factor = 2.0
	}

	backoffMs := float64(config.InitialBackoffMs) * math.Pow(factor, float64(attempt))
	if backoffMs > float64(config.MaxBackoffMs) {
		backoffMs = float64(config.MaxBackoffMs)
	}

	return time.Duration(backoffMs) * time.Millisecond
}

// RetryableOperation represents an operation that can be retried
type RetryableOperation func() error

// ExecuteWithRetry executes an operation with exponential backoff retry logic.
// Retries stop early when the context is cancelled or shouldRetry rejects the
// error. Returns nil on success, or the last error once attempts are exhausted.
func ExecuteWithRetry(ctx context.Context, operation RetryableOperation, config models.RetryConfig, shouldRetry func(error) bool) error {
	var lastErr error

	for attempt := 0; attempt < config.MaxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		err := operation()
		if err == nil {
			return nil
		}

		lastErr = err

		if !shouldRetry(err) {
			return fmt.Errorf("non-retryable error: %w", err)
		}

		// Last attempt - don't wait
		if attempt == config.MaxAttempts-1 {
			break
		}

		backoff := CalculateBackoff(attempt, config)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(backoff):
		}
	}

	return fmt.Errorf("operation failed after %d attempts: %w", config.MaxAttempts, lastErr)
}
