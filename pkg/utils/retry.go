package utils

import (
	"context"
	"errors"
	"log"
	"time"

	"google.golang.org/api/googleapi"
)

// sleep is swappable so tests can observe backoff delays without waiting.
var sleep = func(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Retry runs op up to maxAttempts times, doubling the delay between
// attempts starting from baseDelay. Errors rejected by isRetryable stop
// the loop immediately; the last error is returned after exhaustion.
func Retry[T any](ctx context.Context, maxAttempts int, baseDelay time.Duration, isRetryable func(error) bool, op func() (T, error)) (T, error) {
	var zero T
	var lastErr error
	delay := baseDelay

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		result, err := op()
		if err == nil {
			return result, nil
		}
		lastErr = err
		log.Printf("attempt %d/%d failed: %v", attempt, maxAttempts, err)

		if attempt == maxAttempts || !isRetryable(err) {
			return zero, err
		}
		if err := sleep(ctx, delay); err != nil {
			return zero, err
		}
		delay *= 2
	}
	return zero, lastErr
}

// IsRetryableAIError reports whether an upstream AI failure is transient:
// rate limiting (429), internal errors (500) and momentary unavailability
// (503). Auth failures (401/403) and anything else are permanent.
func IsRetryableAIError(err error) bool {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 429, 500, 503:
			return true
		}
	}
	return false
}
