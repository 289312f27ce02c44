// Package retry wraps exponential backoff for delivery attempts.
package retry

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Do runs fn up to maxAttempts times with exponential backoff starting
// at initial. retryable decides whether a given error is worth another
// attempt; non-retryable errors return immediately.
func Do(ctx context.Context, maxAttempts uint64, initial time.Duration, retryable func(error) bool, fn func() error) error {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = initial
	b.RandomizationFactor = 0

	wrapped := func() error {
		err := fn()
		if err != nil && !retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}
	return backoff.Retry(wrapped, backoff.WithContext(backoff.WithMaxRetries(b, maxAttempts-1), ctx))
}
