package retry

import (
	"context"
	"time"
)

type fn func() error
type shouldRetry func(err error, attempt int) bool

// WrapWithRetry wraps the given function, retrying it while shouldRetry returns true. The delay between
// attempts doubles after every failure. Returns the last error, or ctx.Err() if the context ends first.
func WrapWithRetry(ctx context.Context, f fn, shouldRetry shouldRetry, delay time.Duration) func() error {
	return func() error {
		attempt := 0
		wait := delay

		for {
			err := f()
			if err == nil {
				return nil
			}

			attempt++
			if !shouldRetry(err, attempt) {
				return err
			}

			timer := time.NewTimer(wait)
			select {
			case <-ctx.Done():
				timer.Stop()
				return ctx.Err()
			case <-timer.C:
			}

			wait *= 2
		}
	}
}

// Attempts allows up to n attempts in total.
func Attempts(n int) shouldRetry {
	return func(_ error, attempt int) bool {
		return attempt < n
	}
}
