// Package retry provides a small reusable retry-with-backoff policy.
package retry

import (
	"context"
	"fmt"
	"time"
)

// Defaults applied when a Policy field is zero.
const (
	DefaultMaxAttempts = 3
	DefaultBaseDelay   = time.Second
)

// Policy retries an operation with exponential backoff: the delay starts
// at BaseDelay and doubles after each failed attempt. Sleep is injectable
// so tests can run against a fake clock.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
	Sleep       func(time.Duration)
}

// Do runs op until it succeeds, the attempts are exhausted, or ctx is
// cancelled. The returned error is the last attempt's error (or the
// context error on cancellation).
func (p Policy) Do(ctx context.Context, op func() error) error {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = DefaultMaxAttempts
	}
	delay := p.BaseDelay
	if delay <= 0 {
		delay = DefaultBaseDelay
	}
	sleep := p.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}

	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("retry aborted: %w", err)
		}
		if lastErr = op(); lastErr == nil {
			return nil
		}
		if attempt < attempts-1 {
			sleep(delay)
			delay *= 2
		}
	}
	return lastErr
}
