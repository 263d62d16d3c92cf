package retry

import (
	"context"
	"fmt"
	"time"
)

// Policy runs an operation with bounded attempts and exponential backoff.
// The delay doubles after every failed attempt.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

// Do invokes op until it succeeds, attempts run out, or ctx is done.
func (p Policy) Do(ctx context.Context, op func() error) error {
	attempts := p.MaxAttempts
	if attempts <= 0 {
		attempts = 1
	}
	delay := p.BaseDelay

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if err := op(); err != nil {
			lastErr = err
		} else {
			return nil
		}

		if attempt < attempts {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}
	}
	return fmt.Errorf("after %d attempts: %w", attempts, lastErr)
}
