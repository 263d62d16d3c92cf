package ratelimit

import (
	"context"
	"sync"
	"time"
)

// Spacer enforces a minimum interval between starts of an operation,
// process-wide. The lock is held across the sleep so concurrent callers
// queue up instead of bursting through together.
type Spacer struct {
	mu       sync.Mutex
	last     time.Time
	interval time.Duration
}

// NewSpacer creates a spacer with the given minimum interval.
func NewSpacer(interval time.Duration) *Spacer {
	return &Spacer{interval: interval}
}

// Wait blocks until at least the interval has passed since the previous
// call started, then stamps the new start time.
func (s *Spacer) Wait(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.last.IsZero() {
		if elapsed := time.Since(s.last); elapsed < s.interval {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(s.interval - elapsed):
			}
		}
	}
	s.last = time.Now()
	return nil
}
