package transferwatch

import (
	"context"
	"time"
)

// Clock abstracts wall-clock time so that every suspension point of the poller
// (rate-limit waits, poll interval, backoff) can be driven without real delays.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// Sleep blocks for d or until ctx is done, whichever happens first.
	// It returns ctx.Err() if the context was done before or during the sleep.
	Sleep(ctx context.Context, d time.Duration) error
}

// realClock is the Clock backed by the time package.
type realClock struct{}

// Ensure compile-time compliance with the Clock interface.
var _ Clock = realClock{}

// Now returns time.Now().
func (realClock) Now() time.Time { return time.Now() }

// Sleep waits on a timer, checking ctx before and during the wait.
func (realClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return ctx.Err()
	}
}
