package transferwatch

import (
	"context"
	"time"

	"golang.org/x/time/rate"
)

// throttle enforces a minimum delay between consecutive node calls.
//
// It reserves tokens from a single-token rate.Limiter at the Clock's current time
// and sleeps through the Clock, so the floor is honored in production and can be
// observed without wall-clock delays in tests.
type throttle struct {
	limiter *rate.Limiter
	clock   Clock
}

// newThrottle returns a throttle that spaces calls at least minInterval apart.
// A non-positive minInterval disables throttling.
func newThrottle(minInterval time.Duration, clock Clock) *throttle {
	limit := rate.Inf
	if minInterval > 0 {
		limit = rate.Every(minInterval)
	}

	return &throttle{
		limiter: rate.NewLimiter(limit, 1),
		clock:   clock,
	}
}

// wait blocks until the next node call is allowed or ctx is done.
// A canceled wait gives its reservation back.
func (t *throttle) wait(ctx context.Context) error {
	now := t.clock.Now()

	reservation := t.limiter.ReserveN(now, 1)
	delay := reservation.DelayFrom(now)
	if delay <= 0 {
		return ctx.Err()
	}

	if err := t.clock.Sleep(ctx, delay); err != nil {
		reservation.CancelAt(t.clock.Now())
		return err
	}

	return nil
}
