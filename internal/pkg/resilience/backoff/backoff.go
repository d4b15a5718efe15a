// Package backoff computes capped exponential retry delays.
//
// It complements the retry package: retry drives a whole retry loop around an
// operation, while backoff only answers "how long should attempt n wait", which
// lets long-running state machines own their own loop and suspension points.
package backoff

import "time"

// Delay returns the wait before retry number attempt (zero-based), computed as
// base * 2^attempt and capped at maxDelay.
//
// A non-positive base yields zero. A non-positive maxDelay disables the cap. The
// doubling saturates instead of overflowing.
//
// Example (base=1s, max=10s):
//
//	attempt: 0   1   2   3   4    5
//	delay:   1s  2s  4s  8s  10s  10s
func Delay(base, maxDelay time.Duration, attempt uint) time.Duration {
	if base <= 0 {
		return 0
	}

	delay := base
	for i := uint(0); i < attempt; i++ {
		if maxDelay > 0 && delay >= maxDelay {
			return maxDelay
		}

		if delay > (1<<63-1)/2 {
			delay = 1<<63 - 1
			break
		}

		delay *= 2
	}

	if maxDelay > 0 && delay > maxDelay {
		return maxDelay
	}

	return delay
}

// Policy is a reusable pair of base and maximum delays.
type Policy struct {
	Base time.Duration // delay of the first retry
	Max  time.Duration // upper bound for any delay
}

// Delay returns Delay(p.Base, p.Max, attempt).
func (p Policy) Delay(attempt uint) time.Duration {
	return Delay(p.Base, p.Max, attempt)
}
