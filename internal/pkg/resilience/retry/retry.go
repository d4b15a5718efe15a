// Package retry runs an operation until it succeeds, the attempt budget is spent
// or the context is done. It wraps the retry-go package from Avast behind a
// small interface with functional options, so callers can swap in a mock.
//
// Delays grow exponentially between attempts.
//
//	r := retry.New(
//	    retry.WithAttempts(5),
//	    retry.WithDelay(500*time.Millisecond),
//	    retry.WithMaxDelay(8*time.Second),
//	)
//	err := r.Execute(ctx, func() error {
//	    return conn.Ping(ctx).Err()
//	})
package retry

import (
	"context"
	"time"

	retry "github.com/avast/retry-go/v4"
)

// Retry runs operations with automatic retry logic.
type Retry interface {
	// Execute calls operation until it returns nil, the configured number of
	// attempts is reached, or ctx is done.
	//
	// The operation should be idempotent. Execute returns nil on success. On
	// failure it returns the last error, or all errors joined when
	// WithLastErrorOnly(false) is set. A done context yields its error.
	Execute(ctx context.Context, operation func() error) error
}

// config holds internal settings for the retry mechanism.
type config struct {
	attempts    uint                          // maximum number of attempts, including the first
	delay       time.Duration                 // base delay between attempts
	maxDelay    time.Duration                 // upper bound for any delay
	lastErrOnly bool                          // whether to return only the last error
	onRetry     func(attempt uint, err error) // called after each failed attempt
	retryIf     func(err error) bool          // decides whether an error is worth retrying
}

// Option configures the retry mechanism.
type Option func(*config)

// retrier implements Retry using retry-go.
type retrier struct {
	cfg config
}

// Compile-time assertion that retrier implements Retry interface
var _ Retry = (*retrier)(nil)

// New returns a Retry configured with opts.
//
// Default configuration:
//   - attempts:    3 (1 initial attempt + 2 retries)
//   - delay:       1 second, doubled after each attempt
//   - maxDelay:    5 seconds
//   - lastErrOnly: true
//   - retryIf:     every error is retried
func New(opts ...Option) Retry {
	cfg := config{
		attempts:    3,
		delay:       1 * time.Second,
		maxDelay:    5 * time.Second,
		lastErrOnly: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &retrier{
		cfg: cfg,
	}
}

// Execute implements the Retry interface.
func (r *retrier) Execute(ctx context.Context, operation func() error) error {
	options := []retry.Option{
		retry.Attempts(r.cfg.attempts),
		retry.Delay(r.cfg.delay),
		retry.MaxDelay(r.cfg.maxDelay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(r.cfg.lastErrOnly),
		retry.Context(ctx),
	}

	if r.cfg.onRetry != nil {
		onRetry := r.cfg.onRetry
		options = append(options, retry.OnRetry(func(n uint, err error) {
			onRetry(n+1, err)
		}))
	}

	if r.cfg.retryIf != nil {
		options = append(options, retry.RetryIf(r.cfg.retryIf))
	}

	return retry.Do(operation, options...)
}

// WithAttempts sets the maximum number of attempts (including the initial attempt).
func WithAttempts(n uint) Option {
	return func(c *config) {
		c.attempts = n
	}
}

// WithDelay sets the delay before the first retry. Later delays double.
func WithDelay(d time.Duration) Option {
	return func(c *config) {
		c.delay = d
	}
}

// WithMaxDelay caps the delay between two attempts.
func WithMaxDelay(d time.Duration) Option {
	return func(c *config) {
		c.maxDelay = d
	}
}

// WithLastErrorOnly sets whether to return only the last error (true) or every
// attempt's error joined together (false).
func WithLastErrorOnly(b bool) Option {
	return func(c *config) {
		c.lastErrOnly = b
	}
}

// WithOnRetry registers a callback invoked after each failed attempt.
// attempt is one-based.
func WithOnRetry(fn func(attempt uint, err error)) Option {
	return func(c *config) {
		c.onRetry = fn
	}
}

// WithRetryIf restricts retries to errors for which fn returns true. Other
// errors are returned immediately.
func WithRetryIf(fn func(err error) bool) Option {
	return func(c *config) {
		c.retryIf = fn
	}
}
