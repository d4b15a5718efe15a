// Package redis implements the transfer dedup cache on top of Redis.
//
// The cache is best effort. When Redis is unreachable the client switches to a
// degraded mode in which every hash reads as unprocessed and writes are dropped,
// and it lazily pings Redis again once the reconnect interval has elapsed.
package redis

import (
	"context"
	"errors"
	"io"
	"net"
	"sync"
	"time"

	"github.com/gabapcia/transferwatch/internal/pkg/logger"
	"github.com/gabapcia/transferwatch/internal/pkg/resilience/retry"

	redis "github.com/redis/go-redis/v9"
)

const (
	defaultTTL               = 24 * time.Hour
	defaultReconnectInterval = 30 * time.Second
)

type client struct {
	conn *redis.Client

	ttl               time.Duration
	reconnectInterval time.Duration
	now               func() time.Time

	mu          sync.Mutex // protects degraded and lastAttempt
	degraded    bool
	lastAttempt time.Time
}

// config holds the optional settings of the client.
type config struct {
	retry             retry.Retry
	ttl               time.Duration
	reconnectInterval time.Duration
}

// Option configures the client.
type Option func(*config)

// WithRetry sets the retry policy of the initial connection check.
func WithRetry(r retry.Retry) Option {
	return func(c *config) {
		c.retry = r
	}
}

// WithTTL sets how long a processed hash is remembered.
func WithTTL(ttl time.Duration) Option {
	return func(c *config) {
		c.ttl = ttl
	}
}

// WithReconnectInterval sets the minimum delay between two reconnect pings while
// degraded. Zero pings on every call.
func WithReconnectInterval(d time.Duration) Option {
	return func(c *config) {
		c.reconnectInterval = d
	}
}

// NewClient connects to Redis and pings it until it answers or the retry policy
// gives up.
//
// An unreachable Redis is not an error: the client is returned in degraded mode
// and recovers on its own. The only error returned is the context's, when ctx is
// done before the connection check completes.
//
// Defaults:
//   - retry:              5 attempts, 500ms base delay doubling up to 8s
//   - ttl:                24h
//   - reconnect interval: 30s
func NewClient(ctx context.Context, addr, username, password string, db int, opts ...Option) (*client, error) {
	cfg := config{
		retry: retry.New(
			retry.WithAttempts(5),
			retry.WithDelay(500*time.Millisecond),
			retry.WithMaxDelay(8*time.Second),
		),
		ttl:               defaultTTL,
		reconnectInterval: defaultReconnectInterval,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	conn := redis.NewClient(&redis.Options{
		Addr:     addr,
		Username: username,
		Password: password,
		DB:       db,
	})

	c := &client{
		conn:              conn,
		ttl:               cfg.ttl,
		reconnectInterval: cfg.reconnectInterval,
		now:               time.Now,
	}

	err := cfg.retry.Execute(ctx, func() error {
		return conn.Ping(ctx).Err()
	})
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			_ = conn.Close()
			return nil, ctxErr
		}

		logger.Warn(ctx, "dedup cache unreachable, starting degraded", "redis.addr", addr, "error", err)
		c.degrade()
	}

	return c, nil
}

// Close releases the underlying connection pool.
func (c *client) Close() error {
	return c.conn.Close()
}

// Degraded reports whether the client is currently bypassing Redis.
func (c *client) Degraded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.degraded
}

// degrade switches to degraded mode and starts the reconnect interval.
func (c *client) degrade() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.degraded {
		c.degraded = true
		c.lastAttempt = c.now()
	}
}

// available reports whether commands should be sent to Redis. While degraded it
// pings Redis at most once per reconnect interval and leaves degraded mode on
// success.
func (c *client) available(ctx context.Context) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.degraded {
		return true
	}

	now := c.now()
	if now.Sub(c.lastAttempt) < c.reconnectInterval {
		return false
	}
	c.lastAttempt = now

	if err := c.conn.Ping(ctx).Err(); err != nil {
		logger.Debug(ctx, "dedup cache still unreachable", "error", err)
		return false
	}

	c.degraded = false
	logger.Info(ctx, "dedup cache reconnected")
	return true
}

// absorb logs a failed command. Connection failures also switch the client to
// degraded mode.
func (c *client) absorb(ctx context.Context, op, hash string, err error) {
	if isConnectionError(err) {
		c.degrade()
		logger.Warn(ctx, "dedup cache unreachable, continuing without it",
			"redis.op", op,
			"tx.hash", hash,
			"error", err,
		)
		return
	}

	logger.Error(ctx, "dedup cache command failed",
		"redis.op", op,
		"tx.hash", hash,
		"error", err,
	)
}

// isConnectionError reports whether err means Redis could not be talked to, as
// opposed to a command-level failure.
func isConnectionError(err error) bool {
	if errors.Is(err, redis.ErrClosed) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}

	var netErr net.Error
	return errors.As(err, &netErr)
}
