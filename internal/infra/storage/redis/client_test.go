package redis

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"testing"
	"time"

	"github.com/gabapcia/transferwatch/internal/pkg/logger"
	"github.com/gabapcia/transferwatch/internal/pkg/resilience/retry"
	retrytest "github.com/gabapcia/transferwatch/internal/pkg/resilience/retry/mocks"

	"github.com/alicebob/miniredis/v2"
	redis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func init() {
	// Use error level to reduce test output
	_ = logger.Init("error")
}

// singleAttempt fails the initial connection check without waiting.
func singleAttempt() Option {
	return WithRetry(retry.New(retry.WithAttempts(1)))
}

func newTestClient(t *testing.T, mr *miniredis.Miniredis, opts ...Option) *client {
	t.Helper()

	c, err := NewClient(t.Context(), mr.Addr(), "", "", 0, append([]Option{singleAttempt()}, opts...)...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	return c
}

func TestNewClient(t *testing.T) {
	t.Run("connects to a reachable server", func(t *testing.T) {
		mr := miniredis.RunT(t)

		c := newTestClient(t, mr)

		assert.False(t, c.Degraded())
		assert.Equal(t, defaultTTL, c.ttl)
		assert.Equal(t, defaultReconnectInterval, c.reconnectInterval)
	})

	t.Run("unreachable server starts degraded", func(t *testing.T) {
		mr := miniredis.RunT(t)
		mr.Close()

		c := newTestClient(t, mr)

		assert.True(t, c.Degraded())
	})

	t.Run("connection check goes through the retry policy", func(t *testing.T) {
		mr := miniredis.RunT(t)
		retryMock := retrytest.NewRetry(t)

		retryMock.EXPECT().Execute(mock.Anything, mock.Anything).
			RunAndReturn(func(_ context.Context, operation func() error) error {
				return operation()
			}).Once()

		c, err := NewClient(t.Context(), mr.Addr(), "", "", 0, WithRetry(retryMock))
		require.NoError(t, err)
		defer c.Close()

		assert.False(t, c.Degraded())
	})

	t.Run("canceled context fails construction", func(t *testing.T) {
		mr := miniredis.RunT(t)
		retryMock := retrytest.NewRetry(t)

		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		retryMock.EXPECT().Execute(mock.Anything, mock.Anything).Return(context.Canceled).Once()

		c, err := NewClient(ctx, mr.Addr(), "", "", 0, WithRetry(retryMock))

		assert.ErrorIs(t, err, context.Canceled)
		assert.Nil(t, c)
	})

	t.Run("applies options", func(t *testing.T) {
		mr := miniredis.RunT(t)

		c := newTestClient(t, mr, WithTTL(time.Minute), WithReconnectInterval(time.Second))

		assert.Equal(t, time.Minute, c.ttl)
		assert.Equal(t, time.Second, c.reconnectInterval)
	})
}

func TestClient_Reconnect(t *testing.T) {
	t.Run("lost connection degrades and recovers", func(t *testing.T) {
		mr := miniredis.RunT(t)
		c := newTestClient(t, mr, WithReconnectInterval(0))
		ctx := t.Context()

		mr.Close()

		c.MarkProcessed(ctx, "0xabc")
		assert.True(t, c.Degraded())
		assert.False(t, c.IsProcessed(ctx, "0xabc"))

		require.NoError(t, mr.Restart())

		assert.False(t, c.IsProcessed(ctx, "0xabc"))
		assert.False(t, c.Degraded())

		c.MarkProcessed(ctx, "0xabc")
		assert.True(t, c.IsProcessed(ctx, "0xabc"))
	})

	t.Run("reconnect waits for the interval", func(t *testing.T) {
		mr := miniredis.RunT(t)
		mr.Close()

		c := newTestClient(t, mr, WithReconnectInterval(30*time.Second))
		require.True(t, c.Degraded())

		current := c.lastAttempt
		c.now = func() time.Time { return current }

		require.NoError(t, mr.Restart())

		current = current.Add(10 * time.Second)
		assert.False(t, c.IsProcessed(t.Context(), "0xabc"))
		assert.True(t, c.Degraded(), "should not ping before the interval elapsed")

		current = current.Add(25 * time.Second)
		assert.False(t, c.IsProcessed(t.Context(), "0xabc"))
		assert.False(t, c.Degraded(), "should reconnect once the interval elapsed")
	})

	t.Run("failed reconnect restarts the interval", func(t *testing.T) {
		mr := miniredis.RunT(t)
		mr.Close()

		c := newTestClient(t, mr, WithReconnectInterval(30*time.Second))

		start := c.lastAttempt
		current := start.Add(31 * time.Second)
		c.now = func() time.Time { return current }

		c.MarkProcessed(t.Context(), "0xabc")

		assert.True(t, c.Degraded())
		assert.Equal(t, current, c.lastAttempt)
	})
}

func TestIsConnectionError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "closed client", err: redis.ErrClosed, want: true},
		{name: "eof", err: io.EOF, want: true},
		{name: "wrapped unexpected eof", err: fmt.Errorf("read: %w", io.ErrUnexpectedEOF), want: true},
		{name: "dial error", err: &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}, want: true},
		{name: "command error", err: errors.New("WRONGTYPE Operation against a key holding the wrong kind of value"), want: false},
		{name: "canceled context", err: context.Canceled, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isConnectionError(tt.err))
		})
	}
}
