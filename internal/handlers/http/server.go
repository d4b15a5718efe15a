// Package http serves the operational HTTP endpoints of the watcher: liveness,
// readiness derived from the poller state, and Prometheus metrics.
package http

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gabapcia/transferwatch/internal/pkg/logger"
	"github.com/gabapcia/transferwatch/internal/pkg/metrics"
	"github.com/gabapcia/transferwatch/internal/transferwatch"
)

const (
	defaultShutdownTimeout   = 10 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
)

// StateReporter exposes the poller state to the readiness endpoint.
type StateReporter interface {
	State() transferwatch.State
}

// server hosts the operational endpoints.
type server struct {
	addr            string
	handler         http.Handler
	shutdownTimeout time.Duration
}

// config holds optional settings of the server.
type config struct {
	shutdownTimeout time.Duration
}

// Option configures the server.
type Option func(*config)

// WithShutdownTimeout bounds how long Run waits for in-flight requests on exit.
func WithShutdownTimeout(d time.Duration) Option {
	return func(c *config) {
		c.shutdownTimeout = d
	}
}

// NewServer returns a server listening on addr. Routes:
//
//	GET /healthz  200 "ok" while the process is up
//	GET /readyz   200 "POLLING" while the poller tails the chain, 503 with the state name otherwise
//	GET /metrics  Prometheus exposition
func NewServer(addr string, reporter StateReporter, opts ...Option) *server {
	cfg := config{shutdownTimeout: defaultShutdownTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", handleHealthz)
	mux.Handle("GET /readyz", readyzHandler(reporter))
	mux.Handle("GET /metrics", metrics.Handler())

	return &server{
		addr:            addr,
		handler:         mux,
		shutdownTimeout: cfg.shutdownTimeout,
	}
}

// Handler returns the route multiplexer.
func (s *server) Handler() http.Handler {
	return s.handler
}

// Run listens on the configured address and serves until ctx is canceled, then
// shuts down gracefully. It returns nil after a clean shutdown.
func (s *server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener. The listener is closed on return.
func (s *server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.handler,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Serve(ln)
	}()

	logger.Info(ctx, "http server listening", "http.addr", ln.Addr().String())

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}

	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// readyzHandler reports ready only while the poller is POLLING.
func readyzHandler(reporter StateReporter) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		state := reporter.State()

		status := http.StatusOK
		if state != transferwatch.StatePolling {
			status = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(state.String()))
	}
}
