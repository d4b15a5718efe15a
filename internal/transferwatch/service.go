// Package transferwatch tails a blockchain for large native-token transfers.
//
// The package owns the block-polling pipeline: it tracks chain progress with an
// in-memory cursor, fetches blocks and transactions under a rate limit,
// classifies transactions against a threshold, consults a DedupCache, hands
// qualifying records to a TransferSink, and recovers from transient node
// failures through an explicit INITIALIZING / POLLING / BACKOFF state machine.
package transferwatch

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gabapcia/transferwatch/internal/pkg/resilience/backoff"
)

var (
	// ErrServiceAlreadyStarted is returned if Start is called more than once.
	ErrServiceAlreadyStarted = errors.New("service already started")

	// ErrStartupFailed is returned by Run when the loop could not obtain a starting
	// height within the configured number of startup attempts.
	ErrStartupFailed = errors.New("unable to obtain starting height")
)

const (
	defaultPollInterval    = 5 * time.Second
	defaultMinCallInterval = 200 * time.Millisecond
	defaultBackoffBase     = 5 * time.Second
	defaultBackoffMax      = time.Minute
)

// Service defines the poller lifecycle.
type Service interface {
	// Start launches the driver loop in the background.
	//
	// Returns ErrServiceAlreadyStarted if Start is called more than once.
	// Call Close to stop the loop.
	Start(ctx context.Context) error

	// Run executes the driver loop in the calling goroutine until ctx is canceled
	// or startup fails permanently. It returns the reason the loop stopped.
	Run(ctx context.Context) error

	// Close cancels a loop launched by Start and waits for it to return.
	// It is safe to call Close even if the service was never started.
	Close()

	// State returns the current state of the driver loop.
	State() State

	// Cursor returns the last fully processed height, and false if no starting
	// height has been obtained yet.
	Cursor() (uint64, bool)
}

// closeFunc defines a cleanup routine that stops the background loop.
type closeFunc func()

// service is the internal implementation of the Service interface.
type service struct {
	mu        sync.Mutex // protects lifecycle state
	isStarted bool       // ensures Start is called only once
	closeFunc closeFunc  // cancels the loop and waits for it

	chain     Blockchain
	sink      TransferSink
	dedup     DedupCache
	threshold *big.Int

	clock              Clock
	throttle           *throttle
	pollInterval       time.Duration
	backoff            backoff.Policy
	fullTransactions   bool
	maxStartupAttempts uint

	state     atomic.Int32
	cursor    atomic.Uint64
	hasCursor atomic.Bool
}

// Compile-time check to ensure *service implements the Service interface.
var _ Service = (*service)(nil)

// Start launches Run in a background goroutine bound to a cancelable child of ctx.
func (s *service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isStarted {
		return ErrServiceAlreadyStarted
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})

	go func() {
		defer close(done)
		_ = s.Run(ctx)
	}()

	s.closeFunc = func() {
		cancel()
		<-done
	}
	s.isStarted = true
	return nil
}

// Close cancels the background loop and waits for it to stop.
func (s *service) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closeFunc != nil {
		s.closeFunc()
	}

	s.closeFunc = nil
	s.isStarted = false
}

// State returns the current state of the driver loop.
func (s *service) State() State {
	return State(s.state.Load())
}

// Cursor returns the last fully processed height.
func (s *service) Cursor() (uint64, bool) {
	return s.cursor.Load(), s.hasCursor.Load()
}

// config holds the optional settings of the service.
type config struct {
	dedup              DedupCache
	clock              Clock
	pollInterval       time.Duration
	minCallInterval    time.Duration
	backoff            backoff.Policy
	fullTransactions   bool
	maxStartupAttempts uint
}

// Option configures the service before construction.
type Option func(*config)

// New creates a poller that reads from chain, records transfers whose value is at
// least threshold (smallest unit) into sink, and uses the given options.
//
// Defaults:
//   - dedup cache:          no-op (the sink's upsert is the only deduplication)
//   - poll interval:        5s
//   - min call interval:    200ms between node calls
//   - backoff:              5s doubling up to 1m
//   - full transactions:    true (blocks are fetched with embedded bodies)
//   - max startup attempts: 0 (retry forever)
func New(chain Blockchain, sink TransferSink, threshold *big.Int, opts ...Option) *service {
	cfg := config{
		dedup:            nopDedupCache{},
		clock:            realClock{},
		pollInterval:     defaultPollInterval,
		minCallInterval:  defaultMinCallInterval,
		backoff:          backoff.Policy{Base: defaultBackoffBase, Max: defaultBackoffMax},
		fullTransactions: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if threshold == nil {
		threshold = new(big.Int)
	}

	return &service{
		chain:              chain,
		sink:               sink,
		dedup:              cfg.dedup,
		threshold:          new(big.Int).Set(threshold),
		clock:              cfg.clock,
		throttle:           newThrottle(cfg.minCallInterval, cfg.clock),
		pollInterval:       cfg.pollInterval,
		backoff:            cfg.backoff,
		fullTransactions:   cfg.fullTransactions,
		maxStartupAttempts: cfg.maxStartupAttempts,
	}
}

// WithDedupCache sets the cache consulted before each sink write.
func WithDedupCache(c DedupCache) Option {
	return func(cfg *config) {
		cfg.dedup = c
	}
}

// WithClock replaces the wall clock used for every suspension point.
func WithClock(c Clock) Option {
	return func(cfg *config) {
		cfg.clock = c
	}
}

// WithPollInterval sets the sleep between two height checks.
func WithPollInterval(d time.Duration) Option {
	return func(cfg *config) {
		cfg.pollInterval = d
	}
}

// WithMinCallInterval sets the minimum delay between two node calls.
// Zero disables throttling.
func WithMinCallInterval(d time.Duration) Option {
	return func(cfg *config) {
		cfg.minCallInterval = d
	}
}

// WithBackoff sets the base and maximum delay of the BACKOFF state.
func WithBackoff(base, maxDelay time.Duration) Option {
	return func(cfg *config) {
		cfg.backoff = backoff.Policy{Base: base, Max: maxDelay}
	}
}

// WithFullTransactions selects whether blocks are fetched with embedded
// transaction bodies (true) or as hash lists followed by one GetTransaction call
// per hash (false).
func WithFullTransactions(full bool) Option {
	return func(cfg *config) {
		cfg.fullTransactions = full
	}
}

// WithMaxStartupAttempts bounds how many consecutive times the loop may fail to
// obtain its starting height before terminating with ErrStartupFailed.
// Zero means unlimited.
func WithMaxStartupAttempts(n uint) Option {
	return func(cfg *config) {
		cfg.maxStartupAttempts = n
	}
}
