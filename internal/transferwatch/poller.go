package transferwatch

import (
	"context"
	"fmt"

	"github.com/gabapcia/transferwatch/internal/pkg/logger"
	"github.com/gabapcia/transferwatch/internal/pkg/metrics"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// tracer opens one span per processed height.
var tracer = otel.Tracer("github.com/gabapcia/transferwatch/internal/transferwatch")

// knownStates lists every state, so the state gauge can be reset on transitions.
var knownStates = []string{
	StateInitializing.String(),
	StatePolling.String(),
	StateBackoff.String(),
	StateTerminated.String(),
}

// Run drives the poller state machine until ctx is canceled.
//
//	INITIALIZING --ok--> POLLING --transient error--> BACKOFF
//	     ^                  ^                           |
//	     +---no cursor------+------cursor set-----------+
//
// Every suspension point (rate-limit waits, the poll interval, backoff sleeps)
// goes through the configured Clock and observes ctx. A height is only committed
// to the cursor after all its transactions were handled, so cancellation never
// leaves a height partially advanced.
//
// Run returns ctx.Err() on cancellation, or an error wrapping ErrStartupFailed
// when WithMaxStartupAttempts is set and the starting height could not be
// obtained in time. Both paths end in StateTerminated.
func (s *service) Run(ctx context.Context) error {
	var (
		state           = s.transition(ctx, s.State(), StateInitializing, nil)
		attempt         uint
		startupFailures uint
	)

	for {
		if err := ctx.Err(); err != nil {
			s.transition(ctx, state, StateTerminated, err)
			return err
		}

		switch state {
		case StateInitializing:
			if err := s.initialize(ctx); err != nil {
				if ctx.Err() != nil {
					continue
				}

				startupFailures++
				if s.startupExhausted(startupFailures) {
					s.transition(ctx, state, StateTerminated, err)
					return fmt.Errorf("%w: %w", ErrStartupFailed, err)
				}

				logger.Error(ctx, "failed to obtain starting height",
					"poller.startup.failures", startupFailures,
					"error", err,
				)
				state = s.transition(ctx, state, StateBackoff, err)
				continue
			}

			startupFailures = 0
			attempt = 0
			state = s.transition(ctx, state, StatePolling, nil)

		case StatePolling:
			if err := s.poll(ctx); err != nil {
				if ctx.Err() != nil {
					continue
				}

				cursor, _ := s.Cursor()
				logger.Error(ctx, "polling failed",
					"poller.cursor", cursor,
					"error", err,
				)
				state = s.transition(ctx, state, StateBackoff, err)
				continue
			}

			attempt = 0
			_ = s.clock.Sleep(ctx, s.pollInterval)

		case StateBackoff:
			delay := s.backoff.Delay(attempt)
			attempt++

			metrics.ObserveBackoff()
			logger.Warn(ctx, "backing off",
				"poller.backoff.attempt", attempt,
				"poller.backoff.delay", delay.String(),
			)

			if err := s.clock.Sleep(ctx, delay); err != nil {
				continue
			}

			if !s.isConnected(ctx) {
				if ctx.Err() != nil {
					continue
				}

				logger.Warn(ctx, "node still unreachable", "poller.backoff.attempt", attempt)

				if _, ok := s.Cursor(); !ok {
					startupFailures++
					if s.startupExhausted(startupFailures) {
						s.transition(ctx, state, StateTerminated, ErrNodeUnavailable)
						return fmt.Errorf("%w: %w", ErrStartupFailed, ErrNodeUnavailable)
					}
				}
				continue
			}

			if _, ok := s.Cursor(); ok {
				state = s.transition(ctx, state, StatePolling, nil)
			} else {
				state = s.transition(ctx, state, StateInitializing, nil)
			}
		}
	}
}

// startupExhausted reports whether the configured startup budget is used up.
func (s *service) startupExhausted(failures uint) bool {
	return s.maxStartupAttempts > 0 && failures >= s.maxStartupAttempts
}

// transition records and logs a state change and returns the new state.
func (s *service) transition(ctx context.Context, from, to State, reason error) State {
	s.state.Store(int32(to))
	metrics.SetState(to.String(), knownStates...)

	keysAndValues := []any{
		"poller.state.from", from.String(),
		"poller.state.to", to.String(),
	}
	if reason != nil {
		keysAndValues = append(keysAndValues, "reason", reason.Error())
	}

	logger.Info(ctx, "poller state transition", keysAndValues...)
	return to
}

// initialize sets the cursor to the chain's current height.
//
// Blocks produced before this height (for example while the process was down)
// are intentionally not backfilled.
func (s *service) initialize(ctx context.Context) error {
	if err := s.throttle.wait(ctx); err != nil {
		return err
	}

	height, err := s.chain.CurrentHeight(ctx)
	if err != nil {
		return err
	}

	s.advance(height)
	logger.Info(ctx, "starting from current chain height", "block.height", height)
	return nil
}

// isConnected asks the node whether it answers requests, honoring the rate limit.
func (s *service) isConnected(ctx context.Context) bool {
	if err := s.throttle.wait(ctx); err != nil {
		return false
	}

	return s.chain.IsConnected(ctx)
}

// advance commits height as the last fully processed height.
func (s *service) advance(height uint64) {
	s.cursor.Store(height)
	s.hasCursor.Store(true)
	metrics.SetCursor(height)
}

// poll processes every height between the cursor (exclusive) and the chain's
// current height (inclusive), in ascending order.
//
// It returns the first error that must interrupt polling: a failed height query,
// a transient failure while processing a height, or a context error. The cursor
// keeps the last height that was fully handled.
func (s *service) poll(ctx context.Context) error {
	if err := s.throttle.wait(ctx); err != nil {
		return err
	}

	height, err := s.chain.CurrentHeight(ctx)
	if err != nil {
		return err
	}

	cursor, _ := s.Cursor()
	if height <= cursor {
		if height < cursor {
			logger.Debug(ctx, "node reported a height behind the cursor",
				"block.height", height,
				"poller.cursor", cursor,
			)
		}
		return nil
	}

	for h := cursor + 1; h <= height; h++ {
		if err := s.processHeight(ctx, h); err != nil {
			return err
		}

		s.advance(h)
	}

	return nil
}

// processHeight fetches the block at height and handles each of its transactions
// in block order.
//
// A block or transaction that fails with a per-item error is logged and skipped.
// Transient errors and context errors are returned so the caller can back off
// without committing the height.
func (s *service) processHeight(ctx context.Context, height uint64) (err error) {
	ctx, span := tracer.Start(ctx, "transferwatch.processHeight",
		trace.WithAttributes(attribute.Int64("block.height", int64(height))),
	)
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		span.End()
	}()

	ctx = logger.Derive(ctx, "block.height", height)

	if err := s.throttle.wait(ctx); err != nil {
		return err
	}

	block, err := s.chain.GetBlock(ctx, height, s.fullTransactions)
	if err != nil {
		if IsTransient(err) || ctx.Err() != nil {
			return err
		}

		logger.Error(ctx, "failed to fetch block, skipping", "error", err)
		metrics.ObserveBlock(metrics.BlockSkipped)
		return nil
	}

	logger.Debug(ctx, "processing block",
		"block.hash", block.Hash,
		"block.transactions", len(block.Transactions)+len(block.TransactionHashes),
	)

	for _, err := range block.Skipped {
		logger.Error(ctx, "failed to decode transaction, skipping", "error", err)
		metrics.ObserveSkippedTransaction()
	}

	for _, tx := range block.Transactions {
		s.handleTransaction(ctx, height, tx)
	}

	for _, hash := range block.TransactionHashes {
		if err := s.throttle.wait(ctx); err != nil {
			return err
		}

		tx, err := s.chain.GetTransaction(ctx, hash)
		if err != nil {
			if IsTransient(err) || ctx.Err() != nil {
				return err
			}

			logger.Error(ctx, "failed to fetch transaction, skipping", "tx.hash", hash, "error", err)
			metrics.ObserveSkippedTransaction()
			continue
		}

		s.handleTransaction(ctx, height, tx)
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	metrics.ObserveBlock(metrics.BlockProcessed)
	return nil
}

// handleTransaction runs one transaction through classify, dedup check, sink
// write and dedup mark, in that order.
//
// A sink failure is logged and the transaction is left unmarked; it is not
// retried here.
func (s *service) handleTransaction(ctx context.Context, height uint64, tx Transaction) {
	if tx.BlockHeight == 0 {
		tx.BlockHeight = height
	}

	record, ok := Classify(tx, s.threshold)
	if !ok {
		return
	}

	if s.dedup.IsProcessed(ctx, tx.Hash) {
		logger.Debug(ctx, "large transfer already recorded", "tx.hash", tx.Hash)
		metrics.ObserveTransfer(metrics.TransferDuplicate)
		return
	}

	logger.Info(ctx, "large transfer detected",
		"tx.hash", record.TxHash,
		"tx.from", record.From,
		"tx.to", record.To,
		"tx.amount", record.Amount,
	)

	if err := s.sink.UpsertTransfer(ctx, record); err != nil {
		logger.Error(ctx, "failed to record large transfer",
			"tx.hash", record.TxHash,
			"error", err,
		)
		metrics.ObserveTransfer(metrics.TransferSinkFailed)
		return
	}

	s.dedup.MarkProcessed(ctx, tx.Hash)
	metrics.ObserveTransfer(metrics.TransferPersisted)
}
