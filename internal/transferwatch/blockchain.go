package transferwatch

import (
	"context"
	"errors"
)

var (
	// ErrNodeUnavailable indicates that the node could not be reached (network
	// failure, timeout, unexpected transport response).
	ErrNodeUnavailable = errors.New("node unavailable")

	// ErrRateLimited indicates that the node provider rejected a request because
	// a request-per-second ceiling was exceeded.
	ErrRateLimited = errors.New("rate limited by node provider")

	// ErrBlockNotAvailable indicates that the node reported a height but could not
	// yet serve the block at that height (typical of load-balanced providers that
	// lag behind their own head).
	ErrBlockNotAvailable = errors.New("block not available yet")
)

// Blockchain is the read-only view of the chain that the poller depends on.
//
// Implementations are network-facing. Errors caused by connectivity, provider
// rate limits, or a node that is behind must wrap ErrNodeUnavailable,
// ErrRateLimited, or ErrBlockNotAvailable so the poller can tell them apart from
// per-item failures.
type Blockchain interface {
	// CurrentHeight returns the height of the latest block known to the node.
	CurrentHeight(ctx context.Context) (uint64, error)

	// GetBlock returns the block at height. When fullTransactions is true the
	// transaction bodies are embedded in Block.Transactions, otherwise only
	// Block.TransactionHashes is populated.
	GetBlock(ctx context.Context, height uint64, fullTransactions bool) (Block, error)

	// GetTransaction returns the transaction identified by hash.
	GetTransaction(ctx context.Context, hash string) (Transaction, error)

	// IsConnected reports whether the node currently answers requests.
	IsConnected(ctx context.Context) bool
}

// IsTransient reports whether err is a whole-connection failure that should send
// the poller into backoff, as opposed to a per-item failure that only skips the
// affected block or transaction.
func IsTransient(err error) bool {
	return errors.Is(err, ErrNodeUnavailable) ||
		errors.Is(err, ErrRateLimited) ||
		errors.Is(err, ErrBlockNotAvailable) ||
		errors.Is(err, context.DeadlineExceeded)
}
