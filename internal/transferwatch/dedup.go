package transferwatch

import "context"

// DedupCache remembers which transactions have already been handed to the
// TransferSink, so that re-polling an overlapping block range (for example after
// a restart) does not produce redundant sink calls.
//
// The cache is a hint, not a correctness guarantee: absence of an entry does not
// prove that a transaction was never recorded. Implementations must never fail
// the caller, which is why neither method returns an error. Backing-store errors
// are expected to be logged and absorbed inside the implementation.
type DedupCache interface {
	// IsProcessed reports whether MarkProcessed previously succeeded for hash and
	// the entry has not expired yet. It returns false when the backing store is
	// unavailable.
	IsProcessed(ctx context.Context, hash string) bool

	// MarkProcessed records hash as processed for the configured time-to-live.
	// It silently no-ops when the backing store is unavailable.
	MarkProcessed(ctx context.Context, hash string)
}

// nopDedupCache is a DedupCache that never remembers anything.
//
// Every transaction is treated as unprocessed, leaving deduplication entirely to
// the sink's upsert-on-conflict behavior.
type nopDedupCache struct{}

// Ensure compile-time compliance with the DedupCache interface.
var _ DedupCache = nopDedupCache{}

// IsProcessed always returns false.
func (nopDedupCache) IsProcessed(context.Context, string) bool { return false }

// MarkProcessed does nothing.
func (nopDedupCache) MarkProcessed(context.Context, string) {}
