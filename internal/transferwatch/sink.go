package transferwatch

import (
	"context"
	"errors"
)

// TransferSink persists large transfers.
//
// Implementations must behave as an upsert that ignores conflicts on the
// transaction hash: writing the same record twice must neither fail nor
// overwrite the existing row. This is what makes repeated or concurrent delivery
// from independent process instances safe. Stores that cannot ignore a conflict,
// such as a message topic, deliver at least once instead and key every write by
// the hash so that readers can deduplicate.
type TransferSink interface {
	// UpsertTransfer writes record, keyed by record.TxHash.
	UpsertTransfer(ctx context.Context, record TransferRecord) error
}

// fanoutSink delivers every record to a list of sinks.
type fanoutSink []TransferSink

// Ensure compile-time compliance with the TransferSink interface.
var _ TransferSink = fanoutSink(nil)

// FanoutSink returns a TransferSink that writes each record to every given sink,
// in order. All sinks are attempted even if one fails; the returned error joins
// every failure. A single sink is returned unwrapped.
func FanoutSink(sinks ...TransferSink) TransferSink {
	if len(sinks) == 1 {
		return sinks[0]
	}

	return fanoutSink(sinks)
}

// UpsertTransfer writes record to every sink and joins their errors.
func (f fanoutSink) UpsertTransfer(ctx context.Context, record TransferRecord) error {
	var errs []error
	for _, sink := range f {
		if err := sink.UpsertTransfer(ctx, record); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
