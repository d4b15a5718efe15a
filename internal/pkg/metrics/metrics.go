// Package metrics holds the Prometheus collectors of the transfer pipeline and
// the HTTP handler that exposes them.
//
// Collectors are registered on a package-level registry at init time; the
// helpers below are the only way other packages touch them.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "transferwatch"

var (
	registry = prometheus.NewRegistry()

	blocksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "blocks_total", Help: "Blocks handled by the poller, by outcome."},
		[]string{"outcome"},
	)
	transactionsSkippedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: namespace, Name: "transactions_skipped_total", Help: "Transactions that could not be fetched and were skipped."},
	)
	transfersTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: namespace, Name: "transfers_total", Help: "Large transfers, by outcome."},
		[]string{"outcome"},
	)
	backoffsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: namespace, Name: "backoffs_total", Help: "Times the poller entered backoff."},
	)
	cursorHeight = prometheus.NewGauge(
		prometheus.GaugeOpts{Namespace: namespace, Name: "cursor_height", Help: "Last fully processed block height."},
	)
	pollerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Namespace: namespace, Name: "poller_state", Help: "1 for the poller's current state, 0 otherwise."},
		[]string{"state"},
	)
)

func init() {
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		blocksTotal,
		transactionsSkippedTotal,
		transfersTotal,
		backoffsTotal,
		cursorHeight,
		pollerState,
	)
}

// Block outcomes.
const (
	BlockProcessed = "processed"
	BlockSkipped   = "skipped"
)

// Transfer outcomes.
const (
	TransferPersisted  = "persisted"
	TransferDuplicate  = "duplicate"
	TransferSinkFailed = "sink_failed"
)

// ObserveBlock counts a block with the given outcome.
func ObserveBlock(outcome string) {
	blocksTotal.WithLabelValues(outcome).Inc()
}

// ObserveSkippedTransaction counts a transaction that was skipped.
func ObserveSkippedTransaction() {
	transactionsSkippedTotal.Inc()
}

// ObserveTransfer counts a large transfer with the given outcome.
func ObserveTransfer(outcome string) {
	transfersTotal.WithLabelValues(outcome).Inc()
}

// ObserveBackoff counts an entry into backoff.
func ObserveBackoff() {
	backoffsTotal.Inc()
}

// SetCursor records the last fully processed height.
func SetCursor(height uint64) {
	cursorHeight.Set(float64(height))
}

// SetState marks state as the current poller state among all known states.
func SetState(state string, known ...string) {
	for _, s := range known {
		pollerState.WithLabelValues(s).Set(0)
	}
	pollerState.WithLabelValues(state).Set(1)
}

// Handler returns the HTTP handler serving the registry in the Prometheus
// exposition format.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
}
