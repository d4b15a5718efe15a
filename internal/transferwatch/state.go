package transferwatch

// State is a state of the poller's driver loop.
type State int32

const (
	// StateInitializing obtains the chain's current height as the starting cursor.
	StateInitializing State = iota

	// StatePolling tails new heights and processes their transactions.
	StatePolling

	// StateBackoff waits after a transient failure before reconnecting.
	StateBackoff

	// StateTerminated is final; the loop has stopped.
	StateTerminated
)

// String returns the upper-case name of the state, as used in logs and metrics.
func (s State) String() string {
	switch s {
	case StateInitializing:
		return "INITIALIZING"
	case StatePolling:
		return "POLLING"
	case StateBackoff:
		return "BACKOFF"
	case StateTerminated:
		return "TERMINATED"
	default:
		return "UNKNOWN"
	}
}
