// Package ethereum implements transferwatch.Blockchain for Ethereum-compatible
// nodes (Ethereum, Monad and other EVM chains) over JSON-RPC.
//
// Transport failures, provider rate limits and blocks the node cannot serve yet
// are reported with the transferwatch sentinel errors so the poller can back off;
// everything else is a per-item failure.
package ethereum

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/gabapcia/transferwatch/internal/pkg/transport/jsonrpc"
	"github.com/gabapcia/transferwatch/internal/transferwatch"
)

var (
	// ErrTransactionNotFound is returned by GetTransaction when the node does not
	// know the requested hash.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrMalformedResponse is returned when a node result cannot be decoded.
	ErrMalformedResponse = errors.New("malformed node response")
)

// client implements the transferwatch.Blockchain interface for Ethereum-based networks.
// It communicates with an Ethereum node via a JSON-RPC client.
type client struct {
	conn jsonrpc.Client // Underlying JSON-RPC client used to interact with the Ethereum node
}

// Ensure client implements the transferwatch.Blockchain interface at compile time.
var _ transferwatch.Blockchain = (*client)(nil)

// NewClient creates a new Ethereum blockchain client using the provided JSON-RPC connection.
func NewClient(conn jsonrpc.Client) *client {
	return &client{
		conn: conn,
	}
}

// IsConnected reports whether the node answers eth_chainId.
func (c *client) IsConnected(ctx context.Context) bool {
	_, err := c.conn.Fetch(ctx, "eth_chainId")
	return err == nil
}

// fetch calls method and maps transport-level failures to the transferwatch
// sentinel errors.
func (c *client) fetch(ctx context.Context, method string, params ...any) ([]byte, error) {
	data, err := c.conn.Fetch(ctx, method, params...)
	if err == nil {
		return data, nil
	}

	switch {
	case errors.Is(err, jsonrpc.ErrRateLimited):
		return nil, fmt.Errorf("%w: %w", transferwatch.ErrRateLimited, err)
	case errors.Is(err, jsonrpc.ErrTransport):
		return nil, fmt.Errorf("%w: %w", transferwatch.ErrNodeUnavailable, err)
	default:
		return nil, err
	}
}

// isNull reports whether a JSON-RPC result is empty or null.
func isNull(data []byte) bool {
	data = bytes.TrimSpace(data)
	return len(data) == 0 || bytes.Equal(data, []byte("null"))
}
