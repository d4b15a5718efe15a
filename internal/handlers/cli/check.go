package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/gabapcia/transferwatch/internal/config"
	"github.com/gabapcia/transferwatch/internal/infra/blockchain/ethereum"
	"github.com/gabapcia/transferwatch/internal/pkg/transport/jsonrpc"
	"github.com/gabapcia/transferwatch/internal/transferwatch"

	"github.com/urfave/cli/v3"
)

// ErrNodeUnreachable is returned by the check command when the node does not answer.
var ErrNodeUnreachable = errors.New("node unreachable")

const (
	flagNodeURL = "node-url"
	flagTimeout = "timeout"
)

// checkCommand returns the command that queries the configured node. The node
// settings are read like those of `start`; flags override them.
//
// Usage example:
//
//	transferwatch check --node-url https://testnet-rpc.monad.xyz
func checkCommand() *cli.Command {
	return &cli.Command{
		Name:        "check",
		Description: "Checks that the node answers and prints its current block height.",
		Usage:       "Queries the JSON-RPC endpoint once and exits.",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  flagNodeURL,
				Usage: "JSON-RPC endpoint of the node (overrides NODE_URL)",
			},
			&cli.DurationFlag{
				Name:  flagTimeout,
				Usage: "timeout of each node call (overrides RPC_TIMEOUT)",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			node, err := nodeSettings(c)
			if err != nil {
				return err
			}

			conn := jsonrpc.NewClient(node.NodeURL,
				jsonrpc.WithTimeout(node.RPCTimeout),
				jsonrpc.WithRetryMax(0),
			)

			return checkNode(ctx, c.Root().Writer, node.NodeURL, ethereum.NewClient(conn))
		},
	}
}

// nodeSettings loads the node configuration and applies the flags set on c.
func nodeSettings(c *cli.Command) (config.Node, error) {
	node, err := config.LoadNode()
	if err != nil {
		return config.Node{}, err
	}

	if c.IsSet(flagNodeURL) {
		node.NodeURL = c.String(flagNodeURL)
	}

	if c.IsSet(flagTimeout) {
		node.RPCTimeout = c.Duration(flagTimeout)
	}

	return node, nil
}

// checkNode writes the connectivity and current height of chain to w.
func checkNode(ctx context.Context, w io.Writer, endpoint string, chain transferwatch.Blockchain) error {
	fmt.Fprintf(w, "node:      %s\n", endpoint)

	connected := chain.IsConnected(ctx)
	fmt.Fprintf(w, "connected: %t\n", connected)
	if !connected {
		return fmt.Errorf("%w: %s", ErrNodeUnreachable, endpoint)
	}

	height, err := chain.CurrentHeight(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "height:    %d\n", height)
	return nil
}
