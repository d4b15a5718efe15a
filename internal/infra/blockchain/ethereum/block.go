package ethereum

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/gabapcia/transferwatch/internal/pkg/types"
	"github.com/gabapcia/transferwatch/internal/transferwatch"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

type (
	// TransactionResponse holds the fields of an eth_getTransactionByHash result
	// (or of a block's embedded transaction) that the watcher needs.
	TransactionResponse struct {
		Hash        common.Hash     `json:"hash"`
		From        common.Address  `json:"from"`
		To          *common.Address `json:"to"`          // nil for contract creation
		Value       *hexutil.Big    `json:"value"`       // smallest unit
		BlockNumber *types.Hex      `json:"blockNumber"` // nil while pending
	}

	// BlockResponse holds the fields of an eth_getBlockByNumber result. The
	// transactions are either full objects or plain hashes, depending on the
	// request.
	BlockResponse struct {
		Hash         common.Hash     `json:"hash"`
		Number       types.Hex       `json:"number"`
		Transactions json.RawMessage `json:"transactions"`
	}
)

// toTransaction converts the response into the watcher's Transaction. Addresses
// are EIP-55 checksummed.
func (t TransactionResponse) toTransaction() (transferwatch.Transaction, error) {
	tx := transferwatch.Transaction{
		Hash: t.Hash.Hex(),
		From: t.From.Hex(),
	}

	if t.To != nil {
		tx.To = t.To.Hex()
	}

	if t.Value != nil {
		tx.Value = new(big.Int).Set(t.Value.ToInt())
	}

	if t.BlockNumber != nil {
		height, err := t.BlockNumber.Uint64()
		if err != nil {
			return transferwatch.Transaction{}, fmt.Errorf("%w: transaction %s block number: %w", ErrMalformedResponse, tx.Hash, err)
		}
		tx.BlockHeight = height
	}

	return tx, nil
}

// toBlock converts the response into the watcher's Block. fullTransactions
// selects how the transactions field is decoded.
//
// Each entry of the transactions array is decoded on its own. An entry that
// fails is reported in Block.Skipped and the remaining entries are kept.
func (b BlockResponse) toBlock(fullTransactions bool) (transferwatch.Block, error) {
	height, err := b.Number.Uint64()
	if err != nil {
		return transferwatch.Block{}, fmt.Errorf("%w: block number: %w", ErrMalformedResponse, err)
	}

	block := transferwatch.Block{
		Height: height,
		Hash:   b.Hash.Hex(),
	}

	if isNull(b.Transactions) {
		return block, nil
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(b.Transactions, &entries); err != nil {
		return transferwatch.Block{}, fmt.Errorf("%w: block %d transactions: %w", ErrMalformedResponse, height, err)
	}

	if !fullTransactions {
		block.TransactionHashes = make([]string, 0, len(entries))
		for i, entry := range entries {
			var hash common.Hash
			if err := json.Unmarshal(entry, &hash); err != nil {
				block.Skipped = append(block.Skipped, fmt.Errorf("%w: block %d transaction hash %d: %w", ErrMalformedResponse, height, i, err))
				continue
			}
			block.TransactionHashes = append(block.TransactionHashes, hash.Hex())
		}
		return block, nil
	}

	block.Transactions = make([]transferwatch.Transaction, 0, len(entries))
	for i, entry := range entries {
		var response TransactionResponse
		if err := json.Unmarshal(entry, &response); err != nil {
			block.Skipped = append(block.Skipped, fmt.Errorf("%w: block %d transaction %d: %w", ErrMalformedResponse, height, i, err))
			continue
		}

		tx, err := response.toTransaction()
		if err != nil {
			block.Skipped = append(block.Skipped, err)
			continue
		}
		block.Transactions = append(block.Transactions, tx)
	}

	return block, nil
}

// CurrentHeight returns the latest block number known to the node (eth_blockNumber).
func (c *client) CurrentHeight(ctx context.Context) (uint64, error) {
	data, err := c.fetch(ctx, "eth_blockNumber")
	if err != nil {
		return 0, err
	}

	var blockNumber types.Hex
	if err := json.Unmarshal(data, &blockNumber); err != nil {
		return 0, fmt.Errorf("%w: block number: %w", ErrMalformedResponse, err)
	}

	return blockNumber.Uint64()
}

// GetBlock fetches the block at height (eth_getBlockByNumber).
//
// A null result means the node reported the height but cannot serve it yet, and
// is returned as transferwatch.ErrBlockNotAvailable.
func (c *client) GetBlock(ctx context.Context, height uint64, fullTransactions bool) (transferwatch.Block, error) {
	data, err := c.fetch(ctx, "eth_getBlockByNumber", types.HexFromUint64(height), fullTransactions)
	if err != nil {
		return transferwatch.Block{}, err
	}

	if isNull(data) {
		return transferwatch.Block{}, fmt.Errorf("%w: height %d", transferwatch.ErrBlockNotAvailable, height)
	}

	var response BlockResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return transferwatch.Block{}, fmt.Errorf("%w: block %d: %w", ErrMalformedResponse, height, err)
	}

	return response.toBlock(fullTransactions)
}

// GetTransaction fetches a transaction by hash (eth_getTransactionByHash).
//
// Returns ErrTransactionNotFound when the node answers null.
func (c *client) GetTransaction(ctx context.Context, hash string) (transferwatch.Transaction, error) {
	data, err := c.fetch(ctx, "eth_getTransactionByHash", hash)
	if err != nil {
		return transferwatch.Transaction{}, err
	}

	if isNull(data) {
		return transferwatch.Transaction{}, fmt.Errorf("%w: %s", ErrTransactionNotFound, hash)
	}

	var response TransactionResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return transferwatch.Transaction{}, fmt.Errorf("%w: transaction %s: %w", ErrMalformedResponse, hash, err)
	}

	return response.toTransaction()
}
