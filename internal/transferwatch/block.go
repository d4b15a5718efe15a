package transferwatch

import "math/big"

// Transaction represents a native-token transfer candidate observed on chain.
type Transaction struct {
	Hash        string   // Unique transaction hash identifier
	From        string   // Sender address
	To          string   // Recipient address (empty for contract creation)
	Value       *big.Int // Transferred value in the smallest unit (nil when absent)
	BlockHeight uint64   // Height of the block that includes the transaction
}

// Block represents a blockchain block at a given height.
//
// Depending on how the block was fetched, either Transactions holds the full
// transaction bodies in block order, or TransactionHashes holds only their hashes
// (also in block order) and each body must be fetched separately.
//
// Entries the node returned but that could not be decoded are left out of both
// lists and reported in Skipped, one error per entry.
type Block struct {
	Height            uint64        // Block height
	Hash              string        // Unique block hash
	Transactions      []Transaction // Embedded transaction bodies
	TransactionHashes []string      // Transaction hashes, when bodies are not embedded
	Skipped           []error       // Decode failures of individual entries
}

// TransferRecord is the normalized representation of a large transfer, as written
// to the configured TransferSink. It is keyed by TxHash and never mutated once built.
type TransferRecord struct {
	TxHash      string `json:"tx_hash"`      // Transaction hash (primary key)
	From        string `json:"from_addr"`    // Sender address
	To          string `json:"to_addr"`      // Recipient address (empty for contract creation)
	Amount      string `json:"amount"`       // Human-scaled amount with 2 fractional digits
	BlockHeight uint64 `json:"block_number"` // Height of the including block
}
