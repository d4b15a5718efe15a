// Package postgres implements the transfer sink on top of PostgreSQL.
//
// Records land in the large_transfers table, keyed by transaction hash. Inserts
// ignore conflicts, so writing the same transfer twice, from one process or
// several, is harmless.
package postgres

import (
	"context"
	"fmt"

	"github.com/gabapcia/transferwatch/internal/transferwatch"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS large_transfers (
	tx_hash      TEXT PRIMARY KEY,
	from_addr    TEXT NOT NULL,
	to_addr      TEXT NULL,
	amount       NUMERIC(78, 2) NOT NULL,
	block_number BIGINT NOT NULL,
	created_at   TIMESTAMPTZ DEFAULT now()
)`

const insertTransferSQL = `
INSERT INTO large_transfers (tx_hash, from_addr, to_addr, amount, block_number)
VALUES ($1, $2, $3, $4, $5)
ON CONFLICT (tx_hash) DO NOTHING`

// execer is the subset of *pgxpool.Pool used by the sink.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type sink struct {
	db    execer
	close func()
}

// Compile-time assertion to ensure sink implements the TransferSink interface.
var _ transferwatch.TransferSink = (*sink)(nil)

// NewSink opens a connection pool for dsn and verifies it with a ping.
//
// Returns an error if the DSN is invalid or the database cannot be reached.
func NewSink(ctx context.Context, dsn string) (*sink, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open database pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &sink{db: pool, close: pool.Close}, nil
}

// EnsureSchema creates the large_transfers table if it does not exist.
func (s *sink) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, createTableSQL); err != nil {
		return fmt.Errorf("create large_transfers table: %w", err)
	}

	return nil
}

// UpsertTransfer inserts record unless a row with the same hash already exists.
// An empty recipient (contract creation) is stored as NULL.
func (s *sink) UpsertTransfer(ctx context.Context, record transferwatch.TransferRecord) error {
	var amount pgtype.Numeric
	if err := amount.Scan(record.Amount); err != nil {
		return fmt.Errorf("invalid amount %q for %s: %w", record.Amount, record.TxHash, err)
	}

	var to any
	if record.To != "" {
		to = record.To
	}

	_, err := s.db.Exec(ctx, insertTransferSQL,
		record.TxHash,
		record.From,
		to,
		amount,
		int64(record.BlockHeight),
	)
	if err != nil {
		return fmt.Errorf("insert transfer %s: %w", record.TxHash, err)
	}

	return nil
}

// Close releases the connection pool.
func (s *sink) Close() {
	if s.close != nil {
		s.close()
	}
}
