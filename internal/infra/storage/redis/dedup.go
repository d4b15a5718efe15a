package redis

import (
	"context"
	"fmt"
	"strings"

	"github.com/gabapcia/transferwatch/internal/transferwatch"
)

// keyPrefix is the namespace prefix of every key written by the client.
const keyPrefix = "transferwatch"

// processedKey builds the key marking a transaction as processed. Hex hashes are
// case-insensitive, so the hash is lowercased:
//
//	"transferwatch:processed:<hash>"
func processedKey(hash string) string {
	return fmt.Sprintf("%s:processed:%s", keyPrefix, strings.ToLower(hash))
}

// IsProcessed reports whether hash was marked within the TTL.
//
// Any failure, including degraded mode, reads as false.
func (c *client) IsProcessed(ctx context.Context, hash string) bool {
	if !c.available(ctx) {
		return false
	}

	n, err := c.conn.Exists(ctx, processedKey(hash)).Result()
	if err != nil {
		c.absorb(ctx, "exists", hash, err)
		return false
	}

	return n > 0
}

// MarkProcessed remembers hash for the configured TTL. Failures are logged and
// dropped.
func (c *client) MarkProcessed(ctx context.Context, hash string) {
	if !c.available(ctx) {
		return
	}

	if err := c.conn.Set(ctx, processedKey(hash), "1", c.ttl).Err(); err != nil {
		c.absorb(ctx, "set", hash, err)
	}
}

// Compile-time assertion to ensure client implements the DedupCache interface.
var _ transferwatch.DedupCache = (*client)(nil)
