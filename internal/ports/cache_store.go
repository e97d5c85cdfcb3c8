package ports

import (
	"context"
	"time"
)

// CacheStore is a byte-payload store addressed by request signature with a
// per-entry time-to-live. Get treats a stale entry exactly like a missing
// one; the next successful Put overwrites it. Implementations must be safe
// for concurrent use; re-writing the same signature with fresher data is
// always valid (last write wins).
type CacheStore interface {
	Get(ctx context.Context, signature string) ([]byte, bool, error)
	Put(ctx context.Context, signature string, payload []byte, ttl time.Duration) error
	Close() error
}
