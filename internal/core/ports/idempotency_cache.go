package ports

import (
	"context"
	"time"
)

// CachedResult is what a creation request produced: the serialized order
// and the status code of the original response. The cache never looks inside.
type CachedResult struct {
	Payload    []byte
	StatusCode int
}

// IdempotencyCache maps client-chosen keys to earlier creation outcomes.
//
// Lookup is an existence check, not a lock: two requests carrying the same
// new key can both miss and both create an order. Store is last-writer-wins.
type IdempotencyCache interface {
	// Lookup returns nil without error for an empty, unknown or expired key.
	// A record the backend cannot decode comes back with its raw bytes as
	// Payload and a zero StatusCode.
	Lookup(ctx context.Context, key string) (*CachedResult, error)

	// Store upserts the record for key with an expiry of now + ttl.
	Store(ctx context.Context, key string, result CachedResult, ttl time.Duration) error

	// PurgeExpired removes records whose expiry is not after now and
	// returns how many were removed. Stores with native expiry return 0.
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}
