// Package idempotencycache is the Redis backend of the idempotency cache.
// Records are stored as JSON under a service-scoped key and expire through
// Redis' own TTL, so PurgeExpired has nothing to do.
package idempotencycache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"orders/internal/core/ports"
	"orders/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

type record struct {
	Payload    []byte `json:"payload"`
	StatusCode int    `json:"status_code"`
}

// RedisIdempotencyCache implements ports.IdempotencyCache.
type RedisIdempotencyCache struct {
	client      redis.Cmdable
	serviceName string
}

// NewRedisIdempotencyCache stores records under keys prefixed with
// serviceName, so several services can share one Redis.
//
// Example:
//
//	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
//	cache := NewRedisIdempotencyCache(client, "order-service")
//	cache.GenerateKey("K1") // "order-service:idempotency:K1"
func NewRedisIdempotencyCache(client redis.Cmdable, serviceName string) *RedisIdempotencyCache {
	return &RedisIdempotencyCache{client: client, serviceName: serviceName}
}

// GenerateKey scopes an idempotency key to this service.
func (c *RedisIdempotencyCache) GenerateKey(key string) string {
	return fmt.Sprintf("%s:idempotency:%s", c.serviceName, key)
}

// Lookup reads the record for key. A missing or expired key is a miss.
func (c *RedisIdempotencyCache) Lookup(ctx context.Context, key string) (*ports.CachedResult, error) {
	if key == "" {
		return nil, nil //nolint:nilnil // empty key never matches
	}

	raw, err := c.client.Get(ctx, c.GenerateKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil //nolint:nilnil // miss or expired
	}
	if err != nil {
		return nil, errs.NewStoreUnavailableError("idempotency lookup", err)
	}

	// A record this cache cannot decode is handed back raw, as the postgres
	// backend does; the caller decides what an unreadable payload means.
	var rec record
	if err = json.Unmarshal(raw, &rec); err != nil {
		return &ports.CachedResult{Payload: raw}, nil
	}

	return &ports.CachedResult{Payload: rec.Payload, StatusCode: rec.StatusCode}, nil
}

// Store overwrites any record for key and resets its TTL.
func (c *RedisIdempotencyCache) Store(ctx context.Context, key string, result ports.CachedResult, ttl time.Duration) error {
	raw, err := json.Marshal(record{Payload: result.Payload, StatusCode: result.StatusCode})
	if err != nil {
		return fmt.Errorf("encode idempotency record %q: %w", key, err)
	}

	if err = c.client.Set(ctx, c.GenerateKey(key), raw, ttl).Err(); err != nil {
		return errs.NewStoreUnavailableError("idempotency store", err)
	}
	return nil
}

// PurgeExpired is a no-op: Redis evicts expired keys itself.
func (c *RedisIdempotencyCache) PurgeExpired(_ context.Context, _ time.Time) (int64, error) {
	return 0, nil
}

// HealthChecker pings the Redis server.
type HealthChecker struct {
	client redis.Cmdable
}

func NewHealthChecker(client redis.Cmdable) HealthChecker {
	return HealthChecker{client: client}
}

func (h HealthChecker) Ping(ctx context.Context) error {
	return h.client.Ping(ctx).Err()
}
