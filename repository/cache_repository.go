package repository

import (
	"context"
	"time"
)

// CacheRepository caches serialized snapshots with a per-entry TTL.
type CacheRepository interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
}
