package repository

import (
	"context"
	"time"

	"github.com/dgraph-io/ristretto"
)

// RistrettoCache is the in-process implementation of CacheRepository for
// single-instance deployments where redis is not configured.
type RistrettoCache struct {
	cache *ristretto.Cache
}

func NewRistrettoCache() (*RistrettoCache, error) {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1e5,
		MaxCost:     1 << 24, // 16 MiB of serialized snapshots
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &RistrettoCache{cache: cache}, nil
}

func (c *RistrettoCache) Get(_ context.Context, key string) (string, bool) {
	val, ok := c.cache.Get(key)
	if !ok {
		return "", false
	}
	s, ok := val.(string)
	return s, ok
}

func (c *RistrettoCache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	c.cache.SetWithTTL(key, value, int64(len(value)), ttl)
	return nil
}

func (c *RistrettoCache) Close() {
	c.cache.Close()
}
