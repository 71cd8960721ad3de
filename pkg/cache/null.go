package cache

import (
	"context"
	"time"
)

// NullCache stands in for the persistent layer of the "memory" backend:
// every lookup misses and every write is dropped.
type NullCache struct{}

// NewNullCache returns a Cache that keeps nothing.
func NewNullCache() Cache {
	return &NullCache{}
}

func (c *NullCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	return nil, false, nil
}

func (c *NullCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	return nil
}

func (c *NullCache) Delete(ctx context.Context, key string) error {
	return nil
}

// Clear reports zero entries removed.
func (c *NullCache) Clear(ctx context.Context, prefix string) (int, error) {
	return 0, nil
}

func (c *NullCache) Close() error {
	return nil
}

var _ Cache = (*NullCache)(nil)
