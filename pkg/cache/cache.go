// Package cache provides the read-through cache that sits in front of the
// API gateway, and the optional byte stores that can back it.
//
// # Read-through
//
// [ReadThrough] maps an ID to a fetched record. A lookup that hits returns the
// stored value without calling the fetch function; a miss fetches, stores the
// result whole and returns it. Failed fetches store nothing and return the
// fetch error unchanged.
//
//	mods := cache.NewReadThrough("mods", client.GetMod, nil)
//	mod, err := mods.Get(ctx, 42)   // network
//	mod, err = mods.Get(ctx, 42)    // memory, same *Mod
//
// The memory level has no eviction policy, TTL or size bound: entries live
// until [ReadThrough.Invalidate] or [ReadThrough.Clear]. Concurrent misses for
// the same ID may each fetch; there is no request coalescing.
//
// # Backing stores
//
// A [Cache] is a byte-oriented key/value store with per-entry TTL. One may be
// attached through [Options.Backing] as a second level that survives the
// process:
//
//   - [FileCache]: JSON files under a directory (CLI use)
//   - [RedisCache]: a shared Redis instance
//   - [NullCache]: stores nothing
//
// Backing-store failures are logged and treated as misses; they never fail a
// lookup that the fetch function can satisfy.
package cache

import (
	"context"
	"time"
)

// Cache is a byte-oriented key/value store used as a persistent second level
// behind [ReadThrough]. Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the stored bytes and true, or false on a miss or an
	// expired entry.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key. A ttl of 0 means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Clear removes every key starting with prefix ("" removes everything)
	// and reports how many entries were removed.
	Clear(ctx context.Context, prefix string) (int, error)

	// Close releases any resources held by the store.
	Close() error
}
