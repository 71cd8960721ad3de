package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Taxolotl/vintage-story-mod-api/pkg/observability"
)

// FetchFunc loads the value for key from the source of truth.
type FetchFunc[K comparable, V any] func(ctx context.Context, key K) (V, error)

// Entry is a cached value together with when it was fetched from the
// source. An entry loaded from the backing store keeps its original time.
type Entry[V any] struct {
	Value     V
	FetchedAt time.Time
}

// backingEntry is the JSON stored in [Options.Backing].
type backingEntry struct {
	Value     json.RawMessage `json:"value"`
	FetchedAt time.Time       `json:"fetched_at"`
}

// Options configures a [ReadThrough]. A nil *Options uses the defaults.
type Options struct {
	// Backing is an optional persistent second level. Values are stored
	// JSON-encoded under "<name>:<key>".
	Backing Cache

	// BackingTTL bounds how long values live in Backing. 0 means no expiry.
	// The memory level never expires.
	BackingTTL time.Duration

	// Logger receives debug traces and backing-store warnings.
	// Defaults to log.Default().
	Logger *log.Logger
}

// ReadThrough is a concurrency-safe memoizing map from K to V in front of a
// fetch function. See the package documentation for its semantics.
type ReadThrough[K comparable, V any] struct {
	name   string
	fetch  FetchFunc[K, V]
	opts   Options
	logger *log.Logger
	now    func() time.Time

	mu      sync.RWMutex
	entries map[K]Entry[V]
}

// NewReadThrough creates an empty cache named name (used in logs, hooks and
// backing keys) that fills itself from fetch.
func NewReadThrough[K comparable, V any](name string, fetch FetchFunc[K, V], opts *Options) *ReadThrough[K, V] {
	r := &ReadThrough[K, V]{
		name:    name,
		fetch:   fetch,
		now:     time.Now,
		entries: make(map[K]Entry[V]),
	}
	if opts != nil {
		r.opts = *opts
	}
	r.logger = r.opts.Logger
	if r.logger == nil {
		r.logger = log.Default()
	}
	return r
}

// Name returns the cache name.
func (r *ReadThrough[K, V]) Name() string { return r.name }

// Get returns the value for key, fetching and storing it on a miss.
// A failed fetch stores nothing and its error is returned unchanged.
func (r *ReadThrough[K, V]) Get(ctx context.Context, key K) (V, error) {
	hooks := observability.Cache()

	if e, ok := r.Peek(key); ok {
		hooks.OnCacheHit(ctx, r.name)
		return e.Value, nil
	}
	if e, ok := r.loadBacking(ctx, key); ok {
		hooks.OnCacheHit(ctx, r.name)
		r.store(key, e)
		return e.Value, nil
	}

	hooks.OnCacheMiss(ctx, r.name)
	r.logger.Debug("cache miss", "cache", r.name, "key", key)
	return r.Refresh(ctx, key)
}

// Refresh fetches key unconditionally and replaces any stored value.
// On error the previous entry, if any, is left in place.
func (r *ReadThrough[K, V]) Refresh(ctx context.Context, key K) (V, error) {
	v, err := r.fetch(ctx, key)
	if err != nil {
		var zero V
		return zero, err
	}
	e := Entry[V]{Value: v, FetchedAt: r.now()}
	r.store(key, e)
	r.storeBacking(ctx, key, e)
	observability.Cache().OnCacheSet(ctx, r.name)
	return v, nil
}

// Peek returns the memory entry for key without fetching or touching the
// backing store.
func (r *ReadThrough[K, V]) Peek(key K) (Entry[V], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[key]
	return e, ok
}

// Len reports the number of entries held in memory.
func (r *ReadThrough[K, V]) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Keys returns the keys held in memory, in no particular order.
func (r *ReadThrough[K, V]) Keys() []K {
	r.mu.RLock()
	defer r.mu.RUnlock()
	keys := make([]K, 0, len(r.entries))
	for k := range r.entries {
		keys = append(keys, k)
	}
	return keys
}

// Invalidate drops key so the next Get fetches again. Dropping an absent key
// is a no-op.
func (r *ReadThrough[K, V]) Invalidate(ctx context.Context, key K) error {
	r.mu.Lock()
	_, ok := r.entries[key]
	delete(r.entries, key)
	r.mu.Unlock()

	if ok {
		observability.Cache().OnCacheEvict(ctx, r.name, 1)
	}
	if r.opts.Backing != nil {
		if err := r.opts.Backing.Delete(ctx, r.backingKey(key)); err != nil {
			return fmt.Errorf("%s: invalidate %v: %w", r.name, key, err)
		}
	}
	return nil
}

// Clear drops every entry, in memory and in the backing store.
func (r *ReadThrough[K, V]) Clear(ctx context.Context) error {
	r.mu.Lock()
	n := len(r.entries)
	r.entries = make(map[K]Entry[V])
	r.mu.Unlock()

	if n > 0 {
		observability.Cache().OnCacheEvict(ctx, r.name, n)
	}
	if r.opts.Backing != nil {
		if _, err := r.opts.Backing.Clear(ctx, r.name+":"); err != nil {
			return fmt.Errorf("%s: clear: %w", r.name, err)
		}
	}
	return nil
}

func (r *ReadThrough[K, V]) store(key K, e Entry[V]) {
	r.mu.Lock()
	r.entries[key] = e
	r.mu.Unlock()
}

func (r *ReadThrough[K, V]) backingKey(key K) string {
	return fmt.Sprintf("%s:%v", r.name, key)
}

// loadBacking returns the backing entry for key. Entries that do not decode
// are deleted and reported as misses.
func (r *ReadThrough[K, V]) loadBacking(ctx context.Context, key K) (Entry[V], bool) {
	var e Entry[V]
	if r.opts.Backing == nil {
		return e, false
	}
	data, ok, err := r.opts.Backing.Get(ctx, r.backingKey(key))
	if err != nil {
		r.logger.Warn("backing cache read failed", "cache", r.name, "key", key, "err", err)
		return e, false
	}
	if !ok {
		return e, false
	}
	if err := decodeBacking(data, &e); err != nil {
		r.logger.Debug("discarding unreadable backing entry", "cache", r.name, "key", key, "err", err)
		_ = r.opts.Backing.Delete(ctx, r.backingKey(key))
		return Entry[V]{}, false
	}
	return e, true
}

func decodeBacking[V any](data []byte, e *Entry[V]) error {
	var be backingEntry
	if err := json.Unmarshal(data, &be); err != nil {
		return err
	}
	if len(be.Value) == 0 || be.FetchedAt.IsZero() {
		return fmt.Errorf("backing entry lacks value or fetch time")
	}
	if err := json.Unmarshal(be.Value, &e.Value); err != nil {
		return err
	}
	e.FetchedAt = be.FetchedAt
	return nil
}

func (r *ReadThrough[K, V]) storeBacking(ctx context.Context, key K, e Entry[V]) {
	if r.opts.Backing == nil {
		return
	}
	value, err := json.Marshal(e.Value)
	if err != nil {
		r.logger.Warn("backing cache encode failed", "cache", r.name, "key", key, "err", err)
		return
	}
	data, err := json.Marshal(backingEntry{Value: value, FetchedAt: e.FetchedAt})
	if err != nil {
		r.logger.Warn("backing cache encode failed", "cache", r.name, "key", key, "err", err)
		return
	}
	if err := r.opts.Backing.Set(ctx, r.backingKey(key), data, r.opts.BackingTTL); err != nil {
		r.logger.Warn("backing cache write failed", "cache", r.name, "key", key, "err", err)
	}
}
