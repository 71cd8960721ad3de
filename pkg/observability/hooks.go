// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers register hooks at startup to
// receive events about API requests and cache activity.
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetCacheHooks(&myCacheHooks{})
//	    observability.SetHTTPHooks(&myHTTPHooks{})
//	    // ... run application
//	}
//
// Library code emits events:
//
//	observability.HTTP().OnRequest(ctx, http.MethodGet, host, path)
//	observability.Cache().OnCacheHit(ctx, "mods")
//
// [Counters] is a ready-made implementation of both hook interfaces that keeps
// running totals, suitable for exposing as a stats endpoint.
package observability

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// =============================================================================
// Cache Hooks
// =============================================================================

// CacheHooks receives events from read-through cache operations.
// The name identifies the cache instance (for example "mods" or "authors").
type CacheHooks interface {
	// OnCacheHit records a lookup served without fetching.
	OnCacheHit(ctx context.Context, name string)

	// OnCacheMiss records a lookup that had to fetch.
	OnCacheMiss(ctx context.Context, name string)

	// OnCacheSet records an entry being stored after a successful fetch.
	OnCacheSet(ctx context.Context, name string)

	// OnCacheEvict records entries removed by invalidation or clearing.
	OnCacheEvict(ctx context.Context, name string, count int)
}

// =============================================================================
// HTTP Hooks
// =============================================================================

// HTTPHooks receives events from HTTP client operations.
type HTTPHooks interface {
	// OnRequest records an outgoing HTTP request.
	OnRequest(ctx context.Context, method, host, path string)

	// OnResponse records an HTTP response.
	OnResponse(ctx context.Context, method, host, path string, statusCode int, duration time.Duration)

	// OnError records an HTTP error (network failure, timeout).
	OnError(ctx context.Context, method, host, path string, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopCacheHooks is a no-op implementation of CacheHooks.
type NoopCacheHooks struct{}

func (NoopCacheHooks) OnCacheHit(context.Context, string)        {}
func (NoopCacheHooks) OnCacheMiss(context.Context, string)       {}
func (NoopCacheHooks) OnCacheSet(context.Context, string)        {}
func (NoopCacheHooks) OnCacheEvict(context.Context, string, int) {}

// NoopHTTPHooks is a no-op implementation of HTTPHooks.
type NoopHTTPHooks struct{}

func (NoopHTTPHooks) OnRequest(context.Context, string, string, string)                      {}
func (NoopHTTPHooks) OnResponse(context.Context, string, string, string, int, time.Duration) {}
func (NoopHTTPHooks) OnError(context.Context, string, string, string, error)                 {}

// =============================================================================
// Counters
// =============================================================================

// Counters implements CacheHooks and HTTPHooks by keeping running totals.
// All methods are safe for concurrent use.
type Counters struct {
	Hits      atomic.Int64
	Misses    atomic.Int64
	Sets      atomic.Int64
	Evictions atomic.Int64
	Requests  atomic.Int64
	Errors    atomic.Int64
}

func (c *Counters) OnCacheHit(context.Context, string)  { c.Hits.Add(1) }
func (c *Counters) OnCacheMiss(context.Context, string) { c.Misses.Add(1) }
func (c *Counters) OnCacheSet(context.Context, string)  { c.Sets.Add(1) }
func (c *Counters) OnCacheEvict(_ context.Context, _ string, n int) {
	c.Evictions.Add(int64(n))
}

func (c *Counters) OnRequest(context.Context, string, string, string) { c.Requests.Add(1) }
func (c *Counters) OnResponse(context.Context, string, string, string, int, time.Duration) {
}
func (c *Counters) OnError(context.Context, string, string, string, error) { c.Errors.Add(1) }

// Snapshot returns the current totals keyed by counter name.
func (c *Counters) Snapshot() map[string]int64 {
	return map[string]int64{
		"cache_hits":      c.Hits.Load(),
		"cache_misses":    c.Misses.Load(),
		"cache_sets":      c.Sets.Load(),
		"cache_evictions": c.Evictions.Load(),
		"http_requests":   c.Requests.Load(),
		"http_errors":     c.Errors.Load(),
	}
}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	cacheHooks CacheHooks = NoopCacheHooks{}
	httpHooks  HTTPHooks  = NoopHTTPHooks{}
	hooksMu    sync.RWMutex
)

// SetCacheHooks registers custom cache hooks.
// This should be called once at application startup before any cache operations.
func SetCacheHooks(h CacheHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		cacheHooks = h
	}
}

// SetHTTPHooks registers custom HTTP hooks.
// This should be called once at application startup before any HTTP operations.
func SetHTTPHooks(h HTTPHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		httpHooks = h
	}
}

// Cache returns the registered cache hooks.
func Cache() CacheHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return cacheHooks
}

// HTTP returns the registered HTTP hooks.
func HTTP() HTTPHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return httpHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	cacheHooks = NoopCacheHooks{}
	httpHooks = NoopHTTPHooks{}
}
