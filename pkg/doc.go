// Package pkg holds the public libraries behind vsmod, a client for the
// VintageStory mod database API.
//
// # Overview
//
// The pkg directory is organized by concern:
//
//  1. [integrations/vintagestory] - Typed gateway, read-through caching client
//     and random picks over the mod database
//  2. [cache] - Persistent byte caches (file, Redis) and the generic
//     in-memory read-through cache
//  3. [errors] - Error codes shared by every package
//  4. [httputil] - JSON GET with optional retries
//  5. [observability] - Cache and HTTP hooks
//  6. [pick] - Uniform random selection
//
// # Quick Start
//
//	import "github.com/Taxolotl/vintage-story-mod-api/pkg/integrations/vintagestory"
//
//	client := vintagestory.NewCachedClient(vintagestory.NewClient(), nil)
//	mod, err := client.GetMod(ctx, 42)
//	if errors.Is(err, errors.ErrNotFound) {
//	    // no such mod
//	}
//
//	// A second lookup is served from memory.
//	mod, _ = client.GetMod(ctx, 42)
//
//	anyMod, _ := vintagestory.RandomMod(ctx, client)
//
// # Caching
//
// [cache.ReadThrough] keeps decoded values in memory for the life of the
// process. With [cache.Options.Backing] set, entries are also written to a
// [cache.FileCache] or [cache.RedisCache] so later processes start warm.
package pkg
