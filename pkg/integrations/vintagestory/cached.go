package vintagestory

import (
	"context"
	stderrors "errors"

	"github.com/Taxolotl/vintage-story-mod-api/pkg/cache"
	"github.com/Taxolotl/vintage-story-mod-api/pkg/errors"
)

// listKey is the single key used by the listing caches.
const listKey = "all"

// CachedClient wraps a [Gateway] with read-through caches for mods and
// authors. Mods and authors are cached by ID; the /mods and /authors listings
// are cached as a whole. Authors are resolved from the cached listing, so
// looking up many authors costs one /authors download. Tags, game versions
// and comments pass through.
//
// Entries never expire on their own. Use the Invalidate, Clear and Refresh
// methods to drop or replace them.
type CachedClient struct {
	upstream Gateway

	mods       *cache.ReadThrough[int, *Mod]
	authors    *cache.ReadThrough[int, *Author]
	modList    *cache.ReadThrough[string, []ModSummary]
	authorList *cache.ReadThrough[string, []Author]
}

var _ Gateway = (*CachedClient)(nil)

// NewCachedClient wraps upstream. opts may be nil for a purely in-memory
// cache; see [cache.Options] for adding a persistent backing store.
func NewCachedClient(upstream Gateway, opts *cache.Options) *CachedClient {
	c := &CachedClient{
		upstream: upstream,
		mods:     cache.NewReadThrough[int, *Mod]("mods", upstream.GetMod, opts),
		modList: cache.NewReadThrough[string, []ModSummary]("mod-list", func(ctx context.Context, _ string) ([]ModSummary, error) {
			return upstream.ListMods(ctx)
		}, opts),
		authorList: cache.NewReadThrough[string, []Author]("author-list", func(ctx context.Context, _ string) ([]Author, error) {
			return upstream.ListAuthors(ctx)
		}, opts),
	}
	c.authors = cache.NewReadThrough[int, *Author]("authors", c.findAuthor, opts)
	return c
}

// findAuthor looks userID up in the cached author listing.
func (c *CachedClient) findAuthor(ctx context.Context, userID int) (*Author, error) {
	if err := errors.ValidateID(userID); err != nil {
		return nil, err
	}
	authors, err := c.ListAuthors(ctx)
	if err != nil {
		return nil, err
	}
	for i := range authors {
		if authors[i].UserID == userID {
			a := authors[i]
			return &a, nil
		}
	}
	return nil, errors.New(errors.ErrCodeNotFound, "author %d not found", userID)
}

// Upstream returns the wrapped gateway.
func (c *CachedClient) Upstream() Gateway { return c.upstream }

// ListMods returns the cached mod listing, fetching it on first use.
// The returned slice is shared and must not be modified.
func (c *CachedClient) ListMods(ctx context.Context) ([]ModSummary, error) {
	return c.modList.Get(ctx, listKey)
}

// GetMod returns the cached record for modID, fetching it on a miss.
func (c *CachedClient) GetMod(ctx context.Context, modID int) (*Mod, error) {
	return c.mods.Get(ctx, modID)
}

// ListTags is not cached.
func (c *CachedClient) ListTags(ctx context.Context) ([]Tag, error) {
	return c.upstream.ListTags(ctx)
}

// ListAuthors returns the cached author listing, fetching it on first use.
func (c *CachedClient) ListAuthors(ctx context.Context) ([]Author, error) {
	return c.authorList.Get(ctx, listKey)
}

// GetAuthor returns the cached author for userID. On a miss it searches the
// author listing, downloading that only if it is not cached yet.
func (c *CachedClient) GetAuthor(ctx context.Context, userID int) (*Author, error) {
	return c.authors.Get(ctx, userID)
}

// ListGameVersions is not cached.
func (c *CachedClient) ListGameVersions(ctx context.Context) ([]GameVersion, error) {
	return c.upstream.ListGameVersions(ctx)
}

// ListComments is not cached.
func (c *CachedClient) ListComments(ctx context.Context, assetID int) ([]Comment, error) {
	return c.upstream.ListComments(ctx, assetID)
}

// PeekMod returns a cached mod without fetching.
func (c *CachedClient) PeekMod(modID int) (*Mod, bool) {
	e, ok := c.mods.Peek(modID)
	return e.Value, ok
}

// InvalidateMod drops one mod so the next GetMod refetches it.
func (c *CachedClient) InvalidateMod(ctx context.Context, modID int) error {
	return c.mods.Invalidate(ctx, modID)
}

// InvalidateAuthor drops one author so the next GetAuthor looks it up again.
// The author listing is kept; use RefreshAuthors to pick up upstream changes.
func (c *CachedClient) InvalidateAuthor(ctx context.Context, userID int) error {
	return c.authors.Invalidate(ctx, userID)
}

// ClearMods drops every cached mod and the mod listing.
func (c *CachedClient) ClearMods(ctx context.Context) error {
	return stderrors.Join(c.mods.Clear(ctx), c.modList.Clear(ctx))
}

// ClearAuthors drops every cached author and the author listing.
func (c *CachedClient) ClearAuthors(ctx context.Context) error {
	return stderrors.Join(c.authors.Clear(ctx), c.authorList.Clear(ctx))
}

// ClearAll drops everything.
func (c *CachedClient) ClearAll(ctx context.Context) error {
	return stderrors.Join(c.ClearMods(ctx), c.ClearAuthors(ctx))
}

// RefreshMods refetches the mod listing, replacing the cached copy.
// Cached mod records are left alone. On error the old listing is kept.
func (c *CachedClient) RefreshMods(ctx context.Context) ([]ModSummary, error) {
	return c.modList.Refresh(ctx, listKey)
}

// RefreshAuthors refetches the author listing, replacing the cached copy.
func (c *CachedClient) RefreshAuthors(ctx context.Context) ([]Author, error) {
	return c.authorList.Refresh(ctx, listKey)
}

// CacheStats reports how many entries each cache holds in memory.
type CacheStats struct {
	Mods       int  `json:"mods"`
	Authors    int  `json:"authors"`
	ModList    bool `json:"mod_list"`
	AuthorList bool `json:"author_list"`
}

// Stats returns the current in-memory entry counts.
func (c *CachedClient) Stats() CacheStats {
	return CacheStats{
		Mods:       c.mods.Len(),
		Authors:    c.authors.Len(),
		ModList:    c.modList.Len() > 0,
		AuthorList: c.authorList.Len() > 0,
	}
}
