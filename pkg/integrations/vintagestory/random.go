package vintagestory

import (
	"context"
	"fmt"

	"github.com/Taxolotl/vintage-story-mod-api/pkg/pick"
)

// RandomMod lists mods, picks one uniformly and fetches its full record.
// With a [CachedClient] both the listing and the record may come from cache.
func RandomMod(ctx context.Context, g Gateway) (*Mod, error) {
	mods, err := g.ListMods(ctx)
	if err != nil {
		return nil, err
	}
	s, err := pick.One(mods)
	if err != nil {
		return nil, fmt.Errorf("random mod: %w", err)
	}
	return g.GetMod(ctx, s.ModID)
}

// RandomTag returns a uniformly chosen tag.
func RandomTag(ctx context.Context, g Gateway) (Tag, error) {
	tags, err := g.ListTags(ctx)
	if err != nil {
		return Tag{}, err
	}
	return pickWrapped(tags, "random tag")
}

// RandomAuthor returns a uniformly chosen author.
func RandomAuthor(ctx context.Context, g Gateway) (Author, error) {
	authors, err := g.ListAuthors(ctx)
	if err != nil {
		return Author{}, err
	}
	return pickWrapped(authors, "random author")
}

// RandomGameVersion returns a uniformly chosen game version.
func RandomGameVersion(ctx context.Context, g Gateway) (GameVersion, error) {
	versions, err := g.ListGameVersions(ctx)
	if err != nil {
		return GameVersion{}, err
	}
	return pickWrapped(versions, "random game version")
}

// RandomComment returns a uniformly chosen comment on an asset.
// An asset without comments fails with EMPTY_COLLECTION.
func RandomComment(ctx context.Context, g Gateway, assetID int) (Comment, error) {
	comments, err := g.ListComments(ctx, assetID)
	if err != nil {
		return Comment{}, err
	}
	return pickWrapped(comments, fmt.Sprintf("random comment for asset %d", assetID))
}

func pickWrapped[T any](items []T, what string) (T, error) {
	v, err := pick.One(items)
	if err != nil {
		return v, fmt.Errorf("%s: %w", what, err)
	}
	return v, nil
}
