// Package vintagestory is a typed client for the VintageStory mod database
// API at https://mods.vintagestory.at/api.
//
// # Overview
//
// [Client] maps each REST endpoint to one method:
//
//	GET /mods              ListMods
//	GET /mod/{id}          GetMod
//	GET /tags              ListTags
//	GET /authors           ListAuthors, GetAuthor
//	GET /gameversions      ListGameVersions
//	GET /comments/{asset}  ListComments
//
// Every response is an envelope {"statuscode": "200", "<key>": payload}. A
// non-2xx status in the envelope or on the HTTP response is reported as an
// error; the payload is decoded into explicit record types whose required
// fields must be present and non-null.
//
// # Errors
//
// Failures carry a code from [github.com/Taxolotl/vintage-story-mod-api/pkg/errors]:
//
//	mod, err := client.GetMod(ctx, 42)
//	switch {
//	case errors.Is(err, errors.ErrNotFound):   // no such mod
//	case errors.Is(err, errors.ErrNetwork):    // transport or status failure
//	case errors.Is(err, errors.ErrParse):      // unexpected body
//	}
//
// # Caching
//
// [CachedClient] implements [Gateway] on top of any other Gateway and keeps
// mods and authors in memory:
//
//	client := vintagestory.NewCachedClient(vintagestory.NewClient(), nil)
//	mod, _ := client.GetMod(ctx, 42) // fetched
//	mod, _ = client.GetMod(ctx, 42)  // cached
//
// # Random picks
//
// [RandomMod], [RandomTag], [RandomAuthor], [RandomGameVersion] and
// [RandomComment] list a resource and choose one element uniformly.
package vintagestory
