package vintagestory

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/Taxolotl/vintage-story-mod-api/pkg/errors"
	"github.com/Taxolotl/vintage-story-mod-api/pkg/httputil"
	"github.com/Taxolotl/vintage-story-mod-api/pkg/integrations"
)

// DefaultBaseURL is the public mod database API root.
const DefaultBaseURL = "https://mods.vintagestory.at/api"

// Gateway is the set of upstream endpoints. [Client] talks to the network;
// [CachedClient] wraps any Gateway with read-through caches.
type Gateway interface {
	ListMods(ctx context.Context) ([]ModSummary, error)
	GetMod(ctx context.Context, modID int) (*Mod, error)
	ListTags(ctx context.Context) ([]Tag, error)
	ListAuthors(ctx context.Context) ([]Author, error)
	GetAuthor(ctx context.Context, userID int) (*Author, error)
	ListGameVersions(ctx context.Context) ([]GameVersion, error)
	ListComments(ctx context.Context, assetID int) ([]Comment, error)
}

// Client provides access to the VintageStory mod database API.
// Every method issues exactly one GET (unless retries are enabled with
// [WithRetry]) and keeps no state between calls.
//
// All methods are safe for concurrent use by multiple goroutines.
type Client struct {
	*integrations.Client
	baseURL string
	logger  *log.Logger
}

var _ Gateway = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root (a mirror or a test server).
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient replaces the default HTTP client (10s timeout).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.SetHTTPClient(h) }
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		h := integrations.NewHTTPClient()
		h.Timeout = d
		c.SetHTTPClient(h)
	}
}

// WithLogger sets the logger used for debug tracing.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
			c.SetLogger(l)
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) { c.SetHeader("User-Agent", ua) }
}

// WithRetry enables retries of transient failures (transport errors, 5xx, 429).
// attempts counts the first request; delay doubles after each attempt.
func WithRetry(attempts int, delay time.Duration) Option {
	return func(c *Client) { c.SetRetry(httputil.Policy{Attempts: attempts, Delay: delay}) }
}

// NewClient creates a VintageStory API client.
//
// Without options the client targets [DefaultBaseURL], makes a single attempt
// per call and logs through log.Default().
func NewClient(opts ...Option) *Client {
	c := &Client{
		Client: integrations.NewClient(map[string]string{
			"User-Agent": integrations.UserAgent(),
			"Accept":     "application/json",
		}),
		baseURL: DefaultBaseURL,
		logger:  log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL returns the API root this client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// ListMods returns every mod in the database as summaries.
func (c *Client) ListMods(ctx context.Context) ([]ModSummary, error) {
	var mods []ModSummary
	if err := c.fetch(ctx, "mods", "mods", &mods, "mods"); err != nil {
		return nil, err
	}
	return mods, nil
}

// GetMod returns the full record for a mod, including releases and screenshots.
//
// Returns:
//   - [errors.ErrNotFound] if upstream has no mod with this ID
//   - [errors.ErrNetwork] for transport failures and unexpected statuses
//   - [errors.ErrParse] if the body is malformed or lacks required fields
func (c *Client) GetMod(ctx context.Context, modID int) (*Mod, error) {
	if err := errors.ValidateID(modID); err != nil {
		return nil, err
	}
	var mod Mod
	id := strconv.Itoa(modID)
	if err := c.fetch(ctx, "mod", "mod "+id, &mod, "mod", id); err != nil {
		return nil, err
	}
	return &mod, nil
}

// DetailedFromSimple fetches the full record for a summary from a listing.
func (c *Client) DetailedFromSimple(ctx context.Context, s ModSummary) (*Mod, error) {
	return c.GetMod(ctx, s.ModID)
}

// ListTags returns all mod category tags.
func (c *Client) ListTags(ctx context.Context) ([]Tag, error) {
	var tags []Tag
	if err := c.fetch(ctx, "tags", "tags", &tags, "tags"); err != nil {
		return nil, err
	}
	return tags, nil
}

// ListAuthors returns all mod authors.
func (c *Client) ListAuthors(ctx context.Context) ([]Author, error) {
	var authors []Author
	if err := c.fetch(ctx, "authors", "authors", &authors, "authors"); err != nil {
		return nil, err
	}
	return authors, nil
}

// GetAuthor returns a single author. Upstream has no per-author endpoint, so
// this fetches /authors and selects by user ID; an absent ID is NOT_FOUND.
func (c *Client) GetAuthor(ctx context.Context, userID int) (*Author, error) {
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

// ListGameVersions returns every game version mods can target.
func (c *Client) ListGameVersions(ctx context.Context) ([]GameVersion, error) {
	var versions []GameVersion
	if err := c.fetch(ctx, "gameversions", "game versions", &versions, "gameversions"); err != nil {
		return nil, err
	}
	return versions, nil
}

// ListComments returns the comments on an asset. Note that comments are keyed
// by asset ID ([ModSummary.AssetID]), not mod ID. An asset without comments
// yields an empty slice.
func (c *Client) ListComments(ctx context.Context, assetID int) ([]Comment, error) {
	if err := errors.ValidateID(assetID); err != nil {
		return nil, err
	}
	var comments []Comment
	id := strconv.Itoa(assetID)
	if err := c.fetch(ctx, "comments", "comments for asset "+id, &comments, "comments", id); err != nil {
		return nil, err
	}
	return comments, nil
}

// fetch GETs the endpoint built from segments and decodes the payload under
// key into v.
func (c *Client) fetch(ctx context.Context, key, what string, v any, segments ...string) error {
	var body envelope
	url := integrations.Endpoint(c.baseURL, segments...)
	if err := c.Get(ctx, url, &body); err != nil {
		if errors.HasCode(err, errors.ErrCodeNotFound) {
			return errors.Wrap(errors.ErrCodeNotFound, err, "%s not found", what)
		}
		return err
	}
	if err := body.decode(key, what, v); err != nil {
		c.logger.Debug("rejected response", "url", url, "err", err)
		return err
	}
	return nil
}
