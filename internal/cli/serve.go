package cli

import (
	"context"
	stderrors "errors"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/Taxolotl/vintage-story-mod-api/internal/mirror"
	"github.com/Taxolotl/vintage-story-mod-api/pkg/integrations/vintagestory"
	"github.com/Taxolotl/vintage-story-mod-api/pkg/observability"
)

// serveCommand creates the "serve" command, which runs a local caching
// mirror of the API.
func (c *CLI) serveCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local caching mirror of the mod database API",
		Long: `Run a local caching mirror of the mod database API.

The mirror answers the same paths as the upstream API (under /api) and keeps
mods and authors in memory, backed by the configured persistent cache.
Cache counters are served at /debug/stats and POST /debug/cache/clear
empties the cache.`,
		Example: `  vsmod serve --addr :8080
  vsmod mods list --base-url http://localhost:8080/api`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			counters := &observability.Counters{}
			observability.SetCacheHooks(counters)
			observability.SetHTTPHooks(counters)
			defer observability.Reset()

			ctx := cmd.Context()
			return c.withClient(ctx, func(client *vintagestory.CachedClient) error {
				srv := mirror.New(client, counters, c.Logger)
				printInfo(stdout(cmd), "Serving %s at http://%s/api", c.cfg.BaseURL, c.cfg.Serve.Addr)
				err := srv.ListenAndServe(ctx, c.cfg.Serve.Addr)
				if stderrors.Is(err, context.Canceled) || stderrors.Is(err, http.ErrServerClosed) {
					c.Logger.Info("mirror stopped", "stats", counters.Snapshot())
					return nil
				}
				return err
			})
		},
	}
	cmd.Flags().String("addr", "", "listen address (default from config, 127.0.0.1:8080)")
	return cmd
}
