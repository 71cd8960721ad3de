package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/Taxolotl/vintage-story-mod-api/internal/config"
	"github.com/Taxolotl/vintage-story-mod-api/pkg/buildinfo"
	"github.com/Taxolotl/vintage-story-mod-api/pkg/cache"
	"github.com/Taxolotl/vintage-story-mod-api/pkg/integrations/vintagestory"
)

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	jsonOutput bool
	noCache    bool

	cfg config.Config

	// newGateway builds the upstream gateway; tests replace it.
	newGateway func(config.Config, *log.Logger) vintagestory.Gateway
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:     newLogger(w, level),
		cfg:        config.Default(),
		newGateway: defaultGateway,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "vsmod browses the VintageStory mod database",
		Long:         `vsmod queries the VintageStory mod database API: list and inspect mods, authors, tags, game versions and comments, pick random entries, or run a local caching mirror of the API.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig(cmd)
		},
	}
	root.SetVersionTemplate(buildinfo.Template())

	pf := root.PersistentFlags()
	pf.StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/vsmod/config.toml)")
	pf.BoolVar(&c.jsonOutput, "json", false, "print raw JSON instead of tables")
	pf.BoolVar(&c.noCache, "no-cache", false, "bypass the persistent cache")
	pf.String("base-url", "", "API root URL")
	pf.Duration("timeout", 0, "HTTP request timeout")
	pf.Int("retries", 0, "attempts per request for transient failures")
	pf.String("cache-backend", "", "persistent cache: memory, file or redis")
	pf.String("cache-dir", "", "directory for the file cache")
	pf.Duration("cache-ttl", 0, "lifetime of persistent cache entries")
	pf.String("redis-addr", "", "Redis address for the redis cache backend")

	root.AddCommand(c.modsCommand())
	root.AddCommand(c.tagsCommand())
	root.AddCommand(c.versionsCommand())
	root.AddCommand(c.authorsCommand())
	root.AddCommand(c.commentsCommand())
	root.AddCommand(c.randomCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig resolves the configuration for cmd and attaches the logger to
// the command context.
func (c *CLI) loadConfig(cmd *cobra.Command) error {
	res, err := config.Load(c.configPath, cmd.Flags())
	if err != nil {
		return err
	}
	c.cfg = res.Config
	if res.File != "" {
		c.Logger.Debug("loaded config", "file", res.File)
	}
	for _, k := range res.Unknown {
		c.Logger.Warn("unknown config key", "key", k, "file", res.File)
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	cmd.SetContext(withLogger(ctx, c.Logger))
	return nil
}

// =============================================================================
// Gateway Factory
// =============================================================================

func defaultGateway(cfg config.Config, logger *log.Logger) vintagestory.Gateway {
	return vintagestory.NewClient(
		vintagestory.WithBaseURL(cfg.BaseURL),
		vintagestory.WithTimeout(cfg.Timeout),
		vintagestory.WithUserAgent(cfg.UserAgent),
		vintagestory.WithRetry(cfg.RetryAttempts, cfg.RetryDelay),
		vintagestory.WithLogger(logger),
	)
}

// client builds a cached gateway for one command. The returned close
// function releases the persistent cache.
func (c *CLI) client(ctx context.Context) (*vintagestory.CachedClient, func() error, error) {
	backing, err := c.backing(ctx)
	if err != nil {
		return nil, nil, err
	}
	opts := &cache.Options{
		Backing:    backing,
		BackingTTL: c.cfg.Cache.TTL,
		Logger:     c.Logger,
	}
	upstream := c.newGateway(c.cfg, c.Logger)
	closeFn := func() error { return nil }
	if backing != nil {
		closeFn = backing.Close
	}
	return vintagestory.NewCachedClient(upstream, opts), closeFn, nil
}

// backing opens the configured persistent cache, or returns nil for a purely
// in-memory cache.
func (c *CLI) backing(ctx context.Context) (cache.Cache, error) {
	if c.noCache {
		return nil, nil
	}
	switch c.cfg.Cache.Backend {
	case config.BackendFile:
		dir, err := c.cfg.ResolvedCacheDir()
		if err != nil {
			c.Logger.Warn("no cache directory, caching in memory only", "err", err)
			return nil, nil
		}
		fc, err := cache.NewFileCache(dir)
		if err != nil {
			return nil, fmt.Errorf("open cache dir %s: %w", dir, err)
		}
		return fc, nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, c.cfg.Cache.RedisAddr, cache.DefaultRedisPrefix)
		if err != nil {
			return nil, fmt.Errorf("connect to redis at %s: %w", c.cfg.Cache.RedisAddr, err)
		}
		return rc, nil
	}
	return nil, nil
}

// withClient runs fn with a cached gateway and closes it afterwards.
func (c *CLI) withClient(ctx context.Context, fn func(*vintagestory.CachedClient) error) error {
	client, closeFn, err := c.client(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := closeFn(); err != nil {
			c.Logger.Warn("close cache", "err", err)
		}
	}()
	return fn(client)
}

// stdout returns where command output goes.
func stdout(cmd *cobra.Command) io.Writer {
	if cmd == nil {
		return os.Stdout
	}
	return cmd.OutOrStdout()
}
