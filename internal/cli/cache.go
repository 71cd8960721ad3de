package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Taxolotl/vintage-story-mod-api/internal/config"
	"github.com/Taxolotl/vintage-story-mod-api/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the persistent response cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var only string
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove cached mods and authors",
		Example: `  vsmod cache clear
  vsmod cache clear --only mods`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix, err := clearPrefix(only)
			if err != nil {
				return err
			}
			w := stdout(cmd)
			ctx := cmd.Context()

			var store cache.Cache
			switch c.cfg.Cache.Backend {
			case config.BackendMemory:
				printWarning(w, "The memory backend keeps nothing between runs")
				store = cache.NewNullCache()
			case config.BackendRedis:
				rc, err := cache.NewRedisCache(ctx, c.cfg.Cache.RedisAddr, cache.DefaultRedisPrefix)
				if err != nil {
					return fmt.Errorf("connect to redis at %s: %w", c.cfg.Cache.RedisAddr, err)
				}
				store = rc
			default:
				dir, err := c.cfg.ResolvedCacheDir()
				if err != nil {
					return fmt.Errorf("get cache dir: %w", err)
				}
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					printInfo(w, "Cache is empty")
					return nil
				}
				fc, err := cache.NewFileCache(dir)
				if err != nil {
					return err
				}
				store = fc
			}
			defer store.Close()

			count, err := store.Clear(ctx, prefix)
			if err != nil {
				return err
			}
			printSuccess(w, "Cleared %d cached entries", count)
			if fc, ok := store.(*cache.FileCache); ok {
				printDetail(w, "Directory: %s", fc.Dir())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&only, "only", "", "clear only mods or authors")
	return cmd
}

// clearPrefix maps --only to the backing-key prefix used by the cached client.
func clearPrefix(only string) (string, error) {
	switch only {
	case "":
		return "", nil
	case "mods":
		return "mod", nil // "mods:" and "mod-list:"
	case "authors":
		return "author", nil // "authors:" and "author-list:"
	}
	return "", fmt.Errorf("--only must be mods or authors, got %q", only)
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.cfg.ResolvedCacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(stdout(cmd), dir)
			return nil
		},
	}
}
