package cli

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/Taxolotl/vintage-story-mod-api/pkg/errors"
	"github.com/Taxolotl/vintage-story-mod-api/pkg/integrations/vintagestory"
)

// modFilter narrows and orders a mod listing.
type modFilter struct {
	tag    string
	search string
	side   string
	sortBy string
	limit  int
}

var modSorts = []string{"downloads", "trending", "follows", "name", "released"}

func (f modFilter) validate() error {
	if f.sortBy != "" && !slices.Contains(modSorts, f.sortBy) {
		return errors.New(errors.ErrCodeInvalidInput, "--sort must be one of %s", strings.Join(modSorts, ", "))
	}
	if f.limit < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "--limit must not be negative")
	}
	return nil
}

// apply returns the matching mods in order. The input is not modified.
func (f modFilter) apply(mods []vintagestory.ModSummary) []vintagestory.ModSummary {
	out := make([]vintagestory.ModSummary, 0, len(mods))
	search := strings.ToLower(f.search)
	for _, m := range mods {
		if f.tag != "" && !slices.ContainsFunc(m.Tags, func(t string) bool { return strings.EqualFold(t, f.tag) }) {
			continue
		}
		if f.side != "" && !strings.EqualFold(m.Side, f.side) {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(m.Name), search) &&
			!strings.Contains(strings.ToLower(m.Author), search) {
			continue
		}
		out = append(out, m)
	}

	switch f.sortBy {
	case "downloads":
		slices.SortStableFunc(out, func(a, b vintagestory.ModSummary) int { return cmp.Compare(b.Downloads, a.Downloads) })
	case "trending":
		slices.SortStableFunc(out, func(a, b vintagestory.ModSummary) int { return cmp.Compare(b.TrendingPoints, a.TrendingPoints) })
	case "follows":
		slices.SortStableFunc(out, func(a, b vintagestory.ModSummary) int { return cmp.Compare(b.Follows, a.Follows) })
	case "name":
		slices.SortStableFunc(out, func(a, b vintagestory.ModSummary) int {
			return cmp.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
		})
	case "released":
		// Upstream timestamps sort lexically.
		slices.SortStableFunc(out, func(a, b vintagestory.ModSummary) int { return cmp.Compare(b.LastReleased, a.LastReleased) })
	}

	if f.limit > 0 && len(out) > f.limit {
		out = out[:f.limit]
	}
	return out
}

// modsCommand creates the "mods" command group.
func (c *CLI) modsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "mods",
		Aliases: []string{"mod"},
		Short:   "List and inspect mods",
	}
	cmd.AddCommand(c.modsListCommand())
	cmd.AddCommand(c.modsGetCommand())
	return cmd
}

func (c *CLI) modsListCommand() *cobra.Command {
	var f modFilter
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List mods",
		Example: `  vsmod mods list --tag QoL --sort downloads --limit 20
  vsmod mods list --search carry --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := f.validate(); err != nil {
				return err
			}
			ctx := cmd.Context()
			return c.withClient(ctx, func(client *vintagestory.CachedClient) error {
				prog := newProgress(loggerFromContext(ctx))
				spin := c.spinner(cmd, "Fetching mods...")
				mods, err := client.ListMods(ctx)
				spin.Stop()
				if err != nil {
					return err
				}
				prog.done(fmt.Sprintf("Listed %d mods", len(mods)))

				mods = f.apply(mods)
				w := stdout(cmd)
				if c.jsonOutput {
					return printJSON(w, mods)
				}
				renderModList(w, mods, time.Now())
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&f.tag, "tag", "", "only mods with this tag")
	cmd.Flags().StringVar(&f.search, "search", "", "case-insensitive match on name or author")
	cmd.Flags().StringVar(&f.side, "side", "", "only mods for this side (both, client, server)")
	cmd.Flags().StringVar(&f.sortBy, "sort", "", "sort by "+strings.Join(modSorts, ", "))
	cmd.Flags().IntVar(&f.limit, "limit", 0, "show at most n mods (0 for all)")
	return cmd
}

func (c *CLI) modsGetCommand() *cobra.Command {
	var releases int
	cmd := &cobra.Command{
		Use:   "get <modid>",
		Short: "Show a mod with its releases",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := errors.ParseID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			return c.withClient(ctx, func(client *vintagestory.CachedClient) error {
				mod, err := client.GetMod(ctx, id)
				if err != nil {
					return err
				}
				w := stdout(cmd)
				if c.jsonOutput {
					return printJSON(w, mod)
				}
				renderMod(w, mod, releases, time.Now())
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&releases, "releases", 5, "number of releases to show (0 for all)")
	return cmd
}

// =============================================================================
// Rendering
// =============================================================================

func renderModList(w io.Writer, mods []vintagestory.ModSummary, now time.Time) {
	if len(mods) == 0 {
		printInfo(w, "No mods match")
		return
	}
	rows := make([][]string, 0, len(mods))
	for _, m := range mods {
		rows = append(rows, []string{
			strconv.Itoa(m.ModID),
			truncate(m.Name, 40),
			truncate(m.Author, 20),
			formatCount(m.Downloads),
			m.Side,
			formatRelativeTime(m.LastReleased, now),
		})
	}
	printTable(w, []string{"ID", "Name", "Author", "Downloads", "Side", "Released"}, rows)
	printDetail(w, "%d mods", len(mods))
}

func renderMod(w io.Writer, m *vintagestory.Mod, maxReleases int, now time.Time) {
	fmt.Fprintln(w, StyleTitle.Render(m.Name))
	printKeyValue(w, "Mod ID", strconv.Itoa(m.ModID))
	printKeyValue(w, "Asset ID", strconv.Itoa(m.AssetID))
	printKeyValue(w, "Author", m.Author)
	printKeyValue(w, "Alias", deref(m.URLAlias, "-"))
	printKeyValue(w, "Side", m.Side)
	printKeyValue(w, "Type", m.Type)
	printKeyValue(w, "Downloads", formatCount(m.Downloads))
	printKeyValue(w, "Follows", formatCount(m.Follows))
	printKeyValue(w, "Comments", strconv.Itoa(m.Comments))
	if len(m.Tags) > 0 {
		printKeyValue(w, "Tags", strings.Join(m.Tags, ", "))
	}
	printKeyValue(w, "Created", formatRelativeTime(m.Created, now))
	printKeyValue(w, "Last release", formatRelativeTime(m.LastReleased, now))

	for _, link := range []*string{m.HomepageURL, m.SourceCodeURL, m.IssueTrackerURL, m.WikiURL, m.TrailerVideoURL} {
		if link != nil && *link != "" {
			printLink(w, *link)
		}
	}

	if len(m.Releases) == 0 {
		printInfo(w, "No releases")
		return
	}
	releases := slices.Clone(m.Releases)
	slices.SortStableFunc(releases, func(a, b vintagestory.Release) int { return cmp.Compare(b.Created, a.Created) })
	if maxReleases > 0 && len(releases) > maxReleases {
		releases = releases[:maxReleases]
	}
	rows := make([][]string, 0, len(releases))
	for _, r := range releases {
		rows = append(rows, []string{
			r.ModVersion,
			truncate(strings.Join(r.Tags, ", "), 30),
			formatCount(r.Downloads),
			formatRelativeTime(r.Created, now),
			r.FileName(),
		})
	}
	fmt.Fprintln(w)
	printTable(w, []string{"Version", "Game versions", "Downloads", "Released", "File"}, rows)
	if len(releases) < len(m.Releases) {
		printDetail(w, "showing %d of %d releases", len(releases), len(m.Releases))
	}
}

// =============================================================================
// Helpers
// =============================================================================

// formatRelativeTime renders an upstream timestamp relative to now, or
// returns it unchanged if it does not parse.
func formatRelativeTime(s string, now time.Time) string {
	t, err := vintagestory.ParseTime(s)
	if err != nil {
		return s
	}

	diff := now.Sub(t)
	switch {
	case diff < 0:
		return t.Format("Jan 2, 2006")
	case diff < time.Hour:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}

// formatCount abbreviates large numbers: 999, 1.2k, 3.4M.
func formatCount(n int) string {
	switch {
	case n >= 1_000_000:
		return fmt.Sprintf("%.1fM", float64(n)/1_000_000)
	case n >= 1_000:
		return fmt.Sprintf("%.1fk", float64(n)/1_000)
	}
	return strconv.Itoa(n)
}
