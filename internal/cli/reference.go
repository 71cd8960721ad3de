package cli

import (
	"cmp"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/Taxolotl/vintage-story-mod-api/pkg/errors"
	"github.com/Taxolotl/vintage-story-mod-api/pkg/integrations/vintagestory"
)

// tagsCommand creates the "tags" command.
func (c *CLI) tagsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List mod category tags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withClient(ctx, func(client *vintagestory.CachedClient) error {
				tags, err := client.ListTags(ctx)
				if err != nil {
					return err
				}
				w := stdout(cmd)
				if c.jsonOutput {
					return printJSON(w, tags)
				}
				renderTags(w, tags)
				return nil
			})
		},
	}
}

// versionsCommand creates the "versions" command.
func (c *CLI) versionsCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "versions",
		Aliases: []string{"gameversions"},
		Short:   "List game versions mods can target",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withClient(ctx, func(client *vintagestory.CachedClient) error {
				versions, err := client.ListGameVersions(ctx)
				if err != nil {
					return err
				}
				w := stdout(cmd)
				if c.jsonOutput {
					return printJSON(w, versions)
				}
				rows := make([][]string, 0, len(versions))
				for _, v := range versions {
					rows = append(rows, []string{v.Name, strconv.FormatInt(v.TagID, 10)})
				}
				printTable(w, []string{"Version", "Tag ID"}, rows)
				return nil
			})
		},
	}
}

// authorsCommand creates the "authors" command group.
func (c *CLI) authorsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "authors",
		Aliases: []string{"author"},
		Short:   "List and look up mod authors",
	}

	var search string
	list := &cobra.Command{
		Use:   "list",
		Short: "List authors",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			return c.withClient(ctx, func(client *vintagestory.CachedClient) error {
				authors, err := client.ListAuthors(ctx)
				if err != nil {
					return err
				}
				authors = filterAuthors(authors, search)
				w := stdout(cmd)
				if c.jsonOutput {
					return printJSON(w, authors)
				}
				renderAuthors(w, authors)
				return nil
			})
		},
	}
	list.Flags().StringVar(&search, "search", "", "case-insensitive match on name")

	get := &cobra.Command{
		Use:   "get <userid>",
		Short: "Show one author",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := errors.ParseID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			return c.withClient(ctx, func(client *vintagestory.CachedClient) error {
				author, err := client.GetAuthor(ctx, id)
				if err != nil {
					return err
				}
				w := stdout(cmd)
				if c.jsonOutput {
					return printJSON(w, author)
				}
				printKeyValue(w, "User ID", strconv.Itoa(author.UserID))
				printKeyValue(w, "Name", author.DisplayName())
				return nil
			})
		},
	}

	cmd.AddCommand(list, get)
	return cmd
}

// commentsCommand creates the "comments" command.
func (c *CLI) commentsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "comments <assetid>",
		Short: "List comments on a mod page",
		Long:  "List comments on a mod page. Comments are keyed by asset ID, shown by \"vsmod mods get\", not by mod ID.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := errors.ParseID(args[0])
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			return c.withClient(ctx, func(client *vintagestory.CachedClient) error {
				comments, err := client.ListComments(ctx, id)
				if err != nil {
					return err
				}
				w := stdout(cmd)
				if c.jsonOutput {
					return printJSON(w, comments)
				}
				renderComments(w, comments, time.Now())
				return nil
			})
		},
	}
}

// =============================================================================
// Rendering
// =============================================================================

func renderTags(w io.Writer, tags []vintagestory.Tag) {
	rows := make([][]string, 0, len(tags))
	for _, t := range tags {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(t.Color)).Render("●")
		rows = append(rows, []string{strconv.Itoa(t.TagID), swatch + " " + t.Name, t.Color})
	}
	printTable(w, []string{"ID", "Tag", "Color"}, rows)
}

func filterAuthors(authors []vintagestory.Author, search string) []vintagestory.Author {
	if search == "" {
		return authors
	}
	search = strings.ToLower(search)
	var out []vintagestory.Author
	for _, a := range authors {
		if a.Name != nil && strings.Contains(strings.ToLower(*a.Name), search) {
			out = append(out, a)
		}
	}
	return out
}

func renderAuthors(w io.Writer, authors []vintagestory.Author) {
	if len(authors) == 0 {
		printInfo(w, "No authors match")
		return
	}
	sorted := slices.Clone(authors)
	slices.SortFunc(sorted, func(a, b vintagestory.Author) int { return cmp.Compare(a.UserID, b.UserID) })
	rows := make([][]string, 0, len(sorted))
	for _, a := range sorted {
		rows = append(rows, []string{strconv.Itoa(a.UserID), a.DisplayName()})
	}
	printTable(w, []string{"User ID", "Name"}, rows)
	printDetail(w, "%d authors", len(authors))
}

func renderComments(w io.Writer, comments []vintagestory.Comment, now time.Time) {
	if len(comments) == 0 {
		printInfo(w, "No comments")
		return
	}
	for _, cm := range comments {
		printInfo(w, "%s %s", StyleNumber.Render("#"+strconv.Itoa(cm.CommentID)),
			StyleDim.Render("by user "+strconv.Itoa(cm.UserID)+", "+formatRelativeTime(cm.Created, now)))
		printDetail(w, "%s", truncate(stripTags(cm.Text), 200))
	}
}

// stripTags removes HTML markup from comment and description bodies.
func stripTags(s string) string {
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '<':
			depth++
		case r == '>' && depth > 0:
			depth--
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
