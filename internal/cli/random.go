package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/Taxolotl/vintage-story-mod-api/pkg/errors"
	"github.com/Taxolotl/vintage-story-mod-api/pkg/integrations/vintagestory"
)

// randomKinds lists what "vsmod random" can pick.
var randomKinds = []string{"mod", "tag", "author", "version", "comment"}

// randomCommand creates the "random" command.
func (c *CLI) randomCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "random <mod|tag|author|version|comment> [assetid]",
		Short: "Pick a random mod, tag, author, game version or comment",
		Example: `  vsmod random mod
  vsmod random comment 1042`,
		ValidArgs: randomKinds,
		Args:      cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := args[0]
			if kind == "comment" && len(args) != 2 {
				return errors.New(errors.ErrCodeInvalidInput, "random comment needs an asset ID")
			}
			if kind != "comment" && len(args) != 1 {
				return errors.New(errors.ErrCodeInvalidInput, "random %s takes no further arguments", kind)
			}
			ctx := cmd.Context()
			return c.withClient(ctx, func(client *vintagestory.CachedClient) error {
				v, err := pickRandom(ctx, client, args)
				if err != nil {
					return err
				}
				w := stdout(cmd)
				if c.jsonOutput {
					return printJSON(w, v)
				}
				renderRandom(w, v, time.Now())
				return nil
			})
		},
	}
}

// pickRandom dispatches on args[0]; the caller has checked the arity.
func pickRandom(ctx context.Context, g vintagestory.Gateway, args []string) (any, error) {
	switch args[0] {
	case "mod":
		return vintagestory.RandomMod(ctx, g)
	case "tag":
		return vintagestory.RandomTag(ctx, g)
	case "author":
		return vintagestory.RandomAuthor(ctx, g)
	case "version":
		return vintagestory.RandomGameVersion(ctx, g)
	case "comment":
		id, err := errors.ParseID(args[1])
		if err != nil {
			return nil, err
		}
		return vintagestory.RandomComment(ctx, g, id)
	}
	return nil, errors.New(errors.ErrCodeInvalidInput, "unknown kind %q, want one of %v", args[0], randomKinds)
}

func renderRandom(w io.Writer, v any, now time.Time) {
	switch v := v.(type) {
	case *vintagestory.Mod:
		renderMod(w, v, 3, now)
	case vintagestory.Tag:
		renderTags(w, []vintagestory.Tag{v})
	case vintagestory.Author:
		printKeyValue(w, "User ID", strconv.Itoa(v.UserID))
		printKeyValue(w, "Name", v.DisplayName())
	case vintagestory.GameVersion:
		printKeyValue(w, "Version", v.Name)
		printKeyValue(w, "Tag ID", strconv.FormatInt(v.TagID, 10))
	case vintagestory.Comment:
		renderComments(w, []vintagestory.Comment{v}, now)
	default:
		fmt.Fprintf(w, "%v\n", v)
	}
}
