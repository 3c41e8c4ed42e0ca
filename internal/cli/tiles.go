package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/yildizm/CalcBuilder/internal/components"
	"github.com/yildizm/CalcBuilder/internal/session"
)

func newTilesCommand() *cobra.Command {
	tilesCmd := &cobra.Command{
		Use:   "tiles",
		Short: "Arrange the calculator tiles",
		Long: `List, add, remove, move and press the tiles of the saved session.

Tiles are referred to by their position (1 is the first tile) or by their id
or a unique prefix of it.`,
	}

	tilesCmd.AddCommand(newTilesListCommand())
	tilesCmd.AddCommand(newTilesPaletteCommand())
	tilesCmd.AddCommand(newTilesAddCommand())
	tilesCmd.AddCommand(newTilesRemoveCommand())
	tilesCmd.AddCommand(newTilesMoveCommand())
	tilesCmd.AddCommand(newTilesPressCommand())

	return tilesCmd
}

func newTilesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the placed tiles",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := loadSession(openStore())
			if err != nil {
				return err
			}
			return printTiles(cmd, sess.Tiles())
		},
	}
}

// printTiles lists tiles one per line with their position and id
func printTiles(cmd *cobra.Command, tiles []components.Component) error {
	out := cmd.OutOrStdout()
	if len(tiles) == 0 {
		notice(cmd, "tiles", "no tiles placed; add some with \"calcbuilder tiles add\"")
		return nil
	}
	for i, t := range tiles {
		fmt.Fprintf(out, "%2d. %s %-2s %s\n", i+1, kindEmoji(t.Kind), t.Value, t.ID)
	}
	return nil
}

func newTilesPaletteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "palette",
		Short: "List the tiles that can be placed",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			for _, t := range components.Palette() {
				fmt.Fprintf(out, "%s %-2s %s\n", kindEmoji(t.Kind), t.Value, t.Kind)
			}
		},
	}
}

func newTilesAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <value...>",
		Short: "Place tiles at the end of the builder",
		Long: `Place one tile per value at the end of the builder.

Examples:
  calcbuilder tiles add 7 8 9 /
  calcbuilder tiles add =`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, v := range args {
				if _, ok := components.Lookup(v); !ok {
					return fmt.Errorf("%w: %q", components.ErrUnknownTile, v)
				}
			}

			var added []components.Component
			sess, err := withSession(func(s *session.Session) error {
				for _, v := range args {
					tile, err := s.AddTile(v)
					if err != nil {
						return err
					}
					added = append(added, tile)
				}
				return nil
			})
			if err != nil {
				return err
			}

			notice(cmd, "success", "added %d tiles (%d total)", len(added), len(sess.Tiles()))
			return printTiles(cmd, added)
		},
	}
}

func newTilesRemoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "remove <tile>",
		Aliases: []string{"rm"},
		Short:   "Remove a tile",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var removed components.Component
			sess, err := withSession(func(s *session.Session) error {
				tile, _, err := resolveTile(s, args[0])
				if err != nil {
					return err
				}
				removed = tile
				s.RemoveTile(tile.ID)
				return nil
			})
			if err != nil {
				return err
			}

			notice(cmd, "success", "removed %s (%d left)", removed.Value, len(sess.Tiles()))
			return nil
		},
	}
}

func newTilesMoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "move <tile> <position>",
		Short: "Move a tile to a new position",
		Long: `Move a tile so it ends up at the given 1-based position.

Examples:
  calcbuilder tiles move 4 1
  calcbuilder tiles move 3f2a 2`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			to, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("invalid position %q: %w", args[1], err)
			}

			sess, err := withSession(func(s *session.Session) error {
				_, from, err := resolveTile(s, args[0])
				if err != nil {
					return err
				}
				return s.MoveTile(from, to-1)
			})
			if err != nil {
				return err
			}
			return printTiles(cmd, sess.Tiles())
		},
	}
}

func newTilesPressCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "press <tile...>",
		Short: "Press placed tiles in order",
		Long: `Press placed tiles by position or id, as the builder does on enter.

Examples:
  calcbuilder tiles press 1 4 2 5`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := withSession(func(s *session.Session) error {
				for _, ref := range args {
					tile, _, err := resolveTile(s, ref)
					if err != nil {
						return err
					}
					if _, err := s.PressTile(tile.ID); err != nil {
						return err
					}
				}
				return nil
			})
			if err != nil {
				return err
			}
			return printResult(cmd, sess)
		},
	}
}
