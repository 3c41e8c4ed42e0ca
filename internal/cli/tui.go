package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yildizm/CalcBuilder/internal/storage"
	"github.com/yildizm/CalcBuilder/internal/ui"
)

func newTUICommand() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Open the interactive builder (default)",
		Long: `Open the interactive calculator builder.

Tiles are added from the palette and pressed in the builder; digits, operators,
= and c can also be typed directly. Press ? inside the builder for all keys.

With storage.autosave enabled every change is saved immediately and changes
made by other calcbuilder processes appear live.`,
		Args: cobra.NoArgs,
		RunE: runTUI,
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg := GetGlobalConfig()
	store := openStore()

	sess, err := loadSession(store)
	if err != nil {
		return err
	}

	closeJournal, err := openJournal(sess)
	if err != nil {
		return err
	}
	defer closeJournal()

	var follow *storage.FileStore
	if cfg.Storage.Autosave {
		stop := store.Autosave(sess)
		defer stop()
		follow = store
	}

	if err := ui.Run(sess, cfg.UI, colorEnabled(os.Stdout), follow); err != nil {
		return fmt.Errorf("builder failed: %w", err)
	}

	if !cfg.Storage.Autosave {
		if err := store.Save(sess.Export()); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
	}
	return nil
}
