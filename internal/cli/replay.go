package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yildizm/CalcBuilder/internal/journal"
	"github.com/yildizm/CalcBuilder/internal/session"
)

var (
	replayVerify bool
	replayOnto   bool
	replayDryRun bool
)

func newReplayCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay <journal>",
		Short: "Replay a recorded input journal",
		Long: `Replay the presses, undos, redos and resets of a JSON lines journal.

Journals are written when journal.enabled is set in the configuration. By default
the journal is replayed onto a fresh calculator that keeps the saved tiles; use
--onto to continue from the saved display and history instead.

With --verify every replayed display is compared with the one recorded in the
journal and differences are reported.

Examples:
  calcbuilder replay ~/.local/share/calcbuilder/journal.jsonl
  calcbuilder replay --verify --dry-run session.jsonl`,
		Args: cobra.ExactArgs(1),
		RunE: runReplay,
	}

	cmd.Flags().BoolVar(&replayVerify, "verify", false, "compare replayed displays with the recorded ones")
	cmd.Flags().BoolVar(&replayOnto, "onto", false, "replay onto the saved session instead of a fresh one")
	cmd.Flags().BoolVar(&replayDryRun, "dry-run", false, "do not save the result")

	return cmd
}

func runReplay(cmd *cobra.Command, args []string) error {
	actions, err := readJournal(args[0])
	if err != nil {
		return err
	}

	store := openStore()
	sess, err := loadSession(store)
	if err != nil {
		return err
	}
	if !replayOnto {
		rec := session.NewRecord()
		rec.Components = sess.Tiles()
		if err := sess.Restore(rec); err != nil {
			return err
		}
	}

	var mismatches []journal.Mismatch
	if replayVerify {
		mismatches, err = journal.Verify(sess, actions)
	} else {
		err = journal.Replay(sess, actions)
	}
	if err != nil {
		return fmt.Errorf("replay of %s failed: %w", args[0], err)
	}

	notice(cmd, "replay", "replayed %d actions from %s", len(actions), args[0])
	for _, m := range mismatches {
		notice(cmd, "warning", "action %d: journal shows %q, replay shows %q", m.Index+1, m.Want, m.Got)
	}

	if !replayDryRun {
		if err := store.Save(sess.Export()); err != nil {
			return fmt.Errorf("failed to save session: %w", err)
		}
	}

	if err := printResult(cmd, sess); err != nil {
		return err
	}
	if len(mismatches) > 0 {
		return fmt.Errorf("%d of %d actions did not reproduce the recorded display", len(mismatches), len(actions))
	}
	return nil
}

func readJournal(path string) ([]journal.Action, error) {
	// #nosec G304 - path is provided by the user
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil && isVerbose() {
			fmt.Fprintf(os.Stderr, "Warning: failed to close journal: %v\n", err)
		}
	}()

	actions, err := journal.Read(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return actions, nil
}
