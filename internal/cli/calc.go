package cli

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/spf13/cobra"

	"github.com/yildizm/CalcBuilder/internal/calculator"
	"github.com/yildizm/CalcBuilder/internal/session"
)

func newPressCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "press <symbols...>",
		Short: "Press calculator keys",
		Long: `Press one or more calculator keys on the saved session.

Each argument may hold several keys; whitespace is ignored. Valid keys are the
digits 0-9, the operators + - * /, = and C. All keys are checked before any is
pressed, so an invalid key leaves the session unchanged.

Examples:
  calcbuilder press 12+3=
  calcbuilder press 7 '*' 6 =
  calcbuilder press C`,
		Args: cobra.MinimumNArgs(1),
		RunE: runPress,
	}
}

func runPress(cmd *cobra.Command, args []string) error {
	symbols, err := splitSymbols(args)
	if err != nil {
		return err
	}

	ignored := 0
	sess, err := withSession(func(s *session.Session) error {
		for _, sym := range symbols {
			changed, err := s.Press(sym)
			if err != nil {
				return err
			}
			if !changed {
				ignored++
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	if ignored > 0 && isVerbose() {
		notice(cmd, "info", "%d of %d keys had no effect", ignored, len(symbols))
	}
	return printResult(cmd, sess)
}

// splitSymbols breaks arguments into single keys and validates every one
func splitSymbols(args []string) ([]string, error) {
	var symbols []string
	for _, arg := range args {
		for _, r := range arg {
			if unicode.IsSpace(r) {
				continue
			}
			sym := string(r)
			if _, err := calculator.ParseSymbol(sym); err != nil {
				return nil, err
			}
			symbols = append(symbols, sym)
		}
	}
	if len(symbols) == 0 {
		return nil, fmt.Errorf("no keys to press")
	}
	return symbols, nil
}

func newUndoCommand() *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "undo",
		Short: "Undo the last input",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryMove(cmd, "undo", steps, (*session.Session).Undo)
		},
	}
	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "number of inputs to undo")
	return cmd
}

func newRedoCommand() *cobra.Command {
	var steps int

	cmd := &cobra.Command{
		Use:   "redo",
		Short: "Redo the last undone input",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHistoryMove(cmd, "redo", steps, (*session.Session).Redo)
		},
	}
	cmd.Flags().IntVarP(&steps, "steps", "n", 1, "number of inputs to redo")
	return cmd
}

// runHistoryMove applies move up to steps times and reports when history ran out
func runHistoryMove(cmd *cobra.Command, name string, steps int, move func(*session.Session) bool) error {
	if steps < 1 {
		return fmt.Errorf("--steps must be at least 1")
	}

	done := 0
	sess, err := withSession(func(s *session.Session) error {
		for done < steps && move(s) {
			done++
		}
		return nil
	})
	if err != nil {
		return err
	}

	if done < steps {
		notice(cmd, "warning", "nothing more to %s (%d of %d applied)", name, done, steps)
	}
	return printResult(cmd, sess)
}

func newResetCommand() *cobra.Command {
	var keepTiles bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear the display, history and tiles",
		Long: `Reset the saved session to a fresh calculator.

With --keep-tiles only the display and history are cleared.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := withSession(func(s *session.Session) error {
				tiles := s.Tiles()
				s.Reset()
				if !keepTiles {
					return nil
				}
				rec := s.Export()
				rec.Components = tiles
				return s.Restore(rec)
			})
			if err != nil {
				return err
			}
			notice(cmd, "success", "session reset")
			return printResult(cmd, sess)
		},
	}
	cmd.Flags().BoolVar(&keepTiles, "keep-tiles", false, "keep the tile arrangement")
	return cmd
}

func newShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the saved session",
		Long: `Show the display, pending operation, tiles, history and statistics of the
saved session in the selected output format.

Examples:
  calcbuilder show
  calcbuilder show -o json
  calcbuilder show -o csv > history.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := loadSession(openStore())
			if err != nil {
				return err
			}
			return printSummary(cmd, sess)
		},
	}
}

// displayLine is the one-line form of a session used by watch
func displayLine(sess *session.Session) string {
	var b strings.Builder
	b.WriteString(sess.Display())
	if sess.CanUndo() {
		b.WriteString("  [undo]")
	}
	if sess.CanRedo() {
		b.WriteString("  [redo]")
	}
	return b.String()
}
