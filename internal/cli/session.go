package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/yildizm/CalcBuilder/internal/components"
	"github.com/yildizm/CalcBuilder/internal/config"
	"github.com/yildizm/CalcBuilder/internal/formatter"
	"github.com/yildizm/CalcBuilder/internal/journal"
	"github.com/yildizm/CalcBuilder/internal/logger"
	"github.com/yildizm/CalcBuilder/internal/session"
	"github.com/yildizm/CalcBuilder/internal/storage"
)

// newLogger creates a component logger that follows --verbose
func newLogger(component string) *logger.Logger {
	return logger.NewWithCallback(component, isVerbose)
}

// openStore returns the store for the configured session file
func openStore() *storage.FileStore {
	cfg := GetGlobalConfig()
	return storage.NewFileStore(config.ExpandPath(cfg.Storage.Path), cfg.Storage.Namespace, newLogger("cli"))
}

// loadSession restores the saved session, or starts a fresh one when nothing is saved
func loadSession(store *storage.FileStore) (*session.Session, error) {
	sess := session.New(session.WithLogger(newLogger("cli")))

	rec, err := store.Load()
	if errors.Is(err, storage.ErrNotFound) {
		return sess, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session from %s: %w", store.Path, err)
	}
	if err := sess.Restore(*rec); err != nil {
		return nil, fmt.Errorf("failed to restore session from %s: %w", store.Path, err)
	}
	return sess, nil
}

// openJournal attaches the configured journal to sess. The returned func
// detaches it and closes the file.
func openJournal(sess *session.Session) (func(), error) {
	cfg := GetGlobalConfig()
	if !cfg.Journal.Enabled {
		return func() {}, nil
	}

	path := config.ExpandPath(cfg.Journal.Path)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}
	// #nosec G304 - path comes from configuration
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}

	detach := journal.Attach(sess, journal.NewWriter(file, newLogger("cli")))
	return func() {
		detach()
		if err := file.Close(); err != nil && isVerbose() {
			fmt.Fprintf(os.Stderr, "Warning: failed to close journal: %v\n", err)
		}
	}, nil
}

// withSession loads the session, runs fn against it with the journal attached
// and saves the result. Nothing is saved when fn fails.
func withSession(fn func(*session.Session) error) (*session.Session, error) {
	store := openStore()
	sess, err := loadSession(store)
	if err != nil {
		return nil, err
	}

	closeJournal, err := openJournal(sess)
	if err != nil {
		return nil, err
	}
	defer closeJournal()

	if err := fn(sess); err != nil {
		return nil, err
	}

	if err := store.Save(sess.Export()); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return sess, nil
}

// colorEnabled resolves --no-color, NO_COLOR and ui.color_mode for w
func colorEnabled(w io.Writer) bool {
	if noColor || os.Getenv("NO_COLOR") != "" {
		return false
	}
	terminal := false
	if f, ok := w.(*os.File); ok {
		terminal = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	return GetGlobalConfig().ColorEnabled(terminal)
}

// printSummary writes the full session report in the selected format
func printSummary(cmd *cobra.Command, sess *session.Session) error {
	out := cmd.OutOrStdout()
	f, err := formatter.New(getOutputFormat(), colorEnabled(out))
	if err != nil {
		return err
	}

	data, err := f.Format(sess.Summary())
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}
	_, err = out.Write(data)
	return err
}

// printResult prints the display for text output and the full report otherwise
func printResult(cmd *cobra.Command, sess *session.Session) error {
	switch getOutputFormat() {
	case "", "text":
		fmt.Fprintln(cmd.OutOrStdout(), sess.Display())
		return nil
	default:
		return printSummary(cmd, sess)
	}
}

// resolveTile finds a tile by 1-based position, full id or unique id prefix
func resolveTile(sess *session.Session, ref string) (components.Component, int, error) {
	tiles := sess.Tiles()

	if n, err := strconv.Atoi(ref); err == nil {
		if n < 1 || n > len(tiles) {
			return components.Component{}, 0, fmt.Errorf("%w: %d (have %d tiles)", components.ErrOutOfRange, n, len(tiles))
		}
		return tiles[n-1], n - 1, nil
	}

	match := -1
	for i, t := range tiles {
		if t.ID == ref {
			return t, i, nil
		}
		if strings.HasPrefix(t.ID, ref) {
			if match >= 0 {
				return components.Component{}, 0, fmt.Errorf("tile id prefix %q is ambiguous", ref)
			}
			match = i
		}
	}
	if match < 0 {
		return components.Component{}, 0, fmt.Errorf("%w: %s", components.ErrNotFound, ref)
	}
	return tiles[match], match, nil
}

// notice prints a status line on stderr so stdout stays machine readable
func notice(cmd *cobra.Command, key, format string, args ...interface{}) {
	fmt.Fprintf(cmd.ErrOrStderr(), GetEmoji(key)+" "+format+"\n", args...)
}
