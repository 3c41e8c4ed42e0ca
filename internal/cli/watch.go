package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/yildizm/CalcBuilder/internal/session"
)

func newWatchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print the display whenever the saved session changes",
		Long: `Follow the session file and print the display every time it changes,
for example while another terminal runs the builder or headless commands.

Uses file system notifications. Press Ctrl+C to stop watching.`,
		Args: cobra.NoArgs,
		RunE: runWatch,
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	store := openStore()

	// Set up signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if isVerbose() {
		fmt.Fprintf(os.Stderr, "Watching session: %s\n", store.Path)
		fmt.Fprintf(os.Stderr, "Press Ctrl+C to stop...\n\n")
	}

	if sess, err := loadSession(store); err == nil {
		fmt.Fprintln(cmd.OutOrStdout(), displayLine(sess))
	}

	return watchSession(ctx, cmd, store.Watch)
}

// watchSession prints every record delivered by watch until ctx is done
func watchSession(ctx context.Context, cmd *cobra.Command, watch func(context.Context, func(*session.Record)) error) error {
	out := cmd.OutOrStdout()
	last := ""

	return watch(ctx, func(rec *session.Record) {
		sess := session.New(session.WithLogger(newLogger("cli")))
		if err := sess.Restore(*rec); err != nil {
			notice(cmd, "warning", "ignoring invalid session: %v", err)
			return
		}

		line := displayLine(sess)
		if line == last {
			return
		}
		last = line
		fmt.Fprintln(out, line)
	})
}
