package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yildizm/CalcBuilder/internal/config"
	"github.com/yildizm/CalcBuilder/internal/session"
	"github.com/yildizm/CalcBuilder/internal/storage"
)

// Run runs the builder until the user quits. With a non-nil store the builder
// also follows writes to the storage file made by other processes.
func Run(sess *session.Session, cfg config.UIConfig, color bool, store *storage.FileStore) error {
	model := NewBuilderModel(sess, cfg, color)
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen())

	if store != nil {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		go func() {
			err := store.Watch(ctx, func(rec *session.Record) {
				p.Send(ExternalChangeMsg{Record: rec})
			})
			if err != nil {
				p.Send(watchErrorMsg{err: err})
			}
		}()
	}

	_, err := p.Run()
	return err
}
