package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yildizm/CalcBuilder/internal/session"
)

// ExternalChangeMsg carries a record written to storage by another process
type ExternalChangeMsg struct {
	Record *session.Record
}

// clearStatusMsg expires the status line set at seq
type clearStatusMsg struct {
	seq int
}

// watchErrorMsg reports that following the storage file stopped
type watchErrorMsg struct {
	err error
}

// clearStatusAfter schedules expiry of the status line
func clearStatusAfter(d time.Duration, seq int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return clearStatusMsg{seq: seq}
	})
}
