// Package ui implements the interactive calculator builder on top of bubbletea.
package ui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/yildizm/CalcBuilder/internal/calculator"
	"github.com/yildizm/CalcBuilder/internal/components"
	"github.com/yildizm/CalcBuilder/internal/config"
	"github.com/yildizm/CalcBuilder/internal/session"
	"github.com/yildizm/CalcBuilder/internal/ui/widgets"
)

// BuilderModel is the bubbletea model of the calculator builder
type BuilderModel struct {
	session       *session.Session
	styles        *Styles
	statusTimeout time.Duration
	columns       int

	width    int
	height   int
	ready    bool
	quitting bool

	// Navigation state
	currentView View
	pane        Pane
	builder     *widgets.Grid
	palette     *widgets.Grid

	status      string
	statusLevel statusLevel
	statusSeq   int

	unsubscribe func()
}

// NewBuilderModel creates a builder bound to sess. The model subscribes to the
// session for its status line; call Close to release the subscription.
func NewBuilderModel(sess *session.Session, cfg config.UIConfig, color bool) *BuilderModel {
	if cfg.Theme != "" {
		SetThemeByName(cfg.Theme)
	}
	styles := GetStyles()
	if !color || IsColorDisabled() {
		styles = PlainStyles()
	}

	m := &BuilderModel{
		session:       sess,
		styles:        styles,
		statusTimeout: cfg.StatusTimeout,
		columns:       cfg.Columns,
		currentView:   ViewBuilder,
		pane:          PaneBuilder,
		builder:       widgets.NewGrid("Builder", cfg.Columns),
		palette:       widgets.NewGrid("Palette", cfg.Columns),
	}
	m.builder.EmptyText = "tab to the palette and press enter to add tiles"
	m.builder.Styles = styles.Grid
	m.palette.Styles = styles.Grid
	m.palette.SetCells(paletteCells())
	m.syncTiles()
	m.syncFocus()

	m.unsubscribe = sess.Subscribe(m.onSessionEvent)
	return m
}

// Close removes the session subscription
func (m *BuilderModel) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// Init sets the terminal title
func (m *BuilderModel) Init() tea.Cmd {
	return tea.SetWindowTitle("CalcBuilder")
}

// Update handles messages and navigation
func (m *BuilderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case tea.KeyMsg:
		seq := m.statusSeq
		model, cmd := m.handleKeyPress(msg)
		return model, m.withStatusExpiry(cmd, seq)
	case ExternalChangeMsg:
		seq := m.statusSeq
		model, cmd := m.handleExternalChange(msg)
		return model, m.withStatusExpiry(cmd, seq)
	case watchErrorMsg:
		seq := m.statusSeq
		m.setStatus("stopped following storage: "+msg.err.Error(), statusWarning)
		return m, m.withStatusExpiry(nil, seq)
	case clearStatusMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
	}

	return m, nil
}

// withStatusExpiry adds a status timeout when the status line changed since seq
func (m *BuilderModel) withStatusExpiry(cmd tea.Cmd, seq int) tea.Cmd {
	if m.statusSeq == seq || m.statusTimeout <= 0 {
		return cmd
	}
	expire := clearStatusAfter(m.statusTimeout, m.statusSeq)
	if cmd == nil {
		return expire
	}
	return tea.Batch(cmd, expire)
}

// Handler functions for Update method

// handleWindowResize handles window resize events
func (m *BuilderModel) handleWindowResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.ready = true
	return m, nil
}

// handleKeyPress handles keyboard input
func (m *BuilderModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.currentView != ViewBuilder {
		switch key {
		case "q", "ctrl+c":
			return m.handleQuit()
		case "s":
			return m.handleStats()
		default:
			m.currentView = ViewBuilder
			return m, nil
		}
	}

	switch key {
	case "q", "ctrl+c":
		return m.handleQuit()
	case "?":
		m.currentView = ViewHelp
		return m, nil
	case "s":
		return m.handleStats()
	case "tab", "shift+tab":
		return m.handleSwitchPane()
	case "up", "k":
		m.focused().MoveUp()
	case "down", "j":
		m.focused().MoveDown()
	case "left", "h":
		m.focused().MoveLeft()
	case "right", "l":
		m.focused().MoveRight()
	case "enter", " ":
		return m.handleSelection()
	case "x", "delete", "backspace":
		return m.handleRemove()
	case "<", "shift+left", "shift+up":
		return m.handleReorder(-1)
	case ">", "shift+right", "shift+down":
		return m.handleReorder(1)
	case "u", "ctrl+z":
		return m.handleUndo()
	case "r", "ctrl+y":
		return m.handleRedo()
	case "esc":
		m.status = ""
	default:
		return m.handleTyped(key)
	}
	return m, nil
}

// handleQuit handles quit commands
func (m *BuilderModel) handleQuit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

// handleStats toggles the statistics view
func (m *BuilderModel) handleStats() (tea.Model, tea.Cmd) {
	if m.currentView == ViewStats {
		m.currentView = ViewBuilder
	} else {
		m.currentView = ViewStats
	}
	return m, nil
}

// handleSwitchPane moves focus between builder and palette
func (m *BuilderModel) handleSwitchPane() (tea.Model, tea.Cmd) {
	if m.pane == PaneBuilder {
		m.pane = PanePalette
	} else {
		m.pane = PaneBuilder
	}
	m.syncFocus()
	return m, nil
}

// handleSelection presses the selected builder tile, or places the selected palette tile
func (m *BuilderModel) handleSelection() (tea.Model, tea.Cmd) {
	cell, ok := m.focused().GetSelectedCell()
	if !ok {
		return m, nil
	}

	if m.pane == PanePalette {
		if _, err := m.session.AddTile(cell.Label); err != nil {
			m.setStatus(err.Error(), statusError)
			return m, nil
		}
		m.builder.Select(len(m.builder.Cells) - 1)
		return m, nil
	}

	changed, err := m.session.PressTile(cell.ID)
	if err != nil {
		m.setStatus(err.Error(), statusError)
	} else if !changed {
		m.setStatus(fmt.Sprintf("%s has no effect here", cell.Label), statusWarning)
	}
	return m, nil
}

// handleRemove removes the selected builder tile
func (m *BuilderModel) handleRemove() (tea.Model, tea.Cmd) {
	if m.pane != PaneBuilder {
		return m, nil
	}
	if cell, ok := m.builder.GetSelectedCell(); ok {
		m.session.RemoveTile(cell.ID)
	}
	return m, nil
}

// handleReorder moves the selected builder tile by delta positions
func (m *BuilderModel) handleReorder(delta int) (tea.Model, tea.Cmd) {
	if m.pane != PaneBuilder || len(m.builder.Cells) == 0 {
		return m, nil
	}

	from := m.builder.Selected
	to := from + delta
	if to < 0 || to >= len(m.builder.Cells) {
		return m, nil
	}
	if err := m.session.MoveTile(from, to); err != nil {
		m.setStatus(err.Error(), statusError)
		return m, nil
	}
	m.builder.Select(to)
	return m, nil
}

// handleUndo handles undo
func (m *BuilderModel) handleUndo() (tea.Model, tea.Cmd) {
	if !m.session.Undo() {
		m.setStatus("nothing to undo", statusWarning)
	}
	return m, nil
}

// handleRedo handles redo
func (m *BuilderModel) handleRedo() (tea.Model, tea.Cmd) {
	if !m.session.Redo() {
		m.setStatus("nothing to redo", statusWarning)
	}
	return m, nil
}

// handleTyped presses calculator keys typed directly
func (m *BuilderModel) handleTyped(key string) (tea.Model, tea.Cmd) {
	if key == "c" {
		key = string(calculator.CmdClear)
	}
	if _, err := calculator.ParseSymbol(key); err != nil {
		return m, nil
	}

	changed, err := m.session.Press(key)
	if err != nil {
		m.setStatus(err.Error(), statusError)
	} else if !changed {
		m.setStatus(fmt.Sprintf("%s has no effect here", key), statusWarning)
	}
	return m, nil
}

// handleExternalChange adopts a record written by another process. Records equal
// to the current session, such as our own autosaves, are ignored.
func (m *BuilderModel) handleExternalChange(msg ExternalChangeMsg) (tea.Model, tea.Cmd) {
	if msg.Record == nil || cmp.Equal(*msg.Record, m.session.Export(), cmpopts.EquateEmpty()) {
		return m, nil
	}
	if err := m.session.Restore(*msg.Record); err != nil {
		var restoreErr *session.RestoreError
		if errors.As(err, &restoreErr) {
			m.setStatus("ignored invalid state on disk: "+restoreErr.Field, statusError)
		} else {
			m.setStatus(err.Error(), statusError)
		}
	}
	return m, nil
}

// onSessionEvent keeps the grids and status line in step with the session
func (m *BuilderModel) onSessionEvent(ev session.Event) {
	switch ev.Kind {
	case session.EventInput:
		level := statusInfo
		if strings.HasPrefix(ev.State.Display, calculator.ErrorDisplay) {
			level = statusError
		}
		m.setStatus(fmt.Sprintf("pressed %s", ev.Symbol), level)
	case session.EventUndo:
		m.setStatus("undone", statusInfo)
	case session.EventRedo:
		m.setStatus("redone", statusInfo)
	case session.EventTiles:
		m.syncTiles()
		m.setStatus(fmt.Sprintf("%d tiles", len(m.builder.Cells)), statusInfo)
	case session.EventRestore:
		m.syncTiles()
		m.setStatus("reloaded from storage", statusSuccess)
	case session.EventReset:
		m.syncTiles()
		m.setStatus("reset", statusInfo)
	}
}

func (m *BuilderModel) setStatus(text string, level statusLevel) {
	m.status = text
	m.statusLevel = level
	m.statusSeq++
}

func (m *BuilderModel) focused() *widgets.Grid {
	if m.pane == PanePalette {
		return m.palette
	}
	return m.builder
}

func (m *BuilderModel) syncFocus() {
	m.builder.SetFocused(m.pane == PaneBuilder)
	m.palette.SetFocused(m.pane == PanePalette)
}

func (m *BuilderModel) syncTiles() {
	tiles := m.session.Tiles()
	cells := make([]widgets.Cell, 0, len(tiles))
	for _, t := range tiles {
		cells = append(cells, widgets.Cell{ID: t.ID, Label: t.Value, Operator: t.Kind == components.KindOperator})
	}
	m.builder.SetCells(cells)
}

func paletteCells() []widgets.Cell {
	templates := components.Palette()
	cells := make([]widgets.Cell, 0, len(templates))
	for _, t := range templates {
		cells = append(cells, widgets.Cell{Label: t.Value, Operator: t.Kind == components.KindOperator})
	}
	return cells
}
