package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yildizm/CalcBuilder/internal/emoji"
	"github.com/yildizm/CalcBuilder/internal/ui/widgets"
)

// sideBySideWidth is the narrowest terminal that fits builder and palette in one row
const sideBySideWidth = 72

// View renders the current screen
func (m *BuilderModel) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	switch m.currentView {
	case ViewHelp:
		return m.renderHelp()
	case ViewStats:
		return m.renderStats()
	default:
		return m.renderBuilder()
	}
}

func (m *BuilderModel) renderBuilder() string {
	title := m.styles.Title.Render(emoji.Prefix("calculator") + "Calculator Builder")

	grids := lipgloss.JoinHorizontal(lipgloss.Top, m.builder.Render(), "  ", m.palette.Render())
	if m.width < sideBySideWidth {
		grids = lipgloss.JoinVertical(lipgloss.Left, m.builder.Render(), m.palette.Render())
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		m.renderDisplay(),
		"",
		grids,
		"",
		m.renderStatus(),
		m.renderInstructions(),
	)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Top, content)
}

// renderDisplay draws the display panel with the pending expression and undo/redo state
func (m *BuilderModel) renderDisplay() string {
	width := 30
	if lipgloss.Width(m.builder.Render()) > width {
		width = lipgloss.Width(m.builder.Render())
	}

	state := m.session.State()
	expression := " "
	if prev, ok := state.PreviousValue(); ok {
		if op, ok := state.CurrentOperation(); ok {
			expression = fmt.Sprintf("%s %s", prev, op)
		}
	}

	indicator := func(label string, enabled bool) string {
		if enabled {
			return m.styles.Enabled.Render(label)
		}
		return m.styles.Disabled.Render(label)
	}
	undoRedo := indicator(emoji.Prefix("undo")+"undo", m.session.CanUndo()) + "  " +
		indicator(emoji.Prefix("redo")+"redo", m.session.CanRedo())

	panel := lipgloss.JoinVertical(lipgloss.Right,
		m.styles.Expression.Width(width).Render(expression),
		lipgloss.NewStyle().Width(width).Align(lipgloss.Right).Render(m.session.Display()),
	)

	return lipgloss.JoinVertical(lipgloss.Left,
		m.styles.Display.Render(panel),
		undoRedo,
	)
}

func (m *BuilderModel) renderStatus() string {
	if m.status == "" {
		return " "
	}

	switch m.statusLevel {
	case statusSuccess:
		return m.styles.Success.Render(emoji.Prefix("success") + m.status)
	case statusWarning:
		return m.styles.Warning.Render(emoji.Prefix("warning") + m.status)
	case statusError:
		return m.styles.Error.Render(emoji.Prefix("error") + m.status)
	default:
		return m.styles.Info.Render(emoji.Prefix("info") + m.status)
	}
}

func (m *BuilderModel) renderInstructions() string {
	action := "enter press"
	if m.pane == PanePalette {
		action = "enter add"
	}
	return m.styles.Muted.Render(fmt.Sprintf(
		"%s tab %s  %s %s  u/r undo/redo  ? help  %s q quit",
		emoji.GetEmoji("target"), m.pane, emoji.GetEmoji("number"), action, emoji.GetEmoji("door"),
	))
}

func (m *BuilderModel) renderStats() string {
	title := m.styles.Title.Render(emoji.Prefix("statistics") + "Session Statistics")

	columns := 3
	if m.width < sideBySideWidth {
		columns = 1
	}
	dashboard := widgets.CreateSessionStats(m.session.Stats().Snapshot(), columns)

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		dashboard.Render(),
		"",
		m.styles.Muted.Render("s or any key to return"),
	)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
}

// helpBindings lists key bindings shown on the help screen
var helpBindings = [][2]string{
	{"tab", "switch between builder and palette"},
	{"arrows / hjkl", "move the selection"},
	{"enter / space", "add the palette tile, or press the builder tile"},
	{"x / delete", "remove the selected tile"},
	{"< > / shift+arrows", "move the selected tile"},
	{"u / ctrl+z", "undo"},
	{"r / ctrl+y", "redo"},
	{"0-9 + - * / = c", "press a calculator key directly"},
	{"s", "session statistics"},
	{"?", "this help"},
	{"q / ctrl+c", "quit"},
}

func (m *BuilderModel) renderHelp() string {
	title := m.styles.Title.Render(emoji.Prefix("help") + "Help")

	keyWidth := 0
	for _, b := range helpBindings {
		if len(b[0]) > keyWidth {
			keyWidth = len(b[0])
		}
	}

	helpList := make([]string, 0, len(helpBindings))
	for _, b := range helpBindings {
		key := m.styles.Key.Render(b[0] + strings.Repeat(" ", keyWidth-len(b[0])))
		helpList = append(helpList, key+"  "+m.styles.Body.Render(b[1]))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		lipgloss.JoinVertical(lipgloss.Left, helpList...),
		"",
		m.styles.Muted.Render("Press any key to return"),
	)

	box := m.styles.Box.Width(min(m.width-4, 80))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box.Render(content))
}
