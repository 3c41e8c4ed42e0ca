// Package widgets holds the reusable pieces the builder screen is drawn from.
package widgets

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Cell is one tile in a grid
type Cell struct {
	ID       string
	Label    string
	Operator bool
}

// GridStyles controls how a grid renders
type GridStyles struct {
	Title       lipgloss.Style
	Muted       lipgloss.Style
	Number      lipgloss.Style
	Operator    lipgloss.Style
	Selected    lipgloss.Style
	Pane        lipgloss.Style
	FocusedPane lipgloss.Style
}

// DefaultGridStyles returns styles for use without a theme
func DefaultGridStyles() GridStyles {
	primaryColor := lipgloss.AdaptiveColor{Light: "#3B82F6", Dark: "#60A5FA"}
	secondaryColor := lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"}
	selectedColor := lipgloss.AdaptiveColor{Light: "#DBEAFE", Dark: "#1E3A8A"}
	operatorColor := lipgloss.AdaptiveColor{Light: "#F97316", Dark: "#FB923C"}

	cell := lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(secondaryColor).Padding(0, 1)
	return GridStyles{
		Title:       lipgloss.NewStyle().Foreground(primaryColor).Bold(true),
		Muted:       lipgloss.NewStyle().Foreground(secondaryColor),
		Number:      cell.Foreground(primaryColor),
		Operator:    cell.Foreground(operatorColor).Bold(true),
		Selected:    cell.Background(selectedColor).Foreground(primaryColor).Border(lipgloss.ThickBorder()),
		Pane:        lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(secondaryColor).Padding(0, 1),
		FocusedPane: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(primaryColor).Padding(0, 1),
	}
}

// Grid is a navigable, fixed-column arrangement of cells
type Grid struct {
	Title     string
	Cells     []Cell
	Selected  int
	Focused   bool
	Columns   int
	EmptyText string
	Styles    GridStyles
}

// NewGrid creates an empty grid
func NewGrid(title string, columns int) *Grid {
	if columns < 1 {
		columns = 1
	}
	return &Grid{
		Title:   title,
		Columns: columns,
		Styles:  DefaultGridStyles(),
	}
}

// SetCells replaces the cells and keeps the selection in range
func (g *Grid) SetCells(cells []Cell) {
	g.Cells = cells
	g.clamp()
}

// SetFocused sets the focus state of the grid
func (g *Grid) SetFocused(focused bool) {
	g.Focused = focused
}

// Select moves the selection to index i, clamped to the cells
func (g *Grid) Select(i int) {
	g.Selected = i
	g.clamp()
}

// GetSelectedCell returns the currently selected cell
func (g *Grid) GetSelectedCell() (Cell, bool) {
	if g.Selected < 0 || g.Selected >= len(g.Cells) {
		return Cell{}, false
	}
	return g.Cells[g.Selected], true
}

// MoveLeft moves selection to the previous cell
func (g *Grid) MoveLeft() {
	if g.Selected > 0 {
		g.Selected--
	}
}

// MoveRight moves selection to the next cell
func (g *Grid) MoveRight() {
	if g.Selected < len(g.Cells)-1 {
		g.Selected++
	}
}

// MoveUp moves selection one row up
func (g *Grid) MoveUp() {
	if g.Selected-g.Columns >= 0 {
		g.Selected -= g.Columns
	}
}

// MoveDown moves selection one row down, landing on the last cell when the
// row below is short
func (g *Grid) MoveDown() {
	switch {
	case g.Selected+g.Columns < len(g.Cells):
		g.Selected += g.Columns
	case g.row(g.Selected) < g.row(len(g.Cells)-1):
		g.Selected = len(g.Cells) - 1
	}
}

func (g *Grid) row(i int) int {
	return i / g.Columns
}

func (g *Grid) clamp() {
	if g.Selected >= len(g.Cells) {
		g.Selected = len(g.Cells) - 1
	}
	if g.Selected < 0 {
		g.Selected = 0
	}
}

// Render renders the grid inside its pane
func (g *Grid) Render() string {
	content := []string{g.Styles.Title.Render(fmt.Sprintf("%s (%d)", g.Title, len(g.Cells))), ""}

	if len(g.Cells) == 0 {
		content = append(content, g.Styles.Muted.Render(g.EmptyText))
	}

	for start := 0; start < len(g.Cells); start += g.Columns {
		end := start + g.Columns
		if end > len(g.Cells) {
			end = len(g.Cells)
		}

		row := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			row = append(row, g.renderCell(g.Cells[i], i == g.Selected))
		}
		content = append(content, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}

	joined := lipgloss.JoinVertical(lipgloss.Left, content...)
	if g.Focused {
		return g.Styles.FocusedPane.Render(joined)
	}
	return g.Styles.Pane.Render(joined)
}

// renderCell renders a single tile
func (g *Grid) renderCell(cell Cell, selected bool) string {
	label := cell.Label
	if strings.TrimSpace(label) == "" {
		label = "?"
	}

	var style lipgloss.Style
	switch {
	case selected && g.Focused:
		style = g.Styles.Selected
	case cell.Operator:
		style = g.Styles.Operator
	default:
		style = g.Styles.Number
	}
	return style.Width(5).Align(lipgloss.Center).Render(label)
}
