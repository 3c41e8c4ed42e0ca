package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/go-termfmt"

	"github.com/yildizm/CalcBuilder/internal/components"
	"github.com/yildizm/CalcBuilder/internal/emoji"
	"github.com/yildizm/CalcBuilder/internal/session"
)

// maxHistoryLines bounds the history section of the text report
const maxHistoryLines = 10

// terminalFormatter formats output as plain text for terminal display using go-termfmt
type terminalFormatter struct {
	opts *termfmt.TerminalOptions
}

// NewTerminal creates a new terminal formatter with optional color support
func NewTerminal(color bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = !emoji.IsEmojiDisabled()
	return &terminalFormatter{opts: opts}
}

func (f *terminalFormatter) Format(summary *session.Summary) ([]byte, error) {
	var b strings.Builder

	f.writeHeader(&b, summary.Display)
	f.writeState(&b, summary)
	f.writeTiles(&b, summary.Tiles)
	f.writeHistory(&b, summary)
	f.writeStatistics(&b, summary)

	return []byte(b.String()), nil
}

// writeHeader draws the display inside a box
func (f *terminalFormatter) writeHeader(b *strings.Builder, display string) {
	width := len([]rune(display))
	if width < 16 {
		width = 16
	}
	pad := strings.Repeat(" ", width-len([]rune(display)))

	b.WriteString("╔" + strings.Repeat("═", width+2) + "╗\n")
	b.WriteString("║ " + pad + display + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", width+2) + "╝\n\n")
}

func (f *terminalFormatter) writeState(b *strings.Builder, summary *session.Summary) {
	b.WriteString(emoji.Prefix("calculator") + "State\n")

	pending := pendingText(summary)
	if pending == "" {
		pending = "none"
	}
	items := []termfmt.TreeItem{
		{Label: "Display", Value: summary.Display},
		{Label: "Pending", Value: pending},
		{Label: "Waiting for number", Value: fmt.Sprintf("%t", summary.Waiting), Last: true},
	}

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

func (f *terminalFormatter) writeTiles(b *strings.Builder, tiles []components.Component) {
	fmt.Fprintf(b, "%sTiles (%d)\n", emoji.Prefix("tiles"), len(tiles))
	if len(tiles) == 0 {
		b.WriteString("└─ (empty, add tiles from the palette)\n\n")
		return
	}

	items := make([]termfmt.TreeItem, 0, len(tiles))
	for i, tile := range tiles {
		items = append(items, termfmt.TreeItem{
			Label: fmt.Sprintf("%d. %s", i+1, tile.Value),
			Value: fmt.Sprintf("%s %s", tile.Kind, shortID(tile.ID)),
			Last:  i == len(tiles)-1,
		})
	}
	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

// writeHistory lists the most recent snapshots and marks the cursor
func (f *terminalFormatter) writeHistory(b *strings.Builder, summary *session.Summary) {
	fmt.Fprintf(b, "%sHistory (%d/%d)\n", emoji.Prefix("history"), summary.Cursor+1, len(summary.History))
	if len(summary.History) == 0 {
		b.WriteString("└─ (no inputs yet)\n\n")
		return
	}

	b.WriteString(termfmt.CreateConfidenceBar(historyPosition(summary), f.opts) + "\n")

	lines := summary.History
	if len(lines) > maxHistoryLines {
		lines = lines[len(lines)-maxHistoryLines:]
	}

	items := make([]termfmt.TreeItem, 0, len(lines))
	for i, line := range lines {
		marker := ""
		switch {
		case line.Cursor:
			marker = termfmt.GetEmoji("target", f.opts)
		case !line.Applied:
			marker = "(redo)"
		}
		items = append(items, termfmt.TreeItem{
			Label: fmt.Sprintf("#%d %s", line.Index, line.Display),
			Value: marker,
			Last:  i == len(lines)-1,
		})
	}
	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n")

	var actions []string
	if summary.CanUndo {
		actions = append(actions, emoji.Prefix("undo")+"undo available")
	}
	if summary.CanRedo {
		actions = append(actions, emoji.Prefix("redo")+"redo available")
	}
	if len(actions) > 0 {
		b.WriteString(strings.Join(actions, "  ") + "\n")
	}
	b.WriteString("\n")
}

// writeStatistics writes counters with tree-style formatting using go-termfmt
func (f *terminalFormatter) writeStatistics(b *strings.Builder, summary *session.Summary) {
	symbol := termfmt.GetEmoji("statistics", f.opts)
	b.WriteString(symbol + " Statistics\n")

	st := summary.Stats
	items := []termfmt.TreeItem{
		{Label: "Inputs", Value: formatNumber(st.Inputs)},
		{Label: "Ignored", Value: formatNumber(st.Ignored)},
		{Label: "Evaluations", Value: formatNumber(st.Evaluations)},
		{Label: "Errors", Value: formatNumber(st.Errors)},
		{Label: "Undo / Redo", Value: formatNumber(st.Undos) + " / " + formatNumber(st.Redos)},
		{Label: "Tile changes", Value: formatNumber(st.TileChanges), Last: true},
	}

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n")
}
