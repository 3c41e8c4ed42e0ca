package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/CalcBuilder/internal/session"
)

// markdownFormatter formats output as Markdown
type markdownFormatter struct{}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{}
}

func (f *markdownFormatter) Format(summary *session.Summary) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# Calculator Builder\n\n")
	fmt.Fprintf(&b, "**Display:** `%s`\n\n", summary.Display)

	f.writeStateTable(&b, summary)
	f.writeTileTable(&b, summary)
	f.writeHistory(&b, summary)
	f.writeStatistics(&b, summary)

	return []byte(b.String()), nil
}

func (f *markdownFormatter) writeStateTable(b *strings.Builder, summary *session.Summary) {
	b.WriteString("## State\n\n")
	b.WriteString("| Field | Value |\n")
	b.WriteString("|-------|-------|\n")

	pending := pendingText(summary)
	if pending == "" {
		pending = "none"
	}
	fmt.Fprintf(b, "| Pending | %s |\n", escapeMarkdownCell(pending))
	fmt.Fprintf(b, "| Waiting for number | %t |\n", summary.Waiting)
	fmt.Fprintf(b, "| Can undo | %t |\n", summary.CanUndo)
	fmt.Fprintf(b, "| Can redo | %t |\n\n", summary.CanRedo)
}

func (f *markdownFormatter) writeTileTable(b *strings.Builder, summary *session.Summary) {
	b.WriteString("## Tiles\n\n")
	if len(summary.Tiles) == 0 {
		b.WriteString("_No tiles placed._\n\n")
		return
	}

	b.WriteString("| # | Value | Type | ID |\n")
	b.WriteString("|---|-------|------|----|\n")
	for i, tile := range summary.Tiles {
		fmt.Fprintf(b, "| %d | `%s` | %s | %s |\n", i+1, tile.Value, tile.Kind, tile.ID)
	}
	b.WriteString("\n")
}

func (f *markdownFormatter) writeHistory(b *strings.Builder, summary *session.Summary) {
	b.WriteString("## History\n\n")
	if len(summary.History) == 0 {
		b.WriteString("_No inputs yet._\n\n")
		return
	}

	for _, line := range summary.History {
		box := "[x]"
		if !line.Applied {
			box = "[ ]"
		}
		cursor := ""
		if line.Cursor {
			cursor = " ← cursor"
		}
		fmt.Fprintf(b, "- %s #%d `%s`%s\n", box, line.Index, line.Display, cursor)
	}
	b.WriteString("\n")
}

func (f *markdownFormatter) writeStatistics(b *strings.Builder, summary *session.Summary) {
	st := summary.Stats
	b.WriteString("## Statistics\n\n")
	b.WriteString("| Counter | Value |\n")
	b.WriteString("|---------|-------|\n")
	fmt.Fprintf(b, "| Inputs | %s |\n", formatNumber(st.Inputs))
	fmt.Fprintf(b, "| Ignored | %s |\n", formatNumber(st.Ignored))
	fmt.Fprintf(b, "| Evaluations | %s |\n", formatNumber(st.Evaluations))
	fmt.Fprintf(b, "| Errors | %s |\n", formatNumber(st.Errors))
	fmt.Fprintf(b, "| Undos | %s |\n", formatNumber(st.Undos))
	fmt.Fprintf(b, "| Redos | %s |\n", formatNumber(st.Redos))
	fmt.Fprintf(b, "| Tile changes | %s |\n", formatNumber(st.TileChanges))
}

// escapeMarkdownCell keeps table cells on one line
func escapeMarkdownCell(s string) string {
	s = strings.ReplaceAll(s, "|", "\\|")
	return strings.ReplaceAll(s, "\n", " ")
}
