package formatter

import (
	"fmt"

	"github.com/yildizm/CalcBuilder/internal/session"
)

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(summary *session.Summary) ([]byte, error)
}

// New returns the formatter for a format name
func New(format string, color bool) (Formatter, error) {
	switch format {
	case "", "text":
		return NewTerminal(color), nil
	case "json":
		return NewJSON(), nil
	case "markdown":
		return NewMarkdown(), nil
	case "csv":
		return NewCSV(), nil
	default:
		return nil, fmt.Errorf("unknown format %s. Available formats: text, json, markdown, csv", format)
	}
}
