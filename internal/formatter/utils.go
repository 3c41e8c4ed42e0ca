package formatter

import (
	"fmt"

	"github.com/yildizm/CalcBuilder/internal/calculator"
	"github.com/yildizm/CalcBuilder/internal/session"
)

// formatNumber formats numbers with commas for readability
func formatNumber(n int64) string {
	if n < 1000 && n > -1000 {
		return fmt.Sprintf("%d", n)
	}
	if n < 0 {
		return "-" + addCommas(fmt.Sprintf("%d", -n))
	}
	return addCommas(fmt.Sprintf("%d", n))
}

// addCommas adds commas to number strings
func addCommas(s string) string {
	if len(s) <= 3 {
		return s
	}
	return addCommas(s[:len(s)-3]) + "," + s[len(s)-3:]
}

// shortID trims uuids to their first group for compact listings
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// operatorName spells out an operator symbol
func operatorName(op string) string {
	switch calculator.Operator(op) {
	case calculator.OpAdd:
		return "add"
	case calculator.OpSubtract:
		return "subtract"
	case calculator.OpMultiply:
		return "multiply"
	case calculator.OpDivide:
		return "divide"
	default:
		return op
	}
}

// historyPosition is the share of history entries at or before the cursor
func historyPosition(s *session.Summary) float64 {
	if len(s.History) == 0 {
		return 0
	}
	return float64(s.Cursor+1) / float64(len(s.History))
}

// pendingText describes the pending operation, or "" when none is pending
func pendingText(s *session.Summary) string {
	if !s.Pending {
		return ""
	}
	return fmt.Sprintf("%s %s (%s)", s.PreviousValue, s.CurrentOperation, operatorName(s.CurrentOperation))
}
