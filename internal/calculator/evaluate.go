package calculator

import (
	"errors"
	"math"
	"strconv"
	"strings"
)

// Evaluate applies op to the numeric prefixes of left and display.
// The display may carry a trailing " <op>" suffix; only the text before the
// first space is parsed. Division by zero yields ErrorDisplay.
func Evaluate(left, display string, op Operator) string {
	prev := parseOperand(left)
	current := parseOperand(display)

	var result float64
	switch op {
	case OpAdd:
		result = prev + current
	case OpSubtract:
		result = prev - current
	case OpMultiply:
		result = prev * current
	case OpDivide:
		if current == 0 {
			return ErrorDisplay
		}
		result = prev / current
	default:
		return display
	}

	return FormatResult(result)
}

// FormatResult renders integral values without a decimal point and all
// other values with exactly two fractional digits. Exact ties round away
// from zero.
func FormatResult(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		return "0" // also folds -0
	case math.Trunc(v) == v:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case isCentTie(v):
		return formatCents(math.Copysign(math.Ceil(math.Abs(v)*100), v))
	default:
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
}

// isCentTie reports whether v lies exactly halfway between two hundredths.
// Binary floats only do so at odd multiples of 1/8.
func isCentTie(v float64) bool {
	t := v * 8
	return math.Trunc(t) == t && math.Mod(t, 2) != 0
}

// formatCents renders a whole number of hundredths with two fractional digits
func formatCents(cents float64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
	}
	digits := strconv.FormatFloat(math.Abs(cents), 'f', 0, 64)
	if len(digits) < 3 {
		digits = strings.Repeat("0", 3-len(digits)) + digits
	}
	return sign + digits[:len(digits)-2] + "." + digits[len(digits)-2:]
}

// parseOperand reads the number before the first space; anything unparseable is NaN
func parseOperand(text string) float64 {
	head, _, _ := strings.Cut(text, " ")
	v, err := strconv.ParseFloat(head, 64)
	if err != nil {
		// Overlong digit strings saturate to ±Inf
		if errors.Is(err, strconv.ErrRange) {
			return v
		}
		return math.NaN()
	}
	return v
}
