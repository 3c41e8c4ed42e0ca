package cli

import (
	"github.com/yildizm/CalcBuilder/internal/components"
	"github.com/yildizm/CalcBuilder/internal/emoji"
)

// GetEmoji is a wrapper for the shared emoji package
func GetEmoji(key string) string {
	return emoji.GetEmoji(key)
}

// kindEmoji returns the marker for a tile kind
func kindEmoji(kind components.Kind) string {
	if kind == components.KindOperator {
		return GetEmoji("calculator")
	}
	return GetEmoji("number")
}
