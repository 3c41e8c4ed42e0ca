package emoji

// emojiMap holds emoji and fallback mappings
var emojiMap = map[string][2]string{
	// [emoji, fallback]
	"calculator": {"🧮", "[CALC]"},
	"display":    {"🖥️", "[DSP]"},
	"tiles":      {"🧱", "[TILES]"},
	"palette":    {"🎨", "[PAL]"},
	"history":    {"🕘", "[HIST]"},
	"undo":       {"↩️", "[UNDO]"},
	"redo":       {"↪️", "[REDO]"},
	"pending":    {"⏳", "[...]"},
	"statistics": {"📊", "[STATS]"},
	"error":      {"❌", "[ERR]"},
	"warning":    {"⚠️", "[WRN]"},
	"info":       {"ℹ️", "[INF]"},
	"success":    {"✅", "[OK]"},
	"save":       {"💾", "[SAVE]"},
	"watch":      {"👀", "[WATCH]"},
	"replay":     {"⏯️", "[PLAY]"},
	"config":     {"📄", "[CFG]"},
	"folder":     {"📁", "[DIR]"},
	"help":       {"❓", "[?]"},
	"target":     {"🎯", "[>]"},
	"door":       {"🚪", "[EXIT]"},
	"number":     {"🔢", "[#]"},
}

var emojiDisabled bool

// SetEmojiDisabled sets the global emoji disabled state
func SetEmojiDisabled(disabled bool) {
	emojiDisabled = disabled
}

// IsEmojiDisabled returns the current emoji disabled state
func IsEmojiDisabled() bool {
	return emojiDisabled
}

// GetEmoji returns emoji or fallback based on no-emoji setting
func GetEmoji(key string) string {
	if mapping, exists := emojiMap[key]; exists {
		if emojiDisabled {
			return mapping[1]
		}
		return mapping[0]
	}
	return "[?]"
}

// Prefix returns the emoji for key followed by a space
func Prefix(key string) string {
	return GetEmoji(key) + " "
}
