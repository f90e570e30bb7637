package plan

// Presentation token tables for the small closed card-color and item-status
// enums. Both color lookups fall back to the blue family for anything
// outside the enum, so a malformed color can never give a card a background
// from one family and text from another.

const fallbackColor = "blue"

var cardBackgroundTokens = map[string]string{
	"green":  "#22C55E",
	"yellow": "#EAB308",
	"red":    "#EF4444",
	"blue":   "#3B82F6",
	"purple": "#A855F7",
	"orange": "#F97316",
}

var cardTextTokens = map[string]string{
	"green":  "#16A34A",
	"yellow": "#CA8A04",
	"red":    "#DC2626",
	"blue":   "#2563EB",
	"purple": "#9333EA",
	"orange": "#EA580C",
}

// CardColors lists the supported status-card colors in display order.
var CardColors = []string{"green", "yellow", "red", "blue", "purple", "orange"}

// CardBackgroundToken maps a card color to its background token.
func CardBackgroundToken(color string) string {
	if token, ok := cardBackgroundTokens[color]; ok {
		return token
	}
	return cardBackgroundTokens[fallbackColor]
}

// CardTextToken maps a card color to its text token.
func CardTextToken(color string) string {
	if token, ok := cardTextTokens[color]; ok {
		return token
	}
	return cardTextTokens[fallbackColor]
}

var statusGlyphs = map[string]string{
	"completed": "check-circle",
	"progress":  "clock",
	"blocked":   "alert-triangle",
}

// StatusGlyph maps an item status to its display glyph reference. Any
// status outside {completed, progress, blocked}, including the empty
// string, gets the default target glyph.
func StatusGlyph(status string) string {
	if glyph, ok := statusGlyphs[status]; ok {
		return glyph
	}
	return "target"
}

// StatusGlyphColor returns the accent color shown next to a status glyph.
func StatusGlyphColor(status string) string {
	switch status {
	case "completed":
		return "#16A34A"
	case "progress":
		return "#CA8A04"
	case "blocked":
		return "#DC2626"
	}
	return "#2563EB"
}
