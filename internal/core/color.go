package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for game elements.
const (
	ColorDefault Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
)

// palette holds the ANSI 256 code and the web hex value of each color.
var palette = map[Color]struct {
	ansi string
	hex  string
}{
	ColorRed:           {"1", "#cd3131"},
	ColorGreen:         {"2", "#0dbc79"},
	ColorYellow:        {"3", "#e5e510"},
	ColorBlue:          {"4", "#2472c8"},
	ColorMagenta:       {"5", "#bc3fbc"},
	ColorCyan:          {"6", "#11a8cd"},
	ColorWhite:         {"7", "#e5e5e5"},
	ColorBrightRed:     {"9", "#f14c4c"},
	ColorBrightGreen:   {"10", "#23d18b"},
	ColorBrightYellow:  {"11", "#ffff00"},
	ColorBrightBlue:    {"12", "#3b8eea"},
	ColorBrightMagenta: {"13", "#d670d6"},
	ColorBrightCyan:    {"14", "#29b8db"},
	ColorBrightWhite:   {"15", "#ffffff"},
	ColorOrange:        {"208", "#ff8700"},
	ColorGray:          {"245", "#8a8a8a"},
}

// ANSI returns the ANSI 256 color code, or "" for ColorDefault.
func (c Color) ANSI() string {
	return palette[c].ansi
}

// Hex returns a CSS hex color, or "" for ColorDefault.
func (c Color) Hex() string {
	return palette[c].hex
}
