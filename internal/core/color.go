package core

// Color represents a foreground color for a screen cell.
// Uses ANSI 256-color codes for terminal compatibility.
type Color uint8

// Predefined colors for scene elements.
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
	ColorDarkGray
)

// RGB maps a packed 0xRRGGBB debug color to the nearest palette entry.
// Only the dominant channels matter at terminal resolution.
func RGB(packed uint32) Color {
	r := (packed >> 16) & 0xff
	g := (packed >> 8) & 0xff
	b := packed & 0xff

	hi := func(c uint32) bool { return c >= 0x80 }
	switch {
	case hi(r) && hi(g) && hi(b):
		return ColorBrightWhite
	case hi(r) && hi(g):
		return ColorBrightYellow
	case hi(r) && hi(b):
		return ColorBrightMagenta
	case hi(g) && hi(b):
		return ColorBrightCyan
	case hi(r):
		return ColorBrightRed
	case hi(g):
		return ColorBrightGreen
	case hi(b):
		return ColorBrightBlue
	case r|g|b == 0:
		return ColorDarkGray
	default:
		return ColorGray
	}
}
