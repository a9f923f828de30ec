package sim

// HUDLine is a text overlay placed by relative screen coordinates.
// (0,0) is bottom-left and (1,1) top-right.
type HUDLine struct {
	Text string
	X, Y float64
}

// HUD holds the overlay strings.
type HUD struct {
	lines []HUDLine
}

// Clear removes every line.
func (h *HUD) Clear() { h.lines = h.lines[:0] }

// Add appends a line and returns its index.
func (h *HUD) Add(text string, x, y float64) int {
	h.lines = append(h.lines, HUDLine{Text: text, X: x, Y: y})
	return len(h.lines) - 1
}

// Set replaces line i. Out-of-range indexes are ignored.
func (h *HUD) Set(i int, text string, x, y float64) {
	if i < 0 || i >= len(h.lines) {
		return
	}
	h.lines[i] = HUDLine{Text: text, X: x, Y: y}
}

// Lines returns a copy of the overlay.
func (h *HUD) Lines() []HUDLine {
	return append([]HUDLine(nil), h.lines...)
}
