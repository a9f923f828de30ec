package core

// RuntimeConfig contains the terminal-level settings handed to the driver host.
type RuntimeConfig struct {
	ScreenW  int // Screen width in characters
	ScreenH  int // Screen height in characters
	TickRate int // Frames per second requested from the platform (default 60)
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
	}
}

// CellAspect is the width/height ratio of a terminal cell.
// Used to correct the camera aspect so boxes do not look stretched.
const CellAspect = 0.5

// AspectRatio returns the view aspect ratio for a screen of w x h cells.
func AspectRatio(w, h int) float64 {
	if w <= 0 || h <= 0 {
		return 1
	}
	return float64(w) * CellAspect / float64(h)
}
