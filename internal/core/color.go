package core

// Color represents a foreground color for a screen cell.
type Color uint8

// Palette used by the board renderer.
const (
	ColorDefault Color = iota
	ColorGreen
	ColorDarkGreen
	ColorRed
	ColorYellow
	ColorGray
	ColorWhite
)
