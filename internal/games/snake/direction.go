package snake

import "github.com/vovakirdan/gridsnake/internal/core"

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// ParseDirection maps a config name ("up", "down", "left", "right") to a Direction.
func ParseDirection(name string) (Direction, bool) {
	switch name {
	case "right":
		return DirRight, true
	case "down":
		return DirDown, true
	case "left":
		return DirLeft, true
	case "up":
		return DirUp, true
	}
	return DirRight, false
}

// Vec returns the unit step for the direction. Y grows downwards.
func (d Direction) Vec() core.Vec {
	v, _ := core.UnitStep(d.String())
	return v
}

// Opposite returns the reverse direction.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}
