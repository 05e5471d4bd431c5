// Package core provides fundamental types and utilities for the snake game.
// It contains no external dependencies (especially no Bubble Tea) to keep game
// logic pure and testable.
package core

// Vec is an integer grid coordinate or a displacement between two cells.
type Vec struct {
	X, Y int
}

// Add returns the component-wise sum of v and o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Neg returns the vector pointing the opposite way.
func (v Vec) Neg() Vec {
	return Vec{X: -v.X, Y: -v.Y}
}

// unitSteps maps direction names to unit steps. Y grows downwards.
var unitSteps = map[string]Vec{
	"up":    {X: 0, Y: -1},
	"down":  {X: 0, Y: 1},
	"left":  {X: -1, Y: 0},
	"right": {X: 1, Y: 0},
}

// UnitStep returns the unit step for a direction name.
func UnitStep(name string) (Vec, bool) {
	v, ok := unitSteps[name]
	return v, ok
}

// Rect represents an axis-aligned block of cells.
type Rect struct {
	X, Y int // Top-left corner position
	W, H int // Width and height
}

// NewRect creates a new rectangle with the given position and dimensions.
func NewRect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, W: w, H: h}
}

// Square returns an n×n rectangle anchored at the origin.
func Square(n int) Rect {
	return Rect{W: n, H: n}
}

// Right returns the x-coordinate of the right edge.
func (r Rect) Right() int {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect) Bottom() int {
	return r.Y + r.H
}

// Area returns the number of cells covered by the rectangle.
func (r Rect) Area() int {
	if r.W <= 0 || r.H <= 0 {
		return 0
	}
	return r.W * r.H
}

// Contains returns true if the cell is inside this rectangle.
func (r Rect) Contains(c Vec) bool {
	return c.X >= r.X && c.X < r.Right() && c.Y >= r.Y && c.Y < r.Bottom()
}

// Wrap folds a cell back into the rectangle, torus style.
func (r Rect) Wrap(c Vec) Vec {
	if r.W <= 0 || r.H <= 0 {
		return c
	}
	return Vec{
		X: r.X + Mod(c.X-r.X, r.W),
		Y: r.Y + Mod(c.Y-r.Y, r.H),
	}
}

// Mod returns the non-negative remainder of a divided by n.
func Mod(a, n int) int {
	m := a % n
	if m < 0 {
		m += n
	}
	return m
}

// ClampF restricts a float64 value to be within [min, max].
func ClampF(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
