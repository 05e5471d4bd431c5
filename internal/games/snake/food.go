package snake

import (
	"errors"
	"math/rand"

	"github.com/vovakirdan/gridsnake/internal/core"
)

// ErrGridFull is returned when no free cell is left for the food.
var ErrGridFull = errors.New("snake: no free cell left for food")

// Occupied is the set of cells food must avoid.
type Occupied interface {
	Contains(c core.Vec) bool
}

// nowhere marks food that could not be placed.
var nowhere = core.Vec{X: -1, Y: -1}

// Food is the single piece of food on the grid.
type Food struct {
	pos         core.Vec
	grid        core.Rect
	maxAttempts int
}

// NewFood creates unplaced food for the grid. maxAttempts bounds the number
// of random draws before Relocate falls back to scanning the grid.
func NewFood(grid core.Rect, maxAttempts int) *Food {
	return &Food{
		pos:         nowhere,
		grid:        grid,
		maxAttempts: maxAttempts,
	}
}

// Pos returns the food cell.
func (f *Food) Pos() core.Vec {
	return f.pos
}

// Placed reports whether the food sits on the grid.
func (f *Food) Placed() bool {
	return f.grid.Contains(f.pos)
}

// Relocate moves the food to a uniformly random cell outside occupied.
//
// Random cells are drawn up to maxAttempts times. If every draw lands on an
// occupied cell the grid is scanned and one of the free cells is picked, so
// a nearly full grid still terminates. ErrGridFull is returned when no cell
// is free.
func (f *Food) Relocate(rng *rand.Rand, occupied Occupied) (core.Vec, error) {
	for range f.maxAttempts {
		c := core.Vec{
			X: f.grid.X + rng.Intn(f.grid.W),
			Y: f.grid.Y + rng.Intn(f.grid.H),
		}
		if !occupied.Contains(c) {
			f.pos = c
			return c, nil
		}
	}

	free := f.countFree(occupied)
	if free == 0 {
		f.pos = nowhere
		return nowhere, ErrGridFull
	}

	pick := 0
	if free > 1 {
		pick = rng.Intn(free)
	}
	for y := f.grid.Y; y < f.grid.Bottom(); y++ {
		for x := f.grid.X; x < f.grid.Right(); x++ {
			c := core.Vec{X: x, Y: y}
			if occupied.Contains(c) {
				continue
			}
			if pick == 0 {
				f.pos = c
				return c, nil
			}
			pick--
		}
	}

	// Unreachable while occupied is stable between the two scans.
	f.pos = nowhere
	return nowhere, ErrGridFull
}

func (f *Food) countFree(occupied Occupied) int {
	free := 0
	for y := f.grid.Y; y < f.grid.Bottom(); y++ {
		for x := f.grid.X; x < f.grid.Right(); x++ {
			if !occupied.Contains(core.Vec{X: x, Y: y}) {
				free++
			}
		}
	}
	return free
}
