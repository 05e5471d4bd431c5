package snake

import "github.com/vovakirdan/gridsnake/internal/core"

// Snake is the ordered chain of occupied cells, head first.
//
// Cells live in a ring buffer: moving pushes a new head in front of the old
// one and, unless the snake is growing, the slot it reuses is the old tail.
// A normal move therefore never allocates.
type Snake struct {
	ring   []core.Vec
	head   int // ring index of the head
	length int

	start    []core.Vec
	resetDir Direction

	dir     Direction // applied on the next Advance
	heading Direction // direction of the last performed move
	growing bool      // If true, don't remove tail on next move
}

// NewSnake creates a snake on the given start cells (head first) moving in dir.
// resetDir is the direction restored by Reset. capacity is a hint for the
// longest expected body; the ring grows past it if needed.
func NewSnake(start []core.Vec, dir, resetDir Direction, capacity int) *Snake {
	s := &Snake{
		start:    append([]core.Vec(nil), start...),
		resetDir: resetDir,
	}
	if capacity < len(start)+1 {
		capacity = len(start) + 1
	}
	s.ring = make([]core.Vec, capacity)
	s.place(s.start, dir)
	return s
}

// place loads cells into the ring and points the snake at dir.
func (s *Snake) place(cells []core.Vec, dir Direction) {
	if len(cells) >= len(s.ring) {
		s.ring = make([]core.Vec, 2*len(cells))
	}
	copy(s.ring, cells)
	s.head = 0
	s.length = len(cells)
	s.dir = dir
	s.heading = dir
	s.growing = false
}

// Reset restores the start body and the reset direction.
func (s *Snake) Reset() {
	s.place(s.start, s.resetDir)
}

// Advance moves the head one cell along the current direction.
// The tail is kept when a growth is pending, otherwise it is dropped.
// No bounds checking happens here.
func (s *Snake) Advance() {
	if s.length == 0 {
		return
	}

	s.heading = s.dir
	next := s.Head().Add(s.dir.Vec())

	if s.growing {
		s.growing = false
		if s.length == len(s.ring) {
			s.expand()
		}
		s.length++
	}

	// When the ring is full this slot is the old tail.
	s.head = core.Mod(s.head-1, len(s.ring))
	s.ring[s.head] = next
}

// expand doubles the ring, unrolling the body to start at index 0.
func (s *Snake) expand() {
	ring := make([]core.Vec, 2*len(s.ring))
	for i := range s.length {
		ring[i] = s.At(i)
	}
	s.ring = ring
	s.head = 0
}

// Grow makes the next Advance keep the tail.
func (s *Snake) Grow() {
	s.growing = true
}

// Growing reports whether a growth is pending.
func (s *Snake) Growing() bool {
	return s.growing
}

// SetDirection requests a new direction for the next move. A request for the
// exact reverse of the last move, or of the direction already requested, is
// refused and false is returned.
func (s *Snake) SetDirection(d Direction) bool {
	if d == s.heading.Opposite() || d == s.dir.Opposite() {
		return false
	}
	s.dir = d
	return true
}

// Direction returns the direction the next move will take.
func (s *Snake) Direction() Direction {
	return s.dir
}

// Heading returns the direction of the last performed move.
func (s *Snake) Heading() Direction {
	return s.heading
}

// Len returns the number of body cells.
func (s *Snake) Len() int {
	return s.length
}

// At returns the i-th cell counted from the head.
func (s *Snake) At(i int) core.Vec {
	return s.ring[(s.head+i)%len(s.ring)]
}

// Head returns the head cell.
func (s *Snake) Head() core.Vec {
	return s.ring[s.head]
}

// Tail returns the last cell.
func (s *Snake) Tail() core.Vec {
	return s.At(s.length - 1)
}

// WrapHead folds an out-of-grid head back onto the grid.
func (s *Snake) WrapHead(grid core.Rect) {
	s.ring[s.head] = grid.Wrap(s.ring[s.head])
}

// Contains reports whether any body cell equals c.
func (s *Snake) Contains(c core.Vec) bool {
	return s.ContainsFrom(c, 0)
}

// ContainsFrom reports whether c occurs in the body at index start or later.
func (s *Snake) ContainsFrom(c core.Vec, start int) bool {
	for i := start; i < s.length; i++ {
		if s.At(i) == c {
			return true
		}
	}
	return false
}

// AppendCells appends the body, head first, to dst.
func (s *Snake) AppendCells(dst []core.Vec) []core.Vec {
	for i := range s.length {
		dst = append(dst, s.At(i))
	}
	return dst
}
