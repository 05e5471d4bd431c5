package snake

import (
	"fmt"

	"github.com/vovakirdan/gridsnake/internal/core"
)

// hudHeight is the number of screen rows above the board frame.
const hudHeight = 1

const (
	runeHead = '█'
	runeBody = '▓'
	runeFood = '●'
)

// boardSize returns the frame size in screen cells, including the frame line.
func (g *Game) boardSize() (w, h int) {
	n, cw, b := g.cfg.Grid.CellCount, g.cfg.Grid.CellWidth, g.cfg.Grid.Border
	return n*cw + 2*b + 2, n + 2*b + 2
}

// Fits reports whether a w×h screen can show the whole board.
// A zero size means headless and always fits.
func (g *Game) Fits(w, h int) bool {
	if w == 0 && h == 0 {
		return true
	}
	bw, bh := g.boardSize()
	return w >= bw && h >= bh+hudHeight
}

// Resize adapts to a new screen size without resetting the round.
// The game holds still while the screen is too small.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.tooSmall = !g.Fits(w, h)
}

// frameRect returns where the board frame sits on dst, centered horizontally.
func (g *Game) frameRect(dst *core.Screen) core.Rect {
	bw, bh := g.boardSize()
	return core.NewRect((dst.Width()-bw)/2, hudHeight, bw, bh)
}

// cellOrigin maps a grid cell to its top-left screen position.
func (g *Game) cellOrigin(frame core.Rect, c core.Vec) (int, int) {
	b, cw := g.cfg.Grid.Border, g.cfg.Grid.CellWidth
	return frame.X + 1 + b + c.X*cw, frame.Y + 1 + b + c.Y
}

// paintCell fills the cw columns of a grid cell.
func (g *Game) paintCell(dst *core.Screen, frame core.Rect, c core.Vec, r rune, color core.Color) {
	x, y := g.cellOrigin(frame, c)
	for i := range g.cfg.Grid.CellWidth {
		dst.SetColored(x+i, y, r, color)
	}
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if !g.Fits(dst.Width(), dst.Height()) {
		bw, bh := g.boardSize()
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", bw, bh+hudHeight))
		return
	}

	v := g.View()
	frame := g.frameRect(dst)

	g.renderHUD(dst, frame, v)
	dst.DrawBox(frame, core.ColorDarkGreen)

	if g.grid.Contains(v.Food) {
		g.paintCell(dst, frame, v.Food, runeFood, core.ColorRed)
	}

	for i, seg := range v.Snake {
		if !g.grid.Contains(seg) {
			continue
		}
		if i == 0 {
			g.paintCell(dst, frame, seg, runeHead, core.ColorGreen)
		} else {
			g.paintCell(dst, frame, seg, runeBody, core.ColorDarkGreen)
		}
	}

	switch v.State {
	case StateStopped:
		g.renderOverlay(dst, "Game Over", "Press an arrow key to play")
	case StatePaused:
		g.renderOverlay(dst, "Paused", "Press P to continue")
	case StateWon:
		g.renderOverlay(dst, "Board cleared!", fmt.Sprintf("Final Score: %d", v.Score))
	}
}

// renderHUD draws the three-digit score above the frame and the best score
// right-aligned.
func (g *Game) renderHUD(dst *core.Screen, frame core.Rect, v RenderState) {
	dst.DrawTextColored(frame.X, 0, fmt.Sprintf("%03d", v.Score), core.ColorDarkGreen)

	right := fmt.Sprintf("%s  Best %03d", g.title, v.Best)
	dst.DrawTextColored(frame.Right()-len([]rune(right)), 0, right, core.ColorGray)
}

// renderOverlay draws a centered overlay message.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	w := dst.Width()
	h := dst.Height()

	boxW := max(len(line1), len(line2)) + 4
	boxH := 5
	box := core.NewRect((w-boxW)/2, (h-boxH)/2, boxW, boxH)

	for y := box.Y + 1; y < box.Bottom()-1; y++ {
		for x := box.X + 1; x < box.Right()-1; x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(box, core.ColorWhite)

	dst.DrawTextCentered(box.Y+1, line1)
	dst.DrawTextCentered(box.Y+3, line2)
}
