package worm

import (
	"fmt"

	"github.com/vovakirdan/tui-worm/internal/core"
	wormcore "github.com/vovakirdan/tui-worm/internal/games/worm/core"
)

const (
	hudHeight = 2 // Status line and separator
	cellWidth = 2 // Terminal cells are about twice as tall as wide
)

// cellStyle is how one board cell is painted.
type cellStyle struct {
	glyph [cellWidth]rune
	color core.Color
}

var cellStyles = map[wormcore.CellKind]cellStyle{
	wormcore.KindBackground: {glyph: [cellWidth]rune{'·', ' '}, color: core.ColorGray},
	wormcore.KindWorm:       {glyph: [cellWidth]rune{'█', '█'}, color: core.ColorGreen},
	wormcore.KindFood:       {glyph: [cellWidth]rune{'<', '>'}, color: core.ColorRed},
}

// boardSize returns the framed board size in screen characters.
func (g *Game) boardSize() (w, h int) {
	return g.sim.Cols()*cellWidth + 2, g.sim.Rows() + 2
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	// Drain the change stream even when the board is hidden so the
	// retained view never falls behind.
	g.syncBoard()

	g.renderHUD(dst)

	if g.tooSmall {
		w, h := g.boardSize()
		g.renderOverlay(dst, "Window too small", fmt.Sprintf("Need %dx%d", w, h+hudHeight))
		return
	}

	g.renderBoard(dst)

	if g.paused {
		g.renderOverlay(dst, "Paused", "Press P to continue")
	}
}

// syncBoard applies pending render instructions to the retained board.
func (g *Game) syncBoard() {
	cols := g.sim.Cols()
	for in := range g.sim.Changes() {
		g.board[in.Cell.Row*cols+in.Cell.Col] = in.Kind
	}
}

// renderHUD draws the top status bar.
func (g *Game) renderHUD(dst *core.Screen) {
	st := g.sim.Stats()
	hud := fmt.Sprintf(" %s — %s  Restarts: %d  Length: %d", g.Title(), g.sim.ScoreText(), st.Restarts, g.sim.Len())
	dst.DrawTextColor(0, 0, hud, core.ColorWhite)

	if g.loadErr != nil {
		note := "config error, using defaults "
		dst.DrawTextColor(dst.Width()-len(note), 0, note, core.ColorYellow)
	}

	dst.DrawHLine(0, 1, dst.Width(), '─')
}

// boardRect returns where the framed board sits on a screen of the current size.
func (g *Game) boardRect() core.Rect {
	w, h := g.boardSize()
	area := core.NewRect(0, hudHeight, g.screenW, g.screenH-hudHeight)
	return area.Centered(w, h)
}

// renderBoard draws the frame and every retained cell.
func (g *Game) renderBoard(dst *core.Screen) {
	frame := g.boardRect()
	dst.DrawBox(frame, core.ColorGray)

	rows, cols := g.sim.Rows(), g.sim.Cols()
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			style := cellStyles[g.board[r*cols+c]]
			x := frame.X + 1 + c*cellWidth
			y := frame.Y + 1 + r
			for i, ch := range style.glyph {
				dst.SetColor(x+i, y, ch, style.color)
			}
		}
	}
}

// renderOverlay draws a centered two-line message box.
func (g *Game) renderOverlay(dst *core.Screen, line1, line2 string) {
	boxW := max(len(line1), len(line2)) + 4
	box := dst.Bounds().Centered(boxW, 5)

	for y := box.Y + 1; y < box.Bottom()-1; y++ {
		for x := box.X + 1; x < box.Right()-1; x++ {
			dst.Set(x, y, ' ')
		}
	}
	dst.DrawBox(box, core.ColorYellow)
	dst.DrawTextColor(box.X+(boxW-len(line1))/2, box.Y+1, line1, core.ColorYellow)
	dst.DrawText(box.X+(boxW-len(line2))/2, box.Y+3, line2)
}
