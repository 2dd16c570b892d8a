package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/tetris"
)

// Each grid cell is drawn two columns wide so the board looks square.
const cellWidth = 2

var kindColors = [tetris.NumKinds]tcell.Color{
	tetris.KindI: tcell.ColorAqua,
	tetris.KindO: tcell.ColorYellow,
	tetris.KindT: tcell.ColorPurple,
	tetris.KindL: tcell.ColorOrange,
	tetris.KindJ: tcell.ColorBlue,
	tetris.KindS: tcell.ColorGreen,
	tetris.KindZ: tcell.ColorRed,
}

var (
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorGray)
	emptyStyle  = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	textStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
)

// BoardView draws snapshots onto a tcell screen.
type BoardView struct {
	message string
}

func NewBoardView() *BoardView {
	return &BoardView{}
}

func (b *BoardView) HandleEvent(ev tetris.Event) {
	switch ev.Type {
	case tetris.EventLinesCleared:
		b.message = fmt.Sprintf("%d line(s) +%d", ev.Lines, tetris.LineScore(ev.Lines))
	case tetris.EventLevelUp:
		b.message = fmt.Sprintf("level %d!", ev.Level)
	case tetris.EventGameOver:
		b.message = "game over, r to restart"
	case tetris.EventReset:
		b.message = ""
	}
}

func cellStyle(c tetris.Color) tcell.Style {
	kind, ok := c.Kind()
	if !ok {
		return emptyStyle
	}
	return tcell.StyleDefault.Background(kindColors[kind])
}

func drawText(screen tcell.Screen, x, y int, style tcell.Style, text string) {
	for i, r := range []rune(text) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}

func (b *BoardView) Draw(screen tcell.Screen, snap tetris.Snapshot, autoplayOn bool) {
	screen.Clear()

	w, h := snap.Grid.Width(), snap.Grid.Height()
	screenW, screenH := screen.Size()
	ox := max(0, (screenW-w*cellWidth-2)/2-8)
	oy := max(0, (screenH-h-2)/2)

	for y := 0; y <= h+1; y++ {
		screen.SetContent(ox, oy+y, '│', nil, borderStyle)
		screen.SetContent(ox+w*cellWidth+1, oy+y, '│', nil, borderStyle)
	}
	for x := 0; x <= w*cellWidth+1; x++ {
		screen.SetContent(ox+x, oy, '─', nil, borderStyle)
		screen.SetContent(ox+x, oy+h+1, '─', nil, borderStyle)
	}
	screen.SetContent(ox, oy, '┌', nil, borderStyle)
	screen.SetContent(ox+w*cellWidth+1, oy, '┐', nil, borderStyle)
	screen.SetContent(ox, oy+h+1, '└', nil, borderStyle)
	screen.SetContent(ox+w*cellWidth+1, oy+h+1, '┘', nil, borderStyle)

	for y := range h {
		for x := range w {
			c, _ := snap.CellAt(x, y)
			style := cellStyle(c)
			r := ' '
			if c == tetris.Empty {
				r = '·'
			}
			sx := ox + 1 + x*cellWidth
			screen.SetContent(sx, oy+1+y, r, nil, style)
			screen.SetContent(sx+1, oy+1+y, ' ', nil, style)
		}
	}

	px := ox + w*cellWidth + 4
	drawText(screen, px, oy+1, textStyle, "NEXT")
	for row, col := range snap.Next.Shape.Cells() {
		style := tcell.StyleDefault.Background(kindColors[snap.Next.Kind])
		screen.SetContent(px+col*cellWidth, oy+2+row, ' ', nil, style)
		screen.SetContent(px+col*cellWidth+1, oy+2+row, ' ', nil, style)
	}

	drawText(screen, px, oy+7, textStyle, fmt.Sprintf("score %d", snap.Score))
	drawText(screen, px, oy+8, textStyle, fmt.Sprintf("level %d", snap.Level))
	drawText(screen, px, oy+9, textStyle, fmt.Sprintf("lines %d", snap.Lines))
	if snap.State != tetris.Running {
		drawText(screen, px, oy+11, textStyle.Bold(true), snap.State.String())
	}
	if autoplayOn {
		drawText(screen, px, oy+12, textStyle, "autoplay")
	}
	drawText(screen, px, oy+14, textStyle, b.message)
	drawText(screen, ox, oy+h+3, borderStyle, "←→ move  ↑ rotate  ↓ soft  space drop  p pause  r reset  a auto  q quit")
}
