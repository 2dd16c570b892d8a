package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/blockfall/tetris"
)

// flashFrames is how many draws a line clear stays highlighted.
const flashFrames = 20

var kindColors = [tetris.NumKinds]color.RGBA{
	tetris.KindI: {179, 229, 252, 255},
	tetris.KindO: {255, 255, 186, 255},
	tetris.KindT: {217, 186, 255, 255},
	tetris.KindL: {255, 223, 186, 255},
	tetris.KindJ: {186, 225, 255, 255},
	tetris.KindS: {186, 255, 201, 255},
	tetris.KindZ: {255, 179, 186, 255},
}

var (
	backgroundColor = color.RGBA{30, 30, 36, 255}
	wellColor       = color.RGBA{44, 44, 52, 255}
	gridLineColor   = color.RGBA{60, 60, 70, 255}
	flashColor      = color.RGBA{255, 255, 255, 60}
)

// Renderer draws snapshots with ebiten's vector package.
type Renderer struct {
	cellSize float32
	flash    int
	lastMsg  string
}

func NewRenderer(cellSize float32) *Renderer {
	return &Renderer{cellSize: cellSize}
}

// HandleEvent reacts to engine events with a short on-screen message.
func (r *Renderer) HandleEvent(ev tetris.Event) {
	switch ev.Type {
	case tetris.EventLinesCleared:
		r.flash = flashFrames
		r.lastMsg = fmt.Sprintf("%d line(s)! +%d", ev.Lines, tetris.LineScore(ev.Lines))
	case tetris.EventLevelUp:
		r.flash = flashFrames
		r.lastMsg = fmt.Sprintf("level %d", ev.Level)
	case tetris.EventReset:
		r.lastMsg = ""
	}
}

func cellColor(c tetris.Color) color.RGBA {
	kind, ok := c.Kind()
	if !ok {
		return wellColor
	}
	return kindColors[kind]
}

func (r *Renderer) Draw(screen *ebiten.Image, snap tetris.Snapshot, autoplayOn bool) {
	screen.Fill(backgroundColor)

	w, h := snap.Grid.Width(), snap.Grid.Height()
	boardW := float32(w) * r.cellSize
	boardH := float32(h) * r.cellSize
	ox := (float32(screen.Bounds().Dx()) - boardW) / 2
	oy := (float32(screen.Bounds().Dy()) - boardH) / 2

	vector.DrawFilledRect(screen, ox, oy, boardW, boardH, wellColor, false)

	for y := range h {
		for x := range w {
			c, _ := snap.CellAt(x, y)
			sx := ox + float32(x)*r.cellSize
			sy := oy + float32(y)*r.cellSize
			if c != tetris.Empty {
				vector.DrawFilledRect(screen, sx+1, sy+1, r.cellSize-2, r.cellSize-2, cellColor(c), false)
			}
			vector.StrokeRect(screen, sx, sy, r.cellSize, r.cellSize, 1, gridLineColor, false)
		}
	}

	if r.flash > 0 {
		vector.DrawFilledRect(screen, ox, oy, boardW, boardH, flashColor, false)
		r.flash--
	}

	r.drawPreview(screen, snap.Next, ox+boardW+r.cellSize, oy)

	hud := fmt.Sprintf("Score: %d\nLevel: %d\nLines: %d", snap.Score, snap.Level, snap.Lines)
	if autoplayOn {
		hud += "\nAutoplay"
	}
	if snap.State != tetris.Running {
		hud += "\n" + snap.State.String()
	}
	if r.lastMsg != "" {
		hud += "\n\n" + r.lastMsg
	}
	ebitenutil.DebugPrintAt(screen, hud, int(ox+boardW+r.cellSize), int(oy+5*r.cellSize))
	ebitenutil.DebugPrintAt(screen, "arrows move/rotate  space drop  p pause  r reset  a autoplay", int(ox), int(oy+boardH+8))
}

func (r *Renderer) drawPreview(screen *ebiten.Image, next tetris.Piece, x, y float32) {
	ebitenutil.DebugPrintAt(screen, "Next", int(x), int(y))
	size := r.cellSize * 0.75
	for row, col := range next.Shape.Cells() {
		sx := x + float32(col)*size
		sy := y + 16 + float32(row)*size
		vector.DrawFilledRect(screen, sx+1, sy+1, size-2, size-2, kindColors[next.Kind], false)
	}
}
