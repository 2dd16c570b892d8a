package tetris

import (
	"fmt"
	"strings"
)

// Snapshot is a read-only copy of the engine state for rendering and
// analysis. Mutating a snapshot never affects the engine.
type Snapshot struct {
	Grid         *Grid
	Current      Piece
	Next         Piece
	Score        int
	Level        int
	Lines        int
	FallInterval int64
	State        State
	GameID       string
}

// Snapshot copies the observable state.
func (e *Engine) Snapshot() Snapshot {
	return Snapshot{
		Grid:         e.grid.Clone(),
		Current:      e.current,
		Next:         e.next,
		Score:        e.score,
		Level:        e.level,
		Lines:        e.lines,
		FallInterval: e.fallInterval,
		State:        e.state,
		GameID:       e.gameID,
	}
}

// GameOver reports whether the snapshot was taken after the game ended.
func (s Snapshot) GameOver() bool { return s.State == GameOver }

// CellAt returns what a renderer should draw at (x, y): the active piece
// color where it covers the cell, otherwise the grid contents. The active
// piece is hidden once the game is over.
func (s Snapshot) CellAt(x, y int) (Color, bool) {
	if s.State != GameOver && s.Current.Occupies(x, y) {
		return s.Current.Color, true
	}
	return s.Grid.At(x, y), false
}

// String renders the snapshot as ASCII: '.' for empty cells, the kind letter
// for locked cells, '#' for the active piece.
func (s Snapshot) String() string {
	var b strings.Builder

	border := "+" + strings.Repeat("-", s.Grid.Width()) + "+\n"
	b.WriteString(border)
	for y := 0; y < s.Grid.Height(); y++ {
		b.WriteByte('|')
		for x := 0; x < s.Grid.Width(); x++ {
			b.WriteByte(cellByte(s.CellAt(x, y)))
		}
		b.WriteString("|\n")
	}
	b.WriteString(border)

	fmt.Fprintf(&b, "score %d  level %d  lines %d\n", s.Score, s.Level, s.Lines)
	fmt.Fprintf(&b, "next %s\n", s.Next.Kind)
	if s.State != Running {
		fmt.Fprintf(&b, "%s\n", s.State)
	}
	return b.String()
}

func cellByte(c Color, active bool) byte {
	if active {
		return '#'
	}
	if k, ok := c.Kind(); ok {
		return kindNames[k][0]
	}
	return '.'
}
