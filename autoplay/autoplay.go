// Package autoplay picks placements for the active piece by simulating every
// reachable rotation and column and scoring the resulting board.
package autoplay

import (
	"github.com/plus3/blockfall/tetris"
)

// Weights scales the board penalties used by Evaluate.
type Weights struct {
	Bumpiness float64 `yaml:"bumpiness"`
	Holes     float64 `yaml:"holes"`
	Height    float64 `yaml:"height"`
}

// DefaultWeights penalizes holes hardest, then uneven columns, then height.
var DefaultWeights = Weights{
	Bumpiness: 2,
	Holes:     10,
	Height:    1.5,
}

// ColumnHeight returns the height of the highest occupied cell in column x,
// counted from the floor. An empty column has height 0.
func ColumnHeight(g *tetris.Grid, x int) int {
	for y := 0; y < g.Height(); y++ {
		if g.Occupied(x, y) {
			return g.Height() - y
		}
	}
	return 0
}

// MaxHeight returns the tallest column height.
func MaxHeight(g *tetris.Grid) int {
	h := 0
	for x := 0; x < g.Width(); x++ {
		h = max(h, ColumnHeight(g, x))
	}
	return h
}

// Holes counts empty cells that have an occupied cell somewhere above them.
func Holes(g *tetris.Grid) int {
	holes := 0
	for x := 0; x < g.Width(); x++ {
		covered := false
		for y := 0; y < g.Height(); y++ {
			switch {
			case g.Occupied(x, y):
				covered = true
			case covered:
				holes++
			}
		}
	}
	return holes
}

// Bumpiness sums the absolute height differences of adjacent columns.
func Bumpiness(g *tetris.Grid) int {
	sum := 0
	for x := 0; x < g.Width()-1; x++ {
		d := ColumnHeight(g, x) - ColumnHeight(g, x+1)
		if d < 0 {
			d = -d
		}
		sum += d
	}
	return sum
}

// Evaluate scores a board; higher is better and an empty board scores 0.
func Evaluate(g *tetris.Grid, w Weights) float64 {
	return -(w.Bumpiness*float64(Bumpiness(g)) +
		w.Holes*float64(Holes(g)) +
		w.Height*float64(MaxHeight(g)))
}

// Move is a target placement for the active piece.
type Move struct {
	Rotations int
	X         int
	Score     float64
}

// Inputs returns the inputs that realize the move from column fromX:
// rotations first, then horizontal steps, then a hard drop.
func (m Move) Inputs(fromX int) []tetris.Input {
	inputs := make([]tetris.Input, 0, m.Rotations+abs(m.X-fromX)+1)
	for range m.Rotations {
		inputs = append(inputs, tetris.InputRotate)
	}
	for x := fromX; x < m.X; x++ {
		inputs = append(inputs, tetris.InputMoveRight)
	}
	for x := fromX; x > m.X; x-- {
		inputs = append(inputs, tetris.InputMoveLeft)
	}
	return append(inputs, tetris.InputHardDrop)
}

// Best searches rotations 0..3 and every column for the active piece of
// snap. Only placements reachable by rotating in place and then sliding
// along the current row are considered. It reports false when the game is
// over or no placement is reachable.
func Best(snap tetris.Snapshot, w Weights) (Move, bool) {
	if snap.GameOver() {
		return Move{}, false
	}

	var (
		best  Move
		found bool
	)

	piece := snap.Current
	for rot := 0; rot < 4; rot++ {
		if rot > 0 {
			piece.Shape = piece.Shape.Rotate()
			if !tetris.ValidPlacement(snap.Grid, piece, 0, 0) {
				break
			}
		}

		for x := 0; x+piece.Shape.Cols <= snap.Grid.Width(); x++ {
			if !slideClear(snap.Grid, piece, x) {
				continue
			}

			candidate := piece
			candidate.X = x
			score := Evaluate(dropAndLock(snap.Grid, candidate), w)

			if !found || score > best.Score {
				best = Move{Rotations: rot, X: x, Score: score}
				found = true
			}
		}
	}

	return best, found
}

// Plan returns the inputs for the best move of snap, or nil.
func Plan(snap tetris.Snapshot, w Weights) []tetris.Input {
	move, ok := Best(snap, w)
	if !ok {
		return nil
	}
	return move.Inputs(snap.Current.X)
}

// slideClear reports whether piece can slide horizontally to column x.
func slideClear(g *tetris.Grid, piece tetris.Piece, x int) bool {
	step := 1
	if x < piece.X {
		step = -1
	}
	for dx := 0; piece.X+dx != x; {
		dx += step
		if !tetris.ValidPlacement(g, piece, dx, 0) {
			return false
		}
	}
	return true
}

// dropAndLock returns a copy of g with piece dropped to rest, merged, and
// full rows cleared.
func dropAndLock(g *tetris.Grid, piece tetris.Piece) *tetris.Grid {
	out := g.Clone()
	for tetris.ValidPlacement(out, piece, 0, 1) {
		piece.Y++
	}
	for x, y := range piece.Cells() {
		if y >= 0 {
			out.Set(x, y, piece.Color)
		}
	}
	out.ClearFullRows()
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
