package tetris

import (
	"iter"
	"math/rand/v2"
)

// Piece is a tetromino placed in grid coordinates. X and Y locate the
// top-left corner of the shape buffer; Y may be negative above the grid.
type Piece struct {
	Kind  Kind
	Shape Shape
	Color Color
	X, Y  int
}

// NewPiece returns a piece of the given kind at its spawn position for a
// grid of the given width: horizontally centered, top row.
func NewPiece(kind Kind, width int) Piece {
	shape := ShapeOf(kind)
	return Piece{
		Kind:  kind,
		Shape: shape,
		Color: kind.Color(),
		X:     width/2 - shape.Cols/2,
		Y:     0,
	}
}

// Cells yields the absolute (x, y) of every occupied cell.
func (p Piece) Cells() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for r, c := range p.Shape.Cells() {
			if !yield(p.X+c, p.Y+r) {
				return
			}
		}
	}
}

// Occupies reports whether the piece covers the absolute cell (x, y).
func (p Piece) Occupies(x, y int) bool {
	return p.Shape.Filled(y-p.Y, x-p.X)
}

// ValidPlacement reports whether piece, shifted by (dx, dy), fits the grid:
// every occupied cell is within the side walls, above the floor, and not on
// top of an occupied grid cell. Cells above the grid (y < 0) never collide
// with grid contents.
func ValidPlacement(grid *Grid, piece Piece, dx, dy int) bool {
	for x, y := range piece.Cells() {
		x += dx
		y += dy

		if x < 0 || x >= grid.Width() || y >= grid.Height() {
			return false
		}

		if y >= 0 && grid.Occupied(x, y) {
			return false
		}
	}
	return true
}

// Spawner produces new pieces by uniform random choice over the seven kinds.
type Spawner struct {
	rng   *rand.Rand
	width int
}

// NewSpawner creates a spawner for a grid of the given width using rng as
// its only source of randomness.
func NewSpawner(width int, rng *rand.Rand) *Spawner {
	return &Spawner{rng: rng, width: width}
}

// NewSeededRand returns a deterministic source for the given seed.
func NewSeededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Spawn returns a fresh piece at the spawn position.
func (s *Spawner) Spawn() Piece {
	return NewPiece(Kind(s.rng.IntN(NumKinds)), s.width)
}
