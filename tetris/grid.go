package tetris

// Color is the content of a grid cell. Empty is the zero value; any other
// value is the color id of the piece that occupied the cell.
type Color uint8

// Empty marks an unoccupied cell.
const Empty Color = 0

// Kind returns the piece kind that owns this color, or false for Empty and
// unknown ids.
func (c Color) Kind() (Kind, bool) {
	if c == Empty || int(c) > NumKinds {
		return 0, false
	}
	return Kind(c - 1), true
}

// Grid is a fixed-size playfield stored row-major. Row 0 is the top row.
type Grid struct {
	width  int
	height int
	cells  []Color
}

// NewGrid allocates an empty grid. Callers validate dimensions beforehand;
// see Config.Validate.
func NewGrid(width, height int) *Grid {
	return &Grid{
		width:  width,
		height: height,
		cells:  make([]Color, width*height),
	}
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// Contains reports whether (x, y) lies inside the grid.
func (g *Grid) Contains(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// At returns the cell at (x, y), or Empty when out of bounds.
func (g *Grid) At(x, y int) Color {
	if !g.Contains(x, y) {
		return Empty
	}
	return g.cells[y*g.width+x]
}

// Set writes a cell. Out-of-bounds writes are ignored.
func (g *Grid) Set(x, y int, c Color) {
	if !g.Contains(x, y) {
		return
	}
	g.cells[y*g.width+x] = c
}

// Occupied reports whether (x, y) is inside the grid and non-empty.
func (g *Grid) Occupied(x, y int) bool {
	return g.At(x, y) != Empty
}

// Row returns a copy of row y.
func (g *Grid) Row(y int) []Color {
	row := make([]Color, g.width)
	copy(row, g.cells[y*g.width:(y+1)*g.width])
	return row
}

// RowFull reports whether every column of row y is occupied.
func (g *Grid) RowFull(y int) bool {
	for _, c := range g.cells[y*g.width : (y+1)*g.width] {
		if c == Empty {
			return false
		}
	}
	return true
}

// FullRows returns the indices of all full rows, top to bottom.
func (g *Grid) FullRows() []int {
	var rows []int
	for y := 0; y < g.height; y++ {
		if g.RowFull(y) {
			rows = append(rows, y)
		}
	}
	return rows
}

// ClearFullRows deletes every full row, shifts the rows above it down and
// fills the top with empty rows. Surviving rows keep their relative order.
// It returns the number of rows removed.
func (g *Grid) ClearFullRows() int {
	dst := g.height - 1
	for y := g.height - 1; y >= 0; y-- {
		if g.RowFull(y) {
			continue
		}
		if dst != y {
			copy(g.cells[dst*g.width:(dst+1)*g.width], g.cells[y*g.width:(y+1)*g.width])
		}
		dst--
	}

	cleared := dst + 1
	clear(g.cells[:cleared*g.width])
	return cleared
}

// Count returns the number of occupied cells.
func (g *Grid) Count() int {
	n := 0
	for _, c := range g.cells {
		if c != Empty {
			n++
		}
	}
	return n
}

// Reset empties every cell in place.
func (g *Grid) Reset() {
	clear(g.cells)
}

// Clone returns a deep copy.
func (g *Grid) Clone() *Grid {
	out := &Grid{
		width:  g.width,
		height: g.height,
		cells:  make([]Color, len(g.cells)),
	}
	copy(out.cells, g.cells)
	return out
}

// Equal reports whether both grids have the same dimensions and contents.
func (g *Grid) Equal(other *Grid) bool {
	if g.width != other.width || g.height != other.height {
		return false
	}
	for i, c := range g.cells {
		if other.cells[i] != c {
			return false
		}
	}
	return true
}
