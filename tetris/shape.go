package tetris

import (
	"fmt"
	"iter"
)

// MaxShapeSize bounds both dimensions of a shape buffer.
const MaxShapeSize = 4

// Kind identifies one of the seven canonical tetrominoes.
type Kind uint8

const (
	KindI Kind = iota
	KindO
	KindT
	KindL
	KindJ
	KindS
	KindZ
)

// NumKinds is the number of canonical tetrominoes.
const NumKinds = 7

var kindNames = [NumKinds]string{"I", "O", "T", "L", "J", "S", "Z"}

func (k Kind) String() string {
	if int(k) >= NumKinds {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// Color returns the fixed color id of the kind. Color ids start at 1 so the
// zero Color can mean an empty cell.
func (k Kind) Color() Color {
	return Color(k + 1)
}

// ParseKind maps a single-letter name to its Kind.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown piece kind %q", s)
}

// Kinds yields every canonical kind in table order.
func Kinds() iter.Seq[Kind] {
	return func(yield func(Kind) bool) {
		for k := range Kind(NumKinds) {
			if !yield(k) {
				return
			}
		}
	}
}

// Shape is a binary occupancy matrix stored in a fixed 4x4 buffer.
// Only the top-left Rows x Cols region is meaningful.
type Shape struct {
	cells [MaxShapeSize][MaxShapeSize]bool
	Rows  int
	Cols  int
}

// NewShape builds a shape from rows of '1' (filled) and '0' (empty) runes.
// All rows must have the same width and the shape must fit in 4x4.
func NewShape(rows ...string) (Shape, error) {
	var s Shape
	if len(rows) == 0 || len(rows) > MaxShapeSize {
		return s, fmt.Errorf("shape has %d rows, want 1..%d", len(rows), MaxShapeSize)
	}

	s.Rows = len(rows)
	s.Cols = len(rows[0])
	if s.Cols == 0 || s.Cols > MaxShapeSize {
		return s, fmt.Errorf("shape has %d columns, want 1..%d", s.Cols, MaxShapeSize)
	}

	for r, row := range rows {
		if len(row) != s.Cols {
			return s, fmt.Errorf("shape row %d has width %d, want %d", r, len(row), s.Cols)
		}
		for c, ch := range row {
			switch ch {
			case '1':
				s.cells[r][c] = true
			case '0':
			default:
				return s, fmt.Errorf("shape row %d: invalid cell %q", r, ch)
			}
		}
	}

	return s, nil
}

// Filled reports whether the local cell (r, c) is occupied.
func (s Shape) Filled(r, c int) bool {
	if r < 0 || r >= s.Rows || c < 0 || c >= s.Cols {
		return false
	}
	return s.cells[r][c]
}

// Count returns the number of occupied cells.
func (s Shape) Count() int {
	n := 0
	for range s.Cells() {
		n++
	}
	return n
}

// Cells yields the (row, col) of every occupied cell, row-major.
func (s Shape) Cells() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for r := 0; r < s.Rows; r++ {
			for c := 0; c < s.Cols; c++ {
				if s.cells[r][c] && !yield(r, c) {
					return
				}
			}
		}
	}
}

// Rotate returns the shape turned 90 degrees clockwise. Rows and Cols swap.
func (s Shape) Rotate() Shape {
	out := Shape{Rows: s.Cols, Cols: s.Rows}
	for r := 0; r < out.Rows; r++ {
		for c := 0; c < out.Cols; c++ {
			out.cells[r][c] = s.cells[s.Rows-1-c][r]
		}
	}
	return out
}

// String renders the shape as rows of '1' and '0' separated by '/'.
func (s Shape) String() string {
	buf := make([]byte, 0, s.Rows*(s.Cols+1))
	for r := 0; r < s.Rows; r++ {
		if r > 0 {
			buf = append(buf, '/')
		}
		for c := 0; c < s.Cols; c++ {
			if s.cells[r][c] {
				buf = append(buf, '1')
			} else {
				buf = append(buf, '0')
			}
		}
	}
	return string(buf)
}

var shapeTable = [NumKinds][]string{
	KindI: {"1111"},
	KindO: {"11", "11"},
	KindT: {"111", "010"},
	KindL: {"111", "100"},
	KindJ: {"111", "001"},
	KindS: {"110", "011"},
	KindZ: {"011", "110"},
}

var canonicalShapes, shapeTableErr = buildShapes(shapeTable)

// buildShapes parses a shape table and checks every entry is a tetromino.
func buildShapes(table [NumKinds][]string) ([NumKinds]Shape, error) {
	var shapes [NumKinds]Shape
	for k, rows := range table {
		s, err := NewShape(rows...)
		if err != nil {
			return shapes, fmt.Errorf("shape %s: %w", Kind(k), err)
		}
		if n := s.Count(); n != 4 {
			return shapes, fmt.Errorf("shape %s: has %d cells, want 4", Kind(k), n)
		}
		shapes[k] = s
	}
	return shapes, nil
}

// ShapeOf returns the spawn orientation of a kind.
func ShapeOf(k Kind) Shape {
	return canonicalShapes[k]
}
