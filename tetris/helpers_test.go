package tetris

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newTestEngine returns a seeded default engine with quiet logging and
// predictable game ids.
func newTestEngine(t *testing.T) *Engine {
	t.Helper()

	e, err := NewSeeded(DefaultConfig(), 1,
		WithLogger(discardLogger()),
		WithIDGenerator(NewFixedIDs("game-1", "game-2", "game-3")),
	)
	require.NoError(t, err)
	return e
}

// fillRows writes rows bottom-aligned into the grid. '.' is empty, a kind
// letter is a locked cell of that kind.
func fillRows(t *testing.T, g *Grid, rows ...string) {
	t.Helper()

	top := g.Height() - len(rows)
	for i, row := range rows {
		require.Len(t, row, g.Width(), "row %d", i)
		for x, ch := range row {
			if ch == '.' {
				g.Set(x, top+i, Empty)
				continue
			}
			k, err := ParseKind(string(ch))
			require.NoError(t, err)
			g.Set(x, top+i, k.Color())
		}
	}
}

func repeatRow(row string, n int) []string {
	rows := make([]string, n)
	for i := range rows {
		rows[i] = row
	}
	return rows
}

// setCurrent replaces the active piece with a fresh piece of kind at spawn.
func (e *Engine) setCurrent(kind Kind) {
	e.current = NewPiece(kind, e.cfg.Width)
}

func (e *Engine) setNext(kind Kind) {
	e.next = NewPiece(kind, e.cfg.Width)
}

// verticalI returns an I piece stood upright in column x at row y.
func verticalI(x, y int) Piece {
	p := NewPiece(KindI, 10)
	p.Shape = p.Shape.Rotate()
	p.X, p.Y = x, y
	return p
}

// requireConsistent checks the invariants every reachable state satisfies.
func requireConsistent(t *testing.T, e *Engine) {
	t.Helper()

	if e.state != GameOver {
		require.True(t, ValidPlacement(e.grid, e.current, 0, 0),
			"active piece %s at (%d,%d) collides", e.current.Kind, e.current.X, e.current.Y)
	}
	require.GreaterOrEqual(t, e.score, 0)
	require.Equal(t, e.cfg.LevelFor(e.lines), e.level)
	require.Equal(t, e.cfg.IntervalFor(e.level), e.fallInterval)
	require.GreaterOrEqual(t, e.fallInterval, e.cfg.MinFallIntervalMs)
	for _, c := range e.grid.cells {
		_, ok := c.Kind()
		require.True(t, c == Empty || ok, "invalid color %d in grid", c)
	}
}
