package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPiece(t *testing.T) {
	cases := []struct {
		kind Kind
		x    int
	}{
		{KindI, 3},
		{KindO, 4},
		{KindT, 4},
		{KindL, 4},
		{KindJ, 4},
		{KindS, 4},
		{KindZ, 4},
	}
	for _, tc := range cases {
		p := NewPiece(tc.kind, 10)
		assert.Equal(t, tc.x, p.X, tc.kind.String())
		assert.Equal(t, 0, p.Y, tc.kind.String())
		assert.Equal(t, tc.kind.Color(), p.Color, tc.kind.String())
	}
}

func TestValidPlacement(t *testing.T) {
	g := NewGrid(10, 20)

	t.Run("walls and floor", func(t *testing.T) {
		p := NewPiece(KindI, 10)
		assert.True(t, ValidPlacement(g, p, 0, 0))
		assert.True(t, ValidPlacement(g, p, -3, 0))
		assert.False(t, ValidPlacement(g, p, -4, 0))
		assert.True(t, ValidPlacement(g, p, 3, 0))
		assert.False(t, ValidPlacement(g, p, 4, 0))
		assert.True(t, ValidPlacement(g, p, 0, 19))
		assert.False(t, ValidPlacement(g, p, 0, 20))
	})

	t.Run("cells above the grid are allowed", func(t *testing.T) {
		p := verticalI(0, -3)
		assert.True(t, ValidPlacement(g, p, 0, 0))
		assert.True(t, ValidPlacement(g, p, 0, -10))
	})

	t.Run("occupied cells collide", func(t *testing.T) {
		g := NewGrid(10, 20)
		g.Set(5, 1, KindZ.Color())

		p := NewPiece(KindT, 10) // covers (4..6, 0) and (5, 1)
		assert.False(t, ValidPlacement(g, p, 0, 0))
		assert.True(t, ValidPlacement(g, p, -2, 0))
		assert.True(t, ValidPlacement(g, p, 0, -1))
	})

	t.Run("shape empty cells do not collide", func(t *testing.T) {
		g := NewGrid(10, 20)
		g.Set(4, 1, KindZ.Color())

		p := NewPiece(KindT, 10)
		assert.True(t, ValidPlacement(g, p, 0, 0))
	})
}

func TestSpawner(t *testing.T) {
	t.Run("same seed same sequence", func(t *testing.T) {
		a := NewSpawner(10, NewSeededRand(99))
		b := NewSpawner(10, NewSeededRand(99))
		for i := 0; i < 100; i++ {
			require.Equal(t, a.Spawn(), b.Spawn(), "draw %d", i)
		}
	})

	t.Run("draws every kind", func(t *testing.T) {
		s := NewSpawner(10, NewSeededRand(7))
		var counts [NumKinds]int
		for i := 0; i < 7000; i++ {
			p := s.Spawn()
			require.Less(t, int(p.Kind), NumKinds)
			require.Equal(t, 0, p.Y)
			counts[p.Kind]++
		}
		for k, n := range counts {
			// Uniform selection puts roughly 1000 draws in each bucket.
			assert.Greater(t, n, 800, Kind(k).String())
			assert.Less(t, n, 1200, Kind(k).String())
		}
	})
}
