package sim

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testOptions() Options {
	opts := DefaultOptions()
	opts.Games = 3
	opts.MaxPieces = 60
	opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	opts.IDs = tetris.NewFixedIDs("g0", "g1", "g2")
	return opts
}

func sumValues[K comparable](t *testing.T, forEach func(func(K, int) bool)) int {
	t.Helper()
	total := 0
	forEach(func(_ K, v int) bool {
		total += v
		return true
	})
	return total
}

func TestRun(t *testing.T) {
	summary, err := Run(context.Background(), testOptions())
	require.NoError(t, err)
	require.Len(t, summary.Games, 3)

	locks := 0
	for i, g := range summary.Games {
		assert.Equal(t, i, g.Index)
		assert.Equal(t, uint64(1+i), g.Seed)
		assert.Equal(t, g.Stats.Locks, g.Pieces)
		assert.True(t, g.ToppedOut || g.Pieces == 60, "game %d stopped early", i)
		locks += g.Pieces
	}
	assert.Equal(t, []string{"g0", "g1", "g2"},
		[]string{summary.Games[0].GameID, summary.Games[1].GameID, summary.Games[2].GameID})

	assert.Equal(t, locks, sumValues(t, summary.ClearsPerLock.ForEach))
	assert.Equal(t, 3, sumValues(t, summary.FinalLevels.ForEach))
	assert.GreaterOrEqual(t, sumValues(t, summary.PiecesPerKind.ForEach), locks)

	assert.Len(t, summary.GameTime.Samples, 3)
	assert.LessOrEqual(t, summary.GameTime.Min, summary.GameTime.Max)

	best, ok := summary.Best()
	require.True(t, ok)
	for _, g := range summary.Games {
		assert.LessOrEqual(t, g.Score, best.Score)
	}
}

func TestRunIsReproducible(t *testing.T) {
	first, err := Run(context.Background(), testOptions())
	require.NoError(t, err)
	second, err := Run(context.Background(), testOptions())
	require.NoError(t, err)

	for i := range first.Games {
		assert.Equal(t, first.Games[i].Score, second.Games[i].Score)
		assert.Equal(t, first.Games[i].Lines, second.Games[i].Lines)
		assert.Equal(t, first.Games[i].Stats, second.Games[i].Stats)
	}
}

func TestRunErrors(t *testing.T) {
	t.Run("no games", func(t *testing.T) {
		opts := testOptions()
		opts.Games = 0
		_, err := Run(context.Background(), opts)
		assert.Error(t, err)
	})

	t.Run("invalid config", func(t *testing.T) {
		opts := testOptions()
		opts.Config.Width = 2
		_, err := Run(context.Background(), opts)
		assert.ErrorIs(t, err, tetris.ErrInvalidConfig)
	})

	t.Run("cancelled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		summary, err := Run(ctx, testOptions())
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, summary.Games)
	})
}

func TestStatsFinalize(t *testing.T) {
	s := Stats{Samples: []time.Duration{3, 1, 2}}
	s.Finalize()
	assert.Equal(t, time.Duration(1), s.Min)
	assert.Equal(t, time.Duration(3), s.Max)
	assert.Equal(t, time.Duration(2), s.Avg)

	empty := Stats{}
	empty.Finalize()
	assert.Zero(t, empty.Avg)
}
