package debugui

import (
	"io"
	"log/slog"
	"testing"

	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/tetris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistory(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		h := NewHistory(4)
		assert.Equal(t, 0, h.Len())
		assert.Empty(t, h.Samples())
		assert.Zero(t, h.Last())
		assert.Zero(t, h.Max())
		assert.Zero(t, h.Mean())
	})

	t.Run("partial", func(t *testing.T) {
		h := NewHistory(4)
		h.Push(1)
		h.Push(3)
		assert.Equal(t, 2, h.Len())
		assert.Equal(t, []float32{1, 3}, h.Samples())
		assert.Equal(t, float32(3), h.Last())
		assert.Equal(t, float32(2), h.Mean())
	})

	t.Run("wraps oldest first", func(t *testing.T) {
		h := NewHistory(3)
		for _, v := range []float32{1, 2, 3, 4, 5} {
			h.Push(v)
		}
		assert.Equal(t, 3, h.Len())
		assert.Equal(t, []float32{3, 4, 5}, h.Samples())
		assert.Equal(t, float32(5), h.Last())
		assert.Equal(t, float32(5), h.Max())
	})

	t.Run("max of negatives", func(t *testing.T) {
		h := NewHistory(2)
		h.Push(-3)
		h.Push(-1)
		assert.Equal(t, float32(-1), h.Max())
	})
}

func TestEngineInspectorRecord(t *testing.T) {
	engine, err := tetris.NewSeeded(tetris.DefaultConfig(), 3,
		tetris.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		tetris.WithIDGenerator(tetris.NewFixedIDs("first", "second")),
	)
	require.NoError(t, err)

	ei := NewEngineInspector(8)
	ei.Record(engine)
	ei.Record(engine)
	assert.Equal(t, 2, ei.score.Len())
	assert.Equal(t, float32(1), ei.level.Last())

	engine.Reset(10)
	ei.Record(engine)
	assert.Equal(t, 1, ei.score.Len(), "history restarts with a new game")
}

func TestPerformanceStatsRecord(t *testing.T) {
	engine, err := tetris.NewSeeded(tetris.DefaultConfig(), 3,
		tetris.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	require.NoError(t, err)

	scheduler := loop.NewScheduler(engine)
	scheduler.Register(&loop.GravitySystem{})
	ps := NewPerformanceStats(scheduler, 16)

	for now := int64(0); now < 5; now++ {
		scheduler.Once(now * 16)
		ps.Record(&loop.Frame{Now: now * 16, Delta: 16, Engine: engine})
	}

	assert.Equal(t, 5, ps.frameHistory.Len())
	assert.Equal(t, float32(16), ps.frameHistory.Mean())
	require.Contains(t, ps.systemLatency, "GravitySystem")
	assert.Equal(t, 5, ps.systemLatency["GravitySystem"].Len())
}
