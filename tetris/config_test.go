package tetris

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineScore(t *testing.T) {
	assert.Equal(t, 0, LineScore(0))
	assert.Equal(t, 100, LineScore(1))
	assert.Equal(t, 300, LineScore(2))
	assert.Equal(t, 500, LineScore(3))
	assert.Equal(t, 800, LineScore(4))

	assert.Equal(t, 800, LineScore(5))
	assert.Equal(t, 0, LineScore(-1))
}

func TestSpeedCurve(t *testing.T) {
	cfg := DefaultConfig()

	cases := []struct {
		lines    int
		level    int
		interval int64
	}{
		{0, 1, 1000},
		{9, 1, 1000},
		{10, 2, 900},
		{45, 5, 600},
		{95, 10, 100},
		{100, 11, 100},
		{1000, 101, 100},
	}
	for _, tc := range cases {
		level := cfg.LevelFor(tc.lines)
		assert.Equal(t, tc.level, level, "lines=%d", tc.lines)
		assert.Equal(t, tc.interval, cfg.IntervalFor(level), "lines=%d", tc.lines)
	}

	prev := cfg.IntervalFor(1)
	for level := 2; level < 200; level++ {
		cur := cfg.IntervalFor(level)
		assert.LessOrEqual(t, cur, prev)
		assert.GreaterOrEqual(t, cur, int64(100))
		prev = cur
	}
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	cases := []struct {
		name   string
		mutate func(*Config)
		code   ConfigErrorCode
	}{
		{"zero width", func(c *Config) { c.Width = 0 }, ErrCodeDimension},
		{"narrow", func(c *Config) { c.Width = 3 }, ErrCodeDimension},
		{"negative height", func(c *Config) { c.Height = -20 }, ErrCodeDimension},
		{"zero floor", func(c *Config) { c.MinFallIntervalMs = 0 }, ErrCodeInterval},
		{"inverted range", func(c *Config) { c.FallIntervalMs = 50 }, ErrCodeInterval},
		{"negative step", func(c *Config) { c.FallIntervalStepMs = -1 }, ErrCodeInterval},
		{"zero lines per level", func(c *Config) { c.LinesPerLevel = 0 }, ErrCodeLevel},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig))
			assert.True(t, IsConfigError(err, tc.code))

			e, err := New(cfg, WithLogger(discardLogger()))
			assert.Nil(t, e)
			assert.True(t, IsConfigError(err, tc.code))
		})
	}
}

func TestParseConfig(t *testing.T) {
	t.Run("overrides defaults", func(t *testing.T) {
		cfg, err := ParseConfig([]byte("width: 12\nlines_per_level: 5\n"))
		require.NoError(t, err)
		assert.Equal(t, 12, cfg.Width)
		assert.Equal(t, 20, cfg.Height)
		assert.Equal(t, 5, cfg.LinesPerLevel)
		assert.Equal(t, int64(1000), cfg.FallIntervalMs)
	})

	t.Run("rejects unknown fields", func(t *testing.T) {
		_, err := ParseConfig([]byte("widht: 12\n"))
		assert.ErrorContains(t, err, "failed to parse config")
	})

	t.Run("validates", func(t *testing.T) {
		_, err := ParseConfig([]byte("height: 2\n"))
		assert.ErrorIs(t, err, ErrInvalidConfig)
	})

	t.Run("loads from file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "blockfall.yaml")
		require.NoError(t, os.WriteFile(path, []byte("fall_interval_ms: 800\n"), 0o644))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, int64(800), cfg.FallIntervalMs)
		assert.Equal(t, int64(700), cfg.IntervalFor(2))
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.ErrorContains(t, err, "failed to read config file")
	})
}
