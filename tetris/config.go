package tetris

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the playfield geometry and the speed curve.
type Config struct {
	Width  int `yaml:"width" json:"width"`
	Height int `yaml:"height" json:"height"`

	// FallIntervalMs is the gravity interval at level 1.
	FallIntervalMs int64 `yaml:"fall_interval_ms" json:"fall_interval_ms"`

	// MinFallIntervalMs floors the interval at high levels.
	MinFallIntervalMs int64 `yaml:"min_fall_interval_ms" json:"min_fall_interval_ms"`

	// FallIntervalStepMs is subtracted from the interval for every level above 1.
	FallIntervalStepMs int64 `yaml:"fall_interval_step_ms" json:"fall_interval_step_ms"`

	LinesPerLevel int `yaml:"lines_per_level" json:"lines_per_level"`
}

// DefaultConfig returns the standard 10x20 field with a 1000ms start
// interval decreasing by 100ms per level down to 100ms, 10 lines per level.
func DefaultConfig() Config {
	return Config{
		Width:              10,
		Height:             20,
		FallIntervalMs:     1000,
		MinFallIntervalMs:  100,
		FallIntervalStepMs: 100,
		LinesPerLevel:      10,
	}
}

// LoadConfig reads a YAML config file. Fields missing from the file keep
// their DefaultConfig values; unknown fields are rejected.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML config data over DefaultConfig and validates it.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the config can drive an engine.
func (c Config) Validate() error {
	if c.Width < MaxShapeSize {
		return &ConfigError{
			Code:    ErrCodeDimension,
			Field:   "width",
			Message: fmt.Sprintf("must be at least %d, got %d", MaxShapeSize, c.Width),
		}
	}
	if c.Height < MaxShapeSize {
		return &ConfigError{
			Code:    ErrCodeDimension,
			Field:   "height",
			Message: fmt.Sprintf("must be at least %d, got %d", MaxShapeSize, c.Height),
		}
	}
	if c.MinFallIntervalMs <= 0 {
		return &ConfigError{
			Code:    ErrCodeInterval,
			Field:   "min_fall_interval_ms",
			Message: fmt.Sprintf("must be positive, got %d", c.MinFallIntervalMs),
		}
	}
	if c.FallIntervalMs < c.MinFallIntervalMs {
		return &ConfigError{
			Code:    ErrCodeInterval,
			Field:   "fall_interval_ms",
			Message: fmt.Sprintf("must be at least min_fall_interval_ms (%d), got %d", c.MinFallIntervalMs, c.FallIntervalMs),
		}
	}
	if c.FallIntervalStepMs < 0 {
		return &ConfigError{
			Code:    ErrCodeInterval,
			Field:   "fall_interval_step_ms",
			Message: fmt.Sprintf("must not be negative, got %d", c.FallIntervalStepMs),
		}
	}
	if c.LinesPerLevel <= 0 {
		return &ConfigError{
			Code:    ErrCodeLevel,
			Field:   "lines_per_level",
			Message: fmt.Sprintf("must be positive, got %d", c.LinesPerLevel),
		}
	}
	return nil
}

// LevelFor returns the level reached after clearing lines in total.
func (c Config) LevelFor(lines int) int {
	return lines/c.LinesPerLevel + 1
}

// IntervalFor returns the gravity interval in milliseconds at level.
func (c Config) IntervalFor(level int) int64 {
	return max(c.MinFallIntervalMs, c.FallIntervalMs-int64(level-1)*c.FallIntervalStepMs)
}
