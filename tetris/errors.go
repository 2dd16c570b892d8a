package tetris

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig matches every *ConfigError via errors.Is.
var ErrInvalidConfig = errors.New("invalid engine configuration")

// ConfigErrorCode categorizes configuration failures.
type ConfigErrorCode string

const (
	// ErrCodeDimension indicates a grid width or height that cannot hold a piece.
	ErrCodeDimension ConfigErrorCode = "INVALID_DIMENSION"

	// ErrCodeInterval indicates a non-positive or inverted fall interval range.
	ErrCodeInterval ConfigErrorCode = "INVALID_INTERVAL"

	// ErrCodeLevel indicates a non-positive lines-per-level setting.
	ErrCodeLevel ConfigErrorCode = "INVALID_LEVEL_STEP"

	// ErrCodeShapeTable indicates the built-in shape table failed to parse.
	ErrCodeShapeTable ConfigErrorCode = "INVALID_SHAPE_TABLE"
)

// ConfigError is returned when an Engine cannot be built from its Config.
type ConfigError struct {
	Code    ConfigErrorCode
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Is makes errors.Is(err, ErrInvalidConfig) hold for every ConfigError.
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

// IsConfigError reports whether err wraps a ConfigError with the given code.
func IsConfigError(err error, code ConfigErrorCode) bool {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return ce.Code == code
	}
	return false
}
