package loop

import (
	"sync/atomic"
	"time"
)

// Clock supplies monotonic frame timestamps in milliseconds.
type Clock interface {
	Now() int64
}

// MonotonicClock measures milliseconds since it was created using the
// runtime's monotonic clock reading.
type MonotonicClock struct {
	start time.Time
}

// NewMonotonicClock creates a clock reading 0 now.
func NewMonotonicClock() *MonotonicClock {
	return &MonotonicClock{start: time.Now()}
}

func (c *MonotonicClock) Now() int64 {
	return time.Since(c.start).Milliseconds()
}

// ManualClock only moves when told to. Safe for concurrent use.
type ManualClock struct {
	now atomic.Int64
}

// NewManualClock creates a clock reading start.
func NewManualClock(start int64) *ManualClock {
	c := &ManualClock{}
	c.now.Store(start)
	return c
}

func (c *ManualClock) Now() int64 {
	return c.now.Load()
}

// Advance moves the clock forward by ms and returns the new reading.
func (c *ManualClock) Advance(ms int64) int64 {
	return c.now.Add(ms)
}
