// Package loop drives a tetris.Engine: it runs an ordered list of systems
// once per frame, serializes every call into the engine, and keeps
// per-system timing statistics.
package loop

import (
	"context"
	"reflect"
	"time"

	"github.com/plus3/blockfall/tetris"
)

// SchedulerStats provides statistics about scheduler execution.
type SchedulerStats struct {
	SystemCount     int
	Frames          int64
	InputsApplied   int64
	TotalExecutions int64
	Systems         []SystemStats
}

// SystemStats provides execution statistics for a single system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type systemStatsInternal struct {
	name           string
	executionCount int64
	minDuration    time.Duration
	maxDuration    time.Duration
	totalDuration  time.Duration
	lastDuration   time.Duration
}

// Scheduler manages and executes systems in order against one engine.
type Scheduler struct {
	engine      *tetris.Engine
	systems     []System
	systemStats []*systemStatsInternal
	inputs      *InputQueue

	lastNow       int64
	frames        int64
	inputsApplied int64
}

// NewScheduler creates a new scheduler driving engine.
func NewScheduler(engine *tetris.Engine) *Scheduler {
	return &Scheduler{
		engine:  engine,
		systems: make([]System, 0),
		inputs:  &InputQueue{},
	}
}

// Engine returns the engine driven by this scheduler.
func (s *Scheduler) Engine() *tetris.Engine {
	return s.engine
}

// Register appends a system; systems run in registration order.
func (s *Scheduler) Register(system System) {
	s.systems = append(s.systems, system)

	systemType := reflect.TypeOf(system)
	if systemType.Kind() == reflect.Ptr {
		systemType = systemType.Elem()
	}

	s.systemStats = append(s.systemStats, &systemStatsInternal{
		name:        systemType.Name(),
		minDuration: time.Duration(1<<63 - 1),
	})
}

// Once executes all registered systems for the frame at time now (ms), then
// applies the inputs they queued.
func (s *Scheduler) Once(now int64) {
	var delta int64
	if s.frames > 0 {
		delta = now - s.lastNow
	}
	frame := newFrame(now, delta, s.engine, s.inputs)

	for i, system := range s.systems {
		start := time.Now()
		system.Execute(frame)
		duration := time.Since(start)

		stats := s.systemStats[i]
		stats.executionCount++
		stats.lastDuration = duration
		stats.totalDuration += duration

		if duration < stats.minDuration {
			stats.minDuration = duration
		}
		if duration > stats.maxDuration {
			stats.maxDuration = duration
		}
	}

	s.inputsApplied += int64(frame.Inputs.Flush(s.engine, now))
	s.lastNow = now
	s.frames++
}

// Run executes all systems at the given interval, reading frame times from
// clock, until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration, clock Clock) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Once(clock.Now())
		}
	}
}

// Stats returns statistics about system execution.
func (s *Scheduler) Stats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount:   len(s.systems),
		Frames:        s.frames,
		InputsApplied: s.inputsApplied,
		Systems:       make([]SystemStats, len(s.systemStats)),
	}

	var totalExecs int64
	for i, internal := range s.systemStats {
		avgDuration := time.Duration(0)
		if internal.executionCount > 0 {
			avgDuration = internal.totalDuration / time.Duration(internal.executionCount)
		}

		stats.Systems[i] = SystemStats{
			Name:           internal.name,
			ExecutionCount: internal.executionCount,
			MinDuration:    internal.minDuration,
			MaxDuration:    internal.maxDuration,
			AvgDuration:    avgDuration,
			LastDuration:   internal.lastDuration,
			TotalDuration:  internal.totalDuration,
		}
		totalExecs += internal.executionCount
	}

	stats.TotalExecutions = totalExecs
	return stats
}
