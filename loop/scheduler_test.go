package loop_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/tetris"
)

func newEngine(t *testing.T) *tetris.Engine {
	t.Helper()

	engine, err := tetris.NewSeeded(tetris.DefaultConfig(), 11,
		tetris.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		tetris.WithIDGenerator(tetris.NewFixedIDs("loop-test")),
	)
	if err != nil {
		t.Fatalf("failed to create engine: %v", err)
	}
	return engine
}

type recordingSystem struct {
	name  string
	order *[]string
	last  *loop.Frame
}

func (s *recordingSystem) Execute(frame *loop.Frame) {
	*s.order = append(*s.order, s.name)
	s.last = frame
}

type pushSystem struct {
	inputs []tetris.Input
}

func (s *pushSystem) Execute(frame *loop.Frame) {
	frame.Inputs.Push(s.inputs...)
}

func TestScheduler(t *testing.T) {
	t.Run("system execution order", func(t *testing.T) {
		scheduler := loop.NewScheduler(newEngine(t))

		var order []string
		first := &recordingSystem{name: "first", order: &order}
		second := &recordingSystem{name: "second", order: &order}
		scheduler.Register(first)
		scheduler.Register(second)

		scheduler.Once(10)
		scheduler.Once(26)

		want := []string{"first", "second", "first", "second"}
		if len(order) != len(want) {
			t.Fatalf("expected %v, got %v", want, order)
		}
		for i := range want {
			if order[i] != want[i] {
				t.Errorf("expected %v, got %v", want, order)
				break
			}
		}

		if second.last.Now != 26 || second.last.Delta != 16 {
			t.Errorf("expected now=26 delta=16, got now=%d delta=%d", second.last.Now, second.last.Delta)
		}
	})

	t.Run("first frame has zero delta", func(t *testing.T) {
		scheduler := loop.NewScheduler(newEngine(t))

		var order []string
		sys := &recordingSystem{name: "only", order: &order}
		scheduler.Register(sys)
		scheduler.Once(500)

		if sys.last.Delta != 0 {
			t.Errorf("expected delta 0 on first frame, got %d", sys.last.Delta)
		}
	})

	t.Run("queued inputs apply after systems run", func(t *testing.T) {
		engine := newEngine(t)
		scheduler := loop.NewScheduler(engine)
		startX := engine.Current().X

		var order []string
		observer := &recordingSystem{name: "observer", order: &order}
		scheduler.Register(&pushSystem{inputs: []tetris.Input{tetris.InputMoveLeft}})
		scheduler.Register(observer)

		scheduler.Once(1)

		if observer.last.Engine.Current().X != startX-1 {
			t.Errorf("expected piece at x=%d after flush, got %d", startX-1, engine.Current().X)
		}
		if observer.last.Inputs.Len() != 0 {
			t.Errorf("expected input queue to be empty after flush, got %d", observer.last.Inputs.Len())
		}
		if got := scheduler.Stats().InputsApplied; got != 1 {
			t.Errorf("expected 1 applied input, got %d", got)
		}
	})

	t.Run("stats", func(t *testing.T) {
		scheduler := loop.NewScheduler(newEngine(t))
		scheduler.Register(&loop.GravitySystem{})
		scheduler.Register(&loop.EventSystem{})

		for i := int64(0); i < 5; i++ {
			scheduler.Once(i * 16)
		}

		stats := scheduler.Stats()
		if stats.SystemCount != 2 {
			t.Errorf("expected 2 systems, got %d", stats.SystemCount)
		}
		if stats.Frames != 5 {
			t.Errorf("expected 5 frames, got %d", stats.Frames)
		}
		if stats.TotalExecutions != 10 {
			t.Errorf("expected 10 executions, got %d", stats.TotalExecutions)
		}
		if stats.Systems[0].Name != "GravitySystem" || stats.Systems[1].Name != "EventSystem" {
			t.Errorf("unexpected system names: %q, %q", stats.Systems[0].Name, stats.Systems[1].Name)
		}
		if stats.Systems[0].MinDuration > stats.Systems[0].MaxDuration {
			t.Error("expected min duration <= max duration")
		}
	})

	t.Run("context cancellation in run", func(t *testing.T) {
		scheduler := loop.NewScheduler(newEngine(t))

		var order []string
		sys := &recordingSystem{name: "tick", order: &order}
		scheduler.Register(sys)

		ctx, cancel := context.WithCancel(context.Background())

		done := make(chan bool)
		go func() {
			scheduler.Run(ctx, 1*time.Millisecond, loop.NewMonotonicClock())
			done <- true
		}()

		time.Sleep(10 * time.Millisecond)
		cancel()

		select {
		case <-done:
		case <-time.After(100 * time.Millisecond):
			t.Fatal("scheduler did not stop after context cancellation")
		}

		if len(order) == 0 {
			t.Error("expected system to execute at least once")
		}
	})
}

func TestManualClock(t *testing.T) {
	clock := loop.NewManualClock(100)
	if clock.Now() != 100 {
		t.Errorf("expected 100, got %d", clock.Now())
	}
	if got := clock.Advance(16); got != 116 {
		t.Errorf("expected 116, got %d", got)
	}
}
