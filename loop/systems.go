package loop

import (
	"github.com/plus3/blockfall/autoplay"
	"github.com/plus3/blockfall/tetris"
)

// GravitySystem advances the engine's fall timer every frame.
type GravitySystem struct{}

func (s *GravitySystem) Execute(frame *Frame) {
	frame.Engine.Tick(frame.Now)
}

// InputSystem drains player inputs from Source without blocking.
type InputSystem struct {
	Source <-chan tetris.Input
}

func (s *InputSystem) Execute(frame *Frame) {
	for {
		select {
		case in, ok := <-s.Source:
			if !ok {
				return
			}
			frame.Inputs.Push(in)
		default:
			return
		}
	}
}

// AutoplaySystem plays the game with the autoplay heuristic, issuing one
// input every StepMs milliseconds. It replans whenever a piece locks.
type AutoplaySystem struct {
	Enabled bool
	Weights autoplay.Weights
	StepMs  int64

	plan      []tetris.Input
	planLocks int
	lastStep  int64
}

// NewAutoplaySystem returns an enabled autoplayer with default weights.
func NewAutoplaySystem(stepMs int64) *AutoplaySystem {
	return &AutoplaySystem{
		Enabled: true,
		Weights: autoplay.DefaultWeights,
		StepMs:  stepMs,
	}
}

func (s *AutoplaySystem) Execute(frame *Frame) {
	if !s.Enabled || frame.Engine.State() != tetris.Running {
		s.plan = nil
		return
	}

	locks := frame.Engine.Stats().Locks
	if len(s.plan) == 0 || locks != s.planLocks {
		s.plan = autoplay.Plan(frame.Engine.Snapshot(), s.Weights)
		s.planLocks = locks
	}

	if len(s.plan) == 0 || frame.Now-s.lastStep < s.StepMs {
		return
	}
	frame.Inputs.Push(s.plan[0])
	s.plan = s.plan[1:]
	s.lastStep = frame.Now
}

// EventSystem hands every engine event to Handle, in order.
type EventSystem struct {
	Handle func(tetris.Event)
}

func (s *EventSystem) Execute(frame *Frame) {
	for _, ev := range frame.Engine.DrainEvents() {
		if s.Handle != nil {
			s.Handle(ev)
		}
	}
}
