package loop

import "github.com/plus3/blockfall/tetris"

// System is one step of the per-frame update. Systems can keep their own
// state between frames.
type System interface {
	Execute(frame *Frame)
}

// Frame is passed to every system during one scheduler pass.
type Frame struct {
	// Now is the monotonic time of this frame in milliseconds.
	Now int64

	// Delta is the time since the previous frame in milliseconds; 0 on the
	// first frame.
	Delta int64

	Engine *tetris.Engine
	Inputs *InputQueue
}

func newFrame(now, delta int64, engine *tetris.Engine, inputs *InputQueue) *Frame {
	return &Frame{
		Now:    now,
		Delta:  delta,
		Engine: engine,
		Inputs: inputs,
	}
}

// InputQueue buffers inputs queued by systems during a frame. The scheduler
// applies them to the engine in order once every system has run.
type InputQueue struct {
	inputs []tetris.Input
}

// Push queues inputs in order.
func (q *InputQueue) Push(inputs ...tetris.Input) {
	q.inputs = append(q.inputs, inputs...)
}

// Len returns the number of queued inputs.
func (q *InputQueue) Len() int {
	return len(q.inputs)
}

// Flush applies queued inputs to engine at time now, resetting the buffer.
// It returns how many inputs changed the engine state.
func (q *InputQueue) Flush(engine *tetris.Engine, now int64) int {
	applied := 0
	for _, in := range q.inputs {
		if engine.Apply(in, now) {
			applied++
		}
	}
	q.inputs = q.inputs[:0]
	return applied
}
