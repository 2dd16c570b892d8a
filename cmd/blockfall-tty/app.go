package main

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/tetris"
)

// App runs the terminal frontend: tcell events feed the input system and a
// ticker drives the scheduler and redraws.
type App struct {
	engine    *tetris.Engine
	screen    tcell.Screen
	scheduler *loop.Scheduler
	autoplay  *loop.AutoplaySystem
	board     *BoardView
	inputs    chan tetris.Input
	clock     loop.Clock
}

func NewApp(engine *tetris.Engine, screen tcell.Screen, sound *Sound, autoplayOn bool) *App {
	a := &App{
		engine:    engine,
		screen:    screen,
		scheduler: loop.NewScheduler(engine),
		autoplay:  loop.NewAutoplaySystem(60),
		board:     NewBoardView(),
		inputs:    make(chan tetris.Input, 64),
		clock:     loop.NewMonotonicClock(),
	}
	a.autoplay.Enabled = autoplayOn

	a.scheduler.Register(&loop.InputSystem{Source: a.inputs})
	a.scheduler.Register(a.autoplay)
	a.scheduler.Register(&loop.GravitySystem{})
	a.scheduler.Register(&loop.EventSystem{Handle: func(ev tetris.Event) {
		a.board.HandleEvent(ev)
		sound.HandleEvent(ev)
	}})

	return a
}

// Run blocks until the context is cancelled or the player quits.
func (a *App) Run(ctx context.Context) {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := a.screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	a.draw()
	for {
		select {
		case <-ctx.Done():
			return
		case ev := <-eventChan:
			if !a.handleEvent(ev) {
				return
			}
		case <-ticker.C:
			a.scheduler.Once(a.clock.Now())
			a.draw()
		}
	}
}

// handleEvent reports false when the player asked to quit.
func (a *App) handleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch action := translateKey(ev); action.kind {
		case actionQuit:
			return false
		case actionAutoplay:
			a.autoplay.Enabled = !a.autoplay.Enabled
		case actionInput:
			select {
			case a.inputs <- action.input:
			default:
			}
		}
	case *tcell.EventResize:
		a.screen.Sync()
	}
	return true
}

func (a *App) draw() {
	a.board.Draw(a.screen, a.engine.Snapshot(), a.autoplay.Enabled)
	a.screen.Show()
}
