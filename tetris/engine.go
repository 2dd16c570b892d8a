// Package tetris implements a falling-block puzzle engine.
//
// The Engine owns the playfield, the active and upcoming piece, score, level
// and gravity timing. It performs no I/O and keeps no clock of its own: a
// driving loop supplies monotonic millisecond timestamps to Tick and forwards
// player inputs to the movement operations. The Engine is not safe for
// concurrent use; the caller serializes every call.
package tetris

import (
	"log/slog"
	"math/rand/v2"
)

// State is the engine's position in its lifecycle.
type State uint8

const (
	Running State = iota
	Paused
	GameOver
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Paused:
		return "paused"
	case GameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Stats counts what happened during the current game.
type Stats struct {
	Pieces    [NumKinds]int
	Clears    [MaxLinesPerLock + 1]int
	Locks     int
	HardDrops int
}

// Engine is a single game of falling blocks.
type Engine struct {
	cfg     Config
	log     *slog.Logger
	ids     IDGenerator
	spawner *Spawner

	grid    *Grid
	current Piece
	next    Piece

	score        int
	level        int
	lines        int
	fallInterval int64
	lastFall     int64
	state        State
	gameID       string

	stats  Stats
	events []Event
}

// Option configures runtime collaborators of an Engine.
type Option func(*Engine)

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(log *slog.Logger) Option {
	return func(e *Engine) {
		e.log = log
	}
}

// WithRand sets the random source used for piece selection.
func WithRand(rng *rand.Rand) Option {
	return func(e *Engine) {
		e.spawner = NewSpawner(e.cfg.Width, rng)
	}
}

// WithIDGenerator sets the generator for per-game ids. Defaults to UUIDv7.
func WithIDGenerator(ids IDGenerator) Option {
	return func(e *Engine) {
		e.ids = ids
	}
}

// New validates cfg and returns an engine in the Running state at time 0.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if shapeTableErr != nil {
		return nil, &ConfigError{Code: ErrCodeShapeTable, Message: shapeTableErr.Error()}
	}

	e := &Engine{
		cfg:  cfg,
		log:  slog.Default(),
		ids:  UUIDv7Generator{},
		grid: NewGrid(cfg.Width, cfg.Height),
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.spawner == nil {
		e.spawner = NewSpawner(cfg.Width, rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())))
	}

	e.Reset(0)
	return e, nil
}

// NewSeeded returns an engine whose piece sequence is fully determined by seed.
func NewSeeded(cfg Config, seed uint64, opts ...Option) (*Engine, error) {
	return New(cfg, append([]Option{WithRand(NewSeededRand(seed))}, opts...)...)
}

// Reset discards the current game and starts a new one at time now.
func (e *Engine) Reset(now int64) {
	e.grid.Reset()
	e.score = 0
	e.level = 1
	e.lines = 0
	e.fallInterval = e.cfg.IntervalFor(1)
	e.lastFall = now
	e.state = Running
	e.stats = Stats{}
	e.gameID = e.ids.Generate()

	e.next = e.spawner.Spawn()
	e.promoteNext()

	e.emit(Event{Type: EventReset})
	e.log.Info("game started", "game", e.gameID, "width", e.cfg.Width, "height", e.cfg.Height)
}

// TryMove shifts the active piece by (dx, dy) if the destination is free.
// It reports whether the piece moved.
func (e *Engine) TryMove(dx, dy int) bool {
	if e.state != Running {
		return false
	}
	if !ValidPlacement(e.grid, e.current, dx, dy) {
		return false
	}
	e.current.X += dx
	e.current.Y += dy
	return true
}

func (e *Engine) MoveLeft() bool  { return e.TryMove(-1, 0) }
func (e *Engine) MoveRight() bool { return e.TryMove(1, 0) }
func (e *Engine) SoftDrop() bool  { return e.TryMove(0, 1) }

// Rotate turns the active piece clockwise in place. A rotation that would
// collide is discarded and the piece is left untouched.
func (e *Engine) Rotate() bool {
	if e.state != Running {
		return false
	}
	candidate := e.current
	candidate.Shape = e.current.Shape.Rotate()
	if !ValidPlacement(e.grid, candidate, 0, 0) {
		return false
	}
	e.current = candidate
	return true
}

// HardDrop drops the active piece as far as it goes and locks it in the same
// call. It returns the number of rows the piece fell.
func (e *Engine) HardDrop() int {
	if e.state != Running {
		return 0
	}
	rows := 0
	for rows < e.grid.Height() && ValidPlacement(e.grid, e.current, 0, 1) {
		e.current.Y++
		rows++
	}
	e.stats.HardDrops++
	e.lock()
	return rows
}

// Tick applies gravity. When more than the fall interval has elapsed since
// the last gravity step, the piece moves down one row or locks, and the fall
// timer restarts at now.
func (e *Engine) Tick(now int64) {
	if e.state != Running {
		return
	}
	if now-e.lastFall <= e.fallInterval {
		return
	}

	if ValidPlacement(e.grid, e.current, 0, 1) {
		e.current.Y++
	} else {
		e.lock()
	}
	e.lastFall = now
}

// TogglePause suspends or resumes the game. Resuming restarts the fall timer
// at now so paused time does not count toward gravity.
func (e *Engine) TogglePause(now int64) {
	switch e.state {
	case Running:
		e.state = Paused
		e.log.Debug("game paused", "game", e.gameID)
	case Paused:
		e.state = Running
		e.lastFall = now
		e.log.Debug("game resumed", "game", e.gameID)
	}
}

// Apply dispatches an input to its operation. While the game is over only
// InputReset has an effect. It reports whether the state changed.
func (e *Engine) Apply(in Input, now int64) bool {
	if e.state == GameOver && in != InputReset {
		return false
	}

	switch in {
	case InputMoveLeft:
		return e.MoveLeft()
	case InputMoveRight:
		return e.MoveRight()
	case InputSoftDrop:
		return e.SoftDrop()
	case InputRotate:
		return e.Rotate()
	case InputHardDrop:
		if e.state != Running {
			return false
		}
		e.HardDrop()
		return true
	case InputReset:
		e.Reset(now)
		return true
	case InputPause:
		e.TogglePause(now)
		return true
	default:
		return false
	}
}

// lock merges the active piece, clears rows, updates score and speed, and
// spawns the next piece.
func (e *Engine) lock() {
	for x, y := range e.current.Cells() {
		if y >= 0 {
			e.grid.Set(x, y, e.current.Color)
		}
	}
	e.stats.Locks++
	e.emit(Event{Type: EventLocked, Kind: e.current.Kind})

	cleared := e.grid.ClearFullRows()
	if cleared > MaxLinesPerLock {
		e.log.Warn("lock cleared more rows than a tetromino spans",
			"game", e.gameID,
			"cleared", cleared,
		)
	}
	e.stats.Clears[min(cleared, MaxLinesPerLock)]++

	if cleared > 0 {
		e.score += LineScore(cleared)
		e.lines += cleared
		e.emit(Event{Type: EventLinesCleared, Lines: cleared, Score: e.score})

		if level := e.cfg.LevelFor(e.lines); level != e.level {
			e.level = level
			e.fallInterval = e.cfg.IntervalFor(level)
			e.emit(Event{Type: EventLevelUp, Level: level})
			e.log.Info("level up",
				"game", e.gameID,
				"level", level,
				"fall_interval_ms", e.fallInterval,
			)
		}
	}

	e.log.Debug("piece locked",
		"game", e.gameID,
		"kind", e.current.Kind,
		"x", e.current.X,
		"y", e.current.Y,
		"cleared", cleared,
	)

	e.promoteNext()
}

// promoteNext makes the preview piece active and draws a new preview. A
// piece that does not fit at spawn ends the game.
func (e *Engine) promoteNext() {
	e.current = e.next
	e.next = e.spawner.Spawn()
	e.stats.Pieces[e.current.Kind]++

	if !ValidPlacement(e.grid, e.current, 0, 0) {
		e.state = GameOver
		e.emit(Event{Type: EventGameOver, Score: e.score, Level: e.level, Lines: e.lines})
		e.log.Info("game over",
			"game", e.gameID,
			"score", e.score,
			"level", e.level,
			"lines", e.lines,
		)
	}
}

func (e *Engine) emit(ev Event) {
	if len(e.events) >= maxPendingEvents {
		e.events = e.events[1:]
	}
	e.events = append(e.events, ev)
}

// DrainEvents returns the events recorded since the last call and empties
// the buffer.
func (e *Engine) DrainEvents() []Event {
	events := e.events
	e.events = nil
	return events
}

func (e *Engine) Config() Config      { return e.cfg }
func (e *Engine) State() State        { return e.state }
func (e *Engine) Score() int          { return e.score }
func (e *Engine) Level() int          { return e.level }
func (e *Engine) Lines() int          { return e.lines }
func (e *Engine) FallInterval() int64 { return e.fallInterval }
func (e *Engine) GameID() string      { return e.gameID }
func (e *Engine) Stats() Stats        { return e.stats }

// IsGameOver reports whether the game has ended.
func (e *Engine) IsGameOver() bool { return e.state == GameOver }

// Current returns a copy of the active piece.
func (e *Engine) Current() Piece { return e.current }

// Next returns a copy of the preview piece.
func (e *Engine) Next() Piece { return e.next }
