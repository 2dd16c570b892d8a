// Package sim plays headless games with the autoplayer and aggregates the
// results for batch reports.
package sim

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/kamstrup/intmap"
	"github.com/plus3/blockfall/autoplay"
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/tetris"
)

// framesPerPiece bounds the frames one piece may take before the game is
// abandoned. The autoplayer locks a piece within a few dozen frames.
const framesPerPiece = 4096

// Options configures a batch run.
type Options struct {
	Games     int
	Seed      uint64
	MaxPieces int
	Config    tetris.Config
	Weights   autoplay.Weights
	Logger    *slog.Logger

	// IDs overrides game id generation; nil uses UUIDv7.
	IDs tetris.IDGenerator
}

// DefaultOptions returns a ten game batch on the default board.
func DefaultOptions() Options {
	return Options{
		Games:     10,
		Seed:      1,
		MaxPieces: 500,
		Config:    tetris.DefaultConfig(),
		Weights:   autoplay.DefaultWeights,
	}
}

// GameResult is the outcome of one simulated game.
type GameResult struct {
	Index     int           `json:"index"`
	GameID    string        `json:"game_id"`
	Seed      uint64        `json:"seed"`
	Score     int           `json:"score"`
	Level     int           `json:"level"`
	Lines     int           `json:"lines"`
	Pieces    int           `json:"pieces"`
	ToppedOut bool          `json:"topped_out"`
	Frames    int64         `json:"frames"`
	Duration  time.Duration `json:"duration_ns"`
	Stats     tetris.Stats  `json:"-"`
}

// Summary aggregates a batch of games.
type Summary struct {
	Options Options
	Games   []GameResult
	Elapsed time.Duration

	// ClearsPerLock counts locks by rows cleared (0..4).
	ClearsPerLock *intmap.Map[int, int]
	// PiecesPerKind counts spawned pieces by kind.
	PiecesPerKind *intmap.Map[tetris.Kind, int]
	// FinalLevels counts games by the level they ended on.
	FinalLevels *intmap.Map[int, int]

	GameTime Stats
}

func newSummary(opts Options) *Summary {
	return &Summary{
		Options:       opts,
		Games:         make([]GameResult, 0, opts.Games),
		ClearsPerLock: intmap.New[int, int](tetris.MaxLinesPerLock + 1),
		PiecesPerKind: intmap.New[tetris.Kind, int](tetris.NumKinds),
		FinalLevels:   intmap.New[int, int](16),
		GameTime:      Stats{Samples: make([]time.Duration, 0, opts.Games)},
	}
}

func increment[K intmap.IntKey](m *intmap.Map[K, int], k K, by int) {
	v, _ := m.Get(k)
	m.Put(k, v+by)
}

func (s *Summary) add(r GameResult) {
	s.Games = append(s.Games, r)
	s.GameTime.Samples = append(s.GameTime.Samples, r.Duration)

	for rows, n := range r.Stats.Clears {
		if n > 0 {
			increment(s.ClearsPerLock, rows, n)
		}
	}
	for kind, n := range r.Stats.Pieces {
		if n > 0 {
			increment(s.PiecesPerKind, tetris.Kind(kind), n)
		}
	}
	increment(s.FinalLevels, r.Level, 1)
}

// TotalScore sums the score of every game.
func (s *Summary) TotalScore() int {
	total := 0
	for _, g := range s.Games {
		total += g.Score
	}
	return total
}

// TotalLines sums the lines cleared in every game.
func (s *Summary) TotalLines() int {
	total := 0
	for _, g := range s.Games {
		total += g.Lines
	}
	return total
}

// Best returns the highest scoring game. ok is false for an empty batch.
func (s *Summary) Best() (best GameResult, ok bool) {
	for i, g := range s.Games {
		if i == 0 || g.Score > best.Score {
			best = g
		}
	}
	return best, len(s.Games) > 0
}

// MeanScore returns the average score, or 0 for an empty batch.
func (s *Summary) MeanScore() float64 {
	if len(s.Games) == 0 {
		return 0
	}
	return float64(s.TotalScore()) / float64(len(s.Games))
}

// Run plays opts.Games games in sequence. Game i uses seed opts.Seed+i so a
// batch is reproducible. It stops early with the context's error.
func Run(ctx context.Context, opts Options) (*Summary, error) {
	if opts.Games <= 0 {
		return nil, fmt.Errorf("games must be positive, got %d", opts.Games)
	}
	if opts.MaxPieces <= 0 {
		return nil, fmt.Errorf("max pieces must be positive, got %d", opts.MaxPieces)
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		log = slog.Default()
	}

	summary := newSummary(opts)
	start := time.Now()

	for i := range opts.Games {
		if err := ctx.Err(); err != nil {
			return summary, err
		}

		seed := opts.Seed + uint64(i)
		result, err := PlayGame(ctx, opts, seed)
		if err != nil {
			return summary, fmt.Errorf("game %d: %w", i, err)
		}
		result.Index = i
		summary.add(result)

		log.Debug("game finished",
			"index", i,
			"game", result.GameID,
			"seed", seed,
			"score", result.Score,
			"lines", result.Lines,
			"pieces", result.Pieces,
			"topped_out", result.ToppedOut,
		)
	}

	summary.Elapsed = time.Since(start)
	summary.GameTime.Finalize()
	return summary, nil
}

// PlayGame plays one autoplayed game until it tops out or opts.MaxPieces
// pieces have locked. Time is simulated: each frame advances a manual clock
// by one millisecond.
func PlayGame(ctx context.Context, opts Options, seed uint64) (GameResult, error) {
	engineOpts := []tetris.Option{}
	if opts.Logger != nil {
		engineOpts = append(engineOpts, tetris.WithLogger(opts.Logger))
	}
	if opts.IDs != nil {
		engineOpts = append(engineOpts, tetris.WithIDGenerator(opts.IDs))
	}
	engine, err := tetris.NewSeeded(opts.Config, seed, engineOpts...)
	if err != nil {
		return GameResult{}, err
	}

	auto := loop.NewAutoplaySystem(0)
	auto.Weights = opts.Weights

	scheduler := loop.NewScheduler(engine)
	scheduler.Register(auto)
	scheduler.Register(&loop.GravitySystem{})

	clock := loop.NewManualClock(0)
	maxFrames := int64(opts.MaxPieces+1) * framesPerPiece
	start := time.Now()

	var frames int64
	for engine.Stats().Locks < opts.MaxPieces && !engine.IsGameOver() {
		if frames >= maxFrames {
			return GameResult{}, fmt.Errorf("no progress after %d frames", maxFrames)
		}
		if frames%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return GameResult{}, err
			}
		}
		scheduler.Once(clock.Advance(1))
		frames++
	}

	stats := engine.Stats()
	return GameResult{
		GameID:    engine.GameID(),
		Seed:      seed,
		Score:     engine.Score(),
		Level:     engine.Level(),
		Lines:     engine.Lines(),
		Pieces:    stats.Locks,
		ToppedOut: engine.IsGameOver(),
		Frames:    frames,
		Duration:  time.Since(start),
		Stats:     stats,
	}, nil
}
