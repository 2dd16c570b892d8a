package main

import (
	"log/slog"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/plus3/blockfall/tetris"
)

const sampleRate = beep.SampleRate(44100)

// clearTones is the pitch played for clearing 1..4 rows at once.
var clearTones = [tetris.MaxLinesPerLock + 1]float64{0, 523.25, 659.25, 783.99, 1046.50}

// Sound plays short tones for engine events. Without a successful Init every
// method is a no-op.
type Sound struct {
	log   *slog.Logger
	ready bool
}

func NewSound(log *slog.Logger) *Sound {
	return &Sound{log: log}
}

func (s *Sound) Init() error {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	s.ready = true
	return nil
}

func (s *Sound) HandleEvent(ev tetris.Event) {
	if !s.ready {
		return
	}

	switch ev.Type {
	case tetris.EventLinesCleared:
		s.play(tone(clearTones[min(ev.Lines, tetris.MaxLinesPerLock)], 80*time.Millisecond))
	case tetris.EventLevelUp:
		s.play(tone(880, 60*time.Millisecond), tone(1320, 120*time.Millisecond))
	case tetris.EventGameOver:
		s.play(tone(392, 150*time.Millisecond), tone(294, 150*time.Millisecond), tone(196, 300*time.Millisecond))
	}
}

func (s *Sound) play(parts ...beep.Streamer) {
	streamers := make([]beep.Streamer, 0, len(parts))
	for _, p := range parts {
		if p == nil {
			s.log.Debug("skipping unplayable tone")
			continue
		}
		streamers = append(streamers, p)
	}
	if len(streamers) == 0 {
		return
	}
	speaker.Play(beep.Seq(streamers...))
}

// tone returns a sine tone of the given length, or nil when freq is not
// playable.
func tone(freq float64, d time.Duration) beep.Streamer {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return nil
	}
	return beep.Take(sampleRate.N(d), sine)
}
