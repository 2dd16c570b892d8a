package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/blockfall/tetris"
)

const frameInterval = 16 * time.Millisecond

func main() {
	configPath := flag.String("config", "", "Path to a YAML game config. Defaults are used when empty.")
	seed := flag.Uint64("seed", 0, "Piece sequence seed. 0 picks a random seed.")
	autoplayOn := flag.Bool("autoplay", false, "Start with the autoplayer enabled.")
	mute := flag.Bool("mute", false, "Disable sound.")
	logPath := flag.String("log", "", "Write logs to this file. Logging is off when empty.")
	flag.Parse()

	log := slog.New(slog.DiscardHandler)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			slog.Error("failed to open log file", "path", *logPath, "error", err)
			os.Exit(1)
		}
		defer f.Close()
		log = slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	cfg := tetris.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = tetris.LoadConfig(*configPath)
		if err != nil {
			slog.Error("failed to load config", "path", *configPath, "error", err)
			os.Exit(1)
		}
	}

	opts := []tetris.Option{tetris.WithLogger(log)}
	if *seed != 0 {
		opts = append(opts, tetris.WithRand(tetris.NewSeededRand(*seed)))
	}
	engine, err := tetris.New(cfg, opts...)
	if err != nil {
		slog.Error("failed to create engine", "error", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		slog.Error("failed to create screen", "error", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		slog.Error("failed to initialize screen", "error", err)
		os.Exit(1)
	}

	sound := NewSound(log)
	if !*mute {
		if err := sound.Init(); err != nil {
			// Non-fatal, the game runs without sound
			log.Warn("audio initialization failed", "error", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := NewApp(engine, screen, sound, *autoplayOn)
	app.Run(ctx)
	screen.Fini()
}
