package main

import (
	"flag"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	debugui_ebiten "github.com/plus3/blockfall/debugui/ebiten"
	"github.com/plus3/blockfall/tetris"
)

const (
	ScreenWidth  = 1280
	ScreenHeight = 720
	CellSize     = 28
)

func main() {
	configPath := flag.String("config", "", "Path to a YAML game config. Defaults are used when empty.")
	seed := flag.Uint64("seed", 0, "Piece sequence seed. 0 picks a random seed.")
	autoplayOn := flag.Bool("autoplay", false, "Start with the autoplayer enabled.")
	debug := flag.Bool("debug", false, "Show the Dear ImGui debug windows.")
	verbose := flag.Bool("v", false, "Enable debug logging.")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(log)

	cfg := tetris.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = tetris.LoadConfig(*configPath)
		if err != nil {
			log.Error("failed to load config", "path", *configPath, "error", err)
			os.Exit(1)
		}
	}

	opts := []tetris.Option{tetris.WithLogger(log)}
	if *seed != 0 {
		opts = append(opts, tetris.WithRand(tetris.NewSeededRand(*seed)))
	}
	engine, err := tetris.New(cfg, opts...)
	if err != nil {
		log.Error("failed to create engine", "error", err)
		os.Exit(1)
	}

	var imguiBackend *debugui_ebiten.ImguiBackend
	if *debug {
		imguiBackend = debugui_ebiten.NewImguiBackend("Blockfall", ScreenWidth, ScreenHeight)
	} else {
		ebiten.SetWindowSize(ScreenWidth, ScreenHeight)
		ebiten.SetWindowTitle("Blockfall")
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	game := NewGame(engine, imguiBackend, *autoplayOn)
	if err := ebiten.RunGame(game); err != nil {
		log.Error("game exited", "error", err)
		os.Exit(1)
	}
}
