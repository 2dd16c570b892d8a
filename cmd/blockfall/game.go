package main

import (
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/blockfall/debugui"
	debugui_ebiten "github.com/plus3/blockfall/debugui/ebiten"
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/tetris"
)

// Held keys repeat after repeatDelay ticks, then every repeatRate ticks.
const (
	repeatDelay = 12
	repeatRate  = 3
)

var keyBindings = map[ebiten.Key]tetris.Input{
	ebiten.KeyLeft:  tetris.InputMoveLeft,
	ebiten.KeyRight: tetris.InputMoveRight,
	ebiten.KeyDown:  tetris.InputSoftDrop,
	ebiten.KeyUp:    tetris.InputRotate,
	ebiten.KeySpace: tetris.InputHardDrop,
	ebiten.KeyR:     tetris.InputReset,
	ebiten.KeyP:     tetris.InputPause,
}

var repeatingKeys = map[ebiten.Key]bool{
	ebiten.KeyLeft:  true,
	ebiten.KeyRight: true,
	ebiten.KeyDown:  true,
}

// Game implements ebiten.Game on top of a loop.Scheduler.
type Game struct {
	Engine    *tetris.Engine
	Scheduler *loop.Scheduler
	Autoplay  *loop.AutoplaySystem

	clock        *loop.MonotonicClock
	inputs       chan tetris.Input
	imgui        *debugui.ImguiSystem
	imguiBackend *debugui_ebiten.ImguiBackend
	renderer     *Renderer
}

// NewGame wires the systems for engine. imguiBackend may be nil to run
// without the debug overlay.
func NewGame(engine *tetris.Engine, imguiBackend *debugui_ebiten.ImguiBackend, autoplayOn bool) *Game {
	g := &Game{
		Engine:       engine,
		Scheduler:    loop.NewScheduler(engine),
		Autoplay:     loop.NewAutoplaySystem(50),
		clock:        loop.NewMonotonicClock(),
		inputs:       make(chan tetris.Input, 64),
		imguiBackend: imguiBackend,
		renderer:     NewRenderer(CellSize),
	}
	g.Autoplay.Enabled = autoplayOn

	g.Scheduler.Register(&loop.InputSystem{Source: g.inputs})
	g.Scheduler.Register(g.Autoplay)
	g.Scheduler.Register(&loop.GravitySystem{})
	g.Scheduler.Register(&loop.EventSystem{Handle: g.renderer.HandleEvent})

	if imguiBackend != nil {
		g.imgui = &debugui.ImguiSystem{}
		g.imgui.Add(debugui.NewEngineInspector(600).Render)
		g.imgui.Add(debugui.NewPerformanceStats(g.Scheduler, 120).Render)
		g.Scheduler.Register(g.imgui)
	}

	return g
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	if g.imguiBackend != nil {
		g.imguiBackend.BeginFrame()
	}

	if g.imgui == nil || !g.imgui.InputState.WantCaptureKeyboard {
		g.pollKeys()
	}

	g.Scheduler.Once(g.clock.Now())

	if g.imguiBackend != nil {
		g.imguiBackend.EndFrame()
	}
	return nil
}

func (g *Game) pollKeys() {
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		g.Autoplay.Enabled = !g.Autoplay.Enabled
		slog.Info("autoplay toggled", "enabled", g.Autoplay.Enabled)
	}

	for key, in := range keyBindings {
		if keyTriggered(key, repeatingKeys[key]) {
			g.send(in)
		}
	}
}

func (g *Game) send(in tetris.Input) {
	select {
	case g.inputs <- in:
	default:
		slog.Warn("input dropped, queue full", "input", in)
	}
}

func keyTriggered(key ebiten.Key, repeats bool) bool {
	if inpututil.IsKeyJustPressed(key) {
		return true
	}
	if !repeats {
		return false
	}
	d := inpututil.KeyPressDuration(key)
	return d >= repeatDelay && (d-repeatDelay)%repeatRate == 0
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen, g.Engine.Snapshot(), g.Autoplay.Enabled)

	if g.imguiBackend != nil {
		g.imguiBackend.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imguiBackend != nil {
		g.imguiBackend.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
