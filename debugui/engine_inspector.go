package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/AllenDang/cimgui-go/implot"
	"github.com/plus3/blockfall/loop"
	"github.com/plus3/blockfall/tetris"
)

// EngineInspector shows the engine's state, lock statistics, and a plot of
// score and level over the current game.
type EngineInspector struct {
	score  *History
	level  *History
	gameID string
}

func NewEngineInspector(historyFrames int) *EngineInspector {
	return &EngineInspector{
		score: NewHistory(historyFrames),
		level: NewHistory(historyFrames),
	}
}

// Record samples score and level, starting fresh when a new game begins.
func (ei *EngineInspector) Record(engine *tetris.Engine) {
	if engine.GameID() != ei.gameID {
		ei.gameID = engine.GameID()
		ei.score = NewHistory(len(ei.score.samples))
		ei.level = NewHistory(len(ei.level.samples))
	}
	ei.score.Push(float32(engine.Score()))
	ei.level.Push(float32(engine.Level()))
}

func (ei *EngineInspector) Render(frame *loop.Frame) {
	engine := frame.Engine
	ei.Record(engine)

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(360, 310), imgui.CondOnce)

	if !imgui.BeginV("Engine", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	cfg := engine.Config()
	current := engine.Current()

	imgui.Text(fmt.Sprintf("Game: %s", engine.GameID()))
	imgui.Text(fmt.Sprintf("State: %s", engine.State()))
	imgui.Text(fmt.Sprintf("Grid: %dx%d", cfg.Width, cfg.Height))
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Score: %d", engine.Score()))
	imgui.Text(fmt.Sprintf("Level: %d  Lines: %d", engine.Level(), engine.Lines()))
	imgui.Text(fmt.Sprintf("Fall Interval: %d ms", engine.FallInterval()))
	imgui.Separator()
	imgui.Text(fmt.Sprintf("Current: %s at (%d, %d) %s", current.Kind, current.X, current.Y, current.Shape))
	imgui.Text(fmt.Sprintf("Next: %s", engine.Next().Kind))

	stats := engine.Stats()
	if imgui.TreeNodeStr("Lock Statistics") {
		imgui.Text(fmt.Sprintf("Locks: %d  Hard Drops: %d", stats.Locks, stats.HardDrops))

		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("PieceTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Piece")
			imgui.TableSetupColumn("Spawned")
			imgui.TableHeadersRow()

			for kind := range tetris.Kinds() {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(kind.String())
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", stats.Pieces[kind]))
			}

			imgui.EndTable()
		}

		if imgui.BeginTableV("ClearTable", 2, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("Rows Cleared")
			imgui.TableSetupColumn("Locks")
			imgui.TableHeadersRow()

			for rows, count := range stats.Clears {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", rows))
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", count))
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("Score History") {
		if score := ei.score.Samples(); len(score) > 0 {
			if implot.BeginPlotV("Score", imgui.NewVec2(-1, 160), 0) {
				implot.SetupAxesV("Frame", "Score", 0, implot.AxisFlagsAutoFit)
				implot.PlotLineFloatPtrInt("score", &score[0], int32(len(score)))
				implot.EndPlot()
			}
		}
		if level := ei.level.Samples(); len(level) > 0 {
			if implot.BeginPlotV("Level", imgui.NewVec2(-1, 120), 0) {
				implot.SetupAxesV("Frame", "Level", 0, implot.AxisFlagsAutoFit)
				implot.PlotLineFloatPtrInt("level", &level[0], int32(len(level)))
				implot.EndPlot()
			}
		}
		imgui.TreePop()
	}

	imgui.End()
}
