package debugui

import (
	"fmt"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/AllenDang/cimgui-go/implot"
	"github.com/plus3/blockfall/loop"
)

// PerformanceStats renders frame times and per-system scheduler timings.
type PerformanceStats struct {
	scheduler     *loop.Scheduler
	historyFrames int
	frameHistory  *History
	systemLatency map[string]*History
}

func NewPerformanceStats(scheduler *loop.Scheduler, historyFrames int) *PerformanceStats {
	return &PerformanceStats{
		scheduler:     scheduler,
		historyFrames: historyFrames,
		frameHistory:  NewHistory(historyFrames),
		systemLatency: make(map[string]*History),
	}
}

// Record samples the frame delta and the latest system durations.
func (ps *PerformanceStats) Record(frame *loop.Frame) {
	if frame.Delta > 0 {
		ps.frameHistory.Push(float32(frame.Delta))
	}

	for _, sys := range ps.scheduler.Stats().Systems {
		h := ps.systemLatency[sys.Name]
		if h == nil {
			h = NewHistory(ps.historyFrames)
			ps.systemLatency[sys.Name] = h
		}
		h.Push(float32(sys.LastDuration.Microseconds()) / 1000.0)
	}
}

func (ps *PerformanceStats) Render(frame *loop.Frame) {
	ps.Record(frame)

	imgui.SetNextWindowPosV(imgui.NewVec2(10, 330), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(360, 320), imgui.CondOnce)

	if !imgui.BeginV("Performance Stats", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := ps.scheduler.Stats()

	avgFrameTime := ps.frameHistory.Mean()
	fps := float32(0)
	if avgFrameTime > 0 {
		fps = 1000.0 / avgFrameTime
	}

	imgui.Text(fmt.Sprintf("Frames: %d", stats.Frames))
	imgui.Text(fmt.Sprintf("Inputs Applied: %d", stats.InputsApplied))
	imgui.Text(fmt.Sprintf("Avg Frame Time: %.2f ms (%.0f FPS)", avgFrameTime, fps))

	imgui.Separator()
	imgui.Text("Frame Time Graph (ms)")
	if samples := ps.frameHistory.Samples(); len(samples) > 0 {
		imgui.PlotLinesFloatPtr("##frametime", &samples[0], int32(len(samples)))
	}

	if imgui.TreeNodeStr("System Details") {
		const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
		if imgui.BeginTableV("SystemStatsTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
			imgui.TableSetupColumn("System")
			imgui.TableSetupColumn("Runs")
			imgui.TableSetupColumn("Avg")
			imgui.TableSetupColumn("Min")
			imgui.TableSetupColumn("Max")
			imgui.TableHeadersRow()

			for _, sys := range stats.Systems {
				imgui.TableNextRow()
				imgui.TableNextColumn()
				imgui.Text(sys.Name)
				imgui.TableNextColumn()
				imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
				imgui.TableNextColumn()
				imgui.Text(sys.AvgDuration.String())
				imgui.TableNextColumn()
				imgui.Text(sys.MinDuration.String())
				imgui.TableNextColumn()
				imgui.Text(sys.MaxDuration.String())
			}

			imgui.EndTable()
		}
		imgui.TreePop()
	}

	if imgui.TreeNodeStr("System Latency") {
		names := make([]string, 0, len(ps.systemLatency))
		for name := range ps.systemLatency {
			names = append(names, name)
		}
		sort.Strings(names)

		yMax := 1.0
		for _, name := range names {
			if m := float64(ps.systemLatency[name].Max()) * 1.1; m > yMax {
				yMax = m
			}
		}

		if implot.BeginPlotV("System Performance", imgui.NewVec2(-1, 200), 0) {
			implot.SetupAxesV("Frame", "Time (ms)", 0, 0)
			implot.SetupAxisLimitsV(implot.AxisY1, 0, yMax, implot.CondAlways)

			for _, name := range names {
				samples := ps.systemLatency[name].Samples()
				if len(samples) == 0 {
					continue
				}
				implot.PlotLineFloatPtrInt(name, &samples[0], int32(len(samples)))
			}

			implot.EndPlot()
		}
		imgui.TreePop()
	}

	imgui.End()
}
