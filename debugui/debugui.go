// Package debugui provides Dear ImGui windows for inspecting a running game:
// engine state, scheduler timings, and score/level history plots.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/loop"
)

// ImguiItem holds a Dear ImGui render function drawn once per frame.
type ImguiItem struct {
	Render func(frame *loop.Frame)
}

// ImguiInputState tracks whether Dear ImGui is consuming mouse or keyboard
// input. Frontends should skip game keys while WantCaptureKeyboard is set.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem refreshes the input capture state and renders every item. It
// must run between the backend's BeginFrame and EndFrame.
type ImguiSystem struct {
	Items      []ImguiItem
	InputState ImguiInputState
}

// Add appends a render function.
func (s *ImguiSystem) Add(render func(frame *loop.Frame)) {
	s.Items = append(s.Items, ImguiItem{Render: render})
}

func (s *ImguiSystem) Execute(frame *loop.Frame) {
	s.InputState.WantCaptureMouse = imgui.CurrentIO().WantCaptureMouse()
	s.InputState.WantCaptureKeyboard = imgui.CurrentIO().WantCaptureKeyboard()

	for _, item := range s.Items {
		item.Render(frame)
	}
}
