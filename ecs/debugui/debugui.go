// Package debugui draws Dear ImGui windows for inspecting a running world.
// Windows are ImguiItem entities; ImguiSystem queues their render functions
// each tick so they run after the tick's systems, inside the host's ImGui
// frame.
package debugui

import (
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/heep/ecs"
)

// ImguiItem holds a render function called once per tick.
type ImguiItem struct {
	Render func()
}

// ImguiInputState mirrors whether ImGui wants the mouse or keyboard this
// frame. Input systems should ignore keys while WantCaptureKeyboard is set.
type ImguiInputState struct {
	WantCaptureMouse    bool
	WantCaptureKeyboard bool
}

// ImguiSystem refreshes ImguiInputState and defers every ImguiItem render.
type ImguiSystem struct {
	Items      ecs.Query[struct{ *ImguiItem }]
	InputState ecs.Singleton[ImguiInputState]
}

func (i *ImguiSystem) Execute(frame *ecs.UpdateFrame) {
	if state := i.InputState.Get(); state != nil {
		io := imgui.CurrentIO()
		state.WantCaptureMouse = io.WantCaptureMouse()
		state.WantCaptureKeyboard = io.WantCaptureKeyboard()
	}

	for item := range i.Items.Values() {
		frame.Commands.Defer(item.Render)
	}
}
