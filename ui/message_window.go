package ui

import (
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/orbiter/universe"
)

// MessageWindow lists live messages, newest last, fading them as they age.
type MessageWindow struct {
	universe *universe.Universe
	ttl      float64
}

func NewMessageWindow(u *universe.Universe, ttl float64) *MessageWindow {
	return &MessageWindow{universe: u, ttl: ttl}
}

func (w *MessageWindow) Render() {
	messages := w.universe.Messages()
	if len(messages) == 0 {
		return
	}

	const flags = imgui.WindowFlagsNoTitleBar | imgui.WindowFlagsAlwaysAutoResize | imgui.WindowFlagsNoFocusOnAppearing
	display := imgui.CurrentIO().DisplaySize()
	imgui.SetNextWindowPosV(imgui.NewVec2(10, display.Y-10), imgui.CondAlways, imgui.NewVec2(0, 1))
	if imgui.BeginV("Messages", nil, flags) {
		for _, msg := range messages {
			imgui.TextColored(imgui.NewVec4(1, 1, 1, messageAlpha(msg.Age, w.ttl)), msg.Text)
		}
	}
	imgui.End()
}

// messageAlpha is fully opaque for the first half of a message's life and
// fades linearly to zero at ttl.
func messageAlpha(age, ttl float64) float32 {
	if ttl <= 0 {
		return 1
	}
	remaining := (ttl - age) / (ttl / 2)
	return float32(min(max(remaining, 0), 1))
}
