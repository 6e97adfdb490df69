package ui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/orbiter/orbit"
	"github.com/plus3/orbiter/scenario"
)

// ScenarioWindow is the scenario panel. It draws nothing while the selector
// is hidden and one selectable per preset while it is shown.
type ScenarioWindow struct {
	selector *scenario.Selector
}

func NewScenarioWindow(selector *scenario.Selector) *ScenarioWindow {
	return &ScenarioWindow{selector: selector}
}

func (w *ScenarioWindow) Render() {
	if !w.selector.Visible() {
		return
	}

	open := true
	imgui.SetNextWindowPosV(imgui.NewVec2(320, 120), imgui.CondOnce, imgui.NewVec2(0, 0))
	if imgui.BeginV("Scenarios", &open, imgui.WindowFlagsAlwaysAutoResize) {
		current, hasCurrent := w.selector.Current()
		for i, preset := range w.selector.Presets() {
			selected := hasCurrent && current.Title == preset.Title
			if imgui.SelectableBoolV(preset.Title, selected, imgui.SelectableFlagsNone, imgui.NewVec2(0, 0)) {
				w.selector.Select(i)
			}
			if imgui.IsItemHovered() {
				imgui.SetTooltip(presetTooltip(preset))
			}
		}
	}
	imgui.End()

	if !open {
		w.selector.Hide()
	}
}

func presetTooltip(p scenario.Preset) string {
	return fmt.Sprintf("%s, a = %.0f km, e = %.3f", p.ParentName, orbit.AUToKm(p.SemimajorAxis), p.Eccentricity)
}
