package ui

import (
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/orbiter/ecs"
	"github.com/plus3/orbiter/orbit"
	"github.com/plus3/orbiter/scenario"
	"github.com/plus3/orbiter/universe"
)

// FlightWindow holds the pilot controls and readouts for the controlled vessel.
type FlightWindow struct {
	universe *universe.Universe
	selector *scenario.Selector
	rng      *rand.Rand
}

func NewFlightWindow(u *universe.Universe, selector *scenario.Selector) *FlightWindow {
	return &FlightWindow{
		universe: u,
		selector: selector,
		rng:      rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
	}
}

func (w *FlightWindow) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(300, 360), imgui.CondOnce)
	if !imgui.BeginV("Flight", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if imgui.Button("Scenarios") {
		w.selector.Toggle()
	}
	imgui.SameLine()
	w.renderPause()

	w.renderTimeScale()
	imgui.Separator()
	w.renderVesselPicker()

	vessel := w.universe.Selected()
	if vessel == nil {
		imgui.Text("No vessel")
		imgui.End()
		return
	}

	throttle := float32(w.universe.Throttle() * 100)
	if imgui.SliderFloatV("Throttle", &throttle, 0, 100, "%.0f%%", imgui.SliderFlagsNone) {
		w.universe.SetThrottle(float64(throttle) / 100)
	}
	if imgui.Button("Kill rotation") {
		w.universe.KillRotation()
	}

	imgui.SeparatorText("Propulsion")
	imgui.Text(fmt.Sprintf("Delta-v: %.3f km/s", orbit.AUToKm(vessel.Propulsion.TotalDeltaV)))
	imgui.Text(fmt.Sprintf("Ignitions: %d", vessel.Propulsion.IgnitionCount))

	imgui.SeparatorText("Orbit of " + vessel.Parent.Name)
	parent := w.universe.Body(vessel.Parent.Id)
	imgui.Text(fmt.Sprintf("Altitude: %.0f km", orbit.AUToKm(vessel.Altitude(parent))))
	imgui.Text(fmt.Sprintf("Speed: %.3f km/s", orbit.AUToKm(vessel.Velocity.Len())))
	imgui.Text(fmt.Sprintf("Periapsis: %s", formatDistance(vessel.Elements.Periapsis())))
	imgui.Text(fmt.Sprintf("Apoapsis: %s", formatDistance(vessel.Elements.Apoapsis())))
	imgui.Text(fmt.Sprintf("Eccentricity: %.4f", vessel.Eccentricity))
	imgui.Text(fmt.Sprintf("Inclination: %.2f deg", orbit.ToDeg(vessel.Inclination)))
	imgui.Text(fmt.Sprintf("Period: %s", formatPeriod(vessel.Elements.Period(vessel.Parent.GM))))

	imgui.End()
}

func (w *FlightWindow) renderPause() {
	if w.universe.Paused() {
		imgui.PushStyleColorVec4(imgui.ColButton, imgui.NewVec4(0.2, 0.7, 0.2, 1.0))
		if imgui.Button("Resume") {
			w.universe.SetPaused(false)
		}
		imgui.PopStyleColor()
		imgui.SameLine()
		imgui.TextColored(imgui.NewVec4(1.0, 0.8, 0.0, 1.0), "PAUSED")
		return
	}
	imgui.PushStyleColorVec4(imgui.ColButton, imgui.NewVec4(0.7, 0.2, 0.2, 1.0))
	if imgui.Button("Pause") {
		w.universe.SetPaused(true)
	}
	imgui.PopStyleColor()
}

func (w *FlightWindow) renderTimeScale() {
	imgui.Text(fmt.Sprintf("T+%s  x%g", formatPeriod(w.universe.SimTime()), w.universe.TimeScale()))
	for i, scale := range universe.TimeScales {
		if i > 0 {
			imgui.SameLine()
		}
		if imgui.RadioButtonBool(fmt.Sprintf("%g##scale", scale), w.universe.TimeScale() == scale) {
			w.universe.SetTimeScale(scale)
		}
	}
}

func (w *FlightWindow) renderVesselPicker() {
	preview := "none"
	if vessel := w.universe.Selected(); vessel != nil {
		preview = vessel.Body.Name
	}
	if imgui.Button("New##vessel") {
		w.launchVessel()
	}
	imgui.SameLine()
	if !imgui.BeginCombo("Vessel", preview) {
		return
	}
	for _, body := range w.universe.Bodies() {
		if !body.IsVessel() {
			continue
		}
		if imgui.SelectableBool(body.Body.Name) {
			w.universe.Select(body.EntityId)
		}
	}
	imgui.EndCombo()
}

// launchVessel spawns a vessel on a random orbit around the parent of the
// current one, earth when nothing is flying, and takes control of it.
func (w *FlightWindow) launchVessel() (ecs.EntityId, error) {
	parent := "earth"
	if vessel := w.universe.Selected(); vessel != nil {
		parent = vessel.Parent.Name
	}
	id, err := w.universe.NewVessel(parent, w.rng)
	if err != nil {
		w.universe.SendMessage("Cannot launch: " + err.Error())
		return 0, err
	}
	w.universe.Select(id)
	w.universe.SendMessage("Launched " + w.universe.Body(id).Body.Name)
	return id, nil
}

// formatDistance renders an AU distance in km, or "escape" for an unbound apoapsis.
func formatDistance(au float64) string {
	if math.IsInf(au, 1) {
		return "escape"
	}
	return fmt.Sprintf("%.0f km", orbit.AUToKm(au))
}

// formatPeriod renders simulated seconds as a duration rounded to the second.
func formatPeriod(seconds float64) string {
	if math.IsInf(seconds, 1) || math.IsNaN(seconds) {
		return "-"
	}
	if seconds > float64(math.MaxInt64/int64(time.Second)) {
		return fmt.Sprintf("%.3g s", seconds)
	}
	return (time.Duration(seconds) * time.Second).String()
}
