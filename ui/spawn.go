package ui

import (
	"github.com/plus3/orbiter/ecs"
	"github.com/plus3/orbiter/scenario"
	"github.com/plus3/orbiter/universe"
)

const altitudeHistorySize = 600

// Overlay is the full set of flight windows.
type Overlay struct {
	Scenarios *ScenarioWindow
	Flight    *FlightWindow
	Messages  *MessageWindow
	Browser   *BodyBrowser
	Inspector *BodyInspector
	Telemetry *TelemetryWindow
}

// SpawnOverlay creates every window as an ImguiItem entity in storage and
// registers the systems that drive them on scheduler.
func SpawnOverlay(storage *ecs.Storage, scheduler *ecs.Scheduler, u *universe.Universe, selector *scenario.Selector, messageTTL float64) *Overlay {
	ecs.NewSingleton[ImguiInputState](storage)
	ecs.NewSingleton(storage, NewAltitudeHistory(altitudeHistorySize))

	browser := NewBodyBrowser(u)
	overlay := &Overlay{
		Scenarios: NewScenarioWindow(selector),
		Flight:    NewFlightWindow(u, selector),
		Messages:  NewMessageWindow(u, messageTTL),
		Browser:   browser,
		Inspector: NewBodyInspector(u, browser),
		Telemetry: NewTelemetryWindow(u, storage),
	}

	storage.Spawn(ImguiItem{Render: overlay.Flight.Render})
	storage.Spawn(ImguiItem{Render: overlay.Browser.Render})
	storage.Spawn(ImguiItem{Render: overlay.Inspector.Render})
	storage.Spawn(ImguiItem{Render: overlay.Telemetry.Render})
	storage.Spawn(ImguiItem{Render: overlay.Messages.Render})
	storage.Spawn(ImguiItem{Render: overlay.Scenarios.Render})

	scheduler.Register(&TelemetrySystem{Universe: u})
	scheduler.Register(&ImguiSystem{})
	return overlay
}
