package ui

import (
	"fmt"
	"sort"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/AllenDang/cimgui-go/implot"

	"github.com/plus3/orbiter/ecs"
	"github.com/plus3/orbiter/orbit"
	"github.com/plus3/orbiter/universe"
)

// AltitudeHistory is a ring buffer of the controlled vessel's altitude in km.
type AltitudeHistory struct {
	Vessel  ecs.EntityId
	samples []float32
	next    int
	full    bool
}

func NewAltitudeHistory(size int) AltitudeHistory {
	return AltitudeHistory{samples: make([]float32, size)}
}

// Push records a sample, overwriting the oldest once the buffer is full.
func (h *AltitudeHistory) Push(km float32) {
	if len(h.samples) == 0 {
		return
	}
	h.samples[h.next] = km
	h.next = (h.next + 1) % len(h.samples)
	if h.next == 0 {
		h.full = true
	}
}

// Samples returns the recorded samples, oldest first.
func (h *AltitudeHistory) Samples() []float32 {
	if !h.full {
		return append([]float32(nil), h.samples[:h.next]...)
	}
	out := make([]float32, 0, len(h.samples))
	out = append(out, h.samples[h.next:]...)
	return append(out, h.samples[:h.next]...)
}

// Reset clears the buffer and starts tracking vessel.
func (h *AltitudeHistory) Reset(vessel ecs.EntityId) {
	h.Vessel = vessel
	h.next = 0
	h.full = false
}

// TelemetrySystem samples the controlled vessel's altitude whenever
// simulated time has moved.
type TelemetrySystem struct {
	History ecs.Singleton[AltitudeHistory]

	Universe *universe.Universe
	lastTime float64
}

func (s *TelemetrySystem) Execute(frame *ecs.UpdateFrame) {
	vessel := s.Universe.Selected()
	if vessel == nil {
		return
	}

	history := s.History.Get()
	simTime := s.Universe.SimTime()
	if history.Vessel != vessel.EntityId || simTime < s.lastTime {
		history.Reset(vessel.EntityId)
	} else if simTime == s.lastTime {
		return
	}
	s.lastTime = simTime

	parent := s.Universe.Body(vessel.Parent.Id)
	history.Push(float32(orbit.AUToKm(vessel.Altitude(parent))))
}

// TelemetryWindow shows simulation system timings, storage counts and the
// altitude plot.
type TelemetryWindow struct {
	universe *universe.Universe
	storage  *ecs.Storage
}

func NewTelemetryWindow(u *universe.Universe, overlay *ecs.Storage) *TelemetryWindow {
	return &TelemetryWindow{universe: u, storage: overlay}
}

func (w *TelemetryWindow) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(900, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(370, 420), imgui.CondOnce)
	if !imgui.BeginV("Telemetry", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := w.universe.Storage().CollectStats()
	imgui.Text(fmt.Sprintf("Bodies: %d", stats.TotalEntityCount))
	imgui.Text(fmt.Sprintf("Columns: %d", stats.ColumnCount))
	imgui.Text(fmt.Sprintf("Ticks: %d", w.universe.Ticks()))
	imgui.Separator()

	w.renderSystems()

	var history *AltitudeHistory
	if w.storage.ReadSingleton(&history) {
		samples := history.Samples()
		if len(samples) > 0 && implot.BeginPlotV("Altitude", imgui.NewVec2(-1, 200), 0) {
			implot.SetupAxesV("Sample", "km", 0, implot.AxisFlagsAutoFit)
			implot.PlotLineFloatPtrInt("altitude", &samples[0], int32(len(samples)))
			implot.EndPlot()
		}
	}

	imgui.End()
}

func (w *TelemetryWindow) renderSystems() {
	schedStats := w.universe.Scheduler().GetStats()
	systems := schedStats.Systems
	imgui.Text(fmt.Sprintf("Frames: %d", schedStats.Frames))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg | imgui.TableFlagsSortable | imgui.TableFlagsSizingFixedFit
	if !imgui.BeginTableV("Systems", 3, tableFlags, imgui.NewVec2(0, 0), 0) {
		return
	}
	imgui.TableSetupColumn("System")
	imgui.TableSetupColumn("Avg (us)")
	imgui.TableSetupColumn("Max (us)")
	imgui.TableHeadersRow()

	if sortSpecs := imgui.TableGetSortSpecs(); sortSpecs.SpecsCount() > 0 {
		spec := sortSpecs.Specs()
		ascending := spec.SortDirection() == imgui.SortDirectionAscending
		sort.SliceStable(systems, func(i, j int) bool {
			a, b := systems[i], systems[j]
			var less bool
			switch spec.ColumnIndex() {
			case 1:
				less = a.AvgDuration < b.AvgDuration
			case 2:
				less = a.MaxDuration < b.MaxDuration
			default:
				less = a.Name < b.Name
			}
			if !ascending {
				return !less
			}
			return less
		})
	}

	for _, sys := range systems {
		imgui.TableNextRow()
		imgui.TableNextColumn()
		imgui.Text(sys.Name)
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%.1f", float64(sys.AvgDuration.Nanoseconds())/1e3))
		imgui.TableNextColumn()
		imgui.Text(fmt.Sprintf("%.1f", float64(sys.MaxDuration.Nanoseconds())/1e3))
	}
	imgui.EndTable()
}
