package main

import (
	"io"
	"math"
	"strconv"
	"text/template"
	"time"

	"github.com/plus3/orbiter/ecs"
	"github.com/plus3/orbiter/orbit"
	"github.com/plus3/orbiter/universe"
)

// OrbitSnapshot is a vessel's orbit at one instant. Distances are km.
type OrbitSnapshot struct {
	Parent       string
	SemimajorKm  float64
	Eccentricity float64
	PeriapsisKm  float64
	ApoapsisKm   float64
	Inclination  float64 // degrees
	Energy       float64
}

func snapshot(body *universe.CelestialBody) OrbitSnapshot {
	return OrbitSnapshot{
		Parent:       body.Parent.Name,
		SemimajorKm:  orbit.AUToKm(body.SemimajorAxis),
		Eccentricity: body.Eccentricity,
		PeriapsisKm:  orbit.AUToKm(body.Elements.Periapsis()),
		ApoapsisKm:   orbit.AUToKm(body.Elements.Apoapsis()),
		Inclination:  orbit.ToDeg(body.Inclination),
		Energy:       body.Energy(),
	}
}

type Report struct {
	// Configuration
	Scenario  string
	Vessel    string
	TimeScale float64

	// Results
	Ticks      int64
	SimTime    time.Duration
	TotalTime  time.Duration
	Start      OrbitSnapshot
	End        OrbitSnapshot
	UpdateTime Stats
	Systems    []ecs.SystemStats
	Messages   []string

	startTime time.Time
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		s.Min = min(s.Min, sample)
		s.Max = max(s.Max, sample)
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

// NewReport records the starting state of u's selected vessel.
func NewReport(u *universe.Universe, scenarioTitle string) *Report {
	vessel := u.Selected()
	r := &Report{
		Scenario:  scenarioTitle,
		Vessel:    vessel.Body.Name,
		TimeScale: u.TimeScale(),
		Start:     snapshot(vessel),
		startTime: time.Now(),
	}
	if r.Scenario == "" {
		r.Scenario = "(catalog start)"
	}
	return r
}

// Finish records the final state. The vessel may have changed parent since
// NewReport, so energy drift is only meaningful when Start.Parent == End.Parent.
func (r *Report) Finish(u *universe.Universe) {
	r.TotalTime = time.Since(r.startTime)
	r.Ticks = u.Ticks()
	r.SimTime = time.Duration(u.SimTime() * float64(time.Second))
	if vessel := u.Selected(); vessel != nil {
		r.End = snapshot(vessel)
	}
	r.UpdateTime.Finalize()
	r.Systems = u.Scheduler().GetStats().Systems
	for _, msg := range u.Messages() {
		r.Messages = append(r.Messages, msg.Text)
	}
}

// EnergyDrift is the relative change in specific orbital energy.
func (r *Report) EnergyDrift() float64 {
	if r.Start.Parent != r.End.Parent || r.Start.Energy == 0 {
		return math.NaN()
	}
	return (r.End.Energy - r.Start.Energy) / math.Abs(r.Start.Energy)
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Flight Report

## Configuration
- **Scenario:** {{.Scenario}}
- **Vessel:** {{.Vessel}}
- **Time Scale:** x{{.TimeScale}}

## Orbit
| | Parent | a (km) | e | Periapsis (km) | Apoapsis (km) | i (deg) |
|---|---|---|---|---|---|---|
| Start | {{.Start.Parent}} | {{km .Start.SemimajorKm}} | {{printf "%.5f" .Start.Eccentricity}} | {{km .Start.PeriapsisKm}} | {{km .Start.ApoapsisKm}} | {{printf "%.2f" .Start.Inclination}} |
| End | {{.End.Parent}} | {{km .End.SemimajorKm}} | {{printf "%.5f" .End.Eccentricity}} | {{km .End.PeriapsisKm}} | {{km .End.ApoapsisKm}} | {{printf "%.2f" .End.Inclination}} |

- **Energy Drift:** {{drift .EnergyDrift}}

## Run
- **Ticks:** {{.Ticks}}
- **Simulated Time:** {{.SimTime}}
- **Wall Time:** {{.TotalTime}}
{{- if .UpdateTime.Samples}}
- **Step Time:** avg {{.UpdateTime.Avg}}, min {{.UpdateTime.Min}}, max {{.UpdateTime.Max}}
{{- end}}

## Systems
{{range .Systems}}- {{.Name}}: {{.ExecutionCount}} runs, avg {{.AvgDuration}}, max {{.MaxDuration}}
{{end}}
{{- if .Messages}}
## Messages
{{range .Messages}}- {{.}}
{{end}}
{{- end}}`

	fm := template.FuncMap{
		"km": func(v float64) string {
			if math.IsInf(v, 1) {
				return "escape"
			}
			return strconv.FormatFloat(v, 'f', 0, 64)
		},
		"drift": func(v float64) string {
			if math.IsNaN(v) {
				return "n/a (parent changed)"
			}
			return strconv.FormatFloat(v, 'e', 3, 64)
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
