package scenario

import (
	"log/slog"
	"slices"

	"github.com/plus3/orbiter/universe"
)

// Host is the game side of the selector.
type Host interface {
	// OnSelectScenario calls fn with the body to move and returns its result.
	OnSelectScenario(fn func(*universe.CelestialBody) bool) bool
	SendMessage(text string)
	SetThrottle(throttle float64)
	ResetTime()
}

// Selector is the state behind the scenario panel: whether it is open and
// what happens when a preset is clicked.
type Selector struct {
	presets []Preset
	finder  BodyFinder
	host    Host
	logger  *slog.Logger

	visible bool
	current int
}

type Option func(*Selector)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Selector) {
		s.logger = logger
	}
}

// StartVisible opens the panel from the start.
func StartVisible() Option {
	return func(s *Selector) {
		s.visible = true
	}
}

// NewSelector builds a closed selector over presets.
func NewSelector(presets []Preset, finder BodyFinder, host Host, opts ...Option) *Selector {
	s := &Selector{
		presets: slices.Clone(presets),
		finder:  finder,
		host:    host,
		logger:  slog.Default(),
		current: -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Selector) Visible() bool { return s.visible }
func (s *Selector) Show()         { s.visible = true }
func (s *Selector) Hide()         { s.visible = false }
func (s *Selector) Toggle()       { s.visible = !s.visible }

// Presets returns a copy of the preset list.
func (s *Selector) Presets() []Preset {
	return slices.Clone(s.presets)
}

// Select applies preset index to the host's body. On success it announces
// the scenario, zeroes the throttle, restarts the clock and closes the panel.
// On failure nothing changes and the panel stays open.
func (s *Selector) Select(index int) bool {
	if index < 0 || index >= len(s.presets) {
		return false
	}
	preset := s.presets[index]

	applied := s.host.OnSelectScenario(func(body *universe.CelestialBody) bool {
		return preset.Apply(body, s.finder)
	})
	if !applied {
		s.logger.Debug("scenario not applied", "title", preset.Title, "parent", preset.ParentName)
		return false
	}

	s.host.SendMessage("Scenario " + preset.Title + " loaded")
	s.host.SetThrottle(0)
	s.host.ResetTime()
	s.current = index
	s.Hide()

	s.logger.Info("scenario applied",
		"title", preset.Title,
		"parent", preset.ParentName,
		"semimajor_axis_au", preset.SemimajorAxis,
		"eccentricity", preset.Eccentricity)
	return true
}

// SelectTitle is Select by preset title.
func (s *Selector) SelectTitle(title string) bool {
	idx := slices.IndexFunc(s.presets, func(p Preset) bool { return p.Title == title })
	return s.Select(idx)
}

// Current returns the last preset applied, if any.
func (s *Selector) Current() (Preset, bool) {
	if s.current < 0 {
		return Preset{}, false
	}
	return s.presets[s.current], true
}
