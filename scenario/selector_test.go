package scenario_test

import (
	"log/slog"
	"testing"

	"github.com/plus3/orbiter/orbit"
	"github.com/plus3/orbiter/scenario"
	"github.com/plus3/orbiter/universe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingHost wraps a Universe and counts what the selector asks of it.
type recordingHost struct {
	*universe.Universe
	body     *universe.CelestialBody
	calls    int
	messages []string
	throttle []float64
	resets   int
}

func (h *recordingHost) OnSelectScenario(fn func(*universe.CelestialBody) bool) bool {
	h.calls++
	return fn(h.body)
}

func (h *recordingHost) SendMessage(text string) {
	h.messages = append(h.messages, text)
	h.Universe.SendMessage(text)
}

func (h *recordingHost) SetThrottle(throttle float64) {
	h.throttle = append(h.throttle, throttle)
	h.Universe.SetThrottle(throttle)
}

func (h *recordingHost) ResetTime() {
	h.resets++
	h.Universe.ResetTime()
}

var testPresets = []scenario.Preset{
	{Title: "Earth orbit", ParentName: "earth", SemimajorAxis: orbit.KmToAU(10000)},
	{Title: "Pluto orbit", ParentName: "pluto", SemimajorAxis: orbit.KmToAU(3000)},
}

func newSelector(t *testing.T) (*scenario.Selector, *recordingHost) {
	t.Helper()
	u := newUniverse(t)
	host := &recordingHost{Universe: u, body: u.Selected()}
	selector := scenario.NewSelector(testPresets, u, host, scenario.WithLogger(slog.New(slog.DiscardHandler)))
	return selector, host
}

func TestSelectorVisibility(t *testing.T) {
	selector, _ := newSelector(t)
	assert.False(t, selector.Visible())

	selector.Toggle()
	assert.True(t, selector.Visible())
	selector.Toggle()
	assert.False(t, selector.Visible())

	selector.Show()
	assert.True(t, selector.Visible())
	selector.Hide()
	assert.False(t, selector.Visible())

	u := newUniverse(t)
	assert.True(t, scenario.NewSelector(nil, u, u, scenario.StartVisible()).Visible())
}

func TestSelectorSuccessSideEffects(t *testing.T) {
	selector, host := newSelector(t)
	host.SetTimeScale(10)
	host.SetThrottle(0.7)
	host.Step(1)
	require.Equal(t, 10.0, host.SimTime())
	host.throttle = nil

	selector.Show()
	require.True(t, selector.Select(0))

	assert.Equal(t, 1, host.calls)
	assert.Equal(t, []string{"Scenario Earth orbit loaded"}, host.messages)
	assert.Equal(t, []float64{0}, host.throttle)
	assert.Equal(t, 1, host.resets)

	assert.Equal(t, 0.0, host.Throttle())
	assert.Equal(t, 0.0, host.SimTime())
	messages := host.Messages()
	require.NotEmpty(t, messages)
	assert.Equal(t, "Scenario Earth orbit loaded", messages[len(messages)-1].Text)

	assert.False(t, selector.Visible())
	current, ok := selector.Current()
	require.True(t, ok)
	assert.Equal(t, "Earth orbit", current.Title)
}

func TestSelectorMissingParentKeepsPanelOpen(t *testing.T) {
	selector, host := newSelector(t)
	selector.Show()
	before := *host.body.Kinematics

	assert.False(t, selector.Select(1))

	assert.Equal(t, 1, host.calls)
	assert.True(t, selector.Visible())
	assert.Empty(t, host.messages)
	assert.Empty(t, host.throttle)
	assert.Zero(t, host.resets)
	assert.Equal(t, before, *host.body.Kinematics)

	_, ok := selector.Current()
	assert.False(t, ok)
}

func TestSelectorWithoutVessel(t *testing.T) {
	selector, host := newSelector(t)
	host.body = nil
	selector.Show()

	assert.False(t, selector.Select(0))
	assert.True(t, selector.Visible())
	assert.Empty(t, host.messages)
}

func TestSelectorIndexAndTitleLookup(t *testing.T) {
	selector, host := newSelector(t)

	assert.False(t, selector.Select(-1))
	assert.False(t, selector.Select(len(testPresets)))
	assert.False(t, selector.SelectTitle("Saturn orbit"))
	assert.Zero(t, host.calls)

	assert.True(t, selector.SelectTitle("Earth orbit"))
	assert.Equal(t, 1, host.calls)
}

func TestSelectorPresetsAreCopied(t *testing.T) {
	selector, _ := newSelector(t)

	presets := selector.Presets()
	presets[0].ParentName = "pluto"

	assert.Equal(t, "earth", selector.Presets()[0].ParentName)
	assert.Equal(t, "earth", testPresets[0].ParentName)
}
