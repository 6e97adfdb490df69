package scenario_test

import (
	"log/slog"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/orbiter/config"
	"github.com/plus3/orbiter/orbit"
	"github.com/plus3/orbiter/scenario"
	"github.com/plus3/orbiter/universe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUniverse(t *testing.T) *universe.Universe {
	t.Helper()
	catalog, err := config.DefaultCatalog()
	require.NoError(t, err)
	u, err := universe.New(catalog, universe.WithLogger(slog.New(slog.DiscardHandler)))
	require.NoError(t, err)
	return u
}

func assertVec(t *testing.T, want, got mgl64.Vec3, delta float64) {
	t.Helper()
	for i := range 3 {
		assert.InDelta(t, want[i], got[i], delta, "component %d of %v", i, got)
	}
}

func TestDefaultRotationPlacesPeriapsisOnX(t *testing.T) {
	u := newUniverse(t)
	rocket := u.Selected()
	a := orbit.KmToAU(10000)

	preset := scenario.Preset{Title: "Earth orbit", ParentName: "earth", SemimajorAxis: a}
	require.True(t, preset.Apply(rocket, u))

	assertVec(t, mgl64.Vec3{a, 0, 0}, rocket.Position, a*1e-12)
	assert.InEpsilon(t, a, rocket.Position.Len(), 1e-12)
	assertVec(t, orbit.AxisY, rocket.Velocity.Normalize(), 1e-12)
}

func TestFixedRotationOverridesAscendingNode(t *testing.T) {
	fixed := orbit.AxisAngle(orbit.AxisX, 0.3)
	preset := scenario.Preset{AscendingNode: 2, FixedRotation: &fixed}
	assert.Equal(t, fixed, preset.Rotation())

	venus := scenario.Preset{AscendingNode: math.Pi}
	assertVec(t, mgl64.Vec3{-1, 0, 0}, venus.Rotation().Rotate(orbit.AxisY), 1e-12)
}

func TestEveryDefaultPreset(t *testing.T) {
	presets, err := scenario.Defaults()
	require.NoError(t, err)
	require.Len(t, presets, 8)

	for i, preset := range presets {
		t.Run(preset.Title, func(t *testing.T) {
			u := newUniverse(t)
			rocket := u.Selected()
			rocket.Propulsion.TotalDeltaV = 3
			rocket.Propulsion.IgnitionCount = 4
			rocket.AngularVelocity = mgl64.Vec3{0.1, 0, 0}

			selector := scenario.NewSelector(presets, u, u, scenario.WithLogger(slog.New(slog.DiscardHandler)))
			require.True(t, selector.Select(i))

			assert.Equal(t, preset.ParentName, rocket.Parent.Name)
			assert.Equal(t, u.FindBody(preset.ParentName).EntityId, rocket.Parent.Id)
			assert.InEpsilon(t, preset.SemimajorAxis*(1-preset.Eccentricity), rocket.Position.Len(), 1e-12)

			el := orbit.ElementsFromState(rocket.Position, rocket.Velocity, rocket.Parent.GM)
			assert.InEpsilon(t, preset.SemimajorAxis, el.SemimajorAxis, 1e-9)
			assert.InDelta(t, preset.Eccentricity, el.Eccentricity, 1e-9)

			assert.Equal(t, mgl64.Vec3{}, rocket.AngularVelocity)
			assert.Equal(t, universe.Propulsion{}, *rocket.Propulsion)
			assert.InDelta(t, 1, rocket.Nose().Dot(rocket.Velocity.Normalize()), 1e-9, "nose should point prograde")
		})
	}
}

func TestPolarPresetCrossesThePoles(t *testing.T) {
	u := newUniverse(t)
	presets, err := scenario.Defaults()
	require.NoError(t, err)

	selector := scenario.NewSelector(presets, u, u)
	require.True(t, selector.SelectTitle("Earth polar orbit"))

	rocket := u.Selected()
	a := orbit.KmToAU(10000)
	assertVec(t, mgl64.Vec3{0, 0, -a}, rocket.Position, a*1e-12)
	assertVec(t, orbit.AxisY, rocket.Velocity.Normalize(), 1e-12)

	u.Step(1)
	assert.InDelta(t, math.Pi/2, rocket.Elements.Inclination, 1e-6)
}

func TestMissingParentLeavesBodyUntouched(t *testing.T) {
	u := newUniverse(t)
	rocket := u.Selected()
	rocket.Propulsion.TotalDeltaV = 1.5
	rocket.Propulsion.IgnitionCount = 2
	rocket.AngularVelocity = mgl64.Vec3{0, 0.2, 0}

	kinematics := *rocket.Kinematics
	attitude := *rocket.Attitude
	parent := *rocket.Parent
	propulsion := *rocket.Propulsion

	preset := scenario.Preset{Title: "Pluto orbit", ParentName: "pluto", SemimajorAxis: 1}
	assert.False(t, preset.Apply(rocket, u))

	assert.Equal(t, kinematics, *rocket.Kinematics)
	assert.Equal(t, attitude, *rocket.Attitude)
	assert.Equal(t, parent, *rocket.Parent)
	assert.Equal(t, propulsion, *rocket.Propulsion)
}

func TestApplyRefusesParentCycles(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		parent string
	}{
		{"vessel around itself", "rocket", "rocket"},
		{"planet around its moon", "earth", "moon"},
		{"root around a planet", "sun", "mars"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := newUniverse(t)
			body := u.FindBody(tt.body)
			require.NotNil(t, body)
			kinematics := *body.Kinematics
			parent := *body.Parent

			preset := scenario.Preset{Title: "Cycle", ParentName: tt.parent, SemimajorAxis: orbit.KmToAU(10000)}
			assert.False(t, preset.Apply(body, u))

			assert.Equal(t, kinematics, *body.Kinematics)
			assert.Equal(t, parent, *body.Parent)
		})
	}
}

func TestApplyRefusesOpenOrbits(t *testing.T) {
	tests := []struct {
		name         string
		a, e         float64
		wantAccepted bool
	}{
		{"circular", 1e-4, 0, true},
		{"elliptic", 1e-4, 0.9, true},
		{"zero axis", 0, 0, false},
		{"negative axis", -1e-4, 0, false},
		{"negative eccentricity", 1e-4, -0.1, false},
		{"parabolic", 1e-4, 1, false},
		{"hyperbolic", 1e-4, 1.5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := newUniverse(t)
			rocket := u.Selected()
			kinematics := *rocket.Kinematics

			preset := scenario.Preset{Title: tt.name, ParentName: "earth", SemimajorAxis: tt.a, Eccentricity: tt.e}
			assert.Equal(t, tt.wantAccepted, preset.Valid())
			assert.Equal(t, tt.wantAccepted, preset.Apply(rocket, u))

			if !tt.wantAccepted {
				assert.Equal(t, kinematics, *rocket.Kinematics)
				return
			}
			assert.False(t, math.IsNaN(rocket.Velocity.Len()))
			assert.False(t, math.IsInf(rocket.Velocity.Len(), 0))
		})
	}
}

func TestApplyToNilBody(t *testing.T) {
	u := newUniverse(t)
	preset := scenario.Preset{ParentName: "earth", SemimajorAxis: 1}
	assert.False(t, preset.Apply(nil, u))
}

func TestFromCatalogConvertsUnits(t *testing.T) {
	presets := scenario.FromCatalog([]config.ScenarioSpec{
		{Title: "Low", Parent: "earth", SemimajorAxisKm: orbit.AU, AscendingNodeDeg: 90},
	})
	require.Len(t, presets, 1)
	assert.Equal(t, "Low", presets[0].Title)
	assert.Equal(t, "earth", presets[0].ParentName)
	assert.InDelta(t, 1, presets[0].SemimajorAxis, 1e-15)
	assert.InDelta(t, math.Pi/2, presets[0].AscendingNode, 1e-15)
	assert.Nil(t, presets[0].FixedRotation)
}
