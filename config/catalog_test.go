package config_test

import (
	"math"
	"testing"

	"github.com/plus3/orbiter/config"
	"github.com/plus3/orbiter/orbit"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	catalog, err := config.DefaultCatalog()
	require.NoError(t, err)

	assert.Equal(t, "sun", catalog.Bodies[0].Name)
	require.Len(t, catalog.Scenarios, 8)

	titles := make([]string, len(catalog.Scenarios))
	for i, sc := range catalog.Scenarios {
		titles[i] = sc.Title
	}
	assert.Equal(t, []string{
		"Earth orbit",
		"Moon orbit",
		"Mars orbit",
		"Venus orbit",
		"Jupiter orbit",
		"Earth elliptic orbit",
		"Earth polar orbit",
		"Mars transfer orbit",
	}, titles)

	rocket, ok := catalog.Body("rocket")
	require.True(t, ok)
	assert.True(t, rocket.Vessel)
	assert.Equal(t, "earth", rocket.Parent)
	assert.InEpsilon(t, orbit.KmToAU(10000), rocket.Orbit.Elements().SemimajorAxis, 1e-12)
}

func TestScenarioConversions(t *testing.T) {
	catalog, err := config.DefaultCatalog()
	require.NoError(t, err)

	byTitle := make(map[string]config.ScenarioSpec)
	for _, sc := range catalog.Scenarios {
		byTitle[sc.Title] = sc
	}

	venus := byTitle["Venus orbit"]
	assert.InDelta(t, math.Pi, venus.AscendingNode(), 1e-15)
	assert.Nil(t, venus.FixedRotation())

	transfer := byTitle["Mars transfer orbit"]
	assert.Equal(t, 1.2618, transfer.SemimajorAxis())
	assert.Equal(t, 0.2075, transfer.Eccentricity)

	polar := byTitle["Earth polar orbit"].FixedRotation()
	require.NotNil(t, polar)
	// the fixed polar rotation puts periapsis over the south pole
	pos := polar.Rotate(orbit.AxisY)
	assert.InDelta(t, 0, pos.X(), 1e-12)
	assert.InDelta(t, 0, pos.Y(), 1e-12)
	assert.InDelta(t, -1, pos.Z(), 1e-12)
}

func TestBodySpecUnits(t *testing.T) {
	earth := config.BodySpec{GM: 398600, RadiusKm: 6371, SOIKm: 924000, RotationPeriod: 86164.1}

	assert.InEpsilon(t, 398600/orbit.AU/orbit.AU/orbit.AU, earth.GravParam(), 1e-12)
	assert.InEpsilon(t, 6371/orbit.AU, earth.Radius(), 1e-12)
	assert.InEpsilon(t, 924000/orbit.AU, earth.SOI(), 1e-12)
	assert.InEpsilon(t, 2*math.Pi/86164.1, earth.Spin().Z(), 1e-12)
	assert.Equal(t, 0.0, config.BodySpec{}.Spin().Len())
}

func TestValidateRejectsBadCatalogs(t *testing.T) {
	sun := config.BodySpec{Name: "sun", GM: 1, Color: "#ffffff"}
	planet := func(name, parent string) config.BodySpec {
		return config.BodySpec{
			Name: name, Parent: parent, GM: 1, Color: "#00ff00",
			Orbit: config.OrbitSpec{SemimajorAxisAU: 1},
		}
	}

	tests := []struct {
		name    string
		catalog config.Catalog
		errText string
	}{
		{
			name:    "empty",
			catalog: config.Catalog{},
			errText: "no bodies",
		},
		{
			name:    "duplicate body",
			catalog: config.Catalog{Bodies: []config.BodySpec{sun, planet("earth", "sun"), planet("earth", "sun")}},
			errText: `duplicate body "earth"`,
		},
		{
			name:    "unknown parent",
			catalog: config.Catalog{Bodies: []config.BodySpec{sun, planet("moon", "earth")}},
			errText: `parent "earth" is not listed before it`,
		},
		{
			name:    "child before parent",
			catalog: config.Catalog{Bodies: []config.BodySpec{sun, planet("moon", "earth"), planet("earth", "sun")}},
			errText: `parent "earth" is not listed before it`,
		},
		{
			name:    "root with parent",
			catalog: config.Catalog{Bodies: []config.BodySpec{planet("earth", "sun")}},
			errText: "must not have a parent",
		},
		{
			name: "bad color",
			catalog: config.Catalog{Bodies: []config.BodySpec{
				{Name: "sun", GM: 1, Color: "white"},
			}},
			errText: `bad color "white"`,
		},
		{
			name: "both units",
			catalog: config.Catalog{Bodies: []config.BodySpec{sun, {
				Name: "earth", Parent: "sun", GM: 1, Color: "#0000ff",
				Orbit: config.OrbitSpec{SemimajorAxisAU: 1, SemimajorAxisKm: 1},
			}}},
			errText: "exactly one of",
		},
		{
			name: "scenario unknown parent",
			catalog: config.Catalog{
				Bodies:    []config.BodySpec{sun},
				Scenarios: []config.ScenarioSpec{{Title: "Pluto orbit", Parent: "pluto", SemimajorAxisKm: 1000}},
			},
			errText: `unknown parent "pluto"`,
		},
		{
			name: "scenario orbits a vessel",
			catalog: func() config.Catalog {
				rocket := planet("rocket", "sun")
				rocket.Vessel = true
				return config.Catalog{
					Bodies:    []config.BodySpec{sun, rocket},
					Scenarios: []config.ScenarioSpec{{Title: "Rocket orbit", Parent: "rocket", SemimajorAxisKm: 10}},
				}
			}(),
			errText: `scenario "Rocket orbit": parent "rocket" is a vessel`,
		},
		{
			name: "scenario no unit",
			catalog: config.Catalog{
				Bodies:    []config.BodySpec{sun},
				Scenarios: []config.ScenarioSpec{{Title: "Sun orbit", Parent: "sun"}},
			},
			errText: "exactly one of",
		},
		{
			name: "scenario unbound",
			catalog: config.Catalog{
				Bodies:    []config.BodySpec{sun},
				Scenarios: []config.ScenarioSpec{{Title: "Escape", Parent: "sun", SemimajorAxisAU: 1, Eccentricity: 1}},
			},
			errText: "eccentricity 1 outside [0, 1)",
		},
		{
			name: "scenario bad axis",
			catalog: config.Catalog{
				Bodies: []config.BodySpec{sun},
				Scenarios: []config.ScenarioSpec{{
					Title: "Tilted", Parent: "sun", SemimajorAxisAU: 1,
					Rotation: []config.RotationStep{{Axis: "w", Deg: 10}},
				}},
			},
			errText: `unknown rotation axis "w"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.catalog.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errText)
		})
	}
}

func TestLoadCatalogWrapsParseErrors(t *testing.T) {
	_, err := config.LoadCatalog([]byte("- name: [unterminated"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse bodies")

	_, err = config.LoadCatalog([]byte("- {name: sun, gm: 1, color: \"#ffffff\"}"), []byte("- {title: Sun orbit, parent: venus, semimajor_axis_au: 1}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid catalog")
}

func TestParseColor(t *testing.T) {
	c, err := config.ParseColor("#3f7fff")
	require.NoError(t, err)
	assert.Equal(t, uint8(0x3f), c.R)
	assert.Equal(t, uint8(0x7f), c.G)
	assert.Equal(t, uint8(0xff), c.B)
	assert.Equal(t, uint8(0xff), c.A)

	c, err = config.ParseColor("#10203040")
	require.NoError(t, err)
	assert.Equal(t, uint8(0x40), c.A)

	_, err = config.ParseColor("#12")
	assert.Error(t, err)
}
