// Package config loads the body and scenario catalog and the runtime settings.
package config

import (
	_ "embed"
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/plus3/orbiter/orbit"
)

//go:embed bodies.yaml
var defaultBodies []byte

//go:embed scenarios.yaml
var defaultScenarios []byte

// Catalog is the static description of a universe: the bodies to spawn and
// the scenario presets offered by the selector.
type Catalog struct {
	Bodies    []BodySpec
	Scenarios []ScenarioSpec
}

// BodySpec describes one celestial body or vessel.
type BodySpec struct {
	Name   string `yaml:"name"`
	Parent string `yaml:"parent,omitempty"`
	Vessel bool   `yaml:"vessel,omitempty"`

	GM       float64 `yaml:"gm"` // km³/s²
	RadiusKm float64 `yaml:"radius_km"`
	SOIKm    float64 `yaml:"soi_km,omitempty"`
	Color    string  `yaml:"color"`

	AxialTiltDeg   float64 `yaml:"axial_tilt_deg,omitempty"`
	RotationPeriod float64 `yaml:"rotation_period_s,omitempty"`

	Orbit OrbitSpec `yaml:"orbit,omitempty"`
}

// OrbitSpec gives the semimajor axis in exactly one of km or AU.
type OrbitSpec struct {
	SemimajorAxisKm        float64 `yaml:"semimajor_axis_km,omitempty"`
	SemimajorAxisAU        float64 `yaml:"semimajor_axis_au,omitempty"`
	Eccentricity           float64 `yaml:"eccentricity,omitempty"`
	InclinationDeg         float64 `yaml:"inclination_deg,omitempty"`
	AscendingNodeDeg       float64 `yaml:"ascending_node_deg,omitempty"`
	ArgumentOfPeriapsisDeg float64 `yaml:"argument_of_periapsis_deg,omitempty"`
}

// ScenarioSpec is one scenario preset as written in the catalog.
type ScenarioSpec struct {
	Title            string         `yaml:"title"`
	Parent           string         `yaml:"parent"`
	SemimajorAxisKm  float64        `yaml:"semimajor_axis_km,omitempty"`
	SemimajorAxisAU  float64        `yaml:"semimajor_axis_au,omitempty"`
	Eccentricity     float64        `yaml:"eccentricity,omitempty"`
	AscendingNodeDeg float64        `yaml:"ascending_node_deg,omitempty"`
	Rotation         []RotationStep `yaml:"rotation,omitempty"`
}

// RotationStep is a rotation of Deg degrees about a principal axis.
type RotationStep struct {
	Axis string  `yaml:"axis"`
	Deg  float64 `yaml:"deg"`
}

// DefaultCatalog parses the catalog compiled into the binary.
func DefaultCatalog() (Catalog, error) {
	return LoadCatalog(defaultBodies, defaultScenarios)
}

// LoadCatalog parses and validates a catalog from its two YAML documents.
func LoadCatalog(bodiesYAML, scenariosYAML []byte) (Catalog, error) {
	var catalog Catalog
	if err := yaml.Unmarshal(bodiesYAML, &catalog.Bodies); err != nil {
		return Catalog{}, errors.Wrap(err, "parse bodies")
	}
	if err := yaml.Unmarshal(scenariosYAML, &catalog.Scenarios); err != nil {
		return Catalog{}, errors.Wrap(err, "parse scenarios")
	}
	if err := catalog.Validate(); err != nil {
		return Catalog{}, errors.Wrap(err, "invalid catalog")
	}
	return catalog, nil
}

// Validate checks that the catalog describes a spawnable universe: unique
// body names, a single root listed first, every parent listed before its
// children, one distance unit per orbit, bound eccentricities, and scenarios
// that only orbit natural bodies.
func (c Catalog) Validate() error {
	if len(c.Bodies) == 0 {
		return errors.New("no bodies")
	}

	seen := make(map[string]bool, len(c.Bodies))
	vessels := make(map[string]bool)
	for i, body := range c.Bodies {
		if body.Name == "" {
			return errors.Errorf("body %d has no name", i)
		}
		if seen[body.Name] {
			return errors.Errorf("duplicate body %q", body.Name)
		}

		switch {
		case i == 0 && body.Parent != "":
			return errors.Errorf("root body %q must not have a parent", body.Name)
		case i > 0 && body.Parent == "":
			return errors.Errorf("body %q has no parent", body.Name)
		case i > 0 && !seen[body.Parent]:
			return errors.Errorf("body %q: parent %q is not listed before it", body.Name, body.Parent)
		}

		if body.GM <= 0 {
			return errors.Errorf("body %q: gm must be positive", body.Name)
		}
		if _, err := ParseColor(body.Color); err != nil {
			return errors.Wrapf(err, "body %q", body.Name)
		}
		if i > 0 {
			if err := validateOrbit(body.Orbit.SemimajorAxisKm, body.Orbit.SemimajorAxisAU, body.Orbit.Eccentricity); err != nil {
				return errors.Wrapf(err, "body %q", body.Name)
			}
		}
		seen[body.Name] = true
		vessels[body.Name] = body.Vessel
	}

	titles := make(map[string]bool, len(c.Scenarios))
	for i, sc := range c.Scenarios {
		if sc.Title == "" {
			return errors.Errorf("scenario %d has no title", i)
		}
		if titles[sc.Title] {
			return errors.Errorf("duplicate scenario %q", sc.Title)
		}
		titles[sc.Title] = true

		if !seen[sc.Parent] {
			return errors.Errorf("scenario %q: unknown parent %q", sc.Title, sc.Parent)
		}
		if vessels[sc.Parent] {
			return errors.Errorf("scenario %q: parent %q is a vessel", sc.Title, sc.Parent)
		}
		if err := validateOrbit(sc.SemimajorAxisKm, sc.SemimajorAxisAU, sc.Eccentricity); err != nil {
			return errors.Wrapf(err, "scenario %q", sc.Title)
		}
		for _, step := range sc.Rotation {
			if _, ok := axisByName(step.Axis); !ok {
				return errors.Errorf("scenario %q: unknown rotation axis %q", sc.Title, step.Axis)
			}
		}
	}
	return nil
}

func validateOrbit(km, au, ecc float64) error {
	if (km != 0) == (au != 0) {
		return errors.New("exactly one of semimajor_axis_km and semimajor_axis_au must be set")
	}
	if km < 0 || au < 0 {
		return errors.New("semimajor axis must be positive")
	}
	if ecc < 0 || ecc >= 1 {
		return errors.Errorf("eccentricity %g outside [0, 1)", ecc)
	}
	return nil
}

// Body returns the named body spec.
func (c Catalog) Body(name string) (BodySpec, bool) {
	for _, body := range c.Bodies {
		if body.Name == name {
			return body, true
		}
	}
	return BodySpec{}, false
}

// Elements converts the orbit to AU and radians.
func (o OrbitSpec) Elements() orbit.Elements {
	return orbit.Elements{
		SemimajorAxis:       semimajorAxis(o.SemimajorAxisKm, o.SemimajorAxisAU),
		Eccentricity:        o.Eccentricity,
		Inclination:         orbit.Deg(o.InclinationDeg),
		AscendingNode:       orbit.Deg(o.AscendingNodeDeg),
		ArgumentOfPeriapsis: orbit.Deg(o.ArgumentOfPeriapsisDeg),
	}
}

// GravParam returns GM in AU³/s².
func (b BodySpec) GravParam() float64 {
	return orbit.GMFromKm(b.GM)
}

// Radius returns the body radius in AU.
func (b BodySpec) Radius() float64 {
	return orbit.KmToAU(b.RadiusKm)
}

// SOI returns the sphere of influence radius in AU. Zero means unbounded.
func (b BodySpec) SOI() float64 {
	return orbit.KmToAU(b.SOIKm)
}

// Spin returns the body-frame angular velocity from the rotation period.
func (b BodySpec) Spin() mgl64.Vec3 {
	if b.RotationPeriod == 0 {
		return mgl64.Vec3{}
	}
	return orbit.AxisZ.Mul(2 * math.Pi / b.RotationPeriod)
}

// Tilt returns the initial orientation from the axial tilt.
func (b BodySpec) Tilt() mgl64.Quat {
	return orbit.AxisAngle(orbit.AxisX, orbit.Deg(b.AxialTiltDeg))
}

// SemimajorAxis returns the preset semimajor axis in AU.
func (s ScenarioSpec) SemimajorAxis() float64 {
	return semimajorAxis(s.SemimajorAxisKm, s.SemimajorAxisAU)
}

// AscendingNode returns the preset ascending node in radians.
func (s ScenarioSpec) AscendingNode() float64 {
	return orbit.Deg(s.AscendingNodeDeg)
}

// FixedRotation composes the rotation steps, or returns nil if there are none.
func (s ScenarioSpec) FixedRotation() *mgl64.Quat {
	if len(s.Rotation) == 0 {
		return nil
	}
	steps := make([]mgl64.Quat, 0, len(s.Rotation))
	for _, step := range s.Rotation {
		axis, _ := axisByName(step.Axis)
		steps = append(steps, orbit.AxisAngle(axis, orbit.Deg(step.Deg)))
	}
	q := orbit.Compose(steps...)
	return &q
}

func semimajorAxis(km, au float64) float64 {
	if au != 0 {
		return au
	}
	return orbit.KmToAU(km)
}

func axisByName(name string) (mgl64.Vec3, bool) {
	switch strings.ToLower(name) {
	case "x":
		return orbit.AxisX, true
	case "y":
		return orbit.AxisY, true
	case "z":
		return orbit.AxisZ, true
	}
	return mgl64.Vec3{}, false
}

// ParseColor parses a #rrggbb or #rrggbbaa color.
func ParseColor(s string) (color.RGBA, error) {
	c := color.RGBA{A: 0xff}
	var err error
	switch len(s) {
	case 7:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x", &c.R, &c.G, &c.B)
	case 9:
		_, err = fmt.Sscanf(s, "#%02x%02x%02x%02x", &c.R, &c.G, &c.B, &c.A)
	default:
		err = errors.New("wrong length")
	}
	if err != nil {
		return color.RGBA{}, errors.Wrapf(err, "bad color %q", s)
	}
	return c, nil
}
