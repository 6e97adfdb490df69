// Package scenario moves the controlled vessel into preset orbits.
package scenario

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/plus3/orbiter/config"
	"github.com/plus3/orbiter/orbit"
	"github.com/plus3/orbiter/universe"
)

// Preset is an orbit a vessel can be placed in. SemimajorAxis is in AU and
// AscendingNode in radians.
type Preset struct {
	Title         string
	ParentName    string
	SemimajorAxis float64
	Eccentricity  float64
	AscendingNode float64
	// FixedRotation replaces the rotation derived from AscendingNode.
	FixedRotation *mgl64.Quat
}

// BodyFinder resolves parent bodies by name.
type BodyFinder interface {
	FindBody(name string) *universe.CelestialBody
}

// FromCatalog converts catalog scenario specs into presets.
func FromCatalog(specs []config.ScenarioSpec) []Preset {
	presets := make([]Preset, 0, len(specs))
	for _, spec := range specs {
		presets = append(presets, Preset{
			Title:         spec.Title,
			ParentName:    spec.Parent,
			SemimajorAxis: spec.SemimajorAxis(),
			Eccentricity:  spec.Eccentricity,
			AscendingNode: spec.AscendingNode(),
			FixedRotation: spec.FixedRotation(),
		})
	}
	return presets
}

// Defaults returns the presets of the built-in catalog.
func Defaults() ([]Preset, error) {
	catalog, err := config.DefaultCatalog()
	if err != nil {
		return nil, errors.Wrap(err, "load default scenarios")
	}
	return FromCatalog(catalog.Scenarios), nil
}

// Rotation maps the preset's perifocal frame into the parent frame:
// FixedRotation when set, else Z(Ω - π/2)·Y(π).
func (p Preset) Rotation() mgl64.Quat {
	if p.FixedRotation != nil {
		return *p.FixedRotation
	}
	return orbit.Compose(
		orbit.AxisAngle(orbit.AxisZ, p.AscendingNode-math.Pi/2),
		orbit.AxisAngle(orbit.AxisY, math.Pi),
	)
}

// maxAncestry bounds the parent walk in Apply.
const maxAncestry = 64

// Valid reports whether the preset describes a closed orbit: a positive
// semi-major axis and an eccentricity in [0, 1).
func (p Preset) Valid() bool {
	return p.SemimajorAxis > 0 && p.Eccentricity >= 0 && p.Eccentricity < 1
}

// Apply puts body at periapsis of the preset orbit, nose prograde, with its
// rotation and propulsion history cleared. It returns false without touching
// body when body is nil, the preset is not a closed orbit, or the parent is
// missing, is body itself or orbits body.
func (p Preset) Apply(body *universe.CelestialBody, finder BodyFinder) bool {
	if body == nil || !p.Valid() {
		return false
	}
	parent := finder.FindBody(p.ParentName)
	if parent == nil || orbits(parent, body, finder) {
		return false
	}

	rot := p.Rotation()
	if body.Parent.Id != parent.EntityId {
		body.SetParent(parent)
	}
	body.Position = rot.Rotate(mgl64.Vec3{0, 1 - p.Eccentricity, 0}.Mul(p.SemimajorAxis))
	body.Quaternion = rot.Mul(orbit.AxisAngle(orbit.AxisX, -math.Pi/2))
	body.AngularVelocity = mgl64.Vec3{}
	body.ResetPropulsion()
	body.SetOrbitingVelocity(p.SemimajorAxis, rot)
	return true
}

// orbits reports whether candidate is body or sits below it in the parent
// chain. A chain longer than maxAncestry counts as a cycle.
func orbits(candidate, body *universe.CelestialBody, finder BodyFinder) bool {
	for range maxAncestry {
		if candidate.EntityId == body.EntityId {
			return true
		}
		if candidate.IsRoot() {
			return false
		}
		candidate = finder.FindBody(candidate.Parent.Name)
		if candidate == nil {
			return false
		}
	}
	return true
}
