package universe

import (
	"fmt"
	"image/color"
	"math/rand/v2"

	"github.com/pkg/errors"

	"github.com/plus3/orbiter/ecs"
	"github.com/plus3/orbiter/orbit"
)

// Physical constants of vessels added at runtime.
const (
	vesselGMKm     = 100
	vesselRadiusKm = 0.1
)

var vesselColor = color.RGBA{R: 0xff, G: 0x7f, B: 0x7f, A: 0xff}

// SpawnVessel adds a vessel called name on elements around parentName and
// returns its id. The vessel starts nose prograde at periapsis. Names must be
// unique, the parent must be a natural body, and the orbit must be closed.
func (u *Universe) SpawnVessel(name, parentName string, elements orbit.Elements) (ecs.EntityId, error) {
	if name == "" {
		return 0, errors.New("vessel has no name")
	}
	if u.FindBody(name) != nil {
		return 0, errors.Errorf("duplicate body %q", name)
	}
	parentBody := u.FindBody(parentName)
	if parentBody == nil {
		return 0, errors.Errorf("unknown parent %q", parentName)
	}
	if parentBody.IsVessel() {
		return 0, errors.Errorf("parent %q is a vessel", parentName)
	}
	if elements.SemimajorAxis <= 0 {
		return 0, errors.New("semimajor axis must be positive")
	}
	if elements.Eccentricity < 0 || elements.Eccentricity >= 1 {
		return 0, errors.Errorf("eccentricity %g outside [0, 1)", elements.Eccentricity)
	}

	body := Body{
		Name:   name,
		GM:     orbit.GMFromKm(vesselGMKm),
		Radius: orbit.KmToAU(vesselRadiusKm),
		Color:  vesselColor,
	}
	parent := Parent{Id: parentBody.EntityId, Name: parentBody.Body.Name, GM: parentBody.Body.GM}
	var kinematics Kinematics
	kinematics.Position, kinematics.Velocity = orbit.StateFromElements(elements, parent.GM)

	id := u.spawnVessel(body, kinematics, parent, elements)
	u.logger.Info("vessel spawned", "name", name, "parent", parentName, "id", id)
	return id, nil
}

// NewVessel spawns a vessel on a random low orbit around parentName, named
// after the first free "rocketN".
func (u *Universe) NewVessel(parentName string, rng *rand.Rand) (ecs.EntityId, error) {
	name := ""
	for n := 1; name == ""; n++ {
		if candidate := fmt.Sprintf("rocket%d", n); u.FindBody(candidate) == nil {
			name = candidate
		}
	}
	return u.SpawnVessel(name, parentName, RandomOrbit(rng))
}

// RandomOrbit draws a low orbit: 10000 to 20000 km, eccentricity below 0.5 and
// inclination below 30 degrees.
func RandomOrbit(rng *rand.Rand) orbit.Elements {
	return orbit.Elements{
		SemimajorAxis:       orbit.KmToAU(10000 + 10000*rng.Float64()),
		Eccentricity:        0.5 * rng.Float64(),
		Inclination:         orbit.Deg(30 * rng.Float64()),
		AscendingNode:       orbit.Deg(360 * rng.Float64()),
		ArgumentOfPeriapsis: orbit.Deg(360 * rng.Float64()),
	}
}
