package orbit

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Elements are the classical orbital elements of a body relative to its parent.
// Angles are in radians.
type Elements struct {
	SemimajorAxis       float64
	Eccentricity        float64
	Inclination         float64
	AscendingNode       float64
	ArgumentOfPeriapsis float64
}

// Periapsis is the closest distance to the parent.
func (e Elements) Periapsis() float64 {
	return e.SemimajorAxis * (1 - e.Eccentricity)
}

// Apoapsis is the farthest distance from the parent, +Inf for escape orbits.
func (e Elements) Apoapsis() float64 {
	if e.Eccentricity >= 1 {
		return math.Inf(1)
	}
	return e.SemimajorAxis * (1 + e.Eccentricity)
}

// Period is the orbital period in seconds around a parent of the given GM.
// Unbound orbits return +Inf.
func (e Elements) Period(gm float64) float64 {
	if e.Eccentricity >= 1 || e.SemimajorAxis <= 0 || gm <= 0 {
		return math.Inf(1)
	}
	return 2 * math.Pi * math.Sqrt(e.SemimajorAxis*e.SemimajorAxis*e.SemimajorAxis/gm)
}

// Bound reports whether the orbit is closed.
func (e Elements) Bound() bool {
	return e.Eccentricity < 1 && e.SemimajorAxis > 0
}

// ElementsFromState derives orbital elements from a position and velocity
// relative to a parent of the given GM. See chapter 4.4 of Curtis, Orbital
// Mechanics for Engineering Students.
func ElementsFromState(pos, vel mgl64.Vec3, gm float64) Elements {
	var el Elements

	ang := vel.Cross(pos)
	r := pos.Len()
	v := vel.Len()
	node := AxisZ.Cross(ang)
	ecc := pos.Mul((v*v - gm/r) / gm).Sub(vel.Mul(pos.Dot(vel) / gm))

	el.Eccentricity = ecc.Len()
	if angLen := ang.Len(); angLen > 0 {
		el.Inclination = math.Acos(clamp(-ang.Z()/angLen, -1, 1))
	}

	if node.Dot(node) <= Epsilon {
		el.AscendingNode = 0
	} else {
		el.AscendingNode = math.Acos(clamp(node.X()/node.Len(), -1, 1))
		if node.Y() < 0 {
			el.AscendingNode = 2*math.Pi - el.AscendingNode
		}
	}

	el.SemimajorAxis = 1 / (2/r - v*v/gm)

	// equatorial or circular orbits have no node line to measure from
	if node.Dot(node) <= Epsilon || ecc.Dot(ecc) <= Epsilon {
		ey := ecc.Y()
		if ang.Z() < 0 {
			ey = -ey
		}
		el.ArgumentOfPeriapsis = math.Atan2(ey, ecc.X())
	} else {
		el.ArgumentOfPeriapsis = math.Acos(clamp(node.Dot(ecc)/node.Len()/ecc.Len(), -1, 1))
		if ecc.Z() < 0 {
			el.ArgumentOfPeriapsis = 2*math.Pi - el.ArgumentOfPeriapsis
		}
	}

	return el
}

// PlaneRotation maps the perifocal frame, where periapsis lies on +Y and the
// body moves toward +X at periapsis, into the parent frame.
func PlaneRotation(el Elements) mgl64.Quat {
	return Compose(
		AxisAngle(AxisZ, el.AscendingNode-math.Pi/2),
		AxisAngle(AxisY, math.Pi-el.Inclination),
		AxisAngle(AxisZ, el.ArgumentOfPeriapsis),
	)
}

// StateFromElements places a body at periapsis of the orbit described by el.
func StateFromElements(el Elements, gm float64) (pos, vel mgl64.Vec3) {
	rot := PlaneRotation(el)
	pos = rot.Rotate(mgl64.Vec3{0, el.Periapsis(), 0})
	vel = rot.Rotate(AxisX).Mul(VisViva(gm, pos.Len(), el.SemimajorAxis))
	return pos, vel
}

// VisViva is the orbital speed at distance r on an orbit with semimajor axis a.
func VisViva(gm, r, a float64) float64 {
	return math.Sqrt(math.Max(0, gm*(2/r-1/a)))
}

// SpecificEnergy is v²/2 - GM/r.
func SpecificEnergy(pos, vel mgl64.Vec3, gm float64) float64 {
	return vel.Dot(vel)/2 - gm/pos.Len()
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
