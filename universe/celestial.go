package universe

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/orbiter/ecs"
	"github.com/plus3/orbiter/orbit"
)

// CelestialBody is the view of a body the rest of the program works with.
// Its pointers write straight through to storage.
type CelestialBody struct {
	ecs.EntityId
	*Body
	*Kinematics
	*Attitude
	*Parent
	*orbit.Elements
	Propulsion *Propulsion `ecs:"optional"`
}

// IsVessel reports whether the body can be flown.
func (b *CelestialBody) IsVessel() bool {
	return b.Propulsion != nil
}

// IsRoot reports whether the body orbits nothing.
func (b *CelestialBody) IsRoot() bool {
	return b.Parent.Id == 0
}

// SetParent makes b orbit parent. Position and velocity are left as they are.
func (b *CelestialBody) SetParent(parent *CelestialBody) {
	b.Parent.Id = parent.EntityId
	b.Parent.Name = parent.Body.Name
	b.Parent.GM = parent.Body.GM
}

// SetOrbitingVelocity sets the vis-viva speed for semimajor axis a at the
// current distance, along +X of rot.
func (b *CelestialBody) SetOrbitingVelocity(a float64, rot mgl64.Quat) {
	speed := orbit.VisViva(b.Parent.GM, b.Position.Len(), a)
	b.Velocity = rot.Rotate(orbit.AxisX).Mul(speed)
}

// ResetPropulsion clears throttle, delta-v and ignition count.
func (b *CelestialBody) ResetPropulsion() {
	if b.Propulsion == nil {
		return
	}
	*b.Propulsion = Propulsion{}
}

// Nose is the thrust direction in the parent frame.
func (b *CelestialBody) Nose() mgl64.Vec3 {
	return b.Quaternion.Rotate(orbit.AxisX)
}

// Altitude is the distance above the parent's surface, given the parent.
func (b *CelestialBody) Altitude(parent *CelestialBody) float64 {
	if parent == nil {
		return b.Position.Len()
	}
	return b.Position.Len() - parent.Body.Radius
}

// Energy is the specific orbital energy relative to the parent.
func (b *CelestialBody) Energy() float64 {
	return orbit.SpecificEnergy(b.Position, b.Velocity, b.Parent.GM)
}
