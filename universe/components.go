package universe

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/orbiter/ecs"
	"github.com/plus3/orbiter/orbit"
)

// Body holds the physical constants of a celestial body. Units are AU and seconds.
type Body struct {
	Name   string
	GM     float64
	Radius float64
	SOI    float64 // sphere of influence radius, zero for the root
	Color  color.RGBA
}

// Kinematics is position and velocity relative to the parent body.
type Kinematics struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3
}

type Attitude struct {
	Quaternion      mgl64.Quat
	AngularVelocity mgl64.Vec3 // body frame, rad/s
}

// Parent links a body to the body it orbits. A zero Id marks the root.
type Parent struct {
	Id   ecs.EntityId
	Name string
	GM   float64
}

type Propulsion struct {
	Throttle      float64
	TotalDeltaV   float64
	IgnitionCount int
	Firing        bool
}

// Vessel tags bodies the player can fly.
type Vessel struct{}

// Clock is the simulation time singleton.
type Clock struct {
	SimTime   float64
	TimeScale float64
	Substeps  int
	Paused    bool
	Ticks     int64
}

// SimDelta converts a real frame delta into simulated seconds.
func (c *Clock) SimDelta(dt float64) float64 {
	if c.Paused {
		return 0
	}
	return dt * c.TimeScale
}

// Controls is the pilot input applied to the selected vessel on the next tick.
type Controls struct {
	Selected     ecs.EntityId
	Throttle     float64
	Torque       mgl64.Vec3
	KillRotation bool
}

type Message struct {
	Text string
	Age  float64
}

// MessageLog keeps recent messages until they are TTL seconds old.
type MessageLog struct {
	TTL     float64
	Entries []Message
}

// NewRegistry registers every component a universe stores.
func NewRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Body](registry)
	ecs.RegisterComponent[Kinematics](registry)
	ecs.RegisterComponent[Attitude](registry)
	ecs.RegisterComponent[Parent](registry)
	ecs.RegisterComponent[Propulsion](registry)
	ecs.RegisterComponent[Vessel](registry)
	ecs.RegisterComponent[orbit.Elements](registry)
	return registry
}
