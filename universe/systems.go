package universe

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/plus3/orbiter/ecs"
	"github.com/plus3/orbiter/orbit"
)

type vesselView struct {
	ecs.EntityId
	*Attitude
	*Propulsion
	*Vessel
}

// ControlSystem moves pilot input from the Controls singleton into the
// selected vessel.
type ControlSystem struct {
	Controls ecs.Singleton[Controls]
	Vessels  ecs.Query[vesselView]
}

func (s *ControlSystem) Execute(frame *ecs.UpdateFrame) {
	controls := s.Controls.Get()
	defer func() {
		controls.Torque = mgl64.Vec3{}
		controls.KillRotation = false
	}()

	vessel := s.Vessels.Get(controls.Selected)
	if vessel == nil {
		return
	}

	vessel.Propulsion.Throttle = controls.Throttle
	if controls.KillRotation {
		vessel.AngularVelocity = mgl64.Vec3{}
	}
	vessel.AngularVelocity = vessel.AngularVelocity.Add(controls.Torque)
}

// GravitySystem integrates every non-root body around its parent with
// semi-implicit Euler, adding vessel thrust along the nose.
type GravitySystem struct {
	Clock  ecs.Singleton[Clock]
	Bodies ecs.Query[CelestialBody]
}

func (s *GravitySystem) Execute(frame *ecs.UpdateFrame) {
	clock := s.Clock.Get()
	total := clock.SimDelta(frame.DeltaTime)
	if total <= 0 {
		return
	}
	steps := max(clock.Substeps, 1)
	dt := total / float64(steps)

	for body := range s.Bodies.Values() {
		if body.IsRoot() {
			continue
		}

		var thrust mgl64.Vec3
		if prop := body.Propulsion; prop != nil {
			firing := prop.Throttle > 0
			if firing && !prop.Firing {
				prop.IgnitionCount++
			}
			prop.Firing = firing
			if firing {
				accel := orbit.Acceleration * prop.Throttle
				thrust = body.Nose().Mul(accel)
				prop.TotalDeltaV += accel * total
			}
		}

		gm := body.Parent.GM
		for range steps {
			accel := gravityAt(body.Position, gm).Add(thrust)
			body.Velocity = body.Velocity.Add(accel.Mul(dt))
			body.Position = body.Position.Add(body.Velocity.Mul(dt))
		}
	}
}

// AttitudeSystem spins bodies by their angular velocity.
type AttitudeSystem struct {
	Clock  ecs.Singleton[Clock]
	Bodies ecs.Query[struct{ *Attitude }]
}

func (s *AttitudeSystem) Execute(frame *ecs.UpdateFrame) {
	dt := s.Clock.Get().SimDelta(frame.DeltaTime)
	if dt <= 0 {
		return
	}
	for body := range s.Bodies.Values() {
		body.Quaternion = orbit.Integrate(body.Quaternion, body.AngularVelocity, dt)
	}
}

// SphereOfInfluenceSystem hands vessels between parents: one that leaves its
// parent's sphere of influence falls to the grandparent, one that enters a
// sibling's sphere is captured by it. State vectors are rebased either way.
type SphereOfInfluenceSystem struct {
	Vessels ecs.Query[struct {
		ecs.EntityId
		*Vessel
	}]
	Bodies ecs.Query[CelestialBody]
	Log    ecs.Singleton[MessageLog]

	logger *slog.Logger
}

func (s *SphereOfInfluenceSystem) Execute(frame *ecs.UpdateFrame) {
	for id := range s.Vessels.Iter() {
		vessel := s.Bodies.Get(id)
		if vessel == nil || vessel.IsRoot() {
			continue
		}
		parent := s.Bodies.Get(vessel.Parent.Id)
		if parent == nil {
			continue
		}

		if !parent.IsRoot() && parent.Body.SOI > 0 && vessel.Position.Len() > parent.Body.SOI {
			if grand := s.Bodies.Get(parent.Parent.Id); grand != nil {
				vessel.Position = vessel.Position.Add(parent.Position)
				vessel.Velocity = vessel.Velocity.Add(parent.Velocity)
				vessel.SetParent(grand)
				s.announce(vessel, parent, grand, "left")
			}
			continue
		}

		for sibling := range s.Bodies.Values() {
			if sibling.EntityId == vessel.EntityId || sibling.Parent.Id != vessel.Parent.Id {
				continue
			}
			if sibling.IsVessel() || sibling.Body.SOI <= 0 {
				continue
			}
			offset := vessel.Position.Sub(sibling.Position)
			if offset.Len() >= sibling.Body.SOI {
				continue
			}
			vessel.Position = offset
			vessel.Velocity = vessel.Velocity.Sub(sibling.Velocity)
			vessel.SetParent(&sibling)
			s.announce(vessel, parent, &sibling, "entered")
			break
		}
	}
}

func (s *SphereOfInfluenceSystem) announce(vessel, from, to *CelestialBody, verb string) {
	sphere := from
	if verb == "entered" {
		sphere = to
	}
	text := fmt.Sprintf("%s %s %s's sphere of influence", vessel.Body.Name, verb, sphere.Body.Name)
	s.Log.Get().push(text)
	if s.logger != nil {
		s.logger.Info("sphere of influence change",
			"vessel", vessel.Body.Name,
			"from", from.Body.Name,
			"to", to.Body.Name)
	}
}

// ElementsSystem refreshes orbital elements from the state vectors.
type ElementsSystem struct {
	Bodies ecs.Query[CelestialBody]
}

func (s *ElementsSystem) Execute(frame *ecs.UpdateFrame) {
	for body := range s.Bodies.Values() {
		if body.IsRoot() || body.Position.Len() == 0 {
			continue
		}
		*body.Elements = orbit.ElementsFromState(body.Position, body.Velocity, body.Parent.GM)
	}
}

// MessageSystem ages messages in wall-clock time and drops expired ones.
type MessageSystem struct {
	Log ecs.Singleton[MessageLog]
}

func (s *MessageSystem) Execute(frame *ecs.UpdateFrame) {
	log := s.Log.Get()
	kept := log.Entries[:0]
	for _, msg := range log.Entries {
		msg.Age += frame.DeltaTime
		if msg.Age < log.TTL {
			kept = append(kept, msg)
		}
	}
	clear(log.Entries[len(kept):])
	log.Entries = kept
}

type ClockSystem struct {
	Clock ecs.Singleton[Clock]
}

func (s *ClockSystem) Execute(frame *ecs.UpdateFrame) {
	clock := s.Clock.Get()
	clock.SimTime += clock.SimDelta(frame.DeltaTime)
	clock.Ticks++
}

func (l *MessageLog) push(text string) {
	l.Entries = append(l.Entries, Message{Text: text})
}

func gravityAt(pos mgl64.Vec3, gm float64) mgl64.Vec3 {
	r := pos.Len()
	if r == 0 {
		return mgl64.Vec3{}
	}
	return pos.Mul(-gm / (r * r * r))
}
