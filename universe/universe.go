// Package universe simulates celestial bodies and vessels on patched conics.
// Each body orbits exactly one parent and feels only that parent's gravity.
package universe

import (
	"cmp"
	"log/slog"
	"math"
	"slices"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"

	"github.com/plus3/orbiter/config"
	"github.com/plus3/orbiter/ecs"
	"github.com/plus3/orbiter/orbit"
)

// RotationImpulse is the angular velocity change, in rad/s, of one Rotate call.
const RotationImpulse = 0.02

// TimeScales are the speeds StepTimeScale moves between.
var TimeScales = []float64{1, 5, 10, 100, 1e3, 1e4, 1e5}

// Universe owns the ECS storage holding every body and the scheduler that
// advances it.
type Universe struct {
	storage   *ecs.Storage
	scheduler *ecs.Scheduler
	bodies    *ecs.View[CelestialBody]
	clock     *ecs.Singleton[Clock]
	controls  *ecs.Singleton[Controls]
	log       *ecs.Singleton[MessageLog]

	settings config.Settings
	logger   *slog.Logger
}

type Option func(*Universe)

// WithLogger sets the logger. The default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(u *Universe) {
		u.logger = logger
	}
}

// WithSettings overrides config.DefaultSettings.
func WithSettings(settings config.Settings) Option {
	return func(u *Universe) {
		u.settings = settings
	}
}

// New spawns the catalog's bodies in order, each placed at periapsis of its
// catalog orbit, and selects the configured vessel.
func New(catalog config.Catalog, opts ...Option) (*Universe, error) {
	u := &Universe{
		settings: config.DefaultSettings(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(u)
	}

	if err := catalog.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid catalog")
	}
	if err := u.settings.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid settings")
	}

	u.storage = ecs.NewStorage(NewRegistry())
	u.bodies = ecs.NewView[CelestialBody](u.storage)
	u.clock = ecs.NewSingleton(u.storage, Clock{
		TimeScale: u.settings.TimeScale,
		Substeps:  u.settings.Substeps,
	})
	u.controls = ecs.NewSingleton(u.storage, Controls{})
	u.log = ecs.NewSingleton(u.storage, MessageLog{TTL: u.settings.MessageTTL.Seconds()})

	u.logger.Debug("catalog loaded",
		"bodies", len(catalog.Bodies),
		"scenarios", len(catalog.Scenarios))

	ids := make(map[string]ecs.EntityId, len(catalog.Bodies))
	for _, spec := range catalog.Bodies {
		id, err := u.spawn(spec, ids)
		if err != nil {
			return nil, errors.Wrapf(err, "spawn %s", spec.Name)
		}
		ids[spec.Name] = id
	}

	if id, ok := ids[u.settings.Vessel]; !ok || !u.Select(id) {
		if !u.SelectNext() {
			u.logger.Warn("no vessel to fly")
		}
	}

	u.scheduler = ecs.NewScheduler(u.storage)
	u.scheduler.Register(&ControlSystem{})
	u.scheduler.Register(&GravitySystem{})
	u.scheduler.Register(&AttitudeSystem{})
	u.scheduler.Register(&SphereOfInfluenceSystem{logger: u.logger})
	u.scheduler.Register(&ElementsSystem{})
	u.scheduler.Register(&MessageSystem{})
	u.scheduler.Register(&ClockSystem{})

	u.logger.Info("universe created",
		"bodies", len(catalog.Bodies),
		"vessel", u.selectedName())
	return u, nil
}

func (u *Universe) spawn(spec config.BodySpec, ids map[string]ecs.EntityId) (ecs.EntityId, error) {
	rgba, err := config.ParseColor(spec.Color)
	if err != nil {
		return 0, err
	}

	body := Body{
		Name:   spec.Name,
		GM:     spec.GravParam(),
		Radius: spec.Radius(),
		SOI:    spec.SOI(),
		Color:  rgba,
	}
	attitude := Attitude{Quaternion: spec.Tilt(), AngularVelocity: spec.Spin()}
	var (
		kinematics Kinematics
		parent     Parent
		elements   orbit.Elements
	)

	if spec.Parent != "" {
		parentId, ok := ids[spec.Parent]
		if !ok {
			return 0, errors.Errorf("unknown parent %q", spec.Parent)
		}
		parentBody := ecs.ReadComponent[Body](u.storage, parentId)
		parent = Parent{Id: parentId, Name: parentBody.Name, GM: parentBody.GM}
		elements = spec.Orbit.Elements()
		kinematics.Position, kinematics.Velocity = orbit.StateFromElements(elements, parent.GM)
	}

	if !spec.Vessel {
		return u.storage.Spawn(body, kinematics, attitude, parent, elements), nil
	}
	return u.spawnVessel(body, kinematics, parent, elements), nil
}

// spawnVessel starts a vessel nose prograde at periapsis.
func (u *Universe) spawnVessel(body Body, kinematics Kinematics, parent Parent, elements orbit.Elements) ecs.EntityId {
	attitude := Attitude{
		Quaternion: orbit.PlaneRotation(elements).Mul(orbit.AxisAngle(orbit.AxisX, -math.Pi/2)),
	}
	return u.storage.Spawn(body, kinematics, attitude, parent, elements, Vessel{}, Propulsion{})
}

// Storage exposes the underlying ECS storage for tooling.
func (u *Universe) Storage() *ecs.Storage {
	return u.storage
}

// Scheduler exposes the simulation scheduler for its stats.
func (u *Universe) Scheduler() *ecs.Scheduler {
	return u.scheduler
}

// Step advances the simulation by dt real seconds.
func (u *Universe) Step(dt float64) {
	u.scheduler.Once(dt)
}

// FindBody returns the body with the given name, or nil.
func (u *Universe) FindBody(name string) *CelestialBody {
	for body := range u.bodies.Values() {
		if body.Body.Name == name {
			return &body
		}
	}
	return nil
}

// Body returns the body with the given id, or nil.
func (u *Universe) Body(id ecs.EntityId) *CelestialBody {
	return u.bodies.Get(id)
}

// Bodies returns every body ordered by id.
func (u *Universe) Bodies() []*CelestialBody {
	var bodies []*CelestialBody
	for body := range u.bodies.Values() {
		bodies = append(bodies, &body)
	}
	slices.SortFunc(bodies, func(a, b *CelestialBody) int {
		return cmp.Compare(a.EntityId, b.EntityId)
	})
	return bodies
}

// Children returns the bodies orbiting id, ordered by id.
func (u *Universe) Children(id ecs.EntityId) []*CelestialBody {
	var children []*CelestialBody
	for _, body := range u.Bodies() {
		if !body.IsRoot() && body.Parent.Id == id {
			children = append(children, body)
		}
	}
	return children
}

// AbsolutePosition sums id's position up its parent chain, giving its
// position relative to the root body.
func (u *Universe) AbsolutePosition(id ecs.EntityId) mgl64.Vec3 {
	var pos mgl64.Vec3
	for body := u.Body(id); body != nil; body = u.Body(body.Parent.Id) {
		pos = pos.Add(body.Position)
		if body.IsRoot() {
			break
		}
	}
	return pos
}

// Selected returns the vessel under control, or nil.
func (u *Universe) Selected() *CelestialBody {
	id := u.controls.Get().Selected
	if id == 0 {
		return nil
	}
	return u.Body(id)
}

// Select puts the vessel id under control. Non-vessels are refused.
func (u *Universe) Select(id ecs.EntityId) bool {
	body := u.Body(id)
	if body == nil || !body.IsVessel() {
		return false
	}
	controls := u.controls.Get()
	controls.Selected = id
	controls.Throttle = body.Propulsion.Throttle
	return true
}

// SelectNext cycles control to the next vessel by id.
func (u *Universe) SelectNext() bool {
	var vessels []*CelestialBody
	for _, body := range u.Bodies() {
		if body.IsVessel() {
			vessels = append(vessels, body)
		}
	}
	if len(vessels) == 0 {
		return false
	}

	current := u.controls.Get().Selected
	for _, v := range vessels {
		if v.EntityId > current {
			return u.Select(v.EntityId)
		}
	}
	return u.Select(vessels[0].EntityId)
}

func (u *Universe) selectedName() string {
	if body := u.Selected(); body != nil {
		return body.Body.Name
	}
	return ""
}

// OnSelectScenario runs fn against the selected vessel and reports its result.
func (u *Universe) OnSelectScenario(fn func(*CelestialBody) bool) bool {
	return fn(u.Selected())
}

func (u *Universe) SimTime() float64 {
	return u.clock.Get().SimTime
}

// ResetTime restarts the simulation clock at zero.
func (u *Universe) ResetTime() {
	u.clock.Get().SimTime = 0
}

func (u *Universe) TimeScale() float64 {
	return u.clock.Get().TimeScale
}

// SetTimeScale ignores non-positive scales.
func (u *Universe) SetTimeScale(scale float64) {
	if scale > 0 {
		u.clock.Get().TimeScale = scale
	}
}

// StepTimeScale moves delta entries along TimeScales from the current scale.
func (u *Universe) StepTimeScale(delta int) {
	current := u.TimeScale()
	idx := 0
	for i, scale := range TimeScales {
		if scale <= current {
			idx = i
		}
	}
	idx = min(max(idx+delta, 0), len(TimeScales)-1)
	u.SetTimeScale(TimeScales[idx])
}

func (u *Universe) Paused() bool {
	return u.clock.Get().Paused
}

func (u *Universe) SetPaused(paused bool) {
	u.clock.Get().Paused = paused
}

// Ticks counts scheduler steps since creation.
func (u *Universe) Ticks() int64 {
	return u.clock.Get().Ticks
}

// SetThrottle sets the selected vessel's throttle, clamped to [0, 1].
func (u *Universe) SetThrottle(throttle float64) {
	u.controls.Get().Throttle = min(max(throttle, 0), 1)
}

func (u *Universe) Throttle() float64 {
	return u.controls.Get().Throttle
}

// Rotate queues a body-frame angular velocity impulse about axis.
func (u *Universe) Rotate(axis mgl64.Vec3) {
	controls := u.controls.Get()
	controls.Torque = controls.Torque.Add(axis.Mul(RotationImpulse))
}

// KillRotation stops the selected vessel's rotation on the next tick.
func (u *Universe) KillRotation() {
	u.controls.Get().KillRotation = true
}

// SendMessage queues a message for the message window.
func (u *Universe) SendMessage(text string) {
	u.log.Get().push(text)
	u.logger.Debug("message", "text", text)
}

// Messages returns the live messages, oldest first.
func (u *Universe) Messages() []Message {
	return slices.Clone(u.log.Get().Entries)
}
