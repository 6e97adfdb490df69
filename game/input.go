package game

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/orbiter/ecs"
	"github.com/plus3/orbiter/orbit"
	"github.com/plus3/orbiter/scenario"
	"github.com/plus3/orbiter/ui"
	"github.com/plus3/orbiter/universe"
)

// ThrottleRate is how fast Shift and Ctrl move the throttle, per real second.
const ThrottleRate = 0.5

type rotationKey struct {
	key  ebiten.Key
	axis mgl64.Vec3
}

// pitch about body Y, yaw about body Z, roll about the nose
var rotationKeys = []rotationKey{
	{ebiten.KeyW, orbit.AxisY},
	{ebiten.KeyS, orbit.AxisY.Mul(-1)},
	{ebiten.KeyA, orbit.AxisZ},
	{ebiten.KeyD, orbit.AxisZ.Mul(-1)},
	{ebiten.KeyQ, orbit.AxisX.Mul(-1)},
	{ebiten.KeyE, orbit.AxisX},
}

// PilotInputSystem turns key presses into universe and selector calls.
// It does nothing while ImGui owns the keyboard.
type PilotInputSystem struct {
	ImguiInput ecs.Singleton[ui.ImguiInputState]

	Keys     Keyboard
	Universe *universe.Universe
	Selector *scenario.Selector
}

func (s *PilotInputSystem) Execute(frame *ecs.UpdateFrame) {
	if state := s.ImguiInput.Get(); state != nil && state.WantCaptureKeyboard {
		return
	}
	keys, u := s.Keys, s.Universe

	if keys.IsKeyJustPressed(ebiten.KeyF1) {
		s.Selector.Toggle()
	}

	switch {
	case keys.IsKeyJustPressed(ebiten.KeyZ):
		u.SetThrottle(1)
	case keys.IsKeyJustPressed(ebiten.KeyX):
		u.SetThrottle(0)
	case keys.IsKeyPressed(ebiten.KeyShift):
		u.SetThrottle(u.Throttle() + ThrottleRate*frame.DeltaTime)
	case keys.IsKeyPressed(ebiten.KeyControl):
		u.SetThrottle(u.Throttle() - ThrottleRate*frame.DeltaTime)
	}

	for _, rk := range rotationKeys {
		if keys.IsKeyPressed(rk.key) {
			u.Rotate(rk.axis)
		}
	}

	if keys.IsKeyJustPressed(ebiten.KeyPeriod) {
		u.StepTimeScale(1)
	}
	if keys.IsKeyJustPressed(ebiten.KeyComma) {
		u.StepTimeScale(-1)
	}
	if keys.IsKeyJustPressed(ebiten.KeyTab) {
		u.SelectNext()
	}
	if keys.IsKeyJustPressed(ebiten.KeySpace) {
		u.SetPaused(!u.Paused())
	}
}

// CameraControlSystem zooms the camera with the mouse wheel.
type CameraControlSystem struct {
	Camera     ecs.Singleton[Camera]
	ImguiInput ecs.Singleton[ui.ImguiInputState]

	Keys Keyboard
}

func (s *CameraControlSystem) Execute(frame *ecs.UpdateFrame) {
	if state := s.ImguiInput.Get(); state != nil && state.WantCaptureMouse {
		return
	}
	if _, dy := s.Keys.Wheel(); dy != 0 {
		s.Camera.Get().ZoomBy(dy)
	}
}
