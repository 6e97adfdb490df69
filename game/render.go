package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/orbiter/ecs"
	"github.com/plus3/orbiter/orbit"
	"github.com/plus3/orbiter/universe"
)

const (
	orbitSegments = 180
	minDiscRadius = 2
	noseLength    = 14
)

var background = color.RGBA{8, 10, 20, 255}

// RenderSystem draws bodies and their orbits, centred on the parent of the
// controlled vessel.
type RenderSystem struct {
	Screen ecs.Singleton[Screen]
	Camera ecs.Singleton[Camera]

	Universe *universe.Universe
}

func (s *RenderSystem) Execute(frame *ecs.UpdateFrame) {
	screen := s.Screen.Get()
	if screen == nil || screen.Image == nil {
		return
	}
	screen.Fill(background)

	camera := s.Camera.Get()
	camera.ScreenW = screen.Bounds().Dx()
	camera.ScreenH = screen.Bounds().Dy()
	camera.Center = s.Universe.AbsolutePosition(focusBody(s.Universe))

	bodies := s.Universe.Bodies()
	for _, body := range bodies {
		if !body.IsRoot() {
			s.drawOrbit(screen, camera, body)
		}
	}

	for _, body := range bodies {
		x, y := camera.Project(s.Universe.AbsolutePosition(body.EntityId))
		r := max(float32(body.Radius*camera.Zoom), minDiscRadius)
		if !camera.Visible(x, y, r) {
			continue
		}
		vector.DrawFilledCircle(screen.Image, x, y, r, body.Color, true)

		if body.IsVessel() {
			nose := body.Nose()
			vector.StrokeLine(screen.Image, x, y,
				x+float32(nose.X()*noseLength), y-float32(nose.Y()*noseLength),
				1.5, color.RGBA{255, 255, 255, 255}, true)
		}
	}
}

func (s *RenderSystem) drawOrbit(screen *Screen, camera *Camera, body *universe.CelestialBody) {
	points := orbit.SampleOrbit(*body.Elements, orbitSegments)
	if len(points) == 0 {
		return
	}

	origin := s.Universe.AbsolutePosition(body.Parent.Id)
	c := color.NRGBA{body.Color.R, body.Color.G, body.Color.B, 90}

	x0, y0 := camera.Project(origin.Add(points[len(points)-1]))
	for _, p := range points {
		x1, y1 := camera.Project(origin.Add(p))
		vector.StrokeLine(screen.Image, x0, y0, x1, y1, 1, c, true)
		x0, y0 = x1, y1
	}
}

// focusBody is the body the camera follows: the controlled vessel's parent,
// or the first body when nothing is under control.
func focusBody(u *universe.Universe) ecs.EntityId {
	if vessel := u.Selected(); vessel != nil {
		return vessel.Parent.Id
	}
	if bodies := u.Bodies(); len(bodies) > 0 {
		return bodies[0].EntityId
	}
	return 0
}
