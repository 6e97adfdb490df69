package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const (
	DefaultZoom = 2e6 // pixels per AU, frames a low Earth orbit
	MinZoom     = 20
	MaxZoom     = 1e10
	zoomStep    = 1.15
)

// Camera maps world positions in AU onto the screen, looking down the -Z axis.
type Camera struct {
	Zoom    float64
	Center  mgl64.Vec3
	ScreenW int
	ScreenH int
}

// Project returns the screen coordinates of world. Screen Y grows downwards.
func (c *Camera) Project(world mgl64.Vec3) (float32, float32) {
	d := world.Sub(c.Center)
	x := float64(c.ScreenW)/2 + d.X()*c.Zoom
	y := float64(c.ScreenH)/2 - d.Y()*c.Zoom
	return float32(x), float32(y)
}

// ZoomBy zooms in by steps wheel notches, or out for negative steps.
func (c *Camera) ZoomBy(steps float64) {
	c.Zoom = min(max(c.Zoom*math.Pow(zoomStep, steps), MinZoom), MaxZoom)
}

// Visible reports whether a disc of radius r at (x, y) touches the screen.
func (c *Camera) Visible(x, y, r float32) bool {
	return x+r >= 0 && y+r >= 0 && x-r <= float32(c.ScreenW) && y-r <= float32(c.ScreenH)
}

type Screen struct {
	*ebiten.Image
}

// Keyboard is the slice of ebiten's input API the game reads.
type Keyboard interface {
	IsKeyPressed(key ebiten.Key) bool
	IsKeyJustPressed(key ebiten.Key) bool
	Wheel() (x, y float64)
}

// EbitenKeyboard reads the real keyboard and mouse wheel.
type EbitenKeyboard struct{}

func (EbitenKeyboard) IsKeyPressed(key ebiten.Key) bool     { return ebiten.IsKeyPressed(key) }
func (EbitenKeyboard) IsKeyJustPressed(key ebiten.Key) bool { return inpututil.IsKeyJustPressed(key) }
func (EbitenKeyboard) Wheel() (float64, float64)            { return ebiten.Wheel() }
