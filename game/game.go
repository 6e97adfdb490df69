// Package game runs the orbiter sandbox as an Ebiten game: the universe
// simulation underneath, a top-down renderer and the ImGui flight overlay.
package game

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/orbiter/config"
	"github.com/plus3/orbiter/ecs"
	"github.com/plus3/orbiter/scenario"
	"github.com/plus3/orbiter/ui"
	ui_ebiten "github.com/plus3/orbiter/ui/ebiten"
	"github.com/plus3/orbiter/universe"
)

// Game implements ebiten.Game. The universe keeps its own storage; the
// overlay, camera and screen live in a second storage driven by Scheduler
// during Update and RenderScheduler during Draw.
type Game struct {
	Universe        *universe.Universe
	Selector        *scenario.Selector
	Overlay         *ui.Overlay
	Storage         *ecs.Storage
	Scheduler       *ecs.Scheduler
	RenderScheduler *ecs.Scheduler
	ImguiBackend    *ecs.Singleton[ui_ebiten.ImguiBackend]
	Screen          *ecs.Singleton[Screen]
}

// New wires the overlay and renderer around u. backend must already own the
// window.
func New(u *universe.Universe, selector *scenario.Selector, backend ui_ebiten.ImguiBackend, settings config.Settings) *Game {
	storage := ecs.NewStorage(ui.NewRegistry())
	ecs.NewSingleton(storage, Camera{Zoom: DefaultZoom, ScreenW: settings.Width, ScreenH: settings.Height})

	keys := EbitenKeyboard{}
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&CameraControlSystem{Keys: keys})
	scheduler.Register(&PilotInputSystem{Keys: keys, Universe: u, Selector: selector})
	overlay := ui.SpawnOverlay(storage, scheduler, u, selector, settings.MessageTTL.Seconds())

	renderScheduler := ecs.NewScheduler(storage)
	renderScheduler.Register(&RenderSystem{Universe: u})

	return &Game{
		Universe:        u,
		Selector:        selector,
		Overlay:         overlay,
		Storage:         storage,
		Scheduler:       scheduler,
		RenderScheduler: renderScheduler,
		ImguiBackend:    ecs.NewSingleton(storage, backend),
		Screen:          ecs.NewSingleton[Screen](storage),
	}
}

func (g *Game) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	dt := 1.0 / float64(ebiten.TPS())
	backend := g.ImguiBackend.Get()

	backend.BeginFrame()
	g.Scheduler.Once(dt)
	backend.EndFrame()

	g.Universe.Step(dt)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.Screen.Get().Image = screen
	g.RenderScheduler.Once(0)
	g.ImguiBackend.Get().Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.ImguiBackend.Get().Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
