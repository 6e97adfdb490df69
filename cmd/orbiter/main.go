package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/orbiter/config"
	"github.com/plus3/orbiter/game"
	"github.com/plus3/orbiter/scenario"
	ui_ebiten "github.com/plus3/orbiter/ui/ebiten"
	"github.com/plus3/orbiter/universe"
)

func main() {
	width := flag.Int("width", 0, "Window width. Zero keeps the configured value.")
	height := flag.Int("height", 0, "Window height. Zero keeps the configured value.")
	timeScale := flag.Float64("timescale", 0, "Initial time scale. Zero keeps the configured value.")
	substeps := flag.Int("substeps", 0, "Integration substeps per tick. Zero keeps the configured value.")
	configPath := flag.String("config", "", "Optional YAML settings file.")
	verbose := flag.Bool("v", false, "Enable debug logging.")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	settings := config.DefaultSettings()
	if *configPath != "" {
		var err error
		if settings, err = config.LoadSettings(*configPath); err != nil {
			log.Fatalf("Failed to load settings: %v", err)
		}
	}
	if *width > 0 {
		settings.Width = *width
	}
	if *height > 0 {
		settings.Height = *height
	}
	if *timeScale > 0 {
		settings.TimeScale = *timeScale
	}
	if *substeps > 0 {
		settings.Substeps = *substeps
	}

	catalog, err := config.DefaultCatalog()
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	u, err := universe.New(catalog, universe.WithSettings(settings), universe.WithLogger(logger))
	if err != nil {
		log.Fatalf("Failed to create universe: %v", err)
	}
	selector := scenario.NewSelector(scenario.FromCatalog(catalog.Scenarios), u, u, scenario.WithLogger(logger))

	backend := ui_ebiten.NewImguiBackend("Orbiter", settings.Width, settings.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	log.Println("Starting orbiter. F1 opens the scenario panel.")
	if err := ebiten.RunGame(game.New(u, selector, backend, settings)); err != nil {
		log.Fatalf("Game exited: %v", err)
	}
}
