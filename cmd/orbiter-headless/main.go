package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/plus3/orbiter/config"
	"github.com/plus3/orbiter/scenario"
	"github.com/plus3/orbiter/universe"
)

func main() {
	scenarioTitle := flag.String("scenario", "", "Scenario to load before running, by title.")
	ticks := flag.Int("ticks", 0, "Number of fixed steps to run. Zero runs in real time for -duration.")
	dt := flag.Float64("dt", 1, "Real seconds per fixed step.")
	timeScale := flag.Float64("timescale", 0, "Simulated seconds per real second. Zero keeps the configured value.")
	substeps := flag.Int("substeps", 0, "Integration substeps per tick. Zero keeps the configured value.")
	duration := flag.Duration("duration", 10*time.Second, "Wall-clock run time when -ticks is zero.")
	configPath := flag.String("config", "", "Optional YAML settings file.")
	list := flag.Bool("list", false, "List the scenarios and exit.")
	verbose := flag.Bool("v", false, "Enable debug logging.")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	catalog, err := config.DefaultCatalog()
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	presets := scenario.FromCatalog(catalog.Scenarios)

	if *list {
		for _, p := range presets {
			fmt.Printf("%-24s %s\n", p.Title, p.ParentName)
		}
		return
	}

	settings := config.DefaultSettings()
	if *configPath != "" {
		if settings, err = config.LoadSettings(*configPath); err != nil {
			log.Fatalf("Failed to load settings: %v", err)
		}
	}
	if *timeScale > 0 {
		settings.TimeScale = *timeScale
	}
	if *substeps > 0 {
		settings.Substeps = *substeps
	}

	u, err := universe.New(catalog, universe.WithSettings(settings), universe.WithLogger(logger))
	if err != nil {
		log.Fatalf("Failed to create universe: %v", err)
	}

	if *scenarioTitle != "" {
		selector := scenario.NewSelector(presets, u, u, scenario.WithLogger(logger))
		if !selector.SelectTitle(*scenarioTitle) {
			log.Fatalf("Scenario %q could not be loaded", *scenarioTitle)
		}
	}

	vessel := u.Selected()
	if vessel == nil {
		log.Fatal("No vessel to simulate")
	}

	report := NewReport(u, *scenarioTitle)
	if *ticks > 0 {
		log.Printf("Stepping %d ticks of %gs at x%g...\n", *ticks, *dt, u.TimeScale())
		for range *ticks {
			start := time.Now()
			u.Step(*dt)
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(start))
		}
	} else {
		log.Printf("Running in real time for %s at x%g...\n", *duration, u.TimeScale())
		ctx, cancel := context.WithTimeout(context.Background(), *duration)
		defer cancel()
		u.Scheduler().Run(ctx, time.Second/60)
	}
	report.Finish(u)

	fmt.Println("\n--- Flight Report ---")
	if err := report.Generate(os.Stdout); err != nil {
		log.Fatalf("Failed to generate report: %v", err)
	}
	fmt.Println("--- End of Report ---")
}
