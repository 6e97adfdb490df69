package ui

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/orbiter/config"
	"github.com/plus3/orbiter/ecs"
	"github.com/plus3/orbiter/universe"
)

func newTestUniverse(t *testing.T) *universe.Universe {
	t.Helper()
	catalog, err := config.DefaultCatalog()
	require.NoError(t, err)
	u, err := universe.New(catalog, universe.WithLogger(slog.New(slog.DiscardHandler)))
	require.NoError(t, err)
	return u
}

func TestAltitudeHistoryWraps(t *testing.T) {
	history := NewAltitudeHistory(3)
	assert.Empty(t, history.Samples())

	history.Push(1)
	history.Push(2)
	assert.Equal(t, []float32{1, 2}, history.Samples())

	history.Push(3)
	history.Push(4)
	assert.Equal(t, []float32{2, 3, 4}, history.Samples())

	history.Reset(7)
	assert.Empty(t, history.Samples())
	assert.Equal(t, ecs.EntityId(7), history.Vessel)
}

func TestAltitudeHistoryZeroValue(t *testing.T) {
	var history AltitudeHistory
	history.Push(1)
	assert.Empty(t, history.Samples())
}

func TestTelemetrySystemSamplesOnlyWhenTimeMoves(t *testing.T) {
	u := newTestUniverse(t)

	storage := ecs.NewStorage(NewRegistry())
	history := ecs.NewSingleton(storage, NewAltitudeHistory(10))
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&TelemetrySystem{Universe: u})

	u.Step(1)
	scheduler.Once(1)
	require.Len(t, history.Get().Samples(), 1)
	assert.Equal(t, u.Selected().EntityId, history.Get().Vessel)
	assert.Greater(t, history.Get().Samples()[0], float32(0))

	u.SetPaused(true)
	u.Step(1)
	scheduler.Once(1)
	assert.Len(t, history.Get().Samples(), 1)

	u.SetPaused(false)
	u.Step(1)
	scheduler.Once(1)
	assert.Len(t, history.Get().Samples(), 2)

	u.ResetTime()
	u.Step(1)
	scheduler.Once(1)
	assert.Len(t, history.Get().Samples(), 1, "clock reset starts a new trace")
}
