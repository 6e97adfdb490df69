package ecs_test

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/plus3/orbiter/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityIdEncoding(t *testing.T) {
	tests := []struct {
		index      uint32
		generation uint32
	}{
		{1, 0},
		{0xFFFFFFFF, 0xFFFFFFFF},
		{67890, 12345},
		{0x12345678, 0x9ABCDEF0},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("index=%d,gen=%d", tt.index, tt.generation), func(t *testing.T) {
			id := ecs.NewEntityId(tt.index, tt.generation)
			assert.Equal(t, tt.index, id.Index())
			assert.Equal(t, tt.generation, id.Generation())
			assert.True(t, id.Valid())
		})
	}

	assert.False(t, ecs.EntityId(0).Valid())
}

func TestSpawnEntity(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Position{X: 1, Y: 2}, &Velocity{X: 0.5}, Mass(32))
	assert.True(t, id.Valid())
	assert.True(t, storage.Alive(id))
	assert.Equal(t, 1, storage.EntityCount())
}

func TestSpawnWithoutComponentsPanics(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	assert.Panics(t, func() { storage.Spawn() })
}

func TestSpawnUnregisteredPanics(t *testing.T) {
	storage := ecs.NewStorage(ecs.NewComponentRegistry())
	assert.PanicsWithValue(t, "component type ecs_test.Position not registered", func() {
		storage.Spawn(Position{})
	})
}

func TestSpawnRejectsFuncComponents(t *testing.T) {
	registry := newTestRegistry()
	storage := ecs.NewStorage(registry)
	assert.Panics(t, func() { storage.Spawn(func() {}) })
}

func TestGetComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(&Position{X: 3, Y: 4}, Name{Value: "Luna"})

	posComp := storage.GetComponent(id, reflect.TypeOf(Position{}))
	require.NotNil(t, posComp)
	pos := posComp.(*Position)
	assert.Equal(t, 3.0, pos.X)
	assert.Equal(t, 4.0, pos.Y)

	name := ecs.ReadComponent[Name](storage, id)
	require.NotNil(t, name)
	assert.Equal(t, "Luna", name.Value)

	assert.Nil(t, storage.GetComponent(id, reflect.TypeOf(Velocity{})))
	assert.Nil(t, ecs.ReadComponent[Velocity](storage, id))
}

func TestComponentPointersAreStable(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	first := storage.Spawn(Position{X: 1})
	pos := ecs.ReadComponent[Position](storage, first)

	// force the column across several blocks
	for i := 0; i < 500; i++ {
		storage.Spawn(Position{X: float64(i)})
	}

	pos.X = 42
	assert.Equal(t, 42.0, ecs.ReadComponent[Position](storage, first).X)
}

func TestDeleteEntity(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 1}, Velocity{X: 2})
	other := storage.Spawn(Position{X: 5})

	assert.True(t, storage.Delete(id))
	assert.False(t, storage.Alive(id))
	assert.Nil(t, storage.GetComponent(id, reflect.TypeOf(Position{})))
	assert.Equal(t, 1, storage.EntityCount())

	// second delete is a no-op
	assert.False(t, storage.Delete(id))

	assert.Equal(t, 5.0, ecs.ReadComponent[Position](storage, other).X)
}

func TestDeletedSlotReuseBumpsGeneration(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	stale := storage.Spawn(Position{X: 1})
	storage.Delete(stale)

	fresh := storage.Spawn(Position{X: 2})
	assert.Equal(t, stale.Index(), fresh.Index())
	assert.NotEqual(t, stale.Generation(), fresh.Generation())

	assert.False(t, storage.Alive(stale))
	assert.Nil(t, ecs.ReadComponent[Position](storage, stale))
	assert.Equal(t, 2.0, ecs.ReadComponent[Position](storage, fresh).X)
}

func TestAddAndRemoveComponent(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Position{X: 1})
	assert.False(t, storage.HasComponent(id, reflect.TypeOf(Fuel{})))

	assert.True(t, storage.AddComponent(id, Fuel{Remaining: 10, Capacity: 20}))
	assert.True(t, storage.HasComponent(id, reflect.TypeOf(Fuel{})))
	assert.Equal(t, 10.0, ecs.ReadComponent[Fuel](storage, id).Remaining)

	// adding again replaces in place
	storage.AddComponent(id, Fuel{Remaining: 3, Capacity: 20})
	assert.Equal(t, 3.0, ecs.ReadComponent[Fuel](storage, id).Remaining)

	assert.True(t, storage.RemoveComponent(id, reflect.TypeOf(Fuel{})))
	assert.False(t, storage.HasComponent(id, reflect.TypeOf(Fuel{})))
	assert.True(t, storage.Alive(id))

	assert.False(t, storage.RemoveComponent(id, reflect.TypeOf(Fuel{})))
}

func TestRemovingLastComponentDeletesEntity(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Landed{})
	storage.RemoveComponent(id, reflect.TypeOf(Landed{}))

	assert.False(t, storage.Alive(id))
	assert.Equal(t, 0, storage.EntityCount())
}

func TestComponentTypesSorted(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	id := storage.Spawn(Velocity{}, Position{}, Callsign("apollo"))
	types := storage.ComponentTypes(id)

	names := make([]string, len(types))
	for i, typ := range types {
		names[i] = typ.String()
	}
	assert.Equal(t, []string{"ecs_test.Callsign", "ecs_test.Position", "ecs_test.Velocity"}, names)
}

func TestEntitiesIteratesLiveOnly(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	a := storage.Spawn(Mass(1))
	b := storage.Spawn(Mass(2))
	c := storage.Spawn(Mass(3))
	storage.Delete(b)

	var seen []ecs.EntityId
	for id := range storage.Entities() {
		seen = append(seen, id)
	}
	assert.Equal(t, []ecs.EntityId{a, c}, seen)
}

func TestVersionTracksStructuralChanges(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	v0 := storage.Version()

	id := storage.Spawn(Position{})
	v1 := storage.Version()
	assert.Greater(t, v1, v0)

	ecs.ReadComponent[Position](storage, id).X = 10
	assert.Equal(t, v1, storage.Version())

	storage.AddComponent(id, Velocity{})
	assert.Greater(t, storage.Version(), v1)
}

func TestReadSingleton(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())

	var clock *SimClock
	assert.False(t, storage.ReadSingleton(&clock))

	storage.AddSingleton(SimClock{Elapsed: 12})
	require.True(t, storage.ReadSingleton(&clock))
	assert.Equal(t, 12.0, clock.Elapsed)

	clock.Elapsed = 30
	var again *SimClock
	storage.ReadSingleton(&again)
	assert.Equal(t, 30.0, again.Elapsed)

	storage.RemoveSingleton(reflect.TypeOf(SimClock{}))
	assert.False(t, storage.ReadSingleton(&again))
}

func TestReadSingletonRequiresDoublePointer(t *testing.T) {
	storage := ecs.NewStorage(newTestRegistry())
	var clock SimClock
	assert.Panics(t, func() { storage.ReadSingleton(&clock) })
}
