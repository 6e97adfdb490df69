package ecs

import (
	"testing"
)

func TestStorageStats(t *testing.T) {
	registry := NewComponentRegistry()
	RegisterComponent[int](registry)
	RegisterComponent[string](registry)
	RegisterComponent[float64](registry)

	storage := NewStorage(registry)

	stats := storage.CollectStats()
	if stats.ColumnCount != 0 {
		t.Errorf("expected 0 columns, got %d", stats.ColumnCount)
	}
	if stats.TotalEntityCount != 0 {
		t.Errorf("expected 0 entities, got %d", stats.TotalEntityCount)
	}
	if stats.SingletonCount != 0 {
		t.Errorf("expected 0 singletons, got %d", stats.SingletonCount)
	}

	storage.Spawn(42, "hello")
	storage.Spawn(100, "world")
	storage.Spawn(200.0, "test")

	NewSingleton[float64](storage, 3.14)
	NewSingleton[string](storage, "singleton")

	stats = storage.CollectStats()

	if stats.ColumnCount != 3 {
		t.Errorf("expected 3 columns, got %d", stats.ColumnCount)
	}
	if stats.TotalEntityCount != 3 {
		t.Errorf("expected 3 entities, got %d", stats.TotalEntityCount)
	}
	if stats.SingletonCount != 2 {
		t.Errorf("expected 2 singletons, got %d", stats.SingletonCount)
	}

	want := map[string]int{"float64": 1, "int": 2, "string": 3}
	if len(stats.ColumnBreakdown) != len(want) {
		t.Fatalf("expected %d column entries, got %d", len(want), len(stats.ColumnBreakdown))
	}
	for i, col := range stats.ColumnBreakdown {
		if i > 0 && stats.ColumnBreakdown[i-1].ComponentType > col.ComponentType {
			t.Errorf("column breakdown not sorted at %d", i)
		}
		if want[col.ComponentType] != col.EntityCount {
			t.Errorf("column %s: expected %d entities, got %d", col.ComponentType, want[col.ComponentType], col.EntityCount)
		}
	}

	if len(stats.SingletonTypes) != 2 || stats.SingletonTypes[0] != "float64" || stats.SingletonTypes[1] != "string" {
		t.Errorf("unexpected singleton types %v", stats.SingletonTypes)
	}
}

func TestStorageStatsAfterDelete(t *testing.T) {
	registry := NewComponentRegistry()
	RegisterComponent[int](registry)
	storage := NewStorage(registry)

	a := storage.Spawn(1)
	storage.Spawn(2)
	storage.Delete(a)

	stats := storage.CollectStats()
	if stats.TotalEntityCount != 1 {
		t.Errorf("expected 1 entity, got %d", stats.TotalEntityCount)
	}
	if stats.ColumnBreakdown[0].EntityCount != 1 {
		t.Errorf("expected int column to hold 1 entity, got %d", stats.ColumnBreakdown[0].EntityCount)
	}
}

func TestColumnReusesFreedSlots(t *testing.T) {
	registry := NewComponentRegistry()
	RegisterComponent[int](registry)
	storage := NewStorage(registry)

	ids := make([]EntityId, 0, 130)
	for i := range 130 {
		ids = append(ids, storage.Spawn(i))
	}
	for _, id := range ids[:64] {
		storage.Delete(id)
	}
	for i := range 64 {
		storage.Spawn(1000 + i)
	}

	col := storage.column(componentType(0)).(*genericColumn[int])
	if len(col.blocks) != 3 {
		t.Errorf("expected freed slots to be reused, column grew to %d blocks", len(col.blocks))
	}
	if col.len() != 130 {
		t.Errorf("expected 130 live slots, got %d", col.len())
	}
}
