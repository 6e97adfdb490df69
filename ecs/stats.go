package ecs

import (
	"sort"
)

// StorageStats is a point-in-time summary of a Storage.
type StorageStats struct {
	TotalEntityCount int
	ColumnCount      int
	SingletonCount   int
	ColumnBreakdown  []ColumnStats
	SingletonTypes   []string
}

// ColumnStats describes one component column.
type ColumnStats struct {
	ComponentType string
	EntityCount   int
}

// CollectStats walks the storage and builds a StorageStats snapshot.
// Columns and singleton types are sorted by type name.
func (s *Storage) CollectStats() *StorageStats {
	stats := &StorageStats{
		TotalEntityCount: s.entityCount,
		ColumnCount:      len(s.columns),
		SingletonCount:   len(s.singletons),
	}

	for typ, col := range s.columns {
		stats.ColumnBreakdown = append(stats.ColumnBreakdown, ColumnStats{
			ComponentType: typ.String(),
			EntityCount:   col.len(),
		})
	}
	sort.Slice(stats.ColumnBreakdown, func(i, j int) bool {
		return stats.ColumnBreakdown[i].ComponentType < stats.ColumnBreakdown[j].ComponentType
	})

	for typ := range s.singletons {
		stats.SingletonTypes = append(stats.SingletonTypes, typ.String())
	}
	sort.Strings(stats.SingletonTypes)

	return stats
}
