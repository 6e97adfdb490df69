package ecs

import "reflect"

// Commands buffers structural ECS operations until the end of a frame, so
// systems never mutate storage layout while queries are being walked.
type Commands struct {
	spawns  [][]any
	deletes []EntityId
	adds    []componentChange
	removes []componentChange
	defers  []func()
}

type componentChange struct {
	entity    EntityId
	component any
	compType  reflect.Type
}

func newCommands() *Commands {
	return &Commands{}
}

// Defer queues fn to run after every structural change has been applied.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Spawn queues an entity spawn operation with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, components)
}

// Delete queues an entity deletion.
func (c *Commands) Delete(entity EntityId) {
	c.deletes = append(c.deletes, entity)
}

// AddComponent queues a component addition.
func (c *Commands) AddComponent(entity EntityId, component any) {
	c.adds = append(c.adds, componentChange{entity: entity, component: component})
}

// RemoveComponent queues a component removal.
func (c *Commands) RemoveComponent(entity EntityId, compType reflect.Type) {
	c.removes = append(c.removes, componentChange{entity: entity, compType: compType})
}

// Pending returns the number of queued operations.
func (c *Commands) Pending() int {
	return len(c.spawns) + len(c.deletes) + len(c.adds) + len(c.removes) + len(c.defers)
}

// Flush applies all queued operations to storage in a fixed order (deletes,
// removals, additions, spawns, deferred functions) and resets the buffer.
// Changes aimed at an entity deleted in the same flush are dropped.
func (c *Commands) Flush(storage *Storage) {
	deleted := make(map[EntityId]bool, len(c.deletes))
	for _, id := range c.deletes {
		storage.Delete(id)
		deleted[id] = true
	}

	for _, cmd := range c.removes {
		if !deleted[cmd.entity] {
			storage.RemoveComponent(cmd.entity, cmd.compType)
		}
	}

	for _, cmd := range c.adds {
		if !deleted[cmd.entity] {
			storage.AddComponent(cmd.entity, cmd.component)
		}
	}

	for _, components := range c.spawns {
		storage.Spawn(components...)
	}

	// deferred functions may queue more deferred work; run until drained
	for len(c.defers) > 0 {
		pending := c.defers
		c.defers = nil
		for _, fn := range pending {
			fn()
		}
	}

	c.spawns = c.spawns[:0]
	c.deletes = c.deletes[:0]
	c.adds = c.adds[:0]
	c.removes = c.removes[:0]
}
