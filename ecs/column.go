package ecs

import (
	"iter"
	"reflect"

	"github.com/kamstrup/intmap"
)

// ComponentRegistry manages component type registration for an ECS instance.
// Each Storage owns one, so independent worlds never share column layouts.
type ComponentRegistry struct {
	factories map[reflect.Type]func() column
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() column),
	}
}

// RegisterComponent registers a component type with the given registry.
// This must be called for each component type before it can be spawned.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	r.factories[t] = func() column {
		return &genericColumn[T]{
			slots: intmap.New[EntityId, int](64),
		}
	}
}

// Registered reports whether T has been registered.
func Registered[T any](r *ComponentRegistry) bool {
	_, ok := r.factories[reflect.TypeFor[T]()]
	return ok
}

func (r *ComponentRegistry) getFactory(t reflect.Type) func() column {
	return r.factories[t]
}

// column is the type-erased storage for one component type.
type column interface {
	insert(id EntityId, item any) bool
	remove(id EntityId)
	get(id EntityId) any
	has(id EntityId) bool
	len() int
	ids() iter.Seq[EntityId]
}

const columnBlockSize = 64

// genericColumn stores components of type T in fixed-size blocks so that
// pointers handed out by get stay valid while the column grows.
type genericColumn[T any] struct {
	blocks    []*[columnBlockSize]T
	owners    []*[columnBlockSize]EntityId
	slots     *intmap.Map[EntityId, int]
	freeSlots []int
	nextSlot  int
	count     int
}

func (c *genericColumn[T]) insert(id EntityId, item any) bool {
	var value T
	switch v := item.(type) {
	case *T:
		value = *v
	case T:
		value = v
	default:
		return false
	}

	if slot, ok := c.slots.Get(id); ok {
		c.blocks[slot/columnBlockSize][slot%columnBlockSize] = value
		return true
	}

	var slot int
	if n := len(c.freeSlots); n > 0 {
		slot = c.freeSlots[n-1]
		c.freeSlots = c.freeSlots[:n-1]
	} else {
		slot = c.nextSlot
		c.nextSlot++
		if slot/columnBlockSize >= len(c.blocks) {
			c.blocks = append(c.blocks, new([columnBlockSize]T))
			c.owners = append(c.owners, new([columnBlockSize]EntityId))
		}
	}

	c.blocks[slot/columnBlockSize][slot%columnBlockSize] = value
	c.owners[slot/columnBlockSize][slot%columnBlockSize] = id
	c.slots.Put(id, slot)
	c.count++
	return true
}

func (c *genericColumn[T]) remove(id EntityId) {
	slot, ok := c.slots.Get(id)
	if !ok {
		return
	}
	var zero T
	c.blocks[slot/columnBlockSize][slot%columnBlockSize] = zero
	c.owners[slot/columnBlockSize][slot%columnBlockSize] = 0
	c.slots.Del(id)
	c.freeSlots = append(c.freeSlots, slot)
	c.count--
}

func (c *genericColumn[T]) get(id EntityId) any {
	slot, ok := c.slots.Get(id)
	if !ok {
		return nil
	}
	return &c.blocks[slot/columnBlockSize][slot%columnBlockSize]
}

func (c *genericColumn[T]) has(id EntityId) bool {
	_, ok := c.slots.Get(id)
	return ok
}

func (c *genericColumn[T]) len() int {
	return c.count
}

// ids yields owners in slot order, which is spawn order until slots are reused.
func (c *genericColumn[T]) ids() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		for slot := 0; slot < c.nextSlot; slot++ {
			id := c.owners[slot/columnBlockSize][slot%columnBlockSize]
			if id == 0 {
				continue
			}
			if !yield(id) {
				return
			}
		}
	}
}
