package ecs

import (
	"iter"
	"reflect"
	"sort"
	"unsafe"
)

// Storage is the main ECS storage interface
type Storage struct {
	registry    *ComponentRegistry
	columns     map[reflect.Type]column
	generations []uint32
	alive       []bool
	freeIndices []uint32
	entityCount int
	singletons  map[reflect.Type]*singletonEntry
	version     uint64
}

type singletonEntry struct {
	value   reflect.Value
	dataPtr unsafe.Pointer
}

// NewStorage creates a new ECS storage system with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry: registry,
		columns:  make(map[reflect.Type]column),
		// slot 0 is reserved so the zero EntityId never names a live entity
		generations: []uint32{0},
		alive:       []bool{false},
		singletons:  make(map[reflect.Type]*singletonEntry),
	}
}

// Registry returns the component registry backing this storage
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// Version increases on every structural change (spawn, delete, add/remove component).
func (s *Storage) Version() uint64 {
	return s.version
}

// Spawn creates a new entity with the provided components
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("cannot spawn entity without components")
	}

	var index uint32
	if n := len(s.freeIndices); n > 0 {
		index = s.freeIndices[n-1]
		s.freeIndices = s.freeIndices[:n-1]
	} else {
		index = uint32(len(s.generations))
		s.generations = append(s.generations, 0)
		s.alive = append(s.alive, false)
	}

	s.alive[index] = true
	s.entityCount++
	id := NewEntityId(index, s.generations[index])

	for _, comp := range components {
		s.insert(id, comp)
	}
	s.version++
	return id
}

// Alive reports whether id names an entity that has not been deleted
func (s *Storage) Alive(id EntityId) bool {
	index := id.Index()
	if index == 0 || int(index) >= len(s.alive) {
		return false
	}
	return s.alive[index] && s.generations[index] == id.Generation()
}

// Delete removes all data related to the entity ID. Stale IDs are ignored.
func (s *Storage) Delete(id EntityId) bool {
	if !s.Alive(id) {
		return false
	}
	for _, col := range s.columns {
		col.remove(id)
	}
	index := id.Index()
	s.alive[index] = false
	s.generations[index]++
	s.freeIndices = append(s.freeIndices, index)
	s.entityCount--
	s.version++
	return true
}

// AddComponent attaches (or replaces) a component on a live entity
func (s *Storage) AddComponent(id EntityId, component any) bool {
	if !s.Alive(id) {
		return false
	}
	s.insert(id, component)
	s.version++
	return true
}

// RemoveComponent detaches a component. An entity left without components is deleted.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) bool {
	if !s.Alive(id) {
		return false
	}
	col, ok := s.columns[compType]
	if !ok || !col.has(id) {
		return false
	}
	col.remove(id)
	s.version++

	if len(s.ComponentTypes(id)) == 0 {
		s.Delete(id)
	}
	return true
}

// GetComponent returns a pointer to the component of the given type, or nil
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	if !s.Alive(id) {
		return nil
	}
	col, ok := s.columns[compType]
	if !ok {
		return nil
	}
	return col.get(id)
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	if !s.Alive(id) {
		return false
	}
	col, ok := s.columns[compType]
	return ok && col.has(id)
}

// ComponentTypes lists the component types attached to id, sorted by name
func (s *Storage) ComponentTypes(id EntityId) []reflect.Type {
	var types []reflect.Type
	if !s.Alive(id) {
		return types
	}
	for typ, col := range s.columns {
		if col.has(id) {
			types = append(types, typ)
		}
	}
	sort.Sort(byTypeName(types))
	return types
}

// Entities iterates every live entity in index order
func (s *Storage) Entities() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		for index := 1; index < len(s.alive); index++ {
			if !s.alive[index] {
				continue
			}
			if !yield(NewEntityId(uint32(index), s.generations[index])) {
				return
			}
		}
	}
}

// EntityCount returns the number of live entities
func (s *Storage) EntityCount() int {
	return s.entityCount
}

func (s *Storage) insert(id EntityId, component any) {
	compType := componentType(component)
	col, ok := s.columns[compType]
	if !ok {
		factory := s.registry.getFactory(compType)
		if factory == nil {
			panic("component type " + compType.String() + " not registered")
		}
		col = factory()
		s.columns[compType] = col
	}
	col.insert(id, component)
}

func (s *Storage) column(compType reflect.Type) column {
	return s.columns[compType]
}

// componentType resolves the stored type of a component value, rejecting
// kinds that can't be stored by value.
func componentType(component any) reflect.Type {
	compType := reflect.TypeOf(component)
	if compType.Kind() == reflect.Ptr {
		compType = compType.Elem()
	}
	switch compType.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func:
		panic("components cannot be pointers, maps, channels, or functions")
	}
	return compType
}

// AddSingleton stores value as the singleton of its type, replacing any previous one
func (s *Storage) AddSingleton(value any) {
	typ := reflect.TypeOf(value)
	ptr := reflect.New(typ)
	ptr.Elem().Set(reflect.ValueOf(value))
	s.singletons[typ] = &singletonEntry{
		value:   ptr,
		dataPtr: ptr.UnsafePointer(),
	}
}

// ReadSingleton points *target at the stored singleton. target must be a **T.
// Returns false if no singleton of type T exists.
func (s *Storage) ReadSingleton(target any) bool {
	targetValue := reflect.ValueOf(target)
	if targetValue.Kind() != reflect.Ptr || targetValue.Elem().Kind() != reflect.Ptr {
		panic("ReadSingleton target must be a pointer to a pointer")
	}
	entry := s.singletons[targetValue.Elem().Type().Elem()]
	if entry == nil {
		return false
	}
	targetValue.Elem().Set(entry.value)
	return true
}

// RemoveSingleton drops the singleton of the given type
func (s *Storage) RemoveSingleton(typ reflect.Type) {
	delete(s.singletons, typ)
}

func (s *Storage) getSingletonEntry(typ reflect.Type) *singletonEntry {
	return s.singletons[typ]
}

type byTypeName []reflect.Type

func (a byTypeName) Len() int           { return len(a) }
func (a byTypeName) Swap(i, j int)      { a[i], a[j] = a[j], a[i] }
func (a byTypeName) Less(i, j int) bool { return a[i].String() < a[j].String() }

type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent fetches a typed component pointer, or nil if absent
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}
