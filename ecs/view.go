package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

var entityIdType = reflect.TypeFor[EntityId]()

// View represents a query for entities with a specific combination of components.
// The type T must be a struct whose fields are pointers to component types.
// A field of type EntityId (embedded or named) receives the entity's ID.
// Named pointer fields can be marked optional with the `ecs:"optional"` struct tag.
type View[T any] struct {
	storage     *Storage
	types       []reflect.Type
	optional    []bool
	fieldOffset []uintptr
	idOffset    uintptr
	hasId       bool
}

// NewView creates a new view for the given struct type
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("View type parameter must be a struct")
	}

	v := &View[T]{storage: storage}
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityIdType {
			v.idOffset = field.Offset
			v.hasId = true
			continue
		}

		if field.Type.Kind() != reflect.Ptr {
			panic("View struct fields must be pointer types or EntityId")
		}

		isOptional := false
		if tag := field.Tag.Get("ecs"); tag != "" {
			if tag != "optional" || field.Anonymous {
				panic("invalid ecs tag on field " + field.Name + ": only named fields may be \"optional\"")
			}
			isOptional = true
		}

		v.types = append(v.types, field.Type.Elem())
		v.optional = append(v.optional, isOptional)
		v.fieldOffset = append(v.fieldOffset, field.Offset)
	}

	if len(v.types) == 0 {
		panic("View struct must reference at least one component")
	}
	return v
}

// Fill populates the provided struct pointer with component data for the given entity.
// Returns false if the entity is dead or missing any required component.
func (v *View[T]) Fill(id EntityId, ptr *T) bool {
	if !v.storage.Alive(id) {
		return false
	}
	return v.fill(id, unsafe.Pointer(ptr))
}

func (v *View[T]) fill(id EntityId, structPtr unsafe.Pointer) bool {
	for i, typ := range v.types {
		fieldPtr := unsafe.Add(structPtr, v.fieldOffset[i])

		var component any
		if col := v.storage.column(typ); col != nil {
			component = col.get(id)
		}

		if component == nil {
			if !v.optional[i] {
				return false
			}
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}

		*(*unsafe.Pointer)(fieldPtr) = reflect.ValueOf(component).UnsafePointer()
	}

	if v.hasId {
		*(*EntityId)(unsafe.Add(structPtr, v.idOffset)) = id
	}
	return true
}

// Get returns a populated view struct for the given entity, or nil if the entity
// doesn't have all the required components
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

// Matches reports whether the entity carries every required component
func (v *View[T]) Matches(id EntityId) bool {
	if !v.storage.Alive(id) {
		return false
	}
	for i, typ := range v.types {
		if v.optional[i] {
			continue
		}
		col := v.storage.column(typ)
		if col == nil || !col.has(id) {
			return false
		}
	}
	return true
}

// driver picks the smallest required column to iterate; nil means no entity can match.
func (v *View[T]) driver() column {
	var best column
	for i, typ := range v.types {
		if v.optional[i] {
			continue
		}
		col := v.storage.column(typ)
		if col == nil {
			return nil
		}
		if best == nil || col.len() < best.len() {
			best = col
		}
	}
	return best
}

// Iter returns an iterator over all entities that have every required component.
// A view with only optional fields walks every live entity.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		var ids iter.Seq[EntityId]
		if v.allOptional() {
			ids = v.storage.Entities()
		} else if col := v.driver(); col != nil {
			ids = col.ids()
		} else {
			return
		}

		var result T
		resultPtr := unsafe.Pointer(&result)
		for id := range ids {
			if !v.fill(id, resultPtr) {
				continue
			}
			if !yield(id, result) {
				return
			}
		}
	}
}

// Values returns an iterator over just the view structs
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Count returns the number of matching entities
func (v *View[T]) Count() int {
	n := 0
	for range v.Iter() {
		n++
	}
	return n
}

// Spawn creates a new entity from the non-nil component fields of data
func (v *View[T]) Spawn(data T) EntityId {
	structPtr := unsafe.Pointer(&data)

	components := make([]any, 0, len(v.types))
	for i, typ := range v.types {
		componentPtr := *(*unsafe.Pointer)(unsafe.Add(structPtr, v.fieldOffset[i]))
		if componentPtr == nil {
			if !v.optional[i] {
				panic("required component " + typ.String() + " is nil in View.Spawn")
			}
			continue
		}
		components = append(components, reflect.NewAt(typ, componentPtr).Elem().Interface())
	}

	return v.storage.Spawn(components...)
}

func (v *View[T]) allOptional() bool {
	for _, opt := range v.optional {
		if !opt {
			return false
		}
	}
	return true
}
