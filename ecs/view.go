package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

type fieldKind uint8

const (
	fieldRequired fieldKind = iota
	fieldOptional
	fieldWithout
)

type viewField struct {
	typ    reflect.Type
	id     ComponentID
	kind   fieldKind
	offset uintptr
}

// View represents a query signature: a set of component types an entity must
// have, may have, or must not have. The type T is a struct with pointer
// fields, one per component type. Embedded fields are always required; named
// fields can be marked with the `ecs:"optional"` tag (nil when absent) or
// the `ecs:"without"` tag (the entity must not have the component; the field
// is always nil).
//
// A View is lazy and restartable: each Iter call re-evaluates current World
// state in ascending entity index order. It is not a snapshot. Structural
// changes (spawn, despawn, insert, remove) during an iteration pass must go
// through Commands; performing them directly mid-pass leaves that pass
// unspecified.
type View[T any] struct {
	world  *World
	fields []viewField
}

// NewView creates a view over the given world for signature struct T.
func NewView[T any](w *World) *View[T] {
	v := &View[T]{}
	v.Init(w)
	return v
}

// Init initializes or re-initializes the View with a world reference.
// Called by the Scheduler during system registration.
func (v *View[T]) Init(w *World) {
	var zero T
	structType := reflect.TypeOf(zero)
	if structType.Kind() != reflect.Struct {
		panic("ecs: View type parameter must be a struct")
	}

	fields := make([]viewField, 0, structType.NumField())
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)
		if field.Type.Kind() != reflect.Ptr {
			panic("ecs: View struct fields must be pointer types")
		}
		componentType := field.Type.Elem()

		kind := fieldRequired
		if !field.Anonymous {
			switch tag := field.Tag.Get("ecs"); tag {
			case "":
			case "optional":
				kind = fieldOptional
			case "without":
				kind = fieldWithout
			default:
				panic("ecs: invalid ecs tag value: \"" + tag + "\" (only \"optional\" and \"without\" are supported)")
			}
		}

		fields = append(fields, viewField{
			typ:    componentType,
			id:     typeIDOf(componentType),
			kind:   kind,
			offset: field.Offset,
		})
	}

	v.world = w
	v.fields = fields
}

// viewSignature exposes the signature for the scheduler's access validation.
func (v *View[T]) viewSignature() []viewField {
	return v.fields
}

// resolveStores looks up the store for each field once, so the per-entity
// hot path operates on concretely resolved stores.
func (v *View[T]) resolveStores() []iStore {
	stores := make([]iStore, len(v.fields))
	for i, f := range v.fields {
		if st, ok := v.world.stores.Get(f.id); ok {
			stores[i] = st
		}
	}
	return stores
}

func (v *View[T]) fill(stores []iStore, id EntityID, ptr *T) bool {
	if !v.world.Alive(id) {
		return false
	}

	structPtr := unsafe.Pointer(ptr)
	for i := range v.fields {
		f := &v.fields[i]
		fieldPtr := (*unsafe.Pointer)(unsafe.Pointer(uintptr(structPtr) + f.offset))

		var compPtr unsafe.Pointer
		if stores[i] != nil {
			compPtr = stores[i].getPointer(id)
		}

		switch f.kind {
		case fieldRequired:
			if compPtr == nil {
				return false
			}
			*fieldPtr = compPtr
		case fieldOptional:
			*fieldPtr = compPtr
		case fieldWithout:
			if compPtr != nil {
				return false
			}
			*fieldPtr = nil
		}
	}
	return true
}

// Fill populates the provided struct pointer with component references for
// the given entity. Returns false if the entity is dead, is missing a
// required component, or has a component marked without.
func (v *View[T]) Fill(id EntityID, ptr *T) bool {
	return v.fill(v.resolveStores(), id, ptr)
}

// Get returns a populated signature struct for the given entity, or nil if
// the signature does not hold for it.
func (v *View[T]) Get(id EntityID) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

// driver picks the candidate sequence to test against the signature: the
// smallest required store, or all live entities when the signature has no
// required component.
func (v *View[T]) driver(stores []iStore) iter.Seq[EntityID] {
	var smallest iStore
	for i, f := range v.fields {
		if f.kind != fieldRequired {
			continue
		}
		if stores[i] == nil {
			// A required store with no values means no entity can match.
			return func(yield func(EntityID) bool) {}
		}
		if smallest == nil || stores[i].length() < smallest.length() {
			smallest = stores[i]
		}
	}
	if smallest == nil {
		return v.world.liveEntities()
	}
	return smallest.entities()
}

// Iter returns an iterator over all entities satisfying the signature,
// yielding (EntityID, T) pairs in ascending entity index order. Each stored
// component value is yielded through at most one pointer per pass.
func (v *View[T]) Iter() iter.Seq2[EntityID, T] {
	return func(yield func(EntityID, T) bool) {
		stores := v.resolveStores()

		var result T
		for id := range v.driver(stores) {
			if !v.fill(stores, id, &result) {
				continue
			}
			if !yield(id, result) {
				return
			}
		}
	}
}

// Values returns an iterator over just the signature structs, without entity
// IDs.
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Count returns the number of entities currently satisfying the signature.
func (v *View[T]) Count() int {
	n := 0
	for range v.Iter() {
		n++
	}
	return n
}
