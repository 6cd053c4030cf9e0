package ecs

import (
	"reflect"
	"unsafe"
)

type resourceEntry struct {
	ptr unsafe.Pointer
	typ reflect.Type
}

// AddResource stores a singleton value attached to no entity. Use this for
// per-frame input snapshots, frame timing, or other global state that an
// outer layer writes once per frame and systems read. The resource's
// component type draws its ComponentID from the same space as entity
// components, so declared access sets cover resources too.
//
// Adding a resource of a type that already exists replaces the value in
// place; pointers handed out earlier keep observing it.
func AddResource[T any](w *World, value T) *T {
	cid := TypeID[T]()
	if entry, ok := w.resources[cid]; ok {
		p := (*T)(entry.ptr)
		*p = value
		return p
	}

	boxed := new(T)
	*boxed = value
	w.resources[cid] = &resourceEntry{
		ptr: unsafe.Pointer(boxed),
		typ: reflect.TypeFor[T](),
	}
	return boxed
}

// GetResource returns a pointer to the World's resource of type T, or nil if
// none was added.
func GetResource[T any](w *World) *T {
	entry, ok := w.resources[TypeID[T]()]
	if !ok {
		return nil
	}
	return (*T)(entry.ptr)
}

// Resource provides cached access to a singleton World value. Systems embed
// Resource fields and the Scheduler initializes them during registration.
type Resource[T any] struct {
	world *World
	ptr   unsafe.Pointer
}

// NewResource creates a Resource accessor for the given world. If an
// initializer is provided and the resource does not exist yet, it is created
// with that value; otherwise a zero value is used. The resource is
// guaranteed to exist in the world after the call.
func NewResource[T any](w *World, initializer ...T) *Resource[T] {
	if GetResource[T](w) == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		AddResource(w, value)
	}
	r := &Resource[T]{}
	r.Init(w)
	return r
}

// Init initializes the Resource with a world reference. This is called
// automatically by the Scheduler during system registration.
func (r *Resource[T]) Init(w *World) {
	r.world = w
	r.refresh()
}

// Get returns a pointer to the resource value, or nil if the resource has
// not been added to the world.
func (r *Resource[T]) Get() *T {
	if r.ptr == nil {
		r.refresh()
	}
	return (*T)(r.ptr)
}

// Exists reports whether the resource has been added to the world.
func (r *Resource[T]) Exists() bool {
	if r.ptr == nil {
		r.refresh()
	}
	return r.ptr != nil
}

func (r *Resource[T]) refresh() {
	if r.world == nil {
		return
	}
	if p := GetResource[T](r.world); p != nil {
		r.ptr = unsafe.Pointer(p)
	} else {
		r.ptr = nil
	}
}
