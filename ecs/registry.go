package ecs

import (
	"reflect"
	"sync"
)

// ComponentID is a process-wide identifier for a component type. IDs are
// dense small integers assigned in first-use order and stay stable for the
// lifetime of the process.
type ComponentID uint32

var (
	typeIDMu  sync.RWMutex
	typeIDs   = make(map[reflect.Type]ComponentID)
	typesByID []reflect.Type
)

// TypeID returns the process-wide ComponentID for T, assigning one on first
// use.
func TypeID[T any]() ComponentID {
	return typeIDOf(reflect.TypeFor[T]())
}

func typeIDOf(t reflect.Type) ComponentID {
	typeIDMu.RLock()
	id, ok := typeIDs[t]
	typeIDMu.RUnlock()
	if ok {
		return id
	}

	typeIDMu.Lock()
	defer typeIDMu.Unlock()
	if id, ok := typeIDs[t]; ok {
		return id
	}
	id = ComponentID(len(typesByID))
	typeIDs[t] = id
	typesByID = append(typesByID, t)
	return id
}

// typeOf returns the reflect.Type a ComponentID was assigned to.
func typeOf(id ComponentID) reflect.Type {
	typeIDMu.RLock()
	defer typeIDMu.RUnlock()
	if int(id) >= len(typesByID) {
		return nil
	}
	return typesByID[id]
}

// Registry manages component type registration for a World. Registration is
// explicit: a component type must be registered before it can be stored, and
// using an unregistered type fails with UnregisteredTypeError. Each World
// has its own Registry, allowing independent worlds to coexist with
// different component rosters.
type Registry struct {
	factories map[ComponentID]func() iStore
}

// NewRegistry creates an empty component registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[ComponentID]func() iStore),
	}
}

// Register registers component type T with the given registry. This must be
// called for each component type before a World built on the registry can
// store it.
func Register[T any](r *Registry) {
	id := TypeID[T]()
	r.factories[id] = func() iStore {
		return newStore[T]()
	}
}

// registered reports whether the component type is known to this registry.
func (r *Registry) registered(id ComponentID) bool {
	_, ok := r.factories[id]
	return ok
}

// newStore builds a fresh store for the component type. Returns nil if the
// type is not registered.
func (r *Registry) newStore(id ComponentID) iStore {
	factory := r.factories[id]
	if factory == nil {
		return nil
	}
	return factory()
}
