package ecs

import "iter"

// Query wraps a View with per-frame caching for repeated iteration inside
// systems. The Scheduler calls Execute on a system's Query fields before
// every run, so system code can iterate the cache any number of times during
// a frame without re-walking storage.
type Query[T any] struct {
	view  *View[T]
	world *World

	cachedEntities []EntityID
	cachedItems    []T
	cacheValid     bool
}

// NewQuery creates a new Query over the given world.
func NewQuery[T any](w *World) *Query[T] {
	q := &Query[T]{}
	q.Init(w)
	return q
}

// Init initializes or re-initializes the Query with a world reference.
// Called by the Scheduler during system registration.
func (q *Query[T]) Init(w *World) {
	q.view = NewView[T](w)
	q.world = w
	q.cacheValid = false
}

func (q *Query[T]) viewSignature() []viewField {
	return q.view.viewSignature()
}

// Execute rebuilds the entity and component caches from current World state.
// Called automatically by the Scheduler before systems run.
func (q *Query[T]) Execute() {
	q.cachedEntities = q.cachedEntities[:0]
	q.cachedItems = q.cachedItems[:0]

	for id, item := range q.view.Iter() {
		q.cachedEntities = append(q.cachedEntities, id)
		q.cachedItems = append(q.cachedItems, item)
	}
	q.cacheValid = true
}

// Iter returns an iterator over cached entity IDs and signature structs.
// Panics if Execute has not been called.
func (q *Query[T]) Iter() iter.Seq2[EntityID, T] {
	if !q.cacheValid {
		panic("ecs: Query.Iter called before Query.Execute")
	}
	return func(yield func(EntityID, T) bool) {
		for i := range q.cachedEntities {
			if !yield(q.cachedEntities[i], q.cachedItems[i]) {
				return
			}
		}
	}
}

// Values returns an iterator over cached signature structs only.
// Panics if Execute has not been called.
func (q *Query[T]) Values() iter.Seq[T] {
	if !q.cacheValid {
		panic("ecs: Query.Values called before Query.Execute")
	}
	return func(yield func(T) bool) {
		for i := range q.cachedItems {
			if !yield(q.cachedItems[i]) {
				return
			}
		}
	}
}

// Get returns the populated signature struct for one entity, bypassing the
// cache.
func (q *Query[T]) Get(id EntityID) *T {
	return q.view.Get(id)
}

// Len returns the number of cached matches. Panics if Execute has not been
// called.
func (q *Query[T]) Len() int {
	if !q.cacheValid {
		panic("ecs: Query.Len called before Query.Execute")
	}
	return len(q.cachedEntities)
}
