package ecs

import (
	"iter"
	"reflect"
	"sort"

	"github.com/kamstrup/intmap"
)

// World owns the entity allocator and one component store per registered
// type. It is the single shared mutable resource of the engine: systems and
// queries observe and mutate it, and the scheduler's access-set partition
// decides which systems may touch it concurrently.
type World struct {
	registry  *Registry
	alloc     *allocator
	stores    *intmap.Map[ComponentID, iStore]
	storeIDs  []ComponentID
	resources map[ComponentID]*resourceEntry
}

// NewWorld creates a new World using the given component registry.
func NewWorld(registry *Registry) *World {
	return &World{
		registry:  registry,
		alloc:     newAllocator(),
		stores:    intmap.New[ComponentID, iStore](64),
		resources: make(map[ComponentID]*resourceEntry),
	}
}

// Spawn allocates a new entity. The entity initially has no components.
func (w *World) Spawn() EntityID {
	return w.alloc.allocate()
}

// Despawn removes the entity from every store that holds a value for it and
// frees its slot for reuse. Fails with StaleHandleError if id is not alive.
func (w *World) Despawn(id EntityID) error {
	if !w.alloc.alive(id) {
		return StaleHandleError{Entity: id}
	}

	// The membership mask is kept in lockstep with store contents, so only
	// owning stores are visited.
	for cid := range w.alloc.maskOf(id.Index()).bits() {
		if st, ok := w.stores.Get(cid); ok {
			st.removeErased(id)
		}
	}
	return w.alloc.release(id)
}

// Alive reports whether id refers to a live entity.
func (w *World) Alive(id EntityID) bool {
	return w.alloc.alive(id)
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return w.alloc.live
}

// storeFor resolves the store for a component type, creating it lazily for
// registered types.
func (w *World) storeFor(cid ComponentID) (iStore, error) {
	if st, ok := w.stores.Get(cid); ok {
		return st, nil
	}
	st := w.registry.newStore(cid)
	if st == nil {
		return nil, UnregisteredTypeError{Type: typeOf(cid)}
	}
	w.stores.Put(cid, st)
	w.storeIDs = append(w.storeIDs, cid)
	return st, nil
}

// lookupStore is like storeFor but does not create missing stores. A nil
// store with nil error means the type is registered but holds nothing yet.
func (w *World) lookupStore(cid ComponentID) (iStore, error) {
	if st, ok := w.stores.Get(cid); ok {
		return st, nil
	}
	if !w.registry.registered(cid) {
		return nil, UnregisteredTypeError{Type: typeOf(cid)}
	}
	return nil, nil
}

// Insert stores a component value for a live entity, replacing and returning
// any previous value of the same type. A nil prev means the entity did not
// have the component. Fails with StaleHandleError for dead handles and
// UnregisteredTypeError for unknown component types.
func Insert[T any](w *World, id EntityID, value T) (prev *T, err error) {
	if !w.alloc.alive(id) {
		return nil, StaleHandleError{Entity: id}
	}
	cid := TypeID[T]()
	st, err := w.storeFor(cid)
	if err != nil {
		return nil, err
	}

	old, replaced := st.(*store[T]).insert(id, value)
	w.alloc.maskOf(id.Index()).set(cid)
	if replaced {
		return &old, nil
	}
	return nil, nil
}

// Remove deletes the entity's component of type T, returning the removed
// value or nil if the entity did not have one.
func Remove[T any](w *World, id EntityID) (*T, error) {
	if !w.alloc.alive(id) {
		return nil, StaleHandleError{Entity: id}
	}
	cid := TypeID[T]()
	st, err := w.lookupStore(cid)
	if err != nil || st == nil {
		return nil, err
	}

	value, ok := st.(*store[T]).remove(id)
	if !ok {
		return nil, nil
	}
	w.alloc.maskOf(id.Index()).unset(cid)
	return &value, nil
}

// Get returns a pointer to the entity's component of type T, or nil if the
// entity does not have one. The pointer stays valid until the component is
// removed or the entity despawned; mutating through it mutates the stored
// value.
func Get[T any](w *World, id EntityID) (*T, error) {
	if !w.alloc.alive(id) {
		return nil, StaleHandleError{Entity: id}
	}
	st, err := w.lookupStore(TypeID[T]())
	if err != nil || st == nil {
		return nil, err
	}
	return st.(*store[T]).get(id), nil
}

// Has reports whether the entity has a component of type T.
func Has[T any](w *World, id EntityID) (bool, error) {
	if !w.alloc.alive(id) {
		return false, StaleHandleError{Entity: id}
	}
	st, err := w.lookupStore(TypeID[T]())
	if err != nil || st == nil {
		return false, err
	}
	return st.containsID(id), nil
}

// insertComponent is the type-erased insert used by command flushing.
func (w *World) insertComponent(id EntityID, value any) error {
	if !w.alloc.alive(id) {
		return StaleHandleError{Entity: id}
	}
	t := reflect.TypeOf(value)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	cid := typeIDOf(t)
	st, err := w.storeFor(cid)
	if err != nil {
		return err
	}
	if st.insertErased(id, value) {
		w.alloc.maskOf(id.Index()).set(cid)
	}
	return nil
}

// removeComponent is the type-erased remove used by command flushing.
func (w *World) removeComponent(id EntityID, t reflect.Type) error {
	if !w.alloc.alive(id) {
		return StaleHandleError{Entity: id}
	}
	cid := typeIDOf(t)
	st, err := w.lookupStore(cid)
	if err != nil || st == nil {
		return err
	}
	if st.removeErased(id) {
		w.alloc.maskOf(id.Index()).unset(cid)
	}
	return nil
}

// liveEntities iterates all live entity handles in ascending index order.
func (w *World) liveEntities() iter.Seq[EntityID] {
	return func(yield func(EntityID) bool) {
		for index := range w.alloc.slots {
			s := w.alloc.slots[index]
			if !s.alive {
				continue
			}
			if !yield(NewEntityID(uint32(index), s.generation)) {
				return
			}
		}
	}
}

// WorldStats provides a snapshot of World contents.
type WorldStats struct {
	EntityCount   int
	StoreCount    int
	ResourceCount int
	Stores        []StoreStats
	ResourceTypes []string
}

// StoreStats describes one component store.
type StoreStats struct {
	Type  string
	Count int
}

// CollectStats gathers statistics about entities, stores, and resources.
func (w *World) CollectStats() WorldStats {
	stats := WorldStats{
		EntityCount: w.alloc.live,
		StoreCount:  len(w.storeIDs),
	}

	ids := make([]ComponentID, len(w.storeIDs))
	copy(ids, w.storeIDs)
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	for _, cid := range ids {
		st, _ := w.stores.Get(cid)
		stats.Stores = append(stats.Stores, StoreStats{
			Type:  st.componentType().String(),
			Count: st.length(),
		})
	}

	for _, entry := range w.resources {
		stats.ResourceTypes = append(stats.ResourceTypes, entry.typ.String())
	}
	sort.Strings(stats.ResourceTypes)
	stats.ResourceCount = len(stats.ResourceTypes)
	return stats
}
