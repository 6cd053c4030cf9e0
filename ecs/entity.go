package ecs

// EntityID encodes both the slot generation (upper 32 bits) and the slot
// index (lower 32 bits). Two EntityIDs are equal only when both parts match,
// so a handle held across a despawn/respawn of the same slot compares
// unequal to the new entity.
type EntityID uint64

// NewEntityID creates an EntityID from a slot index and generation.
func NewEntityID(index uint32, generation uint32) EntityID {
	return EntityID(uint64(generation)<<32 | uint64(index))
}

// Index extracts the storage slot index from the entity ID.
func (e EntityID) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// Generation extracts the slot generation from the entity ID.
func (e EntityID) Generation() uint32 {
	return uint32(e >> 32)
}

type slot struct {
	generation uint32
	alive      bool
}

// allocator issues and recycles entity slots. A freed slot keeps its
// generation until the next allocate on that index bumps it, which
// invalidates every previously issued handle for the index.
type allocator struct {
	slots []slot
	free  []uint32
	masks []mask
	live  int
}

func newAllocator() *allocator {
	return &allocator{}
}

// allocate returns a fresh or recycled entity handle. Recycled slots come
// back with their generation incremented, never equal to a live handle.
func (a *allocator) allocate() EntityID {
	if n := len(a.free); n > 0 {
		index := a.free[n-1]
		a.free = a.free[:n-1]

		s := &a.slots[index]
		s.generation++
		s.alive = true
		a.live++
		return NewEntityID(index, s.generation)
	}

	index := uint32(len(a.slots))
	a.slots = append(a.slots, slot{alive: true})
	a.masks = append(a.masks, mask{})
	a.live++
	return NewEntityID(index, 0)
}

// alive reports whether id refers to the current occupant of its slot.
func (a *allocator) alive(id EntityID) bool {
	index := id.Index()
	if uint64(index) >= uint64(len(a.slots)) {
		return false
	}
	s := a.slots[index]
	return s.alive && s.generation == id.Generation()
}

// release frees the slot for reuse. The stored generation is left untouched
// until the next allocate on this index.
func (a *allocator) release(id EntityID) error {
	if !a.alive(id) {
		return StaleHandleError{Entity: id}
	}
	index := id.Index()
	a.slots[index].alive = false
	a.masks[index].clear()
	a.free = append(a.free, index)
	a.live--
	return nil
}

// maskOf returns the component membership bitset for a slot.
func (a *allocator) maskOf(index uint32) *mask {
	return &a.masks[index]
}
