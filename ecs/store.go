package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

const storeBlockSize = 64

// store is a generic per-component-type storage keyed by entity slot index.
// Values live in fixed-size blocks so pointers into the store stay valid
// while the value exists. Each filled slot also records the generation it
// was written under, which makes reads through a recycled handle degrade to
// "nothing found" instead of aliasing the new occupant.
//
// All operations are total over arbitrary EntityIDs, including indices that
// were never allocated.
type store[T any] struct {
	blocks [][storeBlockSize]T
	filled [][storeBlockSize]bool
	gens   [][storeBlockSize]uint32
	count  int
}

func newStore[T any]() *store[T] {
	return &store[T]{}
}

func (s *store[T]) ensure(blockIdx int) {
	for blockIdx >= len(s.blocks) {
		s.blocks = append(s.blocks, [storeBlockSize]T{})
		s.filled = append(s.filled, [storeBlockSize]bool{})
		s.gens = append(s.gens, [storeBlockSize]uint32{})
	}
}

// insert stores value for id's slot, stamping id's generation. The previous
// value is returned only if it was written under the same generation; a
// value left from a stale generation is silently discarded.
func (s *store[T]) insert(id EntityID, value T) (prev T, replaced bool) {
	index := id.Index()
	blockIdx := int(index) / storeBlockSize
	slotIdx := int(index) % storeBlockSize
	s.ensure(blockIdx)

	if s.filled[blockIdx][slotIdx] {
		if s.gens[blockIdx][slotIdx] == id.Generation() {
			prev = s.blocks[blockIdx][slotIdx]
			replaced = true
		}
	} else {
		s.count++
	}

	s.blocks[blockIdx][slotIdx] = value
	s.filled[blockIdx][slotIdx] = true
	s.gens[blockIdx][slotIdx] = id.Generation()
	return prev, replaced
}

// remove deletes and returns the value only if the stored generation matches
// id's generation.
func (s *store[T]) remove(id EntityID) (T, bool) {
	var zero T
	index := id.Index()
	blockIdx := int(index) / storeBlockSize
	slotIdx := int(index) % storeBlockSize

	if blockIdx >= len(s.blocks) || !s.filled[blockIdx][slotIdx] {
		return zero, false
	}
	if s.gens[blockIdx][slotIdx] != id.Generation() {
		return zero, false
	}

	value := s.blocks[blockIdx][slotIdx]
	s.blocks[blockIdx][slotIdx] = zero
	s.filled[blockIdx][slotIdx] = false
	s.count--
	return value, true
}

// get returns a pointer to the stored value, or nil unless a value exists
// for id's exact generation.
func (s *store[T]) get(id EntityID) *T {
	index := id.Index()
	blockIdx := int(index) / storeBlockSize
	slotIdx := int(index) % storeBlockSize

	if blockIdx >= len(s.blocks) || !s.filled[blockIdx][slotIdx] {
		return nil
	}
	if s.gens[blockIdx][slotIdx] != id.Generation() {
		return nil
	}
	return &s.blocks[blockIdx][slotIdx]
}

func (s *store[T]) contains(id EntityID) bool {
	return s.get(id) != nil
}

// insertErased accepts a value of type T or *T, mirroring insert.
func (s *store[T]) insertErased(id EntityID, value any) bool {
	if v, ok := value.(T); ok {
		s.insert(id, v)
		return true
	}
	if p, ok := value.(*T); ok {
		s.insert(id, *p)
		return true
	}
	return false
}

func (s *store[T]) removeErased(id EntityID) bool {
	_, ok := s.remove(id)
	return ok
}

func (s *store[T]) containsID(id EntityID) bool {
	return s.contains(id)
}

func (s *store[T]) getPointer(id EntityID) unsafe.Pointer {
	p := s.get(id)
	if p == nil {
		return nil
	}
	return unsafe.Pointer(p)
}

func (s *store[T]) length() int {
	return s.count
}

// entities iterates the stored values' handles in ascending slot order,
// reconstructed from the stamped generations.
func (s *store[T]) entities() iter.Seq[EntityID] {
	return func(yield func(EntityID) bool) {
		for blockIdx := range s.blocks {
			for slotIdx := 0; slotIdx < storeBlockSize; slotIdx++ {
				if !s.filled[blockIdx][slotIdx] {
					continue
				}
				index := uint32(blockIdx*storeBlockSize + slotIdx)
				id := NewEntityID(index, s.gens[blockIdx][slotIdx])
				if !yield(id) {
					return
				}
			}
		}
	}
}

func (s *store[T]) componentType() reflect.Type {
	return reflect.TypeFor[T]()
}
