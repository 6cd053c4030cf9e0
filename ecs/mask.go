package ecs

import (
	"iter"
	"math/bits"
)

// mask is a growable bitset keyed by ComponentID. The World keeps one per
// entity slot, in lockstep with store membership, so despawn only visits
// stores that actually hold a value for the entity.
type mask struct {
	words []uint64
}

func (m *mask) set(id ComponentID) {
	w := int(id >> 6)
	for w >= len(m.words) {
		m.words = append(m.words, 0)
	}
	m.words[w] |= 1 << (id & 63)
}

func (m *mask) unset(id ComponentID) {
	w := int(id >> 6)
	if w >= len(m.words) {
		return
	}
	m.words[w] &^= 1 << (id & 63)
}

func (m *mask) has(id ComponentID) bool {
	w := int(id >> 6)
	if w >= len(m.words) {
		return false
	}
	return m.words[w]&(1<<(id&63)) != 0
}

func (m *mask) clear() {
	for i := range m.words {
		m.words[i] = 0
	}
}

// bits iterates the set ComponentIDs in ascending order.
func (m *mask) bits() iter.Seq[ComponentID] {
	return func(yield func(ComponentID) bool) {
		for w, word := range m.words {
			for word != 0 {
				low := word & -word
				id := ComponentID(w<<6 + bits.TrailingZeros64(low))
				if !yield(id) {
					return
				}
				word &^= low
			}
		}
	}
}
