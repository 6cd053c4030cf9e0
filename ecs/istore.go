package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

// iStore is the type-erased face of a component store. The World resolves a
// store once by ComponentID and hands the concretely-typed store to the
// generic accessors, so the erasure boundary is crossed only at registration
// and lookup.
type iStore interface {
	insertErased(id EntityID, value any) bool
	removeErased(id EntityID) bool
	containsID(id EntityID) bool
	getPointer(id EntityID) unsafe.Pointer
	length() int
	entities() iter.Seq[EntityID]
	componentType() reflect.Type
}
