package ecs

import (
	"github.com/kamstrup/intmap"
)

// Frame is the handle a system receives for one frame of execution. It
// scopes World access to the system's declared read/write sets and carries
// the system's command buffer for deferred structural changes. Touching a
// component type outside the declared sets panics with AccessViolationError,
// since that invalidates the scheduler's concurrency analysis.
type Frame struct {
	// DeltaTime is the frame's elapsed time in seconds.
	DeltaTime float64
	// Commands buffers structural operations until the frame completes.
	Commands *Commands

	world  *World
	system string
	reads  *intmap.Set[ComponentID]
	writes *intmap.Set[ComponentID]
}

// NewFrame creates an unrestricted frame for driving systems outside the
// scheduler, mainly in tests and tools. Frames handed to scheduled systems
// are access-scoped instead.
func NewFrame(w *World, dt float64) *Frame {
	return &Frame{
		DeltaTime: dt,
		Commands:  newCommands(),
		world:     w,
	}
}

// Alive reports whether id refers to a live entity.
func (f *Frame) Alive(id EntityID) bool {
	return f.world.Alive(id)
}

func (f *Frame) restricted() bool {
	return f.reads != nil || f.writes != nil
}

func (f *Frame) canRead(cid ComponentID) bool {
	if !f.restricted() {
		return true
	}
	return (f.reads != nil && f.reads.Has(cid)) || (f.writes != nil && f.writes.Has(cid))
}

func (f *Frame) canWrite(cid ComponentID) bool {
	if !f.restricted() {
		return true
	}
	return f.writes != nil && f.writes.Has(cid)
}

// ReadComponent returns a pointer to the entity's component of type T for
// reading. The component type must be in the system's declared read or write
// set. Returns nil if the entity does not have the component, and an error
// for stale handles or unregistered types.
func ReadComponent[T any](f *Frame, id EntityID) (*T, error) {
	cid := TypeID[T]()
	if !f.canRead(cid) {
		panic(AccessViolationError{System: f.system, Type: typeOf(cid), Write: false})
	}
	return Get[T](f.world, id)
}

// WriteComponent returns a pointer to the entity's component of type T for
// mutation. The component type must be in the system's declared write set.
func WriteComponent[T any](f *Frame, id EntityID) (*T, error) {
	cid := TypeID[T]()
	if !f.canWrite(cid) {
		panic(AccessViolationError{System: f.system, Type: typeOf(cid), Write: true})
	}
	return Get[T](f.world, id)
}

// ReadResource returns the world resource of type T. The resource's type
// must be in the system's declared read or write set.
func ReadResource[T any](f *Frame) *T {
	cid := TypeID[T]()
	if !f.canRead(cid) {
		panic(AccessViolationError{System: f.system, Type: typeOf(cid), Write: false})
	}
	return GetResource[T](f.world)
}

// WriteResource returns the world resource of type T for mutation. The
// resource's type must be in the system's declared write set.
func WriteResource[T any](f *Frame) *T {
	cid := TypeID[T]()
	if !f.canWrite(cid) {
		panic(AccessViolationError{System: f.system, Type: typeOf(cid), Write: true})
	}
	return GetResource[T](f.world)
}
