package ecs

import (
	"fmt"
	"reflect"
)

// StaleHandleError reports use of an EntityID whose generation no longer
// matches its slot: a despawned, double-freed, or never-allocated handle.
type StaleHandleError struct {
	Entity EntityID
}

func (e StaleHandleError) Error() string {
	return fmt.Sprintf("stale entity handle: index %d generation %d", e.Entity.Index(), e.Entity.Generation())
}

// UnregisteredTypeError reports use of a component type that was never
// registered with the World's Registry.
type UnregisteredTypeError struct {
	Type reflect.Type
}

func (e UnregisteredTypeError) Error() string {
	return fmt.Sprintf("component type not registered: %v", e.Type)
}

// AccessViolationError reports a system touching a component type outside
// its declared read/write sets. This invalidates the scheduler's concurrency
// analysis for the system, so it is raised as a panic value rather than
// returned.
type AccessViolationError struct {
	System string
	Type   reflect.Type
	Write  bool
}

func (e AccessViolationError) Error() string {
	verb := "read"
	if e.Write {
		verb = "write"
	}
	return fmt.Sprintf("system %q: undeclared %s access to component type %v", e.System, verb, e.Type)
}

// SystemError wraps an error returned by a system during a frame. The
// scheduler collects these and surfaces them after the frame completes; it
// never inspects the cause.
type SystemError struct {
	System string
	Err    error
}

func (e SystemError) Error() string {
	return fmt.Sprintf("system %q: %v", e.System, e.Err)
}

func (e SystemError) Unwrap() error {
	return e.Err
}
