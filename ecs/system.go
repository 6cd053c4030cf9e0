package ecs

// AccessSet declares the component types a system reads and writes. The sets
// are declared once and snapshotted at registration; the scheduler's
// conflict analysis is only valid while they stay accurate and exhaustive.
type AccessSet struct {
	Reads  []ComponentID
	Writes []ComponentID
}

// System represents a unit of per-frame logic operating on entities with
// specific components. User-defined systems implement this interface and can
// include Query, View, and Resource fields, which the Scheduler initializes
// at registration, as well as custom state fields that persist between
// frames.
//
// A returned error marks the system as failed for the frame; the scheduler
// collects it and keeps running the remaining systems.
type System interface {
	// Access returns the declared read and write component sets. It must
	// return the same sets for the lifetime of the registration.
	Access() AccessSet

	Execute(frame *Frame) error
}
