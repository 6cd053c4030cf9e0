/*
Package ecs provides the core entity-component-system runtime of the prism
engine: entity allocation with generation-tagged handles, per-type component
storage, signature queries, and a scheduler that runs non-conflicting systems
in parallel.

Core concepts:

  - Entity: a handle identifying a game object; generation tagging makes
    stale handles detectable after a slot is recycled.
  - Component: a plain data value of a registered type attached to at most
    one entity.
  - Resource: a singleton value attached to no entity, such as frame timing
    or an input snapshot.
  - System: a unit of per-frame logic declaring which component types it
    reads and writes; the scheduler batches systems whose declared sets
    cannot conflict and runs each batch concurrently.

Basic usage:

	registry := ecs.NewRegistry()
	ecs.Register[Position](registry)
	ecs.Register[Velocity](registry)

	world := ecs.NewWorld(registry)

	e := world.Spawn()
	ecs.Insert(world, e, Position{X: 0, Y: 0})
	ecs.Insert(world, e, Velocity{DX: 1, DY: 0})

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](world)
	for _, item := range view.Iter() {
		item.Position.X += item.Velocity.DX
		item.Position.Y += item.Velocity.DY
	}

Systems declare their access sets and run under the Scheduler:

	type MoveSystem struct {
		Entities ecs.Query[struct {
			*Position
			*Velocity
		}]
	}

	func (s *MoveSystem) Access() ecs.AccessSet {
		return ecs.AccessSet{
			Reads:  []ecs.ComponentID{ecs.TypeID[Velocity]()},
			Writes: []ecs.ComponentID{ecs.TypeID[Position]()},
		}
	}

	func (s *MoveSystem) Execute(frame *ecs.Frame) error {
		for _, item := range s.Entities.Iter() {
			item.Position.X += item.Velocity.DX * float32(frame.DeltaTime)
			item.Position.Y += item.Velocity.DY * float32(frame.DeltaTime)
		}
		return nil
	}

	scheduler := ecs.NewScheduler(world)
	scheduler.Register(&MoveSystem{})
	failures := scheduler.Once(1.0 / 60.0)

Structural changes during a frame (spawning, despawning, inserting or
removing components) go through the frame's Commands buffer and are applied
after all batches complete.
*/
package ecs
