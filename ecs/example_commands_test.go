package ecs_test

import (
	"fmt"

	"github.com/prism-engine/prism/ecs"
)

type LifetimeSystem struct {
	Entities ecs.Query[struct{ *Health }]
}

func (s *LifetimeSystem) Access() ecs.AccessSet {
	return ecs.AccessSet{Writes: []ecs.ComponentID{ecs.TypeID[Health]()}}
}

func (s *LifetimeSystem) Execute(frame *ecs.Frame) error {
	for id, item := range s.Entities.Iter() {
		item.Health.Current--
		if item.Health.Current <= 0 {
			// Structural changes are deferred: the despawn lands after all
			// batches of this frame complete.
			frame.Commands.Despawn(id)
		}
	}
	return nil
}

// ExampleCommands demonstrates deferred structural changes. Systems run
// concurrently within a batch, so they must not reshape the world mid-frame;
// instead they record spawns, despawns, inserts, and removes on the frame's
// command buffer, which the scheduler flushes after the frame.
func ExampleCommands() {
	registry := ecs.NewRegistry()
	ecs.Register[Health](registry)
	world := ecs.NewWorld(registry)

	sturdy := world.Spawn()
	ecs.Insert(world, sturdy, Health{Current: 10, Max: 10})

	dying := world.Spawn()
	ecs.Insert(world, dying, Health{Current: 1, Max: 10})

	scheduler := ecs.NewScheduler(world)
	scheduler.Register(&LifetimeSystem{})

	scheduler.Once(1.0)

	fmt.Println("alive entities:", world.Len())
	fmt.Println("sturdy alive:", world.Alive(sturdy))
	fmt.Println("dying alive:", world.Alive(dying))

	// Output:
	// alive entities: 1
	// sturdy alive: true
	// dying alive: false
}
