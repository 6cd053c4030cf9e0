package ecs_test

import (
	"context"
	"fmt"
	"time"

	"github.com/prism-engine/prism/ecs"
)

type PhysicsSystem struct {
	Entities ecs.Query[struct {
		*Position
		*Velocity
	}]
}

func (s *PhysicsSystem) Access() ecs.AccessSet {
	return ecs.AccessSet{
		Reads:  []ecs.ComponentID{ecs.TypeID[Velocity]()},
		Writes: []ecs.ComponentID{ecs.TypeID[Position]()},
	}
}

func (s *PhysicsSystem) Execute(frame *ecs.Frame) error {
	for _, item := range s.Entities.Iter() {
		item.Position.X += item.Velocity.DX * float32(frame.DeltaTime)
		item.Position.Y += item.Velocity.DY * float32(frame.DeltaTime)
	}
	return nil
}

type HealingSystem struct {
	Entities  ecs.Query[struct{ *Health }]
	RegenRate float32
}

func (s *HealingSystem) Access() ecs.AccessSet {
	return ecs.AccessSet{Writes: []ecs.ComponentID{ecs.TypeID[Health]()}}
}

func (s *HealingSystem) Execute(frame *ecs.Frame) error {
	for _, item := range s.Entities.Iter() {
		if item.Health.Current < item.Health.Max {
			item.Health.Current += int(s.RegenRate * float32(frame.DeltaTime))
			if item.Health.Current > item.Health.Max {
				item.Health.Current = item.Health.Max
			}
		}
	}
	return nil
}

// ExampleScheduler demonstrates building a game loop with multiple systems.
// Each system declares the component types it reads and writes; the scheduler
// partitions systems into conflict-free batches and runs each batch
// concurrently. Physics writes Position and healing writes Health, so the two
// share a batch.
func ExampleScheduler() {
	registry := ecs.NewRegistry()
	ecs.Register[Position](registry)
	ecs.Register[Velocity](registry)
	ecs.Register[Health](registry)
	world := ecs.NewWorld(registry)

	a := world.Spawn()
	ecs.Insert(world, a, Position{X: 0, Y: 0})
	ecs.Insert(world, a, Velocity{DX: 10, DY: 5})
	ecs.Insert(world, a, Health{Current: 80, Max: 100})

	b := world.Spawn()
	ecs.Insert(world, b, Position{X: 100, Y: 100})
	ecs.Insert(world, b, Velocity{DX: -5, DY: -5})
	ecs.Insert(world, b, Health{Current: 50, Max: 100})

	scheduler := ecs.NewScheduler(world)
	scheduler.Register(&PhysicsSystem{})
	scheduler.Register(&HealingSystem{RegenRate: 10})

	for _, batch := range scheduler.Plan() {
		fmt.Println("batch:", batch)
	}

	scheduler.Once(1.0)

	view := ecs.NewView[struct {
		*Position
		*Health
	}](world)
	for _, item := range view.Iter() {
		fmt.Printf("Position: (%.0f, %.0f), Health: %d/%d\n",
			item.Position.X, item.Position.Y,
			item.Health.Current, item.Health.Max)
	}

	// Output:
	// batch: [PhysicsSystem HealingSystem]
	// Position: (10, 5), Health: 90/100
	// Position: (95, 95), Health: 60/100
}

// ExampleScheduler_Run demonstrates running a continuous loop. Run blocks and
// executes frames at a fixed interval until the context is cancelled.
func ExampleScheduler_Run() {
	registry := ecs.NewRegistry()
	ecs.Register[Position](registry)
	ecs.Register[Velocity](registry)
	world := ecs.NewWorld(registry)

	e := world.Spawn()
	ecs.Insert(world, e, Position{})
	ecs.Insert(world, e, Velocity{DX: 1, DY: 1})

	scheduler := ecs.NewScheduler(world)
	scheduler.Register(&PhysicsSystem{})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	scheduler.Run(ctx, 16*time.Millisecond)

	fmt.Println("Scheduler stopped")
	// Output:
	// Scheduler stopped
}

type ClockSystem struct {
	Clock  ecs.Resource[ecs.Time]
	Frames int
}

func (s *ClockSystem) Access() ecs.AccessSet {
	return ecs.AccessSet{Reads: []ecs.ComponentID{ecs.TypeID[ecs.Time]()}}
}

func (s *ClockSystem) Execute(frame *ecs.Frame) error {
	s.Frames++
	return nil
}

// ExampleScheduler_withResources demonstrates world resources. The Time
// resource is advanced by the scheduler once per frame; systems reach it
// through a Resource field that the scheduler initializes at registration.
func ExampleScheduler_withResources() {
	registry := ecs.NewRegistry()
	world := ecs.NewWorld(registry)
	ecs.AddResource(world, ecs.NewTime())

	scheduler := ecs.NewScheduler(world)
	clock := &ClockSystem{}
	scheduler.Register(clock)

	scheduler.Once(0.016)
	scheduler.Once(0.016)
	scheduler.Once(0.016)

	tm := ecs.GetResource[ecs.Time](world)
	fmt.Printf("Frames: %d, Time: %s\n", clock.Frames, tm.Total())

	// Output:
	// Frames: 3, Time: 48ms
}
