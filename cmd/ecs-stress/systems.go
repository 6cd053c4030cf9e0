package main

import (
	"math/rand"

	"github.com/prism-engine/prism/ecs"
)

// The roster mixes conflicting and independent access sets so the scheduler
// has real batches to build: movement and bounce both touch Position and
// Velocity and serialize, while rotation, damage, and AI land beside them.

type MovementSystem struct {
	Entities ecs.Query[struct {
		*Position
		*Velocity
		Frozen *Frozen `ecs:"without"`
	}]
}

func (s *MovementSystem) Access() ecs.AccessSet {
	return ecs.AccessSet{
		Reads:  []ecs.ComponentID{ecs.TypeID[Velocity]()},
		Writes: []ecs.ComponentID{ecs.TypeID[Position]()},
	}
}

func (s *MovementSystem) Execute(frame *ecs.Frame) error {
	dt := float32(frame.DeltaTime)
	for _, item := range s.Entities.Iter() {
		item.Position.X += item.Velocity.DX * dt
		item.Position.Y += item.Velocity.DY * dt
	}
	return nil
}

type BounceSystem struct {
	Entities ecs.Query[struct {
		*Position
		*Velocity
	}]
}

func (s *BounceSystem) Access() ecs.AccessSet {
	return ecs.AccessSet{
		Reads:  []ecs.ComponentID{ecs.TypeID[Position]()},
		Writes: []ecs.ComponentID{ecs.TypeID[Velocity]()},
	}
}

func (s *BounceSystem) Execute(frame *ecs.Frame) error {
	for _, item := range s.Entities.Iter() {
		if item.Position.X < 0 || item.Position.X > 1000 {
			item.Velocity.DX = -item.Velocity.DX
		}
		if item.Position.Y < 0 || item.Position.Y > 1000 {
			item.Velocity.DY = -item.Velocity.DY
		}
	}
	return nil
}

type RotationSystem struct {
	Entities ecs.Query[struct {
		*Rotation
		*Spin
	}]
}

func (s *RotationSystem) Access() ecs.AccessSet {
	return ecs.AccessSet{
		Reads:  []ecs.ComponentID{ecs.TypeID[Spin]()},
		Writes: []ecs.ComponentID{ecs.TypeID[Rotation]()},
	}
}

func (s *RotationSystem) Execute(frame *ecs.Frame) error {
	dt := float32(frame.DeltaTime)
	for _, item := range s.Entities.Iter() {
		item.Rotation.Radians += item.Spin.Speed * dt
	}
	return nil
}

type DamageSystem struct {
	Entities ecs.Query[struct {
		*Health
		*Collider
	}]
	rng *rand.Rand
}

func (s *DamageSystem) Access() ecs.AccessSet {
	return ecs.AccessSet{
		Reads:  []ecs.ComponentID{ecs.TypeID[Collider]()},
		Writes: []ecs.ComponentID{ecs.TypeID[Health]()},
	}
}

func (s *DamageSystem) Execute(frame *ecs.Frame) error {
	for id, item := range s.Entities.Iter() {
		if s.rng.Intn(100) == 0 {
			item.Health.Current -= int(item.Collider.Radius)
		}
		if item.Health.Current <= 0 {
			frame.Commands.Despawn(id)
		}
	}
	return nil
}

type RegenSystem struct {
	Entities ecs.Query[struct{ *Health }]
}

func (s *RegenSystem) Access() ecs.AccessSet {
	return ecs.AccessSet{Writes: []ecs.ComponentID{ecs.TypeID[Health]()}}
}

func (s *RegenSystem) Execute(frame *ecs.Frame) error {
	for _, item := range s.Entities.Iter() {
		if item.Health.Current > 0 && item.Health.Current < item.Health.Max {
			item.Health.Current++
		}
	}
	return nil
}

type LifetimeSystem struct {
	Entities ecs.Query[struct{ *Lifetime }]
}

func (s *LifetimeSystem) Access() ecs.AccessSet {
	return ecs.AccessSet{Writes: []ecs.ComponentID{ecs.TypeID[Lifetime]()}}
}

func (s *LifetimeSystem) Execute(frame *ecs.Frame) error {
	for id, item := range s.Entities.Iter() {
		item.Lifetime.Remaining -= frame.DeltaTime
		if item.Lifetime.Remaining <= 0 {
			frame.Commands.Despawn(id)
		}
	}
	return nil
}

type AISystem struct {
	Entities ecs.Query[struct {
		*AI
		*Position
	}]
}

func (s *AISystem) Access() ecs.AccessSet {
	return ecs.AccessSet{
		Reads:  []ecs.ComponentID{ecs.TypeID[Position]()},
		Writes: []ecs.ComponentID{ecs.TypeID[AI]()},
	}
}

func (s *AISystem) Execute(frame *ecs.Frame) error {
	for _, item := range s.Entities.Iter() {
		if item.Position.X > 500 {
			item.AI.State = 1
		} else {
			item.AI.State = 0
		}
	}
	return nil
}

type SpawnerSystem struct {
	rng    *rand.Rand
	target int
	World  *ecs.World
}

func (s *SpawnerSystem) Access() ecs.AccessSet { return ecs.AccessSet{} }

func (s *SpawnerSystem) Execute(frame *ecs.Frame) error {
	// Top the population back up after despawns, through the command buffer.
	deficit := s.target - s.World.Len()
	for i := 0; i < deficit && i < 64; i++ {
		frame.Commands.Defer(func() {
			spawnRandomEntity(s.World, s.rng)
		})
	}
	return nil
}

func registerSystems(scheduler *ecs.Scheduler, world *ecs.World, rng *rand.Rand, entityTarget int) {
	scheduler.Register(&MovementSystem{})
	scheduler.Register(&BounceSystem{})
	scheduler.Register(&RotationSystem{})
	scheduler.Register(&DamageSystem{rng: rand.New(rand.NewSource(rng.Int63()))})
	scheduler.Register(&RegenSystem{})
	scheduler.Register(&LifetimeSystem{})
	scheduler.Register(&AISystem{})
	scheduler.Register(&SpawnerSystem{
		rng:    rand.New(rand.NewSource(rng.Int63())),
		target: entityTarget,
		World:  world,
	})
}
