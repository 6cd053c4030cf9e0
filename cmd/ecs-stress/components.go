package main

import (
	"math/rand"

	"github.com/prism-engine/prism/ecs"
)

type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Health struct {
	Current, Max int
}

type Lifetime struct {
	Remaining float64
}

type Rotation struct {
	Radians float32
}

type Spin struct {
	Speed float32
}

type Mass struct {
	Kg float32
}

type Collider struct {
	Radius float32
}

type AI struct {
	State  int
	Target ecs.EntityID
}

type Frozen struct{}

func registerComponents(registry *ecs.Registry) {
	ecs.Register[Position](registry)
	ecs.Register[Velocity](registry)
	ecs.Register[Health](registry)
	ecs.Register[Lifetime](registry)
	ecs.Register[Rotation](registry)
	ecs.Register[Spin](registry)
	ecs.Register[Mass](registry)
	ecs.Register[Collider](registry)
	ecs.Register[AI](registry)
	ecs.Register[Frozen](registry)
}

// spawnRandomEntity creates an entity with Position plus a random selection
// of the optional components, mirroring the uneven archetype mix of a real
// game scene.
func spawnRandomEntity(world *ecs.World, rng *rand.Rand) ecs.EntityID {
	id := world.Spawn()
	ecs.Insert(world, id, Position{X: rng.Float32() * 1000, Y: rng.Float32() * 1000})

	if rng.Intn(4) < 3 {
		ecs.Insert(world, id, Velocity{DX: rng.Float32()*2 - 1, DY: rng.Float32()*2 - 1})
	}
	if rng.Intn(2) == 0 {
		ecs.Insert(world, id, Health{Current: 50 + rng.Intn(50), Max: 100})
	}
	if rng.Intn(4) == 0 {
		ecs.Insert(world, id, Lifetime{Remaining: 1 + rng.Float64()*30})
	}
	if rng.Intn(3) == 0 {
		ecs.Insert(world, id, Rotation{})
		ecs.Insert(world, id, Spin{Speed: rng.Float32() * 3})
	}
	if rng.Intn(3) == 0 {
		ecs.Insert(world, id, Mass{Kg: 1 + rng.Float32()*99})
	}
	if rng.Intn(2) == 0 {
		ecs.Insert(world, id, Collider{Radius: 0.5 + rng.Float32()*4})
	}
	if rng.Intn(5) == 0 {
		ecs.Insert(world, id, AI{State: rng.Intn(3)})
	}
	if rng.Intn(20) == 0 {
		ecs.Insert(world, id, Frozen{})
	}
	return id
}
