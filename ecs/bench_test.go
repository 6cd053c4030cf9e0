package ecs_test

import (
	"testing"

	"github.com/prism-engine/prism/ecs"
)

func BenchmarkSpawn(b *testing.B) {
	world := newTestWorld()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		id := world.Spawn()
		ecs.Insert(world, id, Position{X: 1.0, Y: 2.0})
		ecs.Insert(world, id, Velocity{DX: 0.5, DY: 0.5})
	}
}

func BenchmarkSpawnWithMultipleComponents(b *testing.B) {
	world := newTestWorld()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		id := world.Spawn()
		ecs.Insert(world, id, Position{X: 1.0, Y: 2.0})
		ecs.Insert(world, id, Velocity{DX: 0.5, DY: 0.5})
		ecs.Insert(world, id, Health{Current: 100, Max: 100})
		ecs.Insert(world, id, Name{Value: "Entity"})
	}
}

func BenchmarkDespawn(b *testing.B) {
	world := newTestWorld()

	ids := make([]ecs.EntityID, b.N)
	for i := 0; i < b.N; i++ {
		ids[i] = world.Spawn()
		ecs.Insert(world, ids[i], Position{X: 1.0, Y: 2.0})
		ecs.Insert(world, ids[i], Velocity{DX: 0.5, DY: 0.5})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		world.Despawn(ids[i])
	}
}

func BenchmarkGet(b *testing.B) {
	world := newTestWorld()

	id := world.Spawn()
	ecs.Insert(world, id, Position{X: 1.0, Y: 2.0})
	ecs.Insert(world, id, Velocity{DX: 0.5, DY: 0.5})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ecs.Get[Position](world, id)
	}
}

func BenchmarkInsert(b *testing.B) {
	world := newTestWorld()

	ids := make([]ecs.EntityID, b.N)
	for i := 0; i < b.N; i++ {
		ids[i] = world.Spawn()
		ecs.Insert(world, ids[i], Position{X: 1.0, Y: 2.0})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ecs.Insert(world, ids[i], Velocity{DX: 0.5, DY: 0.5})
	}
}

func BenchmarkRemove(b *testing.B) {
	world := newTestWorld()

	ids := make([]ecs.EntityID, b.N)
	for i := 0; i < b.N; i++ {
		ids[i] = world.Spawn()
		ecs.Insert(world, ids[i], Position{X: 1.0, Y: 2.0})
		ecs.Insert(world, ids[i], Velocity{DX: 0.5, DY: 0.5})
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = ecs.Remove[Velocity](world, ids[i])
	}
}

func BenchmarkViewFill(b *testing.B) {
	world := newTestWorld()

	type PosVel struct {
		*Position
		*Velocity
	}

	view := ecs.NewView[PosVel](world)
	id := world.Spawn()
	ecs.Insert(world, id, Position{X: 1.0, Y: 2.0})
	ecs.Insert(world, id, Velocity{DX: 0.5, DY: 0.5})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		var pv PosVel
		view.Fill(id, &pv)
	}
}

func BenchmarkViewGet(b *testing.B) {
	world := newTestWorld()

	type PosVel struct {
		*Position
		*Velocity
	}

	view := ecs.NewView[PosVel](world)
	id := world.Spawn()
	ecs.Insert(world, id, Position{X: 1.0, Y: 2.0})
	ecs.Insert(world, id, Velocity{DX: 0.5, DY: 0.5})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = view.Get(id)
	}
}

func BenchmarkViewIter(b *testing.B) {
	world := newTestWorld()

	type PosVel struct {
		*Position
		*Velocity
	}

	for i := 0; i < 1000; i++ {
		id := world.Spawn()
		ecs.Insert(world, id, Position{X: float32(i), Y: float32(i)})
		ecs.Insert(world, id, Velocity{DX: 0.5, DY: 0.5})
	}

	view := ecs.NewView[PosVel](world)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, pv := range view.Iter() {
			_ = pv
		}
	}
}

func BenchmarkViewIterLarge(b *testing.B) {
	world := newTestWorld()

	type PosVel struct {
		*Position
		*Velocity
	}

	for i := 0; i < 10000; i++ {
		id := world.Spawn()
		ecs.Insert(world, id, Position{X: float32(i), Y: float32(i)})
		ecs.Insert(world, id, Velocity{DX: 0.5, DY: 0.5})
	}

	view := ecs.NewView[PosVel](world)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, pv := range view.Iter() {
			_ = pv
		}
	}
}

func BenchmarkViewIterSparse(b *testing.B) {
	world := newTestWorld()

	type PosVel struct {
		*Position
		*Velocity
	}

	// Velocity on every tenth entity, so the view is driven by the small
	// store rather than walking the large one.
	for i := 0; i < 10000; i++ {
		id := world.Spawn()
		ecs.Insert(world, id, Position{X: float32(i), Y: float32(i)})
		if i%10 == 0 {
			ecs.Insert(world, id, Velocity{DX: 0.5, DY: 0.5})
		}
	}

	view := ecs.NewView[PosVel](world)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, pv := range view.Iter() {
			_ = pv
		}
	}
}

func BenchmarkQueryExecute(b *testing.B) {
	world := newTestWorld()

	for i := 0; i < 1000; i++ {
		id := world.Spawn()
		ecs.Insert(world, id, Position{X: float32(i), Y: float32(i)})
		ecs.Insert(world, id, Velocity{DX: 0.5, DY: 0.5})
	}

	query := ecs.NewQuery[struct {
		*Position
		*Velocity
	}](world)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		query.Execute()
	}
}

func BenchmarkQueryIter(b *testing.B) {
	world := newTestWorld()

	for i := 0; i < 1000; i++ {
		id := world.Spawn()
		ecs.Insert(world, id, Position{X: float32(i), Y: float32(i)})
		ecs.Insert(world, id, Velocity{DX: 0.5, DY: 0.5})
	}

	query := ecs.NewQuery[struct {
		*Position
		*Velocity
	}](world)
	query.Execute()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, item := range query.Iter() {
			_ = item
		}
	}
}

func BenchmarkMixedOperations(b *testing.B) {
	world := newTestWorld()

	type PosVel struct {
		*Position
		*Velocity
	}

	view := ecs.NewView[PosVel](world)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		id := world.Spawn()
		ecs.Insert(world, id, Position{X: 1.0, Y: 2.0})
		ecs.Insert(world, id, Velocity{DX: 0.5, DY: 0.5})
		_, _ = ecs.Get[Position](world, id)
		_ = view.Get(id)
		ecs.Remove[Velocity](world, id)
		world.Despawn(id)
	}
}

func BenchmarkCommandsFlush(b *testing.B) {
	world := newTestWorld()

	frame := ecs.NewFrame(world, 0)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		frame.Commands.Spawn(Position{X: 1.0, Y: 2.0}, Velocity{DX: 0.5, DY: 0.5})
		frame.Commands.Flush(world)
	}
}

func BenchmarkSchedulerOnce(b *testing.B) {
	world := newTestWorld()

	for i := 0; i < 1000; i++ {
		id := world.Spawn()
		ecs.Insert(world, id, Position{X: float32(i), Y: float32(i)})
		ecs.Insert(world, id, Velocity{DX: 0.5, DY: 0.5})
		ecs.Insert(world, id, Health{Current: 50, Max: 100})
	}

	scheduler := ecs.NewScheduler(world)
	scheduler.Register(&PhysicsSystem{})
	scheduler.Register(&HealingSystem{RegenRate: 1})

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		scheduler.Once(0.016)
	}
}
