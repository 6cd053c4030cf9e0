package ecs_test

import (
	"fmt"

	"github.com/prism-engine/prism/ecs"
)

// ExampleView demonstrates iterating over all entities that carry a given
// component signature. Embedded pointer fields are required; entities missing
// any of them are skipped. Iteration visits entities in ascending index
// order.
func ExampleView() {
	registry := ecs.NewRegistry()
	ecs.Register[Position](registry)
	ecs.Register[Velocity](registry)
	world := ecs.NewWorld(registry)

	a := world.Spawn()
	ecs.Insert(world, a, Position{X: 0, Y: 0})
	ecs.Insert(world, a, Velocity{DX: 1, DY: 0})

	b := world.Spawn()
	ecs.Insert(world, b, Position{X: 5, Y: 5})

	view := ecs.NewView[struct {
		*Position
		*Velocity
	}](world)

	for _, item := range view.Iter() {
		fmt.Printf("moving entity at (%.0f, %.0f)\n", item.Position.X, item.Position.Y)
	}
	fmt.Println("matches:", view.Count())

	// Output:
	// moving entity at (0, 0)
	// matches: 1
}

// ExampleView_optionalAndWithout shows the two field tags. An "optional"
// field never excludes an entity; it is nil when the component is absent. A
// "without" field inverts the test: only entities lacking that component
// match, and the field itself is never populated.
func ExampleView_optionalAndWithout() {
	registry := ecs.NewRegistry()
	ecs.Register[Position](registry)
	ecs.Register[Name](registry)
	ecs.Register[Frozen](registry)
	world := ecs.NewWorld(registry)

	a := world.Spawn()
	ecs.Insert(world, a, Position{X: 1})
	ecs.Insert(world, a, Name{Value: "scout"})

	b := world.Spawn()
	ecs.Insert(world, b, Position{X: 2})

	c := world.Spawn()
	ecs.Insert(world, c, Position{X: 3})
	ecs.Insert(world, c, Frozen{})

	view := ecs.NewView[struct {
		*Position
		Name   *Name   `ecs:"optional"`
		Frozen *Frozen `ecs:"without"`
	}](world)

	for _, item := range view.Iter() {
		label := "<unnamed>"
		if item.Name != nil {
			label = item.Name.Value
		}
		fmt.Printf("x=%.0f name=%s\n", item.Position.X, label)
	}

	// Output:
	// x=1 name=scout
	// x=2 name=<unnamed>
}
