package ecs_test

import "github.com/prism-engine/prism/ecs"

// Common test component types
type Position struct {
	X, Y float32
}

type Velocity struct {
	DX, DY float32
}

type Health struct {
	Current int
	Max     int
}

type Name struct {
	Value string
}

type AI struct {
	State int
}

type PlayerTag struct{}

type Frozen struct{}

// Custom primitive-backed types for testing non-struct components
type Score int32
type Tag string

type Inventory struct {
	Items []string
}

// InputState is a resource written once per frame by an input pump.
type InputState struct {
	Up, Down, Left, Right bool
}

func newTestRegistry() *ecs.Registry {
	registry := ecs.NewRegistry()
	ecs.Register[Position](registry)
	ecs.Register[Velocity](registry)
	ecs.Register[Health](registry)
	ecs.Register[Name](registry)
	ecs.Register[AI](registry)
	ecs.Register[PlayerTag](registry)
	ecs.Register[Frozen](registry)
	ecs.Register[Score](registry)
	ecs.Register[Tag](registry)
	ecs.Register[Inventory](registry)
	return registry
}

func newTestWorld() *ecs.World {
	return ecs.NewWorld(newTestRegistry())
}
