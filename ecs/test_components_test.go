package ecs_test

import "github.com/plus3/heep/ecs"

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

type Name string

type Marker struct{}

type Score int32

type Unregistered struct{}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Health](registry)
	ecs.RegisterComponent[Name](registry)
	ecs.RegisterComponent[Marker](registry)
	ecs.RegisterComponent[Score](registry)
	return registry
}

func newTestStorage() *ecs.Storage {
	return ecs.NewStorage(newTestRegistry())
}
