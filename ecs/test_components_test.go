package ecs_test

import "github.com/plus3/orbiter/ecs"

// Common test component types
type Position struct {
	X, Y, Z float64
}

type Velocity struct {
	X, Y, Z float64
}

type Name struct {
	Value string
}

type Fuel struct {
	Remaining float64
	Capacity  float64
}

type Landed struct{}

// Custom primitive types for testing non-struct components
type Mass float64
type Callsign string

type SimClock struct {
	Elapsed float64
}

func newTestRegistry() *ecs.ComponentRegistry {
	registry := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](registry)
	ecs.RegisterComponent[Velocity](registry)
	ecs.RegisterComponent[Name](registry)
	ecs.RegisterComponent[Fuel](registry)
	ecs.RegisterComponent[Landed](registry)
	ecs.RegisterComponent[Mass](registry)
	ecs.RegisterComponent[Callsign](registry)
	return registry
}
