package ecs_test

import "github.com/darkf/ecs-pong/ecs"

type (
	Position struct{ X, Y float32 }
	Velocity struct{ DX, DY float32 }
	Name     struct{ Value string }
	Health   struct{ Current, Max int }

	// Score and Tag check that named non-struct types store by value.
	Score int32
	Tag   string

	// Inventory holds a slice so copies alias the same backing array.
	Inventory struct{ Items []string }

	// Unregistered is left out of newTestRegistry.
	Unregistered struct{}
)

func newTestRegistry() *ecs.ComponentRegistry {
	r := ecs.NewComponentRegistry()
	ecs.RegisterComponent[Position](r)
	ecs.RegisterComponent[Velocity](r)
	ecs.RegisterComponent[Name](r)
	ecs.RegisterComponent[Health](r)
	ecs.RegisterComponent[Score](r)
	ecs.RegisterComponent[Tag](r)
	ecs.RegisterComponent[Inventory](r)
	return r
}

func newTestStorage() *ecs.Storage {
	return ecs.NewStorage(newTestRegistry())
}
