// Package invaders is a Space-Invaders clone: a formation marches across the
// screen and steps down at each edge while the player's cannon shoots it.
package invaders

import (
	"github.com/darkf/ecs-pong/arcade"
	"github.com/darkf/ecs-pong/ecs"
)

// Invader tags a formation member and carries the points it is worth.
type Invader struct {
	Points int
}

// Cannon tags the player's gun. Cooldown is the time left before it may fire.
type Cannon struct {
	Cooldown float64
}

// Missile tags a cannon shot.
type Missile struct{}

// Formation is the shared march state of the current wave.
type Formation struct {
	Dir   int
	Speed int
	Drop  int
	// Restart makes the wave system respawn the current wave instead of
	// advancing to the next one.
	Restart bool
}

// Score is the singleton holding points and remaining lives.
type Score struct {
	Points int
	Lives  int
	Wave   int
}

// HitEvent is emitted when a missile destroys an invader.
type HitEvent struct {
	Missile, Invader ecs.Entity
	Points           int
}

// LandedEvent is emitted when the formation reaches the cannon's row.
type LandedEvent struct {
	Invader ecs.Entity
}

// WaveClearedEvent is emitted when no invaders remain.
type WaveClearedEvent struct {
	Wave int
}

// RegisterComponents registers the invaders and arcade components with r.
func RegisterComponents(r *ecs.ComponentRegistry) {
	arcade.RegisterComponents(r)
	ecs.RegisterComponent[Invader](r)
	ecs.RegisterComponent[Cannon](r)
	ecs.RegisterComponent[Missile](r)
}

// SpawnCannon places the cannon centred horizontally at row y.
func SpawnCannon(storage *ecs.Storage, width, y int) ecs.Entity {
	const w, h = 26, 16
	return storage.Spawn(
		Cannon{},
		arcade.Position{X: width/2 - w/2, Y: y},
		arcade.Rect{W: w, H: h},
		arcade.Color{RGBA: arcade.Green},
	)
}
