// Package arcade holds the components, systems and collaborator interfaces
// shared by the demo games.
package arcade

import (
	"image/color"

	"github.com/darkf/ecs-pong/ecs"
)

// Position is the top-left corner of an entity in pixels.
type Position struct {
	X, Y int
}

// Velocity is the per-frame displacement applied by VelocitySystem.
type Velocity struct {
	VX, VY int
}

// Rect is the axis-aligned size of an entity, anchored at its Position.
type Rect struct {
	W, H int
}

// Bounce confines an entity to [0,W) x [0,H). A zero bound leaves that axis free.
type Bounce struct {
	W, H int
}

// Collidable marks entities the CollisionSystem tests against each other.
type Collidable struct{}

// Color overrides the default fill used by RectRenderSystem.
type Color struct {
	color.RGBA
}

var (
	Red   = color.RGBA{R: 255, A: 255}
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Green = color.RGBA{G: 255, A: 255}
)

// RegisterComponents registers every arcade component with r.
func RegisterComponents(r *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Position](r)
	ecs.RegisterComponent[Velocity](r)
	ecs.RegisterComponent[Rect](r)
	ecs.RegisterComponent[Bounce](r)
	ecs.RegisterComponent[Collidable](r)
	ecs.RegisterComponent[Color](r)
}
