// Package pong is a Pong clone built on the ecs and event packages: the left
// paddle follows the cursor, the right paddle chases the ball, and a ball that
// reaches either side scores for that side's counter and is served again from
// the centre.
package pong

import (
	"github.com/darkf/ecs-pong/arcade"
	"github.com/darkf/ecs-pong/ecs"
)

// Ball tags the ball entity.
type Ball struct{}

// UserInput tags a paddle driven by the cursor.
type UserInput struct{}

// AI tags a paddle driven by AISystem.
type AI struct{}

// Score counts edge hits per side.
type Score struct {
	Left, Right int
}

// EdgeCollisionEvent is emitted when the ball reaches the left or right edge.
type EdgeCollisionEvent struct {
	Ball ecs.Entity
	Left bool
}

// RegisterComponents registers the pong and arcade components with r.
func RegisterComponents(r *ecs.ComponentRegistry) {
	arcade.RegisterComponents(r)
	ecs.RegisterComponent[Ball](r)
	ecs.RegisterComponent[UserInput](r)
	ecs.RegisterComponent[AI](r)
}

// SpawnBall creates a size x size ball at (x, y) moving diagonally at speed,
// bouncing off the top and bottom of a field of the given height.
func SpawnBall(storage *ecs.Storage, x, y, size, speed, height int) ecs.Entity {
	return storage.Spawn(
		Ball{},
		arcade.Position{X: x, Y: y},
		arcade.Rect{W: size, H: size},
		arcade.Velocity{VX: speed, VY: speed},
		arcade.Bounce{H: height},
		arcade.Collidable{},
		arcade.Color{RGBA: arcade.White},
	)
}

// SpawnPaddle creates a paddle at (x, y). controller is UserInput{} or AI{}.
func SpawnPaddle(storage *ecs.Storage, x, y, w, h int, controller any) ecs.Entity {
	return storage.Spawn(
		arcade.Position{X: x, Y: y},
		arcade.Rect{W: w, H: h},
		arcade.Collidable{},
		controller,
	)
}
