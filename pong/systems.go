package pong

import (
	"github.com/darkf/ecs-pong/arcade"
	"github.com/darkf/ecs-pong/ecs"
	"github.com/darkf/ecs-pong/event"
)

type controlled struct {
	*UserInput
	*arcade.Position
}

// InputSystem moves cursor-driven paddles to the cursor's Y.
type InputSystem struct {
	Paddles ecs.Filter[controlled]
	input   arcade.Input
}

func NewInputSystem(storage *ecs.Storage, input arcade.Input) *InputSystem {
	s := &InputSystem{input: input}
	s.Paddles.Init(storage)
	return s
}

func (s *InputSystem) Execute(frame *ecs.UpdateFrame) {
	s.Paddles.ProcessAll(frame.Entities(), s.logic)
}

func (s *InputSystem) logic(_ ecs.Entity, c controlled) {
	c.Position.Y = s.input.CursorY()
}

type autopilot struct {
	*AI
	*arcade.Position
}

// AISystem steers AI paddles toward the ball. It keeps a handle to the ball
// and does nothing once that handle no longer resolves.
type AISystem struct {
	Paddles  ecs.Filter[autopilot]
	storage  *ecs.Storage
	ball     ecs.Entity
	reaction float64
}

// NewAISystem returns an AISystem tracking ball.
func NewAISystem(storage *ecs.Storage, ball ecs.Entity, reaction float64) *AISystem {
	s := &AISystem{storage: storage, ball: ball, reaction: reaction}
	s.Paddles.Init(storage)
	return s
}

func (s *AISystem) Execute(frame *ecs.UpdateFrame) {
	s.Paddles.ProcessAll(frame.Entities(), s.logic)
}

func (s *AISystem) logic(_ ecs.Entity, a autopilot) {
	ball := ecs.LookupComponent[arcade.Position](s.storage, s.ball)
	if ball == nil {
		return
	}
	a.Position.Y += int(float64(ball.Y-a.Position.Y) * s.reaction)
}

type ballBody struct {
	*Ball
	*arcade.Position
	*arcade.Rect
	*arcade.Velocity
}

// BallEdgeSystem detects the ball reaching the left or right edge of the
// field. It emits EdgeCollisionEvent, re-centres the ball and serves it back
// toward the side it came from.
type BallEdgeSystem struct {
	Balls         ecs.Filter[ballBody]
	bus           *event.Bus
	width, height int
}

// NewBallEdgeSystem returns a BallEdgeSystem for a field of the given size.
func NewBallEdgeSystem(storage *ecs.Storage, bus *event.Bus, width, height int) *BallEdgeSystem {
	s := &BallEdgeSystem{bus: bus, width: width, height: height}
	s.Balls.Init(storage)
	return s
}

func (s *BallEdgeSystem) Execute(frame *ecs.UpdateFrame) {
	s.Balls.ProcessAll(frame.Entities(), s.logic)
}

// Process runs the edge check for a single entity.
func (s *BallEdgeSystem) Process(e ecs.Entity) bool {
	return s.Balls.Process(e, s.logic)
}

func (s *BallEdgeSystem) logic(e ecs.Entity, b ballBody) {
	left := b.Position.X <= 0
	right := b.Position.X+b.Rect.W >= s.width
	if !left && !right {
		return
	}

	event.Emit(s.bus, EdgeCollisionEvent{Ball: e, Left: left})

	b.Position.X = s.width / 2
	b.Position.Y = s.height / 2

	speed := b.Velocity.VX
	if speed < 0 {
		speed = -speed
	}
	if left {
		b.Velocity.VX = speed
	} else {
		b.Velocity.VX = -speed
	}
}
