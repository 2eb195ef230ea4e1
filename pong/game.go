package pong

import (
	"github.com/darkf/ecs-pong/arcade"
	"github.com/darkf/ecs-pong/ecs"
	"github.com/darkf/ecs-pong/event"
	"github.com/darkf/ecs-pong/internal/config"
	"go.uber.org/zap"
)

// Game is a fully wired pong world.
type Game struct {
	Storage   *ecs.Storage
	Scheduler *ecs.Scheduler
	Bus       *event.Bus
	Score     *ecs.Singleton[Score]

	Ball        ecs.Entity
	LeftPaddle  ecs.Entity
	RightPaddle ecs.Entity

	canvas *arcade.Canvas
}

// New builds the pong world for the configured window. Systems run in the
// order input, AI, edge, bounce, velocity, collision, render.
func New(cfg *config.Config, input arcade.Input, log *zap.Logger) *Game {
	width, height := cfg.Window.Width, cfg.Window.Height
	p := cfg.Pong

	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	bus := event.NewBus(event.WithMaxDepth(cfg.Events.MaxDepth), event.WithLogger(log))
	event.LogMessages(bus, log)

	g := &Game{
		Storage:   storage,
		Scheduler: ecs.NewScheduler(storage),
		Bus:       bus,
		Score:     ecs.NewSingleton(storage, Score{}),
		canvas:    arcade.NewCanvas(width, height),
	}

	g.Ball = SpawnBall(storage, 32, 32, p.BallSize, p.BallSpeed, height)
	g.LeftPaddle = SpawnPaddle(storage, 5, 10, p.PaddleWidth, p.PaddleHeight, UserInput{})
	g.RightPaddle = SpawnPaddle(storage, width-5-p.PaddleWidth, 10, p.PaddleWidth, p.PaddleHeight, AI{})

	KeepScore(bus, g.Score)
	arcade.BounceOnCollision(bus, storage)

	g.Scheduler.Register(NewInputSystem(storage, input))
	g.Scheduler.Register(NewAISystem(storage, g.Ball, p.AIReaction))
	g.Scheduler.Register(NewBallEdgeSystem(storage, bus, width, height))
	g.Scheduler.Register(arcade.NewBounceSystem(storage))
	g.Scheduler.Register(arcade.NewVelocitySystem(storage))
	g.Scheduler.Register(arcade.NewCollisionSystem(storage, bus))
	g.Scheduler.Register(arcade.NewRectRenderSystem(storage, g.canvas))

	log.Info("pong ready",
		zap.Int("width", width),
		zap.Int("height", height),
		zap.Int("entities", storage.Len()))

	return g
}

// Step advances the world by one frame and redraws the canvas.
func (g *Game) Step(dt float64) {
	g.canvas.Clear()
	g.Scheduler.Once(dt)
}

// Canvas returns the rectangles drawn by the last Step.
func (g *Game) Canvas() *arcade.Canvas {
	return g.canvas
}
