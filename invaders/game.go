package invaders

import (
	"fmt"

	"github.com/darkf/ecs-pong/arcade"
	"github.com/darkf/ecs-pong/ecs"
	"github.com/darkf/ecs-pong/event"
	"github.com/darkf/ecs-pong/internal/config"
	"go.uber.org/zap"
)

// cannonMargin is the gap between the cannon and the bottom of the window.
const cannonMargin = 40

// Game is a fully wired invaders world.
type Game struct {
	Storage   *ecs.Storage
	Scheduler *ecs.Scheduler
	Bus       *event.Bus
	Score     *ecs.Singleton[Score]
	Cannon    ecs.Entity
	Waves     []Wave

	canvas *arcade.Canvas
}

// New builds the invaders world and spawns the first wave. Systems run in the
// order cannon, formation, velocity, cull, collision, wave, render.
func New(cfg *config.Config, input arcade.Input, log *zap.Logger) (*Game, error) {
	waves, err := LoadWaves(cfg.Invaders.WaveFile)
	if err != nil {
		return nil, fmt.Errorf("load waves: %w", err)
	}

	width, height := cfg.Window.Width, cfg.Window.Height
	inv := cfg.Invaders

	for _, w := range waves {
		if err := w.fits(width); err != nil {
			return nil, fmt.Errorf("load waves: %w", err)
		}
	}

	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	bus := event.NewBus(event.WithMaxDepth(cfg.Events.MaxDepth), event.WithLogger(log))
	event.LogMessages(bus, log)

	scheduler := ecs.NewScheduler(storage)
	g := &Game{
		Storage:   storage,
		Scheduler: scheduler,
		Bus:       bus,
		Waves:     waves,
		canvas:    arcade.NewCanvas(width, height),
	}

	floor := height - cannonMargin
	g.Cannon = SpawnCannon(storage, width, floor)
	StartWave(storage, waves[0])

	KeepScore(bus, storage, scheduler.Commands(), inv.Lives)
	DestroyOnHit(bus, storage, scheduler.Commands())
	g.Score = ecs.NewSingleton[Score](storage)

	scheduler.Register(NewCannonSystem(storage, input, width, inv.CannonSpeed, inv.MissileSpeed, inv.FireCooldown))
	scheduler.Register(NewFormationSystem(storage, bus, width, floor))
	scheduler.Register(arcade.NewVelocitySystem(storage))
	scheduler.Register(NewMissileCullSystem(storage))
	scheduler.Register(arcade.NewCollisionSystem(storage, bus))
	scheduler.Register(NewWaveSystem(storage, bus, waves))
	scheduler.Register(arcade.NewRectRenderSystem(storage, g.canvas))

	log.Info("invaders ready",
		zap.Int("waves", len(waves)),
		zap.Int("lives", inv.Lives),
		zap.Int("entities", storage.Len()))

	return g, nil
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
