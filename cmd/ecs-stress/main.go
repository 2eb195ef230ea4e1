// Command ecs-stress hammers the ECS and event bus with bouncing rectangles
// and reports frame timings and memory use.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"time"

	"github.com/darkf/ecs-pong/arcade"
	"github.com/darkf/ecs-pong/ecs"
	"github.com/darkf/ecs-pong/event"
	"github.com/darkf/ecs-pong/internal/config"
	"github.com/darkf/ecs-pong/internal/logging"
	"github.com/pkg/profile"
	"go.uber.org/zap"
)

const (
	fieldWidth  = 4096
	fieldHeight = 4096
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	duration := flag.Duration("duration", 10*time.Second, "The total duration the test should run for.")
	entityCount := flag.Int("entities", 10000, "The initial number of entities to create.")
	collidable := flag.Float64("collidable", 0.05, "Fraction of entities that take part in collision tests.")
	churn := flag.Int("churn", 50, "Entities deleted and respawned per frame.")
	profileMode := flag.String("profile", "", "Write a cpu or mem profile to the working directory.")
	gcPauseMetrics := flag.Bool("gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.Parse()

	log, err := logging.New(config.LoggingConfig{Level: "info", Format: "console"})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	switch *profileMode {
	case "":
	case "cpu":
		defer profile.Start(profile.CPUProfile, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	case "mem":
		defer profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook).Stop()
	default:
		return fmt.Errorf("unknown profile mode %q", *profileMode)
	}

	log.Info("starting ECS stress test")

	registry := ecs.NewComponentRegistry()
	arcade.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)
	scheduler := ecs.NewScheduler(storage)
	bus := event.NewBus(event.WithLogger(log))

	var collisions int64
	event.On(bus, func(arcade.CollisionEvent) { collisions++ })
	arcade.BounceOnCollision(bus, storage)

	spawner := &spawner{rng: rand.New(rand.NewPCG(1, 2)), collidable: *collidable}

	log.Info("populating storage", zap.Int("entities", *entityCount))
	for range *entityCount {
		storage.Spawn(spawner.components()...)
	}

	scheduler.Register(&churnSystem{spawner: spawner, perFrame: *churn})
	scheduler.Register(arcade.NewBounceSystem(storage))
	scheduler.Register(arcade.NewVelocitySystem(storage))
	scheduler.Register(arcade.NewCollisionSystem(storage, bus))

	report := &Report{
		Duration:       *duration,
		Entities:       *entityCount,
		Collidable:     *collidable,
		Churn:          *churn,
		Systems:        scheduler.GetStats().SystemCount,
		GCPauseMetrics: *gcPauseMetrics,
	}

	runtime.ReadMemStats(&report.MemStatsStart)

	log.Info("running simulation", zap.Duration("duration", *duration))
	ctx, cancel := context.WithTimeout(context.Background(), *duration)
	defer cancel()

	startTime := time.Now()
	lastFrameTime := startTime

Loop:
	for {
		select {
		case <-ctx.Done():
			break Loop
		default:
			deltaTime := time.Since(lastFrameTime)
			lastFrameTime = time.Now()

			updateStart := time.Now()
			scheduler.Once(deltaTime.Seconds())
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
		}
	}

	report.TotalTime = time.Since(startTime)
	report.TotalUpdates = int64(scheduler.GetStats().Frames)
	report.Collisions = collisions
	report.UpdateTime.Finalize()
	report.Storage = storage.CollectStats()
	report.Scheduler = scheduler.GetStats()
	runtime.ReadMemStats(&report.MemStatsEnd)

	log.Info("simulation finished",
		zap.Int64("frames", report.TotalUpdates),
		zap.Int64("collisions", collisions))

	if err := report.Generate(os.Stdout); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}
	return nil
}

// spawner produces random arcade entities. Every entity moves; bounds,
// colour and collision are rolled independently so the storage ends up with
// a spread of archetypes.
type spawner struct {
	rng        *rand.Rand
	collidable float64
}

func (s *spawner) components() []any {
	size := 2 + s.rng.IntN(14)
	comps := []any{
		arcade.Position{X: s.rng.IntN(fieldWidth - size), Y: s.rng.IntN(fieldHeight - size)},
		arcade.Rect{W: size, H: size},
		arcade.Velocity{VX: s.rng.IntN(9) - 4, VY: s.rng.IntN(9) - 4},
	}
	if s.rng.IntN(4) != 0 {
		comps = append(comps, arcade.Bounce{W: fieldWidth, H: fieldHeight})
	}
	if s.rng.IntN(2) == 0 {
		comps = append(comps, arcade.Color{RGBA: arcade.White})
	}
	if s.rng.Float64() < s.collidable {
		comps = append(comps, arcade.Collidable{})
	}
	return comps
}

// churnSystem deletes random entities and spawns replacements through the
// frame's command buffer.
type churnSystem struct {
	spawner  *spawner
	perFrame int
}

func (s *churnSystem) Execute(frame *ecs.UpdateFrame) {
	entities := frame.Entities()
	if len(entities) == 0 {
		return
	}
	for range s.perFrame {
		frame.Commands.Delete(entities[s.spawner.rng.IntN(len(entities))])
		frame.Commands.Spawn(s.spawner.components()...)
	}
}
