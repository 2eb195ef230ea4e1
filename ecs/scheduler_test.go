package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/darkf/ecs-pong/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type MovementSystem struct {
	Movers ecs.Query[mover]
	State  ecs.Singleton[GameState]
	seen   int
}

func (s *MovementSystem) Execute(frame *ecs.UpdateFrame) {
	s.seen = s.Movers.Len()
	for m := range s.Movers.Values() {
		m.Position.X += m.Velocity.DX * float32(frame.DeltaTime)
	}
	if st := s.State.Get(); st != nil {
		st.Level = int(frame.Tick)
	}
}

type SpawnerSystem struct {
	Named ecs.Filter[struct{ *Name }]
}

func (s *SpawnerSystem) Execute(frame *ecs.UpdateFrame) {
	frame.Commands.Spawn(Position{}, Velocity{DX: 1})
}

func TestSchedulerInitializesFields(t *testing.T) {
	storage := newTestStorage()
	ecs.NewSingleton(storage, GameState{})
	scheduler := ecs.NewScheduler(storage)

	sys := &MovementSystem{}
	scheduler.Register(sys)

	e := storage.Spawn(Position{}, Velocity{DX: 2})
	scheduler.Once(0.5)

	assert.Equal(t, 1, sys.seen, "query is executed before the system runs")
	assert.Equal(t, float32(1), ecs.ReadComponent[Position](storage, e).X)
	assert.Equal(t, 1, sys.State.Get().Level)
}

func TestSchedulerFlushesCommandsAfterFrame(t *testing.T) {
	storage := newTestStorage()
	scheduler := ecs.NewScheduler(storage)

	movement := &MovementSystem{}
	scheduler.Register(&SpawnerSystem{})
	scheduler.Register(movement)

	scheduler.Once(1)
	assert.Equal(t, 0, movement.seen, "spawns are not visible within the frame that queued them")
	assert.Equal(t, 1, storage.Len())

	scheduler.Once(1)
	assert.Equal(t, 1, movement.seen)
	assert.Equal(t, 2, storage.Len())
}

func TestSchedulerRunsInRegistrationOrder(t *testing.T) {
	scheduler := ecs.NewScheduler(newTestStorage())

	var order []string
	for _, name := range []string{"input", "physics", "render"} {
		scheduler.Register(ecs.SystemFunc(func(*ecs.UpdateFrame) {
			order = append(order, name)
		}))
	}

	scheduler.Once(0)
	scheduler.Once(0)
	assert.Equal(t, []string{"input", "physics", "render", "input", "physics", "render"}, order)
}

func TestSchedulerFrameCarriesTickAndStorage(t *testing.T) {
	storage := newTestStorage()
	scheduler := ecs.NewScheduler(storage)
	require.Same(t, storage, scheduler.Storage())

	var ticks []uint64
	scheduler.Register(ecs.SystemFunc(func(frame *ecs.UpdateFrame) {
		assert.Same(t, storage, frame.Storage)
		assert.Same(t, scheduler.Commands(), frame.Commands)
		ticks = append(ticks, frame.Tick)
	}))

	scheduler.Once(0)
	scheduler.Once(0)
	assert.Equal(t, []uint64{1, 2}, ticks)
}

func TestSchedulerStats(t *testing.T) {
	scheduler := ecs.NewScheduler(newTestStorage())
	scheduler.Register(&MovementSystem{})
	scheduler.Register(&SpawnerSystem{})

	for range 3 {
		scheduler.Once(0)
	}

	stats := scheduler.GetStats()
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, uint64(3), stats.Frames)
	assert.Equal(t, int64(6), stats.TotalExecutions)
	require.Len(t, stats.Systems, 2)
	assert.Equal(t, "MovementSystem", stats.Systems[0].Name)
	assert.Equal(t, int64(3), stats.Systems[0].ExecutionCount)
	assert.LessOrEqual(t, stats.Systems[0].MinDuration, stats.Systems[0].MaxDuration)
}

func TestSchedulerRunStopsOnCancel(t *testing.T) {
	scheduler := ecs.NewScheduler(newTestStorage())

	frames := make(chan struct{}, 16)
	scheduler.Register(ecs.SystemFunc(func(*ecs.UpdateFrame) {
		select {
		case frames <- struct{}{}:
		default:
		}
	}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		scheduler.Run(ctx, time.Millisecond)
		close(done)
	}()

	<-frames
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
