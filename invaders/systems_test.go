package invaders_test

import (
	"testing"

	"github.com/darkf/ecs-pong/ecs"
	"github.com/darkf/ecs-pong/event"
	"github.com/darkf/ecs-pong/invaders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormationTurnsAndDrops(t *testing.T) {
	storage := newStorage()
	bus := event.NewBus()
	scheduler := ecs.NewScheduler(storage)

	invaders.StartWave(storage, invaders.Wave{
		Rows: 1, Columns: 2,
		Spacing: invaders.Vec{X: 30, Y: 20},
		Origin:  invaders.Vec{X: 50, Y: 10},
		Size:    invaders.Size{W: 20, H: 16},
		Speed:   5,
		Drop:    20,
	})
	scheduler.Register(invaders.NewFormationSystem(storage, bus, 100, 1000))

	scheduler.Once(1)
	assert.Equal(t, [][2]int{{50, 30}, {80, 30}}, invaderPositions(storage), "second invader would cross the edge")

	formation := ecs.NewSingleton[invaders.Formation](storage).Get()
	assert.Equal(t, -1, formation.Dir)

	scheduler.Once(1)
	assert.Equal(t, [][2]int{{45, 30}, {75, 30}}, invaderPositions(storage))
}

func TestFormationLands(t *testing.T) {
	tests := []struct {
		name    string
		originY int
		landed  bool
	}{
		{"above floor", 10, false},
		{"touching floor", 24, true},
		{"below floor", 30, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			storage := newStorage()
			bus := event.NewBus()
			scheduler := ecs.NewScheduler(storage)

			invaders.StartWave(storage, invaders.Wave{
				Rows: 1, Columns: 1,
				Spacing: invaders.Vec{X: 20, Y: 16},
				Origin:  invaders.Vec{X: 10, Y: tt.originY},
				Size:    invaders.Size{W: 20, H: 16},
				Speed:   1,
			})
			scheduler.Register(invaders.NewFormationSystem(storage, bus, 100, 40))

			var landed []invaders.LandedEvent
			event.On(bus, func(ev invaders.LandedEvent) { landed = append(landed, ev) })

			scheduler.Once(1)
			if tt.landed {
				require.Len(t, landed, 1)
				assert.True(t, storage.Alive(landed[0].Invader))
			} else {
				assert.Empty(t, landed)
			}
		})
	}
}
