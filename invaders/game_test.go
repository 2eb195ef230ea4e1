package invaders_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/darkf/ecs-pong/arcade"
	"github.com/darkf/ecs-pong/ecs"
	"github.com/darkf/ecs-pong/event"
	"github.com/darkf/ecs-pong/internal/config"
	"github.com/darkf/ecs-pong/invaders"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newStorage() *ecs.Storage {
	registry := ecs.NewComponentRegistry()
	invaders.RegisterComponents(registry)
	return ecs.NewStorage(registry)
}

func invaderPositions(storage *ecs.Storage) [][2]int {
	var out [][2]int
	for _, e := range storage.Entities() {
		if ecs.HasComponent[invaders.Invader](storage, e) {
			p := ecs.ReadComponent[arcade.Position](storage, e)
			out = append(out, [2]int{p.X, p.Y})
		}
	}
	return out
}

func count[T any](storage *ecs.Storage) int {
	n := 0
	for _, e := range storage.Entities() {
		if ecs.HasComponent[T](storage, e) {
			n++
		}
	}
	return n
}

func newGame(t *testing.T, input *arcade.StaticInput) *invaders.Game {
	t.Helper()
	game, err := invaders.New(config.Defaults(), input, zaptest.NewLogger(t))
	require.NoError(t, err)
	return game
}

func spawnMissile(storage *ecs.Storage, x, y, h int) ecs.Entity {
	return storage.Spawn(
		invaders.Missile{},
		arcade.Position{X: x, Y: y},
		arcade.Rect{W: 2, H: h},
		arcade.Velocity{VY: -12},
		arcade.Collidable{},
	)
}

func TestNewGame(t *testing.T) {
	game := newGame(t, &arcade.StaticInput{})

	assert.Equal(t, 24, count[invaders.Invader](game.Storage))
	assert.True(t, game.Storage.Alive(game.Cannon))
	assert.Equal(t, invaders.Score{Lives: 3}, *game.Score.Get())

	game.Step(1.0 / 30)
	assert.Len(t, game.Canvas().Rects(), 25)
	assert.Equal(t, [2]int{82, 60}, invaderPositions(game.Storage)[0], "formation marches right")
}

func TestNewGameBadWaveFile(t *testing.T) {
	wave := func(originX, columns int) string {
		return fmt.Sprintf(`
waves:
  - name: wide
    rows: 1
    columns: %d
    spacing: {x: 40, y: 20}
    origin: {x: %d, y: 10}
    size: {w: 24, h: 16}
    speed: 2
    drop: 16
`, columns, originX)
	}

	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing file", "", "no such file"},
		{"wider than window", wave(0, 50), "800 wide"},
		{"past right edge", wave(790, 1), "800 wide"},
		{"left of window", wave(-1, 1), "800 wide"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Defaults()
			cfg.Invaders.WaveFile = filepath.Join(t.TempDir(), "waves.yaml")
			if tt.body != "" {
				require.NoError(t, os.WriteFile(cfg.Invaders.WaveFile, []byte(tt.body), 0o644))
			}

			_, err := invaders.New(cfg, &arcade.StaticInput{}, zaptest.NewLogger(t))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "load waves")
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestNewGameAcceptsFormationFillingWindow(t *testing.T) {
	cfg := config.Defaults()
	cfg.Invaders.WaveFile = filepath.Join(t.TempDir(), "waves.yaml")
	// 20 columns at 40px spacing span exactly 800px
	require.NoError(t, os.WriteFile(cfg.Invaders.WaveFile, []byte(`
waves:
  - name: full
    rows: 1
    columns: 20
    spacing: {x: 40, y: 20}
    origin: {x: 0, y: 10}
    size: {w: 40, h: 16}
    speed: 2
    drop: 16
`), 0o644))

	game, err := invaders.New(cfg, &arcade.StaticInput{}, zaptest.NewLogger(t))
	require.NoError(t, err)

	// with no room to march the formation drops every frame until it lands
	landed := 0
	event.On(game.Bus, func(invaders.LandedEvent) { landed++ })
	for range 200 {
		game.Step(1.0 / 30)
	}
	assert.Positive(t, landed)
}

func TestCannonMovesAndFires(t *testing.T) {
	input := &arcade.StaticInput{Keys: map[arcade.Key]bool{arcade.KeyRight: true, arcade.KeyFire: true}}
	game := newGame(t, input)
	cannon := ecs.ReadComponent[arcade.Position](game.Storage, game.Cannon)
	startX := cannon.X

	game.Step(0.1)
	assert.Equal(t, startX+6, cannon.X)
	require.Equal(t, 1, count[invaders.Missile](game.Storage), "missile appears once the frame's commands flush")

	game.Step(0.1)
	assert.Equal(t, 1, count[invaders.Missile](game.Storage), "cooldown blocks the second shot")

	for range 4 {
		game.Step(0.1)
	}
	assert.Equal(t, 2, count[invaders.Missile](game.Storage))
}

func TestCannonStaysOnScreen(t *testing.T) {
	input := &arcade.StaticInput{Keys: map[arcade.Key]bool{arcade.KeyLeft: true}}
	game := newGame(t, input)

	for range 200 {
		game.Step(0.1)
	}
	assert.Equal(t, 0, ecs.ReadComponent[arcade.Position](game.Storage, game.Cannon).X)

	input.Keys = map[arcade.Key]bool{arcade.KeyRight: true}
	for range 200 {
		game.Step(0.1)
	}
	pos := ecs.ReadComponent[arcade.Position](game.Storage, game.Cannon)
	rect := ecs.ReadComponent[arcade.Rect](game.Storage, game.Cannon)
	assert.Equal(t, 800, pos.X+rect.W)
}

func TestMissileDestroysInvader(t *testing.T) {
	game := newGame(t, &arcade.StaticInput{})

	var hits []invaders.HitEvent
	event.On(game.Bus, func(ev invaders.HitEvent) { hits = append(hits, ev) })

	// first invader sits at (80,60) and marches to (82,60) this frame
	missile := spawnMissile(game.Storage, 85, 70, 8)
	game.Step(1.0 / 30)

	require.Len(t, hits, 1)
	assert.Equal(t, missile, hits[0].Missile)
	assert.Equal(t, 10, hits[0].Points)
	assert.False(t, game.Storage.Alive(missile))
	assert.False(t, game.Storage.Alive(hits[0].Invader))
	assert.Equal(t, 23, count[invaders.Invader](game.Storage))
	assert.Equal(t, 10, game.Score.Get().Points)
}

func TestMissileHitsOnlyOneInvader(t *testing.T) {
	game := newGame(t, &arcade.StaticInput{})

	// tall enough to overlap the first two rows at once
	spawnMissile(game.Storage, 85, 70, 60)
	game.Step(1.0 / 30)

	assert.Equal(t, 23, count[invaders.Invader](game.Storage))
	assert.Equal(t, 10, game.Score.Get().Points)

	// the spent set is cleared with the flush, so later hits still count
	spawnMissile(game.Storage, 125, 70, 8)
	game.Step(1.0 / 30)
	assert.Equal(t, 22, count[invaders.Invader](game.Storage))
}

func TestMissileCulledOffScreen(t *testing.T) {
	game := newGame(t, &arcade.StaticInput{})

	missile := spawnMissile(game.Storage, 700, 6, 8)
	game.Step(1.0 / 30)
	assert.True(t, game.Storage.Alive(missile), "still partly on screen")

	game.Step(1.0 / 30)
	assert.False(t, game.Storage.Alive(missile))
}

func TestWaveClearedSpawnsNextWave(t *testing.T) {
	game := newGame(t, &arcade.StaticInput{})

	var cleared []invaders.WaveClearedEvent
	event.On(game.Bus, func(ev invaders.WaveClearedEvent) { cleared = append(cleared, ev) })

	for _, e := range game.Storage.Entities() {
		if ecs.HasComponent[invaders.Invader](game.Storage, e) {
			game.Storage.Delete(e)
		}
	}
	game.Step(1.0 / 30)

	assert.Equal(t, []invaders.WaveClearedEvent{{Wave: 0}}, cleared)
	assert.Equal(t, 1, game.Score.Get().Wave)
	assert.Equal(t, 40, count[invaders.Invader](game.Storage))
}

func TestLandingCostsALife(t *testing.T) {
	game := newGame(t, &arcade.StaticInput{})

	landed := 0
	event.On(game.Bus, func(invaders.LandedEvent) { landed++ })

	for _, e := range game.Storage.Entities() {
		if ecs.HasComponent[invaders.Invader](game.Storage, e) {
			ecs.ReadComponent[arcade.Position](game.Storage, e).Y = 550
		}
	}
	spawnMissile(game.Storage, 700, 300, 8)

	game.Step(1.0 / 30)
	assert.Equal(t, 1, landed)
	assert.Equal(t, 2, game.Score.Get().Lives)
	assert.Equal(t, 0, count[invaders.Invader](game.Storage))
	assert.Equal(t, 0, count[invaders.Missile](game.Storage))

	game.Step(1.0 / 30)
	assert.Equal(t, 24, count[invaders.Invader](game.Storage), "the same wave restarts")
	assert.Equal(t, 0, game.Score.Get().Wave)
}

func TestGameOverResetsScore(t *testing.T) {
	cfg := config.Defaults()
	cfg.Invaders.Lives = 1
	game, err := invaders.New(cfg, &arcade.StaticInput{}, zaptest.NewLogger(t))
	require.NoError(t, err)

	game.Score.Get().Points = 500
	game.Score.Get().Wave = 2
	event.Emit(game.Bus, invaders.LandedEvent{})

	assert.Equal(t, invaders.Score{Lives: 1}, *game.Score.Get())
}
