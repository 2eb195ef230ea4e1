// Package screen hosts a game in an ebiten window. The games only ever record
// rectangles on an arcade.Canvas; this package replays them each frame and
// feeds ebiten's keyboard and cursor state back as arcade.Input.
package screen

import (
	"fmt"

	"github.com/darkf/ecs-pong/arcade"
	"github.com/darkf/ecs-pong/internal/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Game is a world that can be stepped and drawn.
type Game interface {
	Step(dt float64)
	Canvas() *arcade.Canvas
}

// Screen adapts a Game to ebiten.Game.
type Screen struct {
	game Game
	dt   float64
}

func New(game Game, tps int) *Screen {
	return &Screen{game: game, dt: 1 / float64(tps)}
}

func (s *Screen) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) || ebiten.IsKeyPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	s.game.Step(s.dt)
	return nil
}

func (s *Screen) Draw(dst *ebiten.Image) {
	for _, r := range s.game.Canvas().Rects() {
		vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), r.Color, false)
	}
}

func (s *Screen) Layout(_, _ int) (int, int) {
	return s.game.Canvas().Size()
}

// Input reads the live keyboard and cursor.
type Input struct{}

func (Input) CursorY() int {
	_, y := ebiten.CursorPosition()
	return y
}

var keys = map[arcade.Key][]ebiten.Key{
	arcade.KeyLeft:  {ebiten.KeyArrowLeft, ebiten.KeyA},
	arcade.KeyRight: {ebiten.KeyArrowRight, ebiten.KeyD},
	arcade.KeyFire:  {ebiten.KeySpace},
}

func (Input) Pressed(k arcade.Key) bool {
	for _, key := range keys[k] {
		if ebiten.IsKeyPressed(key) {
			return true
		}
	}
	return false
}

// Run opens the window described by cfg and blocks until it is closed.
func Run(cfg config.WindowConfig, game Game) error {
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetTPS(cfg.TPS)

	if err := ebiten.RunGame(New(game, cfg.TPS)); err != nil {
		return fmt.Errorf("run %s: %w", cfg.Title, err)
	}
	return nil
}
