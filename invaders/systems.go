package invaders

import (
	"github.com/darkf/ecs-pong/arcade"
	"github.com/darkf/ecs-pong/ecs"
	"github.com/darkf/ecs-pong/event"
)

type gun struct {
	*Cannon
	*arcade.Position
	*arcade.Rect
}

// CannonSystem moves the cannon with the left/right keys, keeps it on screen
// and fires a missile when the fire key is held and the cooldown has expired.
type CannonSystem struct {
	Cannons      ecs.Filter[gun]
	input        arcade.Input
	width        int
	speed        int
	missileSpeed int
	cooldown     float64
}

// NewCannonSystem returns a CannonSystem confined to [0, width).
func NewCannonSystem(storage *ecs.Storage, input arcade.Input, width, speed, missileSpeed int, cooldown float64) *CannonSystem {
	s := &CannonSystem{
		input:        input,
		width:        width,
		speed:        speed,
		missileSpeed: missileSpeed,
		cooldown:     cooldown,
	}
	s.Cannons.Init(storage)
	return s
}

func (s *CannonSystem) Execute(frame *ecs.UpdateFrame) {
	s.Cannons.ProcessAll(frame.Entities(), func(_ ecs.Entity, g gun) {
		if s.input.Pressed(arcade.KeyLeft) {
			g.Position.X -= s.speed
		}
		if s.input.Pressed(arcade.KeyRight) {
			g.Position.X += s.speed
		}
		g.Position.X = max(0, min(g.Position.X, s.width-g.Rect.W))

		g.Cannon.Cooldown -= frame.DeltaTime
		if g.Cannon.Cooldown > 0 || !s.input.Pressed(arcade.KeyFire) {
			return
		}
		g.Cannon.Cooldown = s.cooldown

		frame.Commands.Spawn(
			Missile{},
			arcade.Position{X: g.Position.X + g.Rect.W/2 - 1, Y: g.Position.Y - 8},
			arcade.Rect{W: 2, H: 8},
			arcade.Velocity{VY: -s.missileSpeed},
			arcade.Collidable{},
			arcade.Color{RGBA: arcade.White},
		)
	})
}

type marcher struct {
	*Invader
	*arcade.Position
	*arcade.Rect
}

// FormationSystem marches every invader together. When any invader would
// leave the screen the whole formation reverses and drops instead of moving
// sideways. Reaching floor emits LandedEvent.
type FormationSystem struct {
	Invaders  ecs.Query[marcher]
	Formation ecs.Singleton[Formation]
	bus       *event.Bus
	width     int
	floor     int
}

// NewFormationSystem returns a FormationSystem marching within width and
// landing at floor.
func NewFormationSystem(storage *ecs.Storage, bus *event.Bus, width, floor int) *FormationSystem {
	s := &FormationSystem{bus: bus, width: width, floor: floor}
	s.Invaders.Init(storage)
	s.Formation.Init(storage)
	return s
}

func (s *FormationSystem) Execute(frame *ecs.UpdateFrame) {
	f := s.Formation.Get()
	if f == nil || s.Invaders.Len() == 0 {
		return
	}

	step := f.Dir * f.Speed
	turn := false
	for m := range s.Invaders.Values() {
		x := m.Position.X + step
		if x < 0 || x+m.Rect.W > s.width {
			turn = true
			break
		}
	}

	if turn {
		f.Dir = -f.Dir
	}
	for m := range s.Invaders.Values() {
		if turn {
			m.Position.Y += f.Drop
		} else {
			m.Position.X += step
		}
	}

	for e, m := range s.Invaders.Iter() {
		if m.Position.Y+m.Rect.H >= s.floor {
			event.Emit(s.bus, LandedEvent{Invader: e})
			return
		}
	}
}

type projectile struct {
	*Missile
	*arcade.Position
	*arcade.Rect
}

// MissileCullSystem deletes missiles that have left the top of the screen.
type MissileCullSystem struct {
	Missiles ecs.Filter[projectile]
}

func NewMissileCullSystem(storage *ecs.Storage) *MissileCullSystem {
	s := &MissileCullSystem{}
	s.Missiles.Init(storage)
	return s
}

func (s *MissileCullSystem) Execute(frame *ecs.UpdateFrame) {
	s.Missiles.ProcessAll(frame.Entities(), func(e ecs.Entity, p projectile) {
		if p.Position.Y+p.Rect.H < 0 {
			frame.Commands.Delete(e)
		}
	})
}

type invaderOnly struct {
	*Invader
}

// WaveSystem spawns the next wave once the formation is gone.
type WaveSystem struct {
	Invaders  ecs.Query[invaderOnly]
	Formation ecs.Singleton[Formation]
	Score     ecs.Singleton[Score]
	bus       *event.Bus
	waves     []Wave
}

// NewWaveSystem returns a WaveSystem that cycles through waves.
func NewWaveSystem(storage *ecs.Storage, bus *event.Bus, waves []Wave) *WaveSystem {
	s := &WaveSystem{bus: bus, waves: waves}
	s.Invaders.Init(storage)
	s.Formation.Init(storage)
	s.Score.Init(storage)
	return s
}

func (s *WaveSystem) Execute(frame *ecs.UpdateFrame) {
	if s.Invaders.Len() > 0 {
		return
	}

	score := s.Score.Get()
	f := s.Formation.Get()
	if f.Restart {
		f.Restart = false
	} else {
		event.Emit(s.bus, WaveClearedEvent{Wave: score.Wave})
		score.Wave++
	}

	wave := s.waves[score.Wave%len(s.waves)]
	storage := frame.Storage
	frame.Commands.Defer(func() {
		StartWave(storage, wave)
	})
}

// StartWave spawns wave and resets the formation to march right at the
// wave's speed.
func StartWave(storage *ecs.Storage, wave Wave) {
	formation := ecs.NewSingleton[Formation](storage)
	*formation.Get() = Formation{Dir: 1, Speed: wave.Speed, Drop: wave.Drop}
	wave.Spawn(storage)
}
