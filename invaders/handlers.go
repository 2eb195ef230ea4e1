package invaders

import (
	"fmt"

	"github.com/darkf/ecs-pong/arcade"
	"github.com/darkf/ecs-pong/ecs"
	"github.com/darkf/ecs-pong/event"
)

// DestroyOnHit turns missile/invader collisions into HitEvents. Both entities
// are deleted through commands at the end of the frame; until then they are
// remembered so one missile cannot take out two invaders.
func DestroyOnHit(bus *event.Bus, storage *ecs.Storage, commands *ecs.Commands) {
	spent := make(map[ecs.Entity]struct{})

	event.On(bus, func(ev arcade.CollisionEvent) {
		missile, invader := ev.A, ev.B
		if !ecs.HasComponent[Missile](storage, missile) {
			missile, invader = invader, missile
		}
		if !ecs.HasComponent[Missile](storage, missile) || !ecs.HasComponent[Invader](storage, invader) {
			return
		}

		_, m := spent[missile]
		_, i := spent[invader]
		if m || i {
			return
		}
		if len(spent) == 0 {
			commands.Defer(func() { clear(spent) })
		}
		spent[missile] = struct{}{}
		spent[invader] = struct{}{}

		commands.Delete(missile)
		commands.Delete(invader)
		event.Emit(bus, HitEvent{
			Missile: missile,
			Invader: invader,
			Points:  ecs.ReadComponent[Invader](storage, invader).Points,
		})
	})
}

// KeepScore adds hit points to the Score singleton and handles a landed
// formation: a life is lost and the wave restarts, or the whole game restarts
// once no lives remain.
func KeepScore(bus *event.Bus, storage *ecs.Storage, commands *ecs.Commands, lives int) {
	score := ecs.NewSingleton(storage, Score{Lives: lives})
	formation := ecs.NewSingleton[Formation](storage)

	event.On(bus, func(ev HitEvent) {
		score.Get().Points += ev.Points
	})

	event.On(bus, func(ev WaveClearedEvent) {
		event.Emit(bus, event.Message{Text: fmt.Sprintf("wave %d cleared, score %d", ev.Wave+1, score.Get().Points)})
	})

	event.On(bus, func(LandedEvent) {
		s := score.Get()
		s.Lives--
		if s.Lives <= 0 {
			event.Emit(bus, event.Message{Text: fmt.Sprintf("game over, score %d", s.Points)})
			*s = Score{Lives: lives}
		} else {
			event.Emit(bus, event.Message{Text: fmt.Sprintf("invaders landed, %d lives left", s.Lives)})
		}

		for _, e := range storage.Entities() {
			if ecs.HasComponent[Invader](storage, e) || ecs.HasComponent[Missile](storage, e) {
				commands.Delete(e)
			}
		}
		formation.Get().Restart = true
	})
}
