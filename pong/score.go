package pong

import (
	"fmt"

	"github.com/darkf/ecs-pong/ecs"
	"github.com/darkf/ecs-pong/event"
)

// KeepScore subscribes a handler that counts EdgeCollisionEvents per side in
// the Score singleton and reports the new score as an event.Message.
func KeepScore(bus *event.Bus, score *ecs.Singleton[Score]) {
	event.On(bus, func(ev EdgeCollisionEvent) {
		s := score.Get()
		if ev.Left {
			s.Left++
		} else {
			s.Right++
		}
		event.Emit(bus, event.Message{Text: fmt.Sprintf("score %d:%d", s.Left, s.Right)})
	})
}
