package event

import "go.uber.org/zap"

// Message is a free-form diagnostic event.
type Message struct {
	Text string
}

// LogMessages subscribes log to Message events.
func LogMessages(b *Bus, log *zap.Logger) {
	On(b, func(m Message) {
		log.Info(m.Text)
	})
}
