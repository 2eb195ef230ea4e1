// Package event implements a synchronous, typed event bus. Handlers register
// for one exact Go type and run, in registration order, on the goroutine that
// emits. There is no queue: an event's effects are complete when Emit returns.
package event

import (
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

// DefaultMaxDepth bounds how deeply dispatch of a single event type may nest.
const DefaultMaxDepth = 64

// Bus maps event types to ordered handler lists. A Bus is process- or
// test-scoped state: create one per world and pass it to the systems that
// emit or subscribe. The zero value is not usable; call NewBus.
type Bus struct {
	handlers map[reflect.Type][]func(any)
	depth    map[reflect.Type]int
	maxDepth int
	log      *zap.Logger
}

// Option configures a Bus.
type Option func(*Bus)

// WithMaxDepth sets the per-type nesting limit. Values below 1 keep the default.
func WithMaxDepth(n int) Option {
	return func(b *Bus) {
		if n > 0 {
			b.maxDepth = n
		}
	}
}

// WithLogger attaches a logger used for subscription and guard diagnostics.
func WithLogger(log *zap.Logger) Option {
	return func(b *Bus) {
		if log != nil {
			b.log = log
		}
	}
}

// NewBus creates an empty bus.
func NewBus(opts ...Option) *Bus {
	b := &Bus{
		handlers: make(map[reflect.Type][]func(any)),
		depth:    make(map[reflect.Type]int),
		maxDepth: DefaultMaxDepth,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// DepthError is the panic value raised when dispatch of one event type nests
// deeper than the bus allows, which usually means a handler re-emits the
// event that triggered it.
type DepthError struct {
	Type  reflect.Type
	Depth int
}

func (e *DepthError) Error() string {
	return fmt.Sprintf("event: dispatch of %s nested %d levels deep", e.Type, e.Depth)
}

// On registers handler for events whose exact type is T. A type that embeds
// T is a different type and does not reach this handler. Registering the same
// handler twice makes it run twice.
func On[T any](b *Bus, handler func(T)) {
	t := reflect.TypeFor[T]()
	b.handlers[t] = append(b.handlers[t], func(ev any) {
		handler(ev.(T))
	})
	b.log.Debug("event handler registered",
		zap.Stringer("type", t),
		zap.Int("handlers", len(b.handlers[t])))
}

// Emit delivers ev to every handler registered for its exact dynamic type, in
// registration order, and returns once all of them have run. Emitting a type
// nobody listens to does nothing. Handlers may emit further events; those are
// dispatched synchronously before the outer handler continues.
func Emit[T any](b *Bus, ev T) {
	boxed := any(ev)
	t := reflect.TypeOf(boxed)
	if t == nil {
		return
	}

	handlers := b.handlers[t]
	if len(handlers) == 0 {
		return
	}

	depth := b.depth[t] + 1
	if depth > b.maxDepth {
		b.log.Error("event dispatch depth exceeded",
			zap.Stringer("type", t),
			zap.Int("depth", depth))
		panic(&DepthError{Type: t, Depth: depth})
	}
	b.depth[t] = depth
	defer func() { b.depth[t] = depth - 1 }()

	for _, h := range handlers {
		h(boxed)
	}
}

// Handlers returns how many handlers are registered for T.
func Handlers[T any](b *Bus) int {
	return len(b.handlers[reflect.TypeFor[T]()])
}

// Reset drops every subscription.
func (b *Bus) Reset() {
	clear(b.handlers)
	clear(b.depth)
}
