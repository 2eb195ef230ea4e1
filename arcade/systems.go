package arcade

import (
	"github.com/darkf/ecs-pong/ecs"
	"github.com/darkf/ecs-pong/event"
)

// CollisionEvent reports that A and B overlap. A precedes B in the entity
// collection.
type CollisionEvent struct {
	A, B ecs.Entity
}

type moving struct {
	*Position
	*Velocity
}

// VelocitySystem integrates Velocity into Position once per frame.
type VelocitySystem struct {
	Entities ecs.Filter[moving]
}

// NewVelocitySystem returns a VelocitySystem over storage.
func NewVelocitySystem(storage *ecs.Storage) *VelocitySystem {
	s := &VelocitySystem{}
	s.Entities.Init(storage)
	return s
}

// Execute moves every entity that has Position and Velocity.
func (s *VelocitySystem) Execute(frame *ecs.UpdateFrame) {
	s.Entities.ProcessAll(frame.Entities(), s.logic)
}

// Process moves a single entity; it reports false when e lacks Position or Velocity.
func (s *VelocitySystem) Process(e ecs.Entity) bool {
	return s.Entities.Process(e, s.logic)
}

func (s *VelocitySystem) logic(_ ecs.Entity, m moving) {
	m.Position.X += m.Velocity.VX
	m.Position.Y += m.Velocity.VY
}

type bouncing struct {
	*Bounce
	*Position
	*Rect
	*Velocity
}

// BounceSystem reverses velocity on any axis where the rect has left its bounds.
type BounceSystem struct {
	Entities ecs.Filter[bouncing]
}

// NewBounceSystem returns a BounceSystem over storage.
func NewBounceSystem(storage *ecs.Storage) *BounceSystem {
	s := &BounceSystem{}
	s.Entities.Init(storage)
	return s
}

// Execute applies the bounds check to every bouncing entity.
func (s *BounceSystem) Execute(frame *ecs.UpdateFrame) {
	s.Entities.ProcessAll(frame.Entities(), s.logic)
}

// Process checks a single entity against its Bounce bounds.
func (s *BounceSystem) Process(e ecs.Entity) bool {
	return s.Entities.Process(e, s.logic)
}

func (s *BounceSystem) logic(_ ecs.Entity, b bouncing) {
	if b.Bounce.W > 0 && (b.Position.X < 0 || b.Position.X+b.Rect.W >= b.Bounce.W) {
		b.Velocity.VX = -b.Velocity.VX
	}
	if b.Bounce.H > 0 && (b.Position.Y < 0 || b.Position.Y+b.Rect.H >= b.Bounce.H) {
		b.Velocity.VY = -b.Velocity.VY
	}
}

type collider struct {
	*Position
	*Rect
	*Collidable
}

func (c collider) overlaps(o collider) bool {
	return c.Position.X < o.Position.X+o.Rect.W && o.Position.X < c.Position.X+c.Rect.W &&
		c.Position.Y < o.Position.Y+o.Rect.H && o.Position.Y < c.Position.Y+c.Rect.H
}

// CollisionSystem emits one CollisionEvent per overlapping pair of collidable
// entities. Handlers run before the next pair is tested, so a handler that
// moves an entity changes the outcome of later tests in the same frame.
type CollisionSystem struct {
	Entities ecs.Query[collider]
	bus      *event.Bus
	scratch  []collider
}

// NewCollisionSystem returns a CollisionSystem that reports overlaps on bus.
func NewCollisionSystem(storage *ecs.Storage, bus *event.Bus) *CollisionSystem {
	s := &CollisionSystem{bus: bus}
	s.Entities.Init(storage)
	return s
}

// Execute tests every pair of collidable entities once, in spawn order.
func (s *CollisionSystem) Execute(frame *ecs.UpdateFrame) {
	ids := s.Entities.Entities()
	s.scratch = s.scratch[:0]
	for c := range s.Entities.Values() {
		s.scratch = append(s.scratch, c)
	}

	for i := range s.scratch {
		for j := i + 1; j < len(s.scratch); j++ {
			if !frame.Storage.Alive(ids[i]) || !frame.Storage.Alive(ids[j]) {
				continue
			}
			if s.scratch[i].overlaps(s.scratch[j]) {
				event.Emit(s.bus, CollisionEvent{A: ids[i], B: ids[j]})
			}
		}
	}
}

type drawable struct {
	*Position
	*Rect
	Color *Color `ecs:"optional"`
}

// RectRenderSystem draws every entity with a Position and Rect, red unless it
// carries a Color.
type RectRenderSystem struct {
	Entities ecs.Filter[drawable]
	renderer Renderer
}

// NewRectRenderSystem returns a RectRenderSystem drawing to renderer.
func NewRectRenderSystem(storage *ecs.Storage, renderer Renderer) *RectRenderSystem {
	s := &RectRenderSystem{renderer: renderer}
	s.Entities.Init(storage)
	return s
}

// Execute draws every entity with a Position and Rect.
func (s *RectRenderSystem) Execute(frame *ecs.UpdateFrame) {
	s.Entities.ProcessAll(frame.Entities(), s.logic)
}

func (s *RectRenderSystem) logic(_ ecs.Entity, d drawable) {
	clr := Red
	if d.Color != nil {
		clr = d.Color.RGBA
	}
	s.renderer.DrawRect(d.Position.X, d.Position.Y, d.Rect.W, d.Rect.H, clr)
}

// BounceOnCollision subscribes a handler that reverses both velocity axes of
// the first entity in every CollisionEvent.
func BounceOnCollision(bus *event.Bus, storage *ecs.Storage) {
	event.On(bus, func(ev CollisionEvent) {
		if vel := ecs.LookupComponent[Velocity](storage, ev.A); vel != nil {
			vel.VX = -vel.VX
			vel.VY = -vel.VY
		}
	})
}
