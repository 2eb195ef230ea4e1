package ecs

import "reflect"

// ComponentReader is the read side of Storage used by the typed helpers.
type ComponentReader interface {
	GetComponent(Entity, reflect.Type) any
	HasComponent(Entity, reflect.Type) bool
}

// LookupComponent returns e's component of type T, or nil if it has none.
func LookupComponent[T any](reader ComponentReader, e Entity) *T {
	comp := reader.GetComponent(e, reflect.TypeFor[T]())
	if comp == nil {
		return nil
	}
	return comp.(*T)
}

// ReadComponent returns e's component of type T. Callers are expected to know
// the component is present (usually because a signature matched); a missing
// component panics with *MissingComponentError.
func ReadComponent[T any](reader ComponentReader, e Entity) *T {
	comp := reader.GetComponent(e, reflect.TypeFor[T]())
	if comp == nil {
		panic(&MissingComponentError{Entity: e, Type: reflect.TypeFor[T]()})
	}
	return comp.(*T)
}

// HasComponent reports whether e carries a component of type T.
func HasComponent[T any](reader ComponentReader, e Entity) bool {
	return reader.HasComponent(e, reflect.TypeFor[T]())
}

// RemoveComponentOf drops e's component of type T, if any.
func RemoveComponentOf[T any](s *Storage, e Entity) {
	s.RemoveComponent(e, reflect.TypeFor[T]())
}
