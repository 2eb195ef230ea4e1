package ecs

import (
	"fmt"
	"reflect"
)

// MissingComponentError is the panic value raised by ReadComponent when the
// entity does not carry the requested component.
type MissingComponentError struct {
	Entity Entity
	Type   reflect.Type
}

func (e *MissingComponentError) Error() string {
	return fmt.Sprintf("ecs: entity %d (index %d, generation %d) has no %s component",
		uint64(e.Entity), e.Entity.Index(), e.Entity.Generation(), e.Type)
}

// DeadEntityError is the panic value raised when a structural operation
// targets an entity that has been deleted.
type DeadEntityError struct {
	Entity Entity
	Op     string
}

func (e *DeadEntityError) Error() string {
	return fmt.Sprintf("ecs: %s on dead entity %d (index %d, generation %d)",
		e.Op, uint64(e.Entity), e.Entity.Index(), e.Entity.Generation())
}
