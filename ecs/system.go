package ecs

// System represents a behavior that operates on entities with specific components.
// User-defined systems implement this interface and declare their signatures
// through Filter or Query fields. Systems keep collaborators and entity handles
// but no per-entity state; that lives in components.
type System interface {
	Execute(frame *UpdateFrame)
}

// SystemFunc adapts a plain function to System.
type SystemFunc func(frame *UpdateFrame)

func (f SystemFunc) Execute(frame *UpdateFrame) {
	f(frame)
}
