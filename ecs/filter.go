package ecs

// Filter runs per-entity logic on entities that satisfy the signature T (see
// View for how T declares required and optional components). An entity that
// holds extra components still matches; one that lacks a required component
// is skipped without error.
//
// Filter fields on a registered system are initialised by the Scheduler.
type Filter[T any] struct {
	view *View[T]
}

// NewFilter creates a Filter bound to storage.
func NewFilter[T any](storage *Storage) *Filter[T] {
	f := &Filter[T]{}
	f.Init(storage)
	return f
}

// Init binds the Filter to storage.
func (f *Filter[T]) Init(storage *Storage) {
	f.view = NewView[T](storage)
}

// Matches reports whether e holds every required component.
func (f *Filter[T]) Matches(e Entity) bool {
	return f.view.Matches(e)
}

// Process invokes logic once with e and its components if e matches, and
// reports whether it did.
func (f *Filter[T]) Process(e Entity, logic func(Entity, T)) bool {
	var item T
	if !f.view.Fill(e, &item) {
		return false
	}
	logic(e, item)
	return true
}

// ProcessAll applies Process to every entity in slice order and returns the
// number of entities the logic ran on.
func (f *Filter[T]) ProcessAll(entities []Entity, logic func(Entity, T)) int {
	var item T
	n := 0
	for _, e := range entities {
		if !f.view.Fill(e, &item) {
			continue
		}
		logic(e, item)
		n++
	}
	return n
}

// View returns the underlying signature view.
func (f *Filter[T]) View() *View[T] {
	return f.view
}
