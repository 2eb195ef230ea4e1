package ecs

import "reflect"

type singletonEntry struct {
	typ   reflect.Type
	value reflect.Value
}

// AddSingleton stores value as the storage-wide instance of its type. If a
// singleton of that type already exists its contents are overwritten in
// place, so pointers handed out earlier observe the new value.
func (s *Storage) AddSingleton(value any) {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() {
		panic("ecs: nil singleton")
	}
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}

	if entry, ok := s.singletons[rv.Type()]; ok {
		entry.value.Elem().Set(rv)
		return
	}

	ptr := reflect.New(rv.Type())
	ptr.Elem().Set(rv)
	s.singletons[rv.Type()] = &singletonEntry{typ: rv.Type(), value: ptr}
}

// ReadSingleton points *out at the singleton of the pointed-to type. out must
// be a **T. Returns false when no such singleton exists.
func (s *Storage) ReadSingleton(out any) bool {
	rv := reflect.ValueOf(out)
	if rv.Kind() != reflect.Ptr || rv.Elem().Kind() != reflect.Ptr {
		panic("ecs: ReadSingleton requires a pointer to a pointer")
	}

	entry := s.getSingletonEntry(rv.Elem().Type().Elem())
	if entry == nil {
		return false
	}
	rv.Elem().Set(entry.value)
	return true
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	return s.singletons[t]
}

// Singleton provides access to a single component instance that is not
// associated with any entity. Use this for score boards, formation state and
// other game-wide data.
type Singleton[T any] struct {
	storage *Storage
	ptr     *T
}

// NewSingleton creates a new Singleton accessor for the given storage.
// If the singleton doesn't exist yet it is created from initializer, or from
// the zero value when no initializer is given.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	if storage.getSingletonEntry(reflect.TypeFor[T]()) == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(value)
	}

	s := &Singleton[T]{}
	s.Init(storage)
	return s
}

// Init binds the Singleton to storage.
// This is called automatically by the Scheduler during system registration.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.ptr = nil
	s.updateCache()
}

// Get returns a pointer to the singleton component, or nil if it has not been
// added to storage.
func (s *Singleton[T]) Get() *T {
	if s.ptr == nil {
		s.updateCache()
	}
	return s.ptr
}

func (s *Singleton[T]) updateCache() {
	if s.storage == nil {
		return
	}
	if entry := s.storage.getSingletonEntry(reflect.TypeFor[T]()); entry != nil {
		s.ptr = entry.value.Interface().(*T)
	}
}

// Exists returns true if the singleton component has been added to storage
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}
