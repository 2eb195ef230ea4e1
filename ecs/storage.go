package ecs

import (
	"reflect"
	"slices"
	"strings"

	"github.com/kamstrup/intmap"
)

// Storage is the entity arena. It is the sole owner of every entity and its
// components; everything else holds Entity handles.
type Storage struct {
	archetypes map[uint32]*Archetype
	registry   *ComponentRegistry
	pool       entityPool
	locations  *intmap.Map[Entity, location]
	order      []Entity
	stale      int
	singletons map[reflect.Type]*singletonEntry
}

// NewStorage creates a new ECS storage system with the given component registry
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		archetypes: make(map[uint32]*Archetype),
		registry:   registry,
		locations:  intmap.New[Entity, location](256),
		singletons: make(map[reflect.Type]*singletonEntry),
	}
}

// Registry returns the component registry backing this storage
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// GetArchetype returns an archetype storage (if one exists)
func (s *Storage) GetArchetype(components ...any) *Archetype {
	types, _ := normalizeComponents(components)
	return s.GetArchetypeByTypes(types)
}

// GetArchetypeByTypes returns an archetype storage (if one exists) based on reflect.Type
func (s *Storage) GetArchetypeByTypes(types []reflect.Type) *Archetype {
	sorted := slices.Clone(types)
	slices.SortFunc(sorted, compareTypes)
	return s.archetypes[hashTypesToUint32(sorted)]
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	if len(types) == 0 {
		return nil
	}

	id := hashTypesToUint32(types)
	archetype, exists := s.archetypes[id]
	if !exists {
		archetype = NewArchetype(id, types, s.registry)
		s.archetypes[id] = archetype
		return archetype
	}
	if !slices.Equal(archetype.types, types) {
		panic("ecs: archetype id collision between " + typeList(archetype.types) + " and " + typeList(types))
	}
	return archetype
}

func (s *Storage) place(e Entity, types []reflect.Type, components []any) {
	loc := location{archetype: s.archetypeFor(types)}
	if loc.archetype != nil {
		loc.slot = loc.archetype.spawn(e, components)
	}
	s.locations.Put(e, loc)
}

// Spawn creates a new entity with the provided components. Components may be
// passed by value or by pointer; they are copied into storage. When the same
// type appears more than once the last value wins. Spawning with no
// components creates an empty entity that components can be added to later.
func (s *Storage) Spawn(components ...any) Entity {
	types, comps := normalizeComponents(components)
	for _, typ := range types {
		if !s.registry.Registered(typ) {
			panic("ecs: component type " + typ.String() + " not registered")
		}
	}
	e := s.pool.create()
	s.place(e, types, comps)
	s.order = append(s.order, e)
	return e
}

// Alive reports whether e still refers to an entity in this storage
func (s *Storage) Alive(e Entity) bool {
	return s.pool.alive(e)
}

// Len returns the number of live entities
func (s *Storage) Len() int {
	return s.locations.Len()
}

// Entities returns the live entities in spawn order. The returned slice is
// owned by the storage and must not be modified; it stays safe to range over
// while entities are spawned or deleted.
func (s *Storage) Entities() []Entity {
	if s.stale > 0 {
		order := make([]Entity, 0, len(s.order)-s.stale)
		for _, e := range s.order {
			if s.pool.alive(e) {
				order = append(order, e)
			}
		}
		s.order = order
		s.stale = 0
	}
	return s.order
}

// Delete removes all data related to the entity. Deleting a dead entity is a no-op.
func (s *Storage) Delete(e Entity) {
	loc, ok := s.locations.Get(e)
	if !ok {
		return
	}

	if loc.archetype != nil {
		loc.archetype.delete(loc.slot)
	}
	s.locations.Del(e)
	s.pool.destroy(e)
	s.stale++
}

// AddComponent stores component on e. A component of the same type already
// on e is replaced in place; otherwise e moves to the archetype that includes
// the new type. The handle e stays valid either way. Panics if e is dead.
func (s *Storage) AddComponent(e Entity, component any) {
	loc, ok := s.locations.Get(e)
	if !ok {
		panic(&DeadEntityError{Entity: e, Op: "AddComponent"})
	}

	compType := componentTypeOf(component)
	if !s.registry.Registered(compType) {
		panic("ecs: component type " + compType.String() + " not registered")
	}

	oldArchetype := loc.archetype
	if oldArchetype != nil && oldArchetype.setComponent(loc.slot, compType, component) {
		return
	}

	var oldTypes []reflect.Type
	if oldArchetype != nil {
		oldTypes = oldArchetype.types
	}

	newTypes := make([]reflect.Type, 0, len(oldTypes)+1)
	newTypes = append(newTypes, oldTypes...)
	newTypes = append(newTypes, compType)
	slices.SortFunc(newTypes, compareTypes)

	components := make([]any, 0, len(newTypes))
	for _, typ := range newTypes {
		if typ == compType {
			components = append(components, component)
		} else {
			components = append(components, oldArchetype.GetComponent(loc.slot, typ))
		}
	}

	// copy into the new archetype before the old slot is zeroed
	s.place(e, newTypes, components)
	if oldArchetype != nil {
		oldArchetype.delete(loc.slot)
	}
}

// RemoveComponent drops the component of compType from e. The entity stays
// alive even when its last component is removed.
func (s *Storage) RemoveComponent(e Entity, compType reflect.Type) {
	loc, ok := s.locations.Get(e)
	if !ok || loc.archetype == nil || !loc.archetype.HasComponent(compType) {
		return
	}

	oldArchetype := loc.archetype
	newTypes := make([]reflect.Type, 0, len(oldArchetype.types)-1)
	for _, typ := range oldArchetype.types {
		if typ != compType {
			newTypes = append(newTypes, typ)
		}
	}

	components := make([]any, 0, len(newTypes))
	for _, typ := range newTypes {
		components = append(components, oldArchetype.GetComponent(loc.slot, typ))
	}

	s.place(e, newTypes, components)
	oldArchetype.delete(loc.slot)
}

// GetComponent returns a pointer to the component of compType on e, or nil
// when e is dead or has no such component
func (s *Storage) GetComponent(e Entity, compType reflect.Type) any {
	loc, ok := s.locations.Get(e)
	if !ok || loc.archetype == nil {
		return nil
	}
	return loc.archetype.GetComponent(loc.slot, compType)
}

// HasComponent checks if an entity has a specific component type
func (s *Storage) HasComponent(e Entity, compType reflect.Type) bool {
	loc, ok := s.locations.Get(e)
	if !ok || loc.archetype == nil {
		return false
	}
	return loc.archetype.HasComponent(compType)
}

// Compact reorganizes all archetype columns to eliminate empty slots.
// Entity handles remain valid. Component pointers obtained before the call
// must not be used afterwards.
func (s *Storage) Compact() {
	for _, archetype := range s.archetypes {
		for e, slot := range archetype.compact() {
			s.locations.Put(e, location{archetype: archetype, slot: slot})
		}
	}
	s.Entities()
}

func (s *Storage) locate(e Entity) (location, bool) {
	return s.locations.Get(e)
}

func componentTypeOf(component any) reflect.Type {
	compType := reflect.TypeOf(component)
	if compType == nil {
		panic("ecs: nil component")
	}
	if compType.Kind() == reflect.Ptr {
		compType = compType.Elem()
	}
	checkComponentType(compType)
	return compType
}

// normalizeComponents resolves component types, drops earlier duplicates and
// sorts both slices into canonical archetype order.
func normalizeComponents(components []any) ([]reflect.Type, []any) {
	type entry struct {
		typ  reflect.Type
		comp any
	}

	entries := make([]entry, 0, len(components))
	for _, comp := range components {
		typ := componentTypeOf(comp)
		replaced := false
		for i := range entries {
			if entries[i].typ == typ {
				entries[i].comp = comp
				replaced = true
				break
			}
		}
		if !replaced {
			entries = append(entries, entry{typ: typ, comp: comp})
		}
	}

	slices.SortFunc(entries, func(a, b entry) int {
		return compareTypes(a.typ, b.typ)
	})

	types := make([]reflect.Type, len(entries))
	comps := make([]any, len(entries))
	for i, en := range entries {
		types[i] = en.typ
		comps[i] = en.comp
	}
	return types, comps
}

func typeKey(t reflect.Type) string {
	return t.PkgPath() + "." + t.String()
}

func compareTypes(a, b reflect.Type) int {
	return strings.Compare(typeKey(a), typeKey(b))
}

func typeList(types []reflect.Type) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = t.String()
	}
	return "[" + strings.Join(names, " ") + "]"
}

// hashTypesToUint32 generates a uint32 hash for a sorted slice of types
func hashTypesToUint32(types []reflect.Type) uint32 {
	var h uint32 = 2166136261     // FNV-1a 32-bit offset basis
	const prime uint32 = 16777619 // FNV-1a 32-bit prime

	for _, t := range types {
		key := typeKey(t)
		for i := 0; i < len(key); i++ {
			h ^= uint32(key[i])
			h *= prime
		}
		// separator so that [ab c] and [a bc] differ
		h ^= 0xff
		h *= prime
	}

	return h
}
