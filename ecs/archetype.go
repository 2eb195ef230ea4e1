package ecs

import (
	"reflect"
	"slices"
)

// Archetype represents a unique combination of component types. Every column
// receives the same sequence of appends and deletes, so a slot index addresses
// the same entity in all of them.
type Archetype struct {
	id       uint32
	types    []reflect.Type
	storages []iComponentStorage
	owners   []Entity
	count    int
}

// NewArchetype creates a new archetype with the given ID and sorted component types
func NewArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:       id,
		types:    types,
		storages: make([]iComponentStorage, len(types)),
	}

	for idx, typ := range types {
		factory := registry.getFactory(typ)
		if factory == nil {
			panic("ecs: component type " + typ.String() + " not registered")
		}
		a.storages[idx] = factory()
	}

	return a
}

// spawn stores one component per column for owner and returns the slot.
// components must be ordered like a.types.
func (a *Archetype) spawn(owner Entity, components []any) uint32 {
	slot := -1
	for idx, comp := range components {
		pos := a.storages[idx].Append(comp)
		if pos < 0 {
			panic("ecs: component of type " + reflect.TypeOf(comp).String() + " does not match column " + a.types[idx].String())
		}
		slot = pos
	}

	for len(a.owners) <= slot {
		a.owners = append(a.owners, 0)
	}
	a.owners[slot] = owner
	a.count++

	return uint32(slot)
}

func (a *Archetype) column(compType reflect.Type) int {
	for i, typ := range a.types {
		if typ == compType {
			return i
		}
	}
	return -1
}

// GetComponent returns a pointer to the component of the given type stored in slot
func (a *Archetype) GetComponent(slot uint32, compType reflect.Type) any {
	idx := a.column(compType)
	if idx == -1 {
		return nil
	}
	return a.storages[idx].Get(int(slot))
}

// setComponent overwrites an existing component in place
func (a *Archetype) setComponent(slot uint32, compType reflect.Type, component any) bool {
	idx := a.column(compType)
	if idx == -1 {
		return false
	}
	return a.storages[idx].Set(int(slot), component)
}

// delete clears a slot. Slots of other entities are unaffected.
func (a *Archetype) delete(slot uint32) {
	if int(slot) >= len(a.owners) || a.owners[slot] == 0 {
		return
	}
	for _, storage := range a.storages {
		storage.Delete(int(slot))
	}
	a.owners[slot] = 0
	a.count--
}

// HasComponent checks if this archetype has the given component type
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return slices.Contains(a.types, compType)
}

// ID returns the archetype's unique identifier
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the sorted component types for this archetype
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities in the archetype
func (a *Archetype) Len() int {
	return a.count
}

// compact squeezes empty slots out of every column and returns the entities
// whose slot changed along with their new slot.
func (a *Archetype) compact() map[Entity]uint32 {
	moved := make(map[Entity]uint32)
	if len(a.storages) == 0 {
		return moved
	}

	indexMap := a.storages[0].Compact()
	for i := 1; i < len(a.storages); i++ {
		a.storages[i].Compact()
	}

	owners := make([]Entity, len(indexMap))
	for oldIdx, newIdx := range indexMap {
		owner := a.owners[oldIdx]
		owners[newIdx] = owner
		if oldIdx != newIdx {
			moved[owner] = uint32(newIdx)
		}
	}
	a.owners = owners

	return moved
}

// Iter returns an iterator over the live entities stored in this archetype in slot order
func (a *Archetype) Iter() func(yield func(Entity) bool) {
	return func(yield func(Entity) bool) {
		if len(a.storages) == 0 {
			return
		}

		for slot := range a.storages[0].Iter() {
			if !yield(a.owners[slot]) {
				return
			}
		}
	}
}
