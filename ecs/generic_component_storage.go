package ecs

import (
	"iter"
	"reflect"
)

// ComponentRegistry manages component type registration for an ECS instance.
// Each Storage instance has its own ComponentRegistry, allowing multiple
// independent worlds (one per game, one per test) to coexist.
type ComponentRegistry struct {
	factories map[reflect.Type]func() iComponentStorage
}

// NewComponentRegistry creates a new component registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() iComponentStorage),
	}
}

// RegisterComponent registers a new component type with the given registry.
// This must be called for each component type before it can be used.
// Pointer, map, channel and func types cannot be components.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	checkComponentType(t)
	r.factories[t] = func() iComponentStorage {
		return &genericComponentStorage[T]{}
	}
}

// Registered reports whether t has been registered.
func (r *ComponentRegistry) Registered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

// getFactory returns the factory function for a given component type.
// Returns nil if the type is not registered.
func (r *ComponentRegistry) getFactory(t reflect.Type) func() iComponentStorage {
	return r.factories[t]
}

func checkComponentType(t reflect.Type) {
	switch t.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Chan, reflect.Func, reflect.Interface:
		panic("ecs: component type " + t.String() + " cannot be a pointer, map, channel, func or interface")
	}
}

const (
	genericBlockSize = 64
)

// genericComponentStorage stores components of type T in fixed-size blocks.
// Blocks are individually allocated so pointers handed out by Get stay valid
// while the column grows.
type genericComponentStorage[T any] struct {
	blocks    []*[genericBlockSize]T
	filled    []*[genericBlockSize]bool
	freeSlots []int
	nextIndex int
}

func unwrap[T any](item any) (T, bool) {
	if ptr, ok := item.(*T); ok && ptr != nil {
		return *ptr, true
	}
	val, ok := item.(T)
	return val, ok
}

// Append adds a component to storage and returns its index.
func (cs *genericComponentStorage[T]) Append(item any) int {
	concreteItem, ok := unwrap[T](item)
	if !ok {
		return -1
	}

	if len(cs.freeSlots) > 0 {
		index := cs.freeSlots[len(cs.freeSlots)-1]
		cs.freeSlots = cs.freeSlots[:len(cs.freeSlots)-1]

		blockIdx := index / genericBlockSize
		slotIdx := index % genericBlockSize

		cs.blocks[blockIdx][slotIdx] = concreteItem
		cs.filled[blockIdx][slotIdx] = true
		return index
	}

	index := cs.nextIndex
	cs.nextIndex++

	blockIdx := index / genericBlockSize
	slotIdx := index % genericBlockSize

	if blockIdx >= len(cs.blocks) {
		cs.blocks = append(cs.blocks, new([genericBlockSize]T))
		cs.filled = append(cs.filled, new([genericBlockSize]bool))
	}

	cs.blocks[blockIdx][slotIdx] = concreteItem
	cs.filled[blockIdx][slotIdx] = true
	return index
}

// Set overwrites the component at an occupied index.
func (cs *genericComponentStorage[T]) Set(index int, item any) bool {
	if !cs.Has(index) {
		return false
	}
	concreteItem, ok := unwrap[T](item)
	if !ok {
		return false
	}
	cs.blocks[index/genericBlockSize][index%genericBlockSize] = concreteItem
	return true
}

// Get returns a pointer to the component at the given index.
func (cs *genericComponentStorage[T]) Get(index int) any {
	if !cs.Has(index) {
		return nil
	}
	return &cs.blocks[index/genericBlockSize][index%genericBlockSize]
}

// Delete marks a component slot as empty.
func (cs *genericComponentStorage[T]) Delete(index int) {
	if !cs.Has(index) {
		return
	}

	blockIdx := index / genericBlockSize
	slotIdx := index % genericBlockSize

	cs.filled[blockIdx][slotIdx] = false
	var zero T
	cs.blocks[blockIdx][slotIdx] = zero
	cs.freeSlots = append(cs.freeSlots, index)
}

// Has checks if a component exists at the given index.
func (cs *genericComponentStorage[T]) Has(index int) bool {
	if index < 0 {
		return false
	}

	blockIdx := index / genericBlockSize
	if blockIdx >= len(cs.blocks) {
		return false
	}

	return cs.filled[blockIdx][index%genericBlockSize]
}

// Compact reorganizes component storage to remove empty slots. The returned
// map goes from old index to new index for every surviving component.
func (cs *genericComponentStorage[T]) Compact() map[int]int {
	indexMap := make(map[int]int)
	writePos := 0

	total := cs.nextIndex - len(cs.freeSlots)
	if cs.nextIndex == 0 || total == 0 {
		cs.blocks = nil
		cs.filled = nil
		cs.freeSlots = nil
		cs.nextIndex = 0
		return indexMap
	}

	numBlocks := (total + genericBlockSize - 1) / genericBlockSize
	newBlocks := make([]*[genericBlockSize]T, numBlocks)
	newFilled := make([]*[genericBlockSize]bool, numBlocks)
	for i := range newBlocks {
		newBlocks[i] = new([genericBlockSize]T)
		newFilled[i] = new([genericBlockSize]bool)
	}

	for readIdx := range cs.nextIndex {
		readBlock := readIdx / genericBlockSize
		readSlot := readIdx % genericBlockSize

		if !cs.filled[readBlock][readSlot] {
			continue
		}

		indexMap[readIdx] = writePos
		newBlocks[writePos/genericBlockSize][writePos%genericBlockSize] = cs.blocks[readBlock][readSlot]
		newFilled[writePos/genericBlockSize][writePos%genericBlockSize] = true
		writePos++
	}

	cs.blocks = newBlocks
	cs.filled = newFilled
	cs.freeSlots = nil
	cs.nextIndex = writePos

	return indexMap
}

func (cs *genericComponentStorage[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for i := range cs.nextIndex {
			if cs.filled[i/genericBlockSize][i%genericBlockSize] {
				if !yield(i) {
					return
				}
			}
		}
	}
}
