package ecs

import "reflect"

// Commands buffers structural ECS operations until the end of a frame so that
// systems and event handlers never reshape storage while it is being iterated.
type Commands struct {
	spawns  []spawnCommand
	deletes []Entity
	adds    []addComponentCommand
	removes []removeComponentCommand
	defers  []func()
}

// NewCommands creates an empty command buffer.
func NewCommands() *Commands {
	return &Commands{}
}

type spawnCommand struct {
	components []any
}

type addComponentCommand struct {
	entity    Entity
	component any
}

type removeComponentCommand struct {
	entity   Entity
	compType reflect.Type
}

// Defer queues a function to run after the structural operations of the flush.
func (c *Commands) Defer(fn func()) {
	c.defers = append(c.defers, fn)
}

// Spawn queues an entity spawn operation with the given components.
func (c *Commands) Spawn(components ...any) {
	c.spawns = append(c.spawns, spawnCommand{components: components})
}

// Delete queues an entity deletion operation.
func (c *Commands) Delete(entity Entity) {
	c.deletes = append(c.deletes, entity)
}

// AddComponent queues a component addition operation.
func (c *Commands) AddComponent(entity Entity, component any) {
	c.adds = append(c.adds, addComponentCommand{
		entity:    entity,
		component: component,
	})
}

// RemoveComponent queues a component removal operation.
func (c *Commands) RemoveComponent(entity Entity, compType reflect.Type) {
	c.removes = append(c.removes, removeComponentCommand{
		entity:   entity,
		compType: compType,
	})
}

// Pending reports whether any operation is queued.
func (c *Commands) Pending() bool {
	return len(c.spawns)+len(c.deletes)+len(c.adds)+len(c.removes)+len(c.defers) > 0
}

// Flush applies all queued operations to storage: deletes, removals,
// additions, spawns, then deferred functions. Operations on entities that are
// dead by the time they apply are dropped. Work queued by deferred functions
// is applied in the same flush.
func (c *Commands) Flush(storage *Storage) {
	for c.Pending() {
		batch := *c
		*c = Commands{}

		for _, e := range batch.deletes {
			storage.Delete(e)
		}

		for _, cmd := range batch.removes {
			storage.RemoveComponent(cmd.entity, cmd.compType)
		}

		for _, cmd := range batch.adds {
			if storage.Alive(cmd.entity) {
				storage.AddComponent(cmd.entity, cmd.component)
			}
		}

		for _, cmd := range batch.spawns {
			storage.Spawn(cmd.components...)
		}

		for _, fn := range batch.defers {
			fn()
		}

		// hand the drained buffers back for reuse when nothing new was queued
		if !c.Pending() {
			c.spawns = batch.spawns[:0]
			c.deletes = batch.deletes[:0]
			c.adds = batch.adds[:0]
			c.removes = batch.removes[:0]
			c.defers = batch.defers[:0]
		}
	}
}
