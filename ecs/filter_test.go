package ecs_test

import (
	"slices"
	"testing"

	"github.com/darkf/ecs-pong/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilterProcess(t *testing.T) {
	storage := newTestStorage()
	filter := ecs.NewFilter[mover](storage)

	full := storage.Spawn(Position{X: 1}, Velocity{DX: 1})
	partial := storage.Spawn(Position{X: 1})

	move := func(_ ecs.Entity, m mover) { m.Position.X += m.Velocity.DX }

	assert.True(t, filter.Process(full, move))
	assert.False(t, filter.Process(partial, move), "missing Velocity is skipped, not an error")

	assert.Equal(t, float32(2), ecs.ReadComponent[Position](storage, full).X)
	assert.Equal(t, float32(1), ecs.ReadComponent[Position](storage, partial).X)
}

func TestFilterProcessDeadEntity(t *testing.T) {
	storage := newTestStorage()
	filter := ecs.NewFilter[mover](storage)

	e := storage.Spawn(Position{}, Velocity{})
	storage.Delete(e)

	called := false
	assert.False(t, filter.Process(e, func(ecs.Entity, mover) { called = true }))
	assert.False(t, called)
}

func TestFilterProcessAllSliceOrder(t *testing.T) {
	storage := newTestStorage()
	filter := ecs.NewFilter[mover](storage)

	a := storage.Spawn(Position{}, Velocity{})
	b := storage.Spawn(Position{})
	c := storage.Spawn(Position{}, Velocity{}, Health{})
	d := storage.Spawn(Velocity{})

	var order []ecs.Entity
	n := filter.ProcessAll([]ecs.Entity{c, d, b, a}, func(e ecs.Entity, _ mover) {
		order = append(order, e)
	})

	assert.Equal(t, 2, n)
	assert.Equal(t, []ecs.Entity{c, a}, order)
}

func TestFilterAcceptsStructuralChangesBetweenCalls(t *testing.T) {
	storage := newTestStorage()
	filter := ecs.NewFilter[mover](storage)

	e := storage.Spawn(Position{})
	noop := func(ecs.Entity, mover) {}
	assert.False(t, filter.Process(e, noop))

	storage.AddComponent(e, Velocity{})
	assert.True(t, filter.Process(e, noop))
	assert.True(t, filter.Matches(e))

	ecs.RemoveComponentOf[Position](storage, e)
	assert.False(t, filter.Process(e, noop))
	assert.NotNil(t, filter.View())
}

func TestProcessAllOrderStable(t *testing.T) {
	storage := newTestStorage()
	for i := range 20 {
		comps := []any{Position{X: float32(i)}}
		if i%3 != 0 {
			comps = append(comps, Velocity{})
		}
		if i%4 == 0 {
			comps = append(comps, Health{})
		}
		storage.Spawn(comps...)
	}
	filter := ecs.NewFilter[mover](storage)

	visit := func() []ecs.Entity {
		var order []ecs.Entity
		filter.ProcessAll(storage.Entities(), func(e ecs.Entity, _ mover) {
			order = append(order, e)
		})
		return order
	}

	first := visit()
	require.Len(t, first, 13)
	for range 5 {
		assert.Equal(t, first, visit())
	}
}

func TestQueryExecuteOrderStable(t *testing.T) {
	storage := newTestStorage()
	for i := range 20 {
		if i%2 == 0 {
			storage.Spawn(Position{X: float32(i)}, Velocity{}, Name{})
		} else {
			storage.Spawn(Velocity{}, Position{X: float32(i)})
		}
	}
	query := ecs.NewQuery[mover](storage)

	query.Execute()
	first := slices.Clone(query.Entities())
	var xs []float32
	for m := range query.Values() {
		xs = append(xs, m.Position.X)
	}

	for range 5 {
		query.Execute()
		assert.Equal(t, first, query.Entities())
		var again []float32
		for m := range query.Values() {
			again = append(again, m.Position.X)
		}
		assert.Equal(t, xs, again)
	}
}
