package ecs

// Entity is a generational handle into a Storage: the slot index lives in the
// lower 32 bits and the slot generation in the upper 32 bits. The zero Entity
// never refers to a live entity.
type Entity uint64

// NewEntity creates an Entity from a slot index and generation
func NewEntity(index uint32, generation uint32) Entity {
	return Entity(uint64(generation)<<32 | uint64(index))
}

// Index extracts the slot index from the handle
func (e Entity) Index() uint32 {
	return uint32(e & 0xFFFFFFFF)
}

// Generation extracts the slot generation from the handle
func (e Entity) Generation() uint32 {
	return uint32(e >> 32)
}

// IsZero reports whether e is the zero handle
func (e Entity) IsZero() bool {
	return e == 0
}

// location is where an entity's components currently live
type location struct {
	archetype *Archetype
	slot      uint32
}

// entityPool hands out slot indices with generations. Destroying a slot bumps
// its generation so that old handles stop resolving.
type entityPool struct {
	generations []uint32
	free        []uint32
}

func (p *entityPool) create() Entity {
	if len(p.free) > 0 {
		idx := p.free[len(p.free)-1]
		p.free = p.free[:len(p.free)-1]
		return NewEntity(idx, p.generations[idx])
	}

	idx := uint32(len(p.generations))
	// generations start at 1 so the zero handle is never issued
	p.generations = append(p.generations, 1)
	return NewEntity(idx, 1)
}

func (p *entityPool) alive(e Entity) bool {
	idx := e.Index()
	if int(idx) >= len(p.generations) {
		return false
	}
	return p.generations[idx] == e.Generation()
}

func (p *entityPool) destroy(e Entity) {
	if !p.alive(e) {
		return
	}
	idx := e.Index()
	p.generations[idx]++
	if p.generations[idx] == 0 {
		p.generations[idx] = 1
	}
	p.free = append(p.free, idx)
}
