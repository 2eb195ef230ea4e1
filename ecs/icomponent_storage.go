package ecs

import "iter"

// iComponentStorage is a type-erased column of one component type.
type iComponentStorage interface {
	Append(item any) int
	Set(index int, item any) bool
	Delete(index int)
	Get(index int) any
	Has(index int) bool
	Compact() map[int]int
	Iter() iter.Seq[int]
}
