package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

type fieldKind uint8

const (
	componentField fieldKind = iota
	entityField
)

// View describes a signature: the set of component types an entity must hold.
// The type T is a struct whose fields are pointers to component types.
// Embedded pointer fields are always required; named pointer fields are
// required unless tagged `ecs:"optional"`. A field of type Entity receives the
// handle of the matched entity.
type View[T any] struct {
	storage     *Storage
	types       []reflect.Type
	kinds       []fieldKind
	optional    []bool
	fieldOffset []uintptr

	plans map[*Archetype]*viewPlan
}

// viewPlan caches, per archetype, whether it satisfies the signature and
// which column backs each field.
type viewPlan struct {
	match   bool
	columns []int
}

var entityType = reflect.TypeFor[Entity]()

// NewView creates a new view for the given struct type
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("ecs: View type parameter must be a struct")
	}

	n := structType.NumField()
	v := &View[T]{
		storage:     storage,
		types:       make([]reflect.Type, 0, n),
		kinds:       make([]fieldKind, 0, n),
		optional:    make([]bool, 0, n),
		fieldOffset: make([]uintptr, 0, n),
		plans:       make(map[*Archetype]*viewPlan),
	}

	for i := range n {
		field := structType.Field(i)
		fieldType := field.Type

		if fieldType == entityType {
			v.types = append(v.types, nil)
			v.kinds = append(v.kinds, entityField)
			v.optional = append(v.optional, true)
			v.fieldOffset = append(v.fieldOffset, field.Offset)
			continue
		}

		if fieldType.Kind() != reflect.Ptr {
			panic("ecs: View struct fields must be component pointers or ecs.Entity, got " + fieldType.String())
		}

		isOptional := false
		if !field.Anonymous {
			switch tag := field.Tag.Get("ecs"); tag {
			case "":
			case "optional":
				isOptional = true
			default:
				panic("ecs: invalid ecs tag value: \"" + tag + "\" (only \"optional\" is supported)")
			}
		}

		v.types = append(v.types, fieldType.Elem())
		v.kinds = append(v.kinds, componentField)
		v.optional = append(v.optional, isOptional)
		v.fieldOffset = append(v.fieldOffset, field.Offset)
	}

	return v
}

func (v *View[T]) planFor(archetype *Archetype) *viewPlan {
	if plan, ok := v.plans[archetype]; ok {
		return plan
	}

	plan := &viewPlan{match: true, columns: make([]int, len(v.types))}
	for i, typ := range v.types {
		plan.columns[i] = -1
		if v.kinds[i] != componentField {
			continue
		}
		if archetype != nil {
			plan.columns[i] = archetype.column(typ)
		}
		if plan.columns[i] == -1 && !v.optional[i] {
			plan.match = false
		}
	}

	v.plans[archetype] = plan
	return plan
}

func (v *View[T]) populate(structPtr unsafe.Pointer, e Entity, loc location, plan *viewPlan) bool {
	for i, column := range plan.columns {
		fieldPtr := unsafe.Add(structPtr, v.fieldOffset[i])

		if v.kinds[i] == entityField {
			*(*Entity)(fieldPtr) = e
			continue
		}

		if column == -1 {
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}

		component := loc.archetype.storages[column].Get(int(loc.slot))
		if component == nil {
			if !v.optional[i] {
				return false
			}
			*(*unsafe.Pointer)(fieldPtr) = nil
			continue
		}

		*(*unsafe.Pointer)(fieldPtr) = reflect.ValueOf(component).UnsafePointer()
	}
	return true
}

// Fill populates the provided struct pointer with component data for the given entity
// Returns false if the entity is dead or missing any required components
// Optional components are set to nil if not present
func (v *View[T]) Fill(e Entity, ptr *T) bool {
	loc, ok := v.storage.locate(e)
	if !ok {
		return false
	}

	plan := v.planFor(loc.archetype)
	if !plan.match {
		return false
	}

	return v.populate(unsafe.Pointer(ptr), e, loc, plan)
}

// Matches reports whether e satisfies the view's required components
func (v *View[T]) Matches(e Entity) bool {
	loc, ok := v.storage.locate(e)
	if !ok {
		return false
	}
	return v.planFor(loc.archetype).match
}

// Get returns a populated view struct for the given entity, or nil if the entity
// doesn't have all the required components
func (v *View[T]) Get(e Entity) *T {
	var result T
	if !v.Fill(e, &result) {
		return nil
	}
	return &result
}

// Iter returns an iterator over all entities that have all the required
// components, in spawn order.
func (v *View[T]) Iter() iter.Seq2[Entity, T] {
	return func(yield func(Entity, T) bool) {
		var result T
		for _, e := range v.storage.Entities() {
			if !v.Fill(e, &result) {
				continue
			}
			if !yield(e, result) {
				return
			}
		}
	}
}

// Values returns an iterator over just the view structs (without entity handles)
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, value := range v.Iter() {
			if !yield(value) {
				return
			}
		}
	}
}

// Spawn creates a new entity with components copied out of the view struct.
// Nil optional fields are skipped; a nil required field panics.
func (v *View[T]) Spawn(data T) Entity {
	structPtr := unsafe.Pointer(&data)

	components := make([]any, 0, len(v.types))
	for i, typ := range v.types {
		if v.kinds[i] != componentField {
			continue
		}

		componentPtr := *(*unsafe.Pointer)(unsafe.Add(structPtr, v.fieldOffset[i]))
		if componentPtr == nil {
			if !v.optional[i] {
				panic("ecs: required component " + typ.String() + " is nil in View.Spawn")
			}
			continue
		}

		components = append(components, reflect.NewAt(typ, componentPtr).Elem().Interface())
	}

	if len(components) == 0 {
		panic("ecs: cannot spawn entity without components")
	}

	return v.storage.Spawn(components...)
}

// RequiredTypes returns the component types an entity must hold to match
func (v *View[T]) RequiredTypes() []reflect.Type {
	required := make([]reflect.Type, 0, len(v.types))
	for i, typ := range v.types {
		if v.kinds[i] == componentField && !v.optional[i] {
			required = append(required, typ)
		}
	}
	return required
}
