package ecs

import (
	"iter"
	"reflect"
	"unsafe"
)

var entityIdType = reflect.TypeFor[EntityId]()

// View looks at entities through a struct of component pointers:
//
//	ecs.View[struct {
//		ecs.EntityId
//		*Position
//		*Velocity
//		Health *Health `ecs:"optional"`
//	}]
//
// Every pointer field names a required component unless it is a named field
// tagged `ecs:"optional"`, in which case it is nil for entities without it.
// A field of type EntityId receives the entity's id.
type View[T any] struct {
	storage  *Storage
	types    []reflect.Type
	optional []bool
	offsets  []uintptr
	idOffset uintptr
	hasId    bool
}

// NewView builds a view for T. It panics if T is not a struct of component
// pointers.
func NewView[T any](storage *Storage) *View[T] {
	structType := reflect.TypeFor[T]()
	if structType.Kind() != reflect.Struct {
		panic("ecs: View type parameter must be a struct")
	}

	v := &View[T]{storage: storage}
	for i := 0; i < structType.NumField(); i++ {
		field := structType.Field(i)

		if field.Type == entityIdType {
			v.idOffset = field.Offset
			v.hasId = true
			continue
		}

		if field.Type.Kind() != reflect.Pointer {
			panic("ecs: View field " + field.Name + " must be a pointer to a component")
		}

		optional := false
		if tag := field.Tag.Get("ecs"); tag != "" {
			if tag != "optional" || field.Anonymous {
				panic("ecs: invalid ecs tag \"" + tag + "\" on field " + field.Name)
			}
			optional = true
		}

		v.types = append(v.types, field.Type.Elem())
		v.optional = append(v.optional, optional)
		v.offsets = append(v.offsets, field.Offset)
	}

	return v
}

// Get returns the view of one entity, or nil if it lacks a required
// component.
func (v *View[T]) Get(id EntityId) *T {
	var result T
	if !v.Fill(id, &result) {
		return nil
	}
	return &result
}

// GetRef is Get for an EntityRef.
func (v *View[T]) GetRef(ref *EntityRef) *T {
	id, ok := v.storage.ResolveEntityRef(ref)
	if !ok {
		return nil
	}
	return v.Get(id)
}

// Fill populates *ptr for id and reports whether every required component was
// found.
func (v *View[T]) Fill(id EntityId, ptr *T) bool {
	archetype, ok := v.storage.archetypes[id.ArchetypeId()]
	if !ok || !archetype.alive(id.Index()) || !v.matches(archetype) {
		return false
	}
	return v.populate(unsafe.Pointer(ptr), archetype, int(id.Index()), v.columnsOf(archetype))
}

// Iter yields every matching entity. Archetype order is unspecified.
func (v *View[T]) Iter() iter.Seq2[EntityId, T] {
	return func(yield func(EntityId, T) bool) {
		for _, archetype := range v.storage.archetypes {
			if !v.matches(archetype) {
				continue
			}
			if !v.iterArchetype(archetype, yield) {
				return
			}
		}
	}
}

// Values is Iter without the ids.
func (v *View[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range v.Iter() {
			if !yield(item) {
				return
			}
		}
	}
}

// Spawn creates an entity from the non-nil component pointers of data.
// A nil required field panics.
func (v *View[T]) Spawn(data T) EntityId {
	base := unsafe.Pointer(&data)

	components := make([]any, 0, len(v.types))
	for i, typ := range v.types {
		ptr := *(*unsafe.Pointer)(unsafe.Add(base, v.offsets[i]))
		if ptr == nil {
			if !v.optional[i] {
				panic("ecs: required component " + typ.String() + " is nil in View.Spawn")
			}
			continue
		}
		components = append(components, reflect.NewAt(typ, ptr).Interface())
	}

	return v.storage.Spawn(components...)
}

func (v *View[T]) iterArchetype(archetype *Archetype, yield func(EntityId, T) bool) bool {
	if len(archetype.columns) == 0 {
		return true
	}

	columns := v.columnsOf(archetype)
	var result T
	base := unsafe.Pointer(&result)

	for row := range archetype.columns[0].Iter() {
		if !v.populate(base, archetype, row, columns) {
			continue
		}
		if !yield(NewEntityId(archetype.id, uint32(row)), result) {
			return false
		}
	}
	return true
}

// matches reports whether archetype has every required component.
func (v *View[T]) matches(archetype *Archetype) bool {
	for i, typ := range v.types {
		if !v.optional[i] && !archetype.HasComponent(typ) {
			return false
		}
	}
	return true
}

// columnsOf maps each view field to its column in archetype, -1 when absent.
func (v *View[T]) columnsOf(archetype *Archetype) []int {
	columns := make([]int, len(v.types))
	for i, typ := range v.types {
		columns[i] = archetype.columnIndex(typ)
	}
	return columns
}

func (v *View[T]) populate(base unsafe.Pointer, archetype *Archetype, row int, columns []int) bool {
	for i, col := range columns {
		field := (*unsafe.Pointer)(unsafe.Add(base, v.offsets[i]))

		var comp any
		if col >= 0 {
			comp = archetype.columns[col].Get(row)
		}
		if comp == nil {
			if !v.optional[i] {
				return false
			}
			*field = nil
			continue
		}
		*field = reflect.ValueOf(comp).UnsafePointer()
	}

	if v.hasId {
		*(*EntityId)(unsafe.Add(base, v.idOffset)) = NewEntityId(archetype.id, uint32(row))
	}
	return true
}
