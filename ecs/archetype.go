package ecs

import (
	"iter"
	"reflect"
	"slices"
	"weak"

	"github.com/kamstrup/intmap"
)

// Archetype stores every entity that has exactly one particular set of
// component types, one column per type.
type Archetype struct {
	id      uint32
	types   []reflect.Type
	columns []columnStorage
	refs    *intmap.Map[EntityId, weak.Pointer[EntityRef]]
}

func newArchetype(id uint32, types []reflect.Type, registry *ComponentRegistry) *Archetype {
	a := &Archetype{
		id:      id,
		types:   types,
		columns: make([]columnStorage, len(types)),
		refs:    intmap.New[EntityId, weak.Pointer[EntityRef]](16),
	}
	for i, typ := range types {
		a.columns[i] = registry.newColumn(typ)
	}
	return a
}

// ID returns the archetype's id, which is also the upper half of the
// EntityIds it hands out.
func (a *Archetype) ID() uint32 {
	return a.id
}

// Types returns the component types of this archetype in canonical order.
func (a *Archetype) Types() []reflect.Type {
	return a.types
}

// Len returns the number of live entities.
func (a *Archetype) Len() int {
	if len(a.columns) == 0 {
		return 0
	}
	return a.columns[0].Len()
}

// HasComponent reports whether the archetype has a column for compType.
func (a *Archetype) HasComponent(compType reflect.Type) bool {
	return slices.Contains(a.types, compType)
}

func (a *Archetype) columnIndex(compType reflect.Type) int {
	return slices.Index(a.types, compType)
}

// spawn appends one row. components may be values or pointers and in any
// order, but must cover every column exactly once.
func (a *Archetype) spawn(components []any) uint32 {
	row := -1
	for _, comp := range components {
		idx := a.columnIndex(componentType(comp))
		if idx < 0 {
			panic("ecs: component " + componentType(comp).String() + " does not belong to archetype")
		}
		row = a.columns[idx].Append(comp)
	}
	return uint32(row)
}

// GetComponent returns a pointer to the row's component of compType, or nil.
func (a *Archetype) GetComponent(index uint32, compType reflect.Type) any {
	idx := a.columnIndex(compType)
	if idx < 0 {
		return nil
	}
	return a.columns[idx].Get(int(index))
}

func (a *Archetype) alive(index uint32) bool {
	return len(a.columns) > 0 && a.columns[0].Has(int(index))
}

// delete frees the row and invalidates any EntityRef pointing at it.
func (a *Archetype) delete(index uint32) {
	id := NewEntityId(a.id, index)
	if ptr, ok := a.refs.Get(id); ok {
		if ref := ptr.Value(); ref != nil {
			ref.Id = 0
			ref.Archetype = nil
		}
		a.refs.Del(id)
	}

	for _, col := range a.columns {
		col.Delete(int(index))
	}
}

// Iter yields the ids of every live entity.
func (a *Archetype) Iter() iter.Seq[EntityId] {
	return func(yield func(EntityId) bool) {
		if len(a.columns) == 0 {
			return
		}
		for index := range a.columns[0].Iter() {
			if !yield(NewEntityId(a.id, uint32(index))) {
				return
			}
		}
	}
}
