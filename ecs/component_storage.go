package ecs

import (
	"iter"
	"math/bits"
	"reflect"
)

// columnStorage is a type-erased column holding one component type for every
// row of an archetype. All columns of an archetype hand out the same index for
// the same row because rows are appended and deleted across all of them at
// once.
type columnStorage interface {
	Append(item any) int
	Delete(index int)
	Get(index int) any
	Has(index int) bool
	Len() int
	Iter() iter.Seq[int]
}

// ComponentRegistry records which component types a Storage may hold and how
// to build a column for each. Every Storage owns its registry, so independent
// worlds can register different sets of types.
type ComponentRegistry struct {
	factories map[reflect.Type]func() columnStorage
	ids       map[reflect.Type]uint32
}

// NewComponentRegistry returns an empty registry.
func NewComponentRegistry() *ComponentRegistry {
	return &ComponentRegistry{
		factories: make(map[reflect.Type]func() columnStorage),
		ids:       make(map[reflect.Type]uint32),
	}
}

// RegisterComponent makes T usable as a component. Registering the same type
// twice is a no-op.
func RegisterComponent[T any](r *ComponentRegistry) {
	t := reflect.TypeFor[T]()
	if _, ok := r.factories[t]; ok {
		return
	}
	r.factories[t] = func() columnStorage {
		return &column[T]{}
	}
	r.ids[t] = uint32(len(r.ids) + 1)
}

// IsRegistered reports whether t has been registered.
func (r *ComponentRegistry) IsRegistered(t reflect.Type) bool {
	_, ok := r.factories[t]
	return ok
}

func (r *ComponentRegistry) componentId(t reflect.Type) uint32 {
	id, ok := r.ids[t]
	if !ok {
		panic("ecs: component type " + t.String() + " not registered")
	}
	return id
}

func (r *ComponentRegistry) newColumn(t reflect.Type) columnStorage {
	factory, ok := r.factories[t]
	if !ok {
		panic("ecs: component type " + t.String() + " not registered")
	}
	return factory()
}

const pageSize = 64

// page is a fixed block of rows. Pages are heap allocated individually so a
// pointer handed out by Get stays valid while the column grows.
type page[T any] struct {
	values [pageSize]T
	live   uint64
}

type column[T any] struct {
	pages []*page[T]
	free  []int
	next  int
	count int
}

func (c *column[T]) Append(item any) int {
	var value T
	if ptr, ok := item.(*T); ok {
		value = *ptr
	} else if v, ok := item.(T); ok {
		value = v
	} else {
		return -1
	}

	var index int
	if n := len(c.free); n > 0 {
		index = c.free[n-1]
		c.free = c.free[:n-1]
	} else {
		index = c.next
		c.next++
	}

	for index/pageSize >= len(c.pages) {
		c.pages = append(c.pages, new(page[T]))
	}

	pg := c.pages[index/pageSize]
	slot := uint(index % pageSize)
	pg.values[slot] = value
	pg.live |= 1 << slot
	c.count++
	return index
}

func (c *column[T]) locate(index int) (*page[T], uint, bool) {
	if index < 0 || index >= c.next {
		return nil, 0, false
	}
	pg := c.pages[index/pageSize]
	slot := uint(index % pageSize)
	return pg, slot, pg.live&(1<<slot) != 0
}

// Get returns a *T for a live row, or nil.
func (c *column[T]) Get(index int) any {
	pg, slot, ok := c.locate(index)
	if !ok {
		return nil
	}
	return &pg.values[slot]
}

func (c *column[T]) Delete(index int) {
	pg, slot, ok := c.locate(index)
	if !ok {
		return
	}
	var zero T
	pg.values[slot] = zero
	pg.live &^= 1 << slot
	c.free = append(c.free, index)
	c.count--
}

func (c *column[T]) Has(index int) bool {
	_, _, ok := c.locate(index)
	return ok
}

func (c *column[T]) Len() int {
	return c.count
}

func (c *column[T]) Iter() iter.Seq[int] {
	return func(yield func(int) bool) {
		for p, pg := range c.pages {
			live := pg.live
			for live != 0 {
				slot := bits.TrailingZeros64(live)
				live &^= 1 << uint(slot)
				if !yield(p*pageSize + slot) {
					return
				}
			}
		}
	}
}
