package ecs

import "iter"

// Query is a View that remembers which archetypes match it. The cache is
// rebuilt only when the storage creates a new archetype, so repeated
// iteration from a system skips the archetype scan.
type Query[T any] struct {
	view       *View[T]
	storage    *Storage
	archetypes []*Archetype
	generation int
}

// NewQuery creates a bound Query.
func NewQuery[T any](storage *Storage) *Query[T] {
	q := &Query[T]{}
	q.Init(storage)
	return q
}

// Init binds the query to storage. The Scheduler calls it for Query fields of
// registered systems.
func (q *Query[T]) Init(storage *Storage) {
	q.view = NewView[T](storage)
	q.storage = storage
	q.archetypes = nil
	q.generation = -1
}

func (q *Query[T]) refresh() {
	if q.view == nil {
		panic("ecs: Query used before Init")
	}
	if q.generation == q.storage.generation {
		return
	}

	q.archetypes = q.archetypes[:0]
	for _, archetype := range q.storage.GetArchetypes() {
		if q.view.matches(archetype) {
			q.archetypes = append(q.archetypes, archetype)
		}
	}
	q.generation = q.storage.generation
}

// Iter yields every matching entity, in archetype id order.
func (q *Query[T]) Iter() iter.Seq2[EntityId, T] {
	q.refresh()
	return func(yield func(EntityId, T) bool) {
		for _, archetype := range q.archetypes {
			if !q.view.iterArchetype(archetype, yield) {
				return
			}
		}
	}
}

// Values is Iter without the ids.
func (q *Query[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, item := range q.Iter() {
			if !yield(item) {
				return
			}
		}
	}
}

// Single returns the only matching entity. ok is false when there are zero
// or several matches, which callers treat as "not ready".
func (q *Query[T]) Single() (item T, ok bool) {
	found := 0
	for _, candidate := range q.Iter() {
		found++
		if found > 1 {
			var zero T
			return zero, false
		}
		item = candidate
	}
	return item, found == 1
}

// Count returns the number of matching entities.
func (q *Query[T]) Count() int {
	n := 0
	for range q.Iter() {
		n++
	}
	return n
}
