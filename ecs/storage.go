package ecs

import (
	"reflect"
	"slices"
	"sort"
	"weak"
)

// Storage owns all entities, singletons and event queues of one world.
type Storage struct {
	registry   *ComponentRegistry
	archetypes map[uint32]*Archetype
	generation int

	singletons map[reflect.Type]*singletonEntry
	events     map[reflect.Type]eventQueue
}

// NewStorage creates an empty world that accepts the types in registry.
func NewStorage(registry *ComponentRegistry) *Storage {
	return &Storage{
		registry:   registry,
		archetypes: make(map[uint32]*Archetype),
		singletons: make(map[reflect.Type]*singletonEntry),
		events:     make(map[reflect.Type]eventQueue),
	}
}

// Registry returns the registry the storage was created with.
func (s *Storage) Registry() *ComponentRegistry {
	return s.registry
}

// Spawn creates an entity from the given components. Each component may be
// passed by value or by pointer; the value is copied either way.
func (s *Storage) Spawn(components ...any) EntityId {
	if len(components) == 0 {
		panic("ecs: cannot spawn entity without components")
	}

	types := s.canonicalTypes(components)
	archetype := s.archetypeFor(types)
	return NewEntityId(archetype.id, archetype.spawn(components))
}

// Delete removes the entity and all of its components. It reports whether the
// entity existed.
func (s *Storage) Delete(id EntityId) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok || !archetype.alive(id.Index()) {
		return false
	}
	archetype.delete(id.Index())
	return true
}

// Alive reports whether id names a live entity.
func (s *Storage) Alive(id EntityId) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	return ok && archetype.alive(id.Index())
}

// GetComponent returns a pointer to the entity's component of compType, or nil
// when the entity is gone or lacks that component.
func (s *Storage) GetComponent(id EntityId, compType reflect.Type) any {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok {
		return nil
	}
	return archetype.GetComponent(id.Index(), compType)
}

// HasComponent reports whether the entity's archetype has compType.
func (s *Storage) HasComponent(id EntityId, compType reflect.Type) bool {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok || !archetype.alive(id.Index()) {
		return false
	}
	return archetype.HasComponent(compType)
}

// AddComponent attaches component to the entity and returns its new id. If the
// entity already has a component of that type the value is overwritten in
// place and the id is unchanged.
func (s *Storage) AddComponent(id EntityId, component any) EntityId {
	old, ok := s.archetypes[id.ArchetypeId()]
	if !ok || !old.alive(id.Index()) {
		return 0
	}

	compType := componentType(component)
	if existing := old.GetComponent(id.Index(), compType); existing != nil {
		reflect.ValueOf(existing).Elem().Set(componentValue(component))
		return id
	}

	types := append(slices.Clone(old.types), compType)
	return s.move(id, old, s.sortTypes(types), component)
}

// RemoveComponent detaches compType from the entity and returns its new id.
// Removing the last component deletes the entity and returns 0.
func (s *Storage) RemoveComponent(id EntityId, compType reflect.Type) EntityId {
	old, ok := s.archetypes[id.ArchetypeId()]
	if !ok || !old.alive(id.Index()) {
		return 0
	}
	if !old.HasComponent(compType) {
		return id
	}

	types := slices.DeleteFunc(slices.Clone(old.types), func(t reflect.Type) bool {
		return t == compType
	})
	if len(types) == 0 {
		old.delete(id.Index())
		return 0
	}
	return s.move(id, old, types, nil)
}

// move copies the entity's components that exist in types into the matching
// archetype, adds extra when non-nil, repoints any EntityRef and frees the old
// row.
func (s *Storage) move(id EntityId, old *Archetype, types []reflect.Type, extra any) EntityId {
	target := s.archetypeFor(types)

	components := make([]any, 0, len(types))
	for _, typ := range types {
		if extra != nil && typ == componentType(extra) {
			components = append(components, extra)
			continue
		}
		components = append(components, old.GetComponent(id.Index(), typ))
	}

	newId := NewEntityId(target.id, target.spawn(components))

	if ptr, ok := old.refs.Get(id); ok {
		old.refs.Del(id)
		if ref := ptr.Value(); ref != nil {
			ref.Id = newId
			ref.Archetype = target
			target.refs.Put(newId, ptr)
		}
	}

	old.delete(id.Index())
	return newId
}

// CreateEntityRef returns the EntityRef for id, creating it on first use.
// Repeated calls return the same pointer while it is reachable.
func (s *Storage) CreateEntityRef(id EntityId) *EntityRef {
	archetype, ok := s.archetypes[id.ArchetypeId()]
	if !ok || !archetype.alive(id.Index()) {
		return nil
	}

	if ptr, ok := archetype.refs.Get(id); ok {
		if ref := ptr.Value(); ref != nil {
			return ref
		}
		archetype.refs.Del(id)
	}

	ref := &EntityRef{Id: id, Archetype: archetype}
	archetype.refs.Put(id, weak.Make(ref))
	return ref
}

// ResolveEntityRef returns the current id of the referenced entity.
func (s *Storage) ResolveEntityRef(ref *EntityRef) (EntityId, bool) {
	if !ref.Valid() {
		return 0, false
	}
	return ref.Id, true
}

// InvalidateEntityRef detaches ref from its entity without deleting the
// entity. It reports whether the ref was valid.
func (s *Storage) InvalidateEntityRef(ref *EntityRef) bool {
	if !ref.Valid() {
		return false
	}
	if archetype := s.archetypes[ref.Id.ArchetypeId()]; archetype != nil {
		archetype.refs.Del(ref.Id)
	}
	ref.Id = 0
	ref.Archetype = nil
	return true
}

// GetArchetype returns the archetype holding exactly the types of the given
// components, or nil if no entity with that shape was ever spawned.
func (s *Storage) GetArchetype(components ...any) *Archetype {
	types := s.canonicalTypes(components)
	return s.archetypes[archetypeHash(s.registry, types)]
}

// GetArchetypes returns every archetype ordered by id.
func (s *Storage) GetArchetypes() []*Archetype {
	out := make([]*Archetype, 0, len(s.archetypes))
	for _, a := range s.archetypes {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

func (s *Storage) archetypeFor(types []reflect.Type) *Archetype {
	id := archetypeHash(s.registry, types)
	if archetype, ok := s.archetypes[id]; ok {
		if !slices.Equal(archetype.types, types) {
			panic("ecs: archetype id collision")
		}
		return archetype
	}

	archetype := newArchetype(id, types, s.registry)
	s.archetypes[id] = archetype
	s.generation++
	return archetype
}

func (s *Storage) canonicalTypes(components []any) []reflect.Type {
	types := make([]reflect.Type, 0, len(components))
	for _, comp := range components {
		typ := componentType(comp)
		switch typ.Kind() {
		case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func:
			panic("ecs: components cannot be pointers, maps, channels, or functions")
		}
		if slices.Contains(types, typ) {
			panic("ecs: duplicate component " + typ.String())
		}
		types = append(types, typ)
	}
	return s.sortTypes(types)
}

// sortTypes orders types by registration id, which is the canonical column
// order of an archetype.
func (s *Storage) sortTypes(types []reflect.Type) []reflect.Type {
	sort.Slice(types, func(i, j int) bool {
		return s.registry.componentId(types[i]) < s.registry.componentId(types[j])
	})
	return types
}

// archetypeHash is FNV-1a over the registration ids of the sorted types.
func archetypeHash(registry *ComponentRegistry, types []reflect.Type) uint32 {
	const (
		offset uint32 = 2166136261
		prime  uint32 = 16777619
	)

	h := offset
	for _, t := range types {
		id := registry.componentId(t)
		for shift := 0; shift < 32; shift += 8 {
			h ^= (id >> shift) & 0xff
			h *= prime
		}
	}
	if h == 0 {
		h = offset
	}
	return h
}

func componentType(component any) reflect.Type {
	t := reflect.TypeOf(component)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t
}

func componentValue(component any) reflect.Value {
	v := reflect.ValueOf(component)
	if v.Kind() == reflect.Pointer {
		v = v.Elem()
	}
	return v
}

// ComponentReader is anything that can look up a component by entity and
// type, such as *Storage.
type ComponentReader interface {
	GetComponent(EntityId, reflect.Type) any
}

// ReadComponent returns the entity's T, or nil.
func ReadComponent[T any](reader ComponentReader, entityId EntityId) *T {
	comp, _ := reader.GetComponent(entityId, reflect.TypeFor[T]()).(*T)
	return comp
}
