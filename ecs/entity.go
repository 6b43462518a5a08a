package ecs

import "fmt"

// EntityId packs the archetype id into the upper 32 bits and the row index
// inside that archetype into the lower 32 bits. An id changes whenever an
// entity moves between archetypes; use an EntityRef to follow it.
type EntityId uint64

// NewEntityId builds an EntityId from an archetype id and a row index.
func NewEntityId(archetypeId uint32, index uint32) EntityId {
	return EntityId(uint64(archetypeId)<<32 | uint64(index))
}

// ArchetypeId returns the archetype half of the id.
func (e EntityId) ArchetypeId() uint32 {
	return uint32(e >> 32)
}

// Index returns the row half of the id.
func (e EntityId) Index() uint32 {
	return uint32(e)
}

func (e EntityId) String() string {
	return fmt.Sprintf("%08x:%d", e.ArchetypeId(), e.Index())
}

// EntityRef is a stable handle to an entity. The storage rewrites Id and
// Archetype when the entity changes archetype and zeroes both when it is
// deleted.
type EntityRef struct {
	Id        EntityId
	Archetype *Archetype
}

// Valid reports whether the referenced entity still exists.
func (r *EntityRef) Valid() bool {
	return r != nil && r.Id != 0
}
