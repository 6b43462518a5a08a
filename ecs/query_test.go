package ecs_test

import (
	"testing"

	"github.com/plus3/heep/ecs"
	"github.com/stretchr/testify/assert"
)

type healthView struct {
	ecs.EntityId
	*Health
}

func TestQuerySeesNewArchetypes(t *testing.T) {
	storage := newTestStorage()
	query := ecs.NewQuery[healthView](storage)

	storage.Spawn(Health{Current: 1})
	assert.Equal(t, 1, query.Count())

	// A new archetype created after the first iteration is picked up.
	storage.Spawn(Health{Current: 2}, Marker{})
	assert.Equal(t, 2, query.Count())

	total := 0
	for item := range query.Values() {
		total += item.Current
	}
	assert.Equal(t, 3, total)
}

func TestQueryIterOrderFollowsArchetypeIds(t *testing.T) {
	storage := newTestStorage()
	query := ecs.NewQuery[healthView](storage)

	storage.Spawn(Health{}, Marker{})
	storage.Spawn(Health{})
	storage.Spawn(Health{}, Name("x"))

	var last uint32
	for id := range query.Iter() {
		assert.GreaterOrEqual(t, id.ArchetypeId(), last)
		last = id.ArchetypeId()
	}
}

func TestQuerySingle(t *testing.T) {
	storage := newTestStorage()
	query := ecs.NewQuery[healthView](storage)

	_, ok := query.Single()
	assert.False(t, ok)

	id := storage.Spawn(Health{Current: 5})
	item, ok := query.Single()
	assert.True(t, ok)
	assert.Equal(t, id, item.EntityId)
	assert.Equal(t, 5, item.Current)

	storage.Spawn(Health{Current: 6})
	_, ok = query.Single()
	assert.False(t, ok)
}

func TestQueryUsedBeforeInit(t *testing.T) {
	var query ecs.Query[healthView]
	assert.Panics(t, func() { query.Count() })
}
