package ecs_test

import (
	"testing"

	"github.com/plus3/heep/ecs"
	"github.com/stretchr/testify/assert"
)

type movingView struct {
	ecs.EntityId
	*Position
	*Velocity
}

type namedView struct {
	Position *Position
	Name     *Name   `ecs:"optional"`
	Health   *Health `ecs:"optional"`
}

func TestViewGet(t *testing.T) {
	storage := newTestStorage()
	view := ecs.NewView[movingView](storage)

	id := storage.Spawn(Position{X: 1}, Velocity{DX: 2})
	still := storage.Spawn(Position{X: 3})

	item := view.Get(id)
	if assert.NotNil(t, item) {
		assert.Equal(t, id, item.EntityId)
		assert.Equal(t, float32(1), item.Position.X)
		assert.Equal(t, float32(2), item.Velocity.DX)
	}

	assert.Nil(t, view.Get(still))
}

func TestViewWritesThrough(t *testing.T) {
	storage := newTestStorage()
	view := ecs.NewView[movingView](storage)

	id := storage.Spawn(Position{}, Velocity{DX: 1, DY: 2})
	for _, item := range view.Iter() {
		item.Position.X += item.Velocity.DX
		item.Position.Y += item.Velocity.DY
	}

	assert.Equal(t, Position{X: 1, Y: 2}, *ecs.ReadComponent[Position](storage, id))
}

func TestViewOptionalFields(t *testing.T) {
	storage := newTestStorage()
	view := ecs.NewView[namedView](storage)

	plain := storage.Spawn(Position{})
	named := storage.Spawn(Position{}, Name("paddle"))
	storage.Spawn(Name("orphan"))

	seen := map[ecs.EntityId]namedView{}
	for id, item := range view.Iter() {
		seen[id] = item
	}

	assert.Len(t, seen, 2)
	assert.Nil(t, seen[plain].Name)
	if assert.NotNil(t, seen[named].Name) {
		assert.Equal(t, Name("paddle"), *seen[named].Name)
	}
	assert.Nil(t, seen[named].Health)
}

func TestViewIterStopsEarly(t *testing.T) {
	storage := newTestStorage()
	view := ecs.NewView[movingView](storage)

	for range 10 {
		storage.Spawn(Position{}, Velocity{})
	}

	n := 0
	for range view.Values() {
		n++
		if n == 3 {
			break
		}
	}
	assert.Equal(t, 3, n)
}

func TestViewSpawn(t *testing.T) {
	storage := newTestStorage()
	view := ecs.NewView[namedView](storage)

	id := view.Spawn(namedView{Position: &Position{X: 4}, Health: &Health{Current: 1}})

	item := view.Get(id)
	if assert.NotNil(t, item) {
		assert.Equal(t, float32(4), item.Position.X)
		assert.Nil(t, item.Name)
		assert.Equal(t, 1, item.Health.Current)
	}

	assert.Panics(t, func() { view.Spawn(namedView{}) })
}

func TestViewGetRefFollowsMoves(t *testing.T) {
	storage := newTestStorage()
	view := ecs.NewView[movingView](storage)

	id := storage.Spawn(Position{X: 1}, Velocity{})
	ref := storage.CreateEntityRef(id)
	storage.AddComponent(id, Marker{})

	item := view.GetRef(ref)
	if assert.NotNil(t, item) {
		assert.Equal(t, ref.Id, item.EntityId)
		assert.Equal(t, float32(1), item.Position.X)
	}
}

func TestViewRejectsBadShapes(t *testing.T) {
	storage := newTestStorage()

	assert.Panics(t, func() { ecs.NewView[int](storage) })
	assert.Panics(t, func() {
		ecs.NewView[struct{ Position Position }](storage)
	})
	assert.Panics(t, func() {
		ecs.NewView[struct {
			Position *Position `ecs:"sometimes"`
		}](storage)
	})
}
