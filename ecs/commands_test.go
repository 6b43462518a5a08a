package ecs_test

import (
	"reflect"
	"testing"

	"github.com/plus3/heep/ecs"
	"github.com/stretchr/testify/assert"
)

// flush runs one scheduler tick whose only system queues commands through fn.
func flush(storage *ecs.Storage, fn func(*ecs.Commands)) {
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(ecs.SystemFunc(func(frame *ecs.UpdateFrame) {
		fn(frame.Commands)
	}))
	scheduler.Once(0)
}

func TestCommandsAreDeferred(t *testing.T) {
	storage := newTestStorage()
	query := ecs.NewQuery[healthView](storage)

	scheduler := ecs.NewScheduler(storage)
	var during int
	scheduler.Register(ecs.SystemFunc(func(frame *ecs.UpdateFrame) {
		frame.Commands.Spawn(Health{Current: 1})
		assert.Equal(t, 1, frame.Commands.Len())
		during = query.Count()
	}))
	scheduler.Once(0)

	assert.Equal(t, 0, during)
	assert.Equal(t, 1, query.Count())
}

func TestCommandsFollowMovedEntity(t *testing.T) {
	storage := newTestStorage()
	id := storage.Spawn(Position{X: 1}, Velocity{})

	flush(storage, func(cmd *ecs.Commands) {
		cmd.AddComponent(id, Marker{})
		cmd.RemoveComponent(id, reflect.TypeFor[Velocity]())
		cmd.AddComponent(id, Health{Current: 2})
	})

	archetype := storage.GetArchetype(Position{}, Marker{}, Health{})
	if assert.NotNil(t, archetype) {
		assert.Equal(t, 1, archetype.Len())
	}
	assert.False(t, storage.Alive(id))
	assert.Equal(t, 1, storage.CollectStats().TotalEntityCount)
}

func TestCommandsDropOpsOnDeletedEntity(t *testing.T) {
	storage := newTestStorage()
	id := storage.Spawn(Position{})

	flush(storage, func(cmd *ecs.Commands) {
		cmd.Delete(id)
		cmd.AddComponent(id, Marker{})
		cmd.Delete(id)
	})

	assert.Equal(t, 0, storage.CollectStats().TotalEntityCount)
}

func TestCommandsDeferRunsInOrder(t *testing.T) {
	storage := newTestStorage()

	var order []string
	flush(storage, func(cmd *ecs.Commands) {
		cmd.Defer(func() { order = append(order, "first") })
		cmd.Spawn(Marker{})
		cmd.Defer(func() {
			order = append(order, "second")
			assert.Equal(t, 1, storage.CollectStats().TotalEntityCount)
		})
	})

	assert.Equal(t, []string{"first", "second"}, order)
}
