package ecs_test

import (
	"context"
	"testing"
	"time"

	"github.com/plus3/heep/ecs"
	"github.com/stretchr/testify/assert"
)

type movementSystem struct {
	Movers ecs.Query[movingView]
	Config ecs.Singleton[Health]
	ticks  []uint64
}

func (s *movementSystem) Execute(frame *ecs.UpdateFrame) {
	s.ticks = append(s.ticks, frame.Tick)
	for item := range s.Movers.Values() {
		item.Position.X += item.Velocity.DX * float32(frame.DeltaTime)
	}
}

func TestSchedulerBindsFields(t *testing.T) {
	storage := newTestStorage()
	id := storage.Spawn(Position{}, Velocity{DX: 10})

	system := &movementSystem{}
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(system)

	// Singleton fields bind without creating the value.
	assert.False(t, system.Config.Exists())

	scheduler.Once(0.5)
	scheduler.Once(0.5)

	assert.Equal(t, float32(10), ecs.ReadComponent[Position](storage, id).X)
	assert.Equal(t, []uint64{0, 1}, system.ticks)
	assert.Equal(t, uint64(2), scheduler.Ticks())
}

func TestSchedulerRunsInRegistrationOrder(t *testing.T) {
	storage := newTestStorage()
	scheduler := ecs.NewScheduler(storage)

	var order []string
	for _, name := range []string{"a", "b", "c"} {
		scheduler.RegisterNamed(name, ecs.SystemFunc(func(*ecs.UpdateFrame) {
			order = append(order, name)
		}))
	}
	scheduler.Once(0)

	assert.Equal(t, []string{"a", "b", "c"}, order)
}

func TestSchedulerStats(t *testing.T) {
	storage := newTestStorage()
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&movementSystem{})
	scheduler.RegisterNamed("noop", ecs.SystemFunc(func(*ecs.UpdateFrame) {}))

	for range 3 {
		scheduler.Once(0)
	}

	stats := scheduler.GetStats()
	assert.Equal(t, 2, stats.SystemCount)
	assert.Equal(t, int64(6), stats.TotalExecutions)
	assert.Equal(t, uint64(3), stats.Ticks)
	assert.Equal(t, "movementSystem", stats.Systems[0].Name)
	assert.Equal(t, "noop", stats.Systems[1].Name)
	for _, system := range stats.Systems {
		assert.Equal(t, int64(3), system.ExecutionCount)
		assert.LessOrEqual(t, system.MinDuration, system.MaxDuration)
		assert.Equal(t, system.TotalDuration/3, system.AvgDuration)
	}
}

func TestSchedulerRunStopsOnCancel(t *testing.T) {
	storage := newTestStorage()
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&movementSystem{})

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	scheduler.Run(ctx, time.Millisecond)
	assert.Greater(t, scheduler.Ticks(), uint64(0))
}
