package ecs_test

import (
	"slices"
	"testing"

	"github.com/plus3/heep/ecs"
	"github.com/stretchr/testify/assert"
)

type Hit struct {
	Damage int
}

func TestEventReadersAreIndependent(t *testing.T) {
	storage := newTestStorage()
	writer := ecs.NewEventWriter[Hit](storage)
	first := ecs.NewEventReader[Hit](storage)
	second := ecs.NewEventReader[Hit](storage)

	writer.Send(Hit{Damage: 1})
	writer.Send(Hit{Damage: 2})

	assert.Equal(t, []Hit{{1}, {2}}, slices.Collect(first.Read()))
	assert.Empty(t, slices.Collect(first.Read()))

	assert.Equal(t, 2, second.Len())
	assert.Equal(t, []Hit{{1}, {2}}, slices.Collect(second.Read()))
}

func TestEventsLiveForTwoTicks(t *testing.T) {
	storage := newTestStorage()
	writer := ecs.NewEventWriter[Hit](storage)
	early := ecs.NewEventReader[Hit](storage)
	late := ecs.NewEventReader[Hit](storage)

	writer.Send(Hit{Damage: 3})
	assert.Len(t, slices.Collect(early.Read()), 1)

	storage.UpdateEvents()
	assert.Equal(t, []Hit{{3}}, slices.Collect(late.Read()))

	writer.Send(Hit{Damage: 4})
	storage.UpdateEvents()
	assert.Equal(t, 1, ecs.GetEvents[Hit](storage).Len())
	assert.Equal(t, []Hit{{4}}, slices.Collect(early.Read()))

	storage.UpdateEvents()
	assert.Equal(t, 0, ecs.GetEvents[Hit](storage).Len())
}

// Consumers before and after the producer each see the event exactly once.
func TestEventConsumersInAnyOrder(t *testing.T) {
	for _, producerFirst := range []bool{true, false} {
		storage := newTestStorage()
		scheduler := ecs.NewScheduler(storage)

		producer := &hitProducer{at: 1}
		consumerA := &hitCounter{}
		consumerB := &hitCounter{}

		if producerFirst {
			scheduler.Register(producer)
			scheduler.Register(consumerA)
			scheduler.Register(consumerB)
		} else {
			scheduler.Register(consumerB)
			scheduler.Register(producer)
			scheduler.Register(consumerA)
		}

		for range 4 {
			scheduler.Once(0)
		}

		assert.Equal(t, 1, consumerA.seen)
		assert.Equal(t, 1, consumerB.seen)
	}
}

type hitProducer struct {
	Hits ecs.EventWriter[Hit]
	at   uint64
}

func (p *hitProducer) Execute(frame *ecs.UpdateFrame) {
	if frame.Tick == p.at {
		p.Hits.Send(Hit{Damage: 1})
	}
}

type hitCounter struct {
	Hits ecs.EventReader[Hit]
	seen int
}

func (c *hitCounter) Execute(frame *ecs.UpdateFrame) {
	for range c.Hits.Read() {
		c.seen++
	}
}
