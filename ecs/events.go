package ecs

import (
	"iter"
	"reflect"
)

// Events is a double-buffered queue of T kept as a singleton. An event sent
// during a tick can be read during that tick and the next one, then it is
// dropped. Each EventReader keeps its own cursor, so every reader sees every
// event exactly once no matter which order the readers run in.
type Events[T any] struct {
	records []eventRecord[T]
	next    uint64
	mark    uint64
}

type eventRecord[T any] struct {
	seq   uint64
	value T
}

type eventQueue interface {
	update()
}

// Send appends value to the queue.
func (e *Events[T]) Send(value T) {
	e.records = append(e.records, eventRecord[T]{seq: e.next, value: value})
	e.next++
}

// Len returns the number of events still buffered.
func (e *Events[T]) Len() int {
	return len(e.records)
}

// update retires the events sent before the tick that just finished.
func (e *Events[T]) update() {
	keep := 0
	for keep < len(e.records) && e.records[keep].seq < e.mark {
		keep++
	}
	if keep > 0 {
		e.records = append(e.records[:0], e.records[keep:]...)
	}
	e.mark = e.next
}

// GetEvents returns the queue for T, creating it on first use.
func GetEvents[T any](storage *Storage) *Events[T] {
	events := NewSingleton[Events[T]](storage).Get()
	t := reflect.TypeFor[Events[T]]()
	if _, ok := storage.events[t]; !ok {
		storage.events[t] = events
	}
	return events
}

// UpdateEvents advances every event queue by one tick. Scheduler.Once calls
// it after flushing commands.
func (s *Storage) UpdateEvents() {
	for _, queue := range s.events {
		queue.update()
	}
}

// EventWriter sends events of type T. Declare it as a system field.
type EventWriter[T any] struct {
	events *Events[T]
}

// NewEventWriter returns a writer bound to storage.
func NewEventWriter[T any](storage *Storage) *EventWriter[T] {
	w := &EventWriter[T]{}
	w.Init(storage)
	return w
}

// Init binds the writer to storage.
func (w *EventWriter[T]) Init(storage *Storage) {
	w.events = GetEvents[T](storage)
}

// Send queues value.
func (w *EventWriter[T]) Send(value T) {
	w.events.Send(value)
}

// EventReader reads events of type T it has not seen yet. Declare it as a
// system field; each field has an independent cursor.
type EventReader[T any] struct {
	events *Events[T]
	cursor uint64
}

// NewEventReader returns a reader bound to storage that will see events sent
// from now on plus any still buffered.
func NewEventReader[T any](storage *Storage) *EventReader[T] {
	r := &EventReader[T]{}
	r.Init(storage)
	return r
}

// Init binds the reader to storage.
func (r *EventReader[T]) Init(storage *Storage) {
	r.events = GetEvents[T](storage)
	r.cursor = 0
}

// Read yields unread events in send order and marks them read.
func (r *EventReader[T]) Read() iter.Seq[T] {
	return func(yield func(T) bool) {
		if r.events == nil {
			return
		}
		for _, rec := range r.events.records {
			if rec.seq < r.cursor {
				continue
			}
			r.cursor = rec.seq + 1
			if !yield(rec.value) {
				return
			}
		}
	}
}

// Len returns how many unread events are buffered.
func (r *EventReader[T]) Len() int {
	if r.events == nil {
		return 0
	}
	n := 0
	for _, rec := range r.events.records {
		if rec.seq >= r.cursor {
			n++
		}
	}
	return n
}
