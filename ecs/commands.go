package ecs

import "reflect"

// Commands buffers structural changes requested by systems during a tick.
// Systems iterate live columns, so spawning, deleting or moving entities
// while they run is deferred until Flush.
type Commands struct {
	ops []command
}

type commandKind int

const (
	commandSpawn commandKind = iota
	commandDelete
	commandAdd
	commandRemove
	commandDefer
)

type command struct {
	kind       commandKind
	entity     EntityId
	components []any
	compType   reflect.Type
	fn         func()
}

func newCommands() *Commands {
	return &Commands{}
}

// Spawn queues creation of an entity with components.
func (c *Commands) Spawn(components ...any) {
	c.ops = append(c.ops, command{kind: commandSpawn, components: components})
}

// Delete queues deletion of entity.
func (c *Commands) Delete(entity EntityId) {
	c.ops = append(c.ops, command{kind: commandDelete, entity: entity})
}

// AddComponent queues attaching component to entity.
func (c *Commands) AddComponent(entity EntityId, component any) {
	c.ops = append(c.ops, command{kind: commandAdd, entity: entity, components: []any{component}})
}

// RemoveComponent queues detaching compType from entity.
func (c *Commands) RemoveComponent(entity EntityId, compType reflect.Type) {
	c.ops = append(c.ops, command{kind: commandRemove, entity: entity, compType: compType})
}

// Defer queues fn to run during Flush, after the commands queued before it.
func (c *Commands) Defer(fn func()) {
	c.ops = append(c.ops, command{kind: commandDefer, fn: fn})
}

// Len returns the number of queued commands.
func (c *Commands) Len() int {
	return len(c.ops)
}

// Flush applies the queued commands to storage in the order they were queued
// and empties the buffer. An entity moved by an add or remove keeps being
// addressed by its original id for the rest of the flush; commands aimed at
// an entity deleted earlier in the flush are dropped.
func (c *Commands) Flush(storage *Storage) {
	moved := make(map[EntityId]EntityId)
	deleted := make(map[EntityId]bool)
	resolve := func(id EntityId) (EntityId, bool) {
		if deleted[id] {
			return 0, false
		}
		if current, ok := moved[id]; ok {
			return current, true
		}
		return id, true
	}

	for _, op := range c.ops {
		switch op.kind {
		case commandSpawn:
			storage.Spawn(op.components...)
		case commandDelete:
			if current, ok := resolve(op.entity); ok {
				storage.Delete(current)
				deleted[op.entity] = true
			}
		case commandAdd:
			if current, ok := resolve(op.entity); ok {
				if next := storage.AddComponent(current, op.components[0]); next != 0 {
					moved[op.entity] = next
				}
			}
		case commandRemove:
			if current, ok := resolve(op.entity); ok {
				next := storage.RemoveComponent(current, op.compType)
				if next == 0 {
					deleted[op.entity] = true
				} else {
					moved[op.entity] = next
				}
			}
		case commandDefer:
			op.fn()
		}
	}

	clear(c.ops)
	c.ops = c.ops[:0]
}
