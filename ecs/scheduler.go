package ecs

import (
	"context"
	"reflect"
	"time"
)

// SchedulerStats summarises how often and how long each system ran.
type SchedulerStats struct {
	SystemCount     int
	TotalExecutions int64
	Ticks           uint64
	Systems         []SystemStats
}

// SystemStats holds the timings of one system.
type SystemStats struct {
	Name           string
	ExecutionCount int64
	MinDuration    time.Duration
	MaxDuration    time.Duration
	AvgDuration    time.Duration
	LastDuration   time.Duration
	TotalDuration  time.Duration
}

type scheduledSystem struct {
	system System
	stats  SystemStats
}

type storageBinder interface {
	Init(storage *Storage)
}

// Scheduler runs systems in registration order, one pass per tick.
// Registration order is the only ordering guarantee: a system sees every
// component change made by the systems before it in the same tick, and the
// structural changes they queued only from the next tick on.
type Scheduler struct {
	storage *Storage
	systems []*scheduledSystem
	tick    uint64
}

// NewScheduler creates a scheduler over storage.
func NewScheduler(storage *Storage) *Scheduler {
	return &Scheduler{storage: storage}
}

// Storage returns the storage the scheduler runs against.
func (s *Scheduler) Storage() *Storage {
	return s.storage
}

// Register appends system to the pipeline, named after its type.
func (s *Scheduler) Register(system System) {
	t := reflect.TypeOf(system)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	s.RegisterNamed(t.Name(), system)
}

// RegisterNamed appends system under an explicit name, which is useful for
// SystemFunc values.
func (s *Scheduler) RegisterNamed(name string, system System) {
	s.bindFields(system)
	s.systems = append(s.systems, &scheduledSystem{
		system: system,
		stats: SystemStats{
			Name:        name,
			MinDuration: time.Duration(1<<63 - 1),
		},
	})
}

// bindFields calls Init(storage) on every exported struct field of system
// that has such a method.
func (s *Scheduler) bindFields(system System) {
	v := reflect.ValueOf(system)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return
	}
	v = v.Elem()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		if !field.CanSet() || field.Kind() != reflect.Struct {
			continue
		}
		if binder, ok := field.Addr().Interface().(storageBinder); ok {
			binder.Init(s.storage)
		}
	}
}

// Once runs one tick: every system in order, then the queued commands, then
// the event queues advance.
func (s *Scheduler) Once(dt float64) {
	frame := &UpdateFrame{
		DeltaTime: dt,
		Tick:      s.tick,
		Commands:  newCommands(),
		Storage:   s.storage,
	}

	for _, entry := range s.systems {
		start := time.Now()
		entry.system.Execute(frame)
		entry.record(time.Since(start))
	}

	frame.Commands.Flush(s.storage)
	s.storage.UpdateEvents()
	s.tick++
}

// Run calls Once every interval until ctx is done, passing the measured
// elapsed time as dt.
func (s *Scheduler) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			s.Once(now.Sub(last).Seconds())
			last = now
		}
	}
}

// Ticks returns the number of completed ticks.
func (s *Scheduler) Ticks() uint64 {
	return s.tick
}

// GetStats returns a snapshot of the per-system timings.
func (s *Scheduler) GetStats() *SchedulerStats {
	stats := &SchedulerStats{
		SystemCount: len(s.systems),
		Ticks:       s.tick,
		Systems:     make([]SystemStats, len(s.systems)),
	}

	for i, entry := range s.systems {
		snapshot := entry.stats
		if snapshot.ExecutionCount > 0 {
			snapshot.AvgDuration = snapshot.TotalDuration / time.Duration(snapshot.ExecutionCount)
		}
		stats.Systems[i] = snapshot
		stats.TotalExecutions += snapshot.ExecutionCount
	}

	return stats
}

func (e *scheduledSystem) record(d time.Duration) {
	e.stats.ExecutionCount++
	e.stats.LastDuration = d
	e.stats.TotalDuration += d
	e.stats.MinDuration = min(e.stats.MinDuration, d)
	e.stats.MaxDuration = max(e.stats.MaxDuration, d)
}
