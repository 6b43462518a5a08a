package ecs

import (
	"reflect"
	"unsafe"
)

// singletonEntry holds the address of a singleton value. The value is
// allocated once and never moves, so cached pointers stay valid even when the
// singleton is overwritten through AddSingleton.
type singletonEntry struct {
	typ  reflect.Type
	data unsafe.Pointer
}

// AddSingleton stores value as the singleton of its type. Singleton types do
// not need to be registered. If a singleton of that type exists it is
// overwritten in place.
func (s *Storage) AddSingleton(value any) {
	v := componentValue(value)
	t := v.Type()

	if entry, ok := s.singletons[t]; ok {
		reflect.NewAt(t, entry.data).Elem().Set(v)
		return
	}

	ptr := reflect.New(t)
	ptr.Elem().Set(v)
	s.singletons[t] = &singletonEntry{typ: t, data: ptr.UnsafePointer()}
}

// ReadSingleton points *target at the singleton of the target's element type.
// target must be a **T. It reports false, and sets *target to nil, when no
// such singleton exists.
func (s *Storage) ReadSingleton(target any) bool {
	rv := reflect.ValueOf(target)
	if rv.Kind() != reflect.Pointer || rv.Elem().Kind() != reflect.Pointer {
		panic("ecs: ReadSingleton target must be a pointer to a pointer")
	}

	slot := rv.Elem()
	entry := s.getSingletonEntry(slot.Type().Elem())
	if entry == nil {
		slot.SetZero()
		return false
	}
	slot.Set(reflect.NewAt(entry.typ, entry.data))
	return true
}

func (s *Storage) getSingletonEntry(t reflect.Type) *singletonEntry {
	return s.singletons[t]
}

// Singleton is a typed accessor for one global value that belongs to no
// entity, such as a score or configuration. Declare it as a system field and
// the Scheduler binds it on Register.
type Singleton[T any] struct {
	storage *Storage
	ptr     *T
}

// NewSingleton returns an accessor for T, creating the singleton from
// initializer (or the zero value) when storage does not hold one yet.
func NewSingleton[T any](storage *Storage, initializer ...T) *Singleton[T] {
	if storage.getSingletonEntry(reflect.TypeFor[T]()) == nil {
		var value T
		if len(initializer) > 0 {
			value = initializer[0]
		}
		storage.AddSingleton(&value)
	}

	s := &Singleton[T]{}
	s.Init(storage)
	return s
}

// Init binds the accessor to storage without creating the singleton.
func (s *Singleton[T]) Init(storage *Storage) {
	s.storage = storage
	s.ptr = nil
	s.refresh()
}

// Get returns the singleton, or nil if it has not been added yet.
func (s *Singleton[T]) Get() *T {
	if s.ptr == nil {
		s.refresh()
	}
	return s.ptr
}

// Exists reports whether the singleton has been added.
func (s *Singleton[T]) Exists() bool {
	return s.Get() != nil
}

func (s *Singleton[T]) refresh() {
	if s.storage == nil {
		return
	}
	if entry := s.storage.getSingletonEntry(reflect.TypeFor[T]()); entry != nil {
		s.ptr = (*T)(entry.data)
	}
}
