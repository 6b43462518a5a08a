package ecs

// System is one step of a tick. Fields of type Query, Singleton, EventReader
// and EventWriter (anything with an Init(*Storage) method) are bound by the
// Scheduler on Register; any other fields are private state that persists
// between ticks.
type System interface {
	Execute(frame *UpdateFrame)
}

// SystemFunc adapts a plain function to System.
type SystemFunc func(frame *UpdateFrame)

func (f SystemFunc) Execute(frame *UpdateFrame) {
	f(frame)
}
