package ecs

// UpdateFrame is what a system sees of the current tick.
type UpdateFrame struct {
	DeltaTime float64
	Tick      uint64
	Commands  *Commands
	Storage   *Storage
}
