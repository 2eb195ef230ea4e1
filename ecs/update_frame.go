package ecs

// UpdateFrame is handed to every system during one Scheduler.Once call.
type UpdateFrame struct {
	Tick      uint64
	DeltaTime float64
	Commands  *Commands
	Storage   *Storage
}

// Entities returns the frame's entity collection in spawn order.
func (f *UpdateFrame) Entities() []Entity {
	return f.Storage.Entities()
}
