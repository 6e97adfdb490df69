package ecs

// System represents a behavior that operates on entities with specific components.
// Systems declare Query and Singleton fields; the Scheduler binds them to its
// storage on Register and refreshes every Query before Execute runs.
type System interface {
	Execute(frame *UpdateFrame)
}

// SystemFunc adapts a plain function to the System interface.
type SystemFunc func(frame *UpdateFrame)

func (f SystemFunc) Execute(frame *UpdateFrame) {
	f(frame)
}
