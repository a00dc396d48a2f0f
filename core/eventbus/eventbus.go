// Package eventbus provides the synchronous publish/subscribe primitive used
// both as a presenter's private bus and as the process-wide global bus.
package eventbus

// Event is a closed event identifier of one bus scope.
type Event interface {
	comparable
	String() string
}

// HandlerID identifies one registration. IDs are never reused within a bus;
// zero is never a valid ID.
type HandlerID uint64

// Handler receives the payload passed to Emit.
type Handler func(payload any)

// EventBus is the interface for the event bus.
type EventBus[E Event] interface {
	// On registers handler for e and returns its ID. Registering the same
	// function twice yields two independent entries.
	// Returns 0 after Close.
	On(e E, handler Handler) HandlerID

	// Off removes exactly the entry with the given ID. A removed handler is
	// never invoked by a later Emit. Unknown IDs are ignored.
	Off(e E, id HandlerID)

	// Emit synchronously invokes every handler registered for e when the
	// call starts, in registration order. A panicking handler is logged and
	// skipped; Emit itself never panics because of a handler.
	Emit(e E, payload any)

	// Len reports how many handlers are registered for e.
	Len(e E) int

	// Close drops all handlers. After Close, Emit is a no-op.
	Close()
}
