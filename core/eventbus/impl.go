package eventbus

import (
	"log/slog"
	"sync"

	"storefront-go/core/event"
)

// entry represents a single handler registration.
type entry struct {
	id      HandlerID
	handler Handler
}

// Bus is the map-of-slices implementation of EventBus.
type Bus[E Event] struct {
	logger *slog.Logger

	mu       sync.Mutex
	handlers map[E][]entry
	nextID   HandlerID
	closed   bool
}

var (
	_ EventBus[event.Local]  = (*Bus[event.Local])(nil)
	_ EventBus[event.Global] = (*Bus[event.Global])(nil)
)

// New creates an empty bus. A nil logger falls back to slog.Default().
func New[E Event](logger *slog.Logger) *Bus[E] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bus[E]{
		logger:   logger,
		handlers: make(map[E][]entry),
	}
}

// NewPrivate creates a presenter-owned bus.
func NewPrivate(logger *slog.Logger) *Bus[event.Local] {
	if logger == nil {
		logger = slog.Default()
	}
	return New[event.Local](logger.With("bus", "private"))
}

// NewGlobal creates the process-wide bus. The composition root calls it
// once and hands the result to every component that needs it.
func NewGlobal(logger *slog.Logger) *Bus[event.Global] {
	if logger == nil {
		logger = slog.Default()
	}
	return New[event.Global](logger.With("bus", "global"))
}

// On registers a handler for e.
func (b *Bus[E]) On(e E, handler Handler) HandlerID {
	if handler == nil {
		return 0
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return 0
	}

	b.nextID++
	id := b.nextID
	b.handlers[e] = append(b.handlers[e], entry{id: id, handler: handler})
	return id
}

// Off removes the registration with the given ID.
func (b *Bus[E]) Off(e E, id HandlerID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	list := b.handlers[e]
	for i, en := range list {
		if en.id != id {
			continue
		}
		// Copy so a snapshot held by a running Emit keeps its own backing array.
		next := make([]entry, 0, len(list)-1)
		next = append(next, list[:i]...)
		next = append(next, list[i+1:]...)
		if len(next) == 0 {
			delete(b.handlers, e)
		} else {
			b.handlers[e] = next
		}
		return
	}
}

// Emit delivers payload to the handlers registered for e.
func (b *Bus[E]) Emit(e E, payload any) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	snapshot := b.handlers[e]
	b.mu.Unlock()

	for _, en := range snapshot {
		b.call(e, en, payload)
	}
}

func (b *Bus[E]) call(e E, en entry, payload any) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked",
				"event", e.String(),
				"handler_id", uint64(en.id),
				"panic", r,
			)
		}
	}()
	en.handler(payload)
}

// Len reports the number of handlers registered for e.
func (b *Bus[E]) Len(e E) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers[e])
}

// Close drops every registration. Safe to call more than once.
func (b *Bus[E]) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	b.handlers = make(map[E][]entry)
}
