package router

import "sync"

// MemoryHistory is an in-process History. Native builds and tests use it in
// place of the browser's history.
type MemoryHistory struct {
	origin string

	mu        sync.Mutex
	entries   []string
	index     int
	writes    int
	listeners map[int]Listener
	nextID    int
}

var _ History = (*MemoryHistory)(nil)

// NewMemoryHistory creates a history with a single entry at start.
func NewMemoryHistory(start string) *MemoryHistory {
	if start == "" {
		start = "/"
	}
	return &MemoryHistory{
		origin:    "http://localhost",
		entries:   []string{start},
		listeners: make(map[int]Listener),
	}
}

// WithOrigin sets the origin reported to the router.
func (h *MemoryHistory) WithOrigin(origin string) *MemoryHistory {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.origin = origin
	return h
}

func (h *MemoryHistory) Location() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.entries[h.index]
}

func (h *MemoryHistory) Origin() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.origin
}

func (h *MemoryHistory) Push(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries = append(h.entries[:h.index+1], path)
	h.index++
	h.writes++
}

func (h *MemoryHistory) Replace(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries[h.index] = path
	h.writes++
}

func (h *MemoryHistory) Listen(l Listener) (stop func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.nextID++
	id := h.nextID
	h.listeners[id] = l

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.listeners, id)
			h.mu.Unlock()
		})
	}
}

// Back moves one entry back and notifies listeners. It does nothing at the
// first entry.
func (h *MemoryHistory) Back() error {
	return h.Go(-1)
}

// Forward moves one entry forward and notifies listeners.
func (h *MemoryHistory) Forward() error {
	return h.Go(1)
}

// Go moves delta entries and notifies listeners. Out of range moves are
// ignored, like in a browser.
func (h *MemoryHistory) Go(delta int) error {
	h.mu.Lock()
	next := h.index + delta
	if delta == 0 || next < 0 || next >= len(h.entries) {
		h.mu.Unlock()
		return nil
	}
	h.index = next
	path := h.entries[next]
	listeners := h.snapshot()
	h.mu.Unlock()

	for _, l := range listeners {
		if l.Pop == nil {
			continue
		}
		if err := l.Pop(path); err != nil {
			return err
		}
	}
	return nil
}

// Click simulates a link click. It reports whether a listener took it over.
func (h *MemoryHistory) Click(click LinkClick) (bool, error) {
	h.mu.Lock()
	listeners := h.snapshot()
	h.mu.Unlock()

	handled := false
	for _, l := range listeners {
		if l.Link == nil {
			continue
		}
		ok, err := l.Link(click)
		if err != nil {
			return ok, err
		}
		handled = handled || ok
	}
	return handled, nil
}

func (h *MemoryHistory) snapshot() []Listener {
	out := make([]Listener, 0, len(h.listeners))
	for id := 1; id <= h.nextID; id++ {
		if l, ok := h.listeners[id]; ok {
			out = append(out, l)
		}
	}
	return out
}

// Entries returns a copy of the history stack.
func (h *MemoryHistory) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.entries...)
}

// Index returns the position of the current entry.
func (h *MemoryHistory) Index() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.index
}

// Writes returns the number of Push and Replace calls so far.
func (h *MemoryHistory) Writes() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.writes
}

// Listeners returns the number of installed listeners.
func (h *MemoryHistory) Listeners() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.listeners)
}
