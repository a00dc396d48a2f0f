package presentation

import (
	"sync"

	"storefront-go/core/event"
)

// Surface is the mount point a view renders into. The browser build backs it
// with a DOM element; native builds and tests use MemorySurface.
type Surface interface {
	// Render replaces the surface content with the named template.
	Render(tmpl string, data any) error
	// SetVisible shows or hides the surface.
	SetVisible(visible bool)
	// OnAction installs the receiver of user intents raised on the surface.
	OnAction(fn func(event.Action))
	// Release detaches the surface from the page. The presenter calls it
	// once, on Close.
	Release()
}

// Rendering is one recorded Render call.
type Rendering struct {
	Template string
	Data     any
}

// MemorySurface records what a view draws. Trigger simulates a user action.
type MemorySurface struct {
	mu         sync.Mutex
	visible    bool
	renderings []Rendering
	action     func(event.Action)
	err        error
	releases   int
}

var _ Surface = (*MemorySurface)(nil)

// NewMemorySurface creates a hidden, empty surface.
func NewMemorySurface() *MemorySurface {
	return &MemorySurface{}
}

func (s *MemorySurface) Render(tmpl string, data any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.renderings = append(s.renderings, Rendering{Template: tmpl, Data: data})
	return nil
}

func (s *MemorySurface) SetVisible(visible bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visible = visible
}

func (s *MemorySurface) OnAction(fn func(event.Action)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.action = fn
}

// Release drops the action receiver.
func (s *MemorySurface) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.action = nil
	s.releases++
}

// Releases reports how many times Release was called.
func (s *MemorySurface) Releases() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.releases
}

// FailRenders makes every later Render return err.
func (s *MemorySurface) FailRenders(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

// Trigger delivers a user action as if it came from the page.
func (s *MemorySurface) Trigger(a event.Action) {
	s.mu.Lock()
	fn := s.action
	s.mu.Unlock()
	if fn != nil {
		fn(a)
	}
}

// Visible reports the last SetVisible value.
func (s *MemorySurface) Visible() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.visible
}

// Renderings returns every Render call so far.
func (s *MemorySurface) Renderings() []Rendering {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Rendering(nil), s.renderings...)
}

// Last returns the most recent Render call.
func (s *MemorySurface) Last() (Rendering, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.renderings) == 0 {
		return Rendering{}, false
	}
	return s.renderings[len(s.renderings)-1], true
}
