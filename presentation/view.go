package presentation

import (
	"log/slog"
	"sync"

	"storefront-go/core/event"
	"storefront-go/core/eventbus"
	"storefront-go/core/router"
	"storefront-go/core/viewstate"
)

// View is the router-facing half of a page. Show and Hide toggle its surface
// and announce the change on the presenter's private bus; user actions on
// the surface are forwarded to the same bus.
type View struct {
	name    string
	surface Surface
	bus     eventbus.EventBus[event.Local]
	logger  *slog.Logger

	mu     sync.Mutex
	state  viewstate.State
	gen    uint64
	params router.Params
}

var _ router.Navigable = (*View)(nil)

// NewView creates a hidden view.
func NewView(name string, surface Surface, bus eventbus.EventBus[event.Local], logger *slog.Logger) *View {
	if logger == nil {
		logger = slog.Default()
	}
	v := &View{
		name:    name,
		surface: surface,
		bus:     bus,
		logger:  logger,
	}
	surface.OnAction(func(a event.Action) {
		bus.Emit(event.UserAction, a)
	})
	return v
}

// Show makes the view visible and emits ViewShown with params. Showing an
// already visible view starts a new generation, which is how a re-render
// with new parameters invalidates responses for the old ones.
func (v *View) Show(params router.Params) error {
	v.mu.Lock()
	if !v.state.CanTransitionTo(viewstate.Loading) {
		err := viewstate.NewTransitionError(v.state, viewstate.Loading, v.name)
		v.mu.Unlock()
		return err
	}
	v.state = viewstate.Loading
	v.gen++
	v.params = params
	v.mu.Unlock()

	v.surface.SetVisible(true)
	v.bus.Emit(event.ViewShown, params)
	return nil
}

// Hide makes the view invisible and emits ViewHidden. Hiding a hidden view
// does nothing.
func (v *View) Hide() error {
	v.mu.Lock()
	if v.state == viewstate.Hidden {
		v.mu.Unlock()
		return nil
	}
	v.state = viewstate.Hidden
	v.gen++
	v.mu.Unlock()

	v.surface.SetVisible(false)
	v.bus.Emit(event.ViewHidden, nil)
	return nil
}

// Render draws tmpl with data. A hidden view refuses to render.
func (v *View) Render(tmpl string, data any) error {
	v.mu.Lock()
	if !v.state.CanTransitionTo(viewstate.Shown) {
		err := viewstate.NewTransitionError(v.state, viewstate.Shown, v.name+" is hidden")
		v.mu.Unlock()
		return err
	}
	v.state = viewstate.Shown
	v.mu.Unlock()

	return v.surface.Render(tmpl, data)
}

// Name returns the view name used in the route table.
func (v *View) Name() string {
	return v.name
}

// State returns the lifecycle state.
func (v *View) State() viewstate.State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Generation counts Show and Hide calls.
func (v *View) Generation() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.gen
}

// Params returns the parameters of the last Show.
func (v *View) Params() router.Params {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.params
}
