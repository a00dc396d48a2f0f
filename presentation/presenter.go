// Package presentation holds the storefront views and the presenters that
// coordinate them with their models through the private and global buses.
package presentation

import (
	"context"
	"log/slog"
	"sync"

	"storefront-go/core/event"
	"storefront-go/core/eventbus"
	"storefront-go/core/router"
	"storefront-go/infrastructure/logging"
)

// Paths are the well-known locations presenters navigate to.
type Paths struct {
	Home       string
	Offline    string
	Login      string
	AfterLogin string
}

// DefaultPaths returns the storefront's standard locations.
func DefaultPaths() Paths {
	return Paths{
		Home:       "/",
		Offline:    "/offline",
		Login:      "/login",
		AfterLogin: "/",
	}
}

// Deps are the collaborators shared by every presenter.
type Deps struct {
	// Router is required.
	Router Navigator
	Global eventbus.EventBus[event.Global]
	Paths  Paths
	Logger *slog.Logger
	// Go starts model work. It defaults to a new goroutine; tests run the
	// work inline.
	Go func(func())
}

func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Go == nil {
		d.Go = func(fn func()) { go fn() }
	}
	if d.Paths == (Paths{}) {
		d.Paths = DefaultPaths()
	}
	if d.Global == nil {
		d.Global = eventbus.NewGlobal(d.Logger)
	}
	return d
}

type globalSub struct {
	event event.Global
	id    eventbus.HandlerID
}

// presenter is embedded by every concrete presenter. It owns the private
// bus and the view, tracks the current showing and releases everything on
// Close.
type presenter struct {
	deps    Deps
	bus     *eventbus.Bus[event.Local]
	surface Surface
	view    *View
	logger  *slog.Logger
	policy  OutcomePolicy

	mu      sync.Mutex
	ticket  uint64
	ctx     context.Context
	cancel  context.CancelFunc
	globals []globalSub
	closed  bool
}

func newPresenter(name string, surface Surface, deps Deps) *presenter {
	deps = deps.withDefaults()
	logger := deps.Logger.With("view", name)
	bus := eventbus.NewPrivate(logger)

	p := &presenter{
		deps:    deps,
		bus:     bus,
		surface: surface,
		view:    NewView(name, surface, bus, logger),
		logger:  logger,
		policy: OutcomePolicy{
			Router:      deps.Router,
			OfflinePath: deps.Paths.Offline,
			Logger:      logger,
		},
		ctx: context.Background(),
	}
	bus.On(event.ViewHidden, func(any) { p.stopWork() })
	return p
}

// View returns the router target of the presenter.
func (p *presenter) View() *View {
	return p.view
}

// Bus returns the private bus.
func (p *presenter) Bus() eventbus.EventBus[event.Local] {
	return p.bus
}

// begin starts a new showing: in-flight work of the previous one is
// cancelled and its results become stale. The returned context carries the
// view logger tagged with the ticket.
func (p *presenter) begin() (context.Context, uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
	}
	ctx, cancel := context.WithCancel(logging.With(context.Background(), p.logger))
	p.ticket++
	p.ctx, p.cancel = logging.WithAttrs(ctx, "ticket", p.ticket), cancel
	return p.ctx, p.ticket
}

// work returns the context and ticket of the current showing.
func (p *presenter) work() (context.Context, uint64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ctx, p.ticket
}

func (p *presenter) stopWork() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

// current reports whether a result for ticket may still touch the view.
func (p *presenter) current(ticket uint64) bool {
	p.mu.Lock()
	same := ticket == p.ticket && !p.closed
	p.mu.Unlock()
	return same && p.view.State().IsVisible()
}

func (p *presenter) run(fn func()) {
	p.deps.Go(fn)
}

func (p *presenter) onShown(fn func(router.Params)) {
	p.bus.On(event.ViewShown, func(payload any) {
		params, _ := payload.(router.Params)
		fn(params)
	})
}

func (p *presenter) onAction(fn func(event.Action)) {
	p.bus.On(event.UserAction, func(payload any) {
		if a, ok := payload.(event.Action); ok {
			fn(a)
		}
	})
}

// onResult subscribes to a model outcome event and drops stale results.
func (p *presenter) onResult(e event.Local, fn func(event.Result)) {
	p.bus.On(e, func(payload any) {
		r, ok := payload.(event.Result)
		if !ok {
			p.logger.Warn("unexpected payload", "event", e.String())
			return
		}
		if !p.current(r.Ticket) {
			p.logger.Debug("dropping stale result", "event", e.String(), "ticket", r.Ticket)
			return
		}
		fn(r)
	})
}

func (p *presenter) onGlobal(e event.Global, h eventbus.Handler) {
	id := p.deps.Global.On(e, h)

	p.mu.Lock()
	p.globals = append(p.globals, globalSub{event: e, id: id})
	p.mu.Unlock()
}

func (p *presenter) apply(r event.Result, success, unauthorized func() error) {
	if err := p.policy.Apply(r, success, unauthorized); err != nil {
		p.logger.Error("failed to apply result", "outcome", r.Outcome, "error", err)
	}
}

func (p *presenter) open(path string, opts ...router.OpenOption) error {
	return p.deps.Router.Open(path, opts...)
}

// render draws unless the view is hidden, which happens when a global event
// arrives for a page that is not on screen.
func (p *presenter) render(tmpl string, data any) error {
	if !p.view.State().IsVisible() {
		return nil
	}
	return p.view.Render(tmpl, data)
}

func (p *presenter) logErr(msg string, err error) {
	if err != nil {
		p.logger.Error(msg, "error", err)
	}
}

// Close unsubscribes from the global bus, cancels in-flight work, disposes
// the private bus and releases the surface. Safe to call more than once.
func (p *presenter) Close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	globals := p.globals
	p.globals = nil
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
	p.mu.Unlock()

	for _, g := range globals {
		p.deps.Global.Off(g.event, g.id)
	}
	p.bus.Close()
	p.surface.Release()
}
