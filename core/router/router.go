// Package router maps browser paths to views and drives the hide/show
// transitions between them without page reloads.
package router

import (
	"log/slog"
	"sync"
)

// Navigable is the capability a route target exposes to the router.
type Navigable interface {
	Show(params Params) error
	Hide() error
}

// Route is one entry of the route table.
type Route struct {
	Matcher *PathMatcher
	Target  Navigable
}

// Pattern returns the source pattern of the route.
func (r Route) Pattern() string {
	return r.Matcher.Pattern()
}

// Config holds router configuration.
type Config struct {
	// History defaults to an in-memory history at "/".
	History History
	Logger  *slog.Logger
	// Root is the mount handle views render into. The router only carries it.
	Root any
}

// DefaultConfig returns the default router configuration.
func DefaultConfig() *Config {
	return &Config{
		History: NewMemoryHistory("/"),
		Logger:  slog.Default(),
	}
}

// Router owns the route table and the active view.
type Router struct {
	history History
	logger  *slog.Logger
	root    any

	mu      sync.Mutex
	routes  []Route
	active  Navigable
	err     error
	sealed  bool
	started bool
	stop    func()

	// nav serializes transitions; see transition.
	nav        sync.Mutex
	navigating bool
	pending    []string
}

// New creates a router with an empty route table.
func New(cfg *Config) *Router {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	history := cfg.History
	if history == nil {
		history = NewMemoryHistory("/")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Router{
		history: history,
		logger:  logger.With("component", "router"),
		root:    cfg.Root,
	}
}

// Register appends a route and returns the router for chaining. A malformed
// pattern is recorded as a *ConfigError, reported by Err and by Start; the
// route is not added. Duplicate patterns are allowed and resolved by order.
func (r *Router) Register(pattern string, target Navigable) *Router {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		r.fail(&ConfigError{Pattern: pattern, Err: ErrSealed})
		return r
	}
	if target == nil {
		r.fail(&ConfigError{Pattern: pattern, Err: ErrNilTarget})
		return r
	}

	m, err := Compile(pattern)
	if err != nil {
		r.fail(err)
		return r
	}

	r.routes = append(r.routes, Route{Matcher: m, Target: target})
	return r
}

// RegisterTable registers specs in order, resolving each view name in views.
// An unknown view name is recorded as a *ConfigError.
func (r *Router) RegisterTable(specs []RouteSpec, views map[string]Navigable) *Router {
	for _, spec := range specs {
		target, ok := views[spec.View]
		if !ok {
			r.mu.Lock()
			r.fail(&ConfigError{Pattern: spec.Pattern, Err: &UnknownViewError{View: spec.View}})
			r.mu.Unlock()
			continue
		}
		r.Register(spec.Pattern, target)
	}
	return r
}

// fail keeps the first configuration error. Caller holds r.mu.
func (r *Router) fail(err error) {
	r.logger.Error("route registration failed", "error", err)
	if r.err == nil {
		r.err = err
	}
}

// Err returns the first registration error, if any.
func (r *Router) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// Start seals the route table, installs the history listeners and shows the
// view for the current location. It returns the registration error, if any,
// before touching the history. Calling Start on a started router does
// nothing.
func (r *Router) Start() error {
	r.mu.Lock()
	if r.err != nil {
		err := r.err
		r.mu.Unlock()
		return err
	}
	if r.started {
		r.mu.Unlock()
		r.logger.Debug("router already started")
		return nil
	}
	r.started = true
	r.sealed = true
	r.mu.Unlock()

	stop := r.history.Listen(Listener{
		Pop:  r.onPop,
		Link: r.onLink,
	})

	r.mu.Lock()
	r.stop = stop
	r.mu.Unlock()

	location := r.history.Location()
	r.logger.Info("router started", "location", location, "routes", len(r.Routes()))
	return r.transition(location)
}

// Stop removes the history listeners. The route table stays sealed.
func (r *Router) Stop() {
	r.mu.Lock()
	stop := r.stop
	r.stop = nil
	r.started = false
	r.mu.Unlock()

	if stop != nil {
		stop()
	}
}

// OpenOption configures Open.
type OpenOption func(*openOptions)

type openOptions struct {
	replace bool
}

// ReplaceState makes Open overwrite the current history entry instead of
// pushing a new one.
func ReplaceState() OpenOption {
	return func(o *openOptions) {
		o.replace = true
	}
}

// Open navigates to path: it writes the history entry, then shows the
// matching view. The entry is written even when nothing matches.
func (r *Router) Open(path string, opts ...OpenOption) error {
	if err := r.Err(); err != nil {
		return err
	}

	var o openOptions
	for _, opt := range opts {
		opt(&o)
	}

	if o.replace {
		r.history.Replace(path)
	} else {
		r.history.Push(path)
	}
	return r.transition(path)
}

// Resolve returns the first route matching path.
func (r *Router) Resolve(path string) (Route, Params, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	route, params, ok := r.match(path)
	if !ok {
		return Route{}, Params{}, ErrNoMatch
	}
	return route, params, nil
}

// match finds the first route for path. Caller holds r.mu.
func (r *Router) match(path string) (Route, Params, bool) {
	for _, route := range r.routes {
		if params, ok := route.Matcher.Match(path); ok {
			return route, params, true
		}
	}
	return Route{}, Params{}, false
}

// transition runs the navigation to path. Transitions never overlap: a
// navigation requested while one is running, from inside Show or from
// another goroutine, is queued and run by the goroutine already
// transitioning once the current one finishes. Its view errors are returned
// to that goroutine's caller.
func (r *Router) transition(path string) error {
	r.nav.Lock()
	if r.navigating {
		r.pending = append(r.pending, path)
		r.nav.Unlock()
		return nil
	}
	r.navigating = true
	r.nav.Unlock()

	var first error
	for {
		if err := r.step(path); err != nil && first == nil {
			first = err
		}

		r.nav.Lock()
		if len(r.pending) == 0 {
			r.navigating = false
			r.nav.Unlock()
			return first
		}
		path = r.pending[0]
		r.pending = r.pending[1:]
		r.nav.Unlock()
	}
}

// step hides the active view when the target differs and shows the target.
// The target becomes active before Show runs.
func (r *Router) step(path string) error {
	r.mu.Lock()
	route, params, ok := r.match(path)
	prev := r.active
	r.mu.Unlock()

	if !ok {
		r.logger.Debug("no route matched", "path", path)
		return nil
	}

	r.logger.Debug("route matched", "path", path, "pattern", route.Pattern())

	if prev != nil && prev != route.Target {
		if err := prev.Hide(); err != nil {
			return &ViewError{Op: "hide", Path: path, Err: err}
		}
	}

	r.mu.Lock()
	r.active = route.Target
	r.mu.Unlock()

	if err := route.Target.Show(params); err != nil {
		return &ViewError{Op: "show", Path: path, Err: err}
	}
	return nil
}

func (r *Router) onPop(path string) error {
	return r.transition(path)
}

func (r *Router) onLink(click LinkClick) (bool, error) {
	path, ok := InAppPath(click, r.history.Origin(), r.history.Location())
	if !ok {
		return false, nil
	}
	return true, r.Open(path)
}

// Active returns the view currently shown, nil before the first match.
func (r *Router) Active() Navigable {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active
}

// IsActive reports whether n is the view currently shown.
func (r *Router) IsActive(n Navigable) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.active != nil && r.active == n
}

// Routes returns a copy of the route table in registration order.
func (r *Router) Routes() []Route {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Route(nil), r.routes...)
}

// Root returns the mount handle given in Config.
func (r *Router) Root() any {
	return r.root
}

// History returns the history the router writes to.
func (r *Router) History() History {
	return r.history
}
