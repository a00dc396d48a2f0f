// Package application wires the storefront together: the global bus, the
// router, the API repositories and one presenter per page.
package application

import (
	"fmt"
	"log/slog"
	"sync"

	"storefront-go/core/event"
	"storefront-go/core/eventbus"
	"storefront-go/core/router"
	"storefront-go/infrastructure/api"
	"storefront-go/infrastructure/config"
	"storefront-go/presentation"
	"storefront-go/resources"
)

// View names used by the route table.
const (
	ViewProducts = "products"
	ViewSearch   = "search"
	ViewProduct  = "product"
	ViewCart     = "cart"
	ViewLogin    = "login"
	ViewOrders   = "orders"
	ViewOffline  = "offline"
	ViewHeader   = "header"
)

// SurfaceFactory returns the mount point of a view.
type SurfaceFactory func(view string) (presentation.Surface, error)

// Config holds the collaborators of a Storefront. Every field is optional.
type Config struct {
	// Settings defaults to config.Default().
	Settings *config.Config
	// Routes is the YAML route table, resources.Routes when nil.
	Routes []byte
	// History defaults to an in-memory history starting at "/".
	History router.History
	// Surfaces defaults to in-memory surfaces.
	Surfaces SurfaceFactory
	// Client defaults to an HTTP client built from Settings.API.
	Client api.Client
	Logger *slog.Logger
	// Go starts model work, a new goroutine by default.
	Go func(func())
}

type closer interface {
	Close()
}

// Storefront is the running client application.
type Storefront struct {
	logger *slog.Logger
	global *eventbus.Bus[event.Global]
	router *router.Router
	client api.Client
	header *presentation.Header

	views      map[string]router.Navigable
	presenters []closer

	mu      sync.Mutex
	started bool
	stopped bool
}

// New builds the storefront. A broken route table fails here, before
// anything is shown.
func New(cfg *Config) (*Storefront, error) {
	if cfg == nil {
		cfg = &Config{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	settings := cfg.Settings
	if settings == nil {
		settings = config.Default()
	}
	routes := cfg.Routes
	if routes == nil {
		routes = resources.Routes
	}
	history := cfg.History
	if history == nil {
		history = router.NewMemoryHistory("/")
	}
	surfaces := cfg.Surfaces
	if surfaces == nil {
		surfaces = func(string) (presentation.Surface, error) {
			return presentation.NewMemorySurface(), nil
		}
	}

	specs, err := router.LoadTable(routes)
	if err != nil {
		return nil, fmt.Errorf("failed to load route table: %w", err)
	}

	client := cfg.Client
	switch {
	case client != nil:
	case settings.API.BaseURL == "":
		logger.Warn("No API configured, every request reports offline")
		client = api.NewNoOpClient()
	default:
		client = api.NewHTTPClient(&api.ClientConfig{
			BaseURL:        settings.API.BaseURL,
			Timeout:        settings.API.Timeout.Duration,
			HealthPath:     settings.API.HealthPath,
			HealthInterval: settings.API.HealthInterval.Duration,
			HealthTimeout:  api.DefaultClientConfig().HealthTimeout,
			Logger:         logger,
		})
	}

	s := &Storefront{
		logger: logger.With("component", "storefront"),
		global: eventbus.NewGlobal(logger),
		client: client,
		views:  make(map[string]router.Navigable),
	}
	s.router = router.New(&router.Config{History: history, Logger: logger})

	deps := presentation.Deps{
		Router: s.router,
		Global: s.global,
		Paths: presentation.Paths{
			Home:       settings.Paths.Home,
			Offline:    settings.Paths.Offline,
			Login:      settings.Paths.Login,
			AfterLogin: settings.Paths.AfterLogin,
		},
		Logger: logger,
		Go:     cfg.Go,
	}

	if err := s.build(surfaces, deps); err != nil {
		s.close()
		return nil, err
	}

	s.router.RegisterTable(specs, s.views)
	if err := s.router.Err(); err != nil {
		s.close()
		return nil, err
	}
	return s, nil
}

func (s *Storefront) build(surfaces SurfaceFactory, deps presentation.Deps) error {
	catalogRepo := api.NewCatalogRepository(s.client)
	cartRepo := api.NewCartRepository(s.client)
	orderRepo := api.NewOrderRepository(s.client)
	userRepo := api.NewUserRepository(s.client)

	surface := func(name string) (presentation.Surface, error) {
		sf, err := surfaces(name)
		if err != nil {
			return nil, fmt.Errorf("failed to create %s surface: %w", name, err)
		}
		return sf, nil
	}

	builders := []struct {
		name  string
		build func(presentation.Surface) (router.Navigable, closer)
	}{
		{ViewProducts, func(sf presentation.Surface) (router.Navigable, closer) {
			p := presentation.NewProducts(sf, catalogRepo, cartRepo, deps)
			return p.View(), p
		}},
		{ViewSearch, func(sf presentation.Surface) (router.Navigable, closer) {
			p := presentation.NewSearch(sf, catalogRepo, cartRepo, deps)
			return p.View(), p
		}},
		{ViewProduct, func(sf presentation.Surface) (router.Navigable, closer) {
			p := presentation.NewProduct(sf, catalogRepo, cartRepo, deps)
			return p.View(), p
		}},
		{ViewCart, func(sf presentation.Surface) (router.Navigable, closer) {
			p := presentation.NewCart(sf, cartRepo, deps)
			return p.View(), p
		}},
		{ViewLogin, func(sf presentation.Surface) (router.Navigable, closer) {
			p := presentation.NewLogin(sf, userRepo, deps)
			return p.View(), p
		}},
		{ViewOrders, func(sf presentation.Surface) (router.Navigable, closer) {
			p := presentation.NewOrders(sf, orderRepo, deps)
			return p.View(), p
		}},
		{ViewOffline, func(sf presentation.Surface) (router.Navigable, closer) {
			p := presentation.NewOffline(sf, s.client.IsHealthy, deps)
			return p.View(), p
		}},
	}

	for _, b := range builders {
		sf, err := surface(b.name)
		if err != nil {
			return err
		}
		view, p := b.build(sf)
		s.views[b.name] = view
		s.presenters = append(s.presenters, p)
	}

	sf, err := surface(ViewHeader)
	if err != nil {
		return err
	}
	s.header = presentation.NewHeader(sf, cartRepo, userRepo, deps)
	s.presenters = append(s.presenters, s.header)
	return nil
}

// Start shows the header, then starts the router, which shows the page of
// the current location.
func (s *Storefront) Start() error {
	s.mu.Lock()
	if s.started || s.stopped {
		s.mu.Unlock()
		return nil
	}
	s.started = true
	s.mu.Unlock()

	if err := s.header.Start(); err != nil {
		return fmt.Errorf("failed to start header: %w", err)
	}
	if err := s.router.Start(); err != nil {
		return fmt.Errorf("failed to start router: %w", err)
	}
	s.logger.Info("storefront started", "location", s.router.History().Location())
	return nil
}

// Stop detaches from the history, closes every presenter and the API
// client. Safe to call more than once.
func (s *Storefront) Stop() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.stopped = true
	s.mu.Unlock()

	s.router.Stop()
	s.close()
	s.logger.Info("storefront stopped")
}

func (s *Storefront) close() {
	for _, p := range s.presenters {
		p.Close()
	}
	s.presenters = nil
	s.client.Close()
	s.global.Close()
}

// Router returns the router.
func (s *Storefront) Router() *router.Router {
	return s.router
}

// Global returns the global bus.
func (s *Storefront) Global() eventbus.EventBus[event.Global] {
	return s.global
}

// Header returns the header presenter.
func (s *Storefront) Header() *presentation.Header {
	return s.header
}

// View returns the router target registered under name.
func (s *Storefront) View(name string) (router.Navigable, bool) {
	v, ok := s.views[name]
	return v, ok
}
