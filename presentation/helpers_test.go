package presentation

import (
	"bytes"
	"context"
	"log/slog"
	"net/url"
	"sync"

	"storefront-go/core/event"
	"storefront-go/core/eventbus"
	"storefront-go/core/router"
	"storefront-go/domain/cart"
	"storefront-go/domain/catalog"
	"storefront-go/domain/order"
	"storefront-go/domain/user"
)

type fakeCatalog struct {
	mu      sync.Mutex
	page    *catalog.Page
	product *catalog.Product
	err     error
	queries []catalog.Query
	ctx     context.Context
}

func (f *fakeCatalog) ListProducts(ctx context.Context, q catalog.Query) (*catalog.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, q)
	f.ctx = ctx
	if f.err != nil {
		return nil, f.err
	}
	cp := *f.page
	cp.Products = append([]catalog.Product(nil), f.page.Products...)
	cp.Current = q.Page
	return &cp, nil
}

func (f *fakeCatalog) SearchProducts(ctx context.Context, q catalog.Query) (*catalog.Page, error) {
	return f.ListProducts(ctx, q)
}

func (f *fakeCatalog) GetProduct(ctx context.Context, id int64) (*catalog.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	p := *f.product
	p.ID = id
	return &p, nil
}

func (f *fakeCatalog) lastCtx() context.Context {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ctx
}

func (f *fakeCatalog) lastQuery() catalog.Query {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.queries[len(f.queries)-1]
}

type fakeCart struct {
	cart   *cart.Cart
	err    error
	addErr error
}

func (f *fakeCart) Get(ctx context.Context) (*cart.Cart, error) {
	return f.cart, f.err
}

func (f *fakeCart) Add(ctx context.Context, id int64, count int) error {
	return f.addErr
}

func (f *fakeCart) Remove(ctx context.Context, id int64) error {
	return f.err
}

type fakeOrders struct {
	page *order.Page
	err  error
}

func (f *fakeOrders) List(ctx context.Context, q order.Query) (*order.Page, error) {
	return f.page, f.err
}

type fakeUsers struct {
	err error
}

func (f *fakeUsers) Login(ctx context.Context, c user.Credentials) error {
	return f.err
}

func (f *fakeUsers) Logout(ctx context.Context) error {
	return f.err
}

// stubView stands in for pages a test navigates to but does not inspect.
type stubView struct {
	shows int
}

func (v *stubView) Show(router.Params) error { v.shows++; return nil }
func (v *stubView) Hide() error              { return nil }

// harness wires presenters to a real router over a memory history. Model
// work runs inline unless deferred is set.
type harness struct {
	history *router.MemoryHistory
	router  *router.Router
	global  *eventbus.Bus[event.Global]
	logs    *bytes.Buffer
	offline *stubView
	login   *stubView
	home    *stubView

	deferred bool
	pending  []func()
}

func newHarness() *harness {
	logs := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	history := router.NewMemoryHistory("/start")
	h := &harness{
		history: history,
		router:  router.New(&router.Config{History: history, Logger: logger}),
		global:  eventbus.NewGlobal(logger),
		logs:    logs,
		offline: &stubView{},
		login:   &stubView{},
		home:    &stubView{},
	}
	return h
}

func (h *harness) deps() Deps {
	return Deps{
		Router: h.router,
		Global: h.global,
		Paths:  DefaultPaths(),
		Logger: slog.New(slog.NewTextHandler(h.logs, &slog.HandlerOptions{Level: slog.LevelDebug})),
		Go: func(fn func()) {
			if h.deferred {
				h.pending = append(h.pending, fn)
				return
			}
			fn()
		},
	}
}

// finish registers the shared stub routes after the presenter's own routes.
func (h *harness) finish() {
	h.router.Register(`/offline`, h.offline).
		Register(`/login`, h.login).
		Register(`/`, h.home)
}

func (h *harness) flush() {
	pending := h.pending
	h.pending = nil
	for _, fn := range pending {
		fn()
	}
}

func parseQuery(s string) (url.Values, error) {
	return url.ParseQuery(s)
}
