package model

import (
	"context"
	"sync"

	"storefront-go/core/event"
	"storefront-go/core/eventbus"
	"storefront-go/domain/cart"
	"storefront-go/domain/catalog"
	"storefront-go/domain/order"
	"storefront-go/domain/user"
)

type fakeCatalog struct {
	page    *catalog.Page
	product *catalog.Product
	err     error
	queries []catalog.Query
}

func (f *fakeCatalog) ListProducts(ctx context.Context, q catalog.Query) (*catalog.Page, error) {
	f.queries = append(f.queries, q)
	return f.page, f.err
}

func (f *fakeCatalog) SearchProducts(ctx context.Context, q catalog.Query) (*catalog.Page, error) {
	f.queries = append(f.queries, q)
	return f.page, f.err
}

func (f *fakeCatalog) GetProduct(ctx context.Context, id int64) (*catalog.Product, error) {
	return f.product, f.err
}

type fakeCart struct {
	cart      *cart.Cart
	err       error
	addErr    error
	added     []int64
	removed   []int64
	removeErr error
}

func (f *fakeCart) Get(ctx context.Context) (*cart.Cart, error) {
	return f.cart, f.err
}

func (f *fakeCart) Add(ctx context.Context, id int64, count int) error {
	f.added = append(f.added, id)
	return f.addErr
}

func (f *fakeCart) Remove(ctx context.Context, id int64) error {
	f.removed = append(f.removed, id)
	return f.removeErr
}

type fakeOrders struct {
	page *order.Page
	err  error
}

func (f *fakeOrders) List(ctx context.Context, q order.Query) (*order.Page, error) {
	return f.page, f.err
}

type fakeUsers struct {
	loginErr  error
	logoutErr error
}

func (f *fakeUsers) Login(ctx context.Context, c user.Credentials) error {
	return f.loginErr
}

func (f *fakeUsers) Logout(ctx context.Context) error {
	return f.logoutErr
}

// capture records payloads per event on both buses.
type capture struct {
	mu     sync.Mutex
	local  map[event.Local][]any
	global map[event.Global][]any
}

func newCapture(local *eventbus.Bus[event.Local], global *eventbus.Bus[event.Global]) *capture {
	c := &capture{
		local:  make(map[event.Local][]any),
		global: make(map[event.Global][]any),
	}
	for _, e := range event.Locals() {
		local.On(e, func(p any) {
			c.mu.Lock()
			c.local[e] = append(c.local[e], p)
			c.mu.Unlock()
		})
	}
	if global != nil {
		for _, e := range event.Globals() {
			global.On(e, func(p any) {
				c.mu.Lock()
				c.global[e] = append(c.global[e], p)
				c.mu.Unlock()
			})
		}
	}
	return c
}

func (c *capture) lastResult(e event.Local) (event.Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	list := c.local[e]
	if len(list) == 0 {
		return event.Result{}, false
	}
	r, ok := list[len(list)-1].(event.Result)
	return r, ok
}

func (c *capture) localCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, l := range c.local {
		n += len(l)
	}
	return n
}

func newBuses() (*eventbus.Bus[event.Local], *eventbus.Bus[event.Global]) {
	return eventbus.NewPrivate(nil), eventbus.NewGlobal(nil)
}
