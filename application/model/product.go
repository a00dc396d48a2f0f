package model

import (
	"context"
	"sync"

	"storefront-go/core/event"
	"storefront-go/domain/cart"
	"storefront-go/domain/catalog"
)

// Product is the model behind a product page.
type Product struct {
	repo   catalog.Repository
	carts  cart.Repository
	bus    LocalBus
	global GlobalBus

	latest  latest
	mu      sync.RWMutex
	product *catalog.Product
}

// NewProduct creates the model.
func NewProduct(repo catalog.Repository, carts cart.Repository, bus LocalBus, global GlobalBus) *Product {
	return &Product{repo: repo, carts: carts, bus: bus, global: global}
}

// Load fetches a product and emits Loaded.
func (m *Product) Load(ctx context.Context, ticket uint64, id int64) {
	m.latest.begin(ticket)
	p, err := m.repo.GetProduct(ctx, id)
	if err == nil {
		m.latest.commit(ticket, func() {
			m.mu.Lock()
			m.product = p
			m.mu.Unlock()
		})
	}
	m.bus.Emit(event.Loaded, result(ticket, err))
}

// Product returns the last product loaded.
func (m *Product) Product() *catalog.Product {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.product
}

// AddToCart puts one unit into the cart, broadcasts CartItemAdded or
// CartItemNotAdded with the product ID, and emits Submitted.
func (m *Product) AddToCart(ctx context.Context, ticket uint64, id int64) {
	err := m.carts.Add(ctx, id, 1)
	if err == nil {
		m.mu.Lock()
		if m.product != nil && m.product.ID == id {
			m.product.InCart = true
		}
		m.mu.Unlock()
		m.global.Emit(event.CartItemAdded, id)
	} else {
		m.global.Emit(event.CartItemNotAdded, id)
	}
	m.bus.Emit(event.Submitted, result(ticket, err))
}
