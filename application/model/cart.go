package model

import (
	"context"
	"sync"

	"storefront-go/core/event"
	"storefront-go/domain/cart"
)

// Cart is the model behind the cart page.
type Cart struct {
	repo   cart.Repository
	bus    LocalBus
	global GlobalBus

	latest latest
	mu     sync.RWMutex
	cart   *cart.Cart
}

// NewCart creates the model.
func NewCart(repo cart.Repository, bus LocalBus, global GlobalBus) *Cart {
	return &Cart{repo: repo, bus: bus, global: global}
}

// Load fetches the cart, broadcasts CartContents on success and emits
// Loaded.
func (m *Cart) Load(ctx context.Context, ticket uint64) {
	m.latest.begin(ticket)
	c, err := m.repo.Get(ctx)
	if err == nil && m.store(ticket, c) {
		m.global.Emit(event.CartContents, summary(c))
	}
	m.bus.Emit(event.Loaded, result(ticket, err))
}

// Remove deletes a line, reloads the cart, broadcasts CartChanged and emits
// Submitted.
func (m *Cart) Remove(ctx context.Context, ticket uint64, productID int64) {
	m.latest.begin(ticket)
	err := m.repo.Remove(ctx, productID)
	if err == nil {
		var c *cart.Cart
		if c, err = m.repo.Get(ctx); err == nil && m.store(ticket, c) {
			m.global.Emit(event.CartChanged, summary(c))
		}
	}
	m.bus.Emit(event.Submitted, result(ticket, err))
}

func (m *Cart) store(ticket uint64, c *cart.Cart) bool {
	return m.latest.commit(ticket, func() {
		m.mu.Lock()
		m.cart = c
		m.mu.Unlock()
	})
}

// Cart returns the last cart loaded.
func (m *Cart) Cart() *cart.Cart {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cart
}

func summary(c *cart.Cart) event.CartSummary {
	return event.CartSummary{Count: c.Count(), ProductIDs: c.ProductIDs()}
}
