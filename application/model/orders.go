package model

import (
	"context"
	"sync"

	"storefront-go/core/event"
	"storefront-go/domain/order"
)

// Orders is the model behind the order history.
type Orders struct {
	repo order.Repository
	bus  LocalBus

	latest latest
	mu     sync.RWMutex
	page   *order.Page
}

// NewOrders creates the model.
func NewOrders(repo order.Repository, bus LocalBus) *Orders {
	return &Orders{repo: repo, bus: bus}
}

// Load fetches one page of orders and emits Loaded.
func (m *Orders) Load(ctx context.Context, ticket uint64, q order.Query) {
	m.latest.begin(ticket)
	page, err := m.repo.List(ctx, q)
	if err == nil {
		m.latest.commit(ticket, func() {
			m.mu.Lock()
			m.page = page
			m.mu.Unlock()
		})
	}
	m.bus.Emit(event.Loaded, result(ticket, err))
}

// Page returns the last page loaded.
func (m *Orders) Page() *order.Page {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.page
}
