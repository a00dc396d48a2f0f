package model

import (
	"context"
	"sync"

	"storefront-go/core/event"
	"storefront-go/domain/cart"
)

// Header is the model behind the header's cart badge.
type Header struct {
	repo cart.Repository
	bus  LocalBus

	latest  latest
	mu      sync.RWMutex
	summary event.CartSummary
}

// NewHeader creates the model.
func NewHeader(repo cart.Repository, bus LocalBus) *Header {
	return &Header{repo: repo, bus: bus}
}

// Load fetches the cart summary and emits Loaded.
func (m *Header) Load(ctx context.Context, ticket uint64) {
	m.latest.begin(ticket)
	c, err := m.repo.Get(ctx)
	if err == nil {
		m.latest.commit(ticket, func() { m.set(summary(c)) })
	}
	m.bus.Emit(event.Loaded, result(ticket, err))
}

// Summary returns the known cart summary.
func (m *Header) Summary() event.CartSummary {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.summary
}

// SetSummary replaces the summary from a global broadcast.
func (m *Header) SetSummary(s event.CartSummary) {
	m.set(s)
}

// Increment counts one more unit, used when an item is added elsewhere.
func (m *Header) Increment(productID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.summary.Count++
	if !m.summary.Contains(productID) {
		m.summary.ProductIDs = append(append([]int64(nil), m.summary.ProductIDs...), productID)
	}
}

// Reset clears the summary, used on logout.
func (m *Header) Reset() {
	m.set(event.CartSummary{})
}

func (m *Header) set(s event.CartSummary) {
	m.mu.Lock()
	m.summary = s
	m.mu.Unlock()
}
