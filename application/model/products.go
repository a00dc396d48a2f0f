package model

import (
	"context"
	"sync"

	"storefront-go/core/event"
	"storefront-go/domain/catalog"
)

// Products is the model behind the product grid and search results.
type Products struct {
	repo catalog.Repository
	bus  LocalBus

	latest latest
	mu     sync.RWMutex
	query  catalog.Query
	page   *catalog.Page
}

// NewProducts creates the model.
func NewProducts(repo catalog.Repository, bus LocalBus) *Products {
	return &Products{
		repo:  repo,
		bus:   bus,
		query: catalog.DefaultQuery(),
	}
}

// Load fetches one page of a category listing and emits Loaded.
func (m *Products) Load(ctx context.Context, ticket uint64, q catalog.Query) {
	m.latest.begin(ticket)
	page, err := m.repo.ListProducts(ctx, q)
	m.finish(ticket, q, page, err)
}

// Search fetches one page of search results and emits Loaded.
func (m *Products) Search(ctx context.Context, ticket uint64, q catalog.Query) {
	m.latest.begin(ticket)
	page, err := m.repo.SearchProducts(ctx, q)
	m.finish(ticket, q, page, err)
}

func (m *Products) finish(ticket uint64, q catalog.Query, page *catalog.Page, err error) {
	if err == nil {
		m.latest.commit(ticket, func() {
			m.mu.Lock()
			m.query = q
			m.page = page
			m.mu.Unlock()
		})
	}
	m.bus.Emit(event.Loaded, result(ticket, err))
}

// Products returns the products of the last page loaded.
func (m *Products) Products() []catalog.Product {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.page == nil {
		return nil
	}
	return m.page.Products
}

// Page returns the last page loaded, nil before the first success.
func (m *Products) Page() *catalog.Page {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.page
}

// Query returns the query the next load starts from.
func (m *Products) Query() catalog.Query {
	m.mu.RLock()
	defer m.mu.RUnlock()
	q := m.query
	if q.Filter != nil {
		f := *q.Filter
		q.Filter = &f
	}
	return q
}

// SetCategory selects the category and resets paging.
func (m *Products) SetCategory(id int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.query.Category = id
	m.query.Page = 1
}

// SetSort changes the sort order. Empty values restore the default.
func (m *Products) SetSort(key, direction string) {
	if key == "" {
		key = catalog.SortCost
	}
	if direction == "" {
		direction = catalog.Asc
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.query.SortKey = key
	m.query.SortDirection = direction
}

// SetFilter replaces the filter. A nil filter drops it.
func (m *Products) SetFilter(f *catalog.Filter) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.query.Filter = f
}

// MarkInCart flags the products of the current page contained in ids.
func (m *Products) MarkInCart(ids []int64) {
	in := make(map[int64]bool, len(ids))
	for _, id := range ids {
		in[id] = true
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.page == nil {
		return
	}
	for i := range m.page.Products {
		m.page.Products[i].InCart = in[m.page.Products[i].ID]
	}
}

// SetInCart flags a single product.
func (m *Products) SetInCart(id int64, inCart bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.page == nil {
		return
	}
	for i := range m.page.Products {
		if m.page.Products[i].ID == id {
			m.page.Products[i].InCart = inCart
		}
	}
}
