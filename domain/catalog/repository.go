package catalog

import "context"

// Repository is the read side of the product catalog.
type Repository interface {
	// ListProducts returns a page of a category listing.
	ListProducts(ctx context.Context, q Query) (*Page, error)

	// SearchProducts returns a page of products matching q.Search.
	SearchProducts(ctx context.Context, q Query) (*Page, error)

	// GetProduct returns a single product.
	GetProduct(ctx context.Context, id int64) (*Product, error)
}
