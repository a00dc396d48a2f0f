package cart

import "context"

// Repository accesses the server-side cart of the session.
type Repository interface {
	Get(ctx context.Context) (*Cart, error)

	// Add puts count units of a product into the cart.
	Add(ctx context.Context, productID int64, count int) error

	// Remove deletes a product line from the cart.
	Remove(ctx context.Context, productID int64) error
}
