package order

import "context"

// Repository lists the orders of the session user.
type Repository interface {
	List(ctx context.Context, q Query) (*Page, error)
}
