// Package order defines placed orders.
package order

import "time"

// PageSize is the number of orders per page.
const PageSize = 4

// Order is a placed order as listed to its owner.
type Order struct {
	ID           int64
	Number       string
	Status       string
	Address      string
	TotalCost    int
	DateAdded    time.Time
	DateDelivery time.Time
	Images       []string
}

// Query selects one page of orders.
type Query struct {
	Page          int
	Count         int
	SortKey       string
	SortDirection string
}

// DefaultQuery returns the first page sorted by date, newest first.
func DefaultQuery() Query {
	return Query{Page: 1, Count: PageSize, SortKey: "date", SortDirection: "DESC"}
}

// Page is one page of orders.
type Page struct {
	Orders     []Order
	PagesCount int
	Current    int
}
