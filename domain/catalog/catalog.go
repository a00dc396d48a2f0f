// Package catalog defines products and the queries that list them.
package catalog

import "fmt"

// Sort keys accepted by the product listing.
const (
	SortCost     = "cost"
	SortRating   = "rating"
	SortDate     = "date"
	SortDiscount = "discount"
)

// Sort directions.
const (
	Asc  = "ASC"
	Desc = "DESC"
)

// PageSize is the number of products per listing page.
const PageSize = 10

// Price is a product price in whole currency units.
type Price struct {
	Base     int
	Total    int
	Discount int // percent
}

// HasDiscount reports whether the total is below the base price.
func (p Price) HasDiscount() bool {
	return p.Discount > 0 && p.Total < p.Base
}

// Product is a catalog item.
type Product struct {
	ID           int64
	Title        string
	Description  string
	Category     int64
	Price        Price
	Rating       float64
	ReviewCount  int
	PreviewImage string
	Images       []string

	// InCart is set by the presenter from the cart contents broadcast.
	InCart bool
}

// Filter narrows a product listing. Zero values mean "not set".
type Filter struct {
	MinPrice   int
	MaxPrice   int
	IsNew      bool
	IsRating   bool
	IsDiscount bool
}

// IsZero reports whether no field is set.
func (f Filter) IsZero() bool {
	return f == Filter{}
}

// Valid reports whether the price bounds are consistent.
func (f Filter) Valid() error {
	if f.MinPrice > 0 && f.MaxPrice > 0 && f.MinPrice > f.MaxPrice {
		return fmt.Errorf("minimum price %d is greater than maximum price %d", f.MinPrice, f.MaxPrice)
	}
	return nil
}

// Query selects one page of products.
type Query struct {
	Page          int
	Count         int
	Category      int64
	Search        string
	Filter        *Filter
	SortKey       string
	SortDirection string
}

// DefaultQuery returns the first page of the root category sorted by cost.
func DefaultQuery() Query {
	return Query{
		Page:          1,
		Count:         PageSize,
		SortKey:       SortCost,
		SortDirection: Asc,
	}
}

// Page is one page of a listing.
type Page struct {
	Products   []Product
	PagesCount int
	Current    int
}
