package presentation

import (
	"strconv"

	"storefront-go/domain/cart"
	"storefront-go/domain/catalog"
	"storefront-go/domain/order"
)

// Template names. Each matches a file under resources/templates.
const (
	TemplateProducts = "products"
	TemplateProduct  = "product"
	TemplateCart     = "cart"
	TemplateLogin    = "login"
	TemplateOrders   = "orders"
	TemplateHeader   = "header"
	TemplateOffline  = "offline"
)

// Templates lists every template name.
func Templates() []string {
	return []string{
		TemplateProducts,
		TemplateProduct,
		TemplateCart,
		TemplateLogin,
		TemplateOrders,
		TemplateHeader,
		TemplateOffline,
	}
}

// Pagination describes the page links of a listing.
type Pagination struct {
	Current int
	Count   int
	// Base is the path the page number is appended to; Suffix follows it.
	Base   string
	Suffix string
}

// Link returns the path of page n.
func (p Pagination) Link(n int) string {
	return p.Base + strconv.Itoa(n) + p.Suffix
}

// Pages returns 1..Count.
func (p Pagination) Pages() []int {
	pages := make([]int, 0, p.Count)
	for i := 1; i <= p.Count; i++ {
		pages = append(pages, i)
	}
	return pages
}

// ProductsData is rendered by TemplateProducts.
type ProductsData struct {
	Products      []catalog.Product
	Pagination    Pagination
	Category      int64
	Search        string
	SortKey       string
	SortDirection string
	Filter        catalog.Filter
	// Warning replaces the listing when the filter is inconsistent.
	Warning string
}

// ProductData is rendered by TemplateProduct.
type ProductData struct {
	Product *catalog.Product
	Notice  string
}

// CartData is rendered by TemplateCart.
type CartData struct {
	Cart *cart.Cart
}

// LoginData is rendered by TemplateLogin.
type LoginData struct {
	Email string
	Error string
}

// OrdersData is rendered by TemplateOrders.
type OrdersData struct {
	Orders     []order.Order
	Pagination Pagination
}

// HeaderData is rendered by TemplateHeader.
type HeaderData struct {
	CartCount int
	LoggedIn  bool
}

// OfflineData is rendered by TemplateOffline.
type OfflineData struct {
	StillOffline bool
}
