package presentation

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"storefront-go/application/model"
	"storefront-go/core/event"
	"storefront-go/core/router"
	"storefront-go/core/viewstate"
	"storefront-go/domain/cart"
	"storefront-go/domain/catalog"
)

// Products presents a product grid: a category listing, or search results
// when built with NewSearch.
type Products struct {
	*presenter
	search bool
	model  *model.Products
	adder  *model.Product
}

// NewProducts creates the category listing presenter.
func NewProducts(surface Surface, repo catalog.Repository, carts cart.Repository, deps Deps) *Products {
	return newProducts("products", false, surface, repo, carts, deps)
}

// NewSearch creates the search results presenter.
func NewSearch(surface Surface, repo catalog.Repository, carts cart.Repository, deps Deps) *Products {
	return newProducts("search", true, surface, repo, carts, deps)
}

func newProducts(name string, search bool, surface Surface, repo catalog.Repository, carts cart.Repository, deps Deps) *Products {
	p := &Products{presenter: newPresenter(name, surface, deps), search: search}
	p.model = model.NewProducts(repo, p.bus)
	p.adder = model.NewProduct(repo, carts, p.bus, p.deps.Global)

	p.onShown(p.load)
	p.onResult(event.Loaded, func(r event.Result) {
		p.apply(r, p.draw, nil)
	})
	p.onResult(event.Submitted, func(r event.Result) {
		p.apply(r, nil, func() error { return p.open(p.deps.Paths.Login) })
	})
	p.onAction(p.handleAction)

	p.onGlobal(event.CartItemAdded, func(payload any) {
		if id, ok := payload.(int64); ok {
			p.model.SetInCart(id, true)
			p.redraw()
		}
	})
	p.onGlobal(event.CartItemNotAdded, func(payload any) {
		if id, ok := payload.(int64); ok {
			p.model.SetInCart(id, false)
			p.redraw()
		}
	})
	p.onGlobal(event.CartContents, func(payload any) {
		if s, ok := payload.(event.CartSummary); ok {
			p.model.MarkInCart(s.ProductIDs)
			p.redraw()
		}
	})
	if !search {
		p.onGlobal(event.CategoryChanged, func(payload any) {
			if id, ok := payload.(int64); ok {
				p.model.SetCategory(id)
			}
		})
	}
	return p
}

// Model returns the listing model.
func (p *Products) Model() *model.Products {
	return p.model
}

func (p *Products) load(params router.Params) {
	ctx, ticket := p.begin()

	q := p.model.Query()
	q.Count = catalog.PageSize
	q.Page = 1
	if n, ok := params.Int("page"); ok && n > 0 {
		q.Page = int(n)
	}
	if !p.search {
		if c, ok := params.Int("category"); ok {
			q.Category = c
			p.model.SetCategory(c)
		}
	}

	query := params.Query()
	filter, err := ParseFilter(query)
	if err != nil {
		p.logErr("failed to render", p.view.Render(TemplateProducts, ProductsData{
			Category: q.Category,
			Filter:   derefFilter(filter),
			Warning:  err.Error(),
		}))
		return
	}
	q.Filter = filter
	q.SortKey, q.SortDirection = ParseSort(query)
	p.model.SetFilter(filter)
	p.model.SetSort(q.SortKey, q.SortDirection)

	if p.search {
		q.Search = strings.TrimSpace(query.Get("q"))
		p.run(func() { p.model.Search(ctx, ticket, q) })
		return
	}
	p.run(func() { p.model.Load(ctx, ticket, q) })
}

func (p *Products) handleAction(a event.Action) {
	switch a.Name {
	case "add-to-cart":
		id, err := strconv.ParseInt(a.Value, 10, 64)
		if err != nil {
			p.logger.Warn("invalid product id", "value", a.Value)
			return
		}
		ctx, ticket := p.work()
		p.run(func() { p.adder.AddToCart(ctx, ticket, id) })
	case "sort":
		key, dir, _ := strings.Cut(a.Value, ":")
		p.reopen(func(q url.Values) {
			q.Set("sortKey", key)
			q.Set("sortDirection", dir)
		})
	case "filter":
		p.reopen(func(q url.Values) {
			for _, k := range []string{"priceMin", "priceMax", "isNew", "isRating", "isDiscount"} {
				if v := a.Field(k); v != "" {
					q.Set(k, v)
				} else {
					q.Del(k)
				}
			}
		})
	case "drop-filter":
		p.reopen(func(q url.Values) {
			for _, k := range []string{"priceMin", "priceMax", "isNew", "isRating", "isDiscount"} {
				q.Del(k)
			}
		})
	default:
		p.logger.Debug("unhandled action", "action", a.Name)
	}
}

// reopen navigates to the current path with an edited query string so the
// listing state is kept in the URL.
func (p *Products) reopen(edit func(url.Values)) {
	params := p.view.Params()
	q := params.Query()
	edit(q)

	path := params.Path()
	if enc := q.Encode(); enc != "" {
		path += "?" + enc
	}
	p.logErr("failed to navigate", p.open(path))
}

func (p *Products) draw() error {
	q := p.model.Query()
	page := p.model.Page()

	data := ProductsData{
		Products:      p.model.Products(),
		Category:      q.Category,
		Search:        q.Search,
		SortKey:       q.SortKey,
		SortDirection: q.SortDirection,
		Filter:        derefFilter(q.Filter),
	}
	if page != nil {
		data.Pagination = Pagination{Current: page.Current, Count: page.PagesCount}
	}
	if p.search {
		data.Pagination.Base = "/search/"
		data.Pagination.Suffix = "?q=" + url.QueryEscape(q.Search)
	} else {
		data.Pagination.Base = fmt.Sprintf("/items/%d/", q.Category)
	}
	return p.render(TemplateProducts, data)
}

func (p *Products) redraw() {
	if p.model.Page() == nil {
		return
	}
	if p.view.State() != viewstate.Shown {
		return
	}
	p.logErr("failed to render", p.draw())
}

func derefFilter(f *catalog.Filter) catalog.Filter {
	if f == nil {
		return catalog.Filter{}
	}
	return *f
}

// ParseFilter reads the listing filter from a query string. Prices must be
// positive numbers and flags "true" or "false"; anything else leaves the
// field unset. It returns nil when nothing is set, and the parsed filter
// with an error when the price bounds are inverted.
func ParseFilter(q url.Values) (*catalog.Filter, error) {
	f := catalog.Filter{
		MinPrice:   positiveInt(q.Get("priceMin")),
		MaxPrice:   positiveInt(q.Get("priceMax")),
		IsNew:      parseFlag(q.Get("isNew")),
		IsRating:   parseFlag(q.Get("isRating")),
		IsDiscount: parseFlag(q.Get("isDiscount")),
	}
	if f.IsZero() {
		return nil, nil
	}
	if err := f.Valid(); err != nil {
		return &f, err
	}
	return &f, nil
}

// ParseSort reads the sort order from a query string, falling back to cost
// ascending for unknown values.
func ParseSort(q url.Values) (key, direction string) {
	key, direction = catalog.SortCost, catalog.Asc
	switch k := q.Get("sortKey"); k {
	case catalog.SortCost, catalog.SortRating, catalog.SortDate, catalog.SortDiscount:
		key = k
	}
	switch d := strings.ToUpper(q.Get("sortDirection")); d {
	case catalog.Asc, catalog.Desc:
		direction = d
	}
	return key, direction
}

func positiveInt(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n <= 0 {
		return 0
	}
	return n
}

func parseFlag(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "true")
}
