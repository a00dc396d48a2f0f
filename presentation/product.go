package presentation

import (
	"sync"

	"storefront-go/application/model"
	"storefront-go/core/event"
	"storefront-go/core/router"
	"storefront-go/domain/cart"
	"storefront-go/domain/catalog"
)

// Product presents a single product page.
type Product struct {
	*presenter
	model *model.Product

	mu     sync.Mutex
	notice string
}

// NewProduct creates the product page presenter.
func NewProduct(surface Surface, repo catalog.Repository, carts cart.Repository, deps Deps) *Product {
	p := &Product{presenter: newPresenter("product", surface, deps)}
	p.model = model.NewProduct(repo, carts, p.bus, p.deps.Global)

	p.onShown(p.load)
	p.onResult(event.Loaded, func(r event.Result) {
		p.apply(r, p.draw, nil)
	})
	p.onResult(event.Submitted, func(r event.Result) {
		notice := "Added to cart"
		if !r.OK() {
			notice = "Could not add to cart"
		}
		p.setNotice(notice)
		p.apply(r, p.draw, func() error { return p.open(p.deps.Paths.Login) })
	})
	p.onAction(func(a event.Action) {
		if a.Name != "add-to-cart" {
			return
		}
		product := p.model.Product()
		if product == nil {
			return
		}
		ctx, ticket := p.work()
		p.run(func() { p.model.AddToCart(ctx, ticket, product.ID) })
	})
	return p
}

// Model returns the product model.
func (p *Product) Model() *model.Product {
	return p.model
}

func (p *Product) load(params router.Params) {
	id, ok := params.Int("productID")
	if !ok {
		p.logErr("failed to redirect", p.open(p.deps.Paths.Home, router.ReplaceState()))
		return
	}
	p.setNotice("")
	ctx, ticket := p.begin()
	p.run(func() { p.model.Load(ctx, ticket, id) })
}

func (p *Product) setNotice(s string) {
	p.mu.Lock()
	p.notice = s
	p.mu.Unlock()
}

func (p *Product) draw() error {
	p.mu.Lock()
	notice := p.notice
	p.mu.Unlock()
	return p.render(TemplateProduct, ProductData{Product: p.model.Product(), Notice: notice})
}
