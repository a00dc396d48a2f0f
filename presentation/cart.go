package presentation

import (
	"strconv"

	"storefront-go/application/model"
	"storefront-go/core/event"
	"storefront-go/core/router"
	"storefront-go/domain/cart"
)

// Cart presents the cart page. Without a session it sends the user to the
// login page.
type Cart struct {
	*presenter
	model *model.Cart
}

// NewCart creates the cart presenter.
func NewCart(surface Surface, repo cart.Repository, deps Deps) *Cart {
	p := &Cart{presenter: newPresenter("cart", surface, deps)}
	p.model = model.NewCart(repo, p.bus, p.deps.Global)

	p.onShown(func(router.Params) {
		ctx, ticket := p.begin()
		p.run(func() { p.model.Load(ctx, ticket) })
	})
	p.onResult(event.Loaded, func(r event.Result) {
		p.apply(r, p.draw, p.toLogin)
	})
	p.onResult(event.Submitted, func(r event.Result) {
		p.apply(r, p.draw, p.toLogin)
	})
	p.onAction(func(a event.Action) {
		if a.Name != "remove" {
			return
		}
		id, err := strconv.ParseInt(a.Value, 10, 64)
		if err != nil {
			p.logger.Warn("invalid product id", "value", a.Value)
			return
		}
		ctx, ticket := p.work()
		p.run(func() { p.model.Remove(ctx, ticket, id) })
	})
	return p
}

// Model returns the cart model.
func (p *Cart) Model() *model.Cart {
	return p.model
}

func (p *Cart) draw() error {
	return p.render(TemplateCart, CartData{Cart: p.model.Cart()})
}

func (p *Cart) toLogin() error {
	return p.open(p.deps.Paths.Login)
}
