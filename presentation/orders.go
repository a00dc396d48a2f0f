package presentation

import (
	"storefront-go/application/model"
	"storefront-go/core/event"
	"storefront-go/core/router"
	"storefront-go/domain/order"
)

// Orders presents the order history.
type Orders struct {
	*presenter
	model *model.Orders
}

// NewOrders creates the order history presenter.
func NewOrders(surface Surface, repo order.Repository, deps Deps) *Orders {
	p := &Orders{presenter: newPresenter("orders", surface, deps)}
	p.model = model.NewOrders(repo, p.bus)

	p.onShown(func(params router.Params) {
		q := order.DefaultQuery()
		if n, ok := params.Int("page"); ok && n > 0 {
			q.Page = int(n)
		}
		ctx, ticket := p.begin()
		p.run(func() { p.model.Load(ctx, ticket, q) })
	})
	p.onResult(event.Loaded, func(r event.Result) {
		p.apply(r, p.draw, func() error {
			return p.open(p.deps.Paths.Login, router.ReplaceState())
		})
	})
	return p
}

func (p *Orders) draw() error {
	data := OrdersData{Pagination: Pagination{Base: "/orders/"}}
	if page := p.model.Page(); page != nil {
		data.Orders = page.Orders
		data.Pagination.Current = page.Current
		data.Pagination.Count = page.PagesCount
	}
	return p.render(TemplateOrders, data)
}
