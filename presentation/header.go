package presentation

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"storefront-go/application/model"
	"storefront-go/core/event"
	"storefront-go/core/router"
	"storefront-go/domain/cart"
	"storefront-go/domain/user"
)

// Header presents the always visible page header: cart badge, categories,
// search box and logout. It is not routed; Start shows it once.
type Header struct {
	*presenter
	model *model.Header
	login *model.Login

	mu       sync.Mutex
	loggedIn bool
}

// NewHeader creates the header presenter.
func NewHeader(surface Surface, carts cart.Repository, users user.Repository, deps Deps) *Header {
	p := &Header{presenter: newPresenter("header", surface, deps)}
	p.model = model.NewHeader(carts, p.bus)
	p.login = model.NewLogin(users, p.bus, p.deps.Global)

	p.onShown(func(router.Params) { p.reload() })
	p.onResult(event.Loaded, func(r event.Result) {
		p.apply(r,
			func() error {
				p.setLoggedIn(true)
				return p.draw()
			},
			func() error {
				p.setLoggedIn(false)
				p.model.Reset()
				return p.draw()
			},
		)
	})
	p.onResult(event.Submitted, func(r event.Result) {
		p.apply(r, func() error { return p.open(p.deps.Paths.Home) }, nil)
	})
	p.onAction(p.handleAction)

	p.onGlobal(event.CartItemAdded, func(payload any) {
		if id, ok := payload.(int64); ok {
			p.model.Increment(id)
			p.redraw()
		}
	})
	updateSummary := func(payload any) {
		if s, ok := payload.(event.CartSummary); ok {
			p.model.SetSummary(s)
			p.redraw()
		}
	}
	p.onGlobal(event.CartChanged, updateSummary)
	p.onGlobal(event.CartContents, updateSummary)
	p.onGlobal(event.LoginSucceeded, func(any) {
		p.setLoggedIn(true)
		p.reload()
	})
	p.onGlobal(event.LoggedOut, func(any) {
		p.setLoggedIn(false)
		p.model.Reset()
		p.redraw()
	})
	return p
}

// Start shows the header.
func (p *Header) Start() error {
	return p.view.Show(router.Params{})
}

// Model returns the cart badge model.
func (p *Header) Model() *model.Header {
	return p.model
}

// LoggedIn reports whether the last cart request had a session.
func (p *Header) LoggedIn() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loggedIn
}

func (p *Header) reload() {
	ctx, ticket := p.begin()
	p.run(func() { p.model.Load(ctx, ticket) })
}

func (p *Header) handleAction(a event.Action) {
	switch a.Name {
	case "category":
		id, err := strconv.ParseInt(a.Value, 10, 64)
		if err != nil {
			p.logger.Warn("invalid category id", "value", a.Value)
			return
		}
		p.deps.Global.Emit(event.CategoryChanged, id)
		p.logErr("failed to navigate", p.open(fmt.Sprintf("/items/%d", id)))
	case "search":
		q := strings.TrimSpace(a.Field("q"))
		if q == "" {
			return
		}
		p.logErr("failed to navigate", p.open("/search/1?q="+url.QueryEscape(q)))
	case "logout":
		ctx, ticket := p.work()
		p.run(func() { p.login.Logout(ctx, ticket) })
	default:
		p.logger.Debug("unhandled action", "action", a.Name)
	}
}

func (p *Header) setLoggedIn(v bool) {
	p.mu.Lock()
	p.loggedIn = v
	p.mu.Unlock()
}

func (p *Header) draw() error {
	return p.render(TemplateHeader, HeaderData{
		CartCount: p.model.Summary().Count,
		LoggedIn:  p.LoggedIn(),
	})
}

func (p *Header) redraw() {
	p.logErr("failed to render", p.draw())
}
