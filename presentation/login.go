package presentation

import (
	"errors"
	"strings"
	"sync"

	"storefront-go/application/model"
	"storefront-go/core/event"
	"storefront-go/core/router"
	"storefront-go/domain/user"
)

// Login presents the login form.
type Login struct {
	*presenter
	model *model.Login

	mu    sync.Mutex
	email string
}

// NewLogin creates the login presenter.
func NewLogin(surface Surface, repo user.Repository, deps Deps) *Login {
	p := &Login{presenter: newPresenter("login", surface, deps)}
	p.model = model.NewLogin(repo, p.bus, p.deps.Global)

	p.onShown(func(router.Params) {
		p.begin()
		p.logErr("failed to render", p.draw(""))
	})
	p.onAction(func(a event.Action) {
		if a.Name != "login" {
			return
		}
		creds := user.Credentials{
			Email:    strings.TrimSpace(a.Field("email")),
			Password: a.Field("password"),
		}
		p.mu.Lock()
		p.email = creds.Email
		p.mu.Unlock()

		if err := creds.Validate(); err != nil {
			p.logErr("failed to render", p.draw(validationMessage(err)))
			return
		}
		ctx, ticket := p.work()
		p.run(func() { p.model.Login(ctx, ticket, creds) })
	})
	p.onResult(event.Submitted, func(r event.Result) {
		p.apply(r,
			func() error { return p.open(p.deps.Paths.AfterLogin) },
			func() error { return p.draw("Wrong email or password") },
		)
	})
	return p
}

func (p *Login) draw(msg string) error {
	p.mu.Lock()
	email := p.email
	p.mu.Unlock()
	return p.render(TemplateLogin, LoginData{Email: email, Error: msg})
}

func validationMessage(err error) string {
	switch {
	case errors.Is(err, user.ErrEmptyEmail):
		return "Enter your email"
	case errors.Is(err, user.ErrInvalidEmail):
		return "Email is not valid"
	case errors.Is(err, user.ErrShortPassword):
		return "Password is too short"
	default:
		return err.Error()
	}
}
