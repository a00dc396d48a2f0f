package model

import (
	"context"

	"storefront-go/core/event"
	"storefront-go/domain/user"
)

// Login is the model behind the login form.
type Login struct {
	repo   user.Repository
	bus    LocalBus
	global GlobalBus
}

// NewLogin creates the model.
func NewLogin(repo user.Repository, bus LocalBus, global GlobalBus) *Login {
	return &Login{repo: repo, bus: bus, global: global}
}

// Login opens a session. LoginSucceeded is broadcast on success; Submitted
// is emitted in every case.
func (m *Login) Login(ctx context.Context, ticket uint64, c user.Credentials) {
	err := m.repo.Login(ctx, c)
	if err == nil {
		m.global.Emit(event.LoginSucceeded, nil)
	}
	m.bus.Emit(event.Submitted, result(ticket, err))
}

// Logout closes the session and broadcasts LoggedOut.
func (m *Login) Logout(ctx context.Context, ticket uint64) {
	err := m.repo.Logout(ctx)
	if err == nil {
		m.global.Emit(event.LoggedOut, nil)
	}
	m.bus.Emit(event.Submitted, result(ticket, err))
}
