package api

import (
	"context"
	"fmt"
	"net/http"

	"storefront-go/domain/user"
)

type credentialsDTO struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserRepository implements user.Repository.
type UserRepository struct {
	client Client
}

// NewUserRepository creates a user repository.
func NewUserRepository(client Client) *UserRepository {
	return &UserRepository{client: client}
}

// Login opens a session.
func (r *UserRepository) Login(ctx context.Context, c user.Credentials) error {
	body := credentialsDTO{Email: c.Email, Password: c.Password}
	if err := r.client.Do(ctx, http.MethodPost, "/api/v1/user/login", body, nil); err != nil {
		return fmt.Errorf("failed to log in: %w", err)
	}
	return nil
}

// Logout closes the session.
func (r *UserRepository) Logout(ctx context.Context) error {
	if err := r.client.Do(ctx, http.MethodDelete, "/api/v1/user/logout", nil, nil); err != nil {
		return fmt.Errorf("failed to log out: %w", err)
	}
	return nil
}

var _ user.Repository = (*UserRepository)(nil)
