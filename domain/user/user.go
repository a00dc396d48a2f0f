// Package user defines credentials and the session endpoints.
package user

import (
	"context"
	"errors"
	"net/mail"
	"strings"
)

// Validation errors for Credentials.
var (
	ErrEmptyEmail    = errors.New("email is required")
	ErrInvalidEmail  = errors.New("email is not valid")
	ErrShortPassword = errors.New("password must be at least 6 characters")
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

// Credentials is a login attempt.
type Credentials struct {
	Email    string
	Password string
}

// Validate checks the credentials before they are sent.
func (c Credentials) Validate() error {
	email := strings.TrimSpace(c.Email)
	if email == "" {
		return ErrEmptyEmail
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ErrInvalidEmail
	}
	if len(c.Password) < MinPasswordLength {
		return ErrShortPassword
	}
	return nil
}

// Repository opens and closes the API session.
type Repository interface {
	Login(ctx context.Context, c Credentials) error
	Logout(ctx context.Context) error
}
