package router

import (
	"errors"
	"fmt"
)

var (
	// ErrNoMatch is returned by Resolve when no route matches a path.
	// Navigation itself never returns it: unmatched paths are ignored.
	ErrNoMatch = errors.New("no route matches path")
	// ErrSealed is the cause of a ConfigError for registration after Start.
	ErrSealed = errors.New("route table is sealed after start")
	// ErrNilTarget is the cause of a ConfigError for a nil view.
	ErrNilTarget = errors.New("route target is nil")
)

// ConfigError reports a route that could not be registered.
type ConfigError struct {
	Pattern string
	Err     error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid route %q: %v", e.Pattern, e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ViewError wraps a failure returned by a view's Show or Hide. The router
// does not recover from it; it is handed to whoever triggered navigation.
type ViewError struct {
	Op   string // "show" or "hide"
	Path string
	Err  error
}

func (e *ViewError) Error() string {
	return fmt.Sprintf("failed to %s view for %s: %v", e.Op, e.Path, e.Err)
}

func (e *ViewError) Unwrap() error {
	return e.Err
}
