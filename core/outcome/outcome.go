// Package outcome defines the closed result vocabulary shared by models,
// presenters and bus payloads. Presenters depend on these values only, never
// on raw transport status codes.
package outcome

import (
	"errors"
	"fmt"
	"net/http"
)

// Outcome is the translated result of a request against the storefront API.
type Outcome int

const (
	// Success means the request completed and its data is available.
	Success Outcome = iota
	// Offline means the API could not be reached at all.
	Offline
	// Unauthorized means the API rejected the request for lack of a session.
	Unauthorized
	// Error covers every other failure.
	Error
)

// String returns the string representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case Success:
		return "Success"
	case Offline:
		return "Offline"
	case Unauthorized:
		return "Unauthorized"
	case Error:
		return "Error"
	default:
		return fmt.Sprintf("Unknown(%d)", int(o))
	}
}

// Sentinel errors returned by the transport layer. Callers translate them
// with Of.
var (
	ErrOffline      = errors.New("storefront api unreachable")
	ErrUnauthorized = errors.New("storefront api: unauthorized")
)

// FromStatus translates an HTTP status code. A zero code means no response
// was received.
func FromStatus(code int) Outcome {
	switch {
	case code >= 200 && code < 300:
		return Success
	case code == http.StatusUnauthorized:
		return Unauthorized
	case code == 0,
		code == http.StatusBadGateway,
		code == http.StatusServiceUnavailable,
		code == http.StatusGatewayTimeout:
		return Offline
	default:
		return Error
	}
}

// Of translates a transport error into an Outcome.
func Of(err error) Outcome {
	switch {
	case err == nil:
		return Success
	case errors.Is(err, ErrOffline):
		return Offline
	case errors.Is(err, ErrUnauthorized):
		return Unauthorized
	default:
		return Error
	}
}

// StatusError is returned for API responses that are neither success nor
// one of the sentinel conditions.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("unexpected status %d: %s", e.Code, e.Body)
	}
	return fmt.Sprintf("unexpected status %d", e.Code)
}
