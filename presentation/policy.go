package presentation

import (
	"log/slog"

	"storefront-go/core/event"
	"storefront-go/core/outcome"
	"storefront-go/core/router"
)

// Navigator is the part of the router presenters use.
type Navigator interface {
	Open(path string, opts ...router.OpenOption) error
}

// OutcomePolicy applies the uniform reaction to a model result: Success
// renders, Offline replaces the current entry with the offline page,
// Unauthorized runs the presenter's own reaction and Error is logged with
// the view left as it is.
type OutcomePolicy struct {
	Router      Navigator
	OfflinePath string
	Logger      *slog.Logger
}

// Apply dispatches r. A nil unauthorized reaction only logs.
func (p OutcomePolicy) Apply(r event.Result, success, unauthorized func() error) error {
	switch r.Outcome {
	case outcome.Success:
		if success == nil {
			return nil
		}
		return success()
	case outcome.Offline:
		p.logger().Warn("storefront api offline", "error", r.Err)
		return p.Router.Open(p.OfflinePath, router.ReplaceState())
	case outcome.Unauthorized:
		if unauthorized == nil {
			p.logger().Warn("unauthorized result ignored", "error", r.Err)
			return nil
		}
		return unauthorized()
	default:
		p.logger().Error("request failed", "outcome", r.Outcome, "error", r.Err)
		return nil
	}
}

func (p OutcomePolicy) logger() *slog.Logger {
	if p.Logger == nil {
		return slog.Default()
	}
	return p.Logger
}
