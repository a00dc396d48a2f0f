// Package model holds the storefront models. A model owns no bus: it is
// handed its presenter's private bus, and the global bus where it
// broadcasts. Every call runs synchronously and finishes by emitting exactly
// one outcome event on the private bus.
package model

import (
	"sync"

	"storefront-go/core/event"
	"storefront-go/core/eventbus"
	"storefront-go/core/outcome"
)

// LocalBus is the private bus a model reports on.
type LocalBus = eventbus.EventBus[event.Local]

// GlobalBus is the process-wide bus a model broadcasts on.
type GlobalBus = eventbus.EventBus[event.Global]

// result translates a repository error into a bus payload.
func result(ticket uint64, err error) event.Result {
	return event.Result{Outcome: outcome.Of(err), Ticket: ticket, Err: err}
}

// latest remembers the newest ticket a model was asked to load, so a slow
// response cannot overwrite the data of a newer one.
type latest struct {
	mu     sync.Mutex
	ticket uint64
}

func (l *latest) begin(ticket uint64) {
	l.mu.Lock()
	if ticket > l.ticket {
		l.ticket = ticket
	}
	l.mu.Unlock()
}

// commit runs store when ticket is still the newest one.
func (l *latest) commit(ticket uint64, store func()) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	if ticket < l.ticket {
		return false
	}
	store()
	return true
}
