// Package event defines the event identifiers carried by the two bus scopes.
// Local events travel on a presenter's private bus; Global events travel on
// the process-wide bus shared by all presenters. Keeping them as distinct
// types means a handler for one scope cannot be registered on the other.
package event

import "fmt"

// Local identifies an event on a presenter's private bus.
type Local int

const (
	// ViewShown is emitted by a view when the router shows it.
	// Payload: router.Params.
	ViewShown Local = iota
	// ViewHidden is emitted by a view when the router hides it. No payload.
	ViewHidden
	// UserAction is emitted by a view for a user intent. Payload: Action.
	UserAction
	// Loaded is emitted by a model when a load finishes. Payload: Result.
	Loaded
	// Submitted is emitted by a model when a mutation finishes. Payload: Result.
	Submitted
)

var localNames = map[Local]string{
	ViewShown:  "view:shown",
	ViewHidden: "view:hidden",
	UserAction: "view:action",
	Loaded:     "model:loaded",
	Submitted:  "model:submitted",
}

func (e Local) String() string {
	if name, ok := localNames[e]; ok {
		return name
	}
	return fmt.Sprintf("local:unknown(%d)", int(e))
}

// Global identifies a cross-component broadcast.
type Global int

const (
	// CartItemAdded: a product was put in the cart. Payload: int64 product ID.
	CartItemAdded Global = iota
	// CartItemNotAdded: adding a product failed. Payload: int64 product ID.
	CartItemNotAdded
	// CartChanged: the cart contents changed. Payload: CartSummary.
	CartChanged
	// CartContents: the product IDs currently in the cart. Payload: CartSummary.
	CartContents
	// CategoryChanged: the user picked a catalog category. Payload: int64 category ID.
	CategoryChanged
	// LoginSucceeded: a session was established. No payload.
	LoginSucceeded
	// LoggedOut: the session ended. No payload.
	LoggedOut
)

var globalNames = map[Global]string{
	CartItemAdded:    "cart:item:added",
	CartItemNotAdded: "cart:item:not-added",
	CartChanged:      "cart:changed",
	CartContents:     "cart:contents",
	CategoryChanged:  "catalog:category:changed",
	LoginSucceeded:   "user:login:succeeded",
	LoggedOut:        "user:logged-out",
}

func (e Global) String() string {
	if name, ok := globalNames[e]; ok {
		return name
	}
	return fmt.Sprintf("global:unknown(%d)", int(e))
}

// Locals returns every Local event in declaration order.
func Locals() []Local {
	return []Local{ViewShown, ViewHidden, UserAction, Loaded, Submitted}
}

// Globals returns every Global event in declaration order.
func Globals() []Global {
	return []Global{CartItemAdded, CartItemNotAdded, CartChanged, CartContents, CategoryChanged, LoginSucceeded, LoggedOut}
}
