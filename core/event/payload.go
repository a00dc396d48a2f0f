package event

import "storefront-go/core/outcome"

// Result is the payload of Loaded and Submitted.
type Result struct {
	Outcome outcome.Outcome
	// Ticket identifies the request that produced the result. Presenters
	// compare it with the ticket of their current showing to drop late
	// responses.
	Ticket uint64
	// Err is the underlying transport error, nil on success.
	Err error
}

// OK reports whether the result is a success.
func (r Result) OK() bool {
	return r.Outcome == outcome.Success
}

// Action is a user intent raised by a view, e.g. a click on an element
// carrying data-action="add-to-cart".
type Action struct {
	Name  string
	Value string
	// Form holds the named field values when the action came from a form.
	Form map[string]string
}

// Field returns a form value, empty when absent.
func (a Action) Field(name string) string {
	if a.Form == nil {
		return ""
	}
	return a.Form[name]
}

// CartSummary is the payload of CartChanged and CartContents.
type CartSummary struct {
	Count      int
	ProductIDs []int64
}

// Contains reports whether the product is in the cart.
func (s CartSummary) Contains(productID int64) bool {
	for _, id := range s.ProductIDs {
		if id == productID {
			return true
		}
	}
	return false
}
