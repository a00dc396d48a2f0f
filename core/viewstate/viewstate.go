// Package viewstate defines the view lifecycle state machine.
package viewstate

import (
	"fmt"
	"slices"
)

// State represents the lifecycle state of a routed view.
type State int

const (
	// Hidden is the initial state and the state after the router hides the view.
	Hidden State = iota
	// Loading indicates the view is visible and waiting for its model.
	Loading
	// Shown indicates the view has rendered its data.
	Shown
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case Hidden:
		return "Hidden"
	case Loading:
		return "Loading"
	case Shown:
		return "Shown"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// validTransitions defines the allowed state transitions.
// A hidden view must be shown before it can render. Loading and Shown may
// re-enter themselves: the router re-shows the active view when only the
// path parameters change, and global events re-render a shown view.
var validTransitions = map[State][]State{
	Hidden:  {Loading},
	Loading: {Loading, Shown, Hidden},
	Shown:   {Loading, Shown, Hidden},
}

// CanTransitionTo checks if transitioning from the current state to the target state is valid.
func (s State) CanTransitionTo(target State) bool {
	return slices.Contains(s.ValidTransitions(), target)
}

// ValidTransitions returns the list of valid target states from the current state.
func (s State) ValidTransitions() []State {
	return slices.Clone(validTransitions[s])
}

// IsVisible reports whether the view's surface is on screen.
func (s State) IsVisible() bool {
	return s == Loading || s == Shown
}

// TransitionError represents an invalid state transition attempt.
type TransitionError struct {
	From   State
	To     State
	Reason string
}

func (e *TransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid view transition from %s to %s: %s", e.From, e.To, e.Reason)
	}
	return fmt.Sprintf("invalid view transition from %s to %s", e.From, e.To)
}

// NewTransitionError creates a new TransitionError.
func NewTransitionError(from, to State, reason string) *TransitionError {
	return &TransitionError{From: from, To: to, Reason: reason}
}
