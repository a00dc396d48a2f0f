// Package browser drives a headless Chrome against a served storefront and
// checks the navigation contract from the outside: in-app links do not
// reload the page, each navigation adds one history entry, back adds none,
// and an unreachable API replaces the current entry with the offline page.
package browser

import (
	"context"
	"time"
)

// Driver is the browser surface the smoke check needs.
type Driver interface {
	// Start launches the browser.
	Start(ctx context.Context) error

	// Stop closes the browser and releases resources.
	Stop() error

	// IsRunning returns true if the browser is active.
	IsRunning() bool

	// Navigate loads url as a full page load.
	Navigate(ctx context.Context, url string) error

	// BootMarker returns the value the bundle stores on window at boot, or
	// "" before boot. A changed marker means the document was reloaded.
	BootMarker(ctx context.Context) (string, error)

	// ClickLink clicks an anchor with href inside the document, the way a
	// user would.
	ClickLink(ctx context.Context, href string) error

	// Location returns pathname plus search.
	Location(ctx context.Context) (string, error)

	// History returns the tab's navigation history.
	History(ctx context.Context) (NavHistory, error)

	// Back goes one entry back.
	Back(ctx context.Context) error

	// SetOffline toggles network emulation.
	SetOffline(ctx context.Context, offline bool) error
}

// NavHistory is a snapshot of the session history of a tab.
type NavHistory struct {
	Entries []string
	Current int
}

// Len returns the number of entries.
func (h NavHistory) Len() int {
	return len(h.Entries)
}

// DriverConfig holds configuration for browser drivers.
type DriverConfig struct {
	// Headless runs the browser without a visible window.
	Headless bool

	WindowWidth  int
	WindowHeight int

	// DisableGPU disables GPU acceleration.
	DisableGPU bool

	// UserDataDir specifies a custom user data directory.
	UserDataDir string

	// ActionTimeout bounds a single browser action.
	ActionTimeout time.Duration
}

// DefaultDriverConfig returns default browser configuration.
func DefaultDriverConfig() *DriverConfig {
	return &DriverConfig{
		Headless:      true,
		WindowWidth:   1280,
		WindowHeight:  900,
		ActionTimeout: 10 * time.Second,
	}
}
