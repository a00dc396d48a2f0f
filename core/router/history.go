package router

import (
	"net/url"
	"strings"
)

// History is the browser history as seen by the router.
type History interface {
	// Location returns the current path, including query string.
	Location() string
	// Origin returns scheme://host of the page, used to tell in-app links
	// from external ones.
	Origin() string
	// Push adds a new entry without reloading the page.
	Push(path string)
	// Replace overwrites the current entry without reloading the page.
	Replace(path string)
	// Listen installs the back/forward and link-click listeners and returns
	// a function that removes them.
	Listen(l Listener) (stop func())
}

// Listener receives navigation signals from a History.
type Listener struct {
	// Pop is called after the history moved back or forward to path.
	Pop func(path string) error
	// Link is called for every primary link click. It returns true when the
	// click was taken over, in which case the default action is suppressed.
	Link func(click LinkClick) (bool, error)
}

// LinkClick describes a click on an anchor element.
type LinkClick struct {
	Href     string // resolved href
	Target   string
	Rel      string
	Download bool
	Button   int
	Ctrl     bool
	Meta     bool
	Shift    bool
	Alt      bool
}

// Modified reports whether a modifier key was held, i.e. a new tab or
// window intent.
func (c LinkClick) Modified() bool {
	return c.Ctrl || c.Meta || c.Shift || c.Alt
}

// InAppPath decides whether a click should be routed inside the page and
// returns the path to open. External links, modifier or non-primary clicks,
// downloads and links targeting another browsing context are left to the
// browser, and so are fragment links into the current location, which only
// scroll.
func InAppPath(click LinkClick, origin, location string) (string, bool) {
	if click.Button != 0 || click.Modified() || click.Download {
		return "", false
	}
	if click.Target != "" && click.Target != "_self" {
		return "", false
	}
	for _, rel := range strings.Fields(click.Rel) {
		if strings.EqualFold(rel, "external") {
			return "", false
		}
	}

	u, err := url.Parse(click.Href)
	if err != nil || u.Opaque != "" {
		return "", false
	}
	if u.Scheme != "" || u.Host != "" {
		o, err := url.Parse(origin)
		if err != nil || !strings.EqualFold(u.Scheme, o.Scheme) || !strings.EqualFold(u.Host, o.Host) {
			return "", false
		}
	}
	// Fragment-only links scroll within the current document.
	if u.Path == "" {
		return "", false
	}

	path := u.EscapedPath()
	if !strings.HasPrefix(path, "/") {
		return "", false
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	// Resolved hrefs are absolute, so a same-page anchor carries the full path.
	if strings.Contains(click.Href, "#") && path == location {
		return "", false
	}
	return path, true
}
