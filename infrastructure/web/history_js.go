//go:build js && wasm

package web

import (
	"log/slog"
	"sync"
	"syscall/js"

	"storefront-go/core/router"
)

// History implements router.History over window.history. Listen intercepts
// in-app link clicks on the whole document.
type History struct {
	logger *slog.Logger
}

var _ router.History = (*History)(nil)

// NewHistory creates the browser history adapter.
func NewHistory(logger *slog.Logger) *History {
	if logger == nil {
		logger = slog.Default()
	}
	return &History{logger: logger.With("component", "history")}
}

// Location returns pathname plus search of the current document.
func (h *History) Location() string {
	loc := js.Global().Get("location")
	return loc.Get("pathname").String() + loc.Get("search").String()
}

// Origin returns location.origin.
func (h *History) Origin() string {
	return js.Global().Get("location").Get("origin").String()
}

// Push calls history.pushState.
func (h *History) Push(path string) {
	js.Global().Get("history").Call("pushState", js.Null(), "", path)
}

// Replace calls history.replaceState.
func (h *History) Replace(path string) {
	js.Global().Get("history").Call("replaceState", js.Null(), "", path)
}

// Listen installs the popstate and click listeners. The returned stop
// removes them and releases their callbacks.
func (h *History) Listen(l router.Listener) (stop func()) {
	window := js.Global()
	document := window.Get("document")

	popstate := js.FuncOf(func(this js.Value, args []js.Value) any {
		if l.Pop == nil {
			return nil
		}
		if err := l.Pop(h.Location()); err != nil {
			h.logger.Error("failed to handle popstate", "error", err)
		}
		return nil
	})

	click := js.FuncOf(func(this js.Value, args []js.Value) any {
		if l.Link == nil || len(args) == 0 {
			return nil
		}
		ev := args[0]
		if ev.Get("defaultPrevented").Bool() {
			return nil
		}
		anchor := closest(ev.Get("target"), "a[href]")
		if anchor.IsNull() {
			return nil
		}

		handled, err := l.Link(linkClick(ev, anchor))
		if handled {
			ev.Call("preventDefault")
		}
		if err != nil {
			h.logger.Error("failed to handle link", "href", anchor.Get("href").String(), "error", err)
		}
		return nil
	})

	window.Call("addEventListener", "popstate", popstate)
	document.Call("addEventListener", "click", click)

	var once sync.Once
	return func() {
		once.Do(func() {
			window.Call("removeEventListener", "popstate", popstate)
			document.Call("removeEventListener", "click", click)

			popstate.Release()
			click.Release()
		})
	}
}

func linkClick(ev, anchor js.Value) router.LinkClick {
	return router.LinkClick{
		Href:     anchor.Get("href").String(),
		Target:   attr(anchor, "target"),
		Rel:      attr(anchor, "rel"),
		Download: anchor.Call("hasAttribute", "download").Bool(),
		Button:   ev.Get("button").Int(),
		Ctrl:     ev.Get("ctrlKey").Bool(),
		Meta:     ev.Get("metaKey").Bool(),
		Shift:    ev.Get("shiftKey").Bool(),
		Alt:      ev.Get("altKey").Bool(),
	}
}

func closest(target js.Value, selector string) js.Value {
	if target.IsUndefined() || target.IsNull() || target.Get("closest").IsUndefined() {
		return js.Null()
	}
	return target.Call("closest", selector)
}

func attr(el js.Value, name string) string {
	v := el.Call("getAttribute", name)
	if v.IsNull() {
		return ""
	}
	return v.String()
}
