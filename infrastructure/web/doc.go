// Package web adapts the router and the presentation layer to the browser:
// a History backed by window.history and document clicks, and a Surface
// that renders html/template output into a DOM element and turns
// data-action attributes into user actions. Everything except this file
// is built only for js/wasm.
package web
