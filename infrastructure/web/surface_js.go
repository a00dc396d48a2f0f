//go:build js && wasm

package web

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"sync"
	"syscall/js"

	"storefront-go/core/event"
	"storefront-go/presentation"
)

// Surface renders into the element with a given id. Clicks on elements
// carrying data-action and submits of forms carrying data-action become
// event.Action values.
type Surface struct {
	el   js.Value
	tmpl *template.Template

	mu     sync.Mutex
	action func(event.Action)

	click   js.Func
	submit  js.Func
	release sync.Once
}

var _ presentation.Surface = (*Surface)(nil)

// NewSurface binds to the element with id.
func NewSurface(id string, tmpl *template.Template) (*Surface, error) {
	el := js.Global().Get("document").Call("getElementById", id)
	if el.IsNull() || el.IsUndefined() {
		return nil, fmt.Errorf("element #%s not found", id)
	}

	s := &Surface{el: el, tmpl: tmpl}
	s.click = js.FuncOf(s.onClick)
	s.submit = js.FuncOf(s.onSubmit)
	el.Call("addEventListener", "click", s.click)
	el.Call("addEventListener", "submit", s.submit)
	return s, nil
}

// Render executes the named template and replaces the element content.
func (s *Surface) Render(tmpl string, data any) error {
	var buf bytes.Buffer
	if err := s.tmpl.ExecuteTemplate(&buf, tmpl, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", tmpl, err)
	}
	s.el.Set("innerHTML", buf.String())
	return nil
}

// SetVisible toggles the hidden attribute.
func (s *Surface) SetVisible(visible bool) {
	s.el.Set("hidden", !visible)
}

// OnAction installs the action receiver.
func (s *Surface) OnAction(fn func(event.Action)) {
	s.mu.Lock()
	s.action = fn
	s.mu.Unlock()
}

// Release removes the listeners and frees their callbacks.
func (s *Surface) Release() {
	s.release.Do(func() {
		s.el.Call("removeEventListener", "click", s.click)
		s.el.Call("removeEventListener", "submit", s.submit)
		s.click.Release()
		s.submit.Release()
		s.OnAction(nil)
	})
}

func (s *Surface) dispatch(a event.Action) {
	s.mu.Lock()
	fn := s.action
	s.mu.Unlock()
	if fn != nil {
		fn(a)
	}
}

func (s *Surface) onClick(this js.Value, args []js.Value) any {
	if len(args) == 0 {
		return nil
	}
	el := closest(args[0].Get("target"), "[data-action]")
	if el.IsNull() || strings.EqualFold(el.Get("tagName").String(), "form") {
		return nil
	}
	args[0].Call("preventDefault")
	s.dispatch(event.Action{
		Name:  attr(el, "data-action"),
		Value: attr(el, "data-value"),
	})
	return nil
}

func (s *Surface) onSubmit(this js.Value, args []js.Value) any {
	if len(args) == 0 {
		return nil
	}
	form := args[0].Get("target")
	name := attr(form, "data-action")
	if name == "" {
		return nil
	}
	args[0].Call("preventDefault")
	s.dispatch(event.Action{
		Name:  name,
		Value: attr(form, "data-value"),
		Form:  formValues(form),
	})
	return nil
}

// formValues collects named controls. Unchecked checkboxes and radios are
// left out, matching what a native form submission sends.
func formValues(form js.Value) map[string]string {
	values := make(map[string]string)
	elements := form.Get("elements")
	for i := 0; i < elements.Length(); i++ {
		el := elements.Index(i)
		name := el.Get("name").String()
		if name == "" {
			continue
		}
		switch strings.ToLower(el.Get("type").String()) {
		case "checkbox", "radio":
			if !el.Get("checked").Bool() {
				continue
			}
		case "submit", "button":
			continue
		}
		values[name] = el.Get("value").String()
	}
	return values
}
