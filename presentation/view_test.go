package presentation

import (
	"errors"
	"testing"

	"storefront-go/core/event"
	"storefront-go/core/eventbus"
	"storefront-go/core/router"
	"storefront-go/core/viewstate"
)

func TestView_ShowHide(t *testing.T) {
	bus := eventbus.NewPrivate(nil)
	surface := NewMemorySurface()
	v := NewView("cart", surface, bus, nil)

	var events []string
	for _, e := range event.Locals() {
		bus.On(e, func(any) { events = append(events, e.String()) })
	}

	params, _ := router.MustCompile(`/cart`).Match("/cart")
	if err := v.Show(params); err != nil {
		t.Fatalf("Show() error = %v", err)
	}
	if !surface.Visible() || v.State() != viewstate.Loading {
		t.Errorf("after Show: visible = %v, state = %v", surface.Visible(), v.State())
	}

	if err := v.Render(TemplateCart, nil); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if v.State() != viewstate.Shown {
		t.Errorf("state = %v, want Shown", v.State())
	}

	if err := v.Hide(); err != nil {
		t.Fatalf("Hide() error = %v", err)
	}
	if err := v.Hide(); err != nil {
		t.Fatalf("second Hide() error = %v", err)
	}
	if surface.Visible() {
		t.Error("surface visible after Hide")
	}

	want := []string{"view:shown", "view:hidden"}
	if len(events) != len(want) || events[0] != want[0] || events[1] != want[1] {
		t.Errorf("events = %v, want %v", events, want)
	}
	if v.Generation() != 2 {
		t.Errorf("Generation() = %d, want 2", v.Generation())
	}
}

func TestView_RenderWhileHidden(t *testing.T) {
	v := NewView("cart", NewMemorySurface(), eventbus.NewPrivate(nil), nil)

	err := v.Render(TemplateCart, nil)
	var te *viewstate.TransitionError
	if !errors.As(err, &te) {
		t.Fatalf("Render() error = %v, want TransitionError", err)
	}
}

func TestView_ForwardsActions(t *testing.T) {
	bus := eventbus.NewPrivate(nil)
	surface := NewMemorySurface()
	NewView("product", surface, bus, nil)

	var got event.Action
	bus.On(event.UserAction, func(p any) { got = p.(event.Action) })

	surface.Trigger(event.Action{Name: "add-to-cart", Value: "3"})

	if got.Name != "add-to-cart" || got.Value != "3" {
		t.Errorf("action = %+v", got)
	}
}
