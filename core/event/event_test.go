package event

import (
	"errors"
	"testing"

	"storefront-go/core/outcome"
)

func TestLocal_String(t *testing.T) {
	tests := []struct {
		event    Local
		expected string
	}{
		{ViewShown, "view:shown"},
		{ViewHidden, "view:hidden"},
		{UserAction, "view:action"},
		{Loaded, "model:loaded"},
		{Submitted, "model:submitted"},
		{Local(99), "local:unknown(99)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.event.String(); got != tt.expected {
				t.Errorf("String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGlobal_String(t *testing.T) {
	tests := []struct {
		event    Global
		expected string
	}{
		{CartItemAdded, "cart:item:added"},
		{CartItemNotAdded, "cart:item:not-added"},
		{CartChanged, "cart:changed"},
		{CartContents, "cart:contents"},
		{CategoryChanged, "catalog:category:changed"},
		{LoginSucceeded, "user:login:succeeded"},
		{LoggedOut, "user:logged-out"},
		{Global(-1), "global:unknown(-1)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.event.String(); got != tt.expected {
				t.Errorf("String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestEnumerationsAreNamed(t *testing.T) {
	for _, e := range Locals() {
		if _, ok := localNames[e]; !ok {
			t.Errorf("Local %d has no name", int(e))
		}
	}
	for _, e := range Globals() {
		if _, ok := globalNames[e]; !ok {
			t.Errorf("Global %d has no name", int(e))
		}
	}
	if len(Locals()) != len(localNames) {
		t.Errorf("Locals() = %d entries, names = %d", len(Locals()), len(localNames))
	}
	if len(Globals()) != len(globalNames) {
		t.Errorf("Globals() = %d entries, names = %d", len(Globals()), len(globalNames))
	}
}

func TestResult_OK(t *testing.T) {
	if !(Result{Outcome: outcome.Success}).OK() {
		t.Error("Success result should be OK")
	}
	if (Result{Outcome: outcome.Offline, Err: errors.New("down")}).OK() {
		t.Error("Offline result should not be OK")
	}
}

func TestAction_Field(t *testing.T) {
	a := Action{Name: "login", Form: map[string]string{"login": "ann"}}
	if got := a.Field("login"); got != "ann" {
		t.Errorf("Field(login) = %q, want ann", got)
	}
	if got := a.Field("password"); got != "" {
		t.Errorf("Field(password) = %q, want empty", got)
	}
	if got := (Action{}).Field("x"); got != "" {
		t.Errorf("Field on nil form = %q, want empty", got)
	}
}

func TestCartSummary_Contains(t *testing.T) {
	s := CartSummary{Count: 2, ProductIDs: []int64{3, 9}}
	if !s.Contains(9) {
		t.Error("Contains(9) = false, want true")
	}
	if s.Contains(4) {
		t.Error("Contains(4) = true, want false")
	}
}
