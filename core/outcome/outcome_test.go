package outcome

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestOutcome_String(t *testing.T) {
	tests := []struct {
		outcome  Outcome
		expected string
	}{
		{Success, "Success"},
		{Offline, "Offline"},
		{Unauthorized, "Unauthorized"},
		{Error, "Error"},
		{Outcome(42), "Unknown(42)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.outcome.String(); got != tt.expected {
				t.Errorf("String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestFromStatus(t *testing.T) {
	tests := []struct {
		code     int
		expected Outcome
	}{
		{200, Success},
		{204, Success},
		{401, Unauthorized},
		{0, Offline},
		{502, Offline},
		{503, Offline},
		{504, Offline},
		{400, Error},
		{403, Error},
		{404, Error},
		{500, Error},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.code), func(t *testing.T) {
			if got := FromStatus(tt.code); got != tt.expected {
				t.Errorf("FromStatus(%d) = %v, want %v", tt.code, got, tt.expected)
			}
		})
	}
}

func TestOf(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected Outcome
	}{
		{"nil", nil, Success},
		{"offline", ErrOffline, Offline},
		{"wrapped offline", fmt.Errorf("load products: %w", ErrOffline), Offline},
		{"unauthorized", fmt.Errorf("cart: %w", ErrUnauthorized), Unauthorized},
		{"status", &StatusError{Code: 500}, Error},
		{"canceled", context.Canceled, Error},
		{"other", errors.New("boom"), Error},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Of(tt.err); got != tt.expected {
				t.Errorf("Of() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestStatusError(t *testing.T) {
	err := &StatusError{Code: 418, Body: "teapot"}
	if err.Error() != "unexpected status 418: teapot" {
		t.Errorf("Error() = %q", err.Error())
	}

	err = &StatusError{Code: 500}
	if err.Error() != "unexpected status 500" {
		t.Errorf("Error() = %q", err.Error())
	}
}
