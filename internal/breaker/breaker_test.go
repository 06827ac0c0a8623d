// Outfitter - Visual Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/outfitter

package breaker

import (
	"errors"
	"testing"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"
)

var errBoom = errors.New("boom")

func TestBreakerPassesThroughResults(t *testing.T) {
	b := New[int]("test-pass", DefaultSettings())

	got, err := b.Execute(func() (int, error) { return 42, nil })
	if err != nil || got != 42 {
		t.Fatalf("Execute() = %d, %v; want 42, nil", got, err)
	}

	_, err = b.Execute(func() (int, error) { return 0, errBoom })
	if !errors.Is(err, errBoom) {
		t.Errorf("Execute() error = %v, want errBoom", err)
	}
	if b.State() != "closed" {
		t.Errorf("State() = %q, want closed after one failure", b.State())
	}
}

func TestBreakerOpensAfterFailureRatio(t *testing.T) {
	b := New[string]("test-open", Settings{MinRequests: 4, FailureRatio: 0.5, Timeout: time.Minute})

	for i := 0; i < 4; i++ {
		_, _ = b.Execute(func() (string, error) { return "", errBoom })
	}

	if b.State() != "open" {
		t.Fatalf("State() = %q, want open", b.State())
	}

	called := false
	_, err := b.Execute(func() (string, error) {
		called = true
		return "ok", nil
	})
	if called {
		t.Error("fn was called while breaker open")
	}
	if !IsRejected(err) {
		t.Errorf("error = %v, want rejection", err)
	}
}

func TestBreakerIgnoredErrorsDoNotTrip(t *testing.T) {
	errClient := errors.New("bad input")
	b := New[int]("test-ignore", Settings{
		MinRequests:  2,
		FailureRatio: 0.5,
		Ignore:       func(err error) bool { return errors.Is(err, errClient) },
	})

	for i := 0; i < 10; i++ {
		_, err := b.Execute(func() (int, error) { return 0, errClient })
		if !errors.Is(err, errClient) {
			t.Fatalf("Execute() error = %v, want errClient passed through", err)
		}
	}
	if b.State() != "closed" {
		t.Errorf("State() = %q, want closed", b.State())
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state gobreaker.State
		want  string
	}{
		{gobreaker.StateClosed, "closed"},
		{gobreaker.StateHalfOpen, "half-open"},
		{gobreaker.StateOpen, "open"},
		{gobreaker.State(99), "unknown"},
	}
	for _, tt := range tests {
		if got := StateString(tt.state); got != tt.want {
			t.Errorf("StateString(%v) = %q, want %q", tt.state, got, tt.want)
		}
	}
}
