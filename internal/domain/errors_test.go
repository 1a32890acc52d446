package domain

import (
	"errors"
	"fmt"
	"testing"
)

func TestSearchError_IsKind(t *testing.T) {
	tests := []struct {
		name string
		err  *SearchError
		kind error
	}{
		{"validation", NewValidationError(MsgNoCuisine), ErrValidation},
		{"location", NewLocationError("permission denied", nil), ErrLocationUnavailable},
		{"network", NewNetworkError(errors.New("dial tcp: refused")), ErrNetwork},
		{"service", NewServiceError("upstream exploded"), ErrService},
		{"no matches", NewNoMatchesError(), ErrNoMatches},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if !errors.Is(tc.err, tc.kind) {
				t.Errorf("errors.Is(%v, %v) = false", tc.err, tc.kind)
			}
			for _, other := range kinds {
				if other != tc.kind && errors.Is(tc.err, other) {
					t.Errorf("%v unexpectedly matches %v", tc.err, other)
				}
			}
		})
	}
}

func TestSearchError_UnwrapsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewNetworkError(cause)

	if !errors.Is(err, cause) {
		t.Error("expected cause to be reachable via errors.Is")
	}
}

func TestSearchError_Message(t *testing.T) {
	err := NewValidationError(MsgNoCuisine)
	want := "validation error: select at least one cuisine"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestCoerce(t *testing.T) {
	t.Run("nil", func(t *testing.T) {
		if Coerce(nil) != nil {
			t.Error("expected nil")
		}
	})

	t.Run("search error passes through", func(t *testing.T) {
		orig := NewServiceError("boom")
		if got := Coerce(fmt.Errorf("fetch: %w", orig)); got != orig {
			t.Errorf("expected the original SearchError, got %v", got)
		}
	})

	t.Run("wrapped sentinel keeps kind", func(t *testing.T) {
		got := Coerce(fmt.Errorf("acquire: %w", ErrLocationUnavailable))
		if !errors.Is(got, ErrLocationUnavailable) {
			t.Errorf("expected location kind, got %v", got)
		}
	})

	t.Run("unknown defaults to network", func(t *testing.T) {
		got := Coerce(errors.New("something odd"))
		if !errors.Is(got, ErrNetwork) {
			t.Errorf("expected network kind, got %v", got)
		}
	})
}

func TestKindName(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, "none"},
		{NewValidationError("x"), "validation"},
		{NewLocationError("x", nil), "location_unavailable"},
		{NewNetworkError(nil), "network"},
		{NewServiceError("x"), "service"},
		{NewNoMatchesError(), "no_matches"},
		{errors.New("other"), "network"},
	}
	for _, tc := range tests {
		if got := KindName(tc.err); got != tc.want {
			t.Errorf("KindName(%v) = %q, want %q", tc.err, got, tc.want)
		}
	}
}
