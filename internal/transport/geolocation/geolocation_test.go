package geolocation

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kailas-cloud/zoto/internal/domain/geo"
)

func TestStatic_Locate(t *testing.T) {
	p, err := NewStatic(12.9, 77.6)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c, err := p.Locate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Latitude != 12.9 || c.Longitude != 77.6 {
		t.Errorf("got %v", c)
	}
	if p.Name() != "static" {
		t.Errorf("Name() = %q", p.Name())
	}
}

func TestStatic_RejectsInvalid(t *testing.T) {
	if _, err := NewStatic(91, 0); err == nil {
		t.Error("expected error for latitude 91")
	}
}

func TestStatic_CancelledContext(t *testing.T) {
	p, _ := NewStatic(0, 0)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Locate(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestUnavailable(t *testing.T) {
	if _, err := (Unavailable{}).Locate(context.Background()); !errors.Is(err, geo.ErrUnsupported) {
		t.Errorf("expected ErrUnsupported, got %v", err)
	}
	denied := Unavailable{Reason: geo.ErrPermissionDenied}
	if _, err := denied.Locate(context.Background()); !errors.Is(err, geo.ErrPermissionDenied) {
		t.Errorf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestIPAPI_Locate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"ip":"1.2.3.4","city":"Bengaluru","latitude":12.9716,"longitude":77.5946}`))
	}))
	defer server.Close()

	p := NewIPAPI(&IPAPIConfig{URL: server.URL, HTTPClient: server.Client()})
	c, err := p.Locate(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Latitude != 12.9716 || c.Longitude != 77.5946 {
		t.Errorf("got %v", c)
	}
}

func TestIPAPI_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		target error
	}{
		{"forbidden", http.StatusForbidden, ``, geo.ErrPermissionDenied},
		{"unauthorized", http.StatusUnauthorized, ``, geo.ErrPermissionDenied},
		{"refused", http.StatusOK, `{"error":true,"reason":"Reserved IP Address"}`, geo.ErrUnsupported},
		{"server error", http.StatusInternalServerError, ``, nil},
		{"no coordinates", http.StatusOK, `{"city":"nowhere"}`, nil},
		{"out of range", http.StatusOK, `{"latitude":123,"longitude":0}`, nil},
		{"malformed", http.StatusOK, `{"latitude":`, nil},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			_, err := NewIPAPI(&IPAPIConfig{URL: server.URL}).Locate(context.Background())
			if err == nil {
				t.Fatal("expected error")
			}
			if tc.target != nil && !errors.Is(err, tc.target) {
				t.Errorf("expected %v, got %v", tc.target, err)
			}
		})
	}
}

func TestFunc(t *testing.T) {
	want := geo.Coordinates{Latitude: 1, Longitude: 2}
	f := Func(func(context.Context) (geo.Coordinates, error) { return want, nil })
	got, err := f.Locate(context.Background())
	if err != nil || got != want {
		t.Errorf("got (%v, %v)", got, err)
	}
}
