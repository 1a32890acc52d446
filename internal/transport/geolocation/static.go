// Package geolocation provides device location sources.
package geolocation

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/zoto/internal/domain/geo"
)

// Static returns fixed, pre-configured coordinates.
type Static struct {
	coords geo.Coordinates
}

// NewStatic creates a static provider. Out-of-range coordinates are rejected.
func NewStatic(lat, lng float64) (*Static, error) {
	c, err := geo.New(lat, lng)
	if err != nil {
		return nil, fmt.Errorf("static location: %w", err)
	}
	return &Static{coords: c}, nil
}

// Locate returns the configured coordinates.
func (s *Static) Locate(ctx context.Context) (geo.Coordinates, error) {
	if err := ctx.Err(); err != nil {
		return geo.Coordinates{}, fmt.Errorf("locate: %w", err)
	}
	return s.coords, nil
}

// Name identifies the provider in logs and metrics.
func (s *Static) Name() string { return "static" }

// Unavailable always fails with the given reason (e.g. geo.ErrUnsupported).
// Used when no location source is configured.
type Unavailable struct {
	Reason error
}

// Locate always fails.
func (u Unavailable) Locate(_ context.Context) (geo.Coordinates, error) {
	if u.Reason == nil {
		return geo.Coordinates{}, geo.ErrUnsupported
	}
	return geo.Coordinates{}, u.Reason
}

// Name identifies the provider in logs and metrics.
func (u Unavailable) Name() string { return "none" }

// Func adapts a function to a provider.
type Func func(ctx context.Context) (geo.Coordinates, error)

// Locate calls f.
func (f Func) Locate(ctx context.Context) (geo.Coordinates, error) { return f(ctx) }

// Name identifies the provider in logs and metrics.
func (f Func) Name() string { return "func" }
