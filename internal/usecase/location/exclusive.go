package location

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/kailas-cloud/zoto/internal/domain"
	"github.com/kailas-cloud/zoto/internal/domain/geo"
	"github.com/kailas-cloud/zoto/internal/metrics"
)

// Acquirer acquires coordinates with a bounded wait. *Service implements it.
type Acquirer interface {
	Acquire(ctx context.Context, timeout time.Duration) (geo.Coordinates, error)
}

// Exclusive allows one outstanding request through it at a time. A second
// call while one is pending fails with ReasonBusy instead of queueing.
// Give each session its own Exclusive over a shared Service.
type Exclusive struct {
	inner    Acquirer
	provider string
	busy     atomic.Bool
}

// NewExclusive wraps inner.
func NewExclusive(inner Acquirer) *Exclusive {
	name := "custom"
	if s, ok := inner.(*Service); ok {
		name = s.provider.Name()
	}
	return &Exclusive{inner: inner, provider: name}
}

// Acquire delegates to the wrapped acquirer unless a request is already pending.
func (e *Exclusive) Acquire(ctx context.Context, timeout time.Duration) (geo.Coordinates, error) {
	if !e.busy.CompareAndSwap(false, true) {
		metrics.LocationRequestsTotal.WithLabelValues(e.provider, "busy").Inc()
		return geo.Coordinates{}, domain.NewLocationError(ReasonBusy, nil)
	}
	defer e.busy.Store(false)
	return e.inner.Acquire(ctx, timeout)
}
