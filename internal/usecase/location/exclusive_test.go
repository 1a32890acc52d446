package location

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/kailas-cloud/zoto/internal/domain/geo"
)

func waitForCalls(p *mockProvider, n int32) {
	deadline := time.Now().Add(time.Second)
	for p.calls.Load() < n && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
}

func TestExclusive_OneOutstandingRequest(t *testing.T) {
	p := &mockProvider{delay: 100 * time.Millisecond}
	ex := NewExclusive(New(p, 0, nil))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := ex.Acquire(context.Background(), time.Second); err != nil {
			t.Errorf("first acquire failed: %v", err)
		}
	}()
	waitForCalls(p, 1)

	_, err := ex.Acquire(context.Background(), time.Second)
	if got := reasonOf(t, err); got != ReasonBusy {
		t.Errorf("reason = %q, want %q", got, ReasonBusy)
	}
	wg.Wait()

	if p.calls.Load() != 1 {
		t.Errorf("expected 1 provider call, got %d", p.calls.Load())
	}

	// released after completion
	if _, err := ex.Acquire(context.Background(), time.Second); err != nil {
		t.Errorf("acquire after release failed: %v", err)
	}
}

func TestExclusive_IndependentHoldersShareService(t *testing.T) {
	p := &mockProvider{coords: geo.Coordinates{Latitude: 12.9, Longitude: 77.6}, delay: 100 * time.Millisecond}
	svc := New(p, 0, nil)
	a, b := NewExclusive(svc), NewExclusive(svc)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if _, err := a.Acquire(context.Background(), time.Second); err != nil {
			t.Errorf("holder a failed: %v", err)
		}
	}()
	waitForCalls(p, 1)

	if _, err := b.Acquire(context.Background(), time.Second); err != nil {
		t.Errorf("holder b must not see a's pending request: %v", err)
	}
	wg.Wait()

	if p.calls.Load() != 2 {
		t.Errorf("expected 2 provider calls, got %d", p.calls.Load())
	}
}

func TestExclusive_ProviderLabel(t *testing.T) {
	if got := NewExclusive(New(&mockProvider{}, 0, nil)).provider; got != "mock" {
		t.Errorf("provider = %q", got)
	}
	other := NewExclusive(acquirerFunc(func(context.Context, time.Duration) (geo.Coordinates, error) {
		return geo.Coordinates{}, nil
	}))
	if other.provider != "custom" {
		t.Errorf("provider = %q, want custom", other.provider)
	}
}

type acquirerFunc func(context.Context, time.Duration) (geo.Coordinates, error)

func (f acquirerFunc) Acquire(ctx context.Context, timeout time.Duration) (geo.Coordinates, error) {
	return f(ctx, timeout)
}
