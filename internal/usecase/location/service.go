package location

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/zoto/internal/domain"
	"github.com/kailas-cloud/zoto/internal/domain/geo"
	"github.com/kailas-cloud/zoto/internal/metrics"
)

// DefaultTimeout bounds a single location request.
const DefaultTimeout = 5 * time.Second

// User-facing failure reasons.
const (
	ReasonPermissionDenied = "location permission denied"
	ReasonUnsupported      = "location is not available on this device"
	ReasonTimeout          = "timed out waiting for location"
	ReasonBusy             = "a location request is already pending"
	ReasonFailed           = "could not determine your location"
	ReasonInvalid          = "location provider returned invalid coordinates"
)

// Service acquires device coordinates with a bounded wait and no retries.
// It is safe to share between sessions; wrap it in an Exclusive per session
// to limit that session to one outstanding request.
type Service struct {
	provider Provider
	timeout  time.Duration
	logger   *zap.Logger
}

// New creates a location service. timeout <= 0 means DefaultTimeout.
func New(provider Provider, timeout time.Duration, logger *zap.Logger) *Service {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{provider: provider, timeout: timeout, logger: logger}
}

// Timeout returns the default bound used when Acquire gets a non-positive timeout.
func (s *Service) Timeout() time.Duration { return s.timeout }

type outcome struct {
	coords geo.Coordinates
	err    error
}

// Acquire returns the current coordinates or a LocationUnavailable *domain.SearchError.
// The wait is bounded by timeout even if the provider ignores its context.
func (s *Service) Acquire(ctx context.Context, timeout time.Duration) (geo.Coordinates, error) {
	if timeout <= 0 {
		timeout = s.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	// Buffered: an abandoned provider call must not leak a blocked goroutine.
	ch := make(chan outcome, 1)
	go func() {
		c, err := s.provider.Locate(ctx)
		ch <- outcome{coords: c, err: err}
	}()

	var o outcome
	select {
	case o = <-ch:
	case <-ctx.Done():
		o = outcome{err: ctx.Err()}
	}

	if o.err != nil {
		reason, status := classify(o.err)
		s.record(status)
		s.logger.Warn("Location unavailable",
			zap.String("provider", s.provider.Name()),
			zap.String("reason", reason),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(o.err),
		)
		return geo.Coordinates{}, domain.NewLocationError(reason, o.err)
	}
	if !o.coords.Valid() {
		s.record("invalid")
		return geo.Coordinates{}, domain.NewLocationError(ReasonInvalid, nil)
	}

	s.record("success")
	s.logger.Debug("Location acquired",
		zap.String("provider", s.provider.Name()),
		zap.Duration("elapsed", time.Since(start)),
	)
	return o.coords, nil
}

func (s *Service) record(status string) {
	metrics.LocationRequestsTotal.WithLabelValues(s.provider.Name(), status).Inc()
}

func classify(err error) (reason, status string) {
	switch {
	case errors.Is(err, geo.ErrPermissionDenied):
		return ReasonPermissionDenied, "denied"
	case errors.Is(err, geo.ErrUnsupported):
		return ReasonUnsupported, "unsupported"
	case errors.Is(err, context.DeadlineExceeded):
		return ReasonTimeout, "timeout"
	default:
		return ReasonFailed, "error"
	}
}
