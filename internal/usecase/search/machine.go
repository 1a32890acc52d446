package search

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/zoto/internal/domain"
	"github.com/kailas-cloud/zoto/internal/domain/preference"
	"github.com/kailas-cloud/zoto/internal/domain/search/phase"
	"github.com/kailas-cloud/zoto/internal/domain/search/request"
	"github.com/kailas-cloud/zoto/internal/domain/search/result"
	"github.com/kailas-cloud/zoto/internal/metrics"
)

// msgLocationFailed is used when the locator fails outside the error taxonomy.
const msgLocationFailed = "could not determine your location"

// State is a snapshot of the machine's phase and payload.
// Restaurants is set only in Success, Err only in Failed.
type State struct {
	Phase       phase.Phase
	Restaurants []result.Restaurant
	Err         *domain.SearchError
	Attempt     uint64
	UpdatedAt   time.Time
}

func (s State) clone() State {
	s.Restaurants = result.CloneAll(s.Restaurants)
	return s
}

// Listener observes every transition, in order.
type Listener func(State)

// Machine drives one search attempt at a time:
// Idle → Validating → Locating → Requesting → Success | Failed.
type Machine struct {
	locator         Locator
	recommender     Recommender
	locationTimeout time.Duration
	logger          *zap.Logger

	// notifyMu is taken before mu and held until listeners return, so
	// transitions of consecutive attempts reach listeners in order.
	notifyMu  sync.Mutex
	mu        sync.Mutex
	state     State
	listeners []Listener
}

// New creates a machine in the Idle phase.
// locationTimeout <= 0 leaves the bound to the locator's default.
func New(locator Locator, recommender Recommender, locationTimeout time.Duration, logger *zap.Logger) *Machine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Machine{
		locator:         locator,
		recommender:     recommender,
		locationTimeout: locationTimeout,
		logger:          logger,
		state:           State{Phase: phase.Idle, UpdatedAt: time.Now()},
	}
}

// OnTransition registers a listener. Listeners run synchronously: Validating on the
// goroutine that called Start or StartAsync, later phases on the attempt's goroutine.
// A listener must not call Start or StartAsync.
func (m *Machine) OnTransition(fn Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listeners = append(m.listeners, fn)
}

// State returns a copy of the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.clone()
}

// Start runs a search attempt to completion and reports whether it was accepted.
// A trigger received while an attempt is in flight is ignored and leaves the state unchanged.
func (m *Machine) Start(ctx context.Context, sel *preference.Selection) bool {
	done, ok := m.StartAsync(ctx, sel)
	if !ok {
		return false
	}
	<-done
	return true
}

// StartAsync enters Validating and runs the rest of the attempt in a new goroutine.
// The returned channel receives the terminal state and is then closed.
// The selection is snapshotted before StartAsync returns.
func (m *Machine) StartAsync(ctx context.Context, sel *preference.Selection) (<-chan State, bool) {
	snapshot, attempt, ok := m.begin(sel)
	if !ok {
		return nil, false
	}
	done := make(chan State, 1)
	go func() {
		defer close(done)
		done <- m.run(ctx, snapshot, attempt)
	}()
	return done, true
}

func (m *Machine) begin(sel *preference.Selection) (*preference.Selection, uint64, bool) {
	// Fast path: an in-flight attempt is rejected without waiting on listeners.
	if current := m.State().Phase; !current.CanStart() {
		m.ignored(current)
		return nil, 0, false
	}

	m.notifyMu.Lock()
	defer m.notifyMu.Unlock()

	m.mu.Lock()
	if !m.state.Phase.CanStart() {
		current := m.state.Phase
		m.mu.Unlock()
		m.ignored(current)
		return nil, 0, false
	}
	attempt := m.state.Attempt + 1
	next, listeners := m.setLocked(State{Phase: phase.Validating, Attempt: attempt})
	snapshot := sel.Clone()
	m.mu.Unlock()

	notify(listeners, next)
	return snapshot, attempt, true
}

func (m *Machine) ignored(current phase.Phase) {
	metrics.SearchIgnoredTotal.Inc()
	m.logger.Debug("Search trigger ignored, attempt in flight", zap.String("phase", string(current)))
}

func (m *Machine) run(ctx context.Context, sel *preference.Selection, attempt uint64) State {
	started := time.Now()
	stepStart := started

	// Validating
	if len(sel.Cuisines()) == 0 {
		m.observe(phase.Validating, stepStart)
		return m.fail(attempt, started, domain.NewValidationError(domain.MsgNoCuisine))
	}
	m.observe(phase.Validating, stepStart)

	// Locating
	stepStart = m.transition(phase.Locating, attempt)
	coords, err := m.locator.Acquire(ctx, m.locationTimeout)
	m.observe(phase.Locating, stepStart)
	if err != nil {
		se := domain.Coerce(err)
		if !errors.Is(se, domain.ErrLocationUnavailable) {
			se = domain.NewLocationError(msgLocationFailed, err)
		}
		return m.fail(attempt, started, se)
	}

	// Requesting
	stepStart = m.transition(phase.Requesting, attempt)
	req := request.Build(sel, coords, sel.Craving())
	restaurants, err := m.recommender.Fetch(ctx, req)
	m.observe(phase.Requesting, stepStart)
	if err != nil {
		return m.fail(attempt, started, domain.Coerce(err))
	}
	if len(restaurants) == 0 {
		return m.fail(attempt, started, domain.NewNoMatchesError())
	}

	final := m.set(State{
		Phase:       phase.Success,
		Restaurants: result.CloneAll(restaurants),
		Attempt:     attempt,
	})
	metrics.SearchAttemptsTotal.WithLabelValues("success").Inc()
	m.logger.Info("Search succeeded",
		zap.Uint64("attempt", attempt),
		zap.Int("restaurants", len(restaurants)),
		zap.Duration("duration", time.Since(started)),
	)
	return final
}

func (m *Machine) fail(attempt uint64, started time.Time, se *domain.SearchError) State {
	final := m.set(State{Phase: phase.Failed, Err: se, Attempt: attempt})
	kind := domain.KindName(se)
	metrics.SearchAttemptsTotal.WithLabelValues(kind).Inc()
	m.logger.Warn("Search failed",
		zap.Uint64("attempt", attempt),
		zap.String("kind", kind),
		zap.String("message", se.Message),
		zap.Duration("duration", time.Since(started)),
		zap.Error(se.Err),
	)
	return final
}

func (m *Machine) transition(p phase.Phase, attempt uint64) time.Time {
	s := m.set(State{Phase: p, Attempt: attempt})
	return s.UpdatedAt
}

func (m *Machine) set(s State) State {
	m.notifyMu.Lock()
	defer m.notifyMu.Unlock()

	m.mu.Lock()
	next, listeners := m.setLocked(s)
	m.mu.Unlock()
	notify(listeners, next)
	return next
}

// setLocked replaces the state wholesale. Caller holds m.mu.
func (m *Machine) setLocked(s State) (State, []Listener) {
	s.UpdatedAt = time.Now()
	m.state = s
	return s.clone(), append([]Listener(nil), m.listeners...)
}

func (m *Machine) observe(p phase.Phase, since time.Time) {
	metrics.SearchPhaseDuration.WithLabelValues(string(p)).Observe(time.Since(since).Seconds())
}

func notify(listeners []Listener, s State) {
	for _, fn := range listeners {
		fn(s.clone())
	}
}
