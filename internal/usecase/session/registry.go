// Package session keeps per-user selections and search machines alive between requests.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/kailas-cloud/zoto/internal/domain"
	"github.com/kailas-cloud/zoto/internal/domain/catalog"
	"github.com/kailas-cloud/zoto/internal/domain/preference"
	"github.com/kailas-cloud/zoto/internal/metrics"
	"github.com/kailas-cloud/zoto/internal/usecase/location"
	"github.com/kailas-cloud/zoto/internal/usecase/search"
)

// DefaultTTL is how long an untouched session lives.
const DefaultTTL = 30 * time.Minute

// Config configures a Registry.
type Config struct {
	TTL             time.Duration
	LocationTimeout time.Duration
	Logger          *zap.Logger
}

// Registry holds live sessions. Idle sessions expire after the TTL.
// The locator is shared; each session gets its own one-request-at-a-time gate over it.
type Registry struct {
	sessions    *cache.Cache
	ttl         time.Duration
	locator     Locator
	recommender Recommender
	locTimeout  time.Duration
	logger      *zap.Logger
}

// NewRegistry creates an empty registry.
func NewRegistry(locator Locator, recommender Recommender, cfg Config) *Registry {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	c := cache.New(ttl, ttl/2)
	c.OnEvicted(func(id string, _ any) {
		metrics.ActiveSessions.Dec()
		logger.Debug("Session evicted", zap.String("session_id", id))
	})

	return &Registry{
		sessions:    c,
		ttl:         ttl,
		locator:     locator,
		recommender: recommender,
		locTimeout:  cfg.LocationTimeout,
		logger:      logger,
	}
}

// Create starts a new session with a fresh selection.
func (r *Registry) Create() *Session {
	s := &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		sel:       preference.New(),
		machine:   search.New(location.NewExclusive(r.locator), r.recommender, r.locTimeout, r.logger),
		logger:    r.logger,
	}
	s.machine.OnTransition(func(st search.State) {
		r.logger.Debug("Search phase",
			zap.String("session_id", s.ID),
			zap.String("phase", string(st.Phase)),
			zap.Uint64("attempt", st.Attempt),
		)
	})
	r.sessions.Set(s.ID, s, cache.DefaultExpiration)
	metrics.ActiveSessions.Inc()
	r.logger.Debug("Session created", zap.String("session_id", s.ID))
	return s
}

// Get returns a live session and extends its lifetime.
func (r *Registry) Get(id string) (*Session, error) {
	v, ok := r.sessions.Get(id)
	if !ok {
		return nil, fmt.Errorf("session %q: %w", id, ErrNotFound)
	}
	s := v.(*Session)
	// Re-set to refresh the expiration without firing OnEvicted.
	r.sessions.Set(id, s, cache.DefaultExpiration)
	return s, nil
}

// Delete ends a session.
func (r *Registry) Delete(id string) error {
	if _, ok := r.sessions.Get(id); !ok {
		return fmt.Errorf("session %q: %w", id, ErrNotFound)
	}
	r.sessions.Delete(id)
	return nil
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	return r.sessions.ItemCount()
}

// Session is one user's selection plus its search machine.
// Selection changes are serialized; a search snapshots the selection when triggered.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu      sync.Mutex
	sel     *preference.Selection
	machine *search.Machine
	logger  *zap.Logger
}

// Toggle flips a value in a set field. The field and value must exist in the catalogs.
func (s *Session) Toggle(field, value string) error {
	f := preference.SetField(field)
	switch f {
	case preference.FieldTastes, preference.FieldCuisines, preference.FieldDietary:
	default:
		return domain.NewValidationError(fmt.Sprintf("unknown set field %q", field))
	}
	if err := checkCatalog(field, value); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel.Toggle(f, value)
	return nil
}

// Select replaces a single-valued field. An empty value unsets mood and meal type
// and resets budget to its default.
func (s *Session) Select(field, value string) error {
	f := preference.SingleField(field)
	switch f {
	case preference.FieldMood, preference.FieldMealType:
		if value != "" {
			if err := checkCatalog(field, value); err != nil {
				return err
			}
		}
	case preference.FieldBudget:
		if value != "" && !catalog.BudgetLevel(value).IsValid() {
			return domain.NewValidationError(fmt.Sprintf("unknown budget %q", value))
		}
	default:
		return domain.NewValidationError(fmt.Sprintf("unknown field %q", field))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel.Select(f, value)
	return nil
}

// SetCraving sets the free-text food preference.
func (s *Session) SetCraving(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sel.SetCraving(text)
}

// Selection returns a serializable copy of the current selection.
func (s *Session) Selection() preference.View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sel.View()
}

// State returns the current search state.
func (s *Session) State() search.State {
	return s.machine.State()
}

// OnTransition registers a search phase listener.
func (s *Session) OnTransition(fn search.Listener) {
	s.machine.OnTransition(fn)
}

// StartSearch triggers a search in the background and reports whether it was accepted.
// The attempt outlives ctx's cancellation but keeps its values.
func (s *Session) StartSearch(ctx context.Context) bool {
	s.mu.Lock()
	_, ok := s.machine.StartAsync(context.WithoutCancel(ctx), s.sel)
	s.mu.Unlock()
	if !ok {
		s.logger.Debug("Search already in flight", zap.String("session_id", s.ID))
	}
	return ok
}

// Search runs an attempt to completion on the caller's goroutine.
func (s *Session) Search(ctx context.Context) (search.State, bool) {
	s.mu.Lock()
	done, ok := s.machine.StartAsync(ctx, s.sel)
	s.mu.Unlock()
	if !ok {
		return s.machine.State(), false
	}
	return <-done, true
}

func checkCatalog(field, value string) error {
	kind, ok := preference.CatalogFor(field)
	if !ok {
		return domain.NewValidationError(fmt.Sprintf("unknown field %q", field))
	}
	if !catalog.Contains(kind, value) {
		return domain.NewValidationError(fmt.Sprintf("unknown %s %q", kind, value))
	}
	return nil
}
