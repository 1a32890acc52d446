package zoto

import (
	"context"
	"time"

	"github.com/kailas-cloud/zoto/internal/usecase/search"
	sessionuc "github.com/kailas-cloud/zoto/internal/usecase/session"
)

// Session holds one preference selection and its search state.
// Methods are safe for concurrent use.
type Session struct {
	inner    *sessionuc.Session
	registry *sessionuc.Registry
	obs      *observer
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.inner.ID }

// Toggle adds value to a set field (tastes, cuisines, dietary) or removes it if present.
// Unknown fields or values fail with ErrValidation.
func (s *Session) Toggle(field Field, value string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("toggle", start, err, "field", string(field)) }()
	return s.inner.Toggle(string(field), value) //nolint:wrapcheck // domain error carries the kind
}

// Select replaces a single-valued field (mood, mealType, budget).
// An empty value clears mood and meal type and resets budget to medium.
func (s *Session) Select(field Field, value string) (err error) {
	start := time.Now()
	defer func() { s.obs.observe("select", start, err, "field", string(field)) }()
	return s.inner.Select(string(field), value) //nolint:wrapcheck // domain error carries the kind
}

// SetCraving sets the free-text food preference sent with the next search.
func (s *Session) SetCraving(text string) {
	s.inner.SetCraving(text)
}

// Selection returns a copy of the current preferences.
func (s *Session) Selection() Selection {
	v := s.inner.Selection()
	return Selection{
		Mood:     v.Mood,
		Tastes:   v.Tastes,
		Cuisines: v.Cuisines,
		Dietary:  v.Dietary,
		MealType: v.MealType,
		Budget:   v.Budget,
		Craving:  v.Craving,
	}
}

// State returns the current search state.
func (s *Session) State() State {
	return stateFromDomain(s.inner.State())
}

// Search runs one attempt to completion. The returned error equals State.Err
// when the attempt failed. If a search is already running on this session
// the current state is returned with ErrSearchInFlight.
func (s *Session) Search(ctx context.Context) (State, error) {
	start := time.Now()
	st, accepted := s.inner.Search(ctx)
	state := stateFromDomain(st)
	if !accepted {
		s.obs.observe("search", start, ErrSearchInFlight, "session_id", s.inner.ID)
		return state, ErrSearchInFlight
	}

	s.obs.observe("search", start, state.Err,
		"session_id", s.inner.ID,
		"attempt", state.Attempt,
		"restaurants", len(state.Restaurants),
	)
	s.obs.observeSearch(state.Err)
	return state, state.Err
}

// Close forgets the session. Further calls still work but the client no longer counts it.
func (s *Session) Close() {
	_ = s.registry.Delete(s.inner.ID)
}

func stateFromDomain(st search.State) State {
	out := State{
		Phase:       Phase(st.Phase),
		Attempt:     st.Attempt,
		Restaurants: restaurantsFromDomain(st.Restaurants),
		UpdatedAt:   st.UpdatedAt,
	}
	if st.Err != nil {
		out.Err = st.Err
	}
	return out
}
