package domain

import (
	"errors"
	"fmt"
)

// Search failure taxonomy. Every failed attempt carries exactly one of these kinds.
var (
	// ErrValidation signals a user-correctable selection problem.
	ErrValidation = errors.New("validation error")
	// ErrLocationUnavailable signals that device coordinates could not be acquired
	// (permission denied, unsupported, timeout).
	ErrLocationUnavailable = errors.New("location unavailable")
	// ErrNetwork signals a transport-level failure talking to the recommendation service.
	ErrNetwork = errors.New("network error")
	// ErrService signals a failure reported by the recommendation service itself.
	ErrService = errors.New("service error")
	// ErrNoMatches signals a well-formed response with no restaurants.
	ErrNoMatches = errors.New("no matches")
)

// Validation messages shown to the user as-is.
const (
	MsgNoCuisine = "select at least one cuisine"
	MsgNoMatches = "no restaurants match your preferences"
)

// SearchError is the payload of a failed search attempt.
type SearchError struct {
	Kind    error  // one of the taxonomy sentinels
	Message string // user-facing message
	Err     error  // underlying cause, may be nil
}

func (e *SearchError) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	default:
		return e.Kind.Error()
	}
}

// Unwrap exposes both the kind sentinel and the cause to errors.Is/As.
func (e *SearchError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// NewValidationError creates a ValidationError with a user-facing message.
func NewValidationError(msg string) *SearchError {
	return &SearchError{Kind: ErrValidation, Message: msg}
}

// NewLocationError wraps a geolocation failure.
func NewLocationError(reason string, cause error) *SearchError {
	return &SearchError{Kind: ErrLocationUnavailable, Message: reason, Err: cause}
}

// NewNetworkError wraps a transport failure.
func NewNetworkError(cause error) *SearchError {
	return &SearchError{Kind: ErrNetwork, Message: "could not reach the recommendation service", Err: cause}
}

// NewServiceError carries a server-supplied message.
func NewServiceError(msg string) *SearchError {
	return &SearchError{Kind: ErrService, Message: msg}
}

// NewNoMatchesError reports an empty result set.
func NewNoMatchesError() *SearchError {
	return &SearchError{Kind: ErrNoMatches, Message: MsgNoMatches}
}

var kinds = []error{ErrValidation, ErrLocationUnavailable, ErrNetwork, ErrService, ErrNoMatches}

// Coerce maps any error onto the taxonomy. Errors already carrying a kind are returned
// unchanged; anything else becomes a NetworkError. Returns nil for nil.
func Coerce(err error) *SearchError {
	if err == nil {
		return nil
	}
	var se *SearchError
	if errors.As(err, &se) && se.Kind != nil {
		return se
	}
	for _, k := range kinds {
		if errors.Is(err, k) {
			return &SearchError{Kind: k, Err: err}
		}
	}
	return NewNetworkError(err)
}

// KindName returns a stable label for the error kind (used in logs and metrics).
func KindName(err error) string {
	switch {
	case err == nil:
		return "none"
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrLocationUnavailable):
		return "location_unavailable"
	case errors.Is(err, ErrService):
		return "service"
	case errors.Is(err, ErrNoMatches):
		return "no_matches"
	default:
		return "network"
	}
}
