package chi

import (
	"time"

	"github.com/kailas-cloud/zoto/internal/domain"
	"github.com/kailas-cloud/zoto/internal/domain/catalog"
	"github.com/kailas-cloud/zoto/internal/domain/preference"
	"github.com/kailas-cloud/zoto/internal/domain/search/result"
	searchuc "github.com/kailas-cloud/zoto/internal/usecase/search"
)

// ErrorCode is a stable machine-readable error identifier.
type ErrorCode string

// Error codes.
const (
	CodeBadRequest       ErrorCode = "bad_request"
	CodeValidationFailed ErrorCode = "validation_failed"
	CodeSessionNotFound  ErrorCode = "session_not_found"
	CodeUnauthorized     ErrorCode = "unauthorized"
	CodeInternalError    ErrorCode = "internal_error"
)

// ErrorResponse is the body of every non-2xx API response.
type ErrorResponse struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// CatalogResponse lists every option a client may offer.
type CatalogResponse struct {
	Moods     []catalog.Option `json:"moods"`
	Tastes    []catalog.Option `json:"tastes"`
	Cuisines  []catalog.Option `json:"cuisines"`
	Dietary   []catalog.Option `json:"dietary"`
	MealTypes []catalog.Option `json:"meal_types"`
	Budgets   []string         `json:"budgets"`
}

// FieldValueRequest is the body of toggle and select calls.
type FieldValueRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

// CravingRequest is the body of PUT /sessions/{id}/craving.
type CravingRequest struct {
	Text string `json:"text"`
}

// SearchError is the failure payload of a Failed state.
type SearchError struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// StateResponse is the serializable search state.
type StateResponse struct {
	Phase       string              `json:"phase"`
	Attempt     uint64              `json:"attempt"`
	Restaurants []result.Restaurant `json:"restaurants,omitempty"`
	Error       *SearchError        `json:"error,omitempty"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// SessionResponse is a session's selection and current search state.
type SessionResponse struct {
	ID        string          `json:"id"`
	Selection preference.View `json:"selection"`
	State     StateResponse   `json:"state"`
}

// SearchResponse is returned by POST /sessions/{id}/search.
type SearchResponse struct {
	Accepted bool          `json:"accepted"`
	State    StateResponse `json:"state"`
}

func catalogResponse() CatalogResponse {
	levels := catalog.BudgetLevels()
	budgets := make([]string, len(levels))
	for i, b := range levels {
		budgets[i] = string(b)
	}
	return CatalogResponse{
		Moods:     catalog.Moods(),
		Tastes:    catalog.Tastes(),
		Cuisines:  catalog.Cuisines(),
		Dietary:   catalog.Dietary(),
		MealTypes: catalog.MealTypes(),
		Budgets:   budgets,
	}
}

func stateToResponse(s searchuc.State) StateResponse {
	resp := StateResponse{
		Phase:       string(s.Phase),
		Attempt:     s.Attempt,
		Restaurants: s.Restaurants,
		UpdatedAt:   s.UpdatedAt,
	}
	if s.Err != nil {
		msg := s.Err.Message
		if msg == "" {
			msg = s.Err.Kind.Error()
		}
		resp.Error = &SearchError{Kind: domain.KindName(s.Err), Message: msg}
	}
	return resp
}
