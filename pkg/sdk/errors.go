package zoto

import (
	"errors"

	"github.com/kailas-cloud/zoto/internal/domain"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrValidation          = domain.ErrValidation
	ErrLocationUnavailable = domain.ErrLocationUnavailable
	ErrNetwork             = domain.ErrNetwork
	ErrService             = domain.ErrService
	ErrNoMatches           = domain.ErrNoMatches
)

// ErrSearchInFlight is returned by Session.Search while another search on
// the same session is running.
var ErrSearchInFlight = errors.New("zoto: search already in progress")
