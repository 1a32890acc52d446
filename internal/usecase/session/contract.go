package session

import (
	"context"
	"errors"
	"time"

	"github.com/kailas-cloud/zoto/internal/domain/geo"
	"github.com/kailas-cloud/zoto/internal/domain/search/request"
	"github.com/kailas-cloud/zoto/internal/domain/search/result"
)

// ErrNotFound is returned for unknown or expired session ids.
var ErrNotFound = errors.New("session not found")

// Locator acquires device coordinates (see usecase/location). It must be safe for concurrent use.
type Locator interface {
	Acquire(ctx context.Context, timeout time.Duration) (geo.Coordinates, error)
}

// Recommender fetches restaurants (see transport/recommend, repository/reccache).
type Recommender interface {
	Fetch(ctx context.Context, req request.Request) ([]result.Restaurant, error)
}
