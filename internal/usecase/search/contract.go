package search

import (
	"context"
	"time"

	"github.com/kailas-cloud/zoto/internal/domain/geo"
	"github.com/kailas-cloud/zoto/internal/domain/search/request"
	"github.com/kailas-cloud/zoto/internal/domain/search/result"
)

// Locator acquires device coordinates for one attempt.
type Locator interface {
	Acquire(ctx context.Context, timeout time.Duration) (geo.Coordinates, error)
}

// Recommender performs a single round-trip to the recommendation service.
type Recommender interface {
	Fetch(ctx context.Context, req request.Request) ([]result.Restaurant, error)
}
