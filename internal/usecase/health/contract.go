package health

import "context"

// CachePinger checks recommendation cache availability.
type CachePinger interface {
	Ping(ctx context.Context) error
}

// RecommendationChecker checks recommendation service availability.
type RecommendationChecker interface {
	HealthCheck(ctx context.Context) error
}
