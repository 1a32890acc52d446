package metrics

import "github.com/prometheus/client_golang/prometheus"

// Search pipeline Prometheus metrics.
var (
	SearchAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "zoto",
			Name:      "search_attempts_total",
			Help:      "Total search attempts by outcome",
		},
		[]string{"outcome"}, // "success" / error kind
	)

	SearchIgnoredTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "zoto",
			Name:      "search_ignored_total",
			Help:      "Search triggers ignored because an attempt was already in flight",
		},
	)

	SearchPhaseDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "zoto",
			Name:      "search_phase_duration_seconds",
			Help:      "Time spent in each non-terminal search phase",
			Buckets:   []float64{0.001, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"phase"},
	)

	RecommendationRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "zoto",
			Name:      "recommendation_requests_total",
			Help:      "Total requests to the recommendation service",
		},
		[]string{"status"}, // "success" / error kind
	)

	RecommendationRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "zoto",
			Name:      "recommendation_request_duration_seconds",
			Help:      "Recommendation service request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"status"},
	)

	LocationRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "zoto",
			Name:      "location_requests_total",
			Help:      "Total geolocation acquisitions by provider and status",
		},
		[]string{"provider", "status"},
	)

	RecommendationCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "zoto",
			Name:      "recommendation_cache_total",
			Help:      "Recommendation cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	ActiveSessions = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "zoto",
			Name:      "active_sessions",
			Help:      "Number of live search sessions",
		},
	)
)

var searchMetricsRegistered bool

// RegisterSearchMetrics registers Prometheus search metrics. Must be called once from main.
func RegisterSearchMetrics() {
	if searchMetricsRegistered {
		return
	}
	prometheus.MustRegister(SearchAttemptsTotal)
	prometheus.MustRegister(SearchIgnoredTotal)
	prometheus.MustRegister(SearchPhaseDuration)
	prometheus.MustRegister(RecommendationRequestsTotal)
	prometheus.MustRegister(RecommendationRequestDuration)
	prometheus.MustRegister(LocationRequestsTotal)
	prometheus.MustRegister(RecommendationCacheTotal)
	prometheus.MustRegister(ActiveSessions)
	searchMetricsRegistered = true
}
