// Package observability provides Prometheus metrics and OpenTelemetry tracing
// for the application.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthFailuresTotal counts failed authentication attempts by reason.
	AuthFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_auth_failures_total",
		Help: "Total number of failed authentication attempts by reason",
	}, []string{"reason"})

	// DatabaseQueryLatency records database query latency by operation and table.
	DatabaseQueryLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "inkwell_database_query_latency_seconds",
		Help:    "Database query latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation", "table"})

	// PostViewsTotal counts successful post view-count increments.
	PostViewsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_post_views_total",
		Help: "Total number of recorded post views",
	})

	// ViewCountErrorsTotal counts failed view-count increments. These are
	// logged but never surfaced to the reader.
	ViewCountErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inkwell_view_count_errors_total",
		Help: "Total number of failed post view-count increments",
	})

	// FavoriteTogglesTotal counts favorite toggles by resulting state.
	FavoriteTogglesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_favorite_toggles_total",
		Help: "Total number of favorite toggles by resulting state",
	}, []string{"state"})

	// RedisErrorRate counts Redis errors by operation type.
	RedisErrorRate = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "inkwell_redis_error_rate_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})
)

// RecordAuthFailure increments the auth failure counter for the given reason.
func RecordAuthFailure(reason string) {
	AuthFailuresTotal.WithLabelValues(reason).Inc()
}

// RecordFavoriteToggle increments the toggle counter for the resulting state.
func RecordFavoriteToggle(favorited bool) {
	state := "removed"
	if favorited {
		state = "added"
	}
	FavoriteTogglesTotal.WithLabelValues(state).Inc()
}

// RecordRedisError increments the Redis error counter for the given operation.
func RecordRedisError(operation string) {
	RedisErrorRate.WithLabelValues(operation).Inc()
}

// ObserveQuery records the latency of a database query.
func ObserveQuery(operation, table string, elapsed time.Duration) {
	DatabaseQueryLatency.WithLabelValues(operation, table).Observe(elapsed.Seconds())
}
