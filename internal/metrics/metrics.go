package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Upstream API
	APIRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "biblioteca_api_requests_total",
		Help: "Total number of upstream API calls by endpoint and outcome.",
	}, []string{"endpoint", "outcome"}) // outcome: ok, cached, error

	APIDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "biblioteca_api_request_duration_seconds",
		Help:    "Duration of upstream API network requests in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})

	// Response cache
	CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "biblioteca_cache_lookups_total",
		Help: "Response cache lookups by result.",
	}, []string{"result"}) // result: hit, miss, stale, error

	CacheWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "biblioteca_cache_writes_total",
		Help: "Response cache writes by result.",
	}, []string{"result"}) // result: ok, error

	// Wishlist
	WishlistSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "biblioteca_wishlist_entries",
		Help: "Number of games currently in the wishlist.",
	})

	WishlistToggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "biblioteca_wishlist_toggles_total",
		Help: "Wishlist toggles by resulting state.",
	}, []string{"state"}) // state: added, removed
)

// RecordAPIDuration records the time taken for an upstream request.
func RecordAPIDuration(endpoint string, start time.Time) {
	APIDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}
