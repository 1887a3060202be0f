package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests handled",
		},
		[]string{"route"},
	)

	APIRequestsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_failed_total",
			Help: "Total number of API requests that returned an error",
		},
		[]string{"route", "error_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "api_request_duration_seconds",
			Help: "Duration of API request handling in seconds",
		},
		[]string{"route"},
	)

	GenerationCallDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "generation_call_duration_seconds",
			Help: "Duration of external generation calls in seconds",
		},
		[]string{"operation"},
	)

	ExtractionCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "extraction_cache_hits_total",
			Help: "Extraction cache lookups by outcome",
		},
		[]string{"outcome"},
	)
)
