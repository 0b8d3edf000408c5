package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests.",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// ExtractionsTotal counts extraction requests by how they were answered:
	// heuristic, fallback, placeholder or cached.
	ExtractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "job_extractions_total",
			Help: "Total number of job extraction requests.",
		},
		[]string{"outcome", "error_type"},
	)

	ExtractionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "job_extraction_duration_seconds",
			Help:    "Duration of page fetch and extraction.",
			Buckets: []float64{0.25, 0.5, 1, 2.5, 5, 10, 15, 30},
		},
		[]string{"domain"},
	)

	CacheLookupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "job_extraction_cache_lookups_total",
			Help: "Extraction result cache lookups by result.",
		},
		[]string{"result"},
	)

	JobsPostedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jobs_posted_total",
			Help: "Total number of job postings created.",
		},
	)
)
