// Package metrics provides Prometheus instrumentation for the catalog.
// All metrics are prefixed with "raidho_" and registered with the default
// registry via promauto; mount promhttp.Handler() to expose them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Indexing metrics
var (
	IndexRunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "raidho_index_runs_total",
			Help: "Total number of indexing runs",
		},
		[]string{"status"},
	)

	IndexFilesInserted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "raidho_index_files_inserted_total",
			Help: "Total number of file rows inserted by indexing runs",
		},
	)

	IndexRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "raidho_index_run_duration_seconds",
			Help:    "Duration of indexing runs (scan plus save)",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 10),
		},
	)

	IndexStaleResults = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "raidho_index_stale_results_total",
			Help: "Completed runs discarded because a newer run superseded them",
		},
	)
)

// Query metrics
var (
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "raidho_queries_total",
			Help: "Total number of catalog queries",
		},
		[]string{"operation"},
	)

	QueryCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "raidho_query_cache_hits_total",
			Help: "Search pages served from the cached result set",
		},
	)

	QueryCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "raidho_query_cache_misses_total",
			Help: "Search pages that had to query the store",
		},
	)
)
