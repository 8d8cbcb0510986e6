package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SearchesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "address_searches_total",
			Help: "Total number of address search submissions",
		},
	)

	SearchFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "address_search_failures_total",
			Help: "Total number of failed address searches by error code",
		},
		[]string{"error_code"},
	)

	SearchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "address_search_duration_seconds",
			Help: "Duration of address search submissions in seconds",
		},
	)

	LookupCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "address_lookup_cache_hits_total",
			Help: "Total number of lookup responses served from cache",
		},
	)

	EntriesSaved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "address_book_entries_saved_total",
			Help: "Total number of entries handed to the address book store",
		},
	)

	PersonFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "person_assignment_failures_total",
			Help: "Total number of failed person assignments by error code",
		},
		[]string{"error_code"},
	)
)
