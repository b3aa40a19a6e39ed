package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ProviderFetchTotal counts rate fetch attempts per provider and outcome.
	ProviderFetchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bbcurrency_provider_fetch_total",
			Help: "Total number of rate fetch attempts, labelled by provider and outcome.",
		},
		[]string{"provider", "outcome"},
	)

	// ProviderFetchDuration observes the latency of provider fetches.
	ProviderFetchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "bbcurrency_provider_fetch_duration_seconds",
			Help:    "Duration of rate fetches against upstream providers.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)

	// RatesStoredTotal counts exchange rate rows written to storage.
	RatesStoredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bbcurrency_rates_stored_total",
			Help: "Total number of exchange rate rows persisted.",
		},
	)
)

// Outcome label values for ProviderFetchTotal.
const (
	OutcomeSuccess = "success"
	OutcomeMiss    = "miss"
	OutcomeError   = "error"
)
