package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Derivation
	DerivationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "facet_deriver_derivations_total",
		Help: "Total number of derived deposit transactions",
	})
	DerivationErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "facet_deriver_derivation_errors_total",
		Help: "Total number of failed derivations by error category",
	}, []string{"category"})
	DerivationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "facet_deriver_derivation_duration_seconds",
		Help:    "Duration of a single derivation, chain access included",
		Buckets: prometheus.DefBuckets,
	})

	// Indexer
	IndexerMessagesProcessed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "facet_deriver_indexer_messages_processed_total",
		Help: "Total number of derivation requests processed by the indexer",
	})
	IndexerMessagesFailed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "facet_deriver_indexer_messages_failed_total",
		Help: "Total number of derivation requests the indexer failed to process",
	})

	// API
	APIDerivationCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "facet_deriver_api_cache_hits_total",
		Help: "Total number of deposit lookups served from the in-memory cache",
	})
	APIRepositoryHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "facet_deriver_api_repository_hits_total",
		Help: "Total number of deposit lookups served from the database",
	})
)
