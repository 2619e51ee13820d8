// Package metrics defines the Prometheus instruments for the evaluation API.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Sentiment pipeline metrics
var (
	// SentimentCacheHits counts sentiment requests served from the result cache
	SentimentCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sentiment_cache_hits_total",
			Help: "Sentiment requests served from the in-memory result cache",
		},
	)

	// SentimentCacheMisses counts sentiment requests that reached the provider
	SentimentCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sentiment_cache_misses_total",
			Help: "Sentiment requests that missed the result cache",
		},
	)

	// SentimentCacheSize tracks the current number of cached entries
	SentimentCacheSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "sentiment_cache_size",
			Help: "Current number of entries in the sentiment result cache",
		},
	)

	// SentimentRateLimited counts requests rejected by the sliding-window limiter
	SentimentRateLimited = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sentiment_rate_limited_total",
			Help: "Sentiment requests rejected by the per-client rate limiter",
		},
	)

	// SentimentProviderRequests counts outbound provider calls by outcome
	SentimentProviderRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentiment_provider_requests_total",
			Help: "Outbound sentiment provider calls by outcome",
		},
		[]string{"status"},
	)
)

// Evaluation metrics
var (
	// EvaluationsCreated counts successfully persisted evaluations
	EvaluationsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "evaluations_created_total",
			Help: "Evaluations persisted successfully",
		},
	)
)
