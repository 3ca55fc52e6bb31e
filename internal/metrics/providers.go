// Package metrics holds the Prometheus instrumentation for the service.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Provider-facing Prometheus metrics (embedding + enrichment calls).
var (
	EmbeddingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "recruiter",
			Name:      "embedding_requests_total",
			Help:      "Total number of embedding requests",
		},
		[]string{"model", "status"},
	)

	EmbeddingRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "recruiter",
			Name:      "embedding_request_duration_seconds",
			Help:      "Embedding request duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"model"},
	)

	EmbeddingTokensTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "recruiter",
			Name:      "embedding_tokens_total",
			Help:      "Total embedding tokens consumed",
		},
		[]string{"model", "type"},
	)

	EmbeddingCacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "recruiter",
			Name:      "embedding_cache_total",
			Help:      "Embedding cache hits and misses",
		},
		[]string{"result"}, // "hit" / "miss"
	)

	EnrichmentRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "recruiter",
			Name:      "enrichment_requests_total",
			Help:      "Total enrichment (chat completion) requests",
		},
		[]string{"operation", "status"}, // operation: extract_profile / summarize
	)

	EnrichmentFallbacksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "recruiter",
			Name:      "enrichment_fallbacks_total",
			Help:      "Enrichment calls that degraded to default output",
		},
		[]string{"operation", "reason"}, // reason: provider_error / parse_error
	)
)

var providerMetricsRegistered bool

// RegisterProviderMetrics registers the provider metrics. Must be called
// once from main.
func RegisterProviderMetrics() {
	if providerMetricsRegistered {
		return
	}
	prometheus.MustRegister(EmbeddingRequestsTotal)
	prometheus.MustRegister(EmbeddingRequestDuration)
	prometheus.MustRegister(EmbeddingTokensTotal)
	prometheus.MustRegister(EmbeddingCacheTotal)
	prometheus.MustRegister(EnrichmentRequestsTotal)
	prometheus.MustRegister(EnrichmentFallbacksTotal)
	providerMetricsRegistered = true
}
