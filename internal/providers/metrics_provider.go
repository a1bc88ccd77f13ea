package providers

import (
	"ratingd/internal/structures"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits()
	IncCacheMisses()
	ObserveStorageDuration(op string, duration time.Duration)
	IncStorageErrors(op string)
	IncUsageEvents(kind string)
	IncPromptCycles(outcome string)
}

type MetricsProvider struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	cacheHits       prometheus.Counter
	cacheMisses     prometheus.Counter
	storageDuration *prometheus.HistogramVec
	storageErrors   *prometheus.CounterVec
	usageEvents     *prometheus.CounterVec
	promptCycles    *prometheus.CounterVec
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits() {
	m.cacheHits.Inc()
}

func (m *MetricsProvider) IncCacheMisses() {
	m.cacheMisses.Inc()
}

func (m *MetricsProvider) ObserveStorageDuration(op string, duration time.Duration) {
	m.storageDuration.WithLabelValues(op).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncStorageErrors(op string) {
	m.storageErrors.WithLabelValues(op).Inc()
}

func (m *MetricsProvider) IncUsageEvents(kind string) {
	m.usageEvents.WithLabelValues(kind).Inc()
}

func (m *MetricsProvider) IncPromptCycles(outcome string) {
	m.promptCycles.WithLabelValues(outcome).Inc()
}

func httpStatusBucket(code int) string {
	switch {
	case code < 200:
		return "1xx"
	case code < 300:
		return "2xx"
	case code < 400:
		return "3xx"
	case code < 500:
		return "4xx"
	default:
		return "5xx"
	}
}

func NewMetricsProvider(conf *structures.Config) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	return &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ratingd_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ratingd_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ratingd_cache_hits_total",
			Help: "Total number of ledger cache hits",
		}),

		cacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "ratingd_cache_misses_total",
			Help: "Total number of ledger cache misses",
		}),

		storageDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ratingd_storage_duration_seconds",
			Help:    "Duration of key-value storage operations in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"op"}),

		storageErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ratingd_storage_errors_total",
			Help: "Total number of failed key-value storage operations",
		}, []string{"op"}),

		usageEvents: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ratingd_usage_events_total",
			Help: "Total number of recorded usage events by kind",
		}, []string{"kind"}),

		promptCycles: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "ratingd_prompt_cycles_total",
			Help: "Total number of completed prompt cycles by outcome",
		}, []string{"outcome"}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func NewNoopMetrics() MetricsProviderInterface { return &noopMetrics{} }

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits()                                    {}
func (n *noopMetrics) IncCacheMisses()                                  {}
func (n *noopMetrics) ObserveStorageDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncStorageErrors(_ string)                        {}
func (n *noopMetrics) IncUsageEvents(_ string)                          {}
func (n *noopMetrics) IncPromptCycles(_ string)                         {}
