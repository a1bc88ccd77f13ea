package providers

import (
	"ratingd/internal/structures"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func swapRegistry(t *testing.T) *prometheus.Registry {
	t.Helper()
	reg := prometheus.NewRegistry()
	prometheus.DefaultRegisterer = reg
	prometheus.DefaultGatherer = reg
	t.Cleanup(func() {
		prometheus.DefaultRegisterer = prometheus.NewRegistry()
		prometheus.DefaultGatherer = prometheus.DefaultRegisterer.(prometheus.Gatherer)
	})
	return reg
}

func TestNoopMetrics_WhenDisabled(t *testing.T) {
	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: false},
	}
	m := NewMetricsProvider(conf)
	_, ok := m.(*noopMetrics)
	assert.True(t, ok, "should return noopMetrics when disabled")

	// Ensure no-op methods don't panic
	m.IncRequestsTotal("/test", 200)
	m.ObserveRequestDuration("/test", time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.ObserveStorageDuration("get", time.Millisecond)
	m.IncStorageErrors("set")
	m.IncUsageEvents("use")
	m.IncPromptCycles("accepted")
}

func TestMetricsProvider_WhenEnabled(t *testing.T) {
	swapRegistry(t)

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf)
	_, ok := m.(*MetricsProvider)
	assert.True(t, ok, "should return MetricsProvider when enabled")
}

func TestMetricsProvider_IncrementCounters(t *testing.T) {
	reg := swapRegistry(t)

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf).(*MetricsProvider)

	m.IncRequestsTotal("/use", 200)
	m.IncRequestsTotal("/use", 404)
	m.ObserveRequestDuration("/use", 5*time.Millisecond)
	m.IncCacheHits()
	m.IncCacheMisses()
	m.ObserveStorageDuration("get", 100*time.Millisecond)
	m.IncStorageErrors("set")
	m.IncUsageEvents("use")
	m.IncUsageEvents("use")
	m.IncUsageEvents("positive")
	m.IncPromptCycles("delayed")

	assert.Equal(t, float64(2), testutil.ToFloat64(m.usageEvents.WithLabelValues("use")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.promptCycles.WithLabelValues("delayed")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.cacheHits))

	families, err := reg.Gather()
	require.NoError(t, err)
	assert.NotEmpty(t, families)
}

func TestHttpStatusBucket(t *testing.T) {
	tests := []struct {
		code     int
		expected string
	}{
		{100, "1xx"},
		{200, "2xx"},
		{201, "2xx"},
		{301, "3xx"},
		{400, "4xx"},
		{404, "4xx"},
		{500, "5xx"},
		{503, "5xx"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, httpStatusBucket(tt.code))
	}
}
