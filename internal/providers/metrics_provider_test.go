package providers

import (
	"puzzlestats/internal/structures"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type metricsTestUsers struct{ n int }

func (m *metricsTestUsers) UserCount() int { return m.n }

func isolateRegistry(t *testing.T) *prometheus.Registry {
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
	m := NewMetricsProvider(conf, &metricsTestUsers{})
	_, ok := m.(*noopMetrics)
	assert.True(t, ok, "should return noopMetrics when disabled")

	m.IncRequestsTotal("/test", 200)
	m.ObserveRequestDuration("/test", time.Millisecond)
	m.IncCacheHits("stats")
	m.IncCacheMisses("stats")
	m.ObservePersistenceDuration(time.Millisecond)
	m.IncResults("wordle", "recorded")
	m.ObserveBackfillDuration(time.Second)
}

func TestMetricsProvider_WhenEnabled(t *testing.T) {
	isolateRegistry(t)

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf, &metricsTestUsers{})
	_, ok := m.(*MetricsProvider)
	assert.True(t, ok, "should return MetricsProvider when enabled")
}

func TestMetricsProvider_Counters(t *testing.T) {
	isolateRegistry(t)

	conf := &structures.Config{
		Metrics: structures.MetricsConfig{Enabled: true},
	}
	m := NewMetricsProvider(conf, &metricsTestUsers{n: 3}).(*MetricsProvider)

	m.IncRequestsTotal("/leaderboard", 200)
	m.IncRequestsTotal("/leaderboard", 404)
	m.ObserveRequestDuration("/leaderboard", 5*time.Millisecond)
	m.IncCacheHits("stats")
	m.IncCacheMisses("stats")
	m.ObservePersistenceDuration(100 * time.Millisecond)
	m.IncResults("connections", "recorded")
	m.IncResults("connections", "recorded")
	m.IncResults("wordle", "duplicate")
	m.ObserveBackfillDuration(2 * time.Second)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.resultsTotal.WithLabelValues("connections", "recorded")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.resultsTotal.WithLabelValues("wordle", "duplicate")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheHits.WithLabelValues("stats")))
}

func TestMetricsProvider_UsersGauge(t *testing.T) {
	reg := isolateRegistry(t)

	users := &metricsTestUsers{n: 7}
	NewMetricsProvider(&structures.Config{Metrics: structures.MetricsConfig{Enabled: true}}, users)

	families, err := reg.Gather()
	require.NoError(t, err)
	var found bool
	for _, f := range families {
		if f.GetName() == "puzzlestats_users_total" {
			found = true
			assert.Equal(t, 7.0, f.GetMetric()[0].GetGauge().GetValue())
		}
	}
	assert.True(t, found)
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
