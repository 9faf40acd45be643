package providers

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"puzzlestats/internal/structures"
	"time"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits(namespace string)
	IncCacheMisses(namespace string)
	ObservePersistenceDuration(duration time.Duration)
	IncResults(game, outcome string)
	ObserveBackfillDuration(duration time.Duration)
}

// UserCounter reports how many players the store holds.
type UserCounter interface {
	UserCount() int
}

type MetricsProvider struct {
	requestsTotal       *prometheus.CounterVec
	requestDuration     *prometheus.HistogramVec
	cacheHits           *prometheus.CounterVec
	cacheMisses         *prometheus.CounterVec
	persistenceDuration prometheus.Histogram
	resultsTotal        *prometheus.CounterVec
	backfillDuration    prometheus.Histogram
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits(namespace string) {
	m.cacheHits.WithLabelValues(namespace).Inc()
}

func (m *MetricsProvider) IncCacheMisses(namespace string) {
	m.cacheMisses.WithLabelValues(namespace).Inc()
}

func (m *MetricsProvider) ObservePersistenceDuration(duration time.Duration) {
	m.persistenceDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncResults(game, outcome string) {
	m.resultsTotal.WithLabelValues(game, outcome).Inc()
}

func (m *MetricsProvider) ObserveBackfillDuration(duration time.Duration) {
	m.backfillDuration.Observe(duration.Seconds())
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

func NewMetricsProvider(conf *structures.Config, users UserCounter) MetricsProviderInterface {
	if !conf.Metrics.Enabled {
		return &noopMetrics{}
	}

	m := &MetricsProvider{
		requestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "puzzlestats_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "puzzlestats_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "puzzlestats_cache_hits_total",
			Help: "Total number of cache hits",
		}, []string{"namespace"}),

		cacheMisses: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "puzzlestats_cache_misses_total",
			Help: "Total number of cache misses",
		}, []string{"namespace"}),

		persistenceDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "puzzlestats_persistence_duration_seconds",
			Help:    "Duration of persistence operations in seconds",
			Buckets: prometheus.DefBuckets,
		}),

		resultsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "puzzlestats_results_total",
			Help: "Puzzle results seen per game and outcome",
		}, []string{"game", "outcome"}),

		backfillDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "puzzlestats_backfill_duration_seconds",
			Help:    "Duration of history backfill runs in seconds",
			Buckets: []float64{1, 5, 15, 60, 300, 900, 3600},
		}),
	}

	promauto.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "puzzlestats_users_total",
		Help: "Number of players in the record store",
	}, func() float64 {
		return float64(users.UserCount())
	})

	return m
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits(_ string)                            {}
func (n *noopMetrics) IncCacheMisses(_ string)                          {}
func (n *noopMetrics) ObservePersistenceDuration(_ time.Duration)       {}
func (n *noopMetrics) IncResults(_, _ string)                           {}
func (n *noopMetrics) ObserveBackfillDuration(_ time.Duration)          {}
