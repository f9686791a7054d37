package providers

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"doorbelld/internal/structures"
)

type MetricsProviderInterface interface {
	IncRequestsTotal(endpoint string, status int)
	ObserveRequestDuration(endpoint string, duration time.Duration)
	IncCacheHits(view string)
	IncCacheMisses(view string)
	IncCacheInvalidations()
	IncCaptures(outcome string)
	ObserveCaptureDuration(duration time.Duration)
	IncNotifications(decision string)
	SetQueuePending(n int64)
	SetStorageMegabytes(partition string, mb float64)
}

const (
	CaptureOutcomeOk            = "ok"
	CaptureOutcomeVideoFailed   = "video_failed"
	CaptureOutcomeSnapshotError = "snapshot_failed"

	DecisionAccepted  = "accepted"
	DecisionDuplicate = "duplicate"
	DecisionBaseline  = "baseline"
	DecisionIgnored   = "ignored"
)

type MetricsProvider struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	cacheHits       *prometheus.CounterVec
	cacheMisses     *prometheus.CounterVec
	cacheClears     prometheus.Counter
	captures        *prometheus.CounterVec
	captureDuration prometheus.Histogram
	notifications   *prometheus.CounterVec
	queuePending    prometheus.Gauge
	storage         *prometheus.GaugeVec
}

func (m *MetricsProvider) IncRequestsTotal(endpoint string, status int) {
	m.requestsTotal.WithLabelValues(endpoint, httpStatusBucket(status)).Inc()
}

func (m *MetricsProvider) ObserveRequestDuration(endpoint string, duration time.Duration) {
	m.requestDuration.WithLabelValues(endpoint).Observe(duration.Seconds())
}

func (m *MetricsProvider) IncCacheHits(view string) {
	m.cacheHits.WithLabelValues(view).Inc()
}

func (m *MetricsProvider) IncCacheMisses(view string) {
	m.cacheMisses.WithLabelValues(view).Inc()
}

func (m *MetricsProvider) IncCacheInvalidations() {
	m.cacheClears.Inc()
}

func (m *MetricsProvider) IncCaptures(outcome string) {
	m.captures.WithLabelValues(outcome).Inc()
}

func (m *MetricsProvider) ObserveCaptureDuration(duration time.Duration) {
	m.captureDuration.Observe(duration.Seconds())
}

func (m *MetricsProvider) IncNotifications(decision string) {
	m.notifications.WithLabelValues(decision).Inc()
}

func (m *MetricsProvider) SetQueuePending(n int64) {
	m.queuePending.Set(float64(n))
}

func (m *MetricsProvider) SetStorageMegabytes(partition string, mb float64) {
	m.storage.WithLabelValues(partition).Set(mb)
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
			Name: "doorbell_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"endpoint", "status"}),

		requestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "doorbell_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),

		cacheHits: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "doorbell_cache_hits_total",
			Help: "Responses served from the cache, by view",
		}, []string{"view"}),

		cacheMisses: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "doorbell_cache_misses_total",
			Help: "Responses recomputed on a cache miss, by view",
		}, []string{"view"}),

		cacheClears: promauto.NewCounter(prometheus.CounterOpts{
			Name: "doorbell_cache_invalidations_total",
			Help: "Whole-cache clears after captures, deletes and video settling",
		}),

		captures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "doorbell_captures_total",
			Help: "Capture pipeline runs by outcome",
		}, []string{"outcome"}),

		captureDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "doorbell_capture_duration_seconds",
			Help:    "Duration of a full capture pipeline run",
			Buckets: []float64{1, 5, 15, 30, 60, 120},
		}),

		notifications: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "doorbell_notifications_total",
			Help: "Motion notifications by dedup decision",
		}, []string{"decision"}),

		queuePending: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "doorbell_queue_pending",
			Help: "Capture tasks waiting or running",
		}),

		storage: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "doorbell_storage_megabytes",
			Help: "Store size in megabytes, split into today and rest",
		}, []string{"partition"}),
	}
}

// noopMetrics is a no-op implementation for when metrics are disabled.
type noopMetrics struct{}

func (n *noopMetrics) IncRequestsTotal(_ string, _ int)                 {}
func (n *noopMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (n *noopMetrics) IncCacheHits(_ string)                            {}
func (n *noopMetrics) IncCacheMisses(_ string)                          {}
func (n *noopMetrics) IncCacheInvalidations()                           {}
func (n *noopMetrics) IncCaptures(_ string)                             {}
func (n *noopMetrics) ObserveCaptureDuration(_ time.Duration)           {}
func (n *noopMetrics) IncNotifications(_ string)                        {}
func (n *noopMetrics) SetQueuePending(_ int64)                          {}
func (n *noopMetrics) SetStorageMegabytes(_ string, _ float64)          {}
