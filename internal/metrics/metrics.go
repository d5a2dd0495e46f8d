// Package metrics defines the Prometheus collectors exported on /metrics.
// A nil *Metrics is valid and records nothing.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "threads"

// Feed cache lookup outcomes.
const (
	CacheHit   = "hit"
	CacheMiss  = "miss"
	CacheError = "error"
)

type Metrics struct {
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	httpInFlight  prometheus.Gauge
	feedCache     *prometheus.CounterVec
	invalidations prometheus.Counter
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by method, route and status.",
		}, []string{"method", "path", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		httpInFlight: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "HTTP requests currently being served.",
		}),
		feedCache: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_cache_total",
			Help:      "Feed cache lookups by result.",
		}, []string{"result"}),
		invalidations: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "feed_cache_invalidations_total",
			Help:      "Feed cache invalidations caused by post mutations.",
		}),
	}
}

func (m *Metrics) RecordHTTPRequest(method, path, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.httpRequests.WithLabelValues(method, path, status).Inc()
	m.httpDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

func (m *Metrics) IncrementInFlight() {
	if m == nil {
		return
	}
	m.httpInFlight.Inc()
}

func (m *Metrics) DecrementInFlight() {
	if m == nil {
		return
	}
	m.httpInFlight.Dec()
}

func (m *Metrics) FeedCacheLookup(result string) {
	if m == nil {
		return
	}
	m.feedCache.WithLabelValues(result).Inc()
}

func (m *Metrics) FeedCacheInvalidated() {
	if m == nil {
		return
	}
	m.invalidations.Inc()
}
