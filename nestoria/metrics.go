package nestoria

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for RequestsTotal
const (
	OutcomeSuccess        = "success"
	OutcomeInvalidRequest = "invalid_request"
	OutcomeBadLocation    = "bad_location"
	OutcomeInternalError  = "internal_error"
	OutcomeInvalidVersion = "invalid_version"
	OutcomeTransportError = "transport_error"
	OutcomeDecodeError    = "decode_error"
)

// Metrics holds Prometheus collectors for API requests and the response cache.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	CacheHits       prometheus.Counter
	CacheMisses     prometheus.Counter
}

// NewMetrics creates and registers the collectors on reg
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "nestoria",
				Name:      "requests_total",
				Help:      "Total number of API operations by action and outcome",
			},
			[]string{"action", "outcome"},
		),
		RequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "nestoria",
				Name:      "request_duration_seconds",
				Help:      "API operation latency, cache hits included",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 15),
			},
			[]string{"action"},
		),
		CacheHits: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "nestoria",
				Name:      "cache_hits_total",
				Help:      "Responses served from the cache",
			},
		),
		CacheMisses: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: "nestoria",
				Name:      "cache_misses_total",
				Help:      "Cache lookups that required a network call",
			},
		),
	}
}

func (m *Metrics) observeRequest(action Action, outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.RequestsTotal.WithLabelValues(action.String(), outcome).Inc()
	m.RequestDuration.WithLabelValues(action.String()).Observe(elapsed.Seconds())
}

func (m *Metrics) cacheHit() {
	if m != nil {
		m.CacheHits.Inc()
	}
}

func (m *Metrics) cacheMiss() {
	if m != nil {
		m.CacheMisses.Inc()
	}
}
