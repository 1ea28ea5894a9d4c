package nestoria

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestMetrics() *Metrics {
	return NewMetrics(prometheus.NewRegistry())
}

func counterValue(t *testing.T, c prometheus.Collector) float64 {
	t.Helper()
	return testutil.ToFloat64(c)
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *Metrics
	m.cacheHit()
	m.cacheMiss()
	m.observeRequest(ActionEcho, OutcomeSuccess, 0)
}
