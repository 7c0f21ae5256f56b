package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	CacheHit    = "hit"
	CacheMiss   = "miss"
	CacheError  = "error"
	CacheBypass = "bypass"
)

// OrderViewMetrics instruments building, caching and refunding order lines.
type OrderViewMetrics struct {
	buildDuration *prometheus.HistogramVec
	linesBuilt    prometheus.Counter
	cache         *prometheus.CounterVec
	refunds       *prometheus.CounterVec
	refundedUnits prometheus.Counter
}

// NewOrderViewMetrics registers the order view metrics on reg. A nil
// registerer yields a no-op recorder.
func NewOrderViewMetrics(reg prometheus.Registerer) *OrderViewMetrics {
	if reg == nil {
		return &OrderViewMetrics{}
	}
	m := &OrderViewMetrics{
		buildDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "order_lines_build_duration_seconds",
			Help:      "Time spent assembling the line items of an order.",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"outcome"}),
		linesBuilt: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_lines_built_total",
			Help:      "Top-level line items assembled.",
		}),
		cache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "order_lines_cache_total",
			Help:      "Order lines cache lookups by result.",
		}, []string{"result"}),
		refunds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refunds_total",
			Help:      "Partial refund attempts by outcome.",
		}, []string{"outcome"}),
		refundedUnits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refunded_units_total",
			Help:      "Units refunded across all order lines.",
		}),
	}
	reg.MustRegister(m.buildDuration, m.linesBuilt, m.cache, m.refunds, m.refundedUnits)
	return m
}

// ObserveBuild records one order build and the number of lines it produced.
func (m *OrderViewMetrics) ObserveBuild(duration time.Duration, lines int, err error) {
	if m == nil || m.buildDuration == nil {
		return
	}
	m.buildDuration.WithLabelValues(outcome(err)).Observe(duration.Seconds())
	if err == nil {
		m.linesBuilt.Add(float64(lines))
	}
}

func (m *OrderViewMetrics) IncCache(result string) {
	if m == nil || m.cache == nil {
		return
	}
	m.cache.WithLabelValues(result).Inc()
}

// ObserveRefund counts a refund attempt and, on success, the refunded units.
func (m *OrderViewMetrics) ObserveRefund(units int, err error) {
	if m == nil || m.refunds == nil {
		return
	}
	m.refunds.WithLabelValues(outcome(err)).Inc()
	if err == nil && units > 0 {
		m.refundedUnits.Add(float64(units))
	}
}

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
