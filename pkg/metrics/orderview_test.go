package metrics

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestOrderViewMetricsCountsCacheAndRefunds(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewOrderViewMetrics(reg)

	m.IncCache(CacheHit)
	m.IncCache(CacheHit)
	m.IncCache(CacheMiss)
	m.ObserveRefund(2, nil)
	m.ObserveRefund(5, errors.New("conflict"))
	m.ObserveBuild(40*time.Millisecond, 3, nil)
	m.ObserveBuild(time.Millisecond, 0, errors.New("boom"))

	if got := testutil.ToFloat64(m.cache.WithLabelValues(CacheHit)); got != 2 {
		t.Fatalf("expected 2 hits, got %f", got)
	}
	if got := testutil.ToFloat64(m.cache.WithLabelValues(CacheMiss)); got != 1 {
		t.Fatalf("expected 1 miss, got %f", got)
	}
	if got := testutil.ToFloat64(m.refunds.WithLabelValues("ok")); got != 1 {
		t.Fatalf("expected 1 successful refund, got %f", got)
	}
	if got := testutil.ToFloat64(m.refunds.WithLabelValues("error")); got != 1 {
		t.Fatalf("expected 1 failed refund, got %f", got)
	}
	if got := testutil.ToFloat64(m.refundedUnits); got != 2 {
		t.Fatalf("failed refunds must not count units, got %f", got)
	}
	if got := testutil.ToFloat64(m.linesBuilt); got != 3 {
		t.Fatalf("expected 3 lines built, got %f", got)
	}

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	if got, err := fetchHistogramSum(mfs, "orderview_order_lines_build_duration_seconds", "outcome", "ok"); err != nil {
		t.Fatalf("fetch build duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected build duration sum > 0, got %f", got)
	}
}

func TestHTTPMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := NewHTTPMetrics(reg)
	h.Observe(http.MethodGet, "/api/v1/admin/orders/{orderId}/products", http.StatusOK, 10*time.Millisecond)
	h.Observe(http.MethodGet, "", http.StatusNotFound, time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}
	if _, err := fetchHistogramSum(mfs, "orderview_http_request_duration_seconds", "route", "/api/v1/admin/orders/{orderId}/products"); err != nil {
		t.Fatalf("expected route series: %v", err)
	}
	if _, err := fetchHistogramSum(mfs, "orderview_http_request_duration_seconds", "route", "unmatched"); err != nil {
		t.Fatalf("expected unmatched series: %v", err)
	}
}
