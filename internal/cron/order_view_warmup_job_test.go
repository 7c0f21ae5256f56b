package cron

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/angelmondragon/orderview-backend/internal/orders"
	"github.com/angelmondragon/orderview-backend/pkg/db/models"
	"github.com/angelmondragon/orderview-backend/pkg/pagination"
)

type fakeUpdatedOrders struct {
	ids    []int64
	since  []time.Time
	limits []int
	err    error
}

// FindOrdersUpdatedSince pages through ids using the cursor as an offset.
func (f *fakeUpdatedOrders) FindOrdersUpdatedSince(_ context.Context, since time.Time, params pagination.Params) (*orders.OrderPage, error) {
	f.since = append(f.since, since)
	f.limits = append(f.limits, params.Limit)
	if f.err != nil {
		return nil, f.err
	}
	offset := 0
	if params.Cursor != "" {
		c, err := pagination.ParseCursor(params.Cursor)
		if err != nil {
			return nil, err
		}
		offset = int(c.ID)
	}
	end := min(offset+params.Limit, len(f.ids))
	page := &orders.OrderPage{}
	for _, id := range f.ids[offset:end] {
		page.Orders = append(page.Orders, models.Order{ID: id})
	}
	if end < len(f.ids) {
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{UpdatedAt: since, ID: int64(end)})
	}
	return page, nil
}

type fakeWarmer struct {
	warmed []int64
	fail   map[int64]error
}

func (f *fakeWarmer) Warm(_ context.Context, orderID int64) error {
	if err := f.fail[orderID]; err != nil {
		return err
	}
	f.warmed = append(f.warmed, orderID)
	return nil
}

func sequence(n int) []int64 {
	ids := make([]int64, n)
	for i := range ids {
		ids[i] = int64(i + 1)
	}
	return ids
}

func newWarmupJob(t *testing.T, reader updatedOrderReader, warmer orderViewWarmer, limit int) *orderViewWarmupJob {
	t.Helper()
	job, err := NewOrderViewWarmupJob(OrderViewWarmupJobParams{
		Logger:   testLogger(),
		Reader:   reader,
		Warmer:   warmer,
		Lookback: 30 * time.Minute,
		Limit:    limit,
	})
	if err != nil {
		t.Fatalf("new job: %v", err)
	}
	return job.(*orderViewWarmupJob)
}

func TestNewOrderViewWarmupJobValidates(t *testing.T) {
	if _, err := NewOrderViewWarmupJob(OrderViewWarmupJobParams{Reader: &fakeUpdatedOrders{}, Warmer: &fakeWarmer{}}); err == nil {
		t.Fatal("expected logger error")
	}
	if _, err := NewOrderViewWarmupJob(OrderViewWarmupJobParams{Logger: testLogger(), Warmer: &fakeWarmer{}}); err == nil {
		t.Fatal("expected reader error")
	}
	if _, err := NewOrderViewWarmupJob(OrderViewWarmupJobParams{Logger: testLogger(), Reader: &fakeUpdatedOrders{}}); err == nil {
		t.Fatal("expected warmer error")
	}
}

func TestOrderViewWarmupJobWalksAllPages(t *testing.T) {
	now := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	reader := &fakeUpdatedOrders{ids: sequence(120)}
	warmer := &fakeWarmer{}
	job := newWarmupJob(t, reader, warmer, 500)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(warmer.warmed) != 120 {
		t.Fatalf("expected 120 warmed orders, got %d", len(warmer.warmed))
	}
	if len(reader.since) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(reader.since))
	}
	if !reader.since[0].Equal(now.Add(-30 * time.Minute)) {
		t.Fatalf("unexpected lookback start %s", reader.since[0])
	}
	if job.Name() != "order-view-warmup" {
		t.Fatalf("unexpected name %q", job.Name())
	}
}

func TestOrderViewWarmupJobStopsAtLimit(t *testing.T) {
	reader := &fakeUpdatedOrders{ids: sequence(120)}
	warmer := &fakeWarmer{}
	job := newWarmupJob(t, reader, warmer, 70)

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(warmer.warmed) != 70 {
		t.Fatalf("expected 70 warmed orders, got %d", len(warmer.warmed))
	}
	if reader.limits[0] != warmupPageSize || reader.limits[1] != 20 {
		t.Fatalf("unexpected page sizes %v", reader.limits)
	}
}

func TestOrderViewWarmupJobCombinesFailures(t *testing.T) {
	reader := &fakeUpdatedOrders{ids: sequence(5)}
	warmer := &fakeWarmer{fail: map[int64]error{
		2: errors.New("order detail 7: INVALID_STATE"),
		4: errors.New("connection reset"),
	}}
	job := newWarmupJob(t, reader, warmer, 0)

	err := job.Run(context.Background())
	if err == nil {
		t.Fatal("expected combined error")
	}
	for _, want := range []string{"warm order 2", "warm order 4", "connection reset"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q missing %q", err, want)
		}
	}
	if len(warmer.warmed) != 3 {
		t.Fatalf("healthy orders must still be warmed, got %v", warmer.warmed)
	}
}

func TestOrderViewWarmupJobReaderFailure(t *testing.T) {
	reader := &fakeUpdatedOrders{err: errors.New("db down")}
	job := newWarmupJob(t, reader, &fakeWarmer{}, 10)

	if err := job.Run(context.Background()); err == nil || !strings.Contains(err.Error(), "db down") {
		t.Fatalf("expected reader error, got %v", err)
	}
}
