package cron

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/angelmondragon/orderview-backend/internal/orders"
	"github.com/angelmondragon/orderview-backend/pkg/logger"
	"github.com/angelmondragon/orderview-backend/pkg/pagination"
)

const (
	defaultWarmupLookback = time.Hour
	defaultWarmupLimit    = 200
	warmupPageSize        = 50
)

type updatedOrderReader interface {
	FindOrdersUpdatedSince(ctx context.Context, since time.Time, params pagination.Params) (*orders.OrderPage, error)
}

type orderViewWarmer interface {
	Warm(ctx context.Context, orderID int64) error
}

// OrderViewWarmupJobParams configure the order view cache warm-up.
type OrderViewWarmupJobParams struct {
	Logger   *logger.Logger
	Reader   updatedOrderReader
	Warmer   orderViewWarmer
	Lookback time.Duration
	Limit    int
}

// NewOrderViewWarmupJob builds the job that rebuilds and caches the line
// items of recently updated orders.
func NewOrderViewWarmupJob(params OrderViewWarmupJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Reader == nil {
		return nil, fmt.Errorf("order reader required")
	}
	if params.Warmer == nil {
		return nil, fmt.Errorf("order view warmer required")
	}
	lookback := params.Lookback
	if lookback <= 0 {
		lookback = defaultWarmupLookback
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultWarmupLimit
	}
	return &orderViewWarmupJob{
		logg:     params.Logger,
		reader:   params.Reader,
		warmer:   params.Warmer,
		lookback: lookback,
		limit:    limit,
		now:      time.Now,
	}, nil
}

type orderViewWarmupJob struct {
	logg     *logger.Logger
	reader   updatedOrderReader
	warmer   orderViewWarmer
	lookback time.Duration
	limit    int
	now      func() time.Time
}

func (j *orderViewWarmupJob) Name() string { return "order-view-warmup" }

// Run warms at most limit orders. A failing order is recorded and skipped;
// the combined error is returned once every page has been visited.
func (j *orderViewWarmupJob) Run(ctx context.Context) error {
	since := j.now().UTC().Add(-j.lookback)

	var (
		errs   error
		warmed int
		failed int
		cursor string
	)
	for warmed+failed < j.limit {
		page, err := j.reader.FindOrdersUpdatedSince(ctx, since, pagination.Params{
			Limit:  min(warmupPageSize, j.limit-warmed-failed),
			Cursor: cursor,
		})
		if err != nil {
			return multierr.Append(errs, fmt.Errorf("list updated orders: %w", err))
		}
		for _, order := range page.Orders {
			if err := j.warmer.Warm(ctx, order.ID); err != nil {
				failed++
				errs = multierr.Append(errs, fmt.Errorf("warm order %d: %w", order.ID, err))
				continue
			}
			warmed++
		}
		if page.NextCursor == "" {
			break
		}
		cursor = page.NextCursor
	}

	j.logg.Info(j.logg.WithFields(ctx, map[string]any{
		"since":  since.Format(time.RFC3339),
		"warmed": warmed,
		"failed": failed,
	}), "order views warmed")
	return errs
}
