package cron

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/multierr"

	"github.com/angelmondragon/orderview-backend/pkg/db/models"
	"github.com/angelmondragon/orderview-backend/pkg/logger"
)

const (
	defaultAuditLimit = 100
	auditAlertTTL     = 24 * time.Hour
)

type refundAnomalyReader interface {
	FindRefundAnomalies(ctx context.Context, limit int) ([]models.OrderDetail, error)
}

// alertCounter dedupes anomaly warnings so a row is reported once per TTL.
type alertCounter interface {
	CounterKey(name string) string
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// RefundAuditJobParams configure the refund integrity audit.
type RefundAuditJobParams struct {
	Logger   *logger.Logger
	Reader   refundAnomalyReader
	Counter  alertCounter
	Limit    int
	AlertTTL time.Duration
}

// NewRefundAuditJob builds the job reporting order details whose refunded
// quantity exceeds the ordered quantity. Those rows cannot be rendered in the
// order view until they are corrected.
func NewRefundAuditJob(params RefundAuditJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Reader == nil {
		return nil, fmt.Errorf("refund anomaly reader required")
	}
	limit := params.Limit
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	ttl := params.AlertTTL
	if ttl <= 0 {
		ttl = auditAlertTTL
	}
	return &refundAuditJob{
		logg:    params.Logger,
		reader:  params.Reader,
		counter: params.Counter,
		limit:   limit,
		ttl:     ttl,
	}, nil
}

type refundAuditJob struct {
	logg    *logger.Logger
	reader  refundAnomalyReader
	counter alertCounter
	limit   int
	ttl     time.Duration
}

func (j *refundAuditJob) Name() string { return "refund-audit" }

func (j *refundAuditJob) Run(ctx context.Context) error {
	rows, err := j.reader.FindRefundAnomalies(ctx, j.limit)
	if err != nil {
		return fmt.Errorf("query refund anomalies: %w", err)
	}

	var errs error
	reported := 0
	for _, row := range rows {
		rowCtx := j.logg.WithFields(ctx, map[string]any{
			"order_id":                  row.OrderID,
			"order_detail_id":           row.ID,
			"product_quantity":          row.ProductQuantity,
			"product_quantity_refunded": row.ProductQuantityRefunded,
		})
		first, err := j.firstSighting(ctx, row.ID)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("count anomaly %d: %w", row.ID, err))
		}
		if !first {
			j.logg.Debug(rowCtx, "refund anomaly still present")
			continue
		}
		j.logg.Warn(rowCtx, "refunded quantity exceeds ordered quantity")
		reported++
	}

	if len(rows) > 0 {
		j.logg.Info(j.logg.WithFields(ctx, map[string]any{
			"anomalies": len(rows),
			"reported":  reported,
		}), "refund audit found anomalies")
	}
	return errs
}

// firstSighting reports true when the row has not been warned about within
// the TTL. Without a counter, or when counting fails, every sighting is
// reported.
func (j *refundAuditJob) firstSighting(ctx context.Context, orderDetailID int64) (bool, error) {
	if j.counter == nil {
		return true, nil
	}
	key := j.counter.CounterKey("refund_audit:" + strconv.FormatInt(orderDetailID, 10))
	count, err := j.counter.IncrWithTTL(ctx, key, j.ttl)
	if err != nil {
		return true, err
	}
	return count == 1, nil
}
