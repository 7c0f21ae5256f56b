package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/orderview-backend/internal/orderview"
	"github.com/angelmondragon/orderview-backend/pkg/db"
	"github.com/angelmondragon/orderview-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/orderview-backend/pkg/errors"
	"github.com/angelmondragon/orderview-backend/pkg/logger"
	"github.com/angelmondragon/orderview-backend/pkg/metrics"
	"github.com/angelmondragon/orderview-backend/pkg/redis"
)

// refundTxAttempts bounds retries of a refund transaction that lost a
// serialization conflict.
const refundTxAttempts = 3

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes the order view and partial refunds of order lines.
type Service interface {
	OrderLines(ctx context.Context, orderID int64) ([]*orderview.LineItem, error)
	ExportOrderLines(ctx context.Context, orderID int64) ([]orderview.Export, error)
	RefundSummary(ctx context.Context, orderID, orderDetailID int64) (*RefundSummary, error)
	RefundLine(ctx context.Context, input RefundInput) (*RefundResult, error)
	Warm(ctx context.Context, orderID int64) error
}

// ServiceParams groups the service dependencies. Cache and Metrics are
// optional.
type ServiceParams struct {
	Repo     Repository
	Tx       txRunner
	Builder  BuilderConfig
	Cache    redis.CacheStore
	CacheTTL time.Duration
	Logger   *logger.Logger
	Metrics  *metrics.OrderViewMetrics
}

type service struct {
	repo    Repository
	tx      txRunner
	builder *Builder
	cache   *viewCache
	logg    *logger.Logger
	metrics *metrics.OrderViewMetrics
}

// NewService builds the order view service with the required dependencies.
func NewService(p ServiceParams) (Service, error) {
	if p.Repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if p.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if p.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	svc := &service{
		repo:    p.Repo,
		tx:      p.Tx,
		builder: NewBuilder(p.Repo, p.Builder),
		logg:    p.Logger,
		metrics: p.Metrics,
	}
	if p.Cache != nil {
		svc.cache = &viewCache{store: p.Cache, ttl: p.CacheTTL, logg: p.Logger, metrics: p.Metrics}
	}
	return svc, nil
}

func (s *service) OrderLines(ctx context.Context, orderID int64) ([]*orderview.LineItem, error) {
	if orderID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id must be positive")
	}
	start := time.Now()
	lines, err := s.builder.Build(ctx, orderID)
	s.metrics.ObserveBuild(time.Since(start), len(lines), err)
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (s *service) ExportOrderLines(ctx context.Context, orderID int64) ([]orderview.Export, error) {
	if orderID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id must be positive")
	}
	ctx = s.logg.WithOrderID(ctx, orderID)

	generation := s.cache.generation(ctx, orderID)
	if s.cache == nil {
		s.metrics.IncCache(metrics.CacheBypass)
	} else if cached, ok := s.cache.get(ctx, orderID, generation); ok {
		return cached, nil
	}

	lines, err := s.OrderLines(ctx, orderID)
	if err != nil {
		return nil, err
	}
	exports := exportAll(lines)
	s.cache.put(ctx, orderID, generation, exports)
	return exports, nil
}

func (s *service) RefundSummary(ctx context.Context, orderID, orderDetailID int64) (*RefundSummary, error) {
	if orderID <= 0 || orderDetailID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id and order detail id must be positive")
	}
	line, err := s.builder.BuildLine(ctx, orderID, orderDetailID)
	if err != nil {
		return nil, err
	}
	summary := summaryFromLine(orderID, line)
	return &summary, nil
}

func (s *service) RefundLine(ctx context.Context, input RefundInput) (result *RefundResult, err error) {
	if input.OrderID <= 0 || input.OrderDetailID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id and order detail id must be positive")
	}
	if input.Quantity <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "refund quantity must be positive")
	}
	if input.EmployeeID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "employee identity missing")
	}

	ctx = s.logg.WithOrderID(ctx, input.OrderID)
	defer func() {
		s.metrics.ObserveRefund(input.Quantity, err)
	}()

	var (
		refundID  int64
		committed models.OrderDetail
	)
	apply := func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		detail, err := repo.FindOrderDetail(ctx, input.OrderID, input.OrderDetailID)
		if err != nil {
			if db.IsRecordNotFound(err) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order detail not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order detail")
		}

		refundable := detail.ProductQuantity - detail.ProductQuantityRefunded
		if refundable <= 0 {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order line is already fully refunded")
		}
		if input.Quantity > refundable {
			return pkgerrors.Newf(pkgerrors.CodeStateConflict, "cannot refund %d units, only %d refundable", input.Quantity, refundable).
				WithDetails(map[string]any{"quantityRefundable": refundable})
		}

		qty := decimal.NewFromInt(int64(input.Quantity))
		amountExcl := detail.UnitPriceTaxExcl.Mul(qty)
		amountIncl := detail.UnitPriceTaxIncl.Mul(qty)

		applied, err := repo.ApplyRefund(ctx, detail.ID, input.Quantity, amountExcl, amountIncl)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "apply refund")
		}
		if !applied {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order line changed concurrently, refund rejected")
		}

		committed = *detail
		committed.ProductQuantityRefunded += input.Quantity
		committed.TotalRefundedTaxExcl = committed.TotalRefundedTaxExcl.Add(amountExcl)
		committed.TotalRefundedTaxIncl = committed.TotalRefundedTaxIncl.Add(amountIncl)

		refund := &models.OrderRefund{
			OrderID:       input.OrderID,
			OrderDetailID: detail.ID,
			Quantity:      input.Quantity,
			AmountTaxExcl: amountExcl,
			AmountTaxIncl: amountIncl,
			Restocked:     input.Restock,
			EmployeeID:    input.EmployeeID,
		}
		if err := repo.CreateRefund(ctx, refund); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record refund")
		}
		refundID = refund.ID

		if input.Restock {
			key := StockKey{ProductID: detail.ProductID, ProductAttributeID: detail.ProductAttributeID}
			if err := repo.Restock(ctx, key, input.Quantity); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "restock refunded units")
			}
		}

		if err := repo.TouchOrder(ctx, input.OrderID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "touch order")
		}
		return nil
	}
	for attempt := 1; ; attempt++ {
		err = s.tx.WithTx(ctx, apply)
		if err == nil || attempt == refundTxAttempts || !db.IsRetryableTx(err) {
			break
		}
		s.logg.Warn(s.logg.WithField(ctx, "attempt", attempt), "refund transaction conflicted, retrying")
	}
	if err != nil {
		return nil, err
	}

	s.cache.invalidate(ctx, input.OrderID)
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"order_detail_id": input.OrderDetailID,
		"quantity":        input.Quantity,
		"restock":         input.Restock,
	}), "order line refunded")

	// The refund is committed: a line that cannot be rebuilt degrades the
	// response instead of failing it.
	line, buildErr := s.builder.BuildLine(ctx, input.OrderID, input.OrderDetailID)
	if buildErr != nil {
		s.logg.Error(ctx, "refunded line could not be rebuilt", buildErr)
		return &RefundResult{
			RefundID: refundID,
			Summary:  s.builder.summarize(ctx, input.OrderID, &committed),
		}, nil
	}
	export := line.Serialize()
	return &RefundResult{
		RefundID: refundID,
		Summary:  summaryFromLine(input.OrderID, line),
		Line:     &export,
	}, nil
}

func (s *service) Warm(ctx context.Context, orderID int64) error {
	generation := s.cache.generation(ctx, orderID)
	lines, err := s.OrderLines(ctx, orderID)
	if err != nil {
		return err
	}
	s.cache.put(ctx, orderID, generation, exportAll(lines))
	return nil
}

func exportAll(lines []*orderview.LineItem) []orderview.Export {
	exports := make([]orderview.Export, 0, len(lines))
	for _, line := range lines {
		exports = append(exports, line.Serialize())
	}
	return exports
}
