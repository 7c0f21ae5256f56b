package orders

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/orderview-backend/pkg/db/models"
	"github.com/angelmondragon/orderview-backend/pkg/pagination"
)

// StockKey identifies a stock row; ProductAttributeID is zero for products
// without combinations.
type StockKey struct {
	ProductID          int64
	ProductAttributeID int64
}

// Repository defines the reads and refund writes behind the order view.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindOrder(ctx context.Context, orderID int64) (*models.Order, error)
	FindOrderDetails(ctx context.Context, orderID int64) ([]models.OrderDetail, error)
	FindOrderDetail(ctx context.Context, orderID, orderDetailID int64) (*models.OrderDetail, error)
	FindProducts(ctx context.Context, ids []int64) (map[int64]models.Product, error)
	FindCombinations(ctx context.Context, ids []int64) (map[int64]models.ProductAttribute, error)
	FindStock(ctx context.Context, keys []StockKey) (map[StockKey]models.StockAvailable, error)
	FindPackItems(ctx context.Context, packProductIDs []int64) (map[int64][]models.PackItem, error)
	FindImages(ctx context.Context, productIDs []int64) ([]models.ProductImage, error)
	FindInvoices(ctx context.Context, ids []int64) (map[int64]models.OrderInvoice, error)
	FindCustomizations(ctx context.Context, orderDetailIDs []int64) (map[int64][]models.Customization, error)
	ApplyRefund(ctx context.Context, orderDetailID int64, qty int, amountTaxExcl, amountTaxIncl decimal.Decimal) (bool, error)
	CreateRefund(ctx context.Context, refund *models.OrderRefund) error
	Restock(ctx context.Context, key StockKey, qty int) error
	TouchOrder(ctx context.Context, orderID int64) error
	FindOrdersUpdatedSince(ctx context.Context, since time.Time, params pagination.Params) (*OrderPage, error)
	FindRefundAnomalies(ctx context.Context, limit int) ([]models.OrderDetail, error)
}
