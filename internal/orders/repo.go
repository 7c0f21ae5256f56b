package orders

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/angelmondragon/orderview-backend/pkg/db/models"
	"github.com/angelmondragon/orderview-backend/pkg/enums"
	"github.com/angelmondragon/orderview-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an orders repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindOrder(ctx context.Context, orderID int64) (*models.Order, error) {
	var order models.Order
	err := r.db.WithContext(ctx).
		Preload("Currency").
		Where("id = ?", orderID).
		First(&order).Error
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *repository) FindOrderDetails(ctx context.Context, orderID int64) ([]models.OrderDetail, error) {
	var details []models.OrderDetail
	err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID).
		Order("id ASC").
		Find(&details).Error
	if err != nil {
		return nil, err
	}
	return details, nil
}

func (r *repository) FindOrderDetail(ctx context.Context, orderID, orderDetailID int64) (*models.OrderDetail, error) {
	var detail models.OrderDetail
	err := r.db.WithContext(ctx).
		Where("id = ? AND order_id = ?", orderDetailID, orderID).
		First(&detail).Error
	if err != nil {
		return nil, err
	}
	return &detail, nil
}

func (r *repository) FindProducts(ctx context.Context, ids []int64) (map[int64]models.Product, error) {
	out := make(map[int64]models.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []models.Product
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ID] = row
	}
	return out, nil
}

func (r *repository) FindCombinations(ctx context.Context, ids []int64) (map[int64]models.ProductAttribute, error) {
	out := make(map[int64]models.ProductAttribute, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []models.ProductAttribute
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ID] = row
	}
	return out, nil
}

func (r *repository) FindStock(ctx context.Context, keys []StockKey) (map[StockKey]models.StockAvailable, error) {
	out := make(map[StockKey]models.StockAvailable, len(keys))
	if len(keys) == 0 {
		return out, nil
	}
	productIDs := make([]int64, 0, len(keys))
	seen := make(map[int64]struct{}, len(keys))
	for _, key := range keys {
		if _, ok := seen[key.ProductID]; ok {
			continue
		}
		seen[key.ProductID] = struct{}{}
		productIDs = append(productIDs, key.ProductID)
	}

	var rows []models.StockAvailable
	if err := r.db.WithContext(ctx).Where("product_id IN ?", productIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	wanted := make(map[StockKey]struct{}, len(keys))
	for _, key := range keys {
		wanted[key] = struct{}{}
	}
	for _, row := range rows {
		key := StockKey{ProductID: row.ProductID, ProductAttributeID: row.ProductAttributeID}
		if _, ok := wanted[key]; ok {
			out[key] = row
		}
	}
	return out, nil
}

func (r *repository) FindPackItems(ctx context.Context, packProductIDs []int64) (map[int64][]models.PackItem, error) {
	out := make(map[int64][]models.PackItem, len(packProductIDs))
	if len(packProductIDs) == 0 {
		return out, nil
	}
	var rows []models.PackItem
	err := r.db.WithContext(ctx).
		Where("pack_product_id IN ?", packProductIDs).
		Order("pack_product_id ASC, position ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.PackProductID] = append(out[row.PackProductID], row)
	}
	return out, nil
}

func (r *repository) FindImages(ctx context.Context, productIDs []int64) ([]models.ProductImage, error) {
	if len(productIDs) == 0 {
		return nil, nil
	}
	var rows []models.ProductImage
	err := r.db.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Order("product_id ASC, position ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) FindInvoices(ctx context.Context, ids []int64) (map[int64]models.OrderInvoice, error) {
	out := make(map[int64]models.OrderInvoice, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []models.OrderInvoice
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ID] = row
	}
	return out, nil
}

func (r *repository) FindCustomizations(ctx context.Context, orderDetailIDs []int64) (map[int64][]models.Customization, error) {
	out := make(map[int64][]models.Customization, len(orderDetailIDs))
	if len(orderDetailIDs) == 0 {
		return out, nil
	}
	var rows []models.Customization
	err := r.db.WithContext(ctx).
		Preload("Data", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC, id ASC")
		}).
		Where("order_detail_id IN ?", orderDetailIDs).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.OrderDetailID] = append(out[row.OrderDetailID], row)
	}
	return out, nil
}

// ApplyRefund increments the refunded quantity and amounts only while the
// result stays within the ordered quantity. It reports false when the guard
// rejected the update.
func (r *repository) ApplyRefund(ctx context.Context, orderDetailID int64, qty int, amountTaxExcl, amountTaxIncl decimal.Decimal) (bool, error) {
	res := r.db.WithContext(ctx).Exec(`
		UPDATE order_details
		SET product_quantity_refunded = product_quantity_refunded + ?,
			total_refunded_tax_excl = total_refunded_tax_excl + ?,
			total_refunded_tax_incl = total_refunded_tax_incl + ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND product_quantity_refunded + ? <= product_quantity
	`, qty, amountTaxExcl, amountTaxIncl, orderDetailID, qty)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *repository) CreateRefund(ctx context.Context, refund *models.OrderRefund) error {
	return r.db.WithContext(ctx).Create(refund).Error
}

func (r *repository) Restock(ctx context.Context, key StockKey, qty int) error {
	if qty <= 0 {
		return nil
	}
	res := r.db.WithContext(ctx).Exec(`
		UPDATE stock_available
		SET quantity = quantity + ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE product_id = ? AND product_attribute_id = ?
	`, qty, key.ProductID, key.ProductAttributeID)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	// Lines sold without a tracked stock row get one holding the returned units.
	return r.db.WithContext(ctx).Create(&models.StockAvailable{
		ProductID:          key.ProductID,
		ProductAttributeID: key.ProductAttributeID,
		Quantity:           qty,
		OutOfStock:         enums.OutOfStockPolicyDefault,
	}).Error
}

func (r *repository) TouchOrder(ctx context.Context, orderID int64) error {
	return r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("updated_at", time.Now().UTC()).Error
}

func (r *repository) FindOrdersUpdatedSince(ctx context.Context, since time.Time, params pagination.Params) (*OrderPage, error) {
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, err
	}

	query := r.db.WithContext(ctx).
		Model(&models.Order{}).
		Where("updated_at >= ?", since)
	if cursor != nil {
		query = query.Where("((updated_at > ?) OR (updated_at = ? AND id > ?))", cursor.UpdatedAt, cursor.UpdatedAt, cursor.ID)
	}

	limit := pagination.NormalizeLimit(params.Limit)
	var rows []models.Order
	err = query.
		Order("updated_at ASC, id ASC").
		Limit(pagination.LimitWithBuffer(params.Limit)).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	page := &OrderPage{Orders: rows}
	if len(rows) > limit {
		page.Orders = rows[:limit]
		last := page.Orders[limit-1]
		page.NextCursor = pagination.EncodeCursor(pagination.Cursor{UpdatedAt: last.UpdatedAt, ID: last.ID})
	}
	return page, nil
}

func (r *repository) FindRefundAnomalies(ctx context.Context, limit int) ([]models.OrderDetail, error) {
	var rows []models.OrderDetail
	err := r.db.WithContext(ctx).
		Where("product_quantity_refunded > product_quantity").
		Order("id ASC").
		Limit(pagination.NormalizeLimit(limit)).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
