package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderDetail is the persisted snapshot of one ordered product or combination.
// Names and references are frozen at checkout time.
type OrderDetail struct {
	ID                       int64           `gorm:"column:id;primaryKey"`
	OrderID                  int64           `gorm:"column:order_id;not null;index"`
	OrderInvoiceID           *int64          `gorm:"column:order_invoice_id"`
	ProductID                int64           `gorm:"column:product_id;not null"`
	ProductAttributeID       int64           `gorm:"column:product_attribute_id;not null;default:0"`
	ProductName              string          `gorm:"column:product_name;not null"`
	ProductReference         string          `gorm:"column:product_reference;not null;default:''"`
	ProductSupplierReference string          `gorm:"column:product_supplier_reference;not null;default:''"`
	ProductQuantity          int             `gorm:"column:product_quantity;not null"`
	ProductQuantityRefunded  int             `gorm:"column:product_quantity_refunded;not null;default:0"`
	UnitPriceTaxExcl         decimal.Decimal `gorm:"column:unit_price_tax_excl;type:numeric(20,6);not null"`
	UnitPriceTaxIncl         decimal.Decimal `gorm:"column:unit_price_tax_incl;type:numeric(20,6);not null"`
	TotalRefundedTaxExcl     decimal.Decimal `gorm:"column:total_refunded_tax_excl;type:numeric(20,6);not null;default:0"`
	TotalRefundedTaxIncl     decimal.Decimal `gorm:"column:total_refunded_tax_incl;type:numeric(20,6);not null;default:0"`
	TaxRate                  decimal.Decimal `gorm:"column:tax_rate;type:numeric(10,3);not null;default:0"`
	CreatedAt                time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt                time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
