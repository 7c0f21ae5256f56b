package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderRefund records a partial refund issued against an order detail.
type OrderRefund struct {
	ID            int64           `gorm:"column:id;primaryKey"`
	OrderID       int64           `gorm:"column:order_id;not null;index"`
	OrderDetailID int64           `gorm:"column:order_detail_id;not null"`
	Quantity      int             `gorm:"column:quantity;not null"`
	AmountTaxExcl decimal.Decimal `gorm:"column:amount_tax_excl;type:numeric(20,6);not null"`
	AmountTaxIncl decimal.Decimal `gorm:"column:amount_tax_incl;type:numeric(20,6);not null"`
	Restocked     bool            `gorm:"column:restocked;not null;default:false"`
	EmployeeID    string          `gorm:"column:employee_id;not null"`
	CreatedAt     time.Time       `gorm:"column:created_at;autoCreateTime"`
}
