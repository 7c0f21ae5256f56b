package models

import (
	"time"

	"github.com/angelmondragon/orderview-backend/pkg/enums"
)

// StockAvailable is the on-hand quantity of a product or combination.
type StockAvailable struct {
	ID                 int64                  `gorm:"column:id;primaryKey"`
	ProductID          int64                  `gorm:"column:product_id;not null"`
	ProductAttributeID int64                  `gorm:"column:product_attribute_id;not null;default:0"`
	Quantity           int                    `gorm:"column:quantity;not null;default:0"`
	OutOfStock         enums.OutOfStockPolicy `gorm:"column:out_of_stock;not null;default:'default'"`
	Location           string                 `gorm:"column:location;not null;default:''"`
	UpdatedAt          time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}

func (StockAvailable) TableName() string { return "stock_available" }
