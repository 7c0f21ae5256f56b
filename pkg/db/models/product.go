package models

import (
	"time"

	"github.com/angelmondragon/orderview-backend/pkg/enums"
)

// Product is the catalog entry an order detail points at.
type Product struct {
	ID                int64                  `gorm:"column:id;primaryKey"`
	Name              string                 `gorm:"column:name;not null"`
	Reference         string                 `gorm:"column:reference;not null;default:''"`
	SupplierReference string                 `gorm:"column:supplier_reference;not null;default:''"`
	Location          string                 `gorm:"column:location;not null;default:''"`
	IsPack            bool                   `gorm:"column:is_pack;not null;default:false"`
	OutOfStock        enums.OutOfStockPolicy `gorm:"column:out_of_stock;not null;default:'default'"`
	CreatedAt         time.Time              `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time              `gorm:"column:updated_at;autoUpdateTime"`
}
