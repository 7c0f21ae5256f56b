package models

import (
	"time"
)

type OrderInvoice struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	OrderID   int64     `gorm:"column:order_id;not null"`
	Number    int64     `gorm:"column:number;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}
