package models

import (
	"time"
)

// Order is the header row every order detail belongs to.
type Order struct {
	ID         int64     `gorm:"column:id;primaryKey"`
	Reference  string    `gorm:"column:reference;not null"`
	CurrencyID int64     `gorm:"column:currency_id;not null"`
	Currency   *Currency `gorm:"foreignKey:CurrencyID"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
