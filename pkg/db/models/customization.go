package models

import (
	"github.com/angelmondragon/orderview-backend/pkg/enums"
)

type Customization struct {
	ID            int64            `gorm:"column:id;primaryKey"`
	OrderDetailID int64            `gorm:"column:order_detail_id;not null;index"`
	Quantity      int              `gorm:"column:quantity;not null"`
	Data          []CustomizedData `gorm:"foreignKey:CustomizationID"`
}

// CustomizedData is one text value or uploaded file of a customization.
type CustomizedData struct {
	ID              int64                        `gorm:"column:id;primaryKey"`
	CustomizationID int64                        `gorm:"column:customization_id;not null;index"`
	Type            enums.CustomizationFieldType `gorm:"column:type;not null"`
	Name            string                       `gorm:"column:name;not null"`
	Value           string                       `gorm:"column:value;not null"`
	Position        int                          `gorm:"column:position;not null;default:0"`
}

func (CustomizedData) TableName() string { return "customized_data" }
