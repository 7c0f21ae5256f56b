package models

type ProductImage struct {
	ID        int64  `gorm:"column:id;primaryKey"`
	ProductID int64  `gorm:"column:product_id;not null;index"`
	Path      string `gorm:"column:path;not null"`
	Cover     bool   `gorm:"column:cover;not null;default:false"`
	Position  int    `gorm:"column:position;not null;default:0"`
}
