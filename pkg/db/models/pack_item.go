package models

// PackItem lists one component of a pack product.
type PackItem struct {
	ID                 int64 `gorm:"column:id;primaryKey"`
	PackProductID      int64 `gorm:"column:pack_product_id;not null;index"`
	ProductID          int64 `gorm:"column:product_id;not null"`
	ProductAttributeID int64 `gorm:"column:product_attribute_id;not null;default:0"`
	Quantity           int   `gorm:"column:quantity;not null"`
	Position           int   `gorm:"column:position;not null;default:0"`
}
