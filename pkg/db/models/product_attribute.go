package models

// ProductAttribute is a purchasable combination of a product.
type ProductAttribute struct {
	ID                int64  `gorm:"column:id;primaryKey"`
	ProductID         int64  `gorm:"column:product_id;not null;index"`
	Reference         string `gorm:"column:reference;not null;default:''"`
	SupplierReference string `gorm:"column:supplier_reference;not null;default:''"`
	Location          string `gorm:"column:location;not null;default:''"`
	ImageID           *int64 `gorm:"column:image_id"`
}
