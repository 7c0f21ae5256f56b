package models

// Currency holds the display settings of an order currency.
type Currency struct {
	ID          int64  `gorm:"column:id;primaryKey"`
	ISOCode     string `gorm:"column:iso_code;not null"`
	Symbol      string `gorm:"column:symbol;not null"`
	Precision   int32  `gorm:"column:decimals;not null;default:2"`
	SymbolAfter bool   `gorm:"column:symbol_after;not null;default:false"`
}
