package orderview

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/orderview-backend/pkg/enums"
)

// Export is the public projection of a LineItem. Refund amounts, invoice
// data, customizations and backorder flags are not part of it.
type Export struct {
	ID                  int64              `json:"id"`
	OrderDetailID       *int64             `json:"orderDetailId"`
	Name                string             `json:"name"`
	Reference           string             `json:"reference"`
	SupplierReference   string             `json:"supplierReference"`
	Location            string             `json:"location"`
	ImagePath           *string            `json:"imagePath"`
	Quantity            int                `json:"quantity"`
	AvailableQuantity   int                `json:"availableQuantity"`
	UnitPrice           string             `json:"unitPrice"`
	UnitPriceTaxExclRaw decimal.Decimal    `json:"unitPriceTaxExclRaw"`
	UnitPriceTaxInclRaw decimal.Decimal    `json:"unitPriceTaxInclRaw"`
	TotalPrice          string             `json:"totalPrice"`
	TaxRate             decimal.Decimal    `json:"taxRate"`
	Type                enums.LineItemType `json:"type"`
	PackItems           []Export           `json:"packItems"`
}
