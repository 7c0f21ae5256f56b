package orderview

import (
	"encoding/json"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/orderview-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/orderview-backend/pkg/errors"
)

// LineItemParams carries every value a LineItem is built from. Callers are
// responsible for formatting the display strings; the raw decimals are kept
// exactly as supplied.
type LineItemParams struct {
	ID                  int64
	OrderDetailID       *int64
	Name                string
	Reference           string
	SupplierReference   string
	Location            string
	Type                enums.LineItemType
	Quantity            int
	QuantityRefunded    int
	UnitPrice           string
	TotalPrice          string
	UnitPriceTaxExclRaw decimal.Decimal
	UnitPriceTaxInclRaw decimal.Decimal
	TaxRate             decimal.Decimal
	AmountRefunded      string
	AmountRefundable    string
	AmountRefundableRaw decimal.Decimal
	AvailableQuantity   int
	AvailableOutOfStock bool
	ImagePath           *string
	OrderInvoiceID      *int64
	OrderInvoiceNumber  string
	PackItems           []*LineItem
	Customizations      *Customizations
}

// LineItem is a read-only view of one product line of an order. Values are
// fixed at construction and safe to share between goroutines.
type LineItem struct {
	id                  int64
	orderDetailID       *int64
	name                string
	reference           string
	supplierReference   string
	location            string
	itemType            enums.LineItemType
	quantity            int
	quantityRefunded    int
	unitPrice           string
	totalPrice          string
	unitPriceTaxExclRaw decimal.Decimal
	unitPriceTaxInclRaw decimal.Decimal
	taxRate             decimal.Decimal
	amountRefunded      string
	amountRefundable    string
	amountRefundableRaw decimal.Decimal
	availableQuantity   int
	availableOutOfStock bool
	imagePath           *string
	orderInvoiceID      *int64
	orderInvoiceNumber  string
	packItems           []*LineItem
	customizations      *Customizations
}

// NewLineItem validates params and returns the line item.
func NewLineItem(p LineItemParams) (*LineItem, error) {
	if p.ID <= 0 {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "product id must be positive, got %d", p.ID)
	}
	if !p.Type.IsValid() {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "invalid line item type %q", p.Type)
	}
	if p.Quantity < 0 {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "quantity must not be negative, got %d", p.Quantity)
	}
	if p.QuantityRefunded < 0 {
		return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "refunded quantity must not be negative, got %d", p.QuantityRefunded)
	}
	if p.QuantityRefunded > p.Quantity {
		return nil, pkgerrors.Newf(pkgerrors.CodeInvalidState, "refunded quantity %d exceeds ordered quantity %d", p.QuantityRefunded, p.Quantity)
	}
	if p.Type.IsPack() && len(p.PackItems) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeInvalidState, "pack line item has no pack items")
	}
	if !p.Type.IsPack() && len(p.PackItems) > 0 {
		return nil, pkgerrors.Newf(pkgerrors.CodeInvalidState, "%s line item cannot carry pack items", p.Type)
	}
	for i, child := range p.PackItems {
		if child == nil {
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "pack item %d is nil", i)
		}
	}

	var packItems []*LineItem
	if len(p.PackItems) > 0 {
		packItems = make([]*LineItem, len(p.PackItems))
		copy(packItems, p.PackItems)
	}

	return &LineItem{
		id:                  p.ID,
		orderDetailID:       cloneInt64(p.OrderDetailID),
		name:                p.Name,
		reference:           p.Reference,
		supplierReference:   p.SupplierReference,
		location:            p.Location,
		itemType:            p.Type,
		quantity:            p.Quantity,
		quantityRefunded:    p.QuantityRefunded,
		unitPrice:           p.UnitPrice,
		totalPrice:          p.TotalPrice,
		unitPriceTaxExclRaw: p.UnitPriceTaxExclRaw,
		unitPriceTaxInclRaw: p.UnitPriceTaxInclRaw,
		taxRate:             p.TaxRate,
		amountRefunded:      p.AmountRefunded,
		amountRefundable:    p.AmountRefundable,
		amountRefundableRaw: p.AmountRefundableRaw,
		availableQuantity:   p.AvailableQuantity,
		availableOutOfStock: p.AvailableOutOfStock,
		imagePath:           cloneString(p.ImagePath),
		orderInvoiceID:      cloneInt64(p.OrderInvoiceID),
		orderInvoiceNumber:  p.OrderInvoiceNumber,
		packItems:           packItems,
		customizations:      p.Customizations.clone(),
	}, nil
}

// QuantityRefundable is the number of units that can still be refunded.
func (l *LineItem) QuantityRefundable() int {
	return l.quantity - l.quantityRefunded
}

// IsRefundable reports whether at least one unit remains unrefunded.
func (l *LineItem) IsRefundable() bool {
	return l.quantity > l.quantityRefunded
}

func (l *LineItem) ID() int64 {
	return l.id
}

func (l *LineItem) Name() string {
	return l.name
}

func (l *LineItem) Reference() string {
	return l.reference
}

func (l *LineItem) SupplierReference() string {
	return l.supplierReference
}

func (l *LineItem) Location() string {
	return l.location
}

func (l *LineItem) Type() enums.LineItemType {
	return l.itemType
}

func (l *LineItem) Quantity() int {
	return l.quantity
}

func (l *LineItem) QuantityRefunded() int {
	return l.quantityRefunded
}

func (l *LineItem) UnitPrice() string {
	return l.unitPrice
}

func (l *LineItem) TotalPrice() string {
	return l.totalPrice
}

func (l *LineItem) AmountRefunded() string {
	return l.amountRefunded
}

func (l *LineItem) AmountRefundable() string {
	return l.amountRefundable
}

func (l *LineItem) AvailableQuantity() int {
	return l.availableQuantity
}

func (l *LineItem) AvailableOutOfStock() bool {
	return l.availableOutOfStock
}

func (l *LineItem) OrderInvoiceNumber() string {
	return l.orderInvoiceNumber
}

func (l *LineItem) UnitPriceTaxExclRaw() decimal.Decimal {
	return l.unitPriceTaxExclRaw
}

func (l *LineItem) UnitPriceTaxInclRaw() decimal.Decimal {
	return l.unitPriceTaxInclRaw
}

func (l *LineItem) TaxRate() decimal.Decimal {
	return l.taxRate
}

func (l *LineItem) AmountRefundableRaw() decimal.Decimal {
	return l.amountRefundableRaw
}

// OrderDetailID returns nil for pack children.
func (l *LineItem) OrderDetailID() *int64 {
	return cloneInt64(l.orderDetailID)
}

func (l *LineItem) ImagePath() *string {
	return cloneString(l.imagePath)
}

func (l *LineItem) OrderInvoiceID() *int64 {
	return cloneInt64(l.orderInvoiceID)
}

func (l *LineItem) Customizations() *Customizations {
	return l.customizations.clone()
}

// PackItems returns a copy of the children in their original order.
func (l *LineItem) PackItems() []*LineItem {
	out := make([]*LineItem, len(l.packItems))
	copy(out, l.packItems)
	return out
}

// Serialize produces the export view. Pack children are serialized
// recursively and keep their order.
func (l *LineItem) Serialize() Export {
	children := make([]Export, 0, len(l.packItems))
	for _, child := range l.packItems {
		children = append(children, child.Serialize())
	}
	return Export{
		ID:                  l.id,
		OrderDetailID:       cloneInt64(l.orderDetailID),
		Name:                l.name,
		Reference:           l.reference,
		SupplierReference:   l.supplierReference,
		Location:            l.location,
		ImagePath:           cloneString(l.imagePath),
		Quantity:            l.quantity,
		AvailableQuantity:   l.availableQuantity,
		UnitPrice:           l.unitPrice,
		UnitPriceTaxExclRaw: l.unitPriceTaxExclRaw,
		UnitPriceTaxInclRaw: l.unitPriceTaxInclRaw,
		TotalPrice:          l.totalPrice,
		TaxRate:             l.taxRate,
		Type:                l.itemType,
		PackItems:           children,
	}
}

func (l *LineItem) MarshalJSON() ([]byte, error) {
	return json.Marshal(l.Serialize())
}

func cloneInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
