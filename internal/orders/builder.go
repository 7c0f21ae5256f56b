package orders

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/angelmondragon/orderview-backend/internal/orderview"
	"github.com/angelmondragon/orderview-backend/pkg/config"
	"github.com/angelmondragon/orderview-backend/pkg/db"
	"github.com/angelmondragon/orderview-backend/pkg/db/models"
	"github.com/angelmondragon/orderview-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/orderview-backend/pkg/errors"
	"github.com/angelmondragon/orderview-backend/pkg/money"
)

// fallbackPrecision formats amounts when the order currency cannot be read.
const fallbackPrecision = 2

// BuilderConfig holds the shop display settings applied to every order.
type BuilderConfig struct {
	PriceDisplay     enums.PriceDisplay
	Rounding         enums.RoundingMode
	DecimalSeparator string
	GroupSeparator   string
	ImageBaseURL     string
	InvoicePrefix    string
	AllowBackorders  bool
}

// BuilderConfigFrom maps the pricing configuration group.
func BuilderConfigFrom(cfg config.PricingConfig) BuilderConfig {
	return BuilderConfig{
		PriceDisplay:     cfg.Display(),
		Rounding:         cfg.Rounding(),
		DecimalSeparator: cfg.DecimalSeparator,
		GroupSeparator:   cfg.GroupSeparator,
		ImageBaseURL:     cfg.ImageBaseURL,
		InvoicePrefix:    cfg.InvoicePrefix,
		AllowBackorders:  cfg.AllowBackorders,
	}
}

// Builder assembles the line items of an order from persisted rows.
type Builder struct {
	repo Repository
	cfg  BuilderConfig
}

func NewBuilder(repo Repository, cfg BuilderConfig) *Builder {
	if !cfg.PriceDisplay.IsValid() {
		cfg.PriceDisplay = enums.PriceDisplayTaxIncluded
	}
	return &Builder{repo: repo, cfg: cfg}
}

// Build returns the top-level line items of orderID in order detail order.
// Any line that cannot be rendered fails the whole order.
func (b *Builder) Build(ctx context.Context, orderID int64) ([]*orderview.LineItem, error) {
	formatter, err := b.orderFormatter(ctx, orderID)
	if err != nil {
		return nil, err
	}

	details, err := b.repo.FindOrderDetails(ctx, orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order details")
	}
	if len(details) == 0 {
		return []*orderview.LineItem{}, nil
	}

	snap, err := b.loadSnapshot(ctx, details)
	if err != nil {
		return nil, err
	}

	lines := make([]*orderview.LineItem, 0, len(details))
	for i := range details {
		line, err := b.buildLine(&details[i], snap, formatter)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, nil
}

// BuildLine returns the line item backed by orderDetailID. Only that detail
// and its catalog rows are loaded, so other lines of the order cannot fail it.
func (b *Builder) BuildLine(ctx context.Context, orderID, orderDetailID int64) (*orderview.LineItem, error) {
	formatter, err := b.orderFormatter(ctx, orderID)
	if err != nil {
		return nil, err
	}

	detail, err := b.repo.FindOrderDetail(ctx, orderID, orderDetailID)
	if err != nil {
		if db.IsRecordNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order detail not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order detail")
	}

	snap, err := b.loadSnapshot(ctx, []models.OrderDetail{*detail})
	if err != nil {
		return nil, err
	}
	return b.buildLine(detail, snap, formatter)
}

// summarize computes the refund summary straight from a detail row, without
// catalog lookups. The invoice number is left empty.
func (b *Builder) summarize(ctx context.Context, orderID int64, d *models.OrderDetail) RefundSummary {
	formatter, err := b.orderFormatter(ctx, orderID)
	if err != nil {
		formatter = money.Formatter{
			Precision:        fallbackPrecision,
			Rounding:         b.cfg.Rounding,
			DecimalSeparator: b.cfg.DecimalSeparator,
			GroupSeparator:   b.cfg.GroupSeparator,
		}
	}
	p := b.pricesFor(d)
	refundable := d.ProductQuantity - d.ProductQuantityRefunded
	if refundable < 0 {
		refundable = 0
	}
	return RefundSummary{
		OrderID:             orderID,
		OrderDetailID:       d.ID,
		Quantity:            d.ProductQuantity,
		QuantityRefunded:    d.ProductQuantityRefunded,
		QuantityRefundable:  refundable,
		Refundable:          refundable > 0,
		AmountRefunded:      formatter.Format(p.refunded),
		AmountRefundable:    formatter.Format(p.refundable),
		AmountRefundableRaw: p.refundable,
		OrderInvoiceID:      d.OrderInvoiceID,
	}
}

func (b *Builder) orderFormatter(ctx context.Context, orderID int64) (money.Formatter, error) {
	order, err := b.repo.FindOrder(ctx, orderID)
	if err != nil {
		if db.IsRecordNotFound(err) {
			return money.Formatter{}, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return money.Formatter{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if order.Currency == nil {
		return money.Formatter{}, pkgerrors.Newf(pkgerrors.CodeInvalidState, "order %d has no currency", order.ID)
	}
	return money.Formatter{
		Precision:        order.Currency.Precision,
		Rounding:         b.cfg.Rounding,
		Symbol:           order.Currency.Symbol,
		SymbolAfter:      order.Currency.SymbolAfter,
		DecimalSeparator: b.cfg.DecimalSeparator,
		GroupSeparator:   b.cfg.GroupSeparator,
	}, nil
}

// linePrices are the raw amounts of a detail in the configured display mode.
type linePrices struct {
	unit       decimal.Decimal
	total      decimal.Decimal
	refunded   decimal.Decimal
	refundable decimal.Decimal
}

func (b *Builder) pricesFor(d *models.OrderDetail) linePrices {
	p := linePrices{unit: d.UnitPriceTaxIncl, refunded: d.TotalRefundedTaxIncl}
	if b.cfg.PriceDisplay == enums.PriceDisplayTaxExcluded {
		p.unit = d.UnitPriceTaxExcl
		p.refunded = d.TotalRefundedTaxExcl
	}
	p.total = p.unit.Mul(decimal.NewFromInt(int64(d.ProductQuantity)))
	p.refundable = p.total.Sub(p.refunded)
	if p.refundable.IsNegative() {
		p.refundable = decimal.Zero
	}
	return p
}

// snapshot is every catalog row needed to render one order.
type snapshot struct {
	products       map[int64]models.Product
	combinations   map[int64]models.ProductAttribute
	stock          map[StockKey]models.StockAvailable
	packItems      map[int64][]models.PackItem
	images         map[int64]models.ProductImage
	covers         map[int64]models.ProductImage
	invoices       map[int64]models.OrderInvoice
	customizations map[int64][]models.Customization
}

func (b *Builder) loadSnapshot(ctx context.Context, details []models.OrderDetail) (*snapshot, error) {
	productIDs := newIDSet()
	attributeIDs := newIDSet()
	invoiceIDs := newIDSet()
	detailIDs := make([]int64, 0, len(details))
	for _, d := range details {
		productIDs.add(d.ProductID)
		attributeIDs.add(d.ProductAttributeID)
		if d.OrderInvoiceID != nil {
			invoiceIDs.add(*d.OrderInvoiceID)
		}
		detailIDs = append(detailIDs, d.ID)
	}

	products, err := b.repo.FindProducts(ctx, productIDs.list())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products")
	}

	packIDs := newIDSet()
	for _, d := range details {
		if p, ok := products[d.ProductID]; ok && p.IsPack {
			packIDs.add(p.ID)
		}
	}
	packItems, err := b.repo.FindPackItems(ctx, packIDs.list())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load pack items")
	}

	childIDs := newIDSet()
	for _, items := range packItems {
		for _, item := range items {
			if _, ok := products[item.ProductID]; !ok {
				childIDs.add(item.ProductID)
			}
			attributeIDs.add(item.ProductAttributeID)
		}
	}
	if ids := childIDs.list(); len(ids) > 0 {
		children, err := b.repo.FindProducts(ctx, ids)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load pack products")
		}
		for id, p := range children {
			products[id] = p
		}
	}

	combinations, err := b.repo.FindCombinations(ctx, attributeIDs.list())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load combinations")
	}

	var keys []StockKey
	seenKeys := make(map[StockKey]struct{})
	addKey := func(k StockKey) {
		if _, ok := seenKeys[k]; !ok {
			seenKeys[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	allProductIDs := newIDSet()
	for _, d := range details {
		addKey(StockKey{ProductID: d.ProductID, ProductAttributeID: d.ProductAttributeID})
		allProductIDs.add(d.ProductID)
	}
	for _, items := range packItems {
		for _, item := range items {
			addKey(StockKey{ProductID: item.ProductID, ProductAttributeID: item.ProductAttributeID})
			allProductIDs.add(item.ProductID)
		}
	}
	stock, err := b.repo.FindStock(ctx, keys)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load stock")
	}

	imageRows, err := b.repo.FindImages(ctx, allProductIDs.list())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load images")
	}
	images := make(map[int64]models.ProductImage, len(imageRows))
	covers := make(map[int64]models.ProductImage)
	for _, img := range imageRows {
		images[img.ID] = img
		if img.Cover {
			if _, ok := covers[img.ProductID]; !ok {
				covers[img.ProductID] = img
			}
		}
	}

	invoices, err := b.repo.FindInvoices(ctx, invoiceIDs.list())
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load invoices")
	}

	customizations, err := b.repo.FindCustomizations(ctx, detailIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customizations")
	}

	return &snapshot{
		products:       products,
		combinations:   combinations,
		stock:          stock,
		packItems:      packItems,
		images:         images,
		covers:         covers,
		invoices:       invoices,
		customizations: customizations,
	}, nil
}

func (b *Builder) buildLine(d *models.OrderDetail, snap *snapshot, f money.Formatter) (*orderview.LineItem, error) {
	product, hasProduct := snap.products[d.ProductID]

	lineType := enums.LineItemTypeProductWithoutCombinations
	switch {
	case hasProduct && product.IsPack:
		lineType = enums.LineItemTypePack
	case d.ProductAttributeID != 0:
		lineType = enums.LineItemTypeProductWithCombinations
	}

	prices := b.pricesFor(d)

	key := StockKey{ProductID: d.ProductID, ProductAttributeID: d.ProductAttributeID}
	available, backorders, location := b.stockFor(key, product, snap)

	invoiceNumber := ""
	if d.OrderInvoiceID != nil {
		if inv, ok := snap.invoices[*d.OrderInvoiceID]; ok {
			invoiceNumber = b.invoiceNumber(inv)
		}
	}

	params := orderview.LineItemParams{
		ID:                  d.ProductID,
		OrderDetailID:       &d.ID,
		Name:                d.ProductName,
		Reference:           d.ProductReference,
		SupplierReference:   d.ProductSupplierReference,
		Location:            location,
		Type:                lineType,
		Quantity:            d.ProductQuantity,
		QuantityRefunded:    d.ProductQuantityRefunded,
		UnitPrice:           f.Format(prices.unit),
		TotalPrice:          f.Format(prices.total),
		UnitPriceTaxExclRaw: d.UnitPriceTaxExcl,
		UnitPriceTaxInclRaw: d.UnitPriceTaxIncl,
		TaxRate:             d.TaxRate,
		AmountRefunded:      f.Format(prices.refunded),
		AmountRefundable:    f.Format(prices.refundable),
		AmountRefundableRaw: prices.refundable,
		AvailableQuantity:   available,
		AvailableOutOfStock: backorders,
		ImagePath:           b.imageFor(key, snap),
		OrderInvoiceID:      d.OrderInvoiceID,
		OrderInvoiceNumber:  invoiceNumber,
		Customizations:      customizationsFrom(snap.customizations[d.ID]),
	}

	if lineType == enums.LineItemTypePack {
		children, err := b.buildPackChildren(d, product, snap, f, invoiceNumber)
		if err != nil {
			return nil, err
		}
		params.PackItems = children
	}

	line, err := orderview.NewLineItem(params)
	if err != nil {
		return nil, wrapLineError(err, fmt.Sprintf("order detail %d", d.ID))
	}
	return line, nil
}

func (b *Builder) buildPackChildren(d *models.OrderDetail, pack models.Product, snap *snapshot, f money.Formatter, invoiceNumber string) ([]*orderview.LineItem, error) {
	items := snap.packItems[pack.ID]
	children := make([]*orderview.LineItem, 0, len(items))
	zero := f.Format(decimal.Zero)
	for _, item := range items {
		product, ok := snap.products[item.ProductID]
		if !ok {
			return nil, pkgerrors.Newf(pkgerrors.CodeInvalidState, "pack %d references unknown product %d", pack.ID, item.ProductID)
		}

		childType := enums.LineItemTypeProductWithoutCombinations
		reference := product.Reference
		supplierReference := product.SupplierReference
		if item.ProductAttributeID != 0 {
			childType = enums.LineItemTypeProductWithCombinations
			if comb, ok := snap.combinations[item.ProductAttributeID]; ok {
				if comb.Reference != "" {
					reference = comb.Reference
				}
				if comb.SupplierReference != "" {
					supplierReference = comb.SupplierReference
				}
			}
		}

		key := StockKey{ProductID: item.ProductID, ProductAttributeID: item.ProductAttributeID}
		available, backorders, location := b.stockFor(key, product, snap)

		child, err := orderview.NewLineItem(orderview.LineItemParams{
			ID:                  product.ID,
			Name:                product.Name,
			Reference:           reference,
			SupplierReference:   supplierReference,
			Location:            location,
			Type:                childType,
			Quantity:            item.Quantity * d.ProductQuantity,
			QuantityRefunded:    item.Quantity * d.ProductQuantityRefunded,
			UnitPrice:           zero,
			TotalPrice:          zero,
			AmountRefunded:      zero,
			AmountRefundable:    zero,
			AvailableQuantity:   available,
			AvailableOutOfStock: backorders,
			ImagePath:           b.imageFor(key, snap),
			OrderInvoiceID:      d.OrderInvoiceID,
			OrderInvoiceNumber:  invoiceNumber,
		})
		if err != nil {
			return nil, wrapLineError(err, fmt.Sprintf("pack item %d of order detail %d", item.ID, d.ID))
		}
		children = append(children, child)
	}
	return children, nil
}

func (b *Builder) stockFor(key StockKey, product models.Product, snap *snapshot) (int, bool, string) {
	location := product.Location
	if key.ProductAttributeID != 0 {
		if comb, ok := snap.combinations[key.ProductAttributeID]; ok && comb.Location != "" {
			location = comb.Location
		}
	}

	policy := product.OutOfStock
	quantity := 0
	if row, ok := snap.stock[key]; ok {
		quantity = row.Quantity
		if row.OutOfStock.IsValid() {
			policy = row.OutOfStock
		}
		if row.Location != "" {
			location = row.Location
		}
	}
	return quantity, policy.AllowsBackorder(b.cfg.AllowBackorders), location
}

func (b *Builder) imageFor(key StockKey, snap *snapshot) *string {
	if key.ProductAttributeID != 0 {
		if comb, ok := snap.combinations[key.ProductAttributeID]; ok && comb.ImageID != nil {
			if img, ok := snap.images[*comb.ImageID]; ok {
				return b.imageURL(img)
			}
		}
	}
	if img, ok := snap.covers[key.ProductID]; ok {
		return b.imageURL(img)
	}
	return nil
}

func (b *Builder) imageURL(img models.ProductImage) *string {
	path := strings.TrimLeft(img.Path, "/")
	if base := strings.TrimRight(b.cfg.ImageBaseURL, "/"); base != "" {
		path = base + "/" + path
	}
	return &path
}

func (b *Builder) invoiceNumber(inv models.OrderInvoice) string {
	return fmt.Sprintf("%s%06d", b.cfg.InvoicePrefix, inv.Number)
}

func customizationsFrom(rows []models.Customization) *orderview.Customizations {
	if len(rows) == 0 {
		return nil
	}
	out := &orderview.Customizations{Items: make([]orderview.Customization, 0, len(rows))}
	for _, row := range rows {
		fields := make([]orderview.CustomizationField, 0, len(row.Data))
		for _, data := range row.Data {
			fields = append(fields, orderview.CustomizationField{
				Type:  data.Type,
				Name:  data.Name,
				Value: data.Value,
			})
		}
		out.Items = append(out.Items, orderview.Customization{
			ID:       row.ID,
			Quantity: row.Quantity,
			Fields:   fields,
		})
	}
	return out
}

// wrapLineError keeps the typed code of a rejected line while naming the row.
func wrapLineError(err error, where string) error {
	code := pkgerrors.CodeInvalidState
	message := where + ": " + err.Error()
	if typed := pkgerrors.As(err); typed != nil {
		code = typed.Code()
		message = where + ": " + typed.Message()
	}
	return pkgerrors.Wrap(code, err, message)
}

type idSet struct {
	seen map[int64]struct{}
	ids  []int64
}

func newIDSet() *idSet {
	return &idSet{seen: make(map[int64]struct{})}
}

// add ignores zero ids.
func (s *idSet) add(id int64) {
	if id == 0 {
		return
	}
	if _, ok := s.seen[id]; ok {
		return
	}
	s.seen[id] = struct{}{}
	s.ids = append(s.ids, id)
}

func (s *idSet) list() []int64 {
	return s.ids
}
