package orders

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/orderview-backend/internal/orderview"
	"github.com/angelmondragon/orderview-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/orderview-backend/pkg/errors"
)

func testBuilderConfig() BuilderConfig {
	return BuilderConfig{
		PriceDisplay:  enums.PriceDisplayTaxIncluded,
		Rounding:      enums.RoundingModeHalfUp,
		ImageBaseURL:  "https://cdn.test/img/",
		InvoicePrefix: "#IN",
	}
}

func linesByDetail(t *testing.T, lines []*orderview.LineItem) map[int64]*orderview.LineItem {
	t.Helper()
	out := make(map[int64]*orderview.LineItem, len(lines))
	for _, line := range lines {
		id := line.OrderDetailID()
		require.NotNil(t, id)
		out[*id] = line
	}
	return out
}

func TestBuilderBuildsOrderLines(t *testing.T) {
	db := setupOrdersTestDB(t)
	seedOrder(t, db)
	builder := NewBuilder(NewRepository(db), testBuilderConfig())

	lines, err := builder.Build(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, lines, 3)

	byDetail := linesByDetail(t, lines)

	shirt := byDetail[11]
	assert.Equal(t, int64(1), shirt.ID())
	assert.Equal(t, enums.LineItemTypeProductWithCombinations, shirt.Type())
	assert.Equal(t, "Hummingbird T-shirt - Size : S", shirt.Name())
	assert.Equal(t, "$24.00", shirt.UnitPrice())
	assert.Equal(t, "$120.00", shirt.TotalPrice())
	assert.Equal(t, "$48.00", shirt.AmountRefunded())
	assert.Equal(t, "$72.00", shirt.AmountRefundable())
	assert.True(t, dec("72").Equal(shirt.AmountRefundableRaw()))
	assert.Equal(t, 3, shirt.QuantityRefundable())
	assert.Equal(t, 300, shirt.AvailableQuantity())
	assert.False(t, shirt.AvailableOutOfStock())
	assert.Equal(t, "A-12", shirt.Location())
	require.NotNil(t, shirt.ImagePath())
	assert.Equal(t, "https://cdn.test/img/1/101.jpg", *shirt.ImagePath())
	assert.Equal(t, "#IN000042", shirt.OrderInvoiceNumber())
	require.NotNil(t, shirt.OrderInvoiceID())
	assert.Equal(t, int64(5), *shirt.OrderInvoiceID())
	assert.Nil(t, shirt.Customizations())

	mug := byDetail[12]
	assert.Equal(t, enums.LineItemTypeProductWithoutCombinations, mug.Type())
	assert.False(t, mug.IsRefundable())
	assert.Equal(t, "$0.00", mug.AmountRefundable())
	assert.Equal(t, -2, mug.AvailableQuantity())
	assert.True(t, mug.AvailableOutOfStock())
	require.NotNil(t, mug.ImagePath())
	assert.Equal(t, "https://cdn.test/img/2/200.jpg", *mug.ImagePath())
	assert.Empty(t, mug.OrderInvoiceNumber())
	assert.Nil(t, mug.OrderInvoiceID())
	require.NotNil(t, mug.Customizations())
	require.Equal(t, 1, mug.Customizations().Len())
	fields := mug.Customizations().Items[0].Fields
	require.Len(t, fields, 2)
	assert.Equal(t, enums.CustomizationFieldTypeText, fields[0].Type)
	assert.Equal(t, "Hi mom", fields[0].Value)
	assert.Equal(t, enums.CustomizationFieldTypeFile, fields[1].Type)
}

func TestBuilderExpandsPackChildren(t *testing.T) {
	db := setupOrdersTestDB(t)
	seedOrder(t, db)
	builder := NewBuilder(NewRepository(db), testBuilderConfig())

	lines, err := builder.Build(context.Background(), 1)
	require.NoError(t, err)
	pack := linesByDetail(t, lines)[13]

	assert.Equal(t, enums.LineItemTypePack, pack.Type())
	assert.Equal(t, "$60.00", pack.UnitPrice())
	assert.Equal(t, "$120.00", pack.TotalPrice())
	assert.Nil(t, pack.ImagePath())
	assert.Equal(t, 5, pack.AvailableQuantity())
	assert.False(t, pack.AvailableOutOfStock())

	children := pack.PackItems()
	require.Len(t, children, 2)

	mug := children[0]
	assert.Equal(t, int64(2), mug.ID())
	assert.Nil(t, mug.OrderDetailID())
	assert.Equal(t, enums.LineItemTypeProductWithoutCombinations, mug.Type())
	assert.Equal(t, 4, mug.Quantity())
	assert.Equal(t, 2, mug.QuantityRefunded())
	assert.Equal(t, "$0.00", mug.UnitPrice())
	assert.Empty(t, mug.PackItems())

	shirt := children[1]
	assert.Equal(t, int64(1), shirt.ID())
	assert.Equal(t, enums.LineItemTypeProductWithCombinations, shirt.Type())
	assert.Equal(t, "demo_1_s", shirt.Reference())
	assert.Equal(t, 2, shirt.Quantity())
	assert.Equal(t, 1, shirt.QuantityRefunded())
	require.NotNil(t, shirt.ImagePath())
	assert.Equal(t, "https://cdn.test/img/1/101.jpg", *shirt.ImagePath())

	exported := pack.Serialize()
	require.Len(t, exported.PackItems, 2)
	assert.Equal(t, int64(2), exported.PackItems[0].ID)
	assert.Equal(t, int64(1), exported.PackItems[1].ID)
}

func TestBuilderTaxExcludedDisplay(t *testing.T) {
	db := setupOrdersTestDB(t)
	seedOrder(t, db)
	cfg := testBuilderConfig()
	cfg.PriceDisplay = enums.PriceDisplayTaxExcluded
	builder := NewBuilder(NewRepository(db), cfg)

	line, err := builder.BuildLine(context.Background(), 1, 11)
	require.NoError(t, err)

	assert.Equal(t, "$20.00", line.UnitPrice())
	assert.Equal(t, "$100.00", line.TotalPrice())
	assert.Equal(t, "$40.00", line.AmountRefunded())
	assert.Equal(t, "$60.00", line.AmountRefundable())
	assert.True(t, dec("20").Equal(line.UnitPriceTaxExclRaw()))
	assert.True(t, dec("24").Equal(line.UnitPriceTaxInclRaw()))
}

func TestBuilderUsesCurrencyLayout(t *testing.T) {
	db := setupOrdersTestDB(t)
	seedOrder(t, db)
	require.NoError(t, db.Exec("UPDATE currencies SET symbol = '€', symbol_after = 1 WHERE id = 1").Error)

	cfg := testBuilderConfig()
	cfg.DecimalSeparator = ","
	cfg.GroupSeparator = "."
	require.NoError(t, db.Exec("UPDATE order_details SET unit_price_tax_incl = '1234.5' WHERE id = 11").Error)
	builder := NewBuilder(NewRepository(db), cfg)

	line, err := builder.BuildLine(context.Background(), 1, 11)
	require.NoError(t, err)
	assert.Equal(t, "1.234,50 €", line.UnitPrice())
	assert.Equal(t, "6.172,50 €", line.TotalPrice())
}

func TestBuilderBackorderDefaultFollowsConfig(t *testing.T) {
	db := setupOrdersTestDB(t)
	seedOrder(t, db)
	cfg := testBuilderConfig()
	cfg.AllowBackorders = true
	builder := NewBuilder(NewRepository(db), cfg)

	line, err := builder.BuildLine(context.Background(), 1, 13)
	require.NoError(t, err)
	assert.True(t, line.AvailableOutOfStock())

	shirt, err := builder.BuildLine(context.Background(), 1, 11)
	require.NoError(t, err)
	assert.False(t, shirt.AvailableOutOfStock(), "explicit deny wins over the shop default")
}

func TestBuilderErrors(t *testing.T) {
	db := setupOrdersTestDB(t)
	seedOrder(t, db)
	builder := NewBuilder(NewRepository(db), testBuilderConfig())
	ctx := context.Background()

	_, err := builder.Build(ctx, 404)
	require.Error(t, err)
	assertCode(t, err, pkgerrors.CodeNotFound)

	_, err = builder.BuildLine(ctx, 1, 999)
	require.Error(t, err)
	assertCode(t, err, pkgerrors.CodeNotFound)

	require.NoError(t, db.Exec("UPDATE order_details SET product_quantity_refunded = 7 WHERE id = 11").Error)
	_, err = builder.Build(ctx, 1)
	require.Error(t, err)
	assertCode(t, err, pkgerrors.CodeInvalidState)
	assert.Contains(t, err.Error(), "order detail 11")
}

func TestBuilderRejectsPackWithoutItems(t *testing.T) {
	db := setupOrdersTestDB(t)
	seedOrder(t, db)
	require.NoError(t, db.Exec("DELETE FROM pack_items").Error)
	builder := NewBuilder(NewRepository(db), testBuilderConfig())

	_, err := builder.Build(context.Background(), 1)
	require.Error(t, err)
	assertCode(t, err, pkgerrors.CodeInvalidState)

	_, err = builder.BuildLine(context.Background(), 1, 13)
	assertCode(t, err, pkgerrors.CodeInvalidState)

	// Other lines of the order still render on their own.
	line, err := builder.BuildLine(context.Background(), 1, 11)
	require.NoError(t, err)
	assert.Equal(t, "$72.00", line.AmountRefundable())
	assert.Equal(t, "#IN000042", line.OrderInvoiceNumber())
}

func TestBuilderEmptyOrder(t *testing.T) {
	db := setupOrdersTestDB(t)
	require.NoError(t, db.Exec("INSERT INTO currencies (id, iso_code, symbol) VALUES (1, 'USD', '$')").Error)
	require.NoError(t, db.Exec("INSERT INTO orders (id, reference, currency_id) VALUES (9, 'EMPTY', 1)").Error)
	builder := NewBuilder(NewRepository(db), testBuilderConfig())

	lines, err := builder.Build(context.Background(), 9)
	require.NoError(t, err)
	assert.NotNil(t, lines)
	assert.Empty(t, lines)
}

func assertCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	typed := pkgerrors.As(err)
	require.NotNil(t, typed, "expected typed error, got %v", err)
	assert.Equal(t, code, typed.Code())
}
