package orders

import (
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/orderview-backend/internal/orderview"
	"github.com/angelmondragon/orderview-backend/pkg/db/models"
)

// OrderPage is one keyset page of orders ordered by (updated_at, id).
type OrderPage struct {
	Orders     []models.Order
	NextCursor string
}

// RefundSummary describes what is left to refund on a single order line.
type RefundSummary struct {
	OrderID             int64           `json:"orderId"`
	OrderDetailID       int64           `json:"orderDetailId"`
	Quantity            int             `json:"quantity"`
	QuantityRefunded    int             `json:"quantityRefunded"`
	QuantityRefundable  int             `json:"quantityRefundable"`
	Refundable          bool            `json:"refundable"`
	AmountRefunded      string          `json:"amountRefunded"`
	AmountRefundable    string          `json:"amountRefundable"`
	AmountRefundableRaw decimal.Decimal `json:"amountRefundableRaw"`
	OrderInvoiceID      *int64          `json:"orderInvoiceId"`
	OrderInvoiceNumber  string          `json:"orderInvoiceNumber"`
}

// RefundInput carries a partial refund request for one order line.
type RefundInput struct {
	OrderID       int64
	OrderDetailID int64
	Quantity      int
	Restock       bool
	EmployeeID    string
}

// RefundResult is returned after a refund has been committed. Line is nil
// when the refunded line could not be rebuilt; Summary then comes from the
// committed detail row.
type RefundResult struct {
	RefundID int64             `json:"refundId"`
	Summary  RefundSummary     `json:"summary"`
	Line     *orderview.Export `json:"line,omitempty"`
}

func summaryFromLine(orderID int64, line *orderview.LineItem) RefundSummary {
	summary := RefundSummary{
		OrderID:             orderID,
		Quantity:            line.Quantity(),
		QuantityRefunded:    line.QuantityRefunded(),
		QuantityRefundable:  line.QuantityRefundable(),
		Refundable:          line.IsRefundable(),
		AmountRefunded:      line.AmountRefunded(),
		AmountRefundable:    line.AmountRefundable(),
		AmountRefundableRaw: line.AmountRefundableRaw(),
		OrderInvoiceID:      line.OrderInvoiceID(),
		OrderInvoiceNumber:  line.OrderInvoiceNumber(),
	}
	if id := line.OrderDetailID(); id != nil {
		summary.OrderDetailID = *id
	}
	return summary
}
