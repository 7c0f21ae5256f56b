package orders

import (
	"context"
	"net/http"

	"github.com/angelmondragon/orderview-backend/api/middleware"
	"github.com/angelmondragon/orderview-backend/api/responses"
	"github.com/angelmondragon/orderview-backend/api/validators"
	internalorders "github.com/angelmondragon/orderview-backend/internal/orders"
	"github.com/angelmondragon/orderview-backend/internal/orderview"
	pkgerrors "github.com/angelmondragon/orderview-backend/pkg/errors"
	"github.com/angelmondragon/orderview-backend/pkg/logger"
)

// orderViewService is the slice of orders.Service the admin handlers need.
type orderViewService interface {
	ExportOrderLines(ctx context.Context, orderID int64) ([]orderview.Export, error)
	RefundSummary(ctx context.Context, orderID, orderDetailID int64) (*internalorders.RefundSummary, error)
	RefundLine(ctx context.Context, input internalorders.RefundInput) (*internalorders.RefundResult, error)
}

// RefundRequest is the body of a partial refund.
type RefundRequest struct {
	Quantity int  `json:"quantity" validate:"required,gt=0"`
	Restock  bool `json:"restock"`
}

// Products returns the exported line items of an order, pack contents
// included.
func Products(svc orderViewService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order view service unavailable"))
			return
		}
		orderID, err := validators.ParsePathID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lines, err := svc.ExportOrderLines(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, lines)
	}
}

// RefundSummary reports the refunded and refundable amounts of one line.
func RefundSummary(svc orderViewService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order view service unavailable"))
			return
		}
		orderID, detailID, err := parseLinePath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.RefundSummary(r.Context(), orderID, detailID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

// Refund issues a partial refund of one order line on behalf of the
// authenticated employee.
func Refund(svc orderViewService, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "order view service unavailable"))
			return
		}
		orderID, detailID, err := parseLinePath(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		employeeID := middleware.EmployeeIDFromContext(r.Context())
		if employeeID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "employee context missing"))
			return
		}

		var req RefundRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.RefundLine(r.Context(), internalorders.RefundInput{
			OrderID:       orderID,
			OrderDetailID: detailID,
			Quantity:      req.Quantity,
			Restock:       req.Restock,
			EmployeeID:    employeeID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

func parseLinePath(r *http.Request) (int64, int64, error) {
	orderID, err := validators.ParsePathID(r, "orderId")
	if err != nil {
		return 0, 0, err
	}
	detailID, err := validators.ParsePathID(r, "orderDetailId")
	if err != nil {
		return 0, 0, err
	}
	return orderID, detailID, nil
}
