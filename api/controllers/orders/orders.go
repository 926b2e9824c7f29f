package orders

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Zuby128/restorder-admin/api/middleware"
	"github.com/Zuby128/restorder-admin/api/responses"
	"github.com/Zuby128/restorder-admin/api/validators"
	internalorders "github.com/Zuby128/restorder-admin/internal/orders"
	"github.com/Zuby128/restorder-admin/pkg/enums"
	pkgerrors "github.com/Zuby128/restorder-admin/pkg/errors"
	"github.com/Zuby128/restorder-admin/pkg/logger"
	"github.com/Zuby128/restorder-admin/pkg/types"
)

type createOrderRequest struct {
	TableID  *uuid.UUID                `json:"tableId"`
	WaiterID *uuid.UUID                `json:"waiterId"`
	Items    []internalorders.LineItem `json:"items"`
	Notes    *string                   `json:"notes"`
}

type replaceItemsRequest struct {
	Items []internalorders.LineItem `json:"items" validate:"required"`
}

type applyDiscountRequest struct {
	Type      enums.DiscountType `json:"type" validate:"required"`
	Value     decimal.Decimal    `json:"value" validate:"required"`
	Reason    string             `json:"reason"`
	AppliedBy string             `json:"appliedBy"`
}

type addChargeRequest struct {
	Amount      decimal.Decimal `json:"amount" validate:"required"`
	Description string          `json:"description" validate:"required"`
}

type updateStatusRequest struct {
	Status enums.OrderStatus `json:"status" validate:"required"`
}

// List returns the restaurant's order page with filters.
func List(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filters := internalorders.OrderFilters{
			RestaurantNo: middleware.RestaurantFromContext(r.Context()),
		}
		if raw := strings.TrimSpace(r.URL.Query().Get("status")); raw != "" {
			status, err := enums.ParseOrderStatus(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter"))
				return
			}
			filters.Status = &status
		}
		if filters.TableID, err = validators.ParseQueryUUID(r, "table_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filters.WaiterID, err = validators.ParseQueryUUID(r, "waiter_id"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filters.DateFrom, err = validators.ParseQueryTime(r, "start_date"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filters.DateTo, err = validators.ParseQueryTime(r, "end_date"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.List(r.Context(), params, filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, list)
	}
}

// Detail returns a single order with items, foods, and charges preloaded.
func Detail(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.PathUUID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := svc.Get(r.Context(), orderID, middleware.RestaurantFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// Create opens a new order; totals are computed server side.
func Create(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createOrderRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := svc.Create(r.Context(), internalorders.CreateOrderInput{
			RestaurantNo: middleware.RestaurantFromContext(r.Context()),
			TableID:      req.TableID,
			WaiterID:     req.WaiterID,
			Items:        req.Items,
			Notes:        req.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

// ReplaceItems swaps the order's item list and recomputes totals.
func ReplaceItems(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.PathUUID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req replaceItemsRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := svc.ReplaceItems(r.Context(), internalorders.ReplaceItemsInput{
			OrderID:      orderID,
			RestaurantNo: middleware.RestaurantFromContext(r.Context()),
			Items:        req.Items,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// ApplyDiscount sets the order's discount.
func ApplyDiscount(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.PathUUID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req applyDiscountRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := svc.ApplyDiscount(r.Context(), internalorders.ApplyDiscountInput{
			OrderID:      orderID,
			RestaurantNo: middleware.RestaurantFromContext(r.Context()),
			Discount: types.Discount{
				Type:      req.Type,
				Value:     req.Value,
				Reason:    req.Reason,
				AppliedBy: req.AppliedBy,
			},
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// RemoveDiscount clears the order's discount.
func RemoveDiscount(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.PathUUID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := svc.RemoveDiscount(r.Context(), orderID, middleware.RestaurantFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// AddCharge appends a surcharge to the order.
func AddCharge(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.PathUUID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req addChargeRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		// added_by_id references waiters; owner ids live in users, so
		// owner-added charges stay unattributed.
		var addedBy *uuid.UUID
		if middleware.RoleFromContext(r.Context()) == string(enums.StaffRoleWaiter) {
			if id, err := uuid.Parse(middleware.UserIDFromContext(r.Context())); err == nil {
				addedBy = &id
			}
		}

		order, err := svc.AddCharge(r.Context(), internalorders.AddChargeInput{
			OrderID:      orderID,
			RestaurantNo: middleware.RestaurantFromContext(r.Context()),
			Amount:       req.Amount,
			Description:  req.Description,
			AddedByID:    addedBy,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// RemoveCharge deletes one surcharge row.
func RemoveCharge(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.PathUUID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		chargeID, err := validators.PathUUID(r, "chargeId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := svc.RemoveCharge(r.Context(), orderID, chargeID, middleware.RestaurantFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// ClearCharges deletes every surcharge on the order.
func ClearCharges(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.PathUUID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := svc.ClearCharges(r.Context(), orderID, middleware.RestaurantFromContext(r.Context()))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// UpdateStatus moves the order through its lifecycle.
func UpdateStatus(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.PathUUID(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		var req updateStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		order, err := svc.UpdateStatus(r.Context(), internalorders.UpdateStatusInput{
			OrderID:      orderID,
			RestaurantNo: middleware.RestaurantFromContext(r.Context()),
			Status:       req.Status,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// Stats returns the aggregate dashboard numbers for a restaurant.
func Stats(svc internalorders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		restaurantNo := strings.TrimSpace(chi.URLParam(r, "restaurant"))
		if restaurantNo == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "restaurant is required"))
			return
		}
		if actor := middleware.RestaurantFromContext(r.Context()); actor != "" && actor != restaurantNo {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "stats for another restaurant"))
			return
		}

		filters := internalorders.StatsFilters{RestaurantNo: restaurantNo}
		var err error
		if filters.DateFrom, err = validators.ParseQueryTime(r, "start_date"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if filters.DateTo, err = validators.ParseQueryTime(r, "end_date"); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		stats, err := svc.Stats(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, stats)
	}
}
