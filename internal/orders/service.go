package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/Zuby128/restorder-admin/pkg/db/models"
	"github.com/Zuby128/restorder-admin/pkg/enums"
	pkgerrors "github.com/Zuby128/restorder-admin/pkg/errors"
	"github.com/Zuby128/restorder-admin/pkg/pagination"
	"github.com/Zuby128/restorder-admin/pkg/types"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines order-level operations beyond repository reads. Every
// persisted mutation recomputes the four totals through the line engine;
// client-supplied totals are ignored.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*models.Order, error)
	Get(ctx context.Context, orderID uuid.UUID, restaurantNo string) (*models.Order, error)
	List(ctx context.Context, params pagination.Params, filters OrderFilters) (*OrderList, error)
	ReplaceItems(ctx context.Context, input ReplaceItemsInput) (*models.Order, error)
	ApplyDiscount(ctx context.Context, input ApplyDiscountInput) (*models.Order, error)
	RemoveDiscount(ctx context.Context, orderID uuid.UUID, restaurantNo string) (*models.Order, error)
	AddCharge(ctx context.Context, input AddChargeInput) (*models.Order, error)
	RemoveCharge(ctx context.Context, orderID, chargeID uuid.UUID, restaurantNo string) (*models.Order, error)
	ClearCharges(ctx context.Context, orderID uuid.UUID, restaurantNo string) (*models.Order, error)
	UpdateStatus(ctx context.Context, input UpdateStatusInput) (*models.Order, error)
	Stats(ctx context.Context, filters StatsFilters) (*Stats, error)
}

type service struct {
	repo Repository
	tx   txRunner
	now  func() time.Time
}

// CreateOrderInput opens a new order, usually tied to a table.
type CreateOrderInput struct {
	RestaurantNo string
	TableID      *uuid.UUID
	WaiterID     *uuid.UUID
	Items        []LineItem
	Notes        *string
}

// ReplaceItemsInput swaps an order's full item list.
type ReplaceItemsInput struct {
	OrderID      uuid.UUID
	RestaurantNo string
	Items        []LineItem
}

// ApplyDiscountInput sets the order's single discount.
type ApplyDiscountInput struct {
	OrderID      uuid.UUID
	RestaurantNo string
	Discount     types.Discount
}

// AddChargeInput appends a surcharge row to the order.
type AddChargeInput struct {
	OrderID      uuid.UUID
	RestaurantNo string
	Amount       decimal.Decimal
	Description  string
	AddedByID    *uuid.UUID
}

// UpdateStatusInput moves the order through its status lifecycle.
type UpdateStatusInput struct {
	OrderID      uuid.UUID
	RestaurantNo string
	Status       enums.OrderStatus
}

// NewService builds an order service with the required dependencies.
func NewService(repo Repository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{repo: repo, tx: tx, now: time.Now}, nil
}

func (s *service) Create(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	if input.RestaurantNo == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant number required")
	}
	lines, err := MergeItems(input.Items)
	if err != nil {
		return nil, err
	}

	totals := CalculateTotals(lines, nil, nil)
	order := &models.Order{
		TableID:      input.TableID,
		WaiterID:     input.WaiterID,
		Status:       enums.OrderStatusPending,
		Subtotal:     totals.Subtotal,
		TotalPrice:   totals.TotalPrice,
		Notes:        input.Notes,
		RestaurantNo: input.RestaurantNo,
		OrderTime:    s.now(),
	}

	var created *models.Order
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		saved, err := repo.CreateOrder(ctx, order)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}
		items, err := itemsToModels(saved.ID, lines)
		if err != nil {
			return err
		}
		if err := repo.ReplaceOrderItems(ctx, saved.ID, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order items")
		}
		created, err = repo.FindOrder(ctx, saved.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload order")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (s *service) Get(ctx context.Context, orderID uuid.UUID, restaurantNo string) (*models.Order, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	order, err := s.repo.FindOrder(ctx, orderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if restaurantNo != "" && order.RestaurantNo != restaurantNo {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to restaurant")
	}
	return order, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters OrderFilters) (*OrderList, error) {
	if filters.RestaurantNo == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant number required")
	}
	list, err := s.repo.ListOrders(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return list, nil
}

func (s *service) ReplaceItems(ctx context.Context, input ReplaceItemsInput) (*models.Order, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	lines, err := MergeItems(input.Items)
	if err != nil {
		return nil, err
	}

	return s.mutate(ctx, input.OrderID, input.RestaurantNo, func(repo Repository, order *models.Order) error {
		items, err := itemsToModels(order.ID, lines)
		if err != nil {
			return err
		}
		if err := repo.ReplaceOrderItems(ctx, order.ID, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "replace order items")
		}
		return nil
	})
}

func (s *service) ApplyDiscount(ctx context.Context, input ApplyDiscountInput) (*models.Order, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if !input.Discount.Type.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount type must be percentage or fixed")
	}
	if input.Discount.Value.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "discount value cannot be negative")
	}

	discount := input.Discount
	return s.mutate(ctx, input.OrderID, input.RestaurantNo, func(repo Repository, order *models.Order) error {
		order.Discount = &discount
		if err := repo.UpdateOrder(ctx, order.ID, map[string]any{"discount": &discount}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "apply discount")
		}
		return nil
	})
}

func (s *service) RemoveDiscount(ctx context.Context, orderID uuid.UUID, restaurantNo string) (*models.Order, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	return s.mutate(ctx, orderID, restaurantNo, func(repo Repository, order *models.Order) error {
		order.Discount = nil
		if err := repo.UpdateOrder(ctx, order.ID, map[string]any{"discount": nil}); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove discount")
		}
		return nil
	})
}

func (s *service) AddCharge(ctx context.Context, input AddChargeInput) (*models.Order, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if input.Description == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "charge description required")
	}
	if input.Amount.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "charge amount cannot be zero")
	}

	return s.mutate(ctx, input.OrderID, input.RestaurantNo, func(repo Repository, order *models.Order) error {
		charge := &models.AdditionalCharge{
			OrderID:     order.ID,
			Amount:      input.Amount,
			Description: input.Description,
			AddedByID:   input.AddedByID,
		}
		if _, err := repo.CreateCharge(ctx, charge); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add charge")
		}
		return nil
	})
}

func (s *service) RemoveCharge(ctx context.Context, orderID, chargeID uuid.UUID, restaurantNo string) (*models.Order, error) {
	if orderID == uuid.Nil || chargeID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id and charge id required")
	}
	return s.mutate(ctx, orderID, restaurantNo, func(repo Repository, order *models.Order) error {
		charge, err := repo.FindCharge(ctx, chargeID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return pkgerrors.New(pkgerrors.CodeNotFound, "charge not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load charge")
		}
		if charge.OrderID != order.ID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "charge does not belong to order")
		}
		if err := repo.DeleteCharge(ctx, chargeID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete charge")
		}
		return nil
	})
}

func (s *service) ClearCharges(ctx context.Context, orderID uuid.UUID, restaurantNo string) (*models.Order, error) {
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	return s.mutate(ctx, orderID, restaurantNo, func(repo Repository, order *models.Order) error {
		if err := repo.ClearCharges(ctx, order.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear charges")
		}
		return nil
	})
}

func (s *service) UpdateStatus(ctx context.Context, input UpdateStatusInput) (*models.Order, error) {
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	if !input.Status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}

	var updated *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := s.loadScoped(ctx, repo, input.OrderID, input.RestaurantNo)
		if err != nil {
			return err
		}
		if order.Status == input.Status {
			updated = order
			return nil
		}
		if !canTransitionStatus(order.Status, input.Status) {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "status transition not allowed")
		}

		updates := map[string]any{"status": input.Status}
		if input.Status.IsTerminal() {
			now := s.now()
			updates["completed_time"] = &now
		}
		if err := repo.UpdateOrder(ctx, order.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
		}
		updated, err = repo.FindOrder(ctx, order.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload order")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) Stats(ctx context.Context, filters StatsFilters) (*Stats, error) {
	if filters.RestaurantNo == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "restaurant number required")
	}
	stats, err := s.repo.Stats(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "order stats")
	}
	return stats, nil
}

// mutate runs fn against the scoped order inside a transaction, then
// recomputes and persists the derived totals from the post-mutation state.
func (s *service) mutate(ctx context.Context, orderID uuid.UUID, restaurantNo string, fn func(repo Repository, order *models.Order) error) (*models.Order, error) {
	var updated *models.Order
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		order, err := s.loadScoped(ctx, repo, orderID, restaurantNo)
		if err != nil {
			return err
		}
		if order.Status.IsTerminal() {
			return pkgerrors.New(pkgerrors.CodeStateConflict, "order is settled")
		}
		if err := fn(repo, order); err != nil {
			return err
		}
		updated, err = s.recompute(ctx, repo, order)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *service) loadScoped(ctx context.Context, repo Repository, orderID uuid.UUID, restaurantNo string) (*models.Order, error) {
	order, err := repo.FindOrder(ctx, orderID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	if restaurantNo != "" && order.RestaurantNo != restaurantNo {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "order does not belong to restaurant")
	}
	return order, nil
}

func (s *service) recompute(ctx context.Context, repo Repository, order *models.Order) (*models.Order, error) {
	items, err := repo.FindOrder(ctx, order.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload order")
	}

	totals := CalculateTotals(linesFromModels(items.Items), items.Discount, chargesFromModels(items.AdditionalCharges))
	updates := map[string]any{
		"subtotal":                 totals.Subtotal,
		"discount_amount":          totals.DiscountAmount,
		"additional_charges_total": totals.AdditionalChargesTotal,
		"total_price":              totals.TotalPrice,
	}
	if err := repo.UpdateOrder(ctx, order.ID, updates); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist totals")
	}

	items.Subtotal = totals.Subtotal
	items.DiscountAmount = totals.DiscountAmount
	items.AdditionalChargesTotal = totals.AdditionalChargesTotal
	items.TotalPrice = totals.TotalPrice
	return items, nil
}

func canTransitionStatus(from, to enums.OrderStatus) bool {
	switch from {
	case enums.OrderStatusPending:
		return to == enums.OrderStatusPreparing || to == enums.OrderStatusPaid || to == enums.OrderStatusCanceled
	case enums.OrderStatusPreparing:
		return to == enums.OrderStatusPaid || to == enums.OrderStatusCanceled
	default:
		return false
	}
}

func itemsToModels(orderID uuid.UUID, items []LineItem) ([]models.OrderItem, error) {
	out := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		foodID, err := uuid.Parse(item.FoodRef.ResolvedID())
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid food id")
		}
		var notes *string
		if item.ItemNotes != "" {
			n := item.ItemNotes
			notes = &n
		}
		out = append(out, models.OrderItem{
			OrderID:      orderID,
			FoodID:       foodID,
			Quantity:     item.Quantity,
			PriceAtOrder: item.PriceAtOrder,
			ItemNotes:    notes,
		})
	}
	return out, nil
}

func linesFromModels(items []models.OrderItem) []LineItem {
	out := make([]LineItem, 0, len(items))
	for _, item := range items {
		notes := ""
		if item.ItemNotes != nil {
			notes = *item.ItemNotes
		}
		out = append(out, LineItem{
			FoodRef:      types.NewFoodRef(item.FoodID.String()),
			Quantity:     item.Quantity,
			PriceAtOrder: item.PriceAtOrder,
			ItemNotes:    notes,
		})
	}
	return out
}

func chargesFromModels(charges []models.AdditionalCharge) []types.AdditionalCharge {
	out := make([]types.AdditionalCharge, 0, len(charges))
	for _, charge := range charges {
		addedAt := charge.AddedAt
		out = append(out, types.AdditionalCharge{
			ID:          charge.ID.String(),
			Amount:      charge.Amount,
			Description: charge.Description,
			AddedAt:     &addedAt,
		})
	}
	return out
}
