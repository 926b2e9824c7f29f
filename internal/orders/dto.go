package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Zuby128/restorder-admin/pkg/enums"
	"github.com/Zuby128/restorder-admin/pkg/pagination"
	"github.com/Zuby128/restorder-admin/pkg/types"
)

// LineItem is the wire shape of one ordered quantity of a menu item. The
// food reference is either a bare id or an expanded object; identity is
// always its resolved id.
type LineItem struct {
	FoodRef      types.FoodRef   `json:"foodId"`
	Quantity     int             `json:"quantity"`
	PriceAtOrder decimal.Decimal `json:"priceAtOrder"`
	ItemNotes    string          `json:"itemNotes,omitempty"`
}

// Totals are the four derived order amounts. They are recomputed from the
// line items, discount, and charges on every mutation, never stored as
// ground truth.
type Totals struct {
	Subtotal               decimal.Decimal `json:"subtotal"`
	DiscountAmount         decimal.Decimal `json:"discountAmount"`
	AdditionalChargesTotal decimal.Decimal `json:"additionalChargesTotal"`
	TotalPrice             decimal.Decimal `json:"totalPrice"`
}

// OrderFilters describe the inputs supported by the orders list.
type OrderFilters struct {
	RestaurantNo string
	Status       *enums.OrderStatus
	TableID      *uuid.UUID
	WaiterID     *uuid.UUID
	DateFrom     *time.Time
	DateTo       *time.Time
}

// OrderList wraps the paged orders plus the page envelope.
type OrderList struct {
	Orders []OrderSummary  `json:"orders"`
	Meta   pagination.Meta `json:"meta"`
}

// OrderSummary exposes the aggregated fields returned in the list.
type OrderSummary struct {
	ID            uuid.UUID         `json:"id"`
	TableID       *uuid.UUID        `json:"tableId,omitempty"`
	TableName     *string           `json:"tableName,omitempty"`
	WaiterID      *uuid.UUID        `json:"waiterId,omitempty"`
	WaiterName    *string           `json:"waiterName,omitempty"`
	Status        enums.OrderStatus `json:"status"`
	TotalItems    int               `json:"totalItems"`
	Subtotal      decimal.Decimal   `json:"subtotal"`
	TotalPrice    decimal.Decimal   `json:"totalPrice"`
	OrderTime     time.Time         `json:"orderTime"`
	CompletedTime *time.Time        `json:"completedTime,omitempty"`
}

// Stats aggregates order figures for a restaurant over a window.
type Stats struct {
	TotalOrders            int64           `json:"totalOrders"`
	TotalRevenue           decimal.Decimal `json:"totalRevenue"`
	AvgOrderValue          decimal.Decimal `json:"avgOrderValue"`
	PendingCount           int64           `json:"pendingCount"`
	PreparingCount         int64           `json:"preparingCount"`
	PaidCount              int64           `json:"paidCount"`
	CanceledCount          int64           `json:"canceledCount"`
	TotalDiscount          decimal.Decimal `json:"totalDiscount"`
	TotalAdditionalCharges decimal.Decimal `json:"totalAdditionalCharges"`
}

// StatsFilters limit the stats window.
type StatsFilters struct {
	RestaurantNo string
	DateFrom     *time.Time
	DateTo       *time.Time
}
