package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/Zuby128/restorder-admin/pkg/enums"
	"github.com/Zuby128/restorder-admin/pkg/types"
)

// Order is a table's running bill. The four total columns are derived from
// the items, discount, and charges and are rewritten on every mutation;
// they are never accepted from clients.
type Order struct {
	ID                     uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TableID                *uuid.UUID         `gorm:"column:table_id;type:uuid;index"`
	Table                  *DiningTable       `gorm:"foreignKey:TableID"`
	WaiterID               *uuid.UUID         `gorm:"column:waiter_id;type:uuid;index"`
	Waiter                 *Waiter            `gorm:"foreignKey:WaiterID"`
	Status                 enums.OrderStatus  `gorm:"column:status;type:text;not null;default:'pending'"`
	Items                  []OrderItem        `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Discount               *types.Discount    `gorm:"column:discount;type:jsonb;serializer:json"`
	AdditionalCharges      []AdditionalCharge `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Subtotal               decimal.Decimal    `gorm:"column:subtotal;type:numeric(12,2);not null;default:0"`
	DiscountAmount         decimal.Decimal    `gorm:"column:discount_amount;type:numeric(12,2);not null;default:0"`
	AdditionalChargesTotal decimal.Decimal    `gorm:"column:additional_charges_total;type:numeric(12,2);not null;default:0"`
	TotalPrice             decimal.Decimal    `gorm:"column:total_price;type:numeric(12,2);not null;default:0"`
	Notes                  *string            `gorm:"column:notes"`
	RestaurantNo           string             `gorm:"column:restaurant_no;not null;index"`
	OrderTime              time.Time          `gorm:"column:order_time;not null"`
	CompletedTime          *time.Time         `gorm:"column:completed_time"`
	CreatedAt              time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt              time.Time          `gorm:"column:updated_at;autoUpdateTime"`
}
