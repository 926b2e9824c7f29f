package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderItem is one ordered quantity of a menu item. PriceAtOrder is captured
// when the line is created and never updated from the menu afterwards.
type OrderItem struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID      uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index"`
	FoodID       uuid.UUID       `gorm:"column:food_id;type:uuid;not null"`
	Food         *Food           `gorm:"foreignKey:FoodID"`
	Quantity     int             `gorm:"column:quantity;not null"`
	PriceAtOrder decimal.Decimal `gorm:"column:price_at_order;type:numeric(12,2);not null"`
	ItemNotes    *string         `gorm:"column:item_notes"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
