package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AdditionalCharge is a surcharge row attached to an order (service fee,
// breakage, and the like). Amount may be negative for manual corrections.
type AdditionalCharge struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID     uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index"`
	Amount      decimal.Decimal `gorm:"column:amount;type:numeric(12,2);not null"`
	Description string          `gorm:"column:description;not null"`
	AddedByID   *uuid.UUID      `gorm:"column:added_by_id;type:uuid"`
	AddedAt     time.Time       `gorm:"column:added_at;autoCreateTime"`
}
