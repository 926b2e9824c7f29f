package types

import (
	"time"

	"github.com/Zuby128/restorder-admin/pkg/enums"
	"github.com/shopspring/decimal"
)

// Discount is the at-most-one discount attached to an order. Reason and
// AppliedBy are descriptive only and never feed into the computation.
type Discount struct {
	Type      enums.DiscountType `json:"type"`
	Value     decimal.Decimal    `json:"value"`
	Reason    string             `json:"reason,omitempty"`
	AppliedBy string             `json:"appliedBy,omitempty"`
}

// AdditionalCharge is a surcharge attached to an order outside its item
// lines. Amount may carry any sign; only the aggregated total is clamped.
type AdditionalCharge struct {
	ID          string          `json:"_id,omitempty"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	AddedBy     string          `json:"addedBy,omitempty"`
	AddedAt     *time.Time      `json:"addedAt,omitempty"`
}
