package types

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// FoodSummary is the expanded shape of a menu item reference as returned by
// list endpoints that preload the food row.
type FoodSummary struct {
	ID          string          `json:"_id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description,omitempty"`
	ImageURL    string          `json:"imageUrl,omitempty"`
}

// FoodRef is a union over the two wire shapes of a menu item reference:
// a bare string identifier, or an expanded object carrying the identifier
// plus display fields. Exactly one of the branches is populated.
type FoodRef struct {
	ID       string
	Expanded *FoodSummary
}

// NewFoodRef builds a bare identifier reference.
func NewFoodRef(id string) FoodRef {
	return FoodRef{ID: id}
}

// ExpandedFoodRef builds a reference carrying the full food summary.
func ExpandedFoodRef(food FoodSummary) FoodRef {
	return FoodRef{Expanded: &food}
}

// ResolvedID returns the canonical string identifier for either branch.
func (r FoodRef) ResolvedID() string {
	if r.Expanded != nil {
		return r.Expanded.ID
	}
	return r.ID
}

// IsZero reports whether neither branch is populated.
func (r FoodRef) IsZero() bool {
	return r.Expanded == nil && r.ID == ""
}

func (r FoodRef) MarshalJSON() ([]byte, error) {
	if r.Expanded != nil {
		return json.Marshal(r.Expanded)
	}
	return json.Marshal(r.ID)
}

func (r *FoodRef) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return fmt.Errorf("food reference: empty payload")
	}

	switch trimmed[0] {
	case '"':
		var id string
		if err := json.Unmarshal(trimmed, &id); err != nil {
			return fmt.Errorf("food reference: %w", err)
		}
		if id == "" {
			return fmt.Errorf("food reference: identifier is empty")
		}
		*r = FoodRef{ID: id}
		return nil
	case '{':
		var expanded FoodSummary
		if err := json.Unmarshal(trimmed, &expanded); err != nil {
			return fmt.Errorf("food reference: %w", err)
		}
		if expanded.ID == "" {
			return fmt.Errorf("food reference: expanded object missing _id")
		}
		*r = FoodRef{Expanded: &expanded}
		return nil
	default:
		return fmt.Errorf("food reference: expected string id or expanded object, got %s", string(trimmed))
	}
}
