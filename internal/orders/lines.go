package orders

import (
	"strings"

	"github.com/shopspring/decimal"

	pkgerrors "github.com/Zuby128/restorder-admin/pkg/errors"
	"github.com/Zuby128/restorder-admin/pkg/types"
)

// The line mutation operations are pure: inputs are never mutated and every
// call returns a fresh slice. A foodID that matches nothing is a no-op, not
// an error. Non-positive quantities and amounts are rejected so a negative
// value cannot silently invert an increment into a decrement.

// AddItem merges qty into an existing line with the same resolved food id,
// preserving its position, or appends a new line at the end. A non-empty
// note replaces the existing one; an empty note leaves it untouched.
func AddItem(items []LineItem, foodID string, qty int, priceAtOrder decimal.Decimal, itemNotes string) ([]LineItem, error) {
	if strings.TrimSpace(foodID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "food id required")
	}
	if qty <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}

	out := make([]LineItem, len(items))
	copy(out, items)

	for i := range out {
		if out[i].FoodRef.ResolvedID() != foodID {
			continue
		}
		out[i].Quantity += qty
		if itemNotes != "" {
			out[i].ItemNotes = itemNotes
		}
		return out, nil
	}

	out = append(out, LineItem{
		FoodRef:      types.NewFoodRef(foodID),
		Quantity:     qty,
		PriceAtOrder: priceAtOrder,
		ItemNotes:    itemNotes,
	})
	return out, nil
}

// MergeItems folds a raw line list into one carrying at most one entry per
// resolved food id, the same merge AddItem applies line by line. Quantities
// accumulate into the first occurrence, which keeps its position, FoodRef
// shape, and priceAtOrder; a later non-empty note overwrites.
func MergeItems(items []LineItem) ([]LineItem, error) {
	out := make([]LineItem, 0, len(items))
	index := make(map[string]int, len(items))
	for _, item := range items {
		id := item.FoodRef.ResolvedID()
		if strings.TrimSpace(id) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "food id required")
		}
		if item.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
		}
		if i, ok := index[id]; ok {
			out[i].Quantity += item.Quantity
			if item.ItemNotes != "" {
				out[i].ItemNotes = item.ItemNotes
			}
			continue
		}
		index[id] = len(out)
		out = append(out, item)
	}
	return out, nil
}

// IncreaseItemQuantity adds amount to every line whose resolved id matches
// foodID. Expressed as a collection-wide map even though a well-formed order
// holds at most one matching line.
func IncreaseItemQuantity(items []LineItem, foodID string, amount int) ([]LineItem, error) {
	if amount <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}

	out := make([]LineItem, len(items))
	copy(out, items)
	for i := range out {
		if out[i].FoodRef.ResolvedID() == foodID {
			out[i].Quantity += amount
		}
	}
	return out, nil
}

// DecreaseItemQuantity subtracts amount from every matching line,
// floor-clamping the result at 1. Dropping a line entirely requires
// RemoveItem; decrementing alone never empties it.
func DecreaseItemQuantity(items []LineItem, foodID string, amount int) ([]LineItem, error) {
	if amount <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "amount must be positive")
	}

	mapped := make([]LineItem, len(items))
	copy(mapped, items)
	for i := range mapped {
		if mapped[i].FoodRef.ResolvedID() != foodID {
			continue
		}
		next := mapped[i].Quantity - amount
		if next < 1 {
			next = 1
		}
		mapped[i].Quantity = next
	}

	// Unreachable given the clamp above; kept so the quantity >= 1
	// collection invariant holds even if the clamp changes.
	out := mapped[:0:0]
	for _, item := range mapped {
		if item.Quantity <= 0 {
			continue
		}
		out = append(out, item)
	}
	return out, nil
}

// RemoveItem drops every line whose resolved id matches foodID.
func RemoveItem(items []LineItem, foodID string) []LineItem {
	out := make([]LineItem, 0, len(items))
	for _, item := range items {
		if item.FoodRef.ResolvedID() == foodID {
			continue
		}
		out = append(out, item)
	}
	return out
}
