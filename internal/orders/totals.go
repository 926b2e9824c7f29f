package orders

import (
	"github.com/shopspring/decimal"

	"github.com/Zuby128/restorder-admin/pkg/enums"
	"github.com/Zuby128/restorder-admin/pkg/types"
)

var oneHundred = decimal.NewFromInt(100)

// DiscountAmount computes the reduction a discount takes off subtotal.
// A fixed discount is clamped to the subtotal. A percentage discount is
// not: a value over 100 yields a discount exceeding subtotal, and only
// the total's zero floor backstops it.
func DiscountAmount(subtotal decimal.Decimal, discount *types.Discount) decimal.Decimal {
	if discount == nil || discount.Value.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}

	switch discount.Type {
	case enums.DiscountTypePercentage:
		return subtotal.Mul(discount.Value).Div(oneHundred)
	case enums.DiscountTypeFixed:
		if discount.Value.GreaterThan(subtotal) {
			return subtotal
		}
		return discount.Value
	default:
		return decimal.Zero
	}
}

// ChargesTotal sums the charge amounts. Amounts may be negative; the sum is
// not clamped.
func ChargesTotal(charges []types.AdditionalCharge) decimal.Decimal {
	total := decimal.Zero
	for _, charge := range charges {
		total = total.Add(charge.Amount)
	}
	return total
}

// Subtotal sums the extended line prices.
func Subtotal(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.PriceAtOrder.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}

// CalculateTotals derives the four order amounts from the lines, discount,
// and charges. Pure and idempotent: identical inputs yield identical totals.
func CalculateTotals(items []LineItem, discount *types.Discount, charges []types.AdditionalCharge) Totals {
	subtotal := Subtotal(items)
	discountAmount := DiscountAmount(subtotal, discount)
	chargesTotal := ChargesTotal(charges)

	total := subtotal.Sub(discountAmount).Add(chargesTotal)
	if total.IsNegative() {
		total = decimal.Zero
	}

	return Totals{
		Subtotal:               subtotal,
		DiscountAmount:         discountAmount,
		AdditionalChargesTotal: chargesTotal,
		TotalPrice:             total,
	}
}
