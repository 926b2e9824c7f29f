package orders

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Zuby128/restorder-admin/pkg/enums"
	"github.com/Zuby128/restorder-admin/pkg/types"
)

func d(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func TestDiscountAmount(t *testing.T) {
	cases := []struct {
		name     string
		subtotal decimal.Decimal
		discount *types.Discount
		want     decimal.Decimal
	}{
		{name: "nil discount", subtotal: d(100), discount: nil, want: decimal.Zero},
		{name: "zero value", subtotal: d(100), discount: &types.Discount{Type: enums.DiscountTypeFixed, Value: decimal.Zero}, want: decimal.Zero},
		{name: "negative value", subtotal: d(100), discount: &types.Discount{Type: enums.DiscountTypeFixed, Value: d(-5)}, want: decimal.Zero},
		{name: "percentage 20 of 100", subtotal: d(100), discount: &types.Discount{Type: enums.DiscountTypePercentage, Value: d(20)}, want: d(20)},
		{name: "fixed below subtotal", subtotal: d(100), discount: &types.Discount{Type: enums.DiscountTypeFixed, Value: d(30)}, want: d(30)},
		{name: "fixed clamped to subtotal", subtotal: d(100), discount: &types.Discount{Type: enums.DiscountTypeFixed, Value: d(150)}, want: d(100)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := DiscountAmount(tc.subtotal, tc.discount)
			assert.True(t, tc.want.Equal(got), "expected %s got %s", tc.want, got)
		})
	}
}

// A percentage over 100 is not clamped to the subtotal; only the final
// total's zero floor backstops it. Fixed discounts clamp, percentages
// do not. Callers rely on the reported discountAmount.
func TestDiscountAmountPercentageOverHundredUnclamped(t *testing.T) {
	discount := &types.Discount{Type: enums.DiscountTypePercentage, Value: d(150)}
	got := DiscountAmount(d(100), discount)
	assert.True(t, d(150).Equal(got), "expected 150 got %s", got)

	totals := CalculateTotals(
		[]LineItem{{FoodRef: types.NewFoodRef("f"), Quantity: 1, PriceAtOrder: d(100)}},
		discount,
		nil,
	)
	assert.True(t, totals.TotalPrice.IsZero())
}

func TestChargesTotal(t *testing.T) {
	assert.True(t, ChargesTotal(nil).IsZero())

	charges := []types.AdditionalCharge{
		{Amount: d(15)},
		{Amount: d(5)},
		{Amount: d(-3)},
	}
	assert.True(t, d(17).Equal(ChargesTotal(charges)))
}

func TestCalculateTotalsComposite(t *testing.T) {
	items := []LineItem{
		{FoodRef: types.NewFoodRef("a"), Quantity: 2, PriceAtOrder: d(50)},
		{FoodRef: types.NewFoodRef("b"), Quantity: 1, PriceAtOrder: d(100)},
	}
	discount := &types.Discount{Type: enums.DiscountTypePercentage, Value: d(10)}
	charges := []types.AdditionalCharge{{Amount: d(15)}, {Amount: d(5)}}

	totals := CalculateTotals(items, discount, charges)
	require.True(t, d(200).Equal(totals.Subtotal), "subtotal %s", totals.Subtotal)
	assert.True(t, d(20).Equal(totals.DiscountAmount), "discount %s", totals.DiscountAmount)
	assert.True(t, d(20).Equal(totals.AdditionalChargesTotal), "charges %s", totals.AdditionalChargesTotal)
	assert.True(t, d(200).Equal(totals.TotalPrice), "total %s", totals.TotalPrice)
}

func TestCalculateTotalsFloorsAtZero(t *testing.T) {
	items := []LineItem{{FoodRef: types.NewFoodRef("a"), Quantity: 1, PriceAtOrder: d(50)}}
	discount := &types.Discount{Type: enums.DiscountTypeFixed, Value: d(50)}

	totals := CalculateTotals(items, discount, nil)
	assert.True(t, totals.TotalPrice.IsZero())

	// negative charges can also drive below zero
	totals = CalculateTotals(items, nil, []types.AdditionalCharge{{Amount: d(-80)}})
	assert.True(t, totals.TotalPrice.IsZero())
}

func TestCalculateTotalsIdempotent(t *testing.T) {
	items := []LineItem{
		{FoodRef: types.NewFoodRef("a"), Quantity: 3, PriceAtOrder: decimal.NewFromFloat(12.50)},
	}
	discount := &types.Discount{Type: enums.DiscountTypePercentage, Value: d(5)}
	charges := []types.AdditionalCharge{{Amount: decimal.NewFromFloat(2.25)}}

	first := CalculateTotals(items, discount, charges)
	second := CalculateTotals(items, discount, charges)

	assert.True(t, first.Subtotal.Equal(second.Subtotal))
	assert.True(t, first.DiscountAmount.Equal(second.DiscountAmount))
	assert.True(t, first.AdditionalChargesTotal.Equal(second.AdditionalChargesTotal))
	assert.True(t, first.TotalPrice.Equal(second.TotalPrice))
}

func TestCalculateTotalsEmptyOrder(t *testing.T) {
	totals := CalculateTotals(nil, nil, nil)
	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.DiscountAmount.IsZero())
	assert.True(t, totals.AdditionalChargesTotal.IsZero())
	assert.True(t, totals.TotalPrice.IsZero())
}
