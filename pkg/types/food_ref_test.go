package types

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoodRefUnmarshalString(t *testing.T) {
	t.Parallel()

	var ref FoodRef
	require.NoError(t, json.Unmarshal([]byte(`"food-123"`), &ref))
	assert.Equal(t, "food-123", ref.ResolvedID())
	assert.Nil(t, ref.Expanded)
}

func TestFoodRefUnmarshalExpanded(t *testing.T) {
	t.Parallel()

	payload := `{"_id":"food-123","name":"Adana Kebap","price":"180.50","imageUrl":"https://cdn/x.jpg"}`
	var ref FoodRef
	require.NoError(t, json.Unmarshal([]byte(payload), &ref))
	require.NotNil(t, ref.Expanded)
	assert.Equal(t, "food-123", ref.ResolvedID())
	assert.Equal(t, "Adana Kebap", ref.Expanded.Name)
	assert.True(t, ref.Expanded.Price.Equal(decimal.RequireFromString("180.50")))
}

func TestFoodRefUnmarshalRejectsOtherShapes(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"number":       `42`,
		"array":        `["food-123"]`,
		"empty string": `""`,
		"missing id":   `{"name":"no id"}`,
		"null":         `null`,
	}
	for name, payload := range cases {
		var ref FoodRef
		assert.Error(t, json.Unmarshal([]byte(payload), &ref), name)
	}
}

func TestFoodRefMarshalRoundTrip(t *testing.T) {
	t.Parallel()

	bare := NewFoodRef("food-9")
	out, err := json.Marshal(bare)
	require.NoError(t, err)
	assert.JSONEq(t, `"food-9"`, string(out))

	expanded := ExpandedFoodRef(FoodSummary{ID: "food-9", Name: "Ayran", Price: decimal.NewFromInt(25)})
	out, err = json.Marshal(expanded)
	require.NoError(t, err)

	var back FoodRef
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, "food-9", back.ResolvedID())
	require.NotNil(t, back.Expanded)
	assert.Equal(t, "Ayran", back.Expanded.Name)
}
