package types

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineItemsSubtotal(t *testing.T) {
	items := LineItems{
		{Name: "Tacos al pastor", Quantity: 2, Price: decimal.RequireFromString("4.50")},
		{Name: "Horchata", Quantity: 1, Price: decimal.RequireFromString("3.25")},
	}
	assert.True(t, items.Subtotal().Equal(decimal.RequireFromString("12.25")))
}

func TestLineItemsScanRoundTrip(t *testing.T) {
	items := LineItems{
		{Name: "Flan", Quantity: 1, Price: decimal.RequireFromString("5.00"), Notes: "no caramel"},
	}
	raw, err := items.Value()
	require.NoError(t, err)

	var decoded LineItems
	require.NoError(t, decoded.Scan(raw))
	require.Len(t, decoded, 1)
	assert.Equal(t, "Flan", decoded[0].Name)
	assert.Equal(t, "no caramel", decoded[0].Notes)
	assert.True(t, decoded[0].Price.Equal(items[0].Price))
}

func TestLineItemsScanNil(t *testing.T) {
	var decoded LineItems
	require.NoError(t, decoded.Scan(nil))
	assert.Nil(t, decoded)
}

func TestNilLineItemsValueIsEmptyArray(t *testing.T) {
	var items LineItems
	raw, err := items.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), raw)
}

func TestIngredientsScanString(t *testing.T) {
	var decoded Ingredients
	require.NoError(t, decoded.Scan(`[{"name":"Masa","quantity":"0.5","unit":"kg"}]`))
	require.Len(t, decoded, 1)
	assert.Equal(t, "kg", decoded[0].Unit)
}
