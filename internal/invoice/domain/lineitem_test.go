package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func ptr[T any](v T) *T {
	return &v
}

func TestNewLineItemDefaults(t *testing.T) {
	item := NewLineItem()

	assert.NotEmpty(t, item.ID)
	assert.True(t, item.Quantity.Equal(dec("1")))
	assert.True(t, item.UnitPrice.IsZero())
	assert.True(t, item.Total.IsZero())
}

func TestUpdateLineItemRecomputesTotal(t *testing.T) {
	item := NewLineItem()

	updated := UpdateLineItem(item, LineItemPatch{Quantity: ptr(dec("2")), UnitPrice: ptr(dec("100"))})

	assert.True(t, updated.Total.Equal(dec("200")), "got %s", updated.Total)
	assert.Equal(t, item.ID, updated.ID)
	assert.True(t, item.Total.IsZero(), "input must not be mutated")
}

func TestUpdateLineItemDescriptionKeepsAmounts(t *testing.T) {
	item := UpdateLineItem(NewLineItem(), LineItemPatch{UnitPrice: ptr(dec("50"))})

	updated := UpdateLineItem(item, LineItemPatch{Description: ptr("Consulting")})

	assert.Equal(t, "Consulting", updated.Description)
	assert.True(t, updated.Total.Equal(dec("50")))
}

func TestUpdateLineItemAcceptsNegativeValues(t *testing.T) {
	updated := UpdateLineItem(NewLineItem(), LineItemPatch{Quantity: ptr(dec("-1")), UnitPrice: ptr(dec("30"))})

	assert.True(t, updated.Total.Equal(dec("-30")))
}

func TestUpdateLineItemInvariantHoldsForFractions(t *testing.T) {
	cases := []struct{ qty, price string }{
		{"0.1", "0.2"},
		{"3", "33.33"},
		{"1.5", "19.99"},
	}
	for _, tc := range cases {
		item := UpdateLineItem(NewLineItem(), LineItemPatch{Quantity: ptr(dec(tc.qty)), UnitPrice: ptr(dec(tc.price))})
		assert.True(t, item.Total.Equal(item.Quantity.Mul(item.UnitPrice)), "qty=%s price=%s", tc.qty, tc.price)
	}
}

func TestNormalizeLineItemsDiscardsSuppliedTotals(t *testing.T) {
	items := NormalizeLineItems([]LineItem{
		{ID: "a", Quantity: dec("2"), UnitPrice: dec("5"), Total: dec("999")},
		{ID: "a", Quantity: dec("1"), UnitPrice: dec("1")},
		{Quantity: dec("1"), UnitPrice: dec("1")},
	})

	assert.True(t, items[0].Total.Equal(dec("10")))
	assert.NotEqual(t, items[0].ID, items[1].ID)
	assert.NotEmpty(t, items[2].ID)
}
