package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeTotalsScenario(t *testing.T) {
	items := []LineItem{
		UpdateLineItem(NewLineItem(), LineItemPatch{Quantity: ptr(dec("2")), UnitPrice: ptr(dec("100"))}),
		UpdateLineItem(NewLineItem(), LineItemPatch{Quantity: ptr(dec("1")), UnitPrice: ptr(dec("50"))}),
	}

	totals := ComputeTotals(items)

	assert.True(t, totals.Subtotal.Equal(dec("250")), "subtotal %s", totals.Subtotal)
	assert.True(t, totals.Tax.Equal(dec("35")), "tax %s", totals.Tax)
	assert.True(t, totals.Total.Equal(dec("285")), "total %s", totals.Total)
}

func TestComputeTotalsEmpty(t *testing.T) {
	totals := ComputeTotals(nil)

	assert.True(t, totals.Subtotal.IsZero())
	assert.True(t, totals.Tax.IsZero())
	assert.True(t, totals.Total.IsZero())
}

func TestComputeTotalsRoundsTax(t *testing.T) {
	items := []LineItem{UpdateLineItem(NewLineItem(), LineItemPatch{UnitPrice: ptr(dec("0.05"))})}

	totals := ComputeTotals(items)

	assert.True(t, totals.Tax.Equal(dec("0.01")), "tax %s", totals.Tax)
	assert.True(t, totals.Total.Equal(totals.Subtotal.Add(totals.Tax)))
}
