package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LineItem is one billable row of an invoice. Total always equals Quantity * UnitPrice.
type LineItem struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Total       decimal.Decimal `json:"total"`
}

// LineItemPatch carries the fields a caller wants to change. Nil means unchanged.
type LineItemPatch struct {
	Description *string
	Quantity    *decimal.Decimal
	UnitPrice   *decimal.Decimal
}

// NewLineItem returns an empty row: one unit at zero price.
func NewLineItem() LineItem {
	return LineItem{
		ID:        uuid.NewString(),
		Quantity:  decimal.NewFromInt(1),
		UnitPrice: decimal.Zero,
		Total:     decimal.Zero,
	}
}

// UpdateLineItem returns a copy of item with patch applied and Total recomputed.
// Negative quantities and prices are accepted as given.
func UpdateLineItem(item LineItem, patch LineItemPatch) LineItem {
	next := item
	if patch.Description != nil {
		next.Description = *patch.Description
	}
	if patch.Quantity != nil {
		next.Quantity = *patch.Quantity
	}
	if patch.UnitPrice != nil {
		next.UnitPrice = *patch.UnitPrice
	}
	return next.normalized()
}

func (l LineItem) normalized() LineItem {
	l.Total = l.Quantity.Mul(l.UnitPrice)
	return l
}

// NormalizeLineItems recomputes every Total and fills missing ids so that
// stored rows never carry a caller-supplied total.
func NormalizeLineItems(items []LineItem) []LineItem {
	out := make([]LineItem, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		_, dup := seen[item.ID]
		if item.ID == "" || dup {
			item.ID = uuid.NewString()
		}
		seen[item.ID] = struct{}{}
		out = append(out, item.normalized())
	}
	return out
}
