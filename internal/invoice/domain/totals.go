package domain

import "github.com/shopspring/decimal"

// TaxRate is the VAT applied to every invoice.
var TaxRate = decimal.RequireFromString("0.14")

// MoneyPlaces is the number of fractional digits kept for tax amounts.
const MoneyPlaces = 2

type Totals struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Tax      decimal.Decimal `json:"tax"`
	Total    decimal.Decimal `json:"total"`
}

// ComputeTotals folds line totals in order, applies TaxRate and rounds the tax half-up to MoneyPlaces.
func ComputeTotals(items []LineItem) Totals {
	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Total)
	}
	tax := subtotal.Mul(TaxRate).Round(MoneyPlaces)
	return Totals{
		Subtotal: subtotal,
		Tax:      tax,
		Total:    subtotal.Add(tax),
	}
}
