package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
	invoicedomain "github.com/smallbiznis/bizdesk/internal/invoice/domain"
	paymentdomain "github.com/smallbiznis/bizdesk/internal/payment/domain"
)

// RatioPlaces is the display precision of the collection ratio.
const RatioPlaces = 1

// Summary holds the three independent folds over a company's records.
type Summary struct {
	Revenue decimal.Decimal `json:"revenue"`
	Unpaid  decimal.Decimal `json:"unpaid"`
	Count   int             `json:"count"`
}

// Summarize sums every payment amount into Revenue, with no linkage to invoices,
// and the totals of all invoices not yet paid into Unpaid.
func Summarize(invoices []invoicedomain.Invoice, payments []paymentdomain.Payment) Summary {
	revenue := decimal.Zero
	for _, p := range payments {
		revenue = revenue.Add(p.Amount)
	}

	unpaid := decimal.Zero
	for _, inv := range invoices {
		if inv.Status != invoicedomain.StatusPaid {
			unpaid = unpaid.Add(inv.Total)
		}
	}

	return Summary{Revenue: revenue, Unpaid: unpaid, Count: len(invoices)}
}

// CollectionRatio is revenue / (revenue + unpaid) * 100 rounded to one decimal.
// A zero denominator is replaced by one, so empty books report 0%.
func CollectionRatio(revenue, unpaid decimal.Decimal) decimal.Decimal {
	denominator := revenue.Add(unpaid)
	if denominator.IsZero() {
		denominator = decimal.NewFromInt(1)
	}
	return revenue.Div(denominator).Mul(decimal.NewFromInt(100)).Round(RatioPlaces)
}

// BuildPrompt phrases the figures as the question sent to the insight generator.
func BuildPrompt(companyName string, s Summary) string {
	return fmt.Sprintf(
		"البيانات المالية لشركة %s: إجمالي الإيرادات المحصلة %s ر.س. المبالغ المتبقية غير المحصلة %s ر.س من إجمالي %d فاتورة. ما هي التوصية المالية؟",
		companyName,
		s.Revenue.String(),
		s.Unpaid.String(),
		s.Count,
	)
}
