package domain

import (
	"math/rand/v2"
	"slices"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/bizdesk/internal/invoice/format"
)

const (
	DateLayout     = "2006-01-02"
	DefaultDueDays = 14
)

// InvoiceDraft is the authoring form for an invoice that has not been saved yet.
type InvoiceDraft struct {
	InvoiceNumber string        `json:"invoice_number"`
	ClientID      snowflake.ID  `json:"client_id,omitempty"`
	ProjectID     *snowflake.ID `json:"project_id,omitempty"`
	IssueDate     string        `json:"issue_date"`
	DueDate       string        `json:"due_date"`
	Currency      Currency      `json:"currency"`
	Notes         string        `json:"notes,omitempty"`
	LineItems     []LineItem    `json:"line_items"`
}

// NewInvoiceDraft fills the defaults: a random INV-<year>-NNNN number, issue
// date today, due date fourteen days out, SAR and a single empty line.
func NewInvoiceDraft(now time.Time, rng *rand.Rand) (InvoiceDraft, error) {
	seq := int64(1000 + rng.IntN(9000))
	number, err := format.FormatInvoiceNumber(format.DefaultInvoiceNumberTemplate, now, seq)
	if err != nil {
		return InvoiceDraft{}, err
	}
	return InvoiceDraft{
		InvoiceNumber: number,
		IssueDate:     now.Format(DateLayout),
		DueDate:       now.AddDate(0, 0, DefaultDueDays).Format(DateLayout),
		Currency:      CurrencySAR,
		LineItems:     []LineItem{NewLineItem()},
	}, nil
}

// AddLineItem appends a new empty row whose id differs from every existing row.
func (d InvoiceDraft) AddLineItem() InvoiceDraft {
	item := NewLineItem()
	for d.hasItem(item.ID) {
		item = NewLineItem()
	}
	d.LineItems = append(slices.Clone(d.LineItems), item)
	return d
}

// RemoveLineItem drops the first row with id. The last remaining row is never
// removed, so rows sharing an id go one call at a time.
func (d InvoiceDraft) RemoveLineItem(id string) InvoiceDraft {
	if len(d.LineItems) <= 1 {
		return d
	}
	i := slices.IndexFunc(d.LineItems, func(item LineItem) bool {
		return item.ID == id
	})
	if i < 0 {
		return d
	}
	d.LineItems = slices.Delete(slices.Clone(d.LineItems), i, i+1)
	return d
}

// UpdateLineItem applies patch to the row with id. Unknown ids leave the draft unchanged.
func (d InvoiceDraft) UpdateLineItem(id string, patch LineItemPatch) InvoiceDraft {
	items := slices.Clone(d.LineItems)
	for i := range items {
		if items[i].ID == id {
			items[i] = UpdateLineItem(items[i], patch)
		}
	}
	d.LineItems = items
	return d
}

func (d InvoiceDraft) Totals() Totals {
	return ComputeTotals(NormalizeLineItems(d.LineItems))
}

func (d InvoiceDraft) hasItem(id string) bool {
	return slices.ContainsFunc(d.LineItems, func(item LineItem) bool {
		return item.ID == id
	})
}
