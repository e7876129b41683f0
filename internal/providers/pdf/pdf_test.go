package pdf

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateInvoice(t *testing.T) {
	p := New()

	out, err := p.GenerateInvoice(context.Background(), InvoiceData{
		Issuer:        Party{Name: "BizDesk", TaxNumber: "300000000000003"},
		BillTo:        Party{Name: "Acme"},
		InvoiceNumber: "INV-2025-1001",
		IssueDate:     "2025-05-20",
		DueDate:       "2025-06-03",
		Status:        "Draft",
		Items:         []InvoiceItem{{Description: "Consulting", Qty: "2", UnitPrice: "100.00", Amount: "200.00"}},
		Subtotal:      "200.00",
		TaxLabel:      "VAT (14%)",
		Tax:           "28.00",
		Total:         "228.00",
	})

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateInvoiceRequiresNumber(t *testing.T) {
	_, err := New().GenerateInvoice(context.Background(), InvoiceData{})

	assert.ErrorIs(t, err, ErrInvalidInvoice)
}

func TestGenerateReceipt(t *testing.T) {
	out, err := New().GenerateReceipt(context.Background(), ReceiptData{
		Issuer:   Party{Name: "BizDesk"},
		PaidBy:   Party{Name: "Acme"},
		DatePaid: "2025-06-01",
		Amount:   "SAR 228.00",
	})

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))

	_, err = New().GenerateReceipt(context.Background(), ReceiptData{})
	assert.ErrorIs(t, err, ErrInvalidReceipt)
}
