package pdf

import (
	"context"
	"errors"

	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// ReceiptData confirms a recorded payment.
type ReceiptData struct {
	Issuer        Party
	PaidBy        Party
	Reference     string
	InvoiceNumber string
	DatePaid      string
	Method        string
	Amount        string
	Footer        string
}

var ErrInvalidReceipt = errors.New("invalid_receipt_data")

func (p *PDFProvider) GenerateReceipt(ctx context.Context, receipt ReceiptData) ([]byte, error) {
	if receipt.Amount == "" {
		return nil, ErrInvalidReceipt
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m := newDocument()

	m.AddRow(14,
		text.NewCol(12, "Receipt", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	m.AddRow(20,
		col.New(6).Add(
			text.New("Reference: "+orDash(receipt.Reference), props.Text{Top: 0}),
			text.New("Invoice number: "+orDash(receipt.InvoiceNumber), props.Text{Top: 4}),
			text.New("Date paid: "+receipt.DatePaid, props.Text{Top: 8}),
			text.New("Method: "+orDash(receipt.Method), props.Text{Top: 12}),
		),
		col.New(6),
	)

	m.AddRow(36,
		partyCol(6, "From", receipt.Issuer),
		partyCol(6, "Received from", receipt.PaidBy),
	)

	m.AddRow(15,
		text.NewCol(12, receipt.Amount+" paid on "+receipt.DatePaid, props.Text{
			Size:  14,
			Style: fontstyle.Bold,
			Top:   5,
		}),
	)

	if receipt.Footer != "" {
		m.AddRow(10, text.NewCol(12, receipt.Footer, props.Text{Size: 8, Align: align.Center, Top: 4}))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}
