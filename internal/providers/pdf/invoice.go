package pdf

import (
	"context"
	"errors"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// Party is an address block printed on a document.
type Party struct {
	Name      string
	Address   string
	Email     string
	Phone     string
	TaxNumber string
}

type InvoiceData struct {
	Issuer        Party
	BillTo        Party
	InvoiceNumber string
	IssueDate     string
	DueDate       string
	Status        string
	Project       string
	Notes         string
	Footer        string

	Items []InvoiceItem

	Subtotal string
	TaxLabel string
	Tax      string
	Total    string
}

// InvoiceItem holds a pre-formatted table row.
type InvoiceItem struct {
	Description string
	Qty         string
	UnitPrice   string
	Amount      string
}

var ErrInvalidInvoice = errors.New("invalid_invoice_data")

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

func (p *PDFProvider) GenerateInvoice(ctx context.Context, invoice InvoiceData) ([]byte, error) {
	if invoice.InvoiceNumber == "" {
		return nil, ErrInvalidInvoice
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m := newDocument()

	m.AddRow(14,
		text.NewCol(8, "Tax Invoice", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
		text.NewCol(4, invoice.Status, props.Text{
			Size:  11,
			Style: fontstyle.Bold,
			Align: align.Right,
			Top:   4,
		}),
	)

	m.AddRow(20,
		col.New(6).Add(
			text.New("Invoice number: "+invoice.InvoiceNumber, props.Text{Top: 0}),
			text.New("Date of issue: "+invoice.IssueDate, props.Text{Top: 4}),
			text.New("Date due: "+invoice.DueDate, props.Text{Top: 8}),
			text.New("Project: "+orDash(invoice.Project), props.Text{Top: 12}),
		),
		col.New(6),
	)

	m.AddRow(36,
		partyCol(6, "From", invoice.Issuer),
		partyCol(6, "Bill to", invoice.BillTo),
	)

	addItemTable(m, invoice.Items)

	m.AddRow(8,
		col.New(8),
		text.NewCol(2, "Subtotal", props.Text{Size: 9}),
		text.NewCol(2, invoice.Subtotal, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(8,
		col.New(8),
		text.NewCol(2, invoice.TaxLabel, props.Text{Size: 9}),
		text.NewCol(2, invoice.Tax, props.Text{Size: 9, Align: align.Right}),
	)
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Total", props.Text{Style: fontstyle.Bold, Size: 10}),
		text.NewCol(2, invoice.Total, props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right}),
	)

	if invoice.Notes != "" {
		m.AddRow(16, text.NewCol(12, invoice.Notes, props.Text{Size: 9, Top: 4}))
	}
	if invoice.Footer != "" {
		m.AddRow(10, text.NewCol(12, invoice.Footer, props.Text{Size: 8, Align: align.Center, Top: 4}))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return doc.GetBytes(), nil
}

func newDocument() core.Maroto {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()
	return maroto.New(cfg)
}

func partyCol(size int, title string, p Party) core.Col {
	c := col.New(size).Add(
		text.New(title, props.Text{Style: fontstyle.Bold, Size: 9}),
		text.New(orDash(p.Name), props.Text{Top: 5}),
		text.New(p.Address, props.Text{Top: 10, Size: 9}),
		text.New(p.Email, props.Text{Top: 15, Size: 9}),
		text.New(p.Phone, props.Text{Top: 20, Size: 9}),
	)
	if p.TaxNumber != "" {
		c.Add(text.New("VAT no. "+p.TaxNumber, props.Text{Top: 25, Size: 9}))
	}
	return c
}

func addItemTable(m core.Maroto, items []InvoiceItem) {
	m.AddRow(10,
		text.NewCol(6, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Unit price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, item := range items {
		m.AddRow(8,
			text.NewCol(6, orDash(item.Description), props.Text{Size: 9}),
			text.NewCol(2, item.Qty, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, item.UnitPrice, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, item.Amount, props.Text{Size: 9, Align: align.Right}),
		)
	}
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
