package pdf

import (
	"context"

	"go.uber.org/fx"
)

// Provider renders printable documents.
type Provider interface {
	GenerateInvoice(ctx context.Context, data InvoiceData) ([]byte, error)
	GenerateReceipt(ctx context.Context, data ReceiptData) ([]byte, error)
}

var Module = fx.Module("pdf",
	fx.Provide(New),
)
