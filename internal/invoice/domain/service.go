package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/smallbiznis/bizdesk/internal/client/domain"
	projectdomain "github.com/smallbiznis/bizdesk/internal/project/domain"
	"github.com/smallbiznis/bizdesk/pkg/db/pagination"
)

type ListInvoiceFilter struct {
	Status   Status
	ClientID snowflake.ID
}

type ListInvoiceRequest struct {
	PageToken string
	PageSize  int
	Status    string
	ClientID  string
}

// InvoiceSummary is one row of the invoice list.
type InvoiceSummary struct {
	Invoice
	ClientName   string             `json:"client_name"`
	Presentation StatusPresentation `json:"presentation"`
}

type ListInvoiceResponse struct {
	pagination.PageInfo
	Invoices []InvoiceSummary `json:"invoices"`
}

// InvoiceDetails is the invoice with its referenced client and project.
// Client is nil when the referenced record no longer exists.
type InvoiceDetails struct {
	Invoice      Invoice                `json:"invoice"`
	Client       *clientdomain.Client   `json:"client"`
	Project      *projectdomain.Project `json:"project,omitempty"`
	Actions      []Action               `json:"actions"`
	Presentation StatusPresentation     `json:"presentation"`
}

type Service interface {
	NewDraft(ctx context.Context) (InvoiceDraft, error)
	Preview(ctx context.Context, draft InvoiceDraft) (Totals, error)
	Save(ctx context.Context, draft InvoiceDraft) (Invoice, error)
	List(ctx context.Context, req ListInvoiceRequest) (ListInvoiceResponse, error)
	ListAll(ctx context.Context) ([]Invoice, error)
	GetDetails(ctx context.Context, id string) (InvoiceDetails, error)
	MarkSent(ctx context.Context, id string) (InvoiceDetails, error)
	MarkPaid(ctx context.Context, id string) (InvoiceDetails, error)
	RenderPDF(ctx context.Context, id string) ([]byte, error)
}
