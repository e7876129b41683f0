package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/bizdesk/pkg/db/pagination"
)

type RecordPaymentRequest struct {
	InvoiceID string
	Amount    decimal.Decimal
	Currency  string
	Method    string
	Reference string
	PaidAt    *time.Time
}

type ListPaymentRequest struct {
	PageToken string
	PageSize  int
	InvoiceID string
}

type ListPaymentFilter struct {
	InvoiceID snowflake.ID
}

type ListPaymentResponse struct {
	pagination.PageInfo
	Payments []Payment `json:"payments"`
}

type Service interface {
	Record(ctx context.Context, req RecordPaymentRequest) (Payment, error)
	List(ctx context.Context, req ListPaymentRequest) (ListPaymentResponse, error)
	// ListAll returns every payment of the company, used by reporting.
	ListAll(ctx context.Context) ([]Payment, error)
	GetByID(ctx context.Context, id string) (Payment, error)
	RenderReceipt(ctx context.Context, id string) ([]byte, error)
}

var (
	ErrInvalidCompany   = errors.New("invalid_company")
	ErrInvalidID        = errors.New("invalid_id")
	ErrInvalidInvoiceID = errors.New("invalid_invoice_id")
	ErrInvoiceNotFound  = errors.New("invoice_not_found")
	ErrInvalidAmount    = errors.New("invalid_amount")
	ErrInvalidCurrency  = errors.New("invalid_currency")
	ErrInvalidMethod    = errors.New("invalid_method")
	ErrNotFound         = errors.New("not_found")
)
