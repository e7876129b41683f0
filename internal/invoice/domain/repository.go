package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/bizdesk/pkg/db/pagination"
)

type Repository interface {
	Insert(ctx context.Context, invoice *Invoice) error
	FindByID(ctx context.Context, companyID, id snowflake.ID) (*Invoice, error)
	// ListAll returns every invoice of the company, newest first.
	ListAll(ctx context.Context, companyID snowflake.ID) ([]*Invoice, error)
	List(ctx context.Context, companyID snowflake.ID, filter ListInvoiceFilter, page pagination.Pagination) ([]*Invoice, error)
	// SetStatus overwrites the status field regardless of its current value.
	SetStatus(ctx context.Context, companyID, id snowflake.ID, status Status) error
}
