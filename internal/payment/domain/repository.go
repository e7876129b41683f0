package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/bizdesk/pkg/db/pagination"
)

type Repository interface {
	Insert(ctx context.Context, payment *Payment) error
	FindByID(ctx context.Context, companyID, id snowflake.ID) (*Payment, error)
	List(ctx context.Context, companyID snowflake.ID, filter ListPaymentFilter, page pagination.Pagination) ([]*Payment, error)
	ListAll(ctx context.Context, companyID snowflake.ID) ([]*Payment, error)
}
