package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/bizdesk/pkg/db/pagination"
)

type Repository interface {
	Insert(ctx context.Context, client *Client) error
	FindByID(ctx context.Context, companyID, id snowflake.ID) (*Client, error)
	List(ctx context.Context, companyID snowflake.ID, filter ListClientFilter, page pagination.Pagination) ([]*Client, error)
	ListAll(ctx context.Context, companyID snowflake.ID) ([]*Client, error)
}
