package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	Insert(ctx context.Context, company *Company) error
	FindByID(ctx context.Context, id snowflake.ID) (*Company, error)
	FindBySlug(ctx context.Context, slug string) (*Company, error)
}
