package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/bizdesk/internal/client/domain"
	"github.com/smallbiznis/bizdesk/pkg/db/option"
	"github.com/smallbiznis/bizdesk/pkg/db/pagination"
	"github.com/smallbiznis/bizdesk/pkg/repository"
	"gorm.io/gorm"
)

type repo struct {
	store repository.Repository[domain.Client]
}

func Provide(db *gorm.DB) domain.Repository {
	return &repo{store: repository.ProvideStore[domain.Client](db)}
}

func (r *repo) Insert(ctx context.Context, client *domain.Client) error {
	return r.store.Create(ctx, client)
}

func (r *repo) FindByID(ctx context.Context, companyID, id snowflake.ID) (*domain.Client, error) {
	return r.store.FindOne(ctx, &domain.Client{ID: id, CompanyID: companyID})
}

func (r *repo) List(ctx context.Context, companyID snowflake.ID, filter domain.ListClientFilter, page pagination.Pagination) ([]*domain.Client, error) {
	opts := []option.QueryOption{}
	if filter.Name != "" {
		opts = append(opts, option.WithWhere("LOWER(name) LIKE LOWER(?)", "%"+filter.Name+"%"))
	}
	opts = append(opts, option.ApplyPagination(page))
	return r.store.Find(ctx, &domain.Client{CompanyID: companyID}, opts...)
}

func (r *repo) ListAll(ctx context.Context, companyID snowflake.ID) ([]*domain.Client, error) {
	return r.store.Find(ctx, &domain.Client{CompanyID: companyID}, option.WithOrder("name asc"))
}
