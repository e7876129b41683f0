package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/bizdesk/internal/company/domain"
	"github.com/smallbiznis/bizdesk/pkg/repository"
	"gorm.io/gorm"
)

type repo struct {
	store repository.Repository[domain.Company]
}

func Provide(db *gorm.DB) domain.Repository {
	return &repo{store: repository.ProvideStore[domain.Company](db)}
}

func (r *repo) Insert(ctx context.Context, company *domain.Company) error {
	return r.store.Create(ctx, company)
}

func (r *repo) FindByID(ctx context.Context, id snowflake.ID) (*domain.Company, error) {
	return r.store.FindOne(ctx, &domain.Company{ID: id})
}

func (r *repo) FindBySlug(ctx context.Context, slug string) (*domain.Company, error) {
	return r.store.FindOne(ctx, &domain.Company{Slug: slug})
}
