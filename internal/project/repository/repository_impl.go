package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/bizdesk/internal/project/domain"
	"github.com/smallbiznis/bizdesk/pkg/db/option"
	"github.com/smallbiznis/bizdesk/pkg/repository"
	"gorm.io/gorm"
)

type repo struct {
	store repository.Repository[domain.Project]
}

func Provide(db *gorm.DB) domain.Repository {
	return &repo{store: repository.ProvideStore[domain.Project](db)}
}

func (r *repo) Insert(ctx context.Context, project *domain.Project) error {
	return r.store.Create(ctx, project)
}

func (r *repo) FindByID(ctx context.Context, companyID, id snowflake.ID) (*domain.Project, error) {
	return r.store.FindOne(ctx, &domain.Project{ID: id, CompanyID: companyID})
}

func (r *repo) List(ctx context.Context, companyID, clientID snowflake.ID) ([]*domain.Project, error) {
	opts := []option.QueryOption{option.WithOrder("name asc")}
	if clientID != 0 {
		opts = append(opts, option.WithWhere("client_id = ?", clientID))
	}
	return r.store.Find(ctx, &domain.Project{CompanyID: companyID}, opts...)
}
