package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/bizdesk/internal/invoice/domain"
	"github.com/smallbiznis/bizdesk/pkg/db/option"
	"github.com/smallbiznis/bizdesk/pkg/db/pagination"
	"github.com/smallbiznis/bizdesk/pkg/repository"
	"gorm.io/gorm"
)

type repo struct {
	store repository.Repository[domain.Invoice]
}

func Provide(db *gorm.DB) domain.Repository {
	return &repo{store: repository.ProvideStore[domain.Invoice](db)}
}

func (r *repo) Insert(ctx context.Context, invoice *domain.Invoice) error {
	return r.store.Create(ctx, invoice)
}

func (r *repo) FindByID(ctx context.Context, companyID, id snowflake.ID) (*domain.Invoice, error) {
	return r.store.FindOne(ctx, &domain.Invoice{ID: id, CompanyID: companyID})
}

func (r *repo) ListAll(ctx context.Context, companyID snowflake.ID) ([]*domain.Invoice, error) {
	return r.store.Find(ctx, &domain.Invoice{CompanyID: companyID}, option.WithOrder("created_at desc, id desc"))
}

func (r *repo) List(ctx context.Context, companyID snowflake.ID, filter domain.ListInvoiceFilter, page pagination.Pagination) ([]*domain.Invoice, error) {
	query := &domain.Invoice{
		CompanyID: companyID,
		Status:    filter.Status,
		ClientID:  filter.ClientID,
	}
	return r.store.Find(ctx, query, option.ApplyPagination(page))
}

func (r *repo) SetStatus(ctx context.Context, companyID, id snowflake.ID, status domain.Status) error {
	found, err := r.store.FindOne(ctx, &domain.Invoice{ID: id, CompanyID: companyID})
	if err != nil {
		return err
	}
	if found == nil {
		return domain.ErrNotFound
	}

	ok, err := r.store.Update(ctx, id, map[string]any{"status": status})
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}
