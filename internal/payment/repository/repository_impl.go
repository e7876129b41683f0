package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/bizdesk/internal/payment/domain"
	"github.com/smallbiznis/bizdesk/pkg/db/option"
	"github.com/smallbiznis/bizdesk/pkg/db/pagination"
	"github.com/smallbiznis/bizdesk/pkg/repository"
	"gorm.io/gorm"
)

type repo struct {
	store repository.Repository[domain.Payment]
}

func Provide(db *gorm.DB) domain.Repository {
	return &repo{store: repository.ProvideStore[domain.Payment](db)}
}

func (r *repo) Insert(ctx context.Context, payment *domain.Payment) error {
	return r.store.Create(ctx, payment)
}

func (r *repo) FindByID(ctx context.Context, companyID, id snowflake.ID) (*domain.Payment, error) {
	return r.store.FindOne(ctx, &domain.Payment{ID: id, CompanyID: companyID})
}

func (r *repo) List(ctx context.Context, companyID snowflake.ID, filter domain.ListPaymentFilter, page pagination.Pagination) ([]*domain.Payment, error) {
	opts := []option.QueryOption{}
	if filter.InvoiceID != 0 {
		opts = append(opts, option.WithWhere("invoice_id = ?", filter.InvoiceID))
	}
	opts = append(opts, option.ApplyPagination(page))
	return r.store.Find(ctx, &domain.Payment{CompanyID: companyID}, opts...)
}

func (r *repo) ListAll(ctx context.Context, companyID snowflake.ID) ([]*domain.Payment, error) {
	return r.store.Find(ctx, &domain.Payment{CompanyID: companyID}, option.WithOrder("paid_at desc, id desc"))
}
