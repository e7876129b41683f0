package service

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/bizdesk/internal/clock"
	"github.com/smallbiznis/bizdesk/internal/companyctx"
	"github.com/smallbiznis/bizdesk/internal/config"
	invoicedomain "github.com/smallbiznis/bizdesk/internal/invoice/domain"
	"github.com/smallbiznis/bizdesk/internal/observability/logger"
	"github.com/smallbiznis/bizdesk/internal/observability/metrics"
	"github.com/smallbiznis/bizdesk/internal/payment/domain"
	"github.com/smallbiznis/bizdesk/internal/providers/pdf"
	"github.com/smallbiznis/bizdesk/pkg/db/pagination"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	Repo       domain.Repository
	InvoiceSvc invoicedomain.Service
	Company    *config.CompanyProfileHolder
	PDF        pdf.Provider
	Metrics    *metrics.Metrics `optional:"true"`
}

type Service struct {
	log        *zap.Logger
	genID      *snowflake.Node
	clock      clock.Clock
	repo       domain.Repository
	invoiceSvc invoicedomain.Service
	company    *config.CompanyProfileHolder
	pdf        pdf.Provider
	metrics    *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		log:        p.Log.Named("payment.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		repo:       p.Repo,
		invoiceSvc: p.InvoiceSvc,
		company:    p.Company,
		pdf:        p.PDF,
		metrics:    p.Metrics,
	}
}

func (s *Service) Record(ctx context.Context, req domain.RecordPaymentRequest) (domain.Payment, error) {
	companyID, ok := companyctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.Payment{}, domain.ErrInvalidCompany
	}

	if !req.Amount.IsPositive() {
		return domain.Payment{}, domain.ErrInvalidAmount
	}

	method := domain.Method(strings.ToLower(strings.TrimSpace(req.Method)))
	if method == "" {
		method = domain.MethodBankTransfer
	}
	if !method.Valid() {
		return domain.Payment{}, domain.ErrInvalidMethod
	}

	currency := req.Currency
	var invoiceID *snowflake.ID
	if raw := strings.TrimSpace(req.InvoiceID); raw != "" {
		id, err := snowflake.ParseString(raw)
		if err != nil || id == 0 {
			return domain.Payment{}, domain.ErrInvalidInvoiceID
		}
		details, err := s.invoiceSvc.GetDetails(ctx, raw)
		if err != nil {
			if errors.Is(err, invoicedomain.ErrNotFound) {
				return domain.Payment{}, domain.ErrInvoiceNotFound
			}
			return domain.Payment{}, err
		}
		if strings.TrimSpace(currency) == "" {
			currency = string(details.Invoice.Currency)
		}
		invoiceID = &id
	}

	parsed, err := invoicedomain.ParseCurrency(currency)
	if err != nil {
		return domain.Payment{}, domain.ErrInvalidCurrency
	}

	now := s.clock.Now()
	paidAt := now
	if req.PaidAt != nil && !req.PaidAt.IsZero() {
		paidAt = req.PaidAt.UTC()
	}

	payment := domain.Payment{
		ID:        s.genID.Generate(),
		CompanyID: companyID,
		InvoiceID: invoiceID,
		Amount:    req.Amount,
		Currency:  string(parsed),
		Method:    method,
		Reference: strings.TrimSpace(req.Reference),
		PaidAt:    paidAt,
		CreatedAt: now,
	}

	if err := s.repo.Insert(ctx, &payment); err != nil {
		logger.WithContext(ctx, s.log).Error("failed to record payment", zap.Error(err))
		return domain.Payment{}, err
	}

	s.metrics.RecordPayment(ctx, string(method))
	return payment, nil
}

func (s *Service) List(ctx context.Context, req domain.ListPaymentRequest) (domain.ListPaymentResponse, error) {
	companyID, ok := companyctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.ListPaymentResponse{}, domain.ErrInvalidCompany
	}

	filter := domain.ListPaymentFilter{}
	if raw := strings.TrimSpace(req.InvoiceID); raw != "" {
		id, err := snowflake.ParseString(raw)
		if err != nil || id == 0 {
			return domain.ListPaymentResponse{}, domain.ErrInvalidInvoiceID
		}
		filter.InvoiceID = id
	}

	pageSize := pagination.Normalize(req.PageSize)
	items, err := s.repo.List(ctx, companyID, filter, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListPaymentResponse{}, err
	}

	items, pageInfo := pagination.Trim(items, pageSize, func(p *domain.Payment) pagination.Cursor {
		return pagination.Cursor{
			ID:        strconv.FormatInt(p.ID.Int64(), 10),
			CreatedAt: p.CreatedAt.Format(time.RFC3339Nano),
		}
	})

	payments := make([]domain.Payment, 0, len(items))
	for _, item := range items {
		payments = append(payments, *item)
	}
	return domain.ListPaymentResponse{PageInfo: pageInfo, Payments: payments}, nil
}

func (s *Service) ListAll(ctx context.Context) ([]domain.Payment, error) {
	companyID, ok := companyctx.CompanyIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidCompany
	}

	items, err := s.repo.ListAll(ctx, companyID)
	if err != nil {
		return nil, err
	}

	payments := make([]domain.Payment, 0, len(items))
	for _, item := range items {
		payments = append(payments, *item)
	}
	return payments, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (domain.Payment, error) {
	companyID, ok := companyctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.Payment{}, domain.ErrInvalidCompany
	}

	paymentID, err := snowflake.ParseString(strings.TrimSpace(id))
	if err != nil || paymentID == 0 {
		return domain.Payment{}, domain.ErrInvalidID
	}

	item, err := s.repo.FindByID(ctx, companyID, paymentID)
	if err != nil {
		return domain.Payment{}, err
	}
	if item == nil {
		return domain.Payment{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) RenderReceipt(ctx context.Context, id string) ([]byte, error) {
	payment, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	profile := s.company.Get()
	data := pdf.ReceiptData{
		Issuer: pdf.Party{
			Name:      profile.Name,
			Address:   profile.Address,
			Email:     profile.Email,
			Phone:     profile.Phone,
			TaxNumber: profile.TaxNumber,
		},
		Reference: payment.Reference,
		DatePaid:  payment.PaidAt.Format(invoicedomain.DateLayout),
		Method:    string(payment.Method),
		Amount:    payment.Currency + " " + payment.Amount.StringFixed(invoicedomain.MoneyPlaces),
		Footer:    profile.Footer,
	}

	if payment.InvoiceID != nil {
		details, err := s.invoiceSvc.GetDetails(ctx, payment.InvoiceID.String())
		switch {
		case err == nil:
			data.InvoiceNumber = details.Invoice.InvoiceNumber
			if details.Client != nil {
				data.PaidBy = pdf.Party{
					Name:    details.Client.Name,
					Address: details.Client.Address,
					Email:   details.Client.Email,
					Phone:   details.Client.Phone,
				}
			}
		case errors.Is(err, invoicedomain.ErrNotFound):
		default:
			return nil, err
		}
	}

	return s.pdf.GenerateReceipt(ctx, data)
}
