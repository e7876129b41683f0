package service

import (
	"context"

	"github.com/smallbiznis/bizdesk/internal/companyctx"
	"github.com/smallbiznis/bizdesk/internal/config"
	"github.com/smallbiznis/bizdesk/internal/insight"
	invoicedomain "github.com/smallbiznis/bizdesk/internal/invoice/domain"
	"github.com/smallbiznis/bizdesk/internal/observability/logger"
	paymentdomain "github.com/smallbiznis/bizdesk/internal/payment/domain"
	"github.com/smallbiznis/bizdesk/internal/report/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type Params struct {
	fx.In

	Log        *zap.Logger
	InvoiceSvc invoicedomain.Service
	PaymentSvc paymentdomain.Service
	Insight    insight.Generator
	Company    *config.CompanyProfileHolder
}

type Service struct {
	log        *zap.Logger
	invoiceSvc invoicedomain.Service
	paymentSvc paymentdomain.Service
	insight    insight.Generator
	company    *config.CompanyProfileHolder
}

func New(p Params) domain.Service {
	return &Service{
		log:        p.Log.Named("report.service"),
		invoiceSvc: p.InvoiceSvc,
		paymentSvc: p.PaymentSvc,
		insight:    p.Insight,
		company:    p.Company,
	}
}

func (s *Service) FinancialReport(ctx context.Context) (domain.FinancialReport, error) {
	if _, ok := companyctx.CompanyIDFromContext(ctx); !ok {
		return domain.FinancialReport{}, domain.ErrInvalidCompany
	}

	var (
		invoices []invoicedomain.Invoice
		payments []paymentdomain.Payment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		invoices, err = s.invoiceSvc.ListAll(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		payments, err = s.paymentSvc.ListAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.FinancialReport{}, err
	}

	summary := domain.Summarize(invoices, payments)
	report := domain.FinancialReport{
		Summary:         summary,
		CollectionRatio: domain.CollectionRatio(summary.Revenue, summary.Unpaid),
		Insight:         domain.InsightPending,
	}

	if s.insight == nil {
		return report, nil
	}

	text, err := s.insight.Generate(ctx, domain.BuildPrompt(s.company.Get().Name, summary))
	if err != nil {
		logger.WithContext(ctx, s.log).Warn("insight generation failed",
			zap.String("provider", s.insight.Name()),
			zap.Error(err),
		)
		return report, nil
	}

	report.Insight = text
	report.InsightReady = true
	report.InsightProvider = s.insight.Name()
	return report, nil
}
