package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/bizdesk/internal/companyctx"
	"github.com/smallbiznis/bizdesk/internal/config"
	invoicedomain "github.com/smallbiznis/bizdesk/internal/invoice/domain"
	paymentdomain "github.com/smallbiznis/bizdesk/internal/payment/domain"
	"github.com/smallbiznis/bizdesk/internal/report/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeInvoices struct {
	invoicedomain.Service
	items []invoicedomain.Invoice
	err   error
}

func (f *fakeInvoices) ListAll(ctx context.Context) ([]invoicedomain.Invoice, error) {
	return f.items, f.err
}

type fakePayments struct {
	paymentdomain.Service
	items []paymentdomain.Payment
}

func (f *fakePayments) ListAll(ctx context.Context) ([]paymentdomain.Payment, error) {
	return f.items, nil
}

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Name() string { return "mock" }

func (m *mockGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func scenario() (*fakeInvoices, *fakePayments) {
	return &fakeInvoices{items: []invoicedomain.Invoice{
			{Total: decimal.NewFromInt(100), Status: invoicedomain.StatusPaid},
			{Total: decimal.NewFromInt(200), Status: invoicedomain.StatusDraft},
		}},
		&fakePayments{items: []paymentdomain.Payment{{Amount: decimal.NewFromInt(100)}}}
}

func newService(log *zap.Logger, inv *fakeInvoices, pay *fakePayments, gen *mockGenerator) domain.Service {
	return New(Params{
		Log:        log,
		InvoiceSvc: inv,
		PaymentSvc: pay,
		Insight:    gen,
		Company:    config.NewStaticCompanyProfile(config.CompanyProfile{Name: "Acme"}),
	})
}

func TestFinancialReportPassesInsightThrough(t *testing.T) {
	inv, pay := scenario()
	gen := &mockGenerator{}
	gen.On("Generate", mock.Anything, mock.MatchedBy(func(prompt string) bool {
		return assert.ObjectsAreEqual(prompt, domain.BuildPrompt("Acme", domain.Summary{
			Revenue: decimal.NewFromInt(100),
			Unpaid:  decimal.NewFromInt(200),
			Count:   2,
		}))
	})).Return("**حسّن التحصيل**", nil)

	ctx := companyctx.WithCompanyID(context.Background(), 1)
	report, err := newService(zap.NewNop(), inv, pay, gen).FinancialReport(ctx)
	require.NoError(t, err)

	assert.Equal(t, "33.3", report.CollectionRatio.String())
	assert.Equal(t, 2, report.Count)
	assert.Equal(t, "**حسّن التحصيل**", report.Insight)
	assert.True(t, report.InsightReady)
	gen.AssertExpectations(t)
}

func TestFinancialReportSurvivesInsightFailure(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	inv, pay := scenario()
	gen := &mockGenerator{}
	gen.On("Generate", mock.Anything, mock.Anything).Return("", errors.New("quota"))

	ctx := companyctx.WithCompanyID(context.Background(), 1)
	report, err := newService(zap.New(core), inv, pay, gen).FinancialReport(ctx)
	require.NoError(t, err)

	assert.Equal(t, domain.InsightPending, report.Insight)
	assert.False(t, report.InsightReady)
	assert.True(t, report.Revenue.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, 1, logs.FilterMessage("insight generation failed").Len())
}

func TestFinancialReportFailsOnStoreError(t *testing.T) {
	_, pay := scenario()
	inv := &fakeInvoices{err: errors.New("db down")}

	ctx := companyctx.WithCompanyID(context.Background(), 1)
	_, err := newService(zap.NewNop(), inv, pay, &mockGenerator{}).FinancialReport(ctx)
	assert.Error(t, err)
}

func TestFinancialReportRequiresCompany(t *testing.T) {
	inv, pay := scenario()

	_, err := newService(zap.NewNop(), inv, pay, &mockGenerator{}).FinancialReport(context.Background())
	assert.ErrorIs(t, err, domain.ErrInvalidCompany)
}
