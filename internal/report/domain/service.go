package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

// InsightPending is shown while no insight text is available.
const InsightPending = "جاري تحليل البيانات المالية..."

type FinancialReport struct {
	Summary
	CollectionRatio decimal.Decimal `json:"collection_ratio"`
	Insight         string          `json:"insight"`
	InsightReady    bool            `json:"insight_ready"`
	InsightProvider string          `json:"insight_provider,omitempty"`
}

type Service interface {
	FinancialReport(ctx context.Context) (FinancialReport, error)
}

var ErrInvalidCompany = errors.New("invalid_company")
