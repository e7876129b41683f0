package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	clientdomain "github.com/smallbiznis/bizdesk/internal/client/domain"
	"github.com/smallbiznis/bizdesk/internal/clock"
	"github.com/smallbiznis/bizdesk/internal/companyctx"
	"github.com/smallbiznis/bizdesk/internal/config"
	"github.com/smallbiznis/bizdesk/internal/invoice/domain"
	"github.com/smallbiznis/bizdesk/internal/observability/logger"
	"github.com/smallbiznis/bizdesk/internal/observability/metrics"
	projectdomain "github.com/smallbiznis/bizdesk/internal/project/domain"
	"github.com/smallbiznis/bizdesk/internal/providers/pdf"
	"github.com/smallbiznis/bizdesk/pkg/db/pagination"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// UnknownClientName labels list rows whose client record cannot be found.
const UnknownClientName = "غير معروف"

var tracer = otel.Tracer("bizdesk/invoice")

type Params struct {
	fx.In

	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	Repo       domain.Repository
	ClientSvc  clientdomain.Service
	ProjectSvc projectdomain.Service
	Company    *config.CompanyProfileHolder
	PDF        pdf.Provider
	Metrics    *metrics.Metrics `optional:"true"`
}

type Service struct {
	log        *zap.Logger
	genID      *snowflake.Node
	clock      clock.Clock
	repo       domain.Repository
	clientSvc  clientdomain.Service
	projectSvc projectdomain.Service
	company    *config.CompanyProfileHolder
	pdf        pdf.Provider
	metrics    *metrics.Metrics
}

func New(p Params) domain.Service {
	return &Service{
		log:        p.Log.Named("invoice.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		repo:       p.Repo,
		clientSvc:  p.ClientSvc,
		projectSvc: p.ProjectSvc,
		company:    p.Company,
		pdf:        p.PDF,
		metrics:    p.Metrics,
	}
}

func (s *Service) NewDraft(ctx context.Context) (domain.InvoiceDraft, error) {
	if _, ok := companyctx.CompanyIDFromContext(ctx); !ok {
		return domain.InvoiceDraft{}, domain.ErrInvalidCompany
	}

	now := s.clock.Now()
	rng := rand.New(rand.NewPCG(uint64(now.UnixNano()), uint64(s.genID.Generate().Int64())))
	return domain.NewInvoiceDraft(now, rng)
}

func (s *Service) Preview(ctx context.Context, draft domain.InvoiceDraft) (domain.Totals, error) {
	if _, ok := companyctx.CompanyIDFromContext(ctx); !ok {
		return domain.Totals{}, domain.ErrInvalidCompany
	}
	return draft.Totals(), nil
}

func (s *Service) Save(ctx context.Context, draft domain.InvoiceDraft) (domain.Invoice, error) {
	companyID, ok := companyctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.Invoice{}, domain.ErrInvalidCompany
	}

	ctx, span := tracer.Start(ctx, "invoice.save")
	defer span.End()

	if draft.ClientID == 0 {
		return domain.Invoice{}, domain.ErrClientRequired
	}

	currency, err := domain.ParseCurrency(string(draft.Currency))
	if err != nil {
		return domain.Invoice{}, err
	}
	issueDate, err := parseDate(draft.IssueDate, domain.ErrInvalidIssueDate)
	if err != nil {
		return domain.Invoice{}, err
	}
	dueDate, err := parseDate(draft.DueDate, domain.ErrInvalidDueDate)
	if err != nil {
		return domain.Invoice{}, err
	}
	if len(draft.LineItems) == 0 {
		return domain.Invoice{}, domain.ErrLineItemsRequired
	}

	if _, err := s.clientSvc.GetByID(ctx, draft.ClientID.String()); err != nil {
		if errors.Is(err, clientdomain.ErrNotFound) {
			return domain.Invoice{}, domain.ErrClientNotFound
		}
		return domain.Invoice{}, err
	}
	if draft.ProjectID != nil && *draft.ProjectID != 0 {
		if _, err := s.projectSvc.GetByID(ctx, draft.ProjectID.String()); err != nil {
			if errors.Is(err, projectdomain.ErrNotFound) {
				return domain.Invoice{}, domain.ErrProjectNotFound
			}
			return domain.Invoice{}, err
		}
	} else {
		draft.ProjectID = nil
	}

	now := s.clock.Now()
	number := strings.TrimSpace(draft.InvoiceNumber)
	if number == "" {
		fresh, err := domain.NewInvoiceDraft(now, rand.New(rand.NewPCG(uint64(now.UnixNano()), uint64(companyID.Int64()))))
		if err != nil {
			return domain.Invoice{}, err
		}
		number = fresh.InvoiceNumber
	}

	items := domain.NormalizeLineItems(draft.LineItems)
	totals := domain.ComputeTotals(items)
	invoice := domain.Invoice{
		ID:            s.genID.Generate(),
		CompanyID:     companyID,
		InvoiceNumber: number,
		ClientID:      draft.ClientID,
		ProjectID:     draft.ProjectID,
		IssueDate:     issueDate,
		DueDate:       dueDate,
		Currency:      currency,
		Notes:         strings.TrimSpace(draft.Notes),
		LineItems:     items,
		Subtotal:      totals.Subtotal,
		Tax:           totals.Tax,
		Total:         totals.Total,
		Status:        domain.StatusDraft,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.repo.Insert(ctx, &invoice); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "insert failed")
		logger.WithContext(ctx, s.log).Error("failed to save invoice",
			zap.String("invoice_number", number),
			zap.Error(err),
		)
		return domain.Invoice{}, fmt.Errorf("%w: %v", domain.ErrSaveFailed, err)
	}

	span.SetAttributes(
		attribute.String("invoice.id", invoice.ID.String()),
		attribute.String("invoice.currency", string(currency)),
	)
	s.metrics.RecordInvoiceSaved(ctx, string(currency))
	logger.WithContext(ctx, s.log).Info("invoice saved",
		zap.String("invoice_id", invoice.ID.String()),
		zap.String("total", invoice.Total.StringFixed(domain.MoneyPlaces)),
	)

	return invoice, nil
}

func (s *Service) List(ctx context.Context, req domain.ListInvoiceRequest) (domain.ListInvoiceResponse, error) {
	companyID, ok := companyctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.ListInvoiceResponse{}, domain.ErrInvalidCompany
	}

	filter := domain.ListInvoiceFilter{}
	if raw := strings.TrimSpace(req.Status); raw != "" {
		status := domain.Status(strings.ToLower(raw))
		if !status.Valid() {
			return domain.ListInvoiceResponse{}, domain.ErrInvalidStatus
		}
		filter.Status = status
	}
	if raw := strings.TrimSpace(req.ClientID); raw != "" {
		id, err := snowflake.ParseString(raw)
		if err != nil || id == 0 {
			return domain.ListInvoiceResponse{}, domain.ErrInvalidClientID
		}
		filter.ClientID = id
	}

	pageSize := pagination.Normalize(req.PageSize)

	var (
		items   []*domain.Invoice
		clients []clientdomain.Client
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		items, err = s.repo.List(gctx, companyID, filter, pagination.Pagination{
			PageToken: req.PageToken,
			PageSize:  pageSize,
		})
		return err
	})
	g.Go(func() error {
		var err error
		clients, err = s.clientSvc.ListAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return domain.ListInvoiceResponse{}, err
	}

	items, pageInfo := pagination.Trim(items, pageSize, func(inv *domain.Invoice) pagination.Cursor {
		return pagination.Cursor{
			ID:        strconv.FormatInt(inv.ID.Int64(), 10),
			CreatedAt: inv.CreatedAt.Format(time.RFC3339Nano),
		}
	})

	names := make(map[snowflake.ID]string, len(clients))
	for _, c := range clients {
		names[c.ID] = c.Name
	}

	rows := make([]domain.InvoiceSummary, 0, len(items))
	for _, item := range items {
		name, found := names[item.ClientID]
		if !found {
			name = UnknownClientName
		}
		rows = append(rows, domain.InvoiceSummary{
			Invoice:      *item,
			ClientName:   name,
			Presentation: domain.PresentStatus(item.Status),
		})
	}

	return domain.ListInvoiceResponse{PageInfo: pageInfo, Invoices: rows}, nil
}

func (s *Service) ListAll(ctx context.Context) ([]domain.Invoice, error) {
	companyID, ok := companyctx.CompanyIDFromContext(ctx)
	if !ok {
		return nil, domain.ErrInvalidCompany
	}

	items, err := s.repo.ListAll(ctx, companyID)
	if err != nil {
		return nil, err
	}

	invoices := make([]domain.Invoice, 0, len(items))
	for _, item := range items {
		invoices = append(invoices, *item)
	}
	return invoices, nil
}

func (s *Service) GetDetails(ctx context.Context, id string) (domain.InvoiceDetails, error) {
	companyID, ok := companyctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.InvoiceDetails{}, domain.ErrInvalidCompany
	}

	invoiceID, err := parseID(id)
	if err != nil {
		return domain.InvoiceDetails{}, err
	}

	invoice, err := s.repo.FindByID(ctx, companyID, invoiceID)
	if err != nil {
		return domain.InvoiceDetails{}, err
	}
	if invoice == nil {
		return domain.InvoiceDetails{}, domain.ErrNotFound
	}

	details := domain.InvoiceDetails{
		Invoice:      *invoice,
		Actions:      domain.AvailableActions(invoice.Status),
		Presentation: domain.PresentStatus(invoice.Status),
	}

	client, err := s.clientSvc.GetByID(ctx, invoice.ClientID.String())
	switch {
	case err == nil:
		details.Client = &client
	case errors.Is(err, clientdomain.ErrNotFound), errors.Is(err, clientdomain.ErrInvalidID):
	default:
		return domain.InvoiceDetails{}, err
	}

	if invoice.ProjectID != nil {
		project, err := s.projectSvc.GetByID(ctx, invoice.ProjectID.String())
		switch {
		case err == nil:
			details.Project = &project
		case errors.Is(err, projectdomain.ErrNotFound), errors.Is(err, projectdomain.ErrInvalidID):
		default:
			return domain.InvoiceDetails{}, err
		}
	}

	return details, nil
}

func (s *Service) MarkSent(ctx context.Context, id string) (domain.InvoiceDetails, error) {
	return s.transition(ctx, id, domain.StatusSent)
}

func (s *Service) MarkPaid(ctx context.Context, id string) (domain.InvoiceDetails, error) {
	return s.transition(ctx, id, domain.StatusPaid)
}

func (s *Service) transition(ctx context.Context, id string, to domain.Status) (domain.InvoiceDetails, error) {
	companyID, ok := companyctx.CompanyIDFromContext(ctx)
	if !ok {
		return domain.InvoiceDetails{}, domain.ErrInvalidCompany
	}

	invoiceID, err := parseID(id)
	if err != nil {
		return domain.InvoiceDetails{}, err
	}

	invoice, err := s.repo.FindByID(ctx, companyID, invoiceID)
	if err != nil {
		return domain.InvoiceDetails{}, err
	}
	if invoice == nil {
		return domain.InvoiceDetails{}, domain.ErrNotFound
	}

	from := invoice.Status
	if !domain.CanTransition(from, to) {
		return domain.InvoiceDetails{}, domain.ErrInvalidTransition
	}

	if err := s.repo.SetStatus(ctx, companyID, invoiceID, to); err != nil {
		return domain.InvoiceDetails{}, err
	}

	s.metrics.RecordStatusTransition(ctx, string(from), string(to))
	logger.WithContext(ctx, s.log).Info("invoice status changed",
		zap.String("invoice_id", invoiceID.String()),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)

	return s.GetDetails(ctx, id)
}

func (s *Service) RenderPDF(ctx context.Context, id string) ([]byte, error) {
	details, err := s.GetDetails(ctx, id)
	if err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "invoice.render_pdf")
	defer span.End()

	out, err := s.pdf.GenerateInvoice(ctx, s.documentData(details))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "render failed")
		return nil, err
	}
	return out, nil
}

func (s *Service) documentData(details domain.InvoiceDetails) pdf.InvoiceData {
	inv := details.Invoice
	profile := s.company.Get()
	symbol := string(inv.Currency)

	data := pdf.InvoiceData{
		Issuer: pdf.Party{
			Name:      profile.Name,
			Address:   profile.Address,
			Email:     profile.Email,
			Phone:     profile.Phone,
			TaxNumber: profile.TaxNumber,
		},
		InvoiceNumber: inv.InvoiceNumber,
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		Status:        details.Presentation.Label,
		Notes:         inv.Notes,
		Footer:        profile.Footer,
		Subtotal:      money(symbol, inv.Subtotal.StringFixed(domain.MoneyPlaces)),
		TaxLabel:      fmt.Sprintf("VAT (%s%%)", domain.TaxRate.Shift(2).String()),
		Tax:           money(symbol, inv.Tax.StringFixed(domain.MoneyPlaces)),
		Total:         money(symbol, inv.Total.StringFixed(domain.MoneyPlaces)),
	}
	if details.Client != nil {
		data.BillTo = pdf.Party{
			Name:    details.Client.Name,
			Address: details.Client.Address,
			Email:   details.Client.Email,
			Phone:   details.Client.Phone,
		}
	} else {
		data.BillTo = pdf.Party{Name: UnknownClientName}
	}
	if details.Project != nil {
		data.Project = details.Project.Name
	}

	for _, item := range inv.LineItems {
		data.Items = append(data.Items, pdf.InvoiceItem{
			Description: item.Description,
			Qty:         item.Quantity.String(),
			UnitPrice:   money(symbol, item.UnitPrice.StringFixed(domain.MoneyPlaces)),
			Amount:      money(symbol, item.Total.StringFixed(domain.MoneyPlaces)),
		})
	}
	return data
}

func money(symbol, amount string) string {
	return symbol + " " + amount
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}

func parseDate(value string, invalid error) (string, error) {
	value = strings.TrimSpace(value)
	t, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		return "", invalid
	}
	return t.Format(domain.DateLayout), nil
}
